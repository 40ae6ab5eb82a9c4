/*
Package main implements the querix query core's CLI and IPC entry point.

querix turns a raw text query into a sequence of located, typo-tolerant
query terms: quoted phrases and single words with per-word typo budgets
(n-gram synthesis is a separate step that neither mode runs).
It can operate as a MessagePack IPC server for editor/indexer integrations
or as a standalone CLI for interactive testing.

# Server Mode

The server reads one parse request at a time from stdin and writes the
located terms it parsed to stdout, reloading its TOML configuration
periodically.

# CLI Mode

The CLI provides an interactive shell: type a query, press enter, and see
the terms the core parsed it into.

# Config

Runtime configuration is managed via a `config.toml` file, supporting
typo-policy, parser, and CLI sections. A default configuration is created
automatically if one does not exist.
*/
package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/bastiangx/querix/internal/cli"
	"github.com/bastiangx/querix/internal/config"
	"github.com/bastiangx/querix/pkg/queryserver"
)

const (
	Version = "0.1.0-beta"
	AppName = "querix"
	gh      = "https://github.com/bastiangx/querix"
)

// sigHandler is a simple handler for OS signals to exit normally.
func sigHandler() {
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		fmt.Fprintf(os.Stderr, "\nExiting...\n")
		os.Exit(0)
	}()
}

// main calls other packages to initialize the server or CLI inputs.
// main() does not implement logic for them and only manages the flow.
func main() {
	sigHandler()

	showVersion := flag.Bool("version", false, "Show current version")
	configFile := flag.String("config", "config.toml", "Path to config.toml file")
	debugMode := flag.Bool("v", false, "Toggle verbose mode")
	cliMode := flag.Bool("c", false, "Run CLI -- useful for testing and debugging")
	wordsLimit := flag.Int("words-limit", 0, "Maximum number of located terms to emit (0 = unbounded)")

	flag.Parse()

	if *showVersion {
		logger := log.NewWithOptions(os.Stderr, log.Options{
			ReportCaller:    false,
			ReportTimestamp: false,
			Prefix:          "",
		})

		styles := log.DefaultStyles()
		styles.Values["version"] = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		styles.Values["gh"] = lipgloss.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#575279", Dark: "#e0def4"})
		logger.SetStyles(styles)

		logger.Print("")
		logger.Print("[querix] parses typo-tolerant, phrase-aware search queries")
		logger.Print("", "version", Version)
		logger.Print("")
		logger.Print("use --help to see available options")
		logger.Print("")
		logger.Print("Find out more at", "gh", gh)

		os.Exit(0)
	}

	if *debugMode {
		log.SetLevel(log.DebugLevel)
		log.SetReportTimestamp(true)
	} else {
		log.SetLevel(log.WarnLevel)
	}

	appConfig, err := config.InitConfig(*configFile)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
		os.Exit(1)
	}
	if *wordsLimit > 0 {
		appConfig.Parser.WordsLimit = *wordsLimit
	}
	log.Debugf("Using config file: %s", *configFile)

	if *cliMode {
		log.SetReportTimestamp(false)
		shell := cli.NewQueryShell(appConfig)
		if err := shell.Start(os.Stdin); err != nil {
			log.Fatalf("CLI error: %v", err)
			os.Exit(1)
		}
		return
	}

	log.Debug("spawning IPC")
	srv := queryserver.NewServer(appConfig, *configFile)

	showStartupInfo()

	if err := srv.Start(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
		os.Exit(1)
	}
}

// showStartupInfo displays some basic info about the init process.
func showStartupInfo() {
	pid := os.Getpid()
	currentLevel := log.GetLevel()
	log.SetLevel(log.InfoLevel)

	println("===========")
	println("  querix   ")
	println("===========")
	log.Infof("Version: %s", Version)
	log.Infof("Process ID: [ %d ]", pid)
	log.Info("init: OK")
	log.Info("status: ready")
	println("===========")
	println("Press Ctrl+C to exit")

	log.SetLevel(currentLevel)
}
