// Package cli provides a simple line-oriented shell for exercising the
// query core interactively: type a query, press enter, see the located
// terms it parses into.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	iconfig "github.com/bastiangx/querix/internal/config"
	"github.com/bastiangx/querix/internal/logger"
	"github.com/bastiangx/querix/internal/utils"
	"github.com/bastiangx/querix/pkg/queryparser"
	"github.com/bastiangx/querix/pkg/queryterm"
	"github.com/bastiangx/querix/pkg/searchctx"
	"github.com/bastiangx/querix/pkg/tokenstream"
)

// QueryShell reads lines from an input reader, parses each as a query, and
// prints the resulting located terms. One Context is constructed per line,
// matching the one-Context-per-search lifecycle (spec.md §3).
type QueryShell struct {
	cfg          *iconfig.Config
	requestCount int
	log          *log.Logger
}

// NewQueryShell builds a QueryShell bound to cfg's parser/CLI sections. The
// logger is built here rather than in a package var, so it picks up
// whatever global log level cmd/querix/main.go set before constructing it.
func NewQueryShell(cfg *iconfig.Config) *QueryShell {
	return &QueryShell{cfg: cfg, log: logger.Default("cli")}
}

// Start begins the read-parse-print loop. It returns nil on normal EOF and
// the read error otherwise.
func (s *QueryShell) Start(in io.Reader) error {
	s.log.Print("querix CLI [BETA]")
	scanner := bufio.NewScanner(in)
	s.log.Print("type a query and press Enter to see its located terms (Ctrl+C to exit):")

	for {
		s.log.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		s.handleLine(line)
	}
}

func (s *QueryShell) handleLine(line string) {
	s.requestCount++

	ctx := searchctx.New(s.cfg.Source(), s.cfg.Limits())
	tok := tokenstream.Tokenize(line, nil)

	located, err := queryparser.Parse(ctx, tok, s.cfg.WordsLimit())
	if err != nil {
		s.log.Errorf("parse failed for %q: %v", line, err)
		return
	}

	if len(located) == 0 {
		s.log.Warnf("no terms parsed from: '%s'", line)
		return
	}

	s.log.Printf("parsed %d term(s) from '%s':", len(located), line)
	for i, lq := range located {
		fmt.Println(describeTerm(ctx, lq, i, s.cfg.CLI))
	}
}

func describeTerm(ctx *searchctx.Context, lq queryterm.LocatedQueryTerm, index int, cli iconfig.CLIConfig) string {
	term, ok := ctx.Term(lq.Value)
	if !ok {
		return fmt.Sprintf("%2d. <unresolved term>", index+1)
	}

	var surface string
	switch {
	case term.IsPhrase():
		phrase, _ := ctx.Phrase(*term.ZeroTypo.Phrase)
		surface = fmt.Sprintf("\"%s\"", phrase.Describe(ctx.Word))
	default:
		word, _ := ctx.Word(term.Original)
		surface = word
	}

	clWord := fmt.Sprintf("\033[38;5;75m%s\033[0m", surface)
	line := fmt.Sprintf("%2d. %-30s (typos: %d, prefix: %v)", index+1, clWord, term.MaxNbrTypos, term.IsPrefix)

	if cli.ShowPositions {
		line += fmt.Sprintf(" [pos %d..%d]", lq.Positions.Start, lq.Positions.End)
	}
	if cli.ShowHandles {
		line += fmt.Sprintf(" (handle %s)", utils.FormatWithCommas(int(lq.Value)))
	}
	return line
}
