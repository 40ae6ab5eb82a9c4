/*
Package config manages TOML config for querix.

InitConfig handles automatic config file creation and loading with
fallback to defaults. LoadConfig and SaveConfig provide direct fs access
for runtime changes.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"

	"github.com/bastiangx/querix/internal/logger"
	"github.com/bastiangx/querix/pkg/searchctx"
)

// logr is created fresh at each call rather than cached in a package var,
// since logger.Default reads the global log level at construction time and
// callers (cmd/querix/main.go) set that level before InitConfig runs.
func logr() *log.Logger { return logger.Default("config") }

// Config holds the entire config structure.
type Config struct {
	Typo   TypoConfig   `toml:"typo"`
	Parser ParserConfig `toml:"parser"`
	CLI    CLIConfig    `toml:"cli"`
}

// TypoConfig controls the typo policy (pkg/typopolicy).
type TypoConfig struct {
	AuthorizeTypos bool     `toml:"authorize_typos"`
	MinLenOneTypo  int      `toml:"min_len_one_typo"`
	MinLenTwoTypos int      `toml:"min_len_two_typos"`
	ExactWords     []string `toml:"exact_words"`
}

// ParserConfig controls the query parser's limits (pkg/searchctx.Limits
// and pkg/queryparser.Parse's words_limit argument).
type ParserConfig struct {
	MaxWordLength int `toml:"max_word_length"`
	MaxTokenCount int `toml:"max_token_count"`
	WordsLimit    int `toml:"words_limit"` // 0 = unbounded
}

// CLIConfig controls internal/cli's output.
type CLIConfig struct {
	ShowPositions bool `toml:"show_positions"`
	ShowHandles   bool `toml:"show_handles"`
}

// DefaultConfig returns a Config with default values, matching
// pkg/searchctx.DefaultLimits() and the typo thresholds used throughout
// this repo's tests.
func DefaultConfig() *Config {
	return &Config{
		Typo: TypoConfig{
			AuthorizeTypos: true,
			MinLenOneTypo:  5,
			MinLenTwoTypos: 9,
		},
		Parser: ParserConfig{
			MaxWordLength: 250,
			MaxTokenCount: 1000,
			WordsLimit:    0,
		},
		CLI: CLIConfig{
			ShowPositions: true,
			ShowHandles:   false,
		},
	}
}

// InitConfig loads config from file or creates default if missing.
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, err
	}
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg := DefaultConfig()
		if err := SaveConfig(cfg, configPath); err != nil {
			return nil, err
		}
		logr().Debugf("Created default config file at: ( %s )", configPath)
		return cfg, nil
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		logr().Warnf("Failed to load config, using defaults: %v", err)
		return DefaultConfig(), nil
	}
	return cfg, nil
}

// LoadConfig loads from a TOML file.
func LoadConfig(configPath string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(configPath, &cfg); err != nil {
		logr().Errorf("Failed to decode config file: %v", err)
		return nil, err
	}
	return &cfg, nil
}

// SaveConfig saves into a TOML file.
func SaveConfig(cfg *Config, configPath string) error {
	file, err := os.Create(configPath)
	if err != nil {
		logr().Errorf("Failed to create config file: %v", err)
		return err
	}
	defer file.Close()
	encoder := toml.NewEncoder(file)
	return encoder.Encode(cfg)
}

// Limits projects the parser section onto pkg/searchctx.Limits.
func (c *Config) Limits() searchctx.Limits {
	return searchctx.Limits{
		MaxWordLength: c.Parser.MaxWordLength,
		MaxTokenCount: c.Parser.MaxTokenCount,
	}
}

// WordsLimit returns the configured words_limit as the *int the parser
// expects, or nil when unbounded (0 in TOML).
func (c *Config) WordsLimit() *int {
	if c.Parser.WordsLimit <= 0 {
		return nil
	}
	limit := c.Parser.WordsLimit
	return &limit
}

// Source adapts Config to pkg/searchctx.ConfigSource.
func (c *Config) Source() searchctx.ConfigSource {
	return configSource{c}
}

type configSource struct {
	cfg *Config
}

func (s configSource) AuthorizeTypos() (bool, error) {
	return s.cfg.Typo.AuthorizeTypos, nil
}

func (s configSource) MinWordLenOneTypo() (uint8, error) {
	return uint8(s.cfg.Typo.MinLenOneTypo), nil
}

func (s configSource) MinWordLenTwoTypos() (uint8, error) {
	return uint8(s.cfg.Typo.MinLenTwoTypos), nil
}

func (s configSource) ExactWords() (map[string]struct{}, error) {
	if len(s.cfg.Typo.ExactWords) == 0 {
		return nil, nil
	}
	out := make(map[string]struct{}, len(s.cfg.Typo.ExactWords))
	for _, w := range s.cfg.Typo.ExactWords {
		out[w] = struct{}{}
	}
	return out, nil
}

func (s configSource) Synonyms() (map[string][][]string, error) {
	return nil, nil
}
