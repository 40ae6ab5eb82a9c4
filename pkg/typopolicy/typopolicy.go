// Package typopolicy answers "how many typos are allowed for this word?" —
// a pure function parameterized once per search context from index
// configuration (spec.md §4.2).
//
// Field naming in Settings is grounded on the go-search-engine reference
// package's IndexSettings (MinWordSizeFor1Typo / MinWordSizeFor2Typos),
// generalized here to the query core's own vocabulary.
package typopolicy

import "github.com/bastiangx/querix/pkg/searchctx"

// Settings is the typo policy's input, read once from index configuration.
type Settings struct {
	AuthorizeTypos bool
	MinLenOneTypo  uint8
	MinLenTwoTypos uint8
	// ExactWords, if non-nil, is a finite set of words that must match
	// exactly regardless of length.
	ExactWords map[string]struct{}
}

// Func answers how many typos (0, 1 or 2) word may tolerate, measuring
// length in bytes of the normalized form to match how the tokenizer
// presents lemmas.
type Func func(word string) uint8

// New resolves Settings from src and returns the typo-count function.
func New(src searchctx.ConfigSource) (Func, error) {
	authorize, err := src.AuthorizeTypos()
	if err != nil {
		return nil, searchctx.ErrConfigRead
	}
	minOne, err := src.MinWordLenOneTypo()
	if err != nil {
		return nil, searchctx.ErrConfigRead
	}
	minTwo, err := src.MinWordLenTwoTypos()
	if err != nil {
		return nil, searchctx.ErrConfigRead
	}
	exact, err := src.ExactWords()
	if err != nil {
		return nil, searchctx.ErrConfigRead
	}

	s := Settings{
		AuthorizeTypos: authorize,
		MinLenOneTypo:  minOne,
		MinLenTwoTypos: minTwo,
		ExactWords:     exact,
	}
	return s.Func(), nil
}

// Func builds the typo-count closure directly from Settings, without going
// through a ConfigSource. Useful for tests and for the n-gram synthesizer,
// which reuses the same settings for concatenated words.
func (s Settings) Func() Func {
	return func(word string) uint8 {
		if !s.AuthorizeTypos {
			return 0
		}
		if len(word) < int(s.MinLenOneTypo) {
			return 0
		}
		if _, exact := s.ExactWords[word]; exact {
			return 0
		}
		if len(word) < int(s.MinLenTwoTypos) {
			return 1
		}
		return 2
	}
}
