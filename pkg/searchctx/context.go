// Package searchctx implements the value-typed search context that owns the
// three interners (word, phrase, term) for the lifetime of one search, per
// spec.md §3 ("Lifecycle") and §5 ("Concurrency & Resource Model").
//
// A Context is owned by a single goroutine. It is never shared across
// concurrent searches; a caller that wants parallel searches constructs one
// Context per search.
package searchctx

import (
	"strconv"
	"strings"

	"github.com/bastiangx/querix/pkg/interner"
	"github.com/bastiangx/querix/pkg/queryterm"
)

// ConfigSource is the immutable transaction handle the core reads index
// configuration from, consumed once per search (spec.md §6).
type ConfigSource interface {
	AuthorizeTypos() (bool, error)
	MinWordLenOneTypo() (uint8, error)
	MinWordLenTwoTypos() (uint8, error)
	// ExactWords returns the finite set of words that must match exactly
	// regardless of length, or nil if none is configured.
	ExactWords() (map[string]struct{}, error)
	// Synonyms maps an original word sequence to its alternative word
	// sequences.
	Synonyms() (map[string][][]string, error)
}

// Limits bundles the process-wide bounds consumed by the parser and n-gram
// synthesizer (spec.md §6).
type Limits struct {
	// MaxWordLength is the upper bound, in bytes, on any single term's
	// length. Words over this limit are still indexed but cannot
	// participate in n-grams. Default 250.
	MaxWordLength int
	// MaxTokenCount is the upper bound on tokens consumed per query.
	// Default 1000.
	MaxTokenCount int
}

// DefaultLimits returns the process-wide defaults named in spec.md §4.5/§4.6.
func DefaultLimits() Limits {
	return Limits{MaxWordLength: 250, MaxTokenCount: 1000}
}

func wordKey(s string) string { return s }

func phraseKey(p queryterm.Phrase) string { return p.Key() }

// termKey intern keys a QueryTerm by its actual structural content: the
// phrase handle for phrase terms, the constituent word-handle sequence for
// n-gram terms, or the original word handle for plain word terms, plus
// is_prefix and max_nbr_typos. Keying on Original alone is not enough —
// two structurally distinct phrases (e.g. one with a stop-word slot, one
// without) can describe to the same surface word and thus share the same
// Original handle, so the phrase/ngram identity itself must be part of the
// key or the second phrase silently collapses onto the first's handle.
func termKey(t queryterm.QueryTerm) string {
	var b strings.Builder
	switch {
	case t.IsPhrase():
		b.WriteByte('P')
		b.WriteString(strconv.FormatUint(uint64(*t.ZeroTypo.Phrase), 10))
	case t.IsNgram():
		b.WriteByte('N')
		for i, h := range t.NgramWords {
			if i > 0 {
				b.WriteByte('\x1f')
			}
			b.WriteString(strconv.FormatUint(uint64(h), 10))
		}
	default:
		b.WriteByte('W')
		b.WriteString(strconv.FormatUint(uint64(t.Original), 10))
	}
	if t.IsPrefix {
		b.WriteByte('*')
	}
	b.WriteByte('#')
	b.WriteString(strconv.FormatUint(uint64(t.MaxNbrTypos), 10))
	return b.String()
}

// Context owns the interners and configuration for one search.
type Context struct {
	Config ConfigSource
	Limits Limits

	Words   *interner.Interner[queryterm.WordHandle, string]
	Phrases *interner.Interner[queryterm.PhraseHandle, queryterm.Phrase]
	Terms   *interner.Interner[queryterm.TermHandle, queryterm.QueryTerm]
}

// New constructs a fresh Context with empty interners, ready to parse one
// query.
func New(cfg ConfigSource, limits Limits) *Context {
	return &Context{
		Config:  cfg,
		Limits:  limits,
		Words:   interner.New[queryterm.WordHandle](wordKey),
		Phrases: interner.New[queryterm.PhraseHandle](phraseKey),
		Terms:   interner.New[queryterm.TermHandle](termKey),
	}
}

// InternWord interns word into the word interner.
func (c *Context) InternWord(word string) (queryterm.WordHandle, error) {
	h, ok := c.Words.Insert(word)
	if !ok {
		return 0, ErrInternerOverflow
	}
	return h, nil
}

// InternPhrase interns p into the phrase interner.
func (c *Context) InternPhrase(p queryterm.Phrase) (queryterm.PhraseHandle, error) {
	h, ok := c.Phrases.Insert(p)
	if !ok {
		return 0, ErrInternerOverflow
	}
	return h, nil
}

// InternTerm interns t into the term interner.
func (c *Context) InternTerm(t queryterm.QueryTerm) (queryterm.TermHandle, error) {
	h, ok := c.Terms.Insert(t)
	if !ok {
		return 0, ErrInternerOverflow
	}
	return h, nil
}

// Word resolves a word handle back to its string.
func (c *Context) Word(h queryterm.WordHandle) (string, bool) {
	return c.Words.Get(h)
}

// Phrase resolves a phrase handle back to its Phrase value.
func (c *Context) Phrase(h queryterm.PhraseHandle) (queryterm.Phrase, bool) {
	return c.Phrases.Get(h)
}

// Term resolves a term handle back to its QueryTerm value.
func (c *Context) Term(h queryterm.TermHandle) (queryterm.QueryTerm, bool) {
	return c.Terms.Get(h)
}
