// Package phrasebuilder implements the small state machine that
// accumulates words between double-quote boundaries and emits a single
// term representing the phrase (spec.md §4.4).
//
// Builder is modeled as an explicit two-state machine — Empty or
// Accumulating — rather than the mutable-state-plus-take() idiom the
// reference Rust source uses, per spec.md §9 ("Phrase state machine
// replacement"). The parser is expected to replace its Builder (not mutate
// it in place) at each phrase boundary.
package phrasebuilder

import (
	"github.com/bastiangx/querix/pkg/queryterm"
	"github.com/bastiangx/querix/pkg/searchctx"
)

type state int

const (
	stateEmpty state = iota
	stateAccumulating
)

// Builder accumulates phrase words until Build consumes it.
type Builder struct {
	st    state
	words []queryterm.OptionalWordHandle
	start uint16
	end   uint16
}

// Empty returns a fresh, empty Builder — the state a parser opens a new
// phrase with.
func Empty() Builder {
	return Builder{st: stateEmpty}
}

// IsEmpty reports whether any word has been pushed yet.
func (b Builder) IsEmpty() bool {
	return b.st == stateEmpty
}

// PushWord appends a slot for the token at position. A StopWord token
// contributes a None slot (preserving position spacing); a Word token
// contributes Some(word handle). Returns the updated Builder (the
// transition is a total function — the caller rebinds its variable to the
// result rather than mutating in place) and any interner error.
func (b Builder) PushWord(ctx *searchctx.Context, tok tokenKindLemma, position uint16) (Builder, error) {
	next := b
	if next.st == stateEmpty {
		next.st = stateAccumulating
		next.start = position
	}
	next.end = position

	if tok.IsStopWord {
		next.words = append(append([]queryterm.OptionalWordHandle{}, b.words...), queryterm.NoWord())
		return next, nil
	}

	handle, err := ctx.InternWord(tok.Lemma)
	if err != nil {
		return Builder{}, err
	}
	next.words = append(append([]queryterm.OptionalWordHandle{}, b.words...), queryterm.SomeWord(handle))
	return next, nil
}

// tokenKindLemma is the minimal view PushWord needs of a token, decoupling
// this package from pkg/tokenstream's concrete Token type (and its
// Separator/Unknown kinds, which never reach PushWord).
type tokenKindLemma struct {
	IsStopWord bool
	Lemma      string
}

// FromToken adapts a tokenstream.Token (already known to be Word or
// StopWord) into the view PushWord consumes.
func FromToken(isStopWord bool, lemma string) tokenKindLemma {
	return tokenKindLemma{IsStopWord: isStopWord, Lemma: lemma}
}

// Build consumes the builder. If Empty, or if every slot pushed so far is a
// stop-word (None) slot, it returns ok == false: a phrase without a real
// word is discarded rather than emitted, per the data-model invariant in
// spec.md §3. Otherwise it interns the phrase, synthesizes a
// human-readable description string for QueryTerm.Original, and returns a
// LocatedQueryTerm with MaxNbrTypos == 0, IsPrefix == false, and
// ZeroTypo.Phrase set.
func (b Builder) Build(ctx *searchctx.Context) (queryterm.LocatedQueryTerm, bool, error) {
	if b.IsEmpty() {
		return queryterm.LocatedQueryTerm{}, false, nil
	}

	phrase := queryterm.Phrase{Words: b.words}
	if !phrase.HasContent() {
		return queryterm.LocatedQueryTerm{}, false, nil
	}
	phraseHandle, err := ctx.InternPhrase(phrase)
	if err != nil {
		return queryterm.LocatedQueryTerm{}, false, err
	}

	description := phrase.Describe(func(h queryterm.WordHandle) (string, bool) {
		return ctx.Word(h)
	})
	originalHandle, err := ctx.InternWord(description)
	if err != nil {
		return queryterm.LocatedQueryTerm{}, false, err
	}

	zeroTypo := queryterm.NewZeroTypoTerm()
	zeroTypo.Phrase = &phraseHandle

	term := queryterm.QueryTerm{
		Original:    originalHandle,
		NgramWords:  nil,
		IsPrefix:    false,
		MaxNbrTypos: 0,
		ZeroTypo:    zeroTypo,
		OneTypo:     queryterm.LazyUninit[queryterm.OneTypoTerm](),
		TwoTypo:     queryterm.LazyUninit[queryterm.TwoTypoTerm](),
	}
	termHandle, err := ctx.InternTerm(term)
	if err != nil {
		return queryterm.LocatedQueryTerm{}, false, err
	}

	return queryterm.LocatedQueryTerm{
		Value:     termHandle,
		Positions: queryterm.PositionRange{Start: b.start, End: b.end},
	}, true, nil
}
