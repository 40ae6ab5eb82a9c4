// Package ngram implements the n-gram synthesizer: it post-processes
// windows of adjacent located terms into synthetic concatenated terms (with
// synonym lookup) when all positional and structural preconditions hold
// (spec.md §4.6).
package ngram

import (
	"strings"

	"github.com/bastiangx/querix/pkg/queryterm"
	"github.com/bastiangx/querix/pkg/searchctx"
	"github.com/bastiangx/querix/pkg/synonyms"
	"github.com/bastiangx/querix/pkg/typopolicy"
)

// MakeNgram attempts to synthesize one term from terms, an adjacent window
// of located terms (N in {2, 3}). It returns (nil, nil) if any of the four
// preconditions from spec.md §4.6 fails:
//
//  1. none of the input terms is a phrase,
//  2. the positions are exactly contiguous,
//  3. every input term is a single original word (neither phrase nor
//     prior n-gram),
//  4. the concatenated bytes fit within ctx.Limits.MaxWordLength.
//
// On success, the synthesized term's max_nbr_typos is
// saturating_sub(typos(concatenation), len(terms)-1), it inherits IsPrefix
// from its rightmost constituent, and its ZeroTypo.Synonyms is populated
// from syn, keyed on the exact original word sequence (see SPEC_FULL.md
// §4.7).
func MakeNgram(ctx *searchctx.Context, terms []queryterm.LocatedQueryTerm, typos typopolicy.Func, syn synonyms.Map) (*queryterm.LocatedQueryTerm, error) {
	if len(terms) == 0 {
		return nil, nil
	}

	resolved := make([]queryterm.QueryTerm, len(terms))
	for i, lq := range terms {
		t, ok := ctx.Term(lq.Value)
		if !ok {
			return nil, nil
		}
		resolved[i] = t
	}

	// Precondition 1: no phrase inputs.
	for _, t := range resolved {
		if t.IsPhrase() {
			return nil, nil
		}
	}

	// Precondition 2: exactly contiguous positions.
	for i := 0; i+1 < len(terms); i++ {
		if terms[i].Positions.End+1 != terms[i+1].Positions.Start {
			return nil, nil
		}
	}

	// Precondition 3: every term is a single original word.
	wordHandles := make([]queryterm.WordHandle, len(resolved))
	words := make([]string, len(resolved))
	for i, t := range resolved {
		wh, ok := t.OriginalSingleWord()
		if !ok {
			return nil, nil
		}
		wordHandles[i] = wh
		w, found := ctx.Word(wh)
		if !found {
			return nil, nil
		}
		words[i] = w
	}

	// Precondition 4: concatenation fits within MAX_WORD_LENGTH.
	ngramStr := strings.Join(words, "")
	if len(ngramStr) > ctx.Limits.MaxWordLength {
		return nil, nil
	}

	start := terms[0].Positions.Start
	end := terms[len(terms)-1].Positions.End
	isPrefix := resolved[len(resolved)-1].IsPrefix

	ngramHandle, err := ctx.InternWord(ngramStr)
	if err != nil {
		return nil, err
	}

	maxTypos := saturatingSub(typos(ngramStr), uint8(len(terms)-1))

	zeroTypo := queryterm.NewZeroTypoTerm()
	for _, alt := range syn.Lookup(words) {
		phrase, err := internSynonymPhrase(ctx, alt)
		if err != nil {
			return nil, err
		}
		zeroTypo.Synonyms[phrase] = struct{}{}
	}

	term := queryterm.QueryTerm{
		Original:    ngramHandle,
		NgramWords:  wordHandles,
		IsPrefix:    isPrefix,
		MaxNbrTypos: maxTypos,
		ZeroTypo:    zeroTypo,
		OneTypo:     queryterm.LazyUninit[queryterm.OneTypoTerm](),
		TwoTypo:     queryterm.LazyUninit[queryterm.TwoTypoTerm](),
	}
	termHandle, err := ctx.InternTerm(term)
	if err != nil {
		return nil, err
	}

	located := queryterm.LocatedQueryTerm{
		Value:     termHandle,
		Positions: queryterm.PositionRange{Start: start, End: end},
	}
	return &located, nil
}

func internSynonymPhrase(ctx *searchctx.Context, words []string) (queryterm.PhraseHandle, error) {
	slots := make([]queryterm.OptionalWordHandle, len(words))
	for i, w := range words {
		h, err := ctx.InternWord(w)
		if err != nil {
			return 0, err
		}
		slots[i] = queryterm.SomeWord(h)
	}
	return ctx.InternPhrase(queryterm.Phrase{Words: slots})
}

func saturatingSub(a, b uint8) uint8 {
	if b >= a {
		return 0
	}
	return a - b
}
