// Package termbuilder constructs a partially initialized QueryTerm from a
// single word (spec.md §4.3). Only the zero-typo variant is computed here;
// one- and two-typo variants are left as uninitialized lazy slots for
// downstream consumers.
package termbuilder

import (
	"github.com/bastiangx/querix/pkg/queryterm"
	"github.com/bastiangx/querix/pkg/searchctx"
)

// Build interns word into ctx's word interner and returns a QueryTerm with
// zero_typo populated, one_typo/two_typo left Uninit, ngram_words nil, and
// is_prefix/max_nbr_typos set from the caller's arguments.
//
// A word whose byte length exceeds ctx.Limits.MaxWordLength is still built
// here — the over-length guard only applies to n-gram synthesis (spec.md
// §4.3 Edge cases, enforced in pkg/ngram).
func Build(ctx *searchctx.Context, word string, maxTypos uint8, isPrefix bool) (queryterm.QueryTerm, error) {
	original, err := ctx.InternWord(word)
	if err != nil {
		return queryterm.QueryTerm{}, err
	}

	return queryterm.QueryTerm{
		Original:    original,
		NgramWords:  nil,
		IsPrefix:    isPrefix,
		MaxNbrTypos: maxTypos,
		ZeroTypo:    queryterm.NewZeroTypoTerm(),
		OneTypo:     queryterm.LazyUninit[queryterm.OneTypoTerm](),
		TwoTypo:     queryterm.LazyUninit[queryterm.TwoTypoTerm](),
	}, nil
}
