// Package prefixindex builds a prefix trie over a search context's interned
// words and uses it to populate ZeroTypoTerm.PrefixOf, a "populated
// downstream" field (spec.md §3) that the query core itself deliberately
// leaves empty. ZeroTypoTerm.UsePrefixDB is not set here. It is grounded on the teacher's
// pkg/suggest trie usage (github.com/tchap/go-patricia/v2/patricia),
// repurposed here from ranked word completion to query-term prefix
// annotation.
package prefixindex

import (
	"github.com/tchap/go-patricia/v2/patricia"

	"github.com/bastiangx/querix/pkg/queryterm"
	"github.com/bastiangx/querix/pkg/searchctx"
)

// Index wraps a patricia trie keyed by interned word strings, with trie
// items holding the word's own handle so a prefix scan can recover handles
// without a second lookup.
type Index struct {
	trie *patricia.Trie
}

// Build scans every word interned in ctx so far and inserts it into a fresh
// prefix trie. Call this once parsing/n-gram synthesis has finished
// interning all the words it will ever intern for this search.
func Build(ctx *searchctx.Context) *Index {
	trie := patricia.NewTrie()
	ctx.Words.Each(func(h queryterm.WordHandle, word string) bool {
		if word != "" {
			trie.Insert(patricia.Prefix(word), h)
		}
		return true
	})
	return &Index{trie: trie}
}

// PrefixesOf returns the handles of every interned word for which prefix is
// a proper or equal prefix, per the patricia trie's subtree visit.
func (idx *Index) PrefixesOf(prefix string) []queryterm.WordHandle {
	if idx.trie == nil {
		return nil
	}
	var out []queryterm.WordHandle
	idx.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		if h, ok := item.(queryterm.WordHandle); ok {
			out = append(out, h)
		}
		return nil
	})
	return out
}

// Annotate populates term.ZeroTypo.PrefixOf for every word of which term's
// original word is a prefix, skipping phrase and n-gram terms (for which
// prefix annotation is meaningless — spec.md §3 notes PrefixOf applies to
// single-word zero-typo terms only).
func Annotate(idx *Index, ctx *searchctx.Context, term queryterm.QueryTerm) queryterm.QueryTerm {
	if term.IsPhrase() || term.IsNgram() {
		return term
	}
	word, ok := ctx.Word(term.Original)
	if !ok {
		return term
	}
	for _, h := range idx.PrefixesOf(word) {
		if h == term.Original {
			continue
		}
		term.ZeroTypo.PrefixOf[h] = struct{}{}
	}
	return term
}

// BuildAndAnnotate builds a fresh Index from ctx and re-interns an annotated
// copy of every term in located, returning the updated list. It is the
// single downstream entry point exercising pkg/prefixindex against the
// parser's output.
func BuildAndAnnotate(ctx *searchctx.Context, located []queryterm.LocatedQueryTerm) ([]queryterm.LocatedQueryTerm, error) {
	idx := Build(ctx)
	out := make([]queryterm.LocatedQueryTerm, len(located))
	for i, lq := range located {
		term, ok := ctx.Term(lq.Value)
		if !ok {
			out[i] = lq
			continue
		}
		annotated := Annotate(idx, ctx, term)
		h, err := ctx.InternTerm(annotated)
		if err != nil {
			return nil, err
		}
		out[i] = queryterm.LocatedQueryTerm{Value: h, Positions: lq.Positions}
	}
	return out, nil
}
