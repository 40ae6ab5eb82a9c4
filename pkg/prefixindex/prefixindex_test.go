package prefixindex

import (
	"testing"

	"github.com/bastiangx/querix/pkg/queryterm"
	"github.com/bastiangx/querix/pkg/searchctx"
	"github.com/bastiangx/querix/pkg/termbuilder"
)

func newTestContext(t *testing.T) *searchctx.Context {
	t.Helper()
	return searchctx.New(nil, searchctx.DefaultLimits())
}

func internTerm(t *testing.T, ctx *searchctx.Context, word string) queryterm.LocatedQueryTerm {
	t.Helper()
	term, err := termbuilder.Build(ctx, word, 0, false)
	if err != nil {
		t.Fatalf("termbuilder.Build(%q): %v", word, err)
	}
	h, err := ctx.InternTerm(term)
	if err != nil {
		t.Fatalf("InternTerm(%q): %v", word, err)
	}
	return queryterm.LocatedQueryTerm{Value: h, Positions: queryterm.PositionRange{Start: 0, End: 0}}
}

func TestPrefixesOfReturnsLongerWords(t *testing.T) {
	ctx := newTestContext(t)
	if _, err := ctx.InternWord("dog"); err != nil {
		t.Fatal(err)
	}
	if _, err := ctx.InternWord("dogma"); err != nil {
		t.Fatal(err)
	}
	if _, err := ctx.InternWord("cat"); err != nil {
		t.Fatal(err)
	}

	idx := Build(ctx)
	got := idx.PrefixesOf("dog")

	if len(got) != 2 {
		t.Fatalf("got %d handles, want 2 (dog, dogma), got %+v", len(got), got)
	}
}

func TestAnnotatePopulatesPrefixOf(t *testing.T) {
	ctx := newTestContext(t)
	located := internTerm(t, ctx, "dog")
	_ = internTerm(t, ctx, "dogma")

	updated, err := BuildAndAnnotate(ctx, []queryterm.LocatedQueryTerm{located})
	if err != nil {
		t.Fatalf("BuildAndAnnotate: %v", err)
	}
	if len(updated) != 1 {
		t.Fatalf("got %d located terms, want 1", len(updated))
	}

	term, ok := ctx.Term(updated[0].Value)
	if !ok {
		t.Fatal("annotated term not found")
	}
	if len(term.ZeroTypo.PrefixOf) != 1 {
		t.Errorf("PrefixOf has %d entries, want 1 (dogma)", len(term.ZeroTypo.PrefixOf))
	}
}

func TestAnnotateSkipsPhraseTerms(t *testing.T) {
	ctx := newTestContext(t)
	wh, err := ctx.InternWord("hello")
	if err != nil {
		t.Fatal(err)
	}
	ph, err := ctx.InternPhrase(queryterm.Phrase{Words: []queryterm.OptionalWordHandle{queryterm.SomeWord(wh)}})
	if err != nil {
		t.Fatal(err)
	}
	phraseTerm := queryterm.QueryTerm{
		Original: wh,
		ZeroTypo: queryterm.ZeroTypoTerm{Phrase: &ph, PrefixOf: map[queryterm.WordHandle]struct{}{}, Synonyms: map[queryterm.PhraseHandle]struct{}{}},
		OneTypo:  queryterm.LazyUninit[queryterm.OneTypoTerm](),
		TwoTypo:  queryterm.LazyUninit[queryterm.TwoTypoTerm](),
	}

	idx := Build(ctx)
	got := Annotate(idx, ctx, phraseTerm)
	if len(got.ZeroTypo.PrefixOf) != 0 {
		t.Errorf("expected PrefixOf to stay empty for a phrase term, got %+v", got.ZeroTypo.PrefixOf)
	}
}

func TestPrefixesOfEmptyIndex(t *testing.T) {
	ctx := newTestContext(t)
	idx := Build(ctx)
	if got := idx.PrefixesOf("anything"); got != nil {
		t.Errorf("expected nil for an empty index, got %+v", got)
	}
}
