package queryparser

import (
	"testing"

	"github.com/bastiangx/querix/pkg/queryterm"
	"github.com/bastiangx/querix/pkg/searchctx"
	"github.com/bastiangx/querix/pkg/tokenstream"
	"github.com/bastiangx/querix/pkg/typopolicy"
)

func defaultTypoFunc() typopolicy.Func {
	return typopolicy.Settings{AuthorizeTypos: true, MinLenOneTypo: 5, MinLenTwoTypos: 9}.Func()
}

func newTestContext() *searchctx.Context {
	return searchctx.New(nil, searchctx.DefaultLimits())
}

func parseFixed(t *testing.T, ctx *searchctx.Context, limit *int, toks ...tokenstream.Token) []queryterm.LocatedQueryTerm {
	t.Helper()
	got, err := parseWithTypoFunc(ctx, tokenstream.Fixed(toks...), limit, defaultTypoFunc())
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	return got
}

func TestEmptyStreamYieldsEmptyOutput(t *testing.T) {
	ctx := newTestContext()
	got := parseFixed(t, ctx, nil)
	if len(got) != 0 {
		t.Errorf("got %d terms, want 0", len(got))
	}
}

func TestSingleWordIsPrefix(t *testing.T) {
	ctx := newTestContext()
	got := parseFixed(t, ctx, nil, tokenstream.W("dog"))

	if len(got) != 1 {
		t.Fatalf("got %d terms, want 1", len(got))
	}
	if got[0].Positions.Start != 0 || got[0].Positions.End != 0 {
		t.Errorf("positions = %+v, want 0..=0", got[0].Positions)
	}
	term, _ := ctx.Term(got[0].Value)
	if !term.IsPrefix {
		t.Errorf("expected sole word to be prefix")
	}
}

// Scenario 1: "good dog" -> two terms at positions 0,1; first non-prefix,
// second prefix.
func TestSimpleTerminalPrefix(t *testing.T) {
	ctx := newTestContext()
	got := parseFixed(t, ctx, nil, tokenstream.W("good"), tokenstream.W("dog"))

	if len(got) != 2 {
		t.Fatalf("got %d terms, want 2", len(got))
	}
	if got[0].Positions.Start != 0 || got[1].Positions.Start != 1 {
		t.Errorf("positions = %+v, %+v, want 0 and 1", got[0].Positions, got[1].Positions)
	}
	t0, _ := ctx.Term(got[0].Value)
	t1, _ := ctx.Term(got[1].Value)
	if t0.IsPrefix {
		t.Errorf("first word should not be prefix")
	}
	if !t1.IsPrefix {
		t.Errorf("last word should be prefix")
	}
	if t0.MaxNbrTypos != 0 || t1.MaxNbrTypos != 0 {
		t.Errorf("expected 0 typos for short words, got %d %d", t0.MaxNbrTypos, t1.MaxNbrTypos)
	}
}

// Scenario 2: quoted phrase "hello world" -> one located term spanning 0..=1.
func TestQuotedPhrase(t *testing.T) {
	ctx := newTestContext()
	got := parseFixed(t, ctx, nil,
		tokenstream.SoftSep(`"`), tokenstream.W("hello"), tokenstream.W("world"), tokenstream.SoftSep(`"`))

	if len(got) != 1 {
		t.Fatalf("got %d terms, want 1", len(got))
	}
	if got[0].Positions.Start != 0 || got[0].Positions.End != 1 {
		t.Errorf("positions = %+v, want 0..=1", got[0].Positions)
	}
	term, _ := ctx.Term(got[0].Value)
	if term.ZeroTypo.Phrase == nil {
		t.Errorf("expected a phrase term")
	}
	if term.MaxNbrTypos != 0 {
		t.Errorf("expected MaxNbrTypos 0 for phrase")
	}
}

// Scenario 3: hard separator inside quotes closes and restarts the phrase.
func TestHardSeparatorInsideQuotes(t *testing.T) {
	ctx := newTestContext()
	got := parseFixed(t, ctx, nil,
		tokenstream.SoftSep(`"`), tokenstream.W("a"), tokenstream.HardSep("."), tokenstream.W("b"), tokenstream.SoftSep(`"`))

	if len(got) != 2 {
		t.Fatalf("got %d terms, want 2", len(got))
	}
	if got[0].Positions.Start != 0 || got[0].Positions.End != 0 {
		t.Errorf("first phrase positions = %+v, want 0..=0", got[0].Positions)
	}
	if got[1].Positions.Start != 2 || got[1].Positions.End != 2 {
		t.Errorf("second phrase positions = %+v, want 2..=2", got[1].Positions)
	}
	for _, lq := range got {
		term, _ := ctx.Term(lq.Value)
		if term.ZeroTypo.Phrase == nil {
			t.Errorf("expected both parts to be phrases")
		}
	}
}

// Scenario 4: unterminated quote closes implicitly at end of query.
func TestUnterminatedQuote(t *testing.T) {
	ctx := newTestContext()
	got := parseFixed(t, ctx, nil,
		tokenstream.SoftSep(`"`), tokenstream.W("foo"), tokenstream.W("bar"))

	if len(got) != 1 {
		t.Fatalf("got %d terms, want 1", len(got))
	}
	if got[0].Positions.Start != 0 || got[0].Positions.End != 1 {
		t.Errorf("positions = %+v, want 0..=1", got[0].Positions)
	}
}

// Scenario 5: typo threshold crossing across three words.
func TestTypoThresholdCrossing(t *testing.T) {
	ctx := newTestContext()
	got := parseFixed(t, ctx, nil, tokenstream.W("cat"), tokenstream.W("horse"), tokenstream.W("elephants"))

	if len(got) != 3 {
		t.Fatalf("got %d terms, want 3", len(got))
	}
	want := []uint8{0, 1, 2}
	for i, lq := range got {
		term, _ := ctx.Term(lq.Value)
		if term.MaxNbrTypos != want[i] {
			t.Errorf("term %d MaxNbrTypos = %d, want %d", i, term.MaxNbrTypos, want[i])
		}
	}
	last, _ := ctx.Term(got[2].Value)
	if !last.IsPrefix {
		t.Errorf("expected last term to be prefix")
	}
}

func TestLeadingHardSeparatorDoesNotBumpFirstWordPastZero(t *testing.T) {
	ctx := newTestContext()
	got := parseFixed(t, ctx, nil, tokenstream.HardSep("."), tokenstream.W("dog"))

	if len(got) != 1 {
		t.Fatalf("got %d terms, want 1", len(got))
	}
	if got[0].Positions.Start != 0 {
		t.Errorf("first content word position = %d, want 0 (wrap semantics)", got[0].Positions.Start)
	}
}

func TestWordsLimitStopsEarly(t *testing.T) {
	ctx := newTestContext()
	limit := 1
	got := parseFixed(t, ctx, &limit, tokenstream.W("good"), tokenstream.W("dog"), tokenstream.W("run"))

	if len(got) != 1 {
		t.Fatalf("got %d terms, want 1 (words_limit)", len(got))
	}
}

func TestEmptyLemmaTokensDoNotAdvancePosition(t *testing.T) {
	ctx := newTestContext()
	got := parseFixed(t, ctx, nil,
		tokenstream.Token{Kind: tokenstream.Word, Lemma: ""},
		tokenstream.W("dog"),
	)

	if len(got) != 1 {
		t.Fatalf("got %d terms, want 1", len(got))
	}
	if got[0].Positions.Start != 0 {
		t.Errorf("position = %d, want 0 (empty-lemma token must not advance position)", got[0].Positions.Start)
	}
}

func TestTerminalStopWordIsIgnored(t *testing.T) {
	ctx := newTestContext()
	got := parseFixed(t, ctx, nil, tokenstream.W("dog"), tokenstream.SW("the"))

	if len(got) != 1 {
		t.Fatalf("got %d terms, want 1 (terminal stop word ignored)", len(got))
	}
}

func TestNonTerminalStopWordEmitsNothing(t *testing.T) {
	ctx := newTestContext()
	got := parseFixed(t, ctx, nil, tokenstream.SW("the"), tokenstream.W("dog"))

	if len(got) != 1 {
		t.Fatalf("got %d terms, want 1 (leading stop word contributes nothing outside a phrase)", len(got))
	}
	if got[0].Positions.Start != 1 {
		t.Errorf("position = %d, want 1 (stop word still advances position)", got[0].Positions.Start)
	}
}

func TestMaxTokenCountTruncatesStream(t *testing.T) {
	ctx := newTestContext()
	ctx.Limits.MaxTokenCount = 2

	got := parseFixed(t, ctx, nil, tokenstream.W("a"), tokenstream.W("b"), tokenstream.W("c"))

	// Only the first 2 tokens are ever pulled: "a" (non-terminal within
	// the truncated view) and "b" (terminal within the truncated view).
	if len(got) != 2 {
		t.Fatalf("got %d terms, want 2 (truncated at MaxTokenCount)", len(got))
	}
	last, _ := ctx.Term(got[len(got)-1].Value)
	if !last.IsPrefix {
		t.Errorf("expected the last token visible under truncation to be treated as terminal/prefix")
	}
}

func TestPositionsNonDecreasing(t *testing.T) {
	ctx := newTestContext()
	got := parseFixed(t, ctx, nil,
		tokenstream.W("alpha"), tokenstream.SoftSep(" "), tokenstream.W("beta"), tokenstream.HardSep("."), tokenstream.W("gamma"))

	for i := 1; i < len(got); i++ {
		if got[i].Positions.Start < got[i-1].Positions.End {
			t.Errorf("positions decreased between term %d (%+v) and %d (%+v)", i-1, got[i-1].Positions, i, got[i].Positions)
		}
	}
}

// `"foo"bar"baz`: "foo" opens and closes its own phrase, "bar" sits
// between two separate quote toggles and is a bare word, and the final
// quote opens a phrase for "baz" that is left unterminated.
func TestQuoteTogglesAroundBareWord(t *testing.T) {
	ctx := newTestContext()
	got := parseFixed(t, ctx, nil,
		tokenstream.SoftSep(`"`), tokenstream.W("foo"), tokenstream.SoftSep(`"`), tokenstream.W("bar"),
		tokenstream.SoftSep(`"`), tokenstream.W("baz"))

	if len(got) != 3 {
		t.Fatalf("got %d terms, want 3, got %+v", len(got), got)
	}
	foo, _ := ctx.Term(got[0].Value)
	bar, _ := ctx.Term(got[1].Value)
	baz, _ := ctx.Term(got[2].Value)

	if foo.ZeroTypo.Phrase == nil {
		t.Errorf("expected foo to be a phrase")
	}
	if bar.ZeroTypo.Phrase != nil {
		t.Errorf("expected bar to be a bare word, not a phrase")
	}
	if baz.ZeroTypo.Phrase == nil {
		t.Errorf("expected baz's unterminated quote to close as a phrase")
	}
}

// A single separator token may itself carry multiple quote characters
// (e.g. a closing quote immediately followed by an opening quote, as in
// `"a""b"`), and must toggle phrase state once per character.
func TestMultipleQuoteTogglesInSingleSeparatorToken(t *testing.T) {
	ctx := newTestContext()
	got := parseFixed(t, ctx, nil,
		tokenstream.SoftSep(`"`), tokenstream.W("a"), tokenstream.SoftSep(`""`), tokenstream.W("b"), tokenstream.SoftSep(`"`))

	if len(got) != 2 {
		t.Fatalf("got %d terms, want 2, got %+v", len(got), got)
	}
	a, _ := ctx.Term(got[0].Value)
	b, _ := ctx.Term(got[1].Value)
	if a.ZeroTypo.Phrase == nil || b.ZeroTypo.Phrase == nil {
		t.Errorf("expected both a and b to be phrases (closed then reopened within one separator token)")
	}
}
