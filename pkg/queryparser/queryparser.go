// Package queryparser implements the outer driver of the query core: it
// consumes a stream of normalized tokens, maintains token position, opens
// and closes phrases, enforces token/word limits, and emits an ordered list
// of LocatedQueryTerm (spec.md §4.5).
package queryparser

import (
	"strings"

	"github.com/bastiangx/querix/pkg/phrasebuilder"
	"github.com/bastiangx/querix/pkg/queryterm"
	"github.com/bastiangx/querix/pkg/searchctx"
	"github.com/bastiangx/querix/pkg/termbuilder"
	"github.com/bastiangx/querix/pkg/tokenstream"
	"github.com/bastiangx/querix/pkg/typopolicy"
)

// Parse converts tok into a list of LocatedQueryTerm. wordsLimit, if
// non-nil, caps the number of emitted located terms; once reached, Parse
// returns immediately without draining the remaining input. The token
// stream is truncated at ctx.Limits.MaxTokenCount tokens — further tokens
// are silently dropped (spec.md §4.5 step 1).
func Parse(ctx *searchctx.Context, tok tokenstream.Stream, wordsLimit *int) ([]queryterm.LocatedQueryTerm, error) {
	typos, err := typopolicy.New(ctx.Config)
	if err != nil {
		return nil, err
	}
	return parseWithTypoFunc(ctx, tok, wordsLimit, typos)
}

// parseWithTypoFunc is the testable core of Parse, taking the typo
// function directly so tests don't need a ConfigSource stub for every
// scenario.
func parseWithTypoFunc(ctx *searchctx.Context, tok tokenstream.Stream, wordsLimit *int, typos typopolicy.Func) ([]queryterm.LocatedQueryTerm, error) {
	partsLimit := int(^uint(0) >> 1) // max int, i.e. "unbounded"
	if wordsLimit != nil {
		partsLimit = *wordsLimit
	}

	var located []queryterm.LocatedQueryTerm
	phrase := phrasebuilder.Empty()
	phraseOpen := false

	// Start with the last u16 value so the first wrapping_add(1) lands on
	// 0 — this must be preserved verbatim (spec.md §4.5 step 2, §8
	// boundary behavior, §9 open question).
	var position uint16 = ^uint16(0)
	// seenContent records whether a Word/StopWord has advanced the counter
	// yet; hard separators before that point leave it untouched.
	seenContent := false

	peekable := tokenstream.NewPeekable(tokenstream.Take(tok, ctx.Limits.MaxTokenCount))

	for {
		token, ok := peekable.Next()
		if !ok {
			break
		}

		if token.Lemma == "" {
			continue
		}
		if len(located) >= partsLimit {
			return located, nil
		}

		switch token.Kind {
		case tokenstream.Word, tokenstream.StopWord:
			position++
			seenContent = true

			if phraseOpen {
				var err error
				phrase, err = phrase.PushWord(ctx, phrasebuilder.FromToken(token.Kind == tokenstream.StopWord, token.Lemma), position)
				if err != nil {
					return nil, err
				}
				continue
			}

			if peekable.HasMore() {
				if token.Kind == tokenstream.Word {
					term, err := termbuilder.Build(ctx, token.Lemma, typos(token.Lemma), false)
					if err != nil {
						return nil, err
					}
					handle, err := ctx.InternTerm(term)
					if err != nil {
						return nil, err
					}
					located = append(located, queryterm.LocatedQueryTerm{
						Value:     handle,
						Positions: queryterm.PositionRange{Start: position, End: position},
					})
				}
				// non-terminal StopWord (more tokens remain): emit nothing.
			} else {
				if token.Kind == tokenstream.Word {
					term, err := termbuilder.Build(ctx, token.Lemma, typos(token.Lemma), true)
					if err != nil {
						return nil, err
					}
					handle, err := ctx.InternTerm(term)
					if err != nil {
						return nil, err
					}
					located = append(located, queryterm.LocatedQueryTerm{
						Value:     handle,
						Positions: queryterm.PositionRange{Start: position, End: position},
					})
				}
				// terminal StopWord: ignored.
			}

		case tokenstream.Separator:
			switch token.SepKind {
			case tokenstream.Hard:
				// A leading hard separator does not advance the counter, so
				// the first content word still lands on position 0.
				if seenContent {
					position++
				}
			case tokenstream.Soft:
				// Soft separators carry no positional weight (spec.md §9
				// open question — this spec codifies the observed
				// behavior verbatim).
			}

			if token.SepKind == tokenstream.Hard && phraseOpen {
				lq, built, err := phrase.Build(ctx)
				if err != nil {
					return nil, err
				}
				if built {
					located = append(located, lq)
				}
				phrase = phrasebuilder.Empty()
				// phraseOpen stays true: a hard separator immediately
				// reopens a fresh phrase even inside quotes.
			} else if token.SepKind == tokenstream.Hard {
				phraseOpen = false
				phrase = phrasebuilder.Empty()
			}

			quoteCount := strings.Count(token.Lemma, `"`)
			if quoteCount == 0 {
				continue
			}

			if phraseOpen {
				quoteCount--
				lq, built, err := phrase.Build(ctx)
				if err != nil {
					return nil, err
				}
				if built {
					located = append(located, lq)
				}
				phrase = phrasebuilder.Empty()
			}

			phraseOpen = quoteCount%2 == 1

		case tokenstream.Unknown:
			// ignored
		}
	}

	if phraseOpen {
		lq, built, err := phrase.Build(ctx)
		if err != nil {
			return nil, err
		}
		if built {
			located = append(located, lq)
		}
	}

	return located, nil
}
