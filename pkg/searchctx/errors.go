package searchctx

import "errors"

// The query core distinguishes three error kinds (spec.md §7). Two of them
// are the sentinels below, and both are fatal to the owning Context; a
// caller that receives one must discard the context rather than continue
// parsing with it. The third, a tokenizer that yields no tokens, is not an
// error: Parse returns an empty sequence.
var (
	// ErrConfigRead is returned when the index transaction cannot yield a
	// required setting (typo thresholds, exact words, synonyms).
	ErrConfigRead = errors.New("searchctx: configuration read failure")

	// ErrInternerOverflow is returned when an interner exhausts its handle
	// space.
	ErrInternerOverflow = errors.New("searchctx: interner handle space exhausted")
)
