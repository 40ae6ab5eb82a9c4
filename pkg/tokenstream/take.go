package tokenstream

// Take wraps s so that at most n tokens are ever pulled from it, after
// which Next reports end-of-stream regardless of what s itself would
// yield. Composing this underneath Peekable ensures that a lookahead Peek
// also respects the truncation boundary — matching the reference parser's
// `query.take(MAX_TOKEN_COUNT).peekable()` construction (spec.md §4.5 step
// 1), rather than truncating only the tokens actually processed.
func Take(s Stream, n int) Stream {
	return &takeStream{inner: s, remaining: n}
}

type takeStream struct {
	inner     Stream
	remaining int
}

func (t *takeStream) Next() (Token, bool) {
	if t.remaining <= 0 {
		return Token{}, false
	}
	tok, ok := t.inner.Next()
	if !ok {
		t.remaining = 0
		return Token{}, false
	}
	t.remaining--
	return tok, true
}
