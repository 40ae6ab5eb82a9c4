package tokenstream

// Peekable wraps a Stream with one token of lookahead, mirroring the Rust
// iterator's Peekable adapter that the reference parser relies on to decide
// whether a Word token is the terminal token of the query (spec.md §4.5).
type Peekable struct {
	inner   Stream
	lookhd  Token
	hasLook bool
	done    bool
}

// NewPeekable wraps s in a Peekable.
func NewPeekable(s Stream) *Peekable {
	return &Peekable{inner: s}
}

// Next consumes and returns the next token.
func (p *Peekable) Next() (Token, bool) {
	if p.hasLook {
		p.hasLook = false
		return p.lookhd, true
	}
	if p.done {
		return Token{}, false
	}
	tok, ok := p.inner.Next()
	if !ok {
		p.done = true
		return Token{}, false
	}
	return tok, true
}

// Peek returns the next token without consuming it.
func (p *Peekable) Peek() (Token, bool) {
	if p.hasLook {
		return p.lookhd, true
	}
	if p.done {
		return Token{}, false
	}
	tok, ok := p.inner.Next()
	if !ok {
		p.done = true
		return Token{}, false
	}
	p.lookhd = tok
	p.hasLook = true
	return tok, true
}

// HasMore reports whether at least one more token is available.
func (p *Peekable) HasMore() bool {
	_, ok := p.Peek()
	return ok
}
