package tokenstream

// Fixed builds a Stream over an explicit slice of tokens. It is the
// standard way test code constructs a token stream matching an end-to-end
// scenario from spec.md §8, without going through Tokenize's string
// parsing.
func Fixed(toks ...Token) Stream {
	return &sliceStream{toks: toks}
}

// W is a shorthand constructor for a Word token.
func W(lemma string) Token { return Token{Kind: Word, Lemma: lemma} }

// SW is a shorthand constructor for a StopWord token.
func SW(lemma string) Token { return Token{Kind: StopWord, Lemma: lemma} }

// HardSep is a shorthand constructor for a Hard separator token.
func HardSep(lemma string) Token { return Token{Kind: Separator, SepKind: Hard, Lemma: lemma} }

// SoftSep is a shorthand constructor for a Soft separator token.
func SoftSep(lemma string) Token { return Token{Kind: Separator, SepKind: Soft, Lemma: lemma} }
