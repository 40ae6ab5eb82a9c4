package queryterm

// ZeroTypoTerm holds the exact-match variants of a QueryTerm.
type ZeroTypoTerm struct {
	// Phrase is set iff the term originated from a quoted phrase.
	Phrase *PhraseHandle
	// Exact is reserved for downstream consumers (exact word match).
	Exact *WordHandle
	// PrefixOf is populated downstream: words for which this word is a
	// known prefix.
	PrefixOf map[WordHandle]struct{}
	// Synonyms is populated for n-gram terms: each synonym is itself a
	// phrase of one or more words.
	Synonyms map[PhraseHandle]struct{}
	// UsePrefixDB is reserved for downstream consumers; nothing in this
	// repository sets it (pkg/prefixindex fills PrefixOf only).
	UsePrefixDB *PrefixDBHandle
}

// PrefixDBHandle is an opaque pointer into a downstream prefix lookup
// structure. No package in this repository constructs one.
type PrefixDBHandle uint32

// NewZeroTypoTerm returns a ZeroTypoTerm with all optional fields empty,
// matching the term builder's baseline construction (spec.md §4.3).
func NewZeroTypoTerm() ZeroTypoTerm {
	return ZeroTypoTerm{
		PrefixOf: make(map[WordHandle]struct{}),
		Synonyms: make(map[PhraseHandle]struct{}),
	}
}

// QueryTerm is the core unit of query representation.
type QueryTerm struct {
	// Original is the word handle of the original surface form, or the
	// handle of a synthesized string for phrases/ngrams.
	Original WordHandle
	// NgramWords is set iff this term is a synthesized n-gram; it records
	// the constituent word handles in order.
	NgramWords []WordHandle
	// IsPrefix is true iff this term may match by prefix. Reserved for the
	// last non-phrase word of the query; always false for phrase terms.
	IsPrefix bool
	// MaxNbrTypos is the maximum typo distance this term may tolerate, in
	// 0..=2.
	MaxNbrTypos uint8
	ZeroTypo    ZeroTypoTerm
	OneTypo     Lazy[OneTypoTerm]
	TwoTypo     Lazy[TwoTypoTerm]
}

// OneTypoTerm and TwoTypoTerm are left unspecified beyond their existence as
// lazy slots: populating them requires scanning the word-frequency index,
// which is a downstream ranking concern outside this core (spec.md §9,
// "Lazy typo variants"). They are modeled as opaque placeholders so the
// Lazy[T] slot has a concrete type without this package reaching into
// ranking's data structures.
type OneTypoTerm struct {
	Corrections map[WordHandle]struct{}
}

type TwoTypoTerm struct {
	Corrections map[WordHandle]struct{}
}

// IsNgram reports whether this term was synthesized by the n-gram
// synthesizer.
func (t QueryTerm) IsNgram() bool {
	return t.NgramWords != nil
}

// IsPhrase reports whether this term originated from a quoted phrase.
func (t QueryTerm) IsPhrase() bool {
	return t.ZeroTypo.Phrase != nil
}

// OriginalSingleWord returns the term's word handle iff the term is neither
// a phrase nor an n-gram — i.e. it represents exactly one original word.
// The n-gram synthesizer (pkg/ngram) requires this of every input term.
func (t QueryTerm) OriginalSingleWord() (WordHandle, bool) {
	if t.IsPhrase() || t.IsNgram() {
		return 0, false
	}
	return t.Original, true
}

// PositionRange is an inclusive [Start, End] range of u16 token positions.
type PositionRange struct {
	Start uint16
	End   uint16
}

// LocatedQueryTerm pairs a term handle with its position range in the
// original query.
type LocatedQueryTerm struct {
	Value     TermHandle
	Positions PositionRange
}
