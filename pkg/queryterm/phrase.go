package queryterm

import "strings"

// Phrase is an ordered sequence of optional word handles, one slot per
// token position between a pair of matched double quotes. A phrase with no
// non-stop-word slot is meaningless and must never be interned; callers
// building a Phrase are responsible for discarding empty ones before they
// reach an interner (see pkg/phrasebuilder).
type Phrase struct {
	Words []OptionalWordHandle
}

// HasContent reports whether at least one slot is a real word, i.e. the
// phrase is meaningful per the data-model invariant in spec.md §3.
func (p Phrase) HasContent() bool {
	for _, w := range p.Words {
		if w.Valid {
			return true
		}
	}
	return false
}

// Key returns a structural signature suitable for equality-keyed interning.
// Two phrases with identical slot sequences (including None slots at the
// same positions) produce the same key.
func (p Phrase) Key() string {
	var b strings.Builder
	for i, w := range p.Words {
		if i > 0 {
			b.WriteByte('\x1f')
		}
		if w.Valid {
			b.WriteByte('1')
			writeUint32(&b, uint32(w.Handle))
		} else {
			b.WriteByte('0')
		}
	}
	return b.String()
}

func writeUint32(b *strings.Builder, v uint32) {
	// plain decimal (no leading zeros), avoids importing strconv at every call site
	const digits = "0123456789"
	if v == 0 {
		b.WriteByte('0')
		return
	}
	var buf [10]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = digits[v%10]
		v /= 10
	}
	b.Write(buf[i:])
}

// Describe reconstructs a human-readable surface form for the phrase by
// resolving each present slot through resolve and space-joining the
// results; stop-word slots contribute nothing (mirroring milli's
// Phrase::description).
func (p Phrase) Describe(resolve func(WordHandle) (string, bool)) string {
	var parts []string
	for _, w := range p.Words {
		if !w.Valid {
			continue
		}
		if s, ok := resolve(w.Handle); ok {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}
