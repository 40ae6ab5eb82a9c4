// Package synonyms models the index's synonym table: a map from an
// original word sequence to a list of alternative word sequences
// (spec.md §6 — "synonyms() -> Map<Vec<String>, Vec<Vec<String>>>").
package synonyms

import "strings"

// Map looks up alternative word sequences for an exact original word
// sequence. Keys are matched against words exactly as they come out of the
// tokenizer's lemma field — never re-normalized — per the resolution of
// spec.md §9's open question in SPEC_FULL.md §4.7.
type Map map[string][][]string

// key joins words with a separator that cannot appear inside a normalized
// lemma, so two distinct sequences never collide.
func key(words []string) string {
	return strings.Join(words, "\x1f")
}

// New builds a Map from pairs of (original sequence, alternatives).
func New() Map {
	return make(Map)
}

// Add registers alternatives for the exact sequence original.
func (m Map) Add(original []string, alternatives ...[]string) {
	m[key(original)] = append(m[key(original)], alternatives...)
}

// Lookup returns the alternative sequences registered for words, or nil if
// none are registered.
func (m Map) Lookup(words []string) [][]string {
	return m[key(words)]
}
