// ═══════════════════════════════════════════════════════════════════════════════
// QUERY PARSER
// ═══════════════════════════════════════════════════════════════════════════════
// Turns a raw query string into a normalised Query{Plus, Minus}. A leading
// '-' marks a term as a minus (forbidden) term; everything else is a plus
// (required) term. Stop words are dropped from both lists. Two modes exist:
// sorted (the default — each list sorted ascending and de-duplicated) and
// unsorted (order-preserving, may contain duplicates — used by the parallel
// match operation, which sorts and dedupes its own output at the end).
// ═══════════════════════════════════════════════════════════════════════════════

package blaze

import (
	"fmt"
	"sort"
)

// Query is the normalised result of parsing a raw query string.
type Query struct {
	Plus  []string
	Minus []string
}

// ParseQuery parses raw in sorted mode: each of Plus and Minus comes back
// sorted ascending with duplicates removed.
func ParseQuery(raw string, stop *StopWordSet) (Query, error) {
	return parseQuery(raw, stop, true)
}

// ParseQueryUnsorted parses raw preserving the order terms appeared in and
// without de-duplicating. This is what the parallel match operation uses,
// since it sorts and dedupes its own result afterward.
func ParseQueryUnsorted(raw string, stop *StopWordSet) (Query, error) {
	return parseQuery(raw, stop, false)
}

func parseQuery(raw string, stop *StopWordSet, sorted bool) (Query, error) {
	tokens, err := Tokenize(raw)
	if err != nil {
		return Query{}, err
	}

	var q Query
	for _, tok := range tokens {
		word, minus, err := parseQueryWord(tok)
		if err != nil {
			return Query{}, err
		}
		if stop.Contains(word) {
			continue
		}
		if minus {
			q.Minus = append(q.Minus, word)
		} else {
			q.Plus = append(q.Plus, word)
		}
	}

	if sorted {
		q.Plus = sortAndDedupe(q.Plus)
		q.Minus = sortAndDedupe(q.Minus)
	}
	return q, nil
}

// parseQueryWord strips a leading '-' (marking a minus term) and validates
// what remains: it must be non-empty and must not itself begin with '-'
// (i.e. "--word" is rejected, not silently double-stripped).
func parseQueryWord(tok string) (word string, minus bool, err error) {
	if tok == "" {
		return "", false, fmt.Errorf("%w: empty term", ErrInvalidQueryTerm)
	}
	if tok[0] != '-' {
		return tok, false, nil
	}
	rest := tok[1:]
	if rest == "" {
		return "", false, fmt.Errorf("%w: %q has no body after '-'", ErrInvalidQueryTerm, tok)
	}
	if rest[0] == '-' {
		return "", false, fmt.Errorf("%w: %q has a second leading '-'", ErrInvalidQueryTerm, tok)
	}
	return rest, true, nil
}

func sortAndDedupe(words []string) []string {
	if len(words) == 0 {
		return words
	}
	sorted := append([]string(nil), words...)
	sort.Strings(sorted)
	out := sorted[:1]
	for _, w := range sorted[1:] {
		if w != out[len(out)-1] {
			out = append(out, w)
		}
	}
	return out
}
