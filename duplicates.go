// ═══════════════════════════════════════════════════════════════════════════════
// DUPLICATE DETECTION
// ═══════════════════════════════════════════════════════════════════════════════
// Two documents are duplicates iff their term *sets* coincide — term
// frequencies are irrelevant to this comparison, only which terms appear at
// all. The first occurrence (by insertion order) always survives; every
// later document with the same term set is removed. This is the normative
// set-of-sets variant; the historical O(N²) pairwise-compare draft is not
// reproduced (see notes).
// ═══════════════════════════════════════════════════════════════════════════════

package blaze

import (
	"sort"
	"strings"
)

// RemoveDuplicates sweeps the engine in insertion order and removes every
// document whose term set has already been seen, logging one notice per
// removed id. It is idempotent: a second call removes nothing.
func (e *Engine) RemoveDuplicates() {
	e.mu.Lock()
	defer e.mu.Unlock()

	seen := make(map[string]struct{})
	var toRemove []int

	for _, id := range e.store.ids() {
		key := termSetKey(e.docToWordFreq[id])
		if _, present := seen[key]; present {
			toRemove = append(toRemove, id)
			continue
		}
		seen[key] = struct{}{}
	}

	for _, id := range toRemove {
		_ = e.removeDocumentLocked(id)
		e.logger.Info().Int("doc_id", id).Msgf("Found duplicate document id %d", id)
	}
}

// termSetKey produces a canonical string for a document's term set (not its
// tf values), suitable for equality comparison via a plain map lookup.
func termSetKey(byTerm map[string]float64) string {
	terms := make([]string, 0, len(byTerm))
	for t := range byTerm {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	return strings.Join(terms, "\x00")
}
