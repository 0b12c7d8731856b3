// ═══════════════════════════════════════════════════════════════════════════════
// MATCH OPERATION
// ═══════════════════════════════════════════════════════════════════════════════
// MatchDocument answers a narrower question than ranking: "which of this
// query's plus terms appear in this one document?" A minus term present in
// the document disqualifies it outright — the result is an empty match list
// (but the document's status is still returned, since that much is always
// knowable without running the query at all).
// ═══════════════════════════════════════════════════════════════════════════════

package blaze

import (
	"sort"
	"sync"
	"sync/atomic"
)

// MatchDocument evaluates raw against a single document sequentially.
func (e *Engine) MatchDocument(raw string, docID int) ([]string, Status, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	doc, ok := e.store.get(docID)
	if !ok {
		return nil, 0, ErrUnknownDocument
	}

	query, err := ParseQuery(raw, e.stop)
	if err != nil {
		return nil, 0, err
	}

	terms := e.docToWordFreq[docID]
	for _, w := range query.Minus {
		if _, present := terms[w]; present {
			return nil, doc.Status, nil
		}
	}

	var matched []string
	for _, w := range query.Plus {
		if _, present := terms[w]; present {
			matched = append(matched, w)
		}
	}
	matched = sortAndDedupe(matched)
	return matched, doc.Status, nil
}

// MatchDocumentPar evaluates raw against a single document using the
// unsorted query-parse mode and one goroutine per membership test, sorting
// and deduplicating the final result. Every goroutine only ever reads
// terms — concurrent map reads are safe as long as nothing writes to it
// meanwhile, which e.mu.RLock() guarantees for the duration of the call.
func (e *Engine) MatchDocumentPar(raw string, docID int) ([]string, Status, error) {
	e.mu.RLock()
	defer e.mu.RUnlock()

	doc, ok := e.store.get(docID)
	if !ok {
		return nil, 0, ErrUnknownDocument
	}

	query, err := ParseQueryUnsorted(raw, e.stop)
	if err != nil {
		return nil, 0, err
	}

	terms := e.docToWordFreq[docID]

	if disqualifiedPar(query.Minus, terms) {
		return nil, doc.Status, nil
	}

	matched := dedupeUnsorted(matchPar(query.Plus, terms))
	sort.Strings(matched)
	return matched, doc.Status, nil
}

// disqualifiedPar reports whether any of minusTerms is present in terms,
// testing every term concurrently in its own goroutine.
func disqualifiedPar(minusTerms []string, terms map[string]float64) bool {
	if len(minusTerms) == 0 {
		return false
	}
	var found int32
	var wg sync.WaitGroup
	for _, w := range minusTerms {
		wg.Add(1)
		go func(w string) {
			defer wg.Done()
			if _, present := terms[w]; present {
				atomic.StoreInt32(&found, 1)
			}
		}(w)
	}
	wg.Wait()
	return atomic.LoadInt32(&found) != 0
}

// matchPar tests every one of plusTerms for membership in terms
// concurrently, one goroutine per term, each writing only to its own
// index of results so no goroutine ever shares a mutable slot with
// another.
func matchPar(plusTerms []string, terms map[string]float64) []string {
	results := make([]string, len(plusTerms))
	var wg sync.WaitGroup
	for i, w := range plusTerms {
		wg.Add(1)
		go func(i int, w string) {
			defer wg.Done()
			if _, present := terms[w]; present {
				results[i] = w
			}
		}(i, w)
	}
	wg.Wait()

	matched := make([]string, 0, len(results))
	for _, w := range results {
		if w != "" {
			matched = append(matched, w)
		}
	}
	return matched
}

func dedupeUnsorted(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	out := make([]string, 0, len(terms))
	for _, t := range terms {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}
