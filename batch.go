// ═══════════════════════════════════════════════════════════════════════════════
// BATCH QUERY FAÇADE
// ═══════════════════════════════════════════════════════════════════════════════
// ProcessQueries fans many parsed queries out across goroutines, one per
// query, preserving input order in the result — but each individual query
// is ranked with the sequential ranker. The parallelism here is across
// queries, never inside one; that is what the parallel ranker is for.
// ═══════════════════════════════════════════════════════════════════════════════

package blaze

import "sync"

// ProcessQueries evaluates queries in parallel (one goroutine per query,
// each using the sequential ranker) and returns one result slice per
// query, in input order.
func (e *Engine) ProcessQueries(queries []Query, pred Predicate) [][]ScoredDocument {
	results := make([][]ScoredDocument, len(queries))

	var wg sync.WaitGroup
	for i, q := range queries {
		wg.Add(1)
		go func(i int, q Query) {
			defer wg.Done()
			results[i] = e.FindTopDocumentsSeq(q, pred)
		}(i, q)
	}
	wg.Wait()

	return results
}

// ProcessQueriesJoined returns the concatenation of ProcessQueries' result
// slices, in input order.
func (e *Engine) ProcessQueriesJoined(queries []Query, pred Predicate) []ScoredDocument {
	perQuery := e.ProcessQueries(queries, pred)
	var joined []ScoredDocument
	for _, r := range perQuery {
		joined = append(joined, r...)
	}
	return joined
}
