// ═══════════════════════════════════════════════════════════════════════════════
// RANKER: TF·IDF accumulation, filtering, and top-K ordering
// ═══════════════════════════════════════════════════════════════════════════════
// Both the sequential and parallel rankers implement exactly the same
// algorithm: accumulate relevance per plus-term weighted by idf, erase every
// document touched by a minus-term, then sort by relevance descending with
// a rating-descending tie-break inside RelevanceComparisonErr, truncated to
// MaxResultDocumentCount. The parallel ranker differs only in how the
// accumulate and minus-term erasure steps are computed — accumulation is
// fanned out across goroutines into the sharded map of C6, and erasure runs
// one goroutine per minus term — and must be observationally identical to
// the sequential ranker afterward.
// ═══════════════════════════════════════════════════════════════════════════════

package blaze

import (
	"math"
	"sort"
	"sync"
)

// ScoredDocument is one ranked result: a doc-id, its accumulated relevance,
// and its (immutable) rating.
type ScoredDocument struct {
	DocID     int
	Relevance float64
	Rating    int
}

// Predicate filters candidate documents during accumulation. It is invoked
// once per (plus-term, candidate doc) pair and must be pure and cheap.
type Predicate func(docID int, status Status, rating int) bool

// StatusPredicate returns a Predicate matching documents with the given
// status.
func StatusPredicate(want Status) Predicate {
	return func(_ int, status Status, _ int) bool {
		return status == want
	}
}

// ActualPredicate is the default predicate used when none is supplied: it
// matches only StatusActual documents.
func ActualPredicate() Predicate {
	return StatusPredicate(StatusActual)
}

// FindTopDocuments ranks documents against query using the sequential
// accumulator, equivalent to FindTopDocumentsSeq.
func (e *Engine) FindTopDocuments(query Query, pred Predicate) []ScoredDocument {
	return e.FindTopDocumentsSeq(query, pred)
}

// FindTopDocumentsSeq is the sequential ranker.
func (e *Engine) FindTopDocumentsSeq(query Query, pred Predicate) []ScoredDocument {
	e.mu.RLock()
	defer e.mu.RUnlock()

	acc := make(map[int]float64)
	n := e.store.count()

	for _, w := range query.Plus {
		pl, ok := e.wordToDocFreq[w]
		if !ok {
			continue
		}
		idf := inverseDocumentFrequency(n, e.documentFrequency(w))
		pl.Iterate(func(docID int, tf float64) {
			doc, ok := e.store.get(docID)
			if !ok {
				return
			}
			if pred(docID, doc.Status, doc.Rating) {
				acc[docID] += tf * idf
			}
		})
	}

	for _, w := range query.Minus {
		pl, ok := e.wordToDocFreq[w]
		if !ok {
			continue
		}
		pl.Iterate(func(docID int, _ float64) {
			delete(acc, docID)
		})
	}

	return e.materializeAndSort(acc)
}

// FindTopDocumentsPar is the parallel ranker: identical semantics to
// FindTopDocumentsSeq, computed by partitioning query.Plus into chunks and
// accumulating each chunk concurrently into a sharded map.
func (e *Engine) FindTopDocumentsPar(query Query, pred Predicate) []ScoredDocument {
	e.mu.RLock()
	defer e.mu.RUnlock()

	n := e.store.count()
	sm := newShardedMap(e.cfg.ShardCount)

	chunks := chunkTermsWeighted(query.Plus, e.cfg.ChunkCount, e.termCardinality)
	var wg sync.WaitGroup
	for _, chunk := range chunks {
		wg.Add(1)
		go func(chunk []string) {
			defer wg.Done()
			for _, w := range chunk {
				pl, ok := e.wordToDocFreq[w]
				if !ok {
					continue
				}
				idf := inverseDocumentFrequency(n, e.documentFrequency(w))
				pl.Iterate(func(docID int, tf float64) {
					doc, ok := e.store.get(docID)
					if !ok {
						return
					}
					if pred(docID, doc.Status, doc.Rating) {
						r := sm.Ref(docID)
						r.Add(tf * idf)
						r.Release()
					}
				})
			}
		}(chunk)
	}
	wg.Wait()

	acc := sm.buildOrdinaryMap()

	var minusWg sync.WaitGroup
	var minusMu sync.Mutex
	for _, w := range query.Minus {
		pl, ok := e.wordToDocFreq[w]
		if !ok {
			continue
		}
		minusWg.Add(1)
		go func(pl *postingList) {
			defer minusWg.Done()
			pl.Iterate(func(docID int, _ float64) {
				minusMu.Lock()
				delete(acc, docID)
				minusMu.Unlock()
			})
		}(pl)
	}
	minusWg.Wait()

	return e.materializeAndSort(acc)
}

// materializeAndSort turns the accumulator into a sorted, truncated result
// list. Must be called with e.mu held for reading.
func (e *Engine) materializeAndSort(acc map[int]float64) []ScoredDocument {
	results := make([]ScoredDocument, 0, len(acc))
	for docID, relevance := range acc {
		doc, ok := e.store.get(docID)
		if !ok {
			continue
		}
		results = append(results, ScoredDocument{
			DocID:     docID,
			Relevance: relevance,
			Rating:    doc.Rating,
		})
	}

	sort.Slice(results, func(i, j int) bool {
		a, b := results[i], results[j]
		if math.Abs(a.Relevance-b.Relevance) < RelevanceComparisonErr {
			return a.Rating > b.Rating
		}
		return a.Relevance > b.Relevance
	})

	if len(results) > MaxResultDocumentCount {
		results = results[:MaxResultDocumentCount]
	}
	return results
}

// inverseDocumentFrequency computes idf(w) = ln(N / df(w)).
func inverseDocumentFrequency(totalDocs, df int) float64 {
	if df == 0 {
		return 0
	}
	return math.Log(float64(totalDocs) / float64(df))
}

// chunkTermsWeighted partitions terms into at most chunkCount slices whose
// total weight is kept as even as possible, using a greedy
// longest-processing-time assignment: terms are sorted heaviest-first and
// each is assigned to whichever chunk currently carries the least weight.
// A term's weight is its document frequency, so a goroutine handling a
// common term (a long posting list to iterate) doesn't end up sharing a
// chunk with other common terms while lighter chunks sit idle.
func chunkTermsWeighted(terms []string, chunkCount int, weight func(string) int) [][]string {
	if chunkCount < 1 {
		chunkCount = 1
	}
	if len(terms) == 0 {
		return nil
	}
	if chunkCount > len(terms) {
		chunkCount = len(terms)
	}

	sorted := append([]string(nil), terms...)
	sort.Slice(sorted, func(i, j int) bool {
		return weight(sorted[i]) > weight(sorted[j])
	})

	chunks := make([][]string, chunkCount)
	chunkWeights := make([]int, chunkCount)
	for _, term := range sorted {
		lightest := 0
		for i := 1; i < chunkCount; i++ {
			if chunkWeights[i] < chunkWeights[lightest] {
				lightest = i
			}
		}
		chunks[lightest] = append(chunks[lightest], term)
		chunkWeights[lightest] += weight(term)
	}
	return chunks
}
