// ═══════════════════════════════════════════════════════════════════════════════
// SLIDING-WINDOW EMPTY-REQUEST COUNTER
// ═══════════════════════════════════════════════════════════════════════════════
// RequestQueue wraps an engine to track how many of the last SlidingWindowSize
// requests came back empty. It keeps a bounded deque of {empty, timestamp}
// records and a running counter, sliding the window forward by one tick per
// request: once the oldest record falls SlidingWindowSize ticks behind the
// current tick, it is evicted, decrementing the counter if it was itself an
// empty-result record.
// ═══════════════════════════════════════════════════════════════════════════════

package blaze

import "container/list"

// SlidingWindowSize is the normative window width W.
const SlidingWindowSize = 1440

type queryResult struct {
	empty     bool
	timestamp uint64
}

// RequestQueue tracks the empty-result rate of queries run against an
// engine over the last SlidingWindowSize requests.
type RequestQueue struct {
	engine      *Engine
	requests    *list.List // of queryResult
	currentTime uint64
	emptyCount  int
}

// NewRequestQueue wraps engine with a sliding-window empty-request counter.
func NewRequestQueue(engine *Engine) *RequestQueue {
	return &RequestQueue{
		engine:   engine,
		requests: list.New(),
	}
}

// AddFindRequest runs query through the sequential ranker, records whether
// the result was empty, and slides the window forward by one tick.
func (q *RequestQueue) AddFindRequest(query Query, pred Predicate) []ScoredDocument {
	result := q.engine.FindTopDocumentsSeq(query, pred)
	q.record(len(result) == 0)
	return result
}

func (q *RequestQueue) record(empty bool) {
	q.currentTime++
	q.requests.PushBack(queryResult{empty: empty, timestamp: q.currentTime})
	if empty {
		q.emptyCount++
	}

	for q.requests.Len() > 0 {
		front := q.requests.Front().Value.(queryResult)
		if q.currentTime-front.timestamp < SlidingWindowSize {
			break
		}
		q.requests.Remove(q.requests.Front())
		if front.empty {
			q.emptyCount--
		}
	}
}

// NoResultRequests returns the number of empty-result requests seen within
// the last SlidingWindowSize requests.
func (q *RequestQueue) NoResultRequests() int {
	return q.emptyCount
}
