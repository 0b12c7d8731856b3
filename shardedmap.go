// ═══════════════════════════════════════════════════════════════════════════════
// SHARDED CONCURRENT MAP
// ═══════════════════════════════════════════════════════════════════════════════
// The parallel ranker needs many goroutines to accumulate relevance scores
// into a shared int → float64 map without serialising on one global mutex.
// shardedMap partitions the key space across S independent shards, each
// guarded by its own mutex, so that workers touching different doc-ids
// proceed without contention. It is scoped to the lifetime of a single
// parallel ranking call — it is never shared across calls.
// ═══════════════════════════════════════════════════════════════════════════════

package blaze

import "sync"

type shard struct {
	mu     sync.Mutex
	values map[int]float64
}

// shardedMap is a lock-striped accumulator from doc-id to relevance score.
type shardedMap struct {
	shards []*shard
}

func newShardedMap(shardCount int) *shardedMap {
	if shardCount < 1 {
		shardCount = 1
	}
	shards := make([]*shard, shardCount)
	for i := range shards {
		shards[i] = &shard{values: make(map[int]float64)}
	}
	return &shardedMap{shards: shards}
}

func (m *shardedMap) shardFor(key int) *shard {
	idx := key % len(m.shards)
	if idx < 0 {
		idx += len(m.shards)
	}
	return m.shards[idx]
}

// ref is a guarded handle giving read-modify-write access to key's value,
// creating it with 0.0 if absent. It holds the shard's lock for the
// duration of the caller's use of the handle; callers must call Release
// exactly once, and must never hold two handles at the same time (that
// would risk a lock-ordering deadlock across shards).
type ref struct {
	s   *shard
	key int
}

// Ref acquires a guarded handle for key.
func (m *shardedMap) Ref(key int) *ref {
	s := m.shardFor(key)
	s.mu.Lock()
	return &ref{s: s, key: key}
}

// Add accumulates delta into the referenced key's value.
func (r *ref) Add(delta float64) {
	r.s.values[r.key] += delta
}

// Release returns the shard's lock. The handle must not be used afterward.
func (r *ref) Release() {
	r.s.mu.Unlock()
}

// buildOrdinaryMap acquires every shard's lock in shard order and returns a
// merged, single-threaded map. Callers must release every outstanding ref
// first — holding one while calling this deadlocks.
func (m *shardedMap) buildOrdinaryMap() map[int]float64 {
	merged := make(map[int]float64)
	for _, s := range m.shards {
		s.mu.Lock()
		for k, v := range s.values {
			merged[k] = v
		}
		s.mu.Unlock()
	}
	return merged
}
