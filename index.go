// ═══════════════════════════════════════════════════════════════════════════════
// INVERTED INDEX & ENGINE
// ═══════════════════════════════════════════════════════════════════════════════
// Engine is the server: it owns the document store and the inverted
// index, and is the single entry point for every operation the core
// exposes — ingestion, removal, ranking, match, word-frequency lookup,
// duplicate detection.
//
// The index keeps two maps in lockstep:
//
//	wordToDocFreq : term → (doc-id → tf)   — backed by a postingList per term
//	docToWordFreq : doc-id → (term → tf)
//
// A third structure, dfBitmap, is not part of the normative index: it is a
// roaring bitmap of each term's document set, maintained alongside
// wordToDocFreq purely to feed the parallel ranker's chunk scheduler (see
// chunkTermsWeighted in ranker.go), which uses each term's cardinality to
// balance goroutines by how much posting-list work they'll actually do.
// It is never consulted for tf or idf — documentFrequency reads the
// posting list's own O(1) size field for that — and is always rebuilt in
// lockstep with wordToDocFreq.
// ═══════════════════════════════════════════════════════════════════════════════

package blaze

import (
	"fmt"
	"sync"

	"github.com/RoaringBitmap/roaring"
	"github.com/rs/zerolog"
)

// MaxResultDocumentCount bounds the number of results any ranking call
// returns.
const MaxResultDocumentCount = 5

// RelevanceComparisonErr is the normative floating-point tolerance used to
// decide when two relevance scores are "equal" for tie-breaking purposes.
const RelevanceComparisonErr = 1e-6

// Engine is the in-memory full-text search core.
type Engine struct {
	mu sync.RWMutex

	cfg    Config
	stop   *StopWordSet
	logger zerolog.Logger

	store *documentStore

	wordToDocFreq map[string]*postingList
	docToWordFreq map[int]map[string]float64
	dfBitmap      map[string]*roaring.Bitmap
}

// NewEngine builds an engine with the given stop words and configuration.
// The logger is used as given; no default is substituted. Pass
// zerolog.Nop() to discard the engine's log events.
func NewEngine(stop *StopWordSet, cfg Config, logger zerolog.Logger) *Engine {
	return &Engine{
		cfg:           cfg,
		stop:          stop,
		logger:        logger,
		store:         newDocumentStore(),
		wordToDocFreq: make(map[string]*postingList),
		docToWordFreq: make(map[int]map[string]float64),
		dfBitmap:      make(map[string]*roaring.Bitmap),
	}
}

// AddDocument ingests a document. It validates before mutating any state:
// a rejected document leaves the engine byte-identical to before the call.
func (e *Engine) AddDocument(docID int, text string, status Status, ratings []int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if docID < 0 {
		return fmt.Errorf("%w: %d", ErrNegativeDocID, docID)
	}
	if e.store.has(docID) {
		return fmt.Errorf("%w: %d", ErrDuplicateDocID, docID)
	}

	tokens, err := Tokenize(text)
	if err != nil {
		return err
	}
	words := filterStopWords(tokens, e.stop)

	// Validation is now complete; commit.
	doc := &Document{
		ID:      docID,
		Content: text,
		Status:  status,
		Rating:  computeRating(ratings),
	}
	e.store.insert(doc)
	// docToWordFreq always gets an entry for docID, even an empty one:
	// invariant I1 requires every stored document to have a key here,
	// and a zero-non-stop-word document is accepted with no index
	// entries rather than rejected (see the Open Question resolution).
	e.docToWordFreq[docID] = make(map[string]float64)

	if len(words) > 0 {
		e.indexWords(docID, words)
	}

	e.logger.Info().
		Int("doc_id", docID).
		Int("term_count", len(words)).
		Msg("indexed document")
	return nil
}

// indexWords accumulates tf for every occurrence of every word into both
// lockstep maps: k = 1.0 / |words|, added once per occurrence (so a word
// appearing twice ends up with tf = 2k).
func (e *Engine) indexWords(docID int, words []string) {
	k := 1.0 / float64(len(words))

	byTerm := e.docToWordFreq[docID]

	for _, w := range words {
		byTerm[w] += k

		pl := e.wordToDocFreq[w]
		if pl == nil {
			pl = newPostingList()
			e.wordToDocFreq[w] = pl
			e.dfBitmap[w] = roaring.New()
		}
		pl.Upsert(docID, byTerm[w])
		e.dfBitmap[w].Add(uint32(docID))
	}
}

// RemoveDocument removes docID and every index entry it owns.
func (e *Engine) RemoveDocument(docID int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.removeDocumentLocked(docID)
}

// RemoveDocumentPar removes docID the same way, but runs the per-term
// erasure as one goroutine per term, each mutating its own term's
// postingList and bitmap concurrently with the others (see
// eraseTermEntryPar). The caller still holds the engine's exclusive
// writer lock for the whole operation — no concurrent queries observe a
// partially-removed document.
func (e *Engine) RemoveDocumentPar(docID int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.removeDocumentParLocked(docID)
}

func (e *Engine) removeDocumentLocked(docID int) error {
	byTerm, ok := e.docToWordFreq[docID]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownDocument, docID)
	}
	for term := range byTerm {
		e.eraseTermEntry(term, docID)
	}
	delete(e.docToWordFreq, docID)
	e.store.remove(docID)
	return nil
}

func (e *Engine) removeDocumentParLocked(docID int) error {
	byTerm, ok := e.docToWordFreq[docID]
	if !ok {
		return fmt.Errorf("%w: %d", ErrUnknownDocument, docID)
	}

	terms := make([]string, 0, len(byTerm))
	for term := range byTerm {
		terms = append(terms, term)
	}

	// Every goroutine below owns a distinct term, so it is the only
	// goroutine ever touching that term's postingList or bitmap — the
	// actual per-document erase work (pl.Remove, bm.Remove) runs fully
	// concurrently. mapMu guards only the brief moment a goroutine needs
	// to delete its term's now-empty entries from the shared
	// wordToDocFreq/dfBitmap maps, since Go maps aren't safe for
	// concurrent writes even to disjoint keys.
	var wg sync.WaitGroup
	var mapMu sync.Mutex
	for _, term := range terms {
		wg.Add(1)
		go func(term string) {
			defer wg.Done()
			e.eraseTermEntryPar(term, docID, &mapMu)
		}(term)
	}
	wg.Wait()

	delete(e.docToWordFreq, docID)
	e.store.remove(docID)
	return nil
}

// eraseTermEntry removes docID from term's posting list and df bitmap,
// pruning the term entirely once its posting list is empty (invariant I3:
// a term key in word_to_doc_freq never has an empty inner map).
func (e *Engine) eraseTermEntry(term string, docID int) {
	pl, ok := e.wordToDocFreq[term]
	if !ok {
		return
	}
	pl.Remove(docID)
	if bm := e.dfBitmap[term]; bm != nil {
		bm.Remove(uint32(docID))
	}
	if pl.Len() == 0 {
		delete(e.wordToDocFreq, term)
		delete(e.dfBitmap, term)
	}
}

// eraseTermEntryPar is eraseTermEntry's concurrency-safe twin: the actual
// postingList/bitmap mutation happens lock-free (this goroutine is the
// only one that ever touches this term), and mapMu is taken only around
// the map reads/deletes that reach into the shared wordToDocFreq/dfBitmap
// maps.
func (e *Engine) eraseTermEntryPar(term string, docID int, mapMu *sync.Mutex) {
	mapMu.Lock()
	pl := e.wordToDocFreq[term]
	bm := e.dfBitmap[term]
	mapMu.Unlock()

	if pl == nil {
		return
	}
	pl.Remove(docID)
	if bm != nil {
		bm.Remove(uint32(docID))
	}

	if pl.Len() == 0 {
		mapMu.Lock()
		delete(e.wordToDocFreq, term)
		delete(e.dfBitmap, term)
		mapMu.Unlock()
	}
}

// documentFrequency returns df(w) = the number of documents containing w,
// read directly off the posting list's own size field.
func (e *Engine) documentFrequency(term string) int {
	pl, ok := e.wordToDocFreq[term]
	if !ok {
		return 0
	}
	return pl.Len()
}

// termCardinality returns the same quantity as documentFrequency but read
// from dfBitmap instead of the posting list, for callers (the parallel
// ranker's chunk scheduler) that specifically want the roaring-bitmap-backed
// figure rather than a second walk through wordToDocFreq.
func (e *Engine) termCardinality(term string) int {
	bm, ok := e.dfBitmap[term]
	if !ok {
		return 0
	}
	return int(bm.GetCardinality())
}

// DocumentCount returns the number of documents currently in the store.
func (e *Engine) DocumentCount() int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.store.count()
}

// DocIDs returns doc-ids in insertion order.
func (e *Engine) DocIDs() []int {
	e.mu.RLock()
	defer e.mu.RUnlock()
	ids := e.store.ids()
	out := make([]int, len(ids))
	copy(out, ids)
	return out
}

// WordFrequencies returns term → tf for docID, or an empty map for an
// unknown id — deliberately not an error.
func (e *Engine) WordFrequencies(docID int) map[string]float64 {
	e.mu.RLock()
	defer e.mu.RUnlock()
	byTerm, ok := e.docToWordFreq[docID]
	if !ok {
		return map[string]float64{}
	}
	out := make(map[string]float64, len(byTerm))
	for term, tf := range byTerm {
		out[term] = tf
	}
	return out
}
