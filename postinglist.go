// ═══════════════════════════════════════════════════════════════════════════════
// POSTING LIST: per-term (doc-id → tf) storage
// ═══════════════════════════════════════════════════════════════════════════════
// A posting list is the inner map of word_to_doc_freq: for one term, it holds
// every document that term appears in together with that term's frequency in
// the document. We store it as a skip list keyed by doc-id rather than a bare
// Go map so that iteration (used by the ranker's accumulate and minus-term
// erasure steps) is always in ascending doc-id order.
//
// The list orders by doc-id alone and carries a single float64 payload, the
// term frequency; it keeps no intra-document positions.
// ═══════════════════════════════════════════════════════════════════════════════

package blaze

import (
	"math"
	"math/rand"
)

const postingMaxHeight = 32

// posting is one (doc-id, tf) entry in a term's posting list.
type posting struct {
	docID int
	tf    float64
}

type postingNode struct {
	key   posting
	tower [postingMaxHeight]*postingNode
}

// postingList is an ascending, doc-id-ordered skip list mapping doc-id → tf
// for a single term.
type postingList struct {
	head   *postingNode
	height int
	size   int
}

func newPostingList() *postingList {
	return &postingList{
		head:   &postingNode{key: posting{docID: math.MinInt64}},
		height: 1,
	}
}

// search returns the node with the given docID (nil if absent) and the
// per-level predecessor journey used by Upsert and Remove to relink towers.
func (pl *postingList) search(docID int) (*postingNode, [postingMaxHeight]*postingNode) {
	var journey [postingMaxHeight]*postingNode
	current := pl.head
	for level := pl.height - 1; level >= 0; level-- {
		next := current.tower[level]
		for next != nil && next.key.docID < docID {
			current = next
			next = current.tower[level]
		}
		journey[level] = current
	}
	next := current.tower[0]
	if next != nil && next.key.docID == docID {
		return next, journey
	}
	return nil, journey
}

// Get returns the tf stored for docID, if any.
func (pl *postingList) Get(docID int) (float64, bool) {
	found, _ := pl.search(docID)
	if found == nil {
		return 0, false
	}
	return found.key.tf, true
}

// Upsert sets the tf for docID, inserting a new entry if one doesn't exist.
func (pl *postingList) Upsert(docID int, tf float64) {
	found, journey := pl.search(docID)
	if found != nil {
		found.key.tf = tf
		return
	}

	height := randomPostingHeight()
	node := &postingNode{key: posting{docID: docID, tf: tf}}
	for level := 0; level < height; level++ {
		predecessor := journey[level]
		if predecessor == nil {
			predecessor = pl.head
		}
		node.tower[level] = predecessor.tower[level]
		predecessor.tower[level] = node
	}
	if height > pl.height {
		pl.height = height
	}
	pl.size++
}

// Remove deletes docID from the posting list, if present.
func (pl *postingList) Remove(docID int) bool {
	found, journey := pl.search(docID)
	if found == nil {
		return false
	}
	for level := 0; level < pl.height; level++ {
		if journey[level].tower[level] != found {
			break
		}
		journey[level].tower[level] = found.tower[level]
	}
	for level := pl.height - 1; level >= 0; level-- {
		if pl.head.tower[level] == nil {
			pl.height--
		} else {
			break
		}
	}
	pl.size--
	return true
}

// Len reports the number of entries in the posting list.
func (pl *postingList) Len() int {
	return pl.size
}

// Iterate calls fn for every (docID, tf) pair in ascending doc-id order.
func (pl *postingList) Iterate(fn func(docID int, tf float64)) {
	for n := pl.head.tower[0]; n != nil; n = n.tower[0] {
		fn(n.key.docID, n.key.tf)
	}
}

func randomPostingHeight() int {
	height := 1
	for rand.Float64() < 0.5 && height < postingMaxHeight {
		height++
	}
	return height
}
