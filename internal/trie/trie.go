// Package trie implements the ternary deduplication trie that maps a
// Needleman-Wunsch alignment row (encoded as a differential path, see
// internal/path) to the DFA vertex that already represents it.
//
// The trie has exactly one level per pattern position and three children
// per node (digits 0, 1 and 2). Each node is addressed by a stable uint32
// id into a growable arena, never by pointer, so ids survive the arena's
// doubling reallocations. A node can be an "intermediate leaf": instead of
// materializing height-1 internal nodes for every inserted path up front,
// a single-occupant subtree is compressed into one leaf slot and only
// pushed down into real nodes when a second, diverging path arrives.
package trie

import (
	"errors"

	"github.com/coregx/seeq/internal/path"
)

// Children is the trie's fan-out: one branch per ternary digit.
const Children = 3

// defaultMaxNodes is the hard ceiling on the number of nodes a trie will
// ever allocate, mirroring the original implementation's own ABS_MAX_POS
// ceiling on trie position count (seeqcore.h), independent of whatever
// byte-budget estimate a caller layers on top (see internal/dfa's
// overBudget pre-check). Stored per-Trie (rather than as a constant) so
// tests can shrink it without allocating a multi-gigabyte arena.
const defaultMaxNodes = 0xFFFFFFFE

// ErrMalformedPath is returned when a supplied path contains a digit
// outside {0,1,2}. This indicates a bug in the caller (the alignment row
// updater), since row deltas are always clamped to {-1,0,+1}.
var ErrMalformedPath = errors.New("trie: path digit out of range")

// ErrUnreachableLeaf is returned if a search walks every level of the trie
// without ever encountering a leaf, or if an insert has to push down a
// leaf whose path is identical to the one being inserted. Given the
// insertion invariant (the final level always leaves a leaf flag set, and
// a path is only inserted after Search failed to find it), this can only
// happen if the trie's internal structure has been corrupted.
var ErrUnreachableLeaf = errors.New("trie: exhausted all levels without reaching a leaf")

// ErrTrieFull is returned when an insert would grow the node arena past
// maxNodes. Unlike internal/dfa's MemoryExhausted (which the store
// degrades gracefully from), this is expected to be unreachable in
// practice: any real pattern length and memory budget exhausts the
// dfa.Store's own byte-budget check many orders of magnitude earlier.
var ErrTrieFull = errors.New("trie: node arena exhausted")

type node struct {
	flags byte
	child [Children]uint32
}

// CodeLookup resolves the encoded ternary path previously stored for a
// vertex id, so the trie can compare full paths without owning the vertex
// arena itself. The DFA store supplies this.
type CodeLookup func(vertexID uint32) []byte

// Trie is an arena of nodes forming the ternary deduplication structure.
// The zero value is not usable; construct with New.
type Trie struct {
	nodes    []node
	height   int
	maxNodes int
}

// New creates a trie sized for paths of the given height (the pattern
// length in ternary digits), preallocating initialSize nodes (at least 1).
func New(height int, initialSize int) *Trie {
	if initialSize < 1 {
		initialSize = 1
	}
	return &Trie{
		nodes:    make([]node, initialSize),
		height:   height,
		maxNodes: defaultMaxNodes,
	}
}

// Len returns the number of nodes currently allocated in the arena.
func (t *Trie) Len() int {
	return len(t.nodes)
}

// HeapBytes estimates the trie's heap footprint at 13 bytes per node.
func (t *Trie) HeapBytes() int {
	return len(t.nodes) * 13 // flags (1) + 3*uint32 (12)
}

func (t *Trie) newNode() (uint32, error) {
	if len(t.nodes) >= t.maxNodes {
		return 0, ErrTrieFull
	}
	id := uint32(len(t.nodes))
	t.nodes = append(t.nodes, node{})
	return id, nil
}

// Search walks the trie along digits (exactly t.height ternary digits) and
// reports the vertex id stored at the matching leaf. found is false if no
// leaf matches this exact path (the caller must then build a new vertex
// and Insert it).
func (t *Trie) Search(digits []byte, lookup CodeLookup) (vertexID uint32, found bool, err error) {
	for i := 0; i < t.height; i++ {
		if digits[i] >= Children {
			return 0, false, ErrMalformedPath
		}
	}

	id := uint32(0)
	for i := 0; i < t.height; i++ {
		d := digits[i]
		if t.nodes[id].flags&(1<<d) != 0 {
			leaf := t.nodes[id].child[d]
			code := lookup(leaf)
			if path.Compare(digits, code, t.height) {
				return leaf, true, nil
			}
			return 0, false, nil
		}
		next := t.nodes[id].child[d]
		if next == 0 {
			return 0, false, nil
		}
		id = next
	}
	return 0, false, ErrUnreachableLeaf
}

// Insert records that digits maps to vertexID, performing iterative
// intermediate-leaf pushdown when an existing compressed leaf diverges
// from the new path partway through. lookup resolves the code of any
// existing leaf encountered along the way.
func (t *Trie) Insert(digits []byte, vertexID uint32, lookup CodeLookup) error {
	for i := 0; i < t.height; i++ {
		if digits[i] >= Children {
			return ErrMalformedPath
		}
	}

	id := uint32(0)
	var i int
	for i = 0; i < t.height-1; i++ {
		d := digits[i]

		if t.nodes[id].flags&(1<<d) != 0 {
			if err := t.pushDown(id, i, d, digits, lookup); err != nil {
				return err
			}
		}

		if next := t.nodes[id].child[d]; next != 0 {
			id = next
		} else {
			break
		}
	}

	d := digits[i]
	t.nodes[id].child[d] = vertexID
	t.nodes[id].flags |= 1 << d
	return nil
}

// pushDown evicts the compressed leaf stored at nodes[id].child[d] and
// walks new real nodes down for every position where the leaf's own path
// and the path being inserted still agree, re-attaching the leaf at the
// first position where they diverge (or at the last level, if they agree
// all the way down to it).
func (t *Trie) pushDown(id uint32, i int, d byte, insertDigits []byte, lookup CodeLookup) error {
	leafVertex := t.nodes[id].child[d]
	leafDigits := path.Decode(lookup(leafVertex), t.height)

	// Reserve room for the worst case (every remaining level agrees and
	// needs a fresh node) before mutating anything: newNode failing
	// partway through would otherwise leave the leaf flag cleared with
	// child[d] still pointing at a vertex id instead of a trie node id,
	// corrupting the trie.
	if len(t.nodes)+(t.height-i) > t.maxNodes {
		return ErrTrieFull
	}

	t.nodes[id].flags &^= 1 << d

	auxID := id
	j := i
	for j < t.height && insertDigits[j] == leafDigits[j] {
		newID, err := t.newNode()
		if err != nil {
			return err
		}
		t.nodes[auxID].child[leafDigits[j]] = newID
		auxID = newID
		j++
	}
	if j == t.height {
		return ErrUnreachableLeaf
	}

	t.nodes[auxID].child[leafDigits[j]] = leafVertex
	t.nodes[auxID].flags |= 1 << leafDigits[j]
	return nil
}
