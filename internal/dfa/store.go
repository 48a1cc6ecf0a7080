package dfa

import (
	"github.com/coregx/seeq/internal/conv"
	"github.com/coregx/seeq/internal/path"
	"github.com/coregx/seeq/internal/pattern"
	"github.com/coregx/seeq/internal/trie"
)

// vertexOverhead approximates the fixed per-vertex cost (the match word
// plus NBases edges) when estimating the store's memory footprint. The
// variable part is the encoded code slice, added separately.
const vertexOverhead = 4 + NBases*4

// trieNodeSize approximates a trie node's memory footprint (flags byte
// plus three child ids).
const trieNodeSize = 1 + trie.Children*4

// Stats reports read-only counters useful for diagnosing how much of a
// search ran through the lazy DFA versus the degraded cache path.
type Stats struct {
	VerticesCreated     int
	TrieNodes           int
	CacheModeSteps      uint64
	DegradedTransitions uint64
}

// Store is the lazy, memory-bounded arena of DFA vertices for one
// direction of matching (forward or reverse). It owns the deduplication
// trie that maps an alignment row's ternary path to the vertex that
// already represents it, and the scratch alignment row reused across
// every Step call.
type Store struct {
	keys     []pattern.Key
	tau      int
	vertices []vertex
	trie     *trie.Trie
	align    []int
	cfg      Config
	degraded bool
	stats    Stats
}

// New builds a Store for the given compiled keys (forward or reversed)
// and edit-distance threshold tau, with the initial Needleman-Wunsch row
// already materialized as the root vertex.
func New(keys []pattern.Key, tau int, cfg Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	wlen := len(keys)
	s := &Store{
		keys:     keys,
		tau:      tau,
		vertices: make([]vertex, 2, maxInt(cfg.InitialVertices, 2)),
		trie:     trie.New(wlen, cfg.InitialTrieNodes),
		align:    make([]int, wlen+1),
		cfg:      cfg,
	}
	s.vertices = s.vertices[:2]

	initialMatch := packMatch(minInt(tau+1, wlen), wlen-minInt(tau, wlen))
	s.vertices[CacheVertex] = newVertex()
	s.vertices[CacheVertex].match = initialMatch
	s.vertices[RootVertex] = newVertex()
	s.vertices[RootVertex].match = initialMatch

	digits := make([]byte, wlen)
	for i := 0; i < wlen; i++ {
		if i <= tau {
			digits[i] = 2
		} else {
			digits[i] = 1
		}
	}
	s.vertices[RootVertex].code = path.Encode(digits, wlen)

	if wlen > 0 {
		if err := s.trie.Insert(digits, RootVertex, s.codeOf); err != nil {
			return nil, s.wrapTrieErr(err)
		}
	}
	s.stats.VerticesCreated = 2
	s.stats.TrieNodes = s.trie.Len()

	return s, nil
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func (s *Store) codeOf(id VertexID) []byte {
	return s.vertices[id].code
}

func (s *Store) wrapTrieErr(err error) error {
	if err == trie.ErrTrieFull {
		return &Error{Kind: MemoryExhausted, Message: "trie node arena exhausted", Cause: err}
	}
	return &Error{Kind: InternalFault, Message: "deduplication trie fault", Cause: err}
}

// Degraded reports whether the store has permanently switched to
// cache-only mode after exhausting its memory budget.
func (s *Store) Degraded() bool {
	return s.degraded
}

// Stats returns a snapshot of the store's counters.
func (s *Store) Stats() Stats {
	st := s.stats
	st.TrieNodes = s.trie.Len()
	return st
}

// Match returns the (distance, minToMatch) descriptor for a vertex: the
// edit distance at the row's last column, and the minimum number of
// further bases required before that distance could still fall within
// the threshold.
func (s *Store) Match(id VertexID) (distance, minToMatch int) {
	return unpackMatch(s.vertices[id].match)
}

// Step resolves the transition from state on the given base (0..NBases-1,
// indexing A, C, G, T/U, N in that order), materializing a new vertex or
// a cache-mode recomputation if the transition has not been seen before.
func (s *Store) Step(state VertexID, base int) (VertexID, error) {
	v := &s.vertices[state]
	if v.next[base] != unresolved {
		return v.next[base], nil
	}

	wlen := len(s.keys)
	value := pattern.Key(1) << uint(base)

	if state != CacheVertex {
		digits := path.Decode(v.code, wlen)
		row := path.ToAlignment(digits)
		copy(s.align, row)
	}

	align := s.align
	digits := make([]byte, wlen)

	old := align[0]
	prev := 0
	align[0] = 0
	lastActive := 0

	for i := 1; i <= wlen; i++ {
		nextOld := align[i]

		mismatch := 0
		if value&s.keys[i-1] == 0 {
			mismatch = 1
		}

		cand := old + mismatch
		if x := prev + 1; x < cand {
			cand = x
		}
		if x := align[i] + 1; x < cand {
			cand = x
		}
		if cand > s.tau+1 {
			cand = s.tau + 1
		}

		align[i] = cand
		if align[i] <= s.tau {
			lastActive = i
		}
		digits[i-1] = byte(align[i] - prev + 1)
		prev = align[i]
		old = nextOld
	}

	matchVal := packMatch(prev, wlen-lastActive)

	var (
		existing VertexID
		found    bool
		err      error
	)
	if wlen > 0 {
		existing, found, err = s.trie.Search(digits, s.codeOf)
		if err != nil {
			return 0, s.wrapTrieErr(err)
		}
	}

	if found {
		if state != CacheVertex {
			s.vertices[state].next[base] = existing
		}
		return existing, nil
	}

	if state == CacheVertex {
		s.vertices[CacheVertex].match = matchVal
		s.stats.CacheModeSteps++
		return CacheVertex, nil
	}

	if s.degraded || s.overBudget(len(digits)) {
		s.degraded = true
		s.vertices[CacheVertex].match = matchVal
		s.stats.DegradedTransitions++
		return CacheVertex, nil
	}

	newID, err := s.appendVertex(digits, matchVal)
	if err != nil {
		return 0, err
	}
	if newID == CacheVertex {
		return CacheVertex, nil
	}
	s.vertices[state].next[base] = newID

	if wlen > 0 {
		if err := s.trie.Insert(digits, newID, s.codeOf); err != nil {
			return 0, s.wrapTrieErr(err)
		}
	}
	s.stats.TrieNodes = s.trie.Len()

	return newID, nil
}

// appendVertex grows the arena by one vertex, or degrades to cache-only
// mode if the absolute vertex ceiling has been reached.
func (s *Store) appendVertex(digits []byte, matchVal uint32) (VertexID, error) {
	if conv.IntToUint32(len(s.vertices)) >= absMaxVertices {
		s.degraded = true
		s.vertices[CacheVertex].match = matchVal
		s.stats.DegradedTransitions++
		return CacheVertex, nil
	}

	v := newVertex()
	v.match = matchVal
	v.code = path.Encode(digits, len(digits))
	id := VertexID(len(s.vertices))
	s.vertices = append(s.vertices, v)
	s.stats.VerticesCreated++
	return id, nil
}

// overBudget reports whether the store's current estimated footprint
// (every vertex costed with a code of codeLen bytes, plus the trie's
// nodes) already exceeds cfg.MaxBytes.
func (s *Store) overBudget(codeLen int) bool {
	if s.cfg.MaxBytes == 0 {
		return false
	}
	current := uint64(len(s.vertices))*uint64(vertexOverhead+codeLen) + uint64(s.trie.Len())*trieNodeSize
	return current > s.cfg.MaxBytes
}
