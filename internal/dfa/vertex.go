package dfa

// NBases is the number of outgoing edges per vertex: one per DNA/RNA base
// class resolved during scanning (A, C, G, T/U, N).
const NBases = 5

// VertexID addresses a vertex in a Store's arena. Ids are stable across
// the arena's doubling growth because they index into a slice rather
// than pointing at memory.
type VertexID = uint32

const (
	// CacheVertex is the permanent id 0 slot. In degraded (memory
	// exhausted) mode, every unresolved transition is recomputed through
	// this single vertex instead of allocating a new one.
	CacheVertex VertexID = 0

	// RootVertex is the id of the DFA's start state, representing the
	// initial Needleman-Wunsch row before any text has been consumed.
	RootVertex VertexID = 1
)

// unresolved marks a next-state slot that has not been computed yet; the
// lazy step materializes it on first visit. Mirrors the original's
// DFA_COMPUTE sentinel.
const unresolved uint32 = 0xFFFFFFFF

// absMaxVertices is the hard ceiling on the number of vertices a store
// will ever allocate, matching the original implementation's ABS_MAX_POS.
const absMaxVertices uint32 = 0xFFFFFFFE

// vertex is one DFA state: the packed (distance, minToMatch) match
// descriptor for the row it represents, one outgoing edge per base, and
// the row's ternary differential path, encoded by internal/path.
type vertex struct {
	match uint32
	next  [NBases]VertexID
	code  []byte
}

func newVertex() vertex {
	v := vertex{match: unresolved}
	for i := range v.next {
		v.next[i] = unresolved
	}
	return v
}

// packMatch combines a final-column edit distance and the minimum number
// of additional bases required before this row could still reach the
// threshold into the 32-bit match descriptor used throughout the store.
func packMatch(distance, minToMatch int) uint32 {
	return uint32(minToMatch)<<16 | uint32(distance)&0xFFFF
}

func unpackMatch(m uint32) (distance, minToMatch int) {
	return int(m & 0xFFFF), int(m >> 16)
}
