package trie

import (
	"testing"

	"github.com/coregx/seeq/internal/path"
)

// fakeStore is a minimal vertex store stand-in: vertex id -> encoded code.
type fakeStore struct {
	codes [][]byte
}

func (s *fakeStore) add(digits []byte) uint32 {
	id := uint32(len(s.codes))
	s.codes = append(s.codes, path.Encode(digits, len(digits)))
	return id
}

func (s *fakeStore) lookup(id uint32) []byte {
	return s.codes[id]
}

func TestTrieInsertThenSearchFinds(t *testing.T) {
	height := 6
	tr := New(height, 4)
	store := &fakeStore{}
	store.add(make([]byte, height)) // vertex 0 unused placeholder

	digits := []byte{1, 2, 0, 1, 1, 2}
	vid := store.add(digits)

	if err := tr.Insert(digits, vid, store.lookup); err != nil {
		t.Fatalf("Insert() error = %v", err)
	}

	got, found, err := tr.Search(digits, store.lookup)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if !found {
		t.Fatal("Search() found = false, want true")
	}
	if got != vid {
		t.Errorf("Search() = %d, want %d", got, vid)
	}
}

func TestTrieSearchMissing(t *testing.T) {
	height := 4
	tr := New(height, 4)
	store := &fakeStore{}

	got, found, err := tr.Search([]byte{0, 1, 2, 1}, store.lookup)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if found {
		t.Errorf("Search() found = true on empty trie, got vertex %d", got)
	}
}

func TestTrieDivergentInsertPushesDown(t *testing.T) {
	height := 5
	tr := New(height, 2)
	store := &fakeStore{}

	a := []byte{0, 1, 2, 0, 1}
	b := []byte{0, 1, 1, 0, 1} // diverges from a at position 2

	vidA := store.add(a)
	vidB := store.add(b)

	if err := tr.Insert(a, vidA, store.lookup); err != nil {
		t.Fatalf("Insert(a) error = %v", err)
	}

	// a should still be found before b is inserted.
	if got, found, err := tr.Search(a, store.lookup); err != nil || !found || got != vidA {
		t.Fatalf("Search(a) before divergent insert = (%d,%v,%v), want (%d,true,nil)", got, found, err, vidA)
	}

	if err := tr.Insert(b, vidB, store.lookup); err != nil {
		t.Fatalf("Insert(b) error = %v", err)
	}

	gotA, foundA, err := tr.Search(a, store.lookup)
	if err != nil || !foundA || gotA != vidA {
		t.Errorf("Search(a) after divergent insert = (%d,%v,%v), want (%d,true,nil)", gotA, foundA, err, vidA)
	}
	gotB, foundB, err := tr.Search(b, store.lookup)
	if err != nil || !foundB || gotB != vidB {
		t.Errorf("Search(b) after divergent insert = (%d,%v,%v), want (%d,true,nil)", gotB, foundB, err, vidB)
	}
}

func TestTrieMalformedPath(t *testing.T) {
	tr := New(3, 2)
	store := &fakeStore{}

	_, _, err := tr.Search([]byte{0, 3, 1}, store.lookup)
	if err != ErrMalformedPath {
		t.Errorf("Search() error = %v, want ErrMalformedPath", err)
	}

	if err := tr.Insert([]byte{0, 3, 1}, 1, store.lookup); err != ErrMalformedPath {
		t.Errorf("Insert() error = %v, want ErrMalformedPath", err)
	}
}

// TestTrieNewNodeRespectsCeiling checks that newNode refuses to grow the
// arena past maxNodes, independent of any byte-budget estimate a caller
// layers on top.
func TestTrieNewNodeRespectsCeiling(t *testing.T) {
	tr := New(2, 1)
	tr.maxNodes = len(tr.nodes) // already "full"

	if _, err := tr.newNode(); err != ErrTrieFull {
		t.Fatalf("newNode() at ceiling error = %v, want ErrTrieFull", err)
	}
}

// TestTriePushDownPropagatesFullArena checks that pushDown surfaces
// ErrTrieFull instead of panicking or silently growing past the ceiling
// when a divergent insert needs a fresh node it cannot allocate.
func TestTriePushDownPropagatesFullArena(t *testing.T) {
	height := 4
	tr := New(height, 2)
	store := &fakeStore{}

	a := []byte{0, 1, 2, 0}
	b := []byte{0, 1, 1, 0} // diverges from a at position 2

	vidA := store.add(a)
	vidB := store.add(b)

	if err := tr.Insert(a, vidA, store.lookup); err != nil {
		t.Fatalf("Insert(a) error = %v", err)
	}

	tr.maxNodes = len(tr.nodes) // pin the ceiling at the current size

	if err := tr.Insert(b, vidB, store.lookup); err != ErrTrieFull {
		t.Fatalf("Insert(b) at ceiling error = %v, want ErrTrieFull", err)
	}
}

func TestTrieManyDistinctPaths(t *testing.T) {
	height := 4
	tr := New(height, 1)
	store := &fakeStore{}

	var all [][]byte
	for a := byte(0); a < 3; a++ {
		for b := byte(0); b < 3; b++ {
			for c := byte(0); c < 3; c++ {
				for d := byte(0); d < 3; d++ {
					all = append(all, []byte{a, b, c, d})
				}
			}
		}
	}

	ids := make([]uint32, len(all))
	for i, digits := range all {
		ids[i] = store.add(digits)
		if err := tr.Insert(digits, ids[i], store.lookup); err != nil {
			t.Fatalf("Insert(%v) error = %v", digits, err)
		}
	}

	for i, digits := range all {
		got, found, err := tr.Search(digits, store.lookup)
		if err != nil || !found || got != ids[i] {
			t.Errorf("Search(%v) = (%d,%v,%v), want (%d,true,nil)", digits, got, found, err, ids[i])
		}
	}
}
