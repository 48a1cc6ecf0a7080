package scan

import (
	"reflect"
	"testing"

	"github.com/coregx/seeq/internal/dfa"
	"github.com/coregx/seeq/internal/pattern"
)

func newScanner(t *testing.T, expr string, tau int, policy NonDNAPolicy) *Scanner {
	t.Helper()
	keys, err := pattern.Compile(expr)
	if err != nil {
		t.Fatalf("pattern.Compile(%q) error = %v", expr, err)
	}
	fwd, err := dfa.New(keys, tau, dfa.DefaultConfig())
	if err != nil {
		t.Fatalf("dfa.New(forward) error = %v", err)
	}
	rev, err := dfa.New(pattern.Reversed(keys), tau, dfa.DefaultConfig())
	if err != nil {
		t.Fatalf("dfa.New(reverse) error = %v", err)
	}
	return New(fwd, rev, tau, policy, FramingLines)
}

func newScannerFraming(t *testing.T, expr string, tau int, policy NonDNAPolicy, framing Framing) *Scanner {
	t.Helper()
	keys, err := pattern.Compile(expr)
	if err != nil {
		t.Fatalf("pattern.Compile(%q) error = %v", expr, err)
	}
	fwd, err := dfa.New(keys, tau, dfa.DefaultConfig())
	if err != nil {
		t.Fatalf("dfa.New(forward) error = %v", err)
	}
	rev, err := dfa.New(pattern.Reversed(keys), tau, dfa.DefaultConfig())
	if err != nil {
		t.Fatalf("dfa.New(reverse) error = %v", err)
	}
	return New(fwd, rev, tau, policy, framing)
}

func TestScanConcreteScenarios(t *testing.T) {
	tests := []struct {
		name   string
		expr   string
		tau    int
		input  string
		mode   Mode
		policy NonDNAPolicy
		want   []Match
	}{
		{
			name:  "exact match within a run",
			expr:  "ACGT",
			tau:   0,
			input: "TTACGTTT",
			mode:  ModeAll,
			want:  []Match{{Start: 2, End: 6, Distance: 0}},
		},
		{
			name:  "one substitution, best mode",
			expr:  "ACGT",
			tau:   1,
			input: "TTACCTTT",
			mode:  ModeBest,
			want:  []Match{{Start: 2, End: 6, Distance: 1}},
		},
		{
			name:   "bracket group with convert policy",
			expr:   "A[CG]T",
			tau:    0,
			input:  "AGTxACT",
			mode:   ModeAll,
			policy: PolicyConvert,
			want:   []Match{{Start: 0, End: 3, Distance: 0}, {Start: 4, End: 7, Distance: 0}},
		},
		{
			name:  "all-N pattern matches any bases",
			expr:  "NNNN",
			tau:   0,
			input: "AAAA",
			mode:  ModeAll,
			want:  []Match{{Start: 0, End: 4, Distance: 0}},
		},
		{
			name:  "min-to-match short circuit suppresses a match",
			expr:  "ACGT",
			tau:   2,
			input: "AC",
			mode:  ModeFirst,
			want:  nil,
		},
		{
			name:  "two disjoint runs",
			expr:  "ACGT",
			tau:   1,
			input: "ACGTACGT",
			mode:  ModeAll,
			want:  []Match{{Start: 0, End: 4, Distance: 0}, {Start: 4, End: 8, Distance: 0}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newScanner(t, tt.expr, tt.tau, tt.policy)
			got, err := s.Scan(tt.input, tt.mode)
			if err != nil {
				t.Fatalf("Scan() error = %v", err)
			}
			if len(got) == 0 && len(tt.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Scan() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScanAllNonOverlappingIncreasing(t *testing.T) {
	s := newScanner(t, "ACGT", 1, PolicyFail)
	got, err := s.Scan("ACGTACGTACGT", ModeAll)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	for i := 1; i < len(got); i++ {
		if got[i].Start <= got[i-1].Start {
			t.Errorf("left endpoints not strictly increasing: %v", got)
		}
		if got[i].Start < got[i-1].End {
			t.Errorf("matches overlap: %v", got)
		}
	}
}

func TestScanBestEmitsAtMostOne(t *testing.T) {
	s := newScanner(t, "ACGT", 1, PolicyFail)
	got, err := s.Scan("ACGTACCTACGT", ModeBest)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(got) > 1 {
		t.Fatalf("ModeBest emitted %d matches, want at most 1", len(got))
	}
}

func TestScanFirstStopsEarly(t *testing.T) {
	s := newScanner(t, "ACGT", 0, PolicyFail)
	got, err := s.Scan("ACGTACGTACGT", ModeFirst)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("ModeFirst emitted %d matches, want 1", len(got))
	}
	if got[0].Start != 0 || got[0].End != 4 {
		t.Errorf("ModeFirst match = %+v, want start=0 end=4", got[0])
	}
}

func TestScanIgnorePolicySkipsIllegalBytes(t *testing.T) {
	s := newScanner(t, "ACGT", 0, PolicyIgnore)
	got, err := s.Scan("AC-GT", ModeFirst)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d matches, want 1 (illegal byte should be skipped)", len(got))
	}
}

func TestScanFailPolicyStopsOnIllegalByte(t *testing.T) {
	s := newScanner(t, "ACGT", 0, PolicyFail)
	got, err := s.Scan("xxACGT", ModeAll)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %v, want no matches (scan should have ended at the first illegal byte)", got)
	}
}

// TestScanStreamFramingIgnoresEmbeddedNewlines checks that under
// FramingStream, an embedded '\n' is skipped (continuing the scan) rather
// than ending it, and that a match run extending all the way to the true
// end of input (the NUL sentinel) is still flushed and reported. The
// leading "xx" is skipped by PolicyIgnore.
func TestScanStreamFramingIgnoresEmbeddedNewlines(t *testing.T) {
	s := newScannerFraming(t, "ACGT", 0, PolicyIgnore, FramingStream)
	got, err := s.Scan("xx\nACGT", ModeAll)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d matches, want 1 (embedded newline must not end a stream-framed scan)", len(got))
	}
	if got[0].Start != 3 || got[0].End != 7 {
		t.Errorf("match = %+v, want start=3 end=7", got[0])
	}
}

// TestScanLinesFramingStopsAtNewline checks the FramingLines counterpart:
// a match run reaching all the way to a trailing '\n' is still reported,
// but anything after the newline is not scanned.
func TestScanLinesFramingStopsAtNewline(t *testing.T) {
	s := newScanner(t, "ACGT", 0, PolicyFail)
	got, err := s.Scan("ACGT\nACGT", ModeAll)
	if err != nil {
		t.Fatalf("Scan() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d matches, want 1 (scan should stop at the first newline)", len(got))
	}
	if got[0].Start != 0 || got[0].End != 4 {
		t.Errorf("match = %+v, want start=0 end=4", got[0])
	}
}
