package seed

import (
	"reflect"
	"testing"

	"github.com/coregx/seeq/internal/pattern"
)

func keysFor(t *testing.T, expr string) []pattern.Key {
	t.Helper()
	keys, err := pattern.Compile(expr)
	if err != nil {
		t.Fatalf("pattern.Compile(%q) error = %v", expr, err)
	}
	return keys
}

func TestDeriveExactRuns(t *testing.T) {
	keys := keysFor(t, "ACGTACGT")
	runs := Derive(keys, 1, 3)
	want := [][]byte{[]byte("ACGTACGT")}
	if !reflect.DeepEqual(runs, want) {
		t.Errorf("Derive() = %v, want %v", runsAsStrings(runs), runsAsStrings(want))
	}
}

func TestDeriveSkipsNonExactPositions(t *testing.T) {
	keys := keysFor(t, "AC[AT]GTNACGT")
	runs := Derive(keys, 3, 3)
	for _, r := range runs {
		if len(r) < 3 {
			t.Errorf("run %q shorter than minLen", r)
		}
	}
	// None of the returned runs may span the bracket or N position.
	for _, r := range runs {
		if len(r) > 2 && string(r) == "ACATGT" {
			t.Errorf("run incorrectly spans a non-exact position: %q", r)
		}
	}
}

func TestDeriveCapsAtTauPlusOne(t *testing.T) {
	// Four disjoint exact runs of different lengths, separated by Ns.
	keys := keysFor(t, "ACGTNNNACGNNNACNNNAC")
	runs := Derive(keys, 1, 1) // tau=1 -> at most 2 runs kept
	if len(runs) > 2 {
		t.Errorf("Derive() kept %d runs, want at most tau+1=2", len(runs))
	}
	if len(runs) == 2 && len(runs[0]) < len(runs[1]) {
		t.Errorf("Derive() did not prefer the longest runs: %v", runsAsStrings(runs))
	}
}

func TestDeriveNoQualifyingRun(t *testing.T) {
	keys := keysFor(t, "NNNN")
	runs := Derive(keys, 0, 3)
	if runs != nil {
		t.Errorf("Derive() = %v, want nil (all-N pattern has no exact run)", runsAsStrings(runs))
	}
}

func TestBuildNilWhenNoRuns(t *testing.T) {
	keys := keysFor(t, "NNNN")
	f, err := Build(keys, 0, 3)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if f != nil {
		t.Error("Build() should return a nil Filter when no literal runs qualify")
	}
	if !f.MightMatch([]byte("anything")) {
		t.Error("a nil Filter must always report MightMatch == true")
	}
}

func TestBuildSingleLiteralMatch(t *testing.T) {
	keys := keysFor(t, "ACGTACGT")
	f, err := Build(keys, 0, 3)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	if f == nil {
		t.Fatal("Build() returned a nil Filter for a fully exact pattern")
	}
	if !f.MightMatch([]byte("xxxACGTACGTxxx")) {
		t.Error("MightMatch() = false, want true for a line containing the literal")
	}
	if f.MightMatch([]byte("xxxxxxxxxxxxxx")) {
		t.Error("MightMatch() = true, want false for a line without the literal")
	}
}

func runsAsStrings(runs [][]byte) []string {
	out := make([]string, len(runs))
	for i, r := range runs {
		out[i] = string(r)
	}
	return out
}
