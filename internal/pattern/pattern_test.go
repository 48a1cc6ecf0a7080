package pattern

import (
	"reflect"
	"testing"
)

func TestCompileSimple(t *testing.T) {
	tests := []struct {
		expr string
		want []Key
	}{
		{"A", []Key{BaseA}},
		{"ACGT", []Key{BaseA, BaseC, BaseG, BaseT}},
		{"acgt", []Key{BaseA, BaseC, BaseG, BaseT}},
		{"U", []Key{BaseT}},
		{"N", []Key{AnyBase}},
		{"AC[AT]", []Key{BaseA, BaseC, BaseA | BaseT}},
		{"A[]C", []Key{BaseA, BaseC}},
		{"[ACGT]", []Key{BaseA | BaseC | BaseG | BaseT}},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			got, err := Compile(tt.expr)
			if err != nil {
				t.Fatalf("Compile(%q) error = %v", tt.expr, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Compile(%q) = %v, want %v", tt.expr, got, tt.want)
			}
		})
	}
}

func TestCompileErrors(t *testing.T) {
	tests := []struct {
		expr     string
		wantKind ErrorKind
	}{
		{"[[A]", DoubleOpen},
		{"A]", DoubleClose},
		{"A1C", IllegalChar},
		{"A[CG", UnclosedBracket},
	}

	for _, tt := range tests {
		t.Run(tt.expr, func(t *testing.T) {
			_, err := Compile(tt.expr)
			if err == nil {
				t.Fatalf("Compile(%q) error = nil, want %v", tt.expr, tt.wantKind)
			}
			pe, ok := err.(*Error)
			if !ok {
				t.Fatalf("Compile(%q) error type = %T, want *Error", tt.expr, err)
			}
			if pe.Kind != tt.wantKind {
				t.Errorf("Compile(%q) Kind = %v, want %v", tt.expr, pe.Kind, tt.wantKind)
			}
		})
	}
}

func TestReversed(t *testing.T) {
	keys := []Key{BaseA, BaseC, BaseG, BaseT}
	got := Reversed(keys)
	want := []Key{BaseT, BaseG, BaseC, BaseA}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Reversed() = %v, want %v", got, want)
	}
	// Original must be untouched.
	if !reflect.DeepEqual(keys, []Key{BaseA, BaseC, BaseG, BaseT}) {
		t.Errorf("Reversed() mutated its input: %v", keys)
	}
}
