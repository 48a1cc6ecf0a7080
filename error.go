package seeq

import (
	"fmt"

	"github.com/coregx/seeq/internal/dfa"
	"github.com/coregx/seeq/internal/pattern"
	"github.com/coregx/seeq/internal/scan"
	"github.com/coregx/seeq/internal/trie"
)

// ErrorKind classifies a failure raised by the engine. It replaces the
// original C implementation's global seeqerr variable with an explicit
// value returned from every fallible operation.
type ErrorKind uint8

const (
	// InvalidDistance is returned when tau is negative.
	InvalidDistance ErrorKind = iota
	// InvalidPatternDoubleOpen is a second '[' before a matching ']'.
	InvalidPatternDoubleOpen
	// InvalidPatternDoubleClose is a ']' with no matching open bracket.
	InvalidPatternDoubleClose
	// InvalidPatternIllegalChar is a byte outside {A,C,G,T,U,N,[,]}.
	InvalidPatternIllegalChar
	// InvalidPatternUnclosedBracket is an open '[' with no closing ']'.
	InvalidPatternUnclosedBracket
	// PatternTooShort is returned when tau >= w.
	PatternTooShort
	// MemoryExhausted indicates a vertex store's byte budget was
	// exceeded; this is informational only in current use (the engine
	// degrades and keeps going) but is exposed for diagnostics.
	MemoryExhausted
	// InternalTrieFault signals an invariant violation in the
	// deduplication trie, or the reverse-recovery loop failing to reach
	// the forward run's distance. Should be unreachable from core code.
	InternalTrieFault
	// IoUnavailable is returned by the file-scan collaborator when its
	// underlying source cannot be read.
	IoUnavailable
	// EndOfInput is informational only. MatchIter signals end-of-sequence
	// with (Match{}, false) instead of returning this as an error.
	EndOfInput
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidDistance:
		return "InvalidDistance"
	case InvalidPatternDoubleOpen:
		return "InvalidPatternDoubleOpen"
	case InvalidPatternDoubleClose:
		return "InvalidPatternDoubleClose"
	case InvalidPatternIllegalChar:
		return "InvalidPatternIllegalChar"
	case InvalidPatternUnclosedBracket:
		return "InvalidPatternUnclosedBracket"
	case PatternTooShort:
		return "PatternTooShort"
	case MemoryExhausted:
		return "MemoryExhausted"
	case InternalTrieFault:
		return "InternalTrieFault"
	case IoUnavailable:
		return "IoUnavailable"
	case EndOfInput:
		return "EndOfInput"
	default:
		return fmt.Sprintf("UnknownErrorKind(%d)", k)
	}
}

// Error is the engine's tagged-union error type. It implements error,
// Unwrap and Is so callers can use errors.Is/errors.As against Kind.
type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("seeq: %s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("seeq: %s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// wrapPatternErr translates an internal/pattern.Error into the engine's
// tagged-union shape.
func wrapPatternErr(err error) error {
	pe, ok := err.(*pattern.Error)
	if !ok {
		return &Error{Kind: InvalidPatternIllegalChar, Message: "pattern compilation failed", Cause: err}
	}
	kind := InvalidPatternIllegalChar
	switch pe.Kind {
	case pattern.DoubleOpen:
		kind = InvalidPatternDoubleOpen
	case pattern.DoubleClose:
		kind = InvalidPatternDoubleClose
	case pattern.IllegalChar:
		kind = InvalidPatternIllegalChar
	case pattern.UnclosedBracket:
		kind = InvalidPatternUnclosedBracket
	}
	return &Error{Kind: kind, Message: pe.Error(), Cause: err}
}

// wrapDFAErr translates an internal/dfa.Error into the engine's
// tagged-union shape.
func wrapDFAErr(err error) error {
	de, ok := err.(*dfa.Error)
	if !ok {
		return &Error{Kind: InternalTrieFault, Message: "dfa store failed", Cause: err}
	}
	switch de.Kind {
	case dfa.MemoryExhausted:
		return &Error{Kind: MemoryExhausted, Message: de.Message, Cause: err}
	case dfa.InternalFault:
		return &Error{Kind: InternalTrieFault, Message: de.Message, Cause: err}
	default: // dfa.InvalidConfig: an internally-constructed Config failed validation.
		return &Error{Kind: InternalTrieFault, Message: de.Message, Cause: err}
	}
}

// wrapScanErr translates an internal/scan or internal/trie failure
// surfacing through a scan call into the engine's tagged-union shape.
func wrapScanErr(err error) error {
	if err == scan.ErrStartRecoveryFailed || err == trie.ErrUnreachableLeaf || err == trie.ErrMalformedPath {
		return &Error{Kind: InternalTrieFault, Message: "match engine invariant violated", Cause: err}
	}
	if de, ok := err.(*dfa.Error); ok {
		return wrapDFAErr(de)
	}
	return &Error{Kind: InternalTrieFault, Message: "scan failed", Cause: err}
}
