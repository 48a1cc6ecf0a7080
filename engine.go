// Package seeq implements a streaming approximate-pattern matcher for
// DNA/RNA sequence data. Given an IUPAC-style pattern expression and a
// maximum edit distance tau, an Engine scans text and reports all
// substrings that align to the pattern within tau Levenshtein edits.
//
// An Engine is single-threaded and not reentrant: it owns a forward DFA,
// a reverse DFA and one match buffer, all mutated by every MatchString
// call. Concurrent use of one pattern requires one Engine per goroutine.
package seeq

import (
	"fmt"

	"github.com/coregx/seeq/internal/pattern"
	"github.com/coregx/seeq/internal/scan"
	"github.com/coregx/seeq/internal/seed"

	"github.com/coregx/seeq/internal/dfa"
)

// Match is a half-open byte interval within the most recently scanned
// string, together with the edit distance of the alignment it represents.
type Match = scan.Match

// Engine holds the compiled pattern, the forward and reverse DFA stores,
// the seed prefilter, and the most recent scan's results.
//
// Not safe for concurrent use: see the package doc comment.
type Engine struct {
	pattern string
	w       int
	tau     int

	fwd *dfa.Store
	rev *dfa.Store

	seedFilter *seed.Filter

	lastString string
	matches    []Match
	pos        int
}

// New compiles expr and builds an Engine with the given edit-distance
// threshold and memory budget (0 = unbounded).
func New(expr string, tau int, maxBytes uint64) (*Engine, error) {
	return NewWithConfig(expr, tau, Config{MaxBytes: maxBytes})
}

// NewWithConfig is New with full control over the memory and seed-length
// tunables in cfg.
func NewWithConfig(expr string, tau int, cfg Config) (*Engine, error) {
	if tau < 0 {
		return nil, &Error{Kind: InvalidDistance, Message: "tau must be >= 0"}
	}

	keys, err := pattern.Compile(expr)
	if err != nil {
		return nil, wrapPatternErr(err)
	}
	w := len(keys)
	if w == 0 {
		return nil, &Error{Kind: InvalidPatternIllegalChar, Message: "pattern must compile to at least one position"}
	}
	if tau >= w {
		return nil, &Error{Kind: PatternTooShort, Message: fmt.Sprintf("tau (%d) must be < pattern length (%d)", tau, w)}
	}

	dcfg := cfg.dfaConfig()
	fwd, err := dfa.New(keys, tau, dcfg)
	if err != nil {
		return nil, wrapDFAErr(err)
	}
	rev, err := dfa.New(pattern.Reversed(keys), tau, dcfg)
	if err != nil {
		return nil, wrapDFAErr(err)
	}

	// The seed prefilter is a pure optimisation for the file-scan
	// collaborator; a construction failure here just means no filter,
	// never a fatal engine error.
	filter, _ := seed.Build(keys, tau, cfg.MinSeedLen)

	return &Engine{
		pattern:    expr,
		w:          w,
		tau:        tau,
		fwd:        fwd,
		rev:        rev,
		seedFilter: filter,
	}, nil
}

// MatchString scans data and returns the number of matches emitted
// according to opts. The matches themselves are retrieved afterward,
// one at a time, with MatchIter.
func (e *Engine) MatchString(data string, opts Options) (int, error) {
	e.lastString = data
	e.matches = nil
	e.pos = 0

	s := scan.New(e.fwd, e.rev, e.tau, opts.policy(), opts.framing())
	matches, err := s.Scan(data, opts.mode())
	if err != nil {
		return 0, wrapScanErr(err)
	}
	e.matches = matches
	return len(matches), nil
}

// MatchIter returns the next match from the most recent MatchString
// call, in left-to-right order, or (Match{}, false) once exhausted.
func (e *Engine) MatchIter() (Match, bool) {
	if e.pos >= len(e.matches) {
		return Match{}, false
	}
	m := e.matches[e.pos]
	e.pos++
	return m, true
}

// LastString returns the most recently scanned string.
func (e *Engine) LastString() string {
	return e.lastString
}

// MightMatch consults the seed prefilter built from the compiled pattern
// to decide whether line could possibly contain a match; false is a
// proof of absence. A nil seed filter (fewer than tau+1 qualifying exact
// runs in the pattern) always reports true, falling back to an unfiltered scan. This
// is for file-scan collaborators only: MatchString always scans every
// byte and never consults it.
func (e *Engine) MightMatch(line []byte) bool {
	return e.seedFilter.MightMatch(line)
}

// Stats returns read-only counters for the forward and reverse DFA
// stores, useful for diagnosing degraded-mode throughput.
func (e *Engine) Stats() Stats {
	return Stats{Forward: e.fwd.Stats(), Reverse: e.rev.Stats()}
}

// Close releases the engine's owned memory. Go's garbage collector would
// reclaim it regardless, but Close documents parity with the original
// implementation's seeqFree contract: after Close, the engine holds no
// match data and must not be used again.
func (e *Engine) Close() {
	e.fwd = nil
	e.rev = nil
	e.seedFilter = nil
	e.matches = nil
	e.pos = 0
	e.lastString = ""
}
