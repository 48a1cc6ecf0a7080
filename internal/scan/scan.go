package scan

import (
	"errors"

	"github.com/coregx/seeq/internal/dfa"
)

// Mode selects which matches a Scan call keeps.
type Mode uint8

const (
	// ModeFirst stops at the first emitted match.
	ModeFirst Mode = iota
	// ModeBest scans the whole input and keeps only the lowest-distance
	// emission, earliest on ties.
	ModeBest
	// ModeAll emits every run's representative.
	ModeAll
)

// Framing controls where a scan stops.
type Framing uint8

const (
	// FramingLines stops at the first '\n' or '\0'.
	FramingLines Framing = iota
	// FramingStream ignores '\n' as a regular character and scans to '\0'.
	FramingStream
)

// Match is a half-open byte interval within the scanned string, together
// with the edit distance of the alignment it represents.
type Match struct {
	Start    int
	End      int
	Distance int
}

// ErrStartRecoveryFailed is returned if the reverse DFA never brings its
// distance at or below the forward run's distance within the consumed
// prefix. Given the forward DFA's guarantee this should be unreachable;
// callers should treat it as an internal fault.
var ErrStartRecoveryFailed = errors.New("scan: reverse dfa did not recover a match start within the consumed prefix")

// Scanner drives one forward DFA and one reverse DFA over translated
// input bytes, detecting match runs and recovering start offsets. A
// Scanner is not reentrant: concurrent Scan calls on the same instance
// race on the owned DFA stores.
type Scanner struct {
	fwd     *dfa.Store
	rev     *dfa.Store
	tau     int
	policy  NonDNAPolicy
	framing Framing
}

// New builds a Scanner over an already-constructed forward and reverse
// DFA store pair.
func New(fwd, rev *dfa.Store, tau int, policy NonDNAPolicy, framing Framing) *Scanner {
	return &Scanner{fwd: fwd, rev: rev, tau: tau, policy: policy, framing: framing}
}

// Scan walks data once, emitting matches left-to-right according to mode.
func (s *Scanner) Scan(data string, mode Mode) ([]Match, error) {
	var hits []Match
	haveBest := false
	bestD := s.tau + 1

	streakDist := s.tau + 1
	staged := false
	current := dfa.VertexID(dfa.RootVertex)

	n := len(data)
	for i := 0; i <= n; i++ {
		var b byte
		if i < n {
			b = data[i]
		}
		cls := translate(b, s.policy)

		currentDist := s.tau + 1
		minToMatch := 0
		end := false

		switch {
		case int(cls) < NBases:
			next, err := s.fwd.Step(current, int(cls))
			if err != nil {
				return hits, err
			}
			current = next
			currentDist, minToMatch = s.fwd.Match(current)
		case cls == ClassEOL && s.framing == FramingStream:
			continue
		case cls == ClassIllegal && s.policy == PolicyIgnore:
			continue
		default:
			// ClassEOL under FramingLines, ClassSentinel (always), or
			// ClassIllegal under PolicyFail: all force the end of this
			// scan so the final match-emission flush below still runs.
			currentDist = s.tau + 1
			end = true
		}

		if n-i-1 < minToMatch {
			currentDist = s.tau + 1
			end = true
		}

		if streakDist >= currentDist {
			staged = false
		}

		if streakDist <= s.tau && streakDist < currentDist && !staged && (mode != ModeBest || streakDist < bestD) {
			staged = true
			start, err := s.recoverStart(data, i, streakDist)
			if err != nil {
				return hits, err
			}
			hit := Match{Start: start, End: i, Distance: streakDist}

			if mode == ModeBest {
				if !haveBest {
					hits = append(hits, hit)
					haveBest = true
				} else {
					hits[0] = hit
				}
				bestD = streakDist
			} else {
				hits = append(hits, hit)
			}

			if mode == ModeFirst {
				end = true
			}
		}

		if end {
			break
		}
		streakDist = currentDist
	}

	return hits, nil
}

// recoverStart drives the reverse DFA backward from position i until its
// distance drops to at most streakDist, returning the recovered start
// offset.
func (s *Scanner) recoverStart(data string, i, streakDist int) (int, error) {
	j := 0
	rnode := dfa.VertexID(dfa.RootVertex)
	d := s.tau + 1

	for {
		j++
		if i-j < 0 {
			return 0, ErrStartRecoveryFailed
		}
		cls := translate(data[i-j], s.policy)
		if int(cls) < NBases {
			next, err := s.rev.Step(rnode, int(cls))
			if err != nil {
				return 0, err
			}
			rnode = next
			d, _ = s.rev.Match(rnode)
		}
		if !(d > streakDist && j < i) {
			break
		}
	}

	if d > streakDist {
		return 0, ErrStartRecoveryFailed
	}
	return i - j, nil
}
