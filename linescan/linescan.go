// Package linescan provides a line-oriented file-scan collaborator for
// seeq.Engine, in the spirit of the original implementation's
// seeqFileMatch/seeqOpen pair: read one line at a time, skip lines the
// seed prefilter proves cannot match, and hand the rest to the engine.
//
// Unlike the original's seeqfile_t (a raw FILE* plus a growable line
// buffer), Scanner is a thin wrapper over bufio.Scanner so any io.Reader
// can be matched, not just a named file or stdin.
package linescan

import (
	"bufio"
	"io"

	"github.com/coregx/seeq"
)

// Scanner reads successive lines from an io.Reader and matches each one
// against an Engine, short-circuiting lines the engine's seed prefilter
// proves cannot contain a match. Not safe for concurrent use.
type Scanner struct {
	sc     *bufio.Scanner
	engine *seeq.Engine
	opts   seeq.Options

	line  int
	text  string
	count int
	err   error
}

// New wraps r into a Scanner that matches every line against engine
// using opts. engine is not owned by the Scanner: callers are
// responsible for Close-ing it.
func New(r io.Reader, engine *seeq.Engine, opts seeq.Options) *Scanner {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	return &Scanner{sc: sc, engine: engine, opts: opts}
}

// Scan reads and matches the next line. It returns false at EOF or after
// the first error, which Err distinguishes.
func (s *Scanner) Scan() bool {
	if s.err != nil {
		return false
	}
	if !s.sc.Scan() {
		return false
	}
	s.line++
	s.text = s.sc.Text()

	if !s.engine.MightMatch([]byte(s.text)) {
		s.count = 0
		return true
	}

	n, err := s.engine.MatchString(s.text, s.opts)
	if err != nil {
		s.err = err
		return false
	}
	s.count = n
	return true
}

// Err returns the first error encountered by Scan, from either the
// underlying reader or the engine.
func (s *Scanner) Err() error {
	if s.err != nil {
		return s.err
	}
	return s.sc.Err()
}

// Line returns the 1-based number of the most recently scanned line.
func (s *Scanner) Line() int { return s.line }

// Text returns the most recently scanned line, without its terminator.
func (s *Scanner) Text() string { return s.text }

// Count returns the number of matches the engine reported for the most
// recently scanned line.
func (s *Scanner) Count() int { return s.count }

// Matched reports whether the most recently scanned line had at least
// one match.
func (s *Scanner) Matched() bool { return s.count > 0 }
