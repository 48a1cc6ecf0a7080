package main

import (
	"bufio"
	"bytes"
	"testing"

	"github.com/coregx/seeq"
)

func render(o formatOpts, line int, text string, m seeq.Match) string {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)
	writeMatch(w, line, text, m, o)
	w.Flush()
	return buf.String()
}

func TestWriteMatchCompact(t *testing.T) {
	got := render(formatOpts{compact: true}, 3, "ACGTACGT", seeq.Match{Start: 0, End: 4, Distance: 1})
	want := "3:0-3:1\n"
	if got != want {
		t.Errorf("writeMatch() = %q, want %q", got, want)
	}
}

func TestWriteMatchOnly(t *testing.T) {
	got := render(formatOpts{matchOnly: true}, 1, "xxACGTxx", seeq.Match{Start: 2, End: 6, Distance: 0})
	want := "ACGT\n"
	if got != want {
		t.Errorf("writeMatch() = %q, want %q", got, want)
	}
}

func TestWriteMatchPrefixAndEnd(t *testing.T) {
	m := seeq.Match{Start: 2, End: 6, Distance: 0}
	text := "xxACGTyy"

	if got, want := render(formatOpts{prefix: true}, 1, text, m), "xx\n"; got != want {
		t.Errorf("prefix: got %q, want %q", got, want)
	}
	if got, want := render(formatOpts{end: true}, 1, text, m), "yy\n"; got != want {
		t.Errorf("end: got %q, want %q", got, want)
	}
}

func TestWriteMatchSplit(t *testing.T) {
	m := seeq.Match{Start: 2, End: 6, Distance: 0}
	got := render(formatOpts{split: true}, 1, "xxACGTyy", m)
	want := "xx\tACGT\tyy\n"
	if got != want {
		t.Errorf("writeMatch() = %q, want %q", got, want)
	}
}

func TestWriteMatchShowLinePosDist(t *testing.T) {
	m := seeq.Match{Start: 2, End: 6, Distance: 1}
	o := formatOpts{showLine: true, showPos: true, showDist: true, printline: true}
	got := render(o, 7, "xxACGTyy", m)
	want := "7 2-5 1 xxACGTyy\n"
	if got != want {
		t.Errorf("writeMatch() = %q, want %q", got, want)
	}
}
