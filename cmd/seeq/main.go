// Command seeq is a thin flag-parsing and file-scanning front end over
// the seeq engine: it compiles a pattern, opens an input file (or reads
// stdin), and prints matches in one of several output formats.
//
// File scanning and output formatting are deliberately kept out of the
// core engine; this file owns both, mirroring the original implementation's
// split between its library and its command-line driver.
package main

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/spf13/pflag"

	"github.com/coregx/seeq"
	"github.com/coregx/seeq/linescan"
)

const version = "seeq 2.0 (Go)"

var (
	flagDistance  = pflag.IntP("distance", "d", 0, "maximum Levenshtein distance")
	flagInvert    = pflag.BoolP("invert", "i", false, "return only the non-matching lines")
	flagBest      = pflag.BoolP("best", "b", false, "scan the whole line to find the best match")
	flagAll       = pflag.BoolP("all", "a", false, "return all the matches (implies -m)")
	flagNonDNA    = pflag.IntP("nondna", "x", 0, "non-DNA characters: 0-fail, 1-convert to N, 2-ignore")
	flagCount     = pflag.BoolP("count", "c", false, "return the count of matching lines")
	flagMatchOnly = pflag.BoolP("match-only", "m", false, "print only the matched sequence")
	flagNoLine    = pflag.BoolP("no-printline", "n", false, "do not print the matched line")
	flagShowLine  = pflag.BoolP("lines", "l", false, "show the line number of the match")
	flagShowPos   = pflag.BoolP("positions", "p", false, "show the position of the match")
	flagShowDist  = pflag.BoolP("print-dist", "k", false, "show the Levenshtein distance of the match")
	flagCompact   = pflag.BoolP("format-compact", "f", false, "print output in compact format (line:start-end:dist)")
	flagEnd       = pflag.BoolP("end", "e", false, "print only the end of the line, starting after the match")
	flagPrefix    = pflag.BoolP("prefix", "r", false, "print only the prefix, ending before the match")
	flagSplit     = pflag.BoolP("split", "s", false, "print prefix, match and suffix separated by tabs")
	flagMemory    = pflag.IntP("memory", "y", 0, "set DFA memory limit in MB (0 = unbounded)")
	flagVerbose   = pflag.BoolP("verbose", "z", false, "verbose diagnostics on stderr")
	flagVersion   = pflag.BoolP("version", "v", false, "print version")
)

func usage() {
	fmt.Fprintf(os.Stderr, "%s\n\nUsage:\n  seeq [options] pattern [inputfile]\n\n", version)
	pflag.PrintDefaults()
}

func main() {
	pflag.Usage = usage
	pflag.Parse()

	if *flagVersion {
		fmt.Fprintln(os.Stderr, version)
		return
	}

	args := pflag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "error: not enough arguments.")
		usage()
		os.Exit(1)
	}
	if len(args) > 2 {
		fmt.Fprintln(os.Stderr, "error: too many arguments.")
		usage()
		os.Exit(1)
	}
	expr := args[0]

	input := os.Stdin
	if len(args) == 2 {
		f, err := os.Open(args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		input = f
	}

	if *flagNonDNA < 0 || *flagNonDNA > 2 {
		fmt.Fprintln(os.Stderr, "error: nondna value must be either 0, 1 or 2.")
		os.Exit(1)
	}

	printline := true
	if *flagNoLine {
		printline = false
	} else {
		printline = !*flagMatchOnly && !*flagEnd && !*flagPrefix
	}

	if !*flagShowDist && !*flagShowPos && !printline && !*flagMatchOnly && !*flagShowLine &&
		!*flagCount && !*flagCompact && !*flagPrefix && !*flagEnd {
		fmt.Fprintln(os.Stderr, "error: invalid options, no output will be generated.")
		os.Exit(1)
	}

	maskcnt := !*flagCount
	maskinv := !*flagInvert && maskcnt

	out := formatOpts{
		showLine:  *flagShowLine && maskcnt,
		showPos:   *flagShowPos && maskinv,
		showDist:  *flagShowDist && maskinv,
		printline: printline && maskinv,
		matchOnly: *flagMatchOnly && maskinv,
		compact:   *flagCompact && maskinv,
		prefix:    *flagPrefix && maskinv,
		end:       *flagEnd && maskinv,
		split:     *flagSplit && maskinv,
	}
	invert := *flagInvert && maskcnt

	reporting := seeq.FIRST
	switch {
	case *flagAll:
		reporting = seeq.ALL
		out.matchOnly = true
	case *flagBest:
		reporting = seeq.BEST
	}

	nonDNA := seeq.FAIL
	switch *flagNonDNA {
	case 1:
		nonDNA = seeq.CONVERT
	case 2:
		nonDNA = seeq.IGNORE
	}
	opts := reporting | nonDNA

	cfg := seeq.DefaultConfig()
	if *flagMemory > 0 {
		cfg.MaxBytes = uint64(*flagMemory) * 1024 * 1024
	}

	if *flagVerbose {
		fmt.Fprint(os.Stderr, "opening input file... ")
	}

	engine, err := seeq.NewWithConfig(expr, *flagDistance, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error compiling pattern: %v\n", err)
		os.Exit(1)
	}
	defer engine.Close()

	start := time.Now()
	if *flagVerbose {
		fmt.Fprintln(os.Stderr, "\nmatching...")
	}

	w := bufio.NewWriter(os.Stdout)
	defer w.Flush()

	sc := linescan.New(input, engine, opts)

	switch {
	case *flagCount:
		runCount(w, sc)
	case invert:
		runInvert(w, sc, out.showLine)
	default:
		runMatch(w, sc, engine, out)
	}

	if err := sc.Err(); err != nil {
		w.Flush()
		fmt.Fprintf(os.Stderr, "error reading input: %v\n", err)
		os.Exit(1)
	}

	if *flagVerbose {
		stats := engine.Stats()
		fmt.Fprintf(os.Stderr, "vertices: forward=%d reverse=%d\n",
			stats.Forward.VerticesCreated, stats.Reverse.VerticesCreated)
		fmt.Fprintf(os.Stderr, "done in %s\n", time.Since(start))
	}
}

func runCount(w *bufio.Writer, sc *linescan.Scanner) {
	matching := 0
	for sc.Scan() {
		if sc.Matched() {
			matching++
		}
	}
	fmt.Fprintln(w, matching)
}

func runInvert(w *bufio.Writer, sc *linescan.Scanner, showLine bool) {
	for sc.Scan() {
		if sc.Matched() {
			continue
		}
		if showLine {
			fmt.Fprintf(w, "%d ", sc.Line())
		}
		fmt.Fprintln(w, sc.Text())
	}
}

func runMatch(w *bufio.Writer, sc *linescan.Scanner, engine *seeq.Engine, out formatOpts) {
	for sc.Scan() {
		if !sc.Matched() {
			continue
		}
		text := sc.Text()
		for {
			m, ok := engine.MatchIter()
			if !ok {
				break
			}
			writeMatch(w, sc.Line(), text, m, out)
		}
	}
}

type formatOpts struct {
	showLine  bool
	showPos   bool
	showDist  bool
	printline bool
	matchOnly bool
	compact   bool
	prefix    bool
	end       bool
	split     bool
}

func writeMatch(w *bufio.Writer, line int, text string, m seeq.Match, o formatOpts) {
	if o.compact {
		fmt.Fprintf(w, "%d:%d-%d:%d\n", line, m.Start, m.End-1, m.Distance)
		return
	}

	if o.showLine {
		fmt.Fprintf(w, "%d ", line)
	}
	if o.showPos {
		fmt.Fprintf(w, "%d-%d ", m.Start, m.End-1)
	}
	if o.showDist {
		fmt.Fprintf(w, "%d ", m.Distance)
	}

	switch {
	case o.matchOnly:
		fmt.Fprint(w, text[m.Start:m.End])
	case o.split:
		fmt.Fprintf(w, "%s\t%s\t%s", text[:m.Start], text[m.Start:m.End], text[m.End:])
	case o.prefix:
		fmt.Fprint(w, text[:m.Start])
	case o.end:
		fmt.Fprint(w, text[m.End:])
	case o.printline:
		fmt.Fprint(w, text)
	}
	fmt.Fprintln(w)
}
