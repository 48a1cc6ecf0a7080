// Package seed derives exact literal runs from a compiled pattern and
// wraps them in the fastest available multi-literal matcher, for use as
// a line-skip prefilter ahead of the core DFA scan. This is strictly a
// performance optimisation: a line that the filter rejects is guaranteed
// to hold no match, but a line it accepts still has to go through the
// full scan.
package seed

import (
	"sort"

	"github.com/coregx/ahocorasick"
	"github.com/coregx/seeq/internal/pattern"
	"github.com/coregx/seeq/prefilter"
)

// DefaultMinSeedLen is the shortest exact run worth seeding a prefilter
// with; shorter runs produce too many false candidates to be worthwhile.
const DefaultMinSeedLen = 3

// maxTeddyLiterals mirrors prefilter.NewFromLiterals' own ceiling: above
// this count, Teddy's bucket scheme no longer applies and the filter
// falls back to an Aho-Corasick automaton.
const maxTeddyLiterals = 32

func isExact(k pattern.Key) bool {
	switch k {
	case pattern.BaseA, pattern.BaseC, pattern.BaseG, pattern.BaseT:
		return true
	default:
		return false
	}
}

func letterFor(k pattern.Key) byte {
	switch k {
	case pattern.BaseA:
		return 'A'
	case pattern.BaseC:
		return 'C'
	case pattern.BaseG:
		return 'G'
	case pattern.BaseT:
		return 'T'
	default:
		return 0
	}
}

// Derive extracts maximal exact runs from keys, keeps those at least
// minLen bases long, and returns up to tau+1 of the longest ones. minLen
// <= 0 uses DefaultMinSeedLen. When exactly tau+1 runs are returned, the
// pigeonhole principle guarantees that any alignment within tau edits
// leaves at least one of them untouched in the matching region of the
// text; with fewer runs there is no such guarantee.
func Derive(keys []pattern.Key, tau int, minLen int) [][]byte {
	if minLen <= 0 {
		minLen = DefaultMinSeedLen
	}

	var runs [][]byte
	for i := 0; i < len(keys); {
		if !isExact(keys[i]) {
			i++
			continue
		}
		j := i
		var lit []byte
		for j < len(keys) && isExact(keys[j]) {
			lit = append(lit, letterFor(keys[j]))
			j++
		}
		if len(lit) >= minLen {
			runs = append(runs, lit)
		}
		i = j
	}

	sort.SliceStable(runs, func(a, b int) bool { return len(runs[a]) > len(runs[b]) })

	limit := tau + 1
	if limit < 0 {
		limit = 0
	}
	if len(runs) > limit {
		runs = runs[:limit]
	}
	return runs
}

// Filter wraps the strategy-appropriate multi-literal matcher over a set
// of derived literal runs. A nil *Filter (returned by Build when no
// qualifying run exists) means the caller must fall back to scanning
// every line unfiltered; that is always correct, just unfiltered.
type Filter struct {
	pf   prefilter.Prefilter
	auto *ahocorasick.Automaton
}

// Build constructs a Filter from the pattern's compiled keys, or returns
// (nil, nil) if fewer than tau+1 qualifying literal runs exist: with fewer
// runs, tau edits could touch every one of them and the pigeonhole
// guarantee behind MightMatch would not hold.
func Build(keys []pattern.Key, tau int, minLen int) (*Filter, error) {
	runs := Derive(keys, tau, minLen)
	if len(runs) == 0 || len(runs) < tau+1 {
		return nil, nil
	}

	if len(runs) > maxTeddyLiterals {
		builder := ahocorasick.NewBuilder()
		for _, r := range runs {
			builder.AddPattern(r)
		}
		auto, err := builder.Build()
		if err != nil {
			return nil, err
		}
		return &Filter{auto: auto}, nil
	}

	pf := prefilter.NewFromLiterals(runs)
	if pf == nil {
		return nil, nil
	}
	return &Filter{pf: pf}, nil
}

// MightMatch reports whether line could possibly contain a match. false
// is a proof of absence; true means the caller still has to run the full
// scan.
func (f *Filter) MightMatch(line []byte) bool {
	if f == nil {
		return true
	}
	if f.auto != nil {
		return f.auto.IsMatch(line)
	}
	return f.pf.Find(line, 0) != -1
}
