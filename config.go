package seeq

import "github.com/coregx/seeq/internal/dfa"

// Config tunes the memory-bounded growth discipline shared by the
// forward and reverse DFA stores.
type Config struct {
	// MaxBytes bounds the combined estimated memory of each DFA's vertex
	// arena and deduplication trie. Zero means unbounded.
	MaxBytes uint64

	// MinSeedLen is the shortest exact literal run the seed prefilter
	// will use (see internal/seed). Zero uses the package default.
	MinSeedLen int
}

// DefaultConfig returns a Config with unbounded memory and the default
// seed length.
func DefaultConfig() Config {
	return Config{MaxBytes: 0, MinSeedLen: 0}
}

func (c Config) dfaConfig() dfa.Config {
	cfg := dfa.DefaultConfig()
	if c.MaxBytes > 0 {
		cfg = cfg.WithMaxBytes(c.MaxBytes)
	}
	return cfg
}

// Stats reports read-only counters for diagnosing how much of a scan ran
// through the lazy DFA versus the degraded cache path, for both the
// forward and reverse stores.
type Stats struct {
	Forward dfa.Stats
	Reverse dfa.Stats
}
