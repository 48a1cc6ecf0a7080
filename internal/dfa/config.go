package dfa

// Config configures a vertex store's initial sizing and memory discipline.
//
// The store starts small and grows its vertex arena and trie by doubling
// as new alignment rows are discovered. MaxBytes bounds that growth; once
// the estimated footprint would exceed it, the store stops creating new
// vertices and trie nodes and permanently routes further lazy steps
// through the shared cache vertex instead.
type Config struct {
	// InitialVertices is the number of vertex slots preallocated before
	// any growth. Default: 256.
	InitialVertices int

	// InitialTrieNodes is the number of trie nodes preallocated before
	// any growth. Default: 256.
	InitialTrieNodes int

	// MaxBytes bounds the combined estimated memory of the vertex arena
	// and the deduplication trie. Zero means unbounded.
	MaxBytes uint64
}

// DefaultConfig returns a configuration with sensible defaults for typical
// pattern lengths and edit-distance thresholds.
func DefaultConfig() Config {
	return Config{
		InitialVertices:  256,
		InitialTrieNodes: 256,
		MaxBytes:         0,
	}
}

// Validate reports whether the configuration is usable.
func (c *Config) Validate() error {
	if c.InitialVertices < 2 {
		return &Error{Kind: InvalidConfig, Message: "InitialVertices must be >= 2"}
	}
	if c.InitialTrieNodes < 1 {
		return &Error{Kind: InvalidConfig, Message: "InitialTrieNodes must be >= 1"}
	}
	return nil
}

// WithMaxBytes returns a copy of c with MaxBytes set.
func (c Config) WithMaxBytes(maxBytes uint64) Config {
	c.MaxBytes = maxBytes
	return c
}

// WithInitialVertices returns a copy of c with InitialVertices set.
func (c Config) WithInitialVertices(n int) Config {
	c.InitialVertices = n
	return c
}

// WithInitialTrieNodes returns a copy of c with InitialTrieNodes set.
func (c Config) WithInitialTrieNodes(n int) Config {
	c.InitialTrieNodes = n
	return c
}
