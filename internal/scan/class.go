// Package scan implements the streaming match engine: symbol translation,
// the forward/reverse DFA scan loop, run detection and the reporting
// policies (FIRST, BEST, ALL).
package scan

// Class is one of the eight symbol classes the scanner translates every
// input byte into before stepping the DFA.
type Class byte

const (
	ClassA Class = iota
	ClassC
	ClassG
	ClassT
	ClassN
	ClassEOL       // '\n'
	ClassSentinel  // '\0'
	ClassIllegal
)

// NBases is the number of classes that are valid DFA step inputs
// (everything below it; EOL/Sentinel/Illegal never drive a DFA step).
const NBases = 5

// NonDNAPolicy selects how bytes outside {A,C,G,T,U,N} (case-insensitive)
// are handled during a scan.
type NonDNAPolicy uint8

const (
	// PolicyFail ends the scan of the current string on an illegal byte.
	PolicyFail NonDNAPolicy = iota
	// PolicyIgnore skips an illegal byte without advancing the DFA.
	PolicyIgnore
	// PolicyConvert folds an illegal byte to N.
	PolicyConvert
)

// classesIgnore and classesConvert are the two symbol translation tables,
// differing only in how they classify a byte outside {A,C,G,T,U,N,\n,\0}:
// classesIgnore maps it to ClassIllegal, classesConvert maps it to ClassN.
// Both PolicyFail and PolicyIgnore read from classesIgnore; only the
// caller's handling of a ClassIllegal result differs between them.
var (
	classesIgnore  [256]Class
	classesConvert [256]Class
)

func init() {
	for i := range classesIgnore {
		classesIgnore[i] = ClassIllegal
		classesConvert[i] = ClassN
	}
	classesIgnore[0] = ClassSentinel
	classesConvert[0] = ClassSentinel
	classesIgnore['\n'] = ClassEOL
	classesConvert['\n'] = ClassEOL

	set := func(c byte, cls Class) {
		classesIgnore[c] = cls
		classesConvert[c] = cls
	}
	set('A', ClassA)
	set('a', ClassA)
	set('C', ClassC)
	set('c', ClassC)
	set('G', ClassG)
	set('g', ClassG)
	set('T', ClassT)
	set('t', ClassT)
	set('U', ClassT)
	set('u', ClassT)
	set('N', ClassN)
	set('n', ClassN)
}

// translate classifies byte b under the given non-DNA policy.
func translate(b byte, policy NonDNAPolicy) Class {
	if policy == PolicyConvert {
		return classesConvert[b]
	}
	return classesIgnore[b]
}
