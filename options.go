package seeq

import (
	"github.com/coregx/seeq/internal/scan"
)

// Options is a bitmask of three orthogonal groups: Reporting and NonDNA
// (two bits each) and Framing (one bit). Setting two bits from the same group is undefined
// behaviour, matching the original C implementation's contract.
type Options uint

const (
	// FIRST stops the scan at the first emitted match. Default.
	FIRST Options = 0
	// BEST scans the whole input and keeps only the lowest-distance
	// emission, earliest on ties.
	BEST Options = 1
	// ALL emits every run's representative.
	ALL Options = 2

	maskReporting Options = 3

	// FAIL stops the scan of the current string on an illegal byte.
	// Default.
	FAIL Options = 0
	// CONVERT folds an illegal byte to N.
	CONVERT Options = 4
	// IGNORE skips an illegal byte without advancing the DFA.
	IGNORE Options = 8

	maskNonDNA Options = 12

	// LINES stops at the first '\n' or '\0'. Default.
	LINES Options = 0
	// STREAM ignores '\n' as a regular character and scans to '\0'.
	STREAM Options = 16

	maskFraming Options = 16
)

func (o Options) mode() scan.Mode {
	switch o & maskReporting {
	case BEST:
		return scan.ModeBest
	case ALL:
		return scan.ModeAll
	default:
		return scan.ModeFirst
	}
}

func (o Options) policy() scan.NonDNAPolicy {
	switch o & maskNonDNA {
	case CONVERT:
		return scan.PolicyConvert
	case IGNORE:
		return scan.PolicyIgnore
	default:
		return scan.PolicyFail
	}
}

func (o Options) framing() scan.Framing {
	if o&maskFraming == STREAM {
		return scan.FramingStream
	}
	return scan.FramingLines
}
