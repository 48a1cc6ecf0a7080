// Package path implements the ternary differential path codec used to
// compress a Needleman-Wunsch alignment row into a compact byte string
// suitable for deduplication and storage on a DFA vertex.
//
// A row of the alignment matrix is represented as a sequence of "path"
// digits, one per pattern position. Each digit is the column-to-column
// delta of the row, shifted into {0,1,2} to represent {-1,0,+1}. Five
// ternary digits pack into one byte using the weights {81,27,9,3,1},
// mirroring the original C implementation's path_encode/path_decode/
// path_compare trio.
package path

import "github.com/coregx/seeq/internal/conv"

// weight holds the base-3 positional weight for each of the five ternary
// digits packed into a single byte.
var weight = [5]byte{81, 27, 9, 3, 1}

// EncodedLen returns the number of bytes needed to encode n ternary digits.
func EncodedLen(n int) int {
	return n/5 + boolToInt(n%5 > 0)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Encode packs n ternary digits (each in {0,1,2}) from path into a freshly
// allocated byte slice of length EncodedLen(n).
//
// Encode panics if any digit is out of the {0,1,2} range; the caller (the
// alignment row updater) is expected to only ever produce valid digits.
func Encode(digits []byte, n int) []byte {
	data := make([]byte, EncodedLen(n))
	for i := 0; i < n; i++ {
		d := digits[i]
		if d > 2 {
			panic("path: ternary digit out of range")
		}
		data[i/5] += d * weight[i%5]
	}
	return data
}

// Decode unpacks n ternary digits from the encoded byte slice data into a
// freshly allocated slice of length n.
func Decode(data []byte, n int) []byte {
	digits := make([]byte, n)
	var tmp byte
	for i := 0; i < n; i++ {
		if i%5 == 0 {
			tmp = data[i/5]
		}
		digits[i] = tmp / weight[i%5]
		tmp %= weight[i%5]
	}
	return digits
}

// Compare reports whether the n ternary digits in path match the n digits
// packed into data, without allocating an intermediate decoded slice.
func Compare(digits []byte, data []byte, n int) bool {
	var tmp byte
	for i := 0; i < n; i++ {
		if i%5 == 0 {
			tmp = data[i/5]
		}
		if tmp/weight[i%5] != digits[i] {
			return false
		}
		tmp %= weight[i%5]
	}
	return true
}

// ToAlignment reconstructs the absolute NW row from a decoded differential
// path: align[0] = 0, align[i+1] = align[i] + path[i] - 1.
func ToAlignment(digits []byte) []int {
	align := make([]int, len(digits)+1)
	for i, d := range digits {
		align[i+1] = align[i] + int(d) - 1
	}
	return align
}

// EncodedLenU32 is EncodedLen narrowed to uint32 for sizing vertex storage.
func EncodedLenU32(n int) uint32 {
	return conv.IntToUint32(EncodedLen(n))
}
