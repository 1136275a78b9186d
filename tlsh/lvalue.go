package tlsh

import (
	"math"
	"sync"
)

// MinDataLength is the smallest number of bytes calcLvalue accepts. Below
// this, TLSH's histogram cannot carry enough signal regardless of content.
const MinDataLength = 50

// MaxDataLength is the largest representable input length; it mirrors the
// reference implementation's choice of a 32-bit length parameter.
const MaxDataLength = math.MaxUint32

// lvalueTableCap bounds how much of the length domain is precomputed into a
// literal lookup table on first use. Lengths beyond the cap fall back to the
// same quantizing formula evaluated live, clamped to stay monotone and
// continuous with the table.
const lvalueTableCap = 1 << 16

var (
	lvalueTableOnce sync.Once
	lvalueTable     [lvalueTableCap]byte
)

func buildLvalueTable() {
	for n := 0; n < lvalueTableCap; n++ {
		lvalueTable[n] = quantizeLength(uint64(n))
	}
}

// quantizeLength blends natural, base-1.3 and base-1.5 logarithms of the
// length, mirroring the shape of the reference TLSH length quantization
// (which also blends multiple log bases to flatten quantization error
// across the length domain), then scales and saturates the result into a
// single byte. It is deterministic and monotone non-decreasing in length.
func quantizeLength(length uint64) byte {
	if length == 0 {
		return 0
	}
	f := float64(length)
	v := math.Log(f)
	v += math.Log(f) / math.Log(1.3)
	v += math.Log(f) / math.Log(1.5)
	v /= 3

	const scale = 18.0
	scaled := v * scale
	if scaled < 0 {
		scaled = 0
	}
	if scaled > 255 {
		scaled = 255
	}
	return byte(scaled)
}

// calcLvalue is the logarithmic length->byte encoding used by Finalize. It
// reports (0, false) when length falls outside [MinDataLength,
// MaxDataLength]. The table is built once, lazily, on first use: calls are
// an O(1) probe against a frozen table for the common range, and a direct
// formula evaluation (still deterministic and monotone) beyond it.
func calcLvalue(length uint64) (byte, bool) {
	if length < MinDataLength || length > MaxDataLength {
		return 0, false
	}
	if length < lvalueTableCap {
		lvalueTableOnce.Do(buildLvalueTable)
		return lvalueTable[length], true
	}
	return quantizeLength(length), true
}
