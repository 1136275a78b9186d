package tlsh

// TLSH is a single fuzzy-hash digest: a checksum byte, a quantized length
// byte, a packed quartile-ratio byte and a 32-byte, 2-bit-per-bucket code
// vector covering the first EffBuckets histogram buckets.
type TLSH struct {
	Checksum byte
	Lvalue   byte
	QRatios  byte
	Codes    [32]byte
}

// ColoredTLSH pairs a TLSH digest with the color of the Pearson table that
// produced it. Color 0 is the canonical variant and uses the legacy salt
// tuple; its Pearson table is the one buildPermutation derives, not the
// reference TLSH table, so its digests do not match reference TLSH output.
type ColoredTLSH struct {
	Color byte
	TLSH  TLSH
}

// q1Ratio and q2Ratio unpack the nibbles Finalize packed into QRatios.
func (t TLSH) q1Ratio() byte { return t.QRatios & 0x0F }
func (t TLSH) q2Ratio() byte { return (t.QRatios >> 4) & 0x0F }

// Diff computes the distance between two TLSH digests of the same color.
// lenIncluded controls whether the quantized-length and checksum
// contribution is folded into the result, matching the reference
// implementation's len-inclusive and len-exclusive comparison modes.
func Diff(a, b TLSH, lenIncluded bool) uint32 {
	var diff uint32

	if lenIncluded {
		ldiff := modDiff(uint32(a.Lvalue), uint32(b.Lvalue), 256)
		if ldiff == 0 {
			diff = 0
		} else if ldiff == 1 {
			diff = 1
		} else {
			diff = ldiff * 12
		}

		if a.Checksum != b.Checksum {
			diff++
		}
	}

	q1diff := modDiff(uint32(a.q1Ratio()), uint32(b.q1Ratio()), 16)
	diff += scaledCircularDistance(q1diff)

	q2diff := modDiff(uint32(a.q2Ratio()), uint32(b.q2Ratio()), 16)
	diff += scaledCircularDistance(q2diff)

	diff += uint32(diffCodes(&a.Codes, &b.Codes))

	return diff
}

// DiffColored compares two ColoredTLSH values. It returns an error if their
// colors differ, since cross-color distances are not meaningful: each color
// uses its own Pearson permutation, so bucket indices are not comparable.
func DiffColored(a, b ColoredTLSH, lenIncluded bool) (uint32, error) {
	if a.Color != b.Color {
		return 0, &Error{Kind: KindVariety, msg: "tlsh: cannot diff hashes of different colors"}
	}
	return Diff(a.TLSH, b.TLSH, lenIncluded), nil
}

// modDiff is the circular distance between a and b modulo mod: the smaller
// of stepping up from a to b, or down from a to b, around the ring.
func modDiff(a, b, mod uint32) uint32 {
	var d uint32
	if a > b {
		d = a - b
	} else {
		d = b - a
	}
	if d*2 > mod {
		return mod - d
	}
	return d
}

// scaledCircularDistance maps a small circular distance (as produced by
// modDiff over the quartile-ratio ring) into the quartile contribution to
// Diff: a distance of 0 or 1 passes through unscaled, and anything larger
// is scaled up, so that ratio mismatches dominate the score the further
// apart they are.
func scaledCircularDistance(d uint32) uint32 {
	if d <= 1 {
		return d
	}
	return 1 + 12*(d-1)
}
