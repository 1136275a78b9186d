package tlsh

// CodeDiffFunc computes the bucket-code distance between two 32-byte TLSH
// code vectors. All backends implement the identical branchless per-symbol
// distance, just at different lane widths, so they are interchangeable and
// must return bit-identical results for the same inputs.
type CodeDiffFunc func(a, b *[32]byte) uint32

// diffCodes routes to whichever backend was selected at dispatch time.
func diffCodes(a, b *[32]byte) uint32 {
	ensureDispatch()
	return activeBackend.fn(a, b)
}

// diffCodesPortable64 is the reference backend: it folds eight code bytes
// into one uint64 and applies diffF3_64 once per word, covering all 32
// bytes in four iterations. Every other backend must agree with this one
// on every input.
func diffCodesPortable64(a, b *[32]byte) uint32 {
	var total uint32
	for i := 0; i < 32; i += 8 {
		wa := beU64(a[i : i+8])
		wb := beU64(b[i : i+8])
		total += diffF3_64(wa, wb)
	}
	return total
}

func beU64(b []byte) uint64 {
	var v uint64
	for _, x := range b {
		v = v<<8 | uint64(x)
	}
	return v
}

// diffF3_64 treats x and y as thirty-two 2-bit symbols packed into a uint64
// and sums the per-symbol TLSH code distance of every lane. TLSH's code
// distance is not Hamming/L1 over the 2-bit symbol: the 0/1/2 steps score
// 0/1/2 as usual, but the two "opposite corner" symbols (00 vs 11) score 6,
// not 3 -- a single tri-gram that flipped both quartile-class bits is
// weighted much more heavily than two tri-grams each off by one class. Each
// lane's term is computed without an if/else by first taking the
// sign-based absolute difference (0..3) and then adding a branchless extra
// penalty of 3 exactly when that difference's two bits are both set (i.e.
// difference == 3), via (d>>1)&(d&1).
func diffF3_64(x, y uint64) uint32 {
	var total uint32
	for shift := uint(0); shift < 64; shift += 2 {
		a := int32((x >> shift) & 0x3)
		b := int32((y >> shift) & 0x3)
		total += symbolContribution(absInt32(a - b))
	}
	return total
}

// diffF3_32 is the same per-symbol computation over sixteen 2-bit lanes
// packed into a uint32, used by the backends shaped after 32-bit SIMD
// lanes.
func diffF3_32(x, y uint32) uint32 {
	var total uint32
	for shift := uint(0); shift < 32; shift += 2 {
		a := int32((x >> shift) & 0x3)
		b := int32((y >> shift) & 0x3)
		total += symbolContribution(absInt32(a - b))
	}
	return total
}

// absInt32 is a branchless absolute value using the sign-extension trick:
// shifting a signed value right by 31 yields all-ones for negatives and
// all-zeros for non-negatives, which XOR-and-subtract then turns into |v|.
func absInt32(v int32) uint32 {
	mask := uint32(v >> 31)
	u := uint32(v)
	return (u ^ mask) - mask
}

// symbolContribution maps a 2-bit symbol's absolute difference (0..3) to
// its TLSH code-distance score: 0->0, 1->1, 2->2, 3->6. The extra +3 for
// difference 3 fires only when both bits of d are set, which is exactly
// d==3 for a value already known to be in [0,3]; no branch is needed.
func symbolContribution(d uint32) uint32 {
	extra := (d >> 1) & (d & 1)
	return d + 3*extra
}

// diffCodesLanes32 folds the 32-byte code vectors into eight uint32 lanes
// and sums diffF3_32 over them. It is bit-identical to diffCodesPortable64
// and backs every backend whose instruction set the reference vector
// routines group by 32-bit words.
func diffCodesLanes32(a, b *[32]byte) uint32 {
	var total uint32
	for i := 0; i < 32; i += 4 {
		wa := uint32(a[i])<<24 | uint32(a[i+1])<<16 | uint32(a[i+2])<<8 | uint32(a[i+3])
		wb := uint32(b[i])<<24 | uint32(b[i+1])<<16 | uint32(b[i+2])<<8 | uint32(b[i+3])
		total += diffF3_32(wa, wb)
	}
	return total
}

// diffCodesLUT is a precomputed byte-pair lookup table backend: for every
// pair of code bytes, the table holds the already-summed distance of their
// four packed 2-bit-symbol pairs, trading memory for avoiding any
// arithmetic in the hot loop. It is the default backend when no wider
// dispatch is available, mirroring the reference vector routines' own
// LUT-based fallback.
var codeLUT = buildCodeLUT()

func buildCodeLUT() [256][256]byte {
	var t [256][256]byte
	for a := 0; a < 256; a++ {
		for b := 0; b < 256; b++ {
			t[a][b] = byteDistance(byte(a), byte(b))
		}
	}
	return t
}

func byteDistance(a, b byte) byte {
	var d byte
	for s := 0; s < 4; s++ {
		sa := (a >> uint(s*2)) & 0x3
		sb := (b >> uint(s*2)) & 0x3
		d += symbolDistance(sa, sb)
	}
	return d
}

// symbolDistance is the TLSH code distance between two 2-bit symbols: the
// plain difference for 0/1/2, but 6 (not 3) for the opposite-corner pair
// (00 vs 11), via symbolContribution.
func symbolDistance(a, b byte) byte {
	var d byte
	if a > b {
		d = a - b
	} else {
		d = b - a
	}
	return byte(symbolContribution(uint32(d)))
}

func diffCodesLUT(a, b *[32]byte) uint32 {
	var total uint32
	for i := 0; i < 32; i++ {
		total += uint32(codeLUT[a[i]][b[i]])
	}
	return total
}
