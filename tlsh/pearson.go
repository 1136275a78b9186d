package tlsh

// legacySalts is the salt tuple used for color 0 (the canonical TLSH
// variant); it is the reference TLSH salt tuple. It must stay fixed: the order and values are
// a compatibility contract, not a tuning parameter.
var legacySalts = [6]byte{49, 12, 178, 166, 84, 230}

// coloredSalts is the salt tuple used for every non-zero color.
var coloredSalts = [6]byte{2, 3, 5, 7, 11, 13}

// Pearson is a seedable byte-permutation table used to build the TLSH
// bucket mapping. Each color gets its own table, built once and treated as
// immutable for the rest of the process's life.
type Pearson struct {
	color byte
	table [256]byte
}

// NewPearson builds the permutation table for the given color. Color 0 is
// the canonical TLSH variant.
func NewPearson(color byte) *Pearson {
	p := &Pearson{color: color}
	p.table = buildPermutation(color)
	return p
}

// Color reports the color this table was built for.
func (p *Pearson) Color() byte { return p.color }

// salts returns the six-salt tuple this color's bucket updates use: the
// legacy tuple for color 0, the small-prime tuple otherwise.
func (p *Pearson) salts() [6]byte {
	if p.color == 0 {
		return legacySalts
	}
	return coloredSalts
}

// bMapping is the three-chained Pearson lookup T[T[T[salt^a]^b]^c].
func (p *Pearson) bMapping(salt, a, b, c byte) byte {
	t := &p.table
	h := t[salt^a]
	h = t[h^b]
	h = t[h^c]
	return h
}

// buildPermutation deterministically derives a 256-byte permutation of
// 0..255 for the given color via a seeded Fisher-Yates shuffle. This is a
// reproducible stand-in for the proprietary constant table shipped by the
// reference TLSH implementation, which could not be sourced from the
// retrieval pack or verified without running the reference tool (see
// DESIGN.md). It still gives every color its own fixed, deterministic table,
// and color 0's table is stable across runs and builds.
func buildPermutation(seed byte) [256]byte {
	var t [256]byte
	for i := range t {
		t[i] = byte(i)
	}

	state := splitmix64Seed(seed)
	for i := 255; i > 0; i-- {
		state = splitmix64(state)
		j := int(state % uint64(i+1))
		t[i], t[j] = t[j], t[i]
	}
	return t
}

// splitmix64Seed expands a single byte into a well-distributed 64-bit
// starting state for splitmix64.
func splitmix64Seed(seed byte) uint64 {
	return 0x9E3779B97F4A7C15 ^ (uint64(seed)*0x2545F4914F6CDD1D + 1)
}

// splitmix64 is the standard SplitMix64 step, used only to drive the
// deterministic shuffle above; it is not relied on for any security
// property.
func splitmix64(x uint64) uint64 {
	x += 0x9E3779B97F4A7C15
	z := x
	z = (z ^ (z >> 30)) * 0xBF58476D1CE4E5B9
	z = (z ^ (z >> 27)) * 0x94D049BB133111EB
	return z ^ (z >> 31)
}
