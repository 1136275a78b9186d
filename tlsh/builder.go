package tlsh

import "math"

// windowSize is the width of the sliding window the builder maintains over
// the byte stream; every tri-gram bucket update reads from it.
const windowSize = 5

// colorState holds one color's worth of accumulator state: its Pearson
// table, bucket histogram, running checksum and sliding window.
type colorState struct {
	pearson    *Pearson
	bucket     [256]uint32
	checksum   byte
	window     [windowSize]byte
	finalized  *finalizedResult
}

type finalizedResult struct {
	hash ColoredTLSH
	err  error
}

// Result pairs a finalized colored hash with the error, if any, that
// occurred while finalizing it.
type Result struct {
	Hash ColoredTLSH
	Err  error
}

// Builder accumulates one or more TLSH hashes (one per requested color)
// from a byte stream fed through Update. It must be Finalized before its
// hashes can be read with GetHashes or GetHash, and can be reused for a new
// stream after Reset.
type Builder struct {
	colors  []colorState
	dataLen uint64
}

// NewBuilder creates a Builder that computes one TLSH hash per color given.
// With no colors, it defaults to the canonical color 0.
func NewBuilder(colors ...byte) *Builder {
	if len(colors) == 0 {
		colors = []byte{0}
	}
	states := make([]colorState, len(colors))
	for i, c := range colors {
		states[i] = colorState{pearson: NewPearson(c)}
	}
	return &Builder{colors: states}
}

// Reset clears the histograms, checksums, sliding windows and finalization
// state so the builder can be reused for a new stream. The Pearson tables
// are kept, since they are immutable and independent of the data fed.
func (b *Builder) Reset() {
	for i := range b.colors {
		b.colors[i].bucket = [256]uint32{}
		b.colors[i].checksum = 0
		b.colors[i].window = [windowSize]byte{}
		b.colors[i].finalized = nil
	}
	b.dataLen = 0
}

// Update feeds the next chunk of the stream into every color's
// accumulator. Update is associative over chunking: splitting a stream into
// any sequence of Update calls yields the same finalized hash as one call
// with the whole stream.
func (b *Builder) Update(data []byte) {
	for i := range b.colors {
		b.colors[i].finalized = nil
	}
	b.fastUpdate(data)
}

// ringIndex maps an arbitrary (possibly negative) offset into the window's
// [0, windowSize) ring, without branching on sign.
func ringIndex(x int) int {
	return (x%windowSize + windowSize) % windowSize
}

// accumulate performs the six chained Pearson lookups for one tri-gram
// window and bumps the corresponding bucket counters.
func (cs *colorState) accumulate(salts [6]byte, p2, p3, p4, p5, p6 byte) {
	p := cs.pearson
	cs.bucket[p.bMapping(salts[0], p2, p3, p4)]++
	cs.bucket[p.bMapping(salts[1], p2, p3, p5)]++
	cs.bucket[p.bMapping(salts[2], p2, p4, p5)]++
	cs.bucket[p.bMapping(salts[3], p2, p4, p6)]++
	cs.bucket[p.bMapping(salts[4], p2, p3, p6)]++
	cs.bucket[p.bMapping(salts[5], p2, p5, p6)]++
}

// fastUpdate implements the streaming window described in SPEC_FULL.md
// §4.B: a fast path that processes five stream positions at a time without
// touching the sliding window buffer when a 9-byte lookahead is available
// in the current chunk, and a slow path that materializes the window for
// chunk boundaries. Both paths feed the same checksum salt (1) and the same
// six-tri-gram accumulation, so they produce identical state for the same
// byte sequence regardless of how it was chunked.
func (b *Builder) fastUpdate(data []byte) {
	length := len(data)
	for n := range b.colors {
		cs := &b.colors[n]
		salts := cs.pearson.salts()

		j := ringIndex(int(b.dataLen % windowSize))
		fedLen := b.dataLen
		checksum := cs.checksum

		i := 0
		for i < length {
			if fedLen >= windowSize-1 {
				if i >= 4 && i+5 < length {
					a0 := data[i-4]
					a1 := data[i-3]
					a2 := data[i-2]
					a3 := data[i-1]
					a4 := data[i]
					a5 := data[i+1]
					a6 := data[i+2]
					a7 := data[i+3]
					a8 := data[i+4]

					checksum = cs.pearson.bMapping(1, a4, a3, checksum)
					cs.accumulate(salts, a4, a3, a2, a1, a0)

					checksum = cs.pearson.bMapping(1, a5, a4, checksum)
					cs.accumulate(salts, a5, a4, a3, a2, a1)

					checksum = cs.pearson.bMapping(1, a6, a5, checksum)
					cs.accumulate(salts, a6, a5, a4, a3, a2)

					checksum = cs.pearson.bMapping(1, a7, a6, checksum)
					cs.accumulate(salts, a7, a6, a5, a4, a3)

					checksum = cs.pearson.bMapping(1, a8, a7, checksum)
					cs.accumulate(salts, a8, a7, a6, a5, a4)

					i += 5
					fedLen += 5
					j = ringIndex(j + 5)
				} else {
					cs.window[j] = data[i]
					jn := func(n int) int {
						idx := ringIndex(j - n)
						if i >= n {
							cs.window[idx] = data[i-n]
						}
						return idx
					}
					j1 := jn(1)
					j2 := jn(2)
					j3 := jn(3)
					j4 := jn(4)

					checksum = cs.pearson.bMapping(1, cs.window[j], cs.window[j1], checksum)
					cs.accumulate(salts, cs.window[j], cs.window[j1], cs.window[j2], cs.window[j3], cs.window[j4])

					i++
					fedLen++
					j = ringIndex(j + 1)
				}
			} else {
				cs.window[j] = data[i]
				i++
				fedLen++
				j = ringIndex(j + 1)
			}
		}
		cs.checksum = checksum
	}
	b.dataLen += uint64(length)
}

// Finalize turns the accumulated histograms into TLSH hashes, one per
// color. It is idempotent: calling it again without an intervening Update
// recomputes the same result.
func (b *Builder) Finalize() {
	lvalue, ok := calcLvalue(b.dataLen)
	if !ok {
		for i := range b.colors {
			b.colors[i].finalized = &finalizedResult{err: ErrLength}
		}
		return
	}

	for n := range b.colors {
		cs := &b.colors[n]
		q1, q2, q3 := findQuartile(&cs.bucket)
		if q3 == 0 {
			cs.finalized = &finalizedResult{err: ErrVariety}
			continue
		}

		nonzero := 0
		for i := 0; i < EffBuckets; i++ {
			if cs.bucket[i] > 0 {
				nonzero++
			}
		}
		if nonzero <= EffBuckets/2 {
			cs.finalized = &finalizedResult{err: ErrVariety}
			continue
		}

		var codes [32]byte
		for i := 0; i < 32; i++ {
			var h byte
			for j := 0; j < 4; j++ {
				k := cs.bucket[4*i+j]
				switch {
				case k > q3:
					h |= 3 << uint(j*2)
				case k > q2:
					h |= 2 << uint(j*2)
				case k > q1:
					h |= 1 << uint(j*2)
				}
			}
			codes[i] = h
		}

		q1r := byte(math.Mod(float64(q1*100)/float64(q3), 16))
		q2r := byte(math.Mod(float64(q2*100)/float64(q3), 16))
		qRatios := (q2r << 4) | q1r

		cs.finalized = &finalizedResult{hash: ColoredTLSH{
			Color: cs.pearson.color,
			TLSH: TLSH{
				Checksum: cs.checksum,
				Lvalue:   lvalue,
				QRatios:  qRatios,
				Codes:    codes,
			},
		}}
	}
}

// GetHashes returns the finalized result for every color the builder was
// created with, in the order given to NewBuilder. Calling it before
// Finalize is a programming error and panics, per the core's fail-fast
// contract.
func (b *Builder) GetHashes() []Result {
	out := make([]Result, len(b.colors))
	for i, cs := range b.colors {
		if cs.finalized == nil {
			panic("tlsh: GetHashes called before Finalize")
		}
		out[i] = Result{Hash: cs.finalized.hash, Err: cs.finalized.err}
	}
	return out
}

// GetHash is a convenience accessor for builders created with exactly one
// color; it panics otherwise, since there is no single hash to return.
func (b *Builder) GetHash() (TLSH, error) {
	if len(b.colors) != 1 {
		panic("tlsh: GetHash requires a builder created with exactly one color")
	}
	res := b.GetHashes()[0]
	return res.Hash.TLSH, res.Err
}
