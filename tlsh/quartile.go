package tlsh

// EffBuckets is the number of leading bucket-histogram entries that drive
// the quartile computation and the code vector. Buckets beyond this index
// still accumulate tri-gram hits but never feed the finalized hash.
const EffBuckets = 128

// findQuartile computes (Q1, Q2, Q3) — the values at ranks 31, 63, 95 of
// the sorted first EffBuckets entries of bucket — via quickselect on a
// scratch copy. bucket itself is never mutated, so callers may inspect it
// after Finalize.
func findQuartile(bucket *[256]uint32) (q1, q2, q3 uint32) {
	var scratch [EffBuckets]uint32
	copy(scratch[:], bucket[:EffBuckets])

	var shortCutLeft, shortCutRight [EffBuckets]uint32
	spl, spr := 0, 0

	p1 := EffBuckets/4 - 1
	p2 := EffBuckets/2 - 1
	p3 := EffBuckets - EffBuckets/4 - 1
	end := EffBuckets - 1

	l, r := 0, end
q2Loop:
	for {
		ret := partition(&scratch, l, r)
		switch {
		case ret > p2:
			r = ret - 1
			shortCutRight[spr] = uint32(ret)
			spr++
		case ret < p2:
			l = ret + 1
			shortCutLeft[spl] = uint32(ret)
			spl++
		default:
			q2 = scratch[p2]
			break q2Loop
		}
	}

	shortCutLeft[spl] = uint32(p2 - 1)
	shortCutRight[spr] = uint32(p2 + 1)

	l = 0
q1Search:
	for i := 0; i <= spl; i++ {
		r := int(shortCutLeft[i])
		switch {
		case r > p1:
			for {
				ret := partition(&scratch, l, r)
				switch {
				case ret > p1:
					r = ret - 1
				case ret < p1:
					l = ret + 1
				default:
					q1 = scratch[p1]
					break q1Search
				}
			}
		case r < p1:
			l = r
		default:
			q1 = scratch[p1]
			break q1Search
		}
	}

	r = end
q3Search:
	for i := 0; i <= spr; i++ {
		l := int(shortCutRight[i])
		switch {
		case l < p3:
			for {
				ret := partition(&scratch, l, r)
				switch {
				case ret > p3:
					r = ret - 1
				case ret < p3:
					l = ret + 1
				default:
					q3 = scratch[p3]
					break q3Search
				}
			}
		case l > p3:
			r = l
		default:
			q3 = scratch[p3]
			break q3Search
		}
	}

	return q1, q2, q3
}

// partition is a midpoint-pivot Lomuto-style partition over buf[left..right]
// (both ends inclusive), returning the pivot's final resting index. left==right returns left
// directly; left+1==right conditionally swaps the pair and returns left.
func partition(buf *[EffBuckets]uint32, left, right int) int {
	if left == right {
		return left
	}
	if left+1 == right {
		if buf[left] > buf[right] {
			buf[left], buf[right] = buf[right], buf[left]
		}
		return left
	}

	ret := left
	pivot := (left + right) >> 1
	val := buf[pivot]
	buf[pivot] = buf[right]
	buf[right] = val

	for i := left; i < right; i++ {
		if buf[i] < val {
			buf[ret], buf[i] = buf[i], buf[ret]
			ret++
		}
	}
	buf[right] = buf[ret]
	buf[ret] = val
	return ret
}
