package tlsh

import (
	"sort"
	"testing"
)

func TestFindQuartileMatchesSort(t *testing.T) {
	var bucket [256]uint32
	state := uint32(1)
	for i := range bucket {
		state = state*1664525 + 1013904223
		bucket[i] = state % 500
	}

	q1, q2, q3 := findQuartile(&bucket)

	sorted := make([]uint32, EffBuckets)
	copy(sorted, bucket[:EffBuckets])
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	if want := sorted[EffBuckets/4-1]; q1 != want {
		t.Fatalf("q1 = %d, want %d", q1, want)
	}
	if want := sorted[EffBuckets/2-1]; q2 != want {
		t.Fatalf("q2 = %d, want %d", q2, want)
	}
	if want := sorted[EffBuckets-EffBuckets/4-1]; q3 != want {
		t.Fatalf("q3 = %d, want %d", q3, want)
	}
}

func TestFindQuartileConstantBucket(t *testing.T) {
	var bucket [256]uint32
	for i := range bucket {
		bucket[i] = 7
	}
	q1, q2, q3 := findQuartile(&bucket)
	if q1 != 7 || q2 != 7 || q3 != 7 {
		t.Fatalf("constant bucket should yield q1=q2=q3=7, got %d %d %d", q1, q2, q3)
	}
}

func TestPartitionTrivialRanges(t *testing.T) {
	buf := [EffBuckets]uint32{}
	for i := range buf {
		buf[i] = uint32(EffBuckets - i)
	}
	if got := partition(&buf, 5, 5); got != 5 {
		t.Fatalf("partition(l,l) should return l, got %d", got)
	}

	buf2 := [EffBuckets]uint32{}
	buf2[0], buf2[1] = 9, 3
	idx := partition(&buf2, 0, 1)
	if buf2[idx] > buf2[1-idx] {
		t.Fatalf("partition of a pair did not order them")
	}
}
