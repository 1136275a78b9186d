package tlsh

import "testing"

func TestCalcLvalueDomain(t *testing.T) {
	if _, ok := calcLvalue(MinDataLength - 1); ok {
		t.Fatalf("expected failure below MinDataLength")
	}
	if _, ok := calcLvalue(MaxDataLength + 1); ok {
		t.Fatalf("expected failure above MaxDataLength")
	}
	if _, ok := calcLvalue(MinDataLength); !ok {
		t.Fatalf("expected success at MinDataLength")
	}
}

func TestCalcLvalueMonotone(t *testing.T) {
	prev, _ := calcLvalue(MinDataLength)
	for n := uint64(MinDataLength + 1); n < MinDataLength+5000; n += 37 {
		v, ok := calcLvalue(n)
		if !ok {
			t.Fatalf("calcLvalue(%d) unexpectedly failed", n)
		}
		if v < prev {
			t.Fatalf("calcLvalue not monotone: f(%d)=%d < previous %d", n, v, prev)
		}
		prev = v
	}
}

func TestCalcLvalueAgreesAcrossTableBoundary(t *testing.T) {
	below := quantizeLength(lvalueTableCap - 1)
	atBoundary, ok := calcLvalue(lvalueTableCap - 1)
	if !ok || atBoundary != below {
		t.Fatalf("table lookup disagrees with live formula at boundary")
	}
	above, ok := calcLvalue(lvalueTableCap)
	if !ok {
		t.Fatalf("calcLvalue(lvalueTableCap) should succeed")
	}
	if above < atBoundary {
		t.Fatalf("quantization dropped across table boundary: %d -> %d", atBoundary, above)
	}
}
