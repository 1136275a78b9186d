package tlsh

import "testing"

func TestDiffModeIsStableAcrossCalls(t *testing.T) {
	first := DiffMode()
	second := DiffMode()
	if first != second {
		t.Fatalf("DiffMode changed between calls: %s then %s", first, second)
	}
}

func TestActiveBackendAgreesWithPortable(t *testing.T) {
	ensureDispatch()
	var a, b [32]byte
	for i := range a {
		a[i] = byte(i * 3)
		b[i] = byte(i * 5)
	}
	want := diffCodesPortable64(&a, &b)
	got := activeBackend.fn(&a, &b)
	if got != want {
		t.Fatalf("active backend %s disagrees with portable64: got %d want %d", activeBackend.name, got, want)
	}
}
