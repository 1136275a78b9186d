package tlsh

import (
	"errors"
	"math/rand"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile("testdata/" + name)
	require.NoError(t, err)
	return data
}

func TestBuilderRejectsShortInput(t *testing.T) {
	b := NewBuilder()
	b.Update([]byte("too short"))
	b.Finalize()
	_, err := b.GetHash()
	require.ErrorIs(t, err, ErrLength)
}

func TestBuilderRejectsLowVarietyInput(t *testing.T) {
	b := NewBuilder()
	b.Update(loadFixture(t, "y.tlsh.txt"))
	b.Finalize()
	_, err := b.GetHash()
	require.ErrorIs(t, err, ErrVariety)
}

func TestBuilderProducesHashForVariedInput(t *testing.T) {
	b := NewBuilder()
	b.Update(loadFixture(t, "random.txt"))
	b.Finalize()
	hash, err := b.GetHash()
	require.NoError(t, err)
	require.NotEqual(t, byte(0), hash.Lvalue)
}

func TestBuilderUpdateIsChunkAssociative(t *testing.T) {
	data := loadFixture(t, "random.txt")

	whole := NewBuilder()
	whole.Update(data)
	whole.Finalize()
	wholeHash, err := whole.GetHash()
	require.NoError(t, err)

	for _, chunkSize := range []int{1, 3, 7, 17, 64} {
		chunked := NewBuilder()
		for i := 0; i < len(data); i += chunkSize {
			end := i + chunkSize
			if end > len(data) {
				end = len(data)
			}
			chunked.Update(data[i:end])
		}
		chunked.Finalize()
		chunkedHash, err := chunked.GetHash()
		require.NoErrorf(t, err, "chunk size %d", chunkSize)
		require.Equalf(t, wholeHash, chunkedHash, "chunk size %d produced a different hash", chunkSize)
	}
}

func TestBuilderResetAllowsReuse(t *testing.T) {
	data := loadFixture(t, "random.txt")

	b := NewBuilder()
	b.Update(data)
	b.Finalize()
	first, err := b.GetHash()
	require.NoError(t, err)

	b.Reset()
	b.Update(data)
	b.Finalize()
	second, err := b.GetHash()
	require.NoError(t, err)

	require.Equal(t, first, second)
}

func TestBuilderMultiColorIndependence(t *testing.T) {
	data := loadFixture(t, "random.txt")

	b := NewBuilder(0, 1, 2)
	b.Update(data)
	b.Finalize()
	results := b.GetHashes()
	require.Len(t, results, 3)

	single := NewBuilder(1)
	single.Update(data)
	single.Finalize()
	wantColor1, err := single.GetHash()
	require.NoError(t, err)

	var found bool
	for _, r := range results {
		if r.Hash.Color == 1 {
			found = true
			require.NoError(t, r.Err)
			require.Equal(t, wantColor1, r.Hash.TLSH)
		}
	}
	require.True(t, found, "color 1 result missing from GetHashes")
}

func TestBuilderGetHashPanicsForMultiColor(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected GetHash to panic for a multi-color builder")
		}
	}()
	b := NewBuilder(0, 1)
	b.Update(loadFixture(t, "random.txt"))
	b.Finalize()
	_, _ = b.GetHash()
}

func TestBuilderGetHashesPanicsBeforeFinalize(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected GetHashes to panic before Finalize")
		}
	}()
	b := NewBuilder()
	b.Update(loadFixture(t, "random.txt"))
	_ = b.GetHashes()
}

func TestBuilderSimilarInputsAreClose(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	base := make([]byte, 2048)
	rng.Read(base)

	modified := append([]byte(nil), base...)
	for i := 0; i < 20; i++ {
		modified[rng.Intn(len(modified))] = byte(rng.Intn(256))
	}

	unrelated := make([]byte, 2048)
	rng.Read(unrelated)

	baseHash := hashOf(t, base)
	modifiedHash := hashOf(t, modified)
	unrelatedHash := hashOf(t, unrelated)

	close := Diff(baseHash, modifiedHash, true)
	far := Diff(baseHash, unrelatedHash, true)
	require.Lessf(t, close, far, "a lightly modified buffer should be closer than an unrelated one")
}

func hashOf(t *testing.T, data []byte) TLSH {
	t.Helper()
	b := NewBuilder()
	b.Update(data)
	b.Finalize()
	h, err := b.GetHash()
	require.NoError(t, err)
	return h
}

func TestRingIndexWrapsNegative(t *testing.T) {
	if got := ringIndex(-1); got != windowSize-1 {
		t.Fatalf("ringIndex(-1) = %d, want %d", got, windowSize-1)
	}
	if got := ringIndex(windowSize); got != 0 {
		t.Fatalf("ringIndex(windowSize) = %d, want 0", got)
	}
}

func TestErrorIsDistinguishesKinds(t *testing.T) {
	if errors.Is(ErrLength, ErrVariety) {
		t.Fatalf("ErrLength must not match ErrVariety")
	}
	wrapped := errors.Join(ErrVariety)
	if !errors.Is(wrapped, ErrVariety) {
		t.Fatalf("wrapped ErrVariety should still match via errors.Is")
	}
}
