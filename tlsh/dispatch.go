package tlsh

import (
	"os"
	"sync"
)

// BackendName identifies a code-distance backend by the instruction set its
// lane width was chosen to mirror.
type BackendName string

const (
	BackendLUT     BackendName = "lut"
	BackendPortable BackendName = "portable64"
	BackendSSE2    BackendName = "sse2"
	BackendAVX2    BackendName = "avx2"
	BackendNEON    BackendName = "neon"
)

type backend struct {
	name BackendName
	fn   CodeDiffFunc
}

var (
	dispatchOnce  sync.Once
	activeBackend = backend{name: BackendLUT, fn: diffCodesLUT}

	// candidateBackends is populated by the architecture-specific init()
	// functions in dispatch_amd64.go / dispatch_arm64.go with every backend
	// whose CPU feature was detected present, in descending preference
	// order. On architectures with no such file, it stays empty and
	// ensureDispatch leaves the LUT backend active.
	candidateBackends []backend
)

// DiffMode reports which code-distance backend is currently active. It
// forces dispatch resolution if that has not happened yet.
func DiffMode() BackendName {
	ensureDispatch()
	return activeBackend.name
}

// ensureDispatch resolves the active backend exactly once, lazily, on
// first use. Using sync.Once here instead of relying on Go's cross-file
// init() ordering means dispatch resolution doesn't depend on how the
// compiler happens to order this package's init functions: every
// capability-detecting init() in this package is guaranteed to have run
// before any exported function executes, so by the time ensureDispatch
// fires, candidateBackends already holds whatever this architecture
// detected.
func ensureDispatch() {
	dispatchOnce.Do(func() {
		if os.Getenv("TLSH_FORCE_CPU") != "" {
			activeBackend = backend{name: BackendPortable, fn: diffCodesPortable64}
			return
		}

		for _, cand := range candidateBackends {
			if envDisables(cand.name) {
				continue
			}
			activeBackend = cand
			return
		}
	})
}

func envDisables(name BackendName) bool {
	switch name {
	case BackendAVX2:
		return os.Getenv("TLSH_DISABLE_AVX") != ""
	case BackendSSE2:
		return os.Getenv("TLSH_DISABLE_SSE") != ""
	case BackendNEON:
		return os.Getenv("TLSH_DISABLE_NEON") != ""
	default:
		return false
	}
}
