//go:build amd64

package tlsh

import "golang.org/x/sys/cpu"

func init() {
	if cpu.X86.HasAVX2 {
		candidateBackends = append(candidateBackends, backend{name: BackendAVX2, fn: diffCodesAVX2})
	}
	if cpu.X86.HasSSE2 {
		candidateBackends = append(candidateBackends, backend{name: BackendSSE2, fn: diffCodesSSE2})
	}
}
