//go:build arm64

package tlsh

import "golang.org/x/sys/cpu"

func init() {
	if cpu.ARM64.HasASIMD {
		candidateBackends = append(candidateBackends, backend{name: BackendNEON, fn: diffCodesNEON})
	}
}
