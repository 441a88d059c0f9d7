package cpu

import (
	"runtime"

	xcpu "golang.org/x/sys/cpu"
)

// detectHost reads the CPUID/HWCAP bits for the running architecture. The
// x/sys/cpu tables exist on every GOARCH and stay zero off their own.
func detectHost() Features {
	f := Features{Architecture: runtime.GOARCH}
	switch runtime.GOARCH {
	case "amd64", "386":
		f.HasSSE2 = xcpu.X86.HasSSE2
		f.HasAVX = xcpu.X86.HasAVX
		f.HasAVX2 = xcpu.X86.HasAVX2
		f.HasAVX512 = xcpu.X86.HasAVX512F
	case "arm64":
		f.HasNEON = xcpu.ARM64.HasASIMD
	}
	return f
}
