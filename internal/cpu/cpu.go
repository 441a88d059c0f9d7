// Package cpu detects the SIMD extensions that decide buffer alignment and
// kernel choice.
//
// Detection runs once and is cached. Tests can substitute a feature set with
// SetForcedFeatures.
package cpu

import (
	"strings"
	"sync"
	"sync/atomic"
)

// Features describes the SIMD capabilities of the host.
type Features struct {
	HasSSE2   bool
	HasAVX    bool
	HasAVX2   bool
	HasAVX512 bool
	HasNEON   bool

	// ForceGeneric treats the host as having no SIMD support.
	ForceGeneric bool

	Architecture string // runtime.GOARCH
}

// String lists the architecture and the detected extensions, e.g.
// "amd64 sse2 avx avx2".
func (f Features) String() string {
	parts := []string{f.Architecture}
	if f.ForceGeneric {
		return strings.Join(append(parts, "generic"), " ")
	}
	for _, ext := range []struct {
		ok   bool
		name string
	}{
		{f.HasSSE2, "sse2"},
		{f.HasAVX, "avx"},
		{f.HasAVX2, "avx2"},
		{f.HasAVX512, "avx512"},
		{f.HasNEON, "neon"},
	} {
		if ext.ok {
			parts = append(parts, ext.name)
		}
	}
	return strings.Join(parts, " ")
}

var (
	detectOnce sync.Once
	detected   Features
	forced     atomic.Pointer[Features]
)

// DetectFeatures returns the host features, or the forced set if one is
// installed.
func DetectFeatures() Features {
	if f := forced.Load(); f != nil {
		return *f
	}
	detectOnce.Do(func() {
		detected = detectHost()
	})
	return detected
}

// SetForcedFeatures overrides detection until ResetDetection is called.
func SetForcedFeatures(f Features) {
	forced.Store(&f)
}

// ResetDetection removes a forced feature set.
func ResetDetection() {
	forced.Store(nil)
}
