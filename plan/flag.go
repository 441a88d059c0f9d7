package plan

import "strings"

// Flag controls planning. The numeric values match FFTW's planner flags so
// they pass through to the native library unchanged.
type Flag uint32

// Planning strategies. Measure is the zero value and the default.
const (
	// Measure times candidate algorithms at plan time: slower to build,
	// faster to execute repeatedly.
	Measure Flag = 0
	// Exhaustive searches the widest set of candidates.
	Exhaustive Flag = 1 << 3
	// Patient searches more candidates than Measure.
	Patient Flag = 1 << 5
	// Estimate picks an algorithm heuristically without timing anything.
	Estimate Flag = 1 << 6
)

// Planner modifiers. They are passed to FFTW unchanged; the pure Go backend
// ignores them.
const (
	// DestroyInput lets an out-of-place transform overwrite its input.
	DestroyInput Flag = 1 << 0
	// Unaligned plans for arrays that may not share the alignment of the
	// planning buffers, at the cost of SIMD paths.
	Unaligned Flag = 1 << 1
	// ConserveMemory prefers algorithms with smaller scratch space.
	ConserveMemory Flag = 1 << 2
	// PreserveInput forbids overwriting the input. FFTW cannot honour it for
	// multi-dimensional complex-to-real transforms and fails to plan instead.
	PreserveInput Flag = 1 << 4
)

// Strategy is the effective planning strategy of a flag set.
type Strategy int

// Strategies in increasing order of planning effort.
const (
	StrategyEstimate Strategy = iota
	StrategyMeasure
	StrategyPatient
	StrategyExhaustive
)

// String returns the strategy name.
func (s Strategy) String() string {
	switch s {
	case StrategyEstimate:
		return "estimate"
	case StrategyMeasure:
		return "measure"
	case StrategyPatient:
		return "patient"
	case StrategyExhaustive:
		return "exhaustive"
	default:
		return "unknown"
	}
}

// Strategy resolves the planning strategy. When several strategy bits are
// set the most thorough one wins, as in FFTW.
func (f Flag) Strategy() Strategy {
	switch {
	case f.Has(Exhaustive):
		return StrategyExhaustive
	case f.Has(Patient):
		return StrategyPatient
	case f.Has(Estimate):
		return StrategyEstimate
	default:
		return StrategyMeasure
	}
}

// Has reports whether every bit of m is set in f.
func (f Flag) Has(m Flag) bool {
	return f&m == m
}

var modifierNames = []struct {
	flag Flag
	name string
}{
	{DestroyInput, "destroy-input"},
	{Unaligned, "unaligned"},
	{ConserveMemory, "conserve-memory"},
	{PreserveInput, "preserve-input"},
}

// String renders the flag set as "strategy|modifier|...".
func (f Flag) String() string {
	var sb strings.Builder
	sb.WriteString(f.Strategy().String())
	for _, m := range modifierNames {
		if f.Has(m.flag) {
			sb.WriteByte('|')
			sb.WriteString(m.name)
		}
	}
	return sb.String()
}
