// Command planinfo builds transform pairs and prints the kernel each backend
// chose, the buffer alignment and the measured execution time.
//
// Usage:
//
//	planinfo [flags] [size ...]
//
// Sizes are comma-free shapes such as 1024 or 64x64 or 8x8x8. Without
// arguments a default set of 1-D sizes is used.
//
// Examples:
//
//	planinfo 1024 1000 64x64
//	planinfo -flags patient -precision single 4096
//	planinfo -backend go -iters 1000 256x256
//	planinfo -list
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	fftw "github.com/cwbudde/algo-fftw"
	"github.com/cwbudde/algo-fftw/aligned"
	"github.com/cwbudde/algo-fftw/internal/cpu"
	"github.com/cwbudde/algo-fftw/plan"
)

var strategies = map[string]plan.Flag{
	"estimate":   plan.Estimate,
	"measure":    plan.Measure,
	"patient":    plan.Patient,
	"exhaustive": plan.Exhaustive,
}

var defaultSizes = []string{"64", "256", "1000", "1024", "4096"}

func main() {
	strategy := flag.String("flags", "measure", "planning strategy: estimate, measure, patient or exhaustive")
	precision := flag.String("precision", "double", "double or single")
	backend := flag.String("backend", "", "backend name (default: highest priority)")
	iters := flag.Int("iters", 200, "timed forward+backward iterations per shape")
	list := flag.Bool("list", false, "list registered backends and host features")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: planinfo [flags] [size ...]\n\n")
		fmt.Fprintf(os.Stderr, "Builds transform pairs and reports the chosen kernels and timings.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  planinfo 1024 64x64\n")
		fmt.Fprintf(os.Stderr, "  planinfo -flags patient -precision single 4096\n")
		fmt.Fprintf(os.Stderr, "  planinfo -list\n")
	}
	flag.Parse()

	if *list {
		printList()
		return
	}

	flags, ok := strategies[strings.ToLower(*strategy)]
	if !ok {
		fmt.Fprintf(os.Stderr, "error: unknown strategy %q\n", *strategy)
		os.Exit(1)
	}

	args := flag.Args()
	if len(args) == 0 {
		args = defaultSizes
	}
	shapes := resolveShapes(args)
	if len(shapes) == 0 {
		fmt.Fprintf(os.Stderr, "error: no valid shapes\n")
		os.Exit(1)
	}

	var opts []fftw.Option
	if *backend != "" {
		opts = append(opts, fftw.WithBackendName(*backend))
	}

	printAnalysis(shapes, flags, *precision == "single", max(*iters, 1), opts)
}

func printList() {
	entries := plan.Global.ListEntries()
	sort.Slice(entries, func(i, j int) bool { return entries[i].Priority > entries[j].Priority })
	for _, e := range entries {
		fmt.Printf("%-8s priority=%d allocator=%s\n", e.Name, e.Priority, e.Backend.Allocator().Name())
	}

	fmt.Printf("\nhost: %s (alignment %d bytes)\n", cpu.DetectFeatures(), aligned.SIMDAlignment())
}

// resolveShapes parses "N", "AxB" and "AxBxC" arguments.
func resolveShapes(args []string) [][]int {
	var result [][]int
	for _, arg := range args {
		parts := strings.Split(strings.ToLower(strings.TrimSpace(arg)), "x")
		if len(parts) > plan.MaxRank {
			fmt.Fprintf(os.Stderr, "warning: %q has more than %d dimensions\n", arg, plan.MaxRank)
			continue
		}
		shape := make([]int, 0, len(parts))
		for _, p := range parts {
			n, err := strconv.Atoi(p)
			if err != nil || n <= 0 {
				shape = nil
				break
			}
			shape = append(shape, n)
		}
		if shape == nil {
			fmt.Fprintf(os.Stderr, "warning: invalid shape %q\n", arg)
			continue
		}
		result = append(result, shape)
	}
	return result
}

func settingsFor(shape []int, flags plan.Flag) fftw.R2CSettings {
	switch len(shape) {
	case 1:
		return fftw.NewR2C1D(shape[0]).WithFlags(flags)
	case 2:
		return fftw.NewR2C2D(shape[0], shape[1]).WithFlags(flags)
	default:
		return fftw.NewR2C3D(shape[0], shape[1], shape[2]).WithFlags(flags)
	}
}

type result struct {
	backend string
	kernel  string
	align   uintptr
	plan    time.Duration
	perOp   time.Duration
}

func measure[F float32 | float64, C complex64 | complex128](s fftw.R2CSettings, iters int, opts []fftw.Option) (result, error) {
	start := time.Now()
	pair, err := fftw.BuildR2C[F, C](s, opts...)
	if err != nil {
		return result{}, err
	}
	defer pair.Close()
	planTime := time.Since(start)

	field := pair.Field()
	for i := range field {
		field[i] = F(i%7) - 3
	}

	start = time.Now()
	for range iters {
		pair.Forward()
		pair.Backward()
		pair.Normalize()
	}

	return result{
		backend: pair.Backend(),
		kernel:  pair.Describe(),
		align:   aligned.Alignment[F](),
		plan:    planTime,
		perOp:   time.Since(start) / time.Duration(iters),
	}, nil
}

func printAnalysis(shapes [][]int, flags plan.Flag, single bool, iters int, opts []fftw.Option) {
	tw := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Shape\tFlags\tBackend\tAlign\tPlan\tRound trip\tKernel\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}
	if _, err := fmt.Fprintf(tw, "-----\t-----\t-------\t-----\t----\t----------\t------\n"); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output header: %v\n", err)
		return
	}

	for _, shape := range shapes {
		s := settingsFor(shape, flags)

		var (
			r   result
			err error
		)
		if single {
			r, err = measure[float32, complex64](s, iters, opts)
		} else {
			r, err = measure[float64, complex128](s, iters, opts)
		}
		if err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: %v: %v\n", shape, err)
			continue
		}

		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%s\t%s\t%s\n",
			formatShape(shape),
			flags,
			r.backend,
			r.align,
			r.plan.Round(time.Microsecond),
			r.perOp,
			r.kernel,
		); err != nil {
			_, _ = fmt.Fprintf(os.Stderr, "error: failed to write output row: %v\n", err)
			return
		}
	}
	if err := tw.Flush(); err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: failed to flush output: %v\n", err)
	}
}

func formatShape(shape []int) string {
	parts := make([]string, len(shape))
	for i, d := range shape {
		parts[i] = strconv.Itoa(d)
	}
	return strings.Join(parts, "x")
}
