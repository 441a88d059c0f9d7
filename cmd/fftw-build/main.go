// Command fftw-build downloads, verifies and compiles static FFTW 3 libraries
// for the fftw build tag.
//
// Usage:
//
//	fftw-build [flags]
//
// The double and single precision libraries are installed under -out, and
// -out/cgo.env receives the CGO_CFLAGS and CGO_LDFLAGS to build with:
//
//	fftw-build -out third_party/fftw
//	set -a; . third_party/fftw/cgo.env; set +a
//	go test -tags fftw ./...
//
// A mirror or another release is selected with -url. The stored archive name
// follows the URL and the source directory defaults to the archive name
// without its extension; -name overrides it:
//
//	fftw-build -url s3://mirror/fftw-3.3.10.tar.gz -md5 <digest>
//	fftw-build -url https://example.org/dl?id=7 -name fftw-3.3.10 -md5 <digest>
//
// Cross builds take GOOS, GOARCH and GOARM from the environment or flags:
//
//	GOOS=linux GOARCH=arm GOARM=7 fftw-build -out build/armv7
//	fftw-build -goos windows -goarch amd64 -out build/win64
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"runtime"

	"github.com/cwbudde/algo-fftw/internal/fftwbuild"
)

func main() {
	src := fftwbuild.DefaultSource

	out := flag.String("out", "fftw", "output directory for sources, prefixes and cgo.env")
	url := flag.String("url", src.URL, "source archive URL (http, https or s3://bucket/key)")
	sum := flag.String("md5", src.MD5, "expected MD5 digest of the archive")
	name := flag.String("name", "", "top-level directory inside the archive (default: archive name without extension)")
	jobs := flag.Int("jobs", runtime.NumCPU(), "parallel make jobs per precision")
	goos := flag.String("goos", envOr("GOOS", runtime.GOOS), "target operating system")
	goarch := flag.String("goarch", envOr("GOARCH", runtime.GOARCH), "target architecture")
	goarm := flag.String("goarm", os.Getenv("GOARM"), "target ARM version (arm only)")
	limit := flag.Int("limit", 0, "download rate limit in bytes per second (0 = unlimited)")
	verbose := flag.Bool("v", false, "debug logging and compiler output")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fftw-build [flags]\n\n")
		fmt.Fprintf(os.Stderr, "Builds static double and single precision FFTW libraries.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	if *url != src.URL || *name != "" {
		s, err := fftwbuild.SourceFromURL(*url, *sum, *name)
		if err != nil {
			logger.Error("bad source", slog.Any("error", err))
			os.Exit(2)
		}
		src = s
	}
	src.MD5 = *sum

	runner := fftwbuild.ExecRunner{}
	if *verbose {
		runner.Stdout = os.Stderr
		runner.Stderr = os.Stderr
	}

	b := &fftwbuild.Builder{
		Source: src,
		OutDir: *out,
		Jobs:   *jobs,
		GOOS:   *goos,
		GOARCH: *goarch,
		GOARM:  *goarm,

		BytesPerSec: *limit,
		Runner:      runner,
		Logger:      logger,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := b.Run(ctx); err != nil {
		logger.Error("build failed", slog.Any("error", err))
		stop()
		os.Exit(1)
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
