package fftwbuild

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/cwbudde/algo-fftw/plan"
)

// EnvFile is the name of the generated cgo environment file.
const EnvFile = "cgo.env"

// Builder compiles static FFTW libraries into OutDir.
//
// Layout after Run:
//
//	OutDir/<archive>           downloaded tarball
//	OutDir/src-double/<name>/  source tree for the double build
//	OutDir/src-single/<name>/  source tree for the single build
//	OutDir/double/{include,lib}
//	OutDir/single/{include,lib}
//	OutDir/cgo.env
type Builder struct {
	Source Source
	OutDir string
	// Jobs is passed to make -j. Zero means runtime.NumCPU.
	Jobs int

	// GOOS, GOARCH and GOARM select the target. Empty GOOS/GOARCH mean the
	// host platform.
	GOOS, GOARCH, GOARM string

	// BytesPerSec limits the download rate of the default fetcher.
	BytesPerSec int
	// Fetcher defaults to FetcherFor(Source.URL, BytesPerSec).
	Fetcher Fetcher
	// Runner defaults to an ExecRunner writing to the logger's sink.
	Runner Runner
	Logger *slog.Logger
}

// Run fetches and verifies the archive, then configures, compiles and
// installs the double and single precision libraries concurrently and writes
// cgo.env. The first failing step cancels the other precision.
func (b *Builder) Run(ctx context.Context) error {
	if err := b.defaults(); err != nil {
		return err
	}
	log := b.Logger

	host, err := b.hostTriple()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(b.OutDir, 0o755); err != nil {
		return fmt.Errorf("fftwbuild: %w", err)
	}

	archive, err := b.fetch(ctx)
	if err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, prec := range []plan.Precision{plan.Double, plan.Single} {
		g.Go(func() error {
			return b.compile(gctx, archive, prec, host)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	envPath := filepath.Join(b.OutDir, EnvFile)
	if err := os.WriteFile(envPath, []byte(b.cgoEnv()), 0o644); err != nil {
		return fmt.Errorf("fftwbuild: %w", err)
	}
	log.Info("wrote cgo environment", slog.String("path", envPath))
	return nil
}

func (b *Builder) defaults() error {
	if b.Source == (Source{}) {
		b.Source = DefaultSource
	}
	if b.OutDir == "" {
		return errors.New("fftwbuild: output directory not set")
	}
	abs, err := filepath.Abs(b.OutDir)
	if err != nil {
		return fmt.Errorf("fftwbuild: %w", err)
	}
	b.OutDir = abs

	if b.Jobs <= 0 {
		b.Jobs = runtime.NumCPU()
	}
	if b.GOOS == "" {
		b.GOOS = runtime.GOOS
	}
	if b.GOARCH == "" {
		b.GOARCH = runtime.GOARCH
	}
	if b.Logger == nil {
		b.Logger = slog.Default()
	}
	if b.Fetcher == nil {
		f, err := FetcherFor(b.Source.URL, b.BytesPerSec)
		if err != nil {
			return err
		}
		b.Fetcher = f
	}
	if b.Runner == nil {
		b.Runner = ExecRunner{}
	}
	return nil
}

// hostTriple returns "" for a native build.
func (b *Builder) hostTriple() (string, error) {
	if b.GOOS == runtime.GOOS && b.GOARCH == runtime.GOARCH && (b.GOARCH != "arm" || b.GOARM == "") {
		return "", nil
	}
	return TargetTriple(b.GOOS, b.GOARCH, b.GOARM)
}

// fetch downloads the archive unless it is already present, then verifies it.
// An archive with the wrong digest is removed so the next run downloads it
// again.
func (b *Builder) fetch(ctx context.Context) (string, error) {
	log := b.Logger
	archive := filepath.Join(b.OutDir, b.Source.Archive)

	if _, err := os.Stat(archive); errors.Is(err, fs.ErrNotExist) {
		log.Info("downloading source", slog.String("url", b.Source.URL))
		start := time.Now()
		if err := b.Fetcher.Fetch(ctx, b.Source.URL, archive); err != nil {
			return "", err
		}
		log.Debug("download complete", slog.Duration("elapsed", time.Since(start)))
	} else if err != nil {
		return "", fmt.Errorf("fftwbuild: %w", err)
	} else {
		log.Info("using cached source", slog.String("path", archive))
	}

	if err := VerifyMD5(archive, b.Source.MD5); err != nil {
		_ = os.Remove(archive)
		return "", err
	}
	log.Info("checksum verified", slog.String("md5", b.Source.MD5))
	return archive, nil
}

func (b *Builder) compile(ctx context.Context, archive string, prec plan.Precision, host string) error {
	log := b.Logger.With(slog.String("precision", prec.String()))

	srcRoot := filepath.Join(b.OutDir, "src-"+prec.String())
	if err := os.RemoveAll(srcRoot); err != nil {
		return fmt.Errorf("fftwbuild: %w", err)
	}
	log.Info("extracting", slog.String("dir", srcRoot))
	if err := Extract(archive, srcRoot); err != nil {
		return err
	}

	tree := filepath.Join(srcRoot, b.Source.Name)
	prefix := b.prefix(prec)
	steps := []Command{
		{Dir: tree, Name: "./configure", Args: ConfigureArgs(prefix, prec, host)},
		{Dir: tree, Name: "make", Args: []string{"-j" + strconv.Itoa(b.Jobs)}},
		{Dir: tree, Name: "make", Args: []string{"install"}},
	}
	for _, step := range steps {
		log.Info("running", slog.String("cmd", step.String()))
		start := time.Now()
		if err := b.Runner.Run(ctx, step); err != nil {
			return err
		}
		log.Debug("step finished", slog.String("cmd", step.Name), slog.Duration("elapsed", time.Since(start)))
	}
	return nil
}

func (b *Builder) prefix(prec plan.Precision) string {
	return filepath.Join(b.OutDir, prec.String())
}

// cgoEnv renders the CGO_CFLAGS and CGO_LDFLAGS lines for both prefixes.
// Values are single-quoted so the file can be sourced by a POSIX shell:
//
//	set -a; . cgo.env; set +a
func (b *Builder) cgoEnv() string {
	double, single := b.prefix(plan.Double), b.prefix(plan.Single)

	var sb strings.Builder
	fmt.Fprintf(&sb, "CGO_CFLAGS=%s\n", shellQuote("-I"+filepath.Join(double, "include")))
	fmt.Fprintf(&sb, "CGO_LDFLAGS=%s\n", shellQuote(
		"-L"+filepath.Join(double, "lib")+" -L"+filepath.Join(single, "lib")+" -lfftw3 -lfftw3f -lm"))
	return sb.String()
}

// shellQuote wraps s in single quotes, closing and reopening the quote
// around each embedded single quote.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
