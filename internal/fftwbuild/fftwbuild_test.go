package fftwbuild

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cwbudde/algo-fftw/plan"
)

func TestTargetTriple(t *testing.T) {
	tests := []struct {
		goos, goarch, goarm string
		want                string
	}{
		{"linux", "amd64", "", "x86_64-linux-gnu"},
		{"linux", "arm", "7", "arm-linux-gnueabihf"},
		{"linux", "arm", "", "arm-linux-gnueabihf"},
		{"linux", "arm", "6", "arm-linux-gnueabi"},
		{"linux", "arm64", "7", "aarch64-linux-gnu"},
		{"windows", "amd64", "", "x86_64-w64-mingw32"},
		{"darwin", "arm64", "", "aarch64-apple-darwin"},
	}
	for _, tt := range tests {
		got, err := TargetTriple(tt.goos, tt.goarch, tt.goarm)
		require.NoError(t, err, "%s/%s", tt.goos, tt.goarch)
		assert.Equal(t, tt.want, got)
	}
}

func TestTargetTripleUnsupported(t *testing.T) {
	for _, tgt := range [][3]string{{"plan9", "amd64", ""}, {"linux", "arm", "5"}, {"js", "wasm", ""}} {
		_, err := TargetTriple(tgt[0], tgt[1], tgt[2])
		require.ErrorIs(t, err, ErrUnsupportedTarget)
	}
}

func TestConfigureArgs(t *testing.T) {
	args := ConfigureArgs("/opt/fftw", plan.Double, "")
	assert.Contains(t, args, "--with-pic")
	assert.Contains(t, args, "--enable-static")
	assert.Contains(t, args, "--disable-doc")
	assert.Contains(t, args, "--prefix=/opt/fftw")
	assert.NotContains(t, args, "--enable-single")
	for _, a := range args {
		assert.False(t, strings.HasPrefix(a, "--host="), "native build has %s", a)
	}

	args = ConfigureArgs("/opt/fftw", plan.Single, "arm-linux-gnueabihf")
	assert.Contains(t, args, "--enable-single")
	assert.Contains(t, args, "--host=arm-linux-gnueabihf")
}

func TestVerifyMD5(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data")
	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	require.NoError(t, VerifyMD5(path, "5d41402abc4b2a76b9719d911017c592"))
	require.NoError(t, VerifyMD5(path, "5D41402ABC4B2A76B9719D911017C592"))

	err := VerifyMD5(path, DefaultSource.MD5)
	require.ErrorIs(t, err, ErrChecksumMismatch)
}

func TestExtract(t *testing.T) {
	data, _ := makeTarGz(t, fftwTree("fftw-x"))
	dir := t.TempDir()
	archive := filepath.Join(dir, "a.tar.gz")
	require.NoError(t, os.WriteFile(archive, data, 0o644))

	dest := filepath.Join(dir, "out")
	require.NoError(t, Extract(archive, dest))

	body, err := os.ReadFile(filepath.Join(dest, "fftw-x", "api", "fftw3.h"))
	require.NoError(t, err)
	assert.Equal(t, "/* header */\n", string(body))
}

func TestExtractRejectsTraversal(t *testing.T) {
	data, _ := makeTarGz(t, []tarEntry{{name: "../evil", body: "x"}})
	dir := t.TempDir()
	archive := filepath.Join(dir, "a.tar.gz")
	require.NoError(t, os.WriteFile(archive, data, 0o644))

	err := Extract(archive, filepath.Join(dir, "out"))
	require.ErrorIs(t, err, ErrUnsafePath)
	_, statErr := os.Stat(filepath.Join(dir, "evil"))
	assert.True(t, os.IsNotExist(statErr))
}

func TestExtractDetectsCompression(t *testing.T) {
	tarball := makeTar(t, fftwTree("fftw-z"))
	for name, data := range map[string][]byte{
		"zstd": zstdCompress(t, tarball),
		"lz4":  lz4Compress(t, tarball),
	} {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			archive := filepath.Join(dir, "a.tar."+name)
			require.NoError(t, os.WriteFile(archive, data, 0o644))

			dest := filepath.Join(dir, "out")
			require.NoError(t, Extract(archive, dest))
			assert.FileExists(t, filepath.Join(dest, "fftw-z", "configure"))
		})
	}
}

func TestExtractRejectsGarbage(t *testing.T) {
	archive := filepath.Join(t.TempDir(), "a.tar.gz")
	require.NoError(t, os.WriteFile(archive, []byte("not gzip"), 0o644))
	require.Error(t, Extract(archive, t.TempDir()))
}

func TestHTTPFetcher(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/fftw.tar.gz" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte("payload"))
	}))
	defer srv.Close()

	dst := filepath.Join(t.TempDir(), "fftw.tar.gz")
	f := HTTPFetcher{Client: srv.Client()}
	require.NoError(t, f.Fetch(context.Background(), srv.URL+"/fftw.tar.gz", dst))

	body, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(body))

	missing := filepath.Join(t.TempDir(), "missing")
	err = f.Fetch(context.Background(), srv.URL+"/nope", missing)
	require.Error(t, err)
	_, statErr := os.Stat(missing)
	assert.True(t, os.IsNotExist(statErr), "failed download left a file")
}

func TestFetcherFor(t *testing.T) {
	f, err := FetcherFor("https://example.org/fftw.tar.gz", 4096)
	require.NoError(t, err)
	assert.Equal(t, HTTPFetcher{BytesPerSec: 4096}, f)

	t.Setenv("FFTW_S3_ENDPOINT", "localhost:9000")
	f, err = FetcherFor("s3://mirror/fftw/fftw-3.3.6-pl1.tar.gz", 0)
	require.NoError(t, err)
	assert.IsType(t, &S3Fetcher{}, f)

	_, err = FetcherFor("ftp://example.org/fftw.tar.gz", 0)
	require.Error(t, err)
}

func TestParseS3URL(t *testing.T) {
	bucket, key, err := parseS3URL("s3://mirror/fftw/fftw.tar.gz")
	require.NoError(t, err)
	assert.Equal(t, "mirror", bucket)
	assert.Equal(t, "fftw/fftw.tar.gz", key)

	_, _, err = parseS3URL("s3://mirror/")
	require.Error(t, err)
}

func TestThrottledDownload(t *testing.T) {
	payload := strings.Repeat("fftw", 2048)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(payload))
	}))
	defer srv.Close()

	dst := filepath.Join(t.TempDir(), "out")
	f := HTTPFetcher{Client: srv.Client(), BytesPerSec: 1 << 20}
	require.NoError(t, f.Fetch(context.Background(), srv.URL, dst))

	body, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, payload, string(body))
}

func TestThrottleHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := throttle(ctx, strings.NewReader(strings.Repeat("x", 64)), 16)
	buf := make([]byte, 64)
	n, err := r.Read(buf)
	assert.LessOrEqual(t, n, 16)
	require.Error(t, err)
}

// fakeFetcher serves a fixed archive.
type fakeFetcher struct {
	data  []byte
	calls int
}

func (f *fakeFetcher) Fetch(_ context.Context, _, dst string) error {
	f.calls++
	return os.WriteFile(dst, f.data, 0o644)
}

// recordingRunner records commands and fails on the named step.
type recordingRunner struct {
	mu     sync.Mutex
	cmds   []Command
	failOn string
}

func (r *recordingRunner) Run(_ context.Context, c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cmds = append(r.cmds, c)
	if r.failOn != "" && strings.Contains(c.String(), r.failOn) {
		return ErrCommand
	}
	return nil
}

func testBuilder(t *testing.T, md5 string, fetch Fetcher, run Runner) *Builder {
	t.Helper()
	return &Builder{
		Source: Source{
			Name:    "fftw-test",
			URL:     "http://mirror.invalid/fftw-test.tar.gz",
			Archive: "fftw-test.tar.gz",
			MD5:     md5,
		},
		OutDir:  t.TempDir(),
		Jobs:    3,
		Fetcher: fetch,
		Runner:  run,
	}
}

func TestBuilderRun(t *testing.T) {
	data, sum := makeTarGz(t, fftwTree("fftw-test"))
	fetch := &fakeFetcher{data: data}
	run := &recordingRunner{}
	b := testBuilder(t, sum, fetch, run)

	require.NoError(t, b.Run(context.Background()))
	assert.Equal(t, 1, fetch.calls)
	require.Len(t, run.cmds, 6)

	var configures []Command
	for _, c := range run.cmds {
		if c.Name == "./configure" {
			configures = append(configures, c)
		}
		if c.Name == "make" && c.Args[0] != "install" {
			assert.Equal(t, []string{"-j3"}, c.Args)
		}
	}
	require.Len(t, configures, 2)

	var sawSingle bool
	for _, c := range configures {
		single := strings.Contains(c.String(), "--enable-single")
		sawSingle = sawSingle || single
		want := filepath.Join(b.OutDir, "double")
		if single {
			want = filepath.Join(b.OutDir, "single")
		}
		assert.Contains(t, c.Args, "--prefix="+want)
		assert.FileExists(t, filepath.Join(c.Dir, "configure"))
	}
	assert.True(t, sawSingle)
	assert.NotEqual(t, configures[0].Dir, configures[1].Dir, "precisions share a source tree")

	env, err := os.ReadFile(filepath.Join(b.OutDir, EnvFile))
	require.NoError(t, err)
	vars := parseEnvFile(t, string(env))
	assert.Equal(t, "-I"+filepath.Join(b.OutDir, "double", "include"), vars["CGO_CFLAGS"])
	assert.True(t, strings.HasSuffix(vars["CGO_LDFLAGS"], " -lfftw3 -lfftw3f -lm"))

	// A second run reuses the verified archive.
	require.NoError(t, b.Run(context.Background()))
	assert.Equal(t, 1, fetch.calls)
}

func TestBuilderChecksumMismatchStopsBeforeCompiling(t *testing.T) {
	data, _ := makeTarGz(t, fftwTree("fftw-test"))
	run := &recordingRunner{}
	b := testBuilder(t, DefaultSource.MD5, &fakeFetcher{data: data}, run)

	err := b.Run(context.Background())
	require.ErrorIs(t, err, ErrChecksumMismatch)
	assert.Empty(t, run.cmds)
	assert.NoFileExists(t, filepath.Join(b.OutDir, "fftw-test.tar.gz"))
	assert.NoFileExists(t, filepath.Join(b.OutDir, EnvFile))
}

func TestBuilderCommandFailure(t *testing.T) {
	data, sum := makeTarGz(t, fftwTree("fftw-test"))
	run := &recordingRunner{failOn: "install"}
	b := testBuilder(t, sum, &fakeFetcher{data: data}, run)

	err := b.Run(context.Background())
	require.ErrorIs(t, err, ErrCommand)
	assert.NoFileExists(t, filepath.Join(b.OutDir, EnvFile))
}

func TestBuilderUnsupportedTarget(t *testing.T) {
	fetch := &fakeFetcher{}
	b := testBuilder(t, "", fetch, &recordingRunner{})
	b.GOOS, b.GOARCH = "plan9", "386"

	err := b.Run(context.Background())
	require.ErrorIs(t, err, ErrUnsupportedTarget)
	assert.Zero(t, fetch.calls)
}

func TestBuilderRequiresOutDir(t *testing.T) {
	b := &Builder{Fetcher: &fakeFetcher{}, Runner: &recordingRunner{}}
	require.Error(t, b.Run(context.Background()))
}

func TestExecRunnerWrapsFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses a POSIX shell")
	}
	err := ExecRunner{}.Run(context.Background(), Command{Dir: t.TempDir(), Name: "sh", Args: []string{"-c", "exit 3"}})
	require.ErrorIs(t, err, ErrCommand)

	var exitErr interface{ ExitCode() int }
	require.True(t, errors.As(err, &exitErr))
	assert.Equal(t, 3, exitErr.ExitCode())
}

func TestCGOEnvSurvivesShellSourcing(t *testing.T) {
	out := filepath.Join(t.TempDir(), "it's a dir")
	b := &Builder{OutDir: out}

	vars := parseEnvFile(t, b.cgoEnv())
	require.Len(t, vars, 2)

	assert.Equal(t, "-I"+filepath.Join(out, "double", "include"), vars["CGO_CFLAGS"])
	want := "-L" + filepath.Join(out, "double", "lib") +
		" -L" + filepath.Join(out, "single", "lib") +
		" -lfftw3 -lfftw3f -lm"
	assert.Equal(t, want, vars["CGO_LDFLAGS"])
}

func TestShellQuote(t *testing.T) {
	cases := map[string]string{
		"":          "''",
		"-lm":       "'-lm'",
		"a b":       "'a b'",
		"it's":      `'it'\''s'`,
		"$HOME `x`": "'$HOME `x`'",
	}
	for in, want := range cases {
		assert.Equal(t, want, shellQuote(in), "input %q", in)
	}
}

func TestSourceFromURL(t *testing.T) {
	tests := []struct {
		url, name   string
		wantArchive string
		wantName    string
	}{
		{"https://mirror.example/pub/fftw-3.3.10.tar.gz", "", "fftw-3.3.10.tar.gz", "fftw-3.3.10"},
		{"s3://mirror/fftw/fftw-3.3.10.tar.zst", "", "fftw-3.3.10.tar.zst", "fftw-3.3.10"},
		{"http://example.org/fftw.tgz", "", "fftw.tgz", "fftw"},
		{"https://example.org/dl/latest?id=7", "fftw-3.3.10", "latest", "fftw-3.3.10"},
	}
	for _, tt := range tests {
		src, err := SourceFromURL(tt.url, "abc", tt.name)
		require.NoError(t, err, tt.url)
		assert.Equal(t, tt.url, src.URL)
		assert.Equal(t, tt.wantArchive, src.Archive, tt.url)
		assert.Equal(t, tt.wantName, src.Name, tt.url)
		assert.Equal(t, "abc", src.MD5)
	}

	for _, bad := range []string{"https://example.org/", "https://example.org", "://nope"} {
		_, err := SourceFromURL(bad, "abc", "")
		assert.ErrorIs(t, err, ErrInvalidSource, bad)
	}
	_, err := SourceFromURL("https://example.org/x.tar.gz", "abc", "../x")
	assert.ErrorIs(t, err, ErrInvalidSource)
}

func TestBuilderRunWithURLDerivedSource(t *testing.T) {
	data, sum := makeTarGz(t, fftwTree("fftw-3.3.10"))
	run := &recordingRunner{}
	b := testBuilder(t, sum, &fakeFetcher{data: data}, run)

	src, err := SourceFromURL("https://mirror.example/fftw-3.3.10.tar.gz", sum, "")
	require.NoError(t, err)
	b.Source = src

	require.NoError(t, b.Run(context.Background()))
	assert.FileExists(t, filepath.Join(b.OutDir, "fftw-3.3.10.tar.gz"))
	for _, c := range run.cmds {
		if c.Name == "./configure" {
			assert.Equal(t, "fftw-3.3.10", filepath.Base(c.Dir))
		}
	}
}
