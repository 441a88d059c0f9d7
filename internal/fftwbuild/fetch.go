package fftwbuild

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"golang.org/x/time/rate"
)

// Fetcher downloads rawURL to the file dst.
type Fetcher interface {
	Fetch(ctx context.Context, rawURL, dst string) error
}

// FetcherFor returns a Fetcher for the scheme of rawURL: http and https use
// HTTPFetcher, s3 uses an S3Fetcher configured from the environment.
// bytesPerSec limits the download rate when positive.
func FetcherFor(rawURL string, bytesPerSec int) (Fetcher, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("fftwbuild: parse source url: %w", err)
	}
	switch u.Scheme {
	case "http", "https":
		return HTTPFetcher{BytesPerSec: bytesPerSec}, nil
	case "s3":
		f, err := NewS3FetcherFromEnv()
		if err != nil {
			return nil, err
		}
		f.BytesPerSec = bytesPerSec
		return f, nil
	default:
		return nil, fmt.Errorf("fftwbuild: unsupported url scheme %q", u.Scheme)
	}
}

// HTTPFetcher downloads over HTTP. A nil Client means http.DefaultClient.
type HTTPFetcher struct {
	Client *http.Client
	// BytesPerSec caps the download rate; zero means unlimited.
	BytesPerSec int
}

func (f HTTPFetcher) Fetch(ctx context.Context, rawURL, dst string) error {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return fmt.Errorf("fftwbuild: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("fftwbuild: download %s: %w", rawURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fftwbuild: download %s: %s", rawURL, resp.Status)
	}
	return writeAtomic(dst, throttle(ctx, resp.Body, f.BytesPerSec))
}

// S3Fetcher downloads s3://bucket/key URLs from an S3-compatible store.
type S3Fetcher struct {
	Client *minio.Client
	// BytesPerSec caps the download rate; zero means unlimited.
	BytesPerSec int
}

// NewS3FetcherFromEnv connects to FFTW_S3_ENDPOINT (default
// s3.amazonaws.com) with credentials from the standard AWS environment
// variables. FFTW_S3_INSECURE=1 disables TLS.
func NewS3FetcherFromEnv() (*S3Fetcher, error) {
	endpoint := os.Getenv("FFTW_S3_ENDPOINT")
	if endpoint == "" {
		endpoint = "s3.amazonaws.com"
	}
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewEnvAWS(),
		Secure: os.Getenv("FFTW_S3_INSECURE") != "1",
	})
	if err != nil {
		return nil, fmt.Errorf("fftwbuild: s3 client: %w", err)
	}
	return &S3Fetcher{Client: client}, nil
}

func (f *S3Fetcher) Fetch(ctx context.Context, rawURL, dst string) error {
	bucket, key, err := parseS3URL(rawURL)
	if err != nil {
		return err
	}

	obj, err := f.Client.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return fmt.Errorf("fftwbuild: s3 get %s: %w", rawURL, err)
	}
	defer obj.Close()

	return writeAtomic(dst, throttle(ctx, obj, f.BytesPerSec))
}

func parseS3URL(rawURL string) (bucket, key string, err error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", "", fmt.Errorf("fftwbuild: parse s3 url: %w", err)
	}
	key = strings.TrimPrefix(u.Path, "/")
	if u.Scheme != "s3" || u.Host == "" || key == "" {
		return "", "", fmt.Errorf("fftwbuild: malformed s3 url %q", rawURL)
	}
	return u.Host, key, nil
}

// throttledReader waits on a token bucket for every chunk it returns.
type throttledReader struct {
	ctx context.Context
	r   io.Reader
	lim *rate.Limiter
}

func throttle(ctx context.Context, r io.Reader, bytesPerSec int) io.Reader {
	if bytesPerSec <= 0 {
		return r
	}
	return &throttledReader{
		ctx: ctx,
		r:   r,
		lim: rate.NewLimiter(rate.Limit(bytesPerSec), bytesPerSec),
	}
}

func (t *throttledReader) Read(p []byte) (int, error) {
	if burst := t.lim.Burst(); len(p) > burst {
		p = p[:burst]
	}
	n, err := t.r.Read(p)
	if n > 0 {
		if werr := t.lim.WaitN(t.ctx, n); werr != nil {
			return n, werr
		}
	}
	return n, err
}

// writeAtomic streams r into a temporary file next to dst and renames it.
func writeAtomic(dst string, r io.Reader) error {
	tmp, err := os.CreateTemp(filepath.Dir(dst), filepath.Base(dst)+".part-*")
	if err != nil {
		return fmt.Errorf("fftwbuild: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return fmt.Errorf("fftwbuild: write %s: %w", dst, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("fftwbuild: %w", err)
	}
	return os.Rename(tmp.Name(), dst)
}
