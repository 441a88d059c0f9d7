package fftwbuild

import (
	"errors"
	"fmt"
	"net/url"
	"path"
	"strings"
)

var (
	// ErrChecksumMismatch is returned when a downloaded archive does not have
	// the expected digest. It is never retried.
	ErrChecksumMismatch = errors.New("fftwbuild: checksum mismatch")
	// ErrUnsupportedTarget is returned for a GOOS/GOARCH/GOARM combination
	// with no known host triple.
	ErrUnsupportedTarget = errors.New("fftwbuild: unsupported target")
	// ErrCommand wraps a failed configure, make or install step.
	ErrCommand = errors.New("fftwbuild: command failed")
	// ErrUnsafePath is returned when an archive entry would land outside the
	// extraction directory.
	ErrUnsafePath = errors.New("fftwbuild: archive entry escapes destination")
	// ErrInvalidSource is returned by [SourceFromURL] for a URL that does not
	// name an archive file.
	ErrInvalidSource = errors.New("fftwbuild: invalid source")
)

// Source identifies a release tarball.
type Source struct {
	// Name is the top-level directory inside the archive.
	Name string
	URL  string
	// Archive is the file name the download is stored under.
	Archive string
	// MD5 is the lowercase hex digest of the archive.
	MD5 string
}

// DefaultSource is the FFTW release the bindings are built against.
var DefaultSource = Source{
	Name:    "fftw-3.3.6-pl1",
	URL:     "http://www.fftw.org/fftw-3.3.6-pl1.tar.gz",
	Archive: "fftw-3.3.6-pl1.tar.gz",
	MD5:     "682a0e78d6966ca37c7446d4ab4cc2a1",
}

// archiveExts are stripped from the archive file name to guess the
// top-level directory, longest first.
var archiveExts = []string{".tar.gz", ".tar.zst", ".tar.lz4", ".tgz"}

// SourceFromURL describes an archive served at rawURL. Archive is the last
// path element of the URL. Name is the top-level directory inside the
// archive; when empty it is Archive without its extension.
func SourceFromURL(rawURL, md5, name string) (Source, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return Source{}, fmt.Errorf("%w: %w", ErrInvalidSource, err)
	}
	archive := path.Base(u.Path)
	if archive == "." || archive == "/" {
		return Source{}, fmt.Errorf("%w: no file name in %q", ErrInvalidSource, rawURL)
	}
	if name == "" {
		name = archive
		for _, ext := range archiveExts {
			if trimmed, ok := strings.CutSuffix(archive, ext); ok {
				name = trimmed
				break
			}
		}
	}
	if name == "" || name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
		return Source{}, fmt.Errorf("%w: bad directory name %q", ErrInvalidSource, name)
	}
	return Source{Name: name, URL: rawURL, Archive: archive, MD5: md5}, nil
}
