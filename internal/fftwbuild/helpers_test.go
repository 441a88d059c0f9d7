package fftwbuild

import (
	"archive/tar"
	"bytes"
	"crypto/md5"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/require"
)

type tarEntry struct {
	name string
	body string
	dir  bool
}

// makeTarGz returns a gzip-compressed tar archive and its MD5 digest.
func makeTarGz(t *testing.T, entries []tarEntry) ([]byte, string) {
	t.Helper()

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	_, err := zw.Write(makeTar(t, entries))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	sum := md5.Sum(buf.Bytes())
	return buf.Bytes(), hex.EncodeToString(sum[:])
}

func makeTar(t *testing.T, entries []tarEntry) []byte {
	t.Helper()

	var buf bytes.Buffer
	tw := tar.NewWriter(&buf)
	for _, e := range entries {
		hdr := &tar.Header{Name: e.name, Mode: 0o644, Typeflag: tar.TypeReg, Size: int64(len(e.body))}
		if e.dir {
			hdr = &tar.Header{Name: e.name, Mode: 0o755, Typeflag: tar.TypeDir}
		}
		require.NoError(t, tw.WriteHeader(hdr))
		if !e.dir {
			_, err := tw.Write([]byte(e.body))
			require.NoError(t, err)
		}
	}
	require.NoError(t, tw.Close())
	return buf.Bytes()
}

func zstdCompress(t *testing.T, data []byte) []byte {
	t.Helper()
	enc, err := zstd.NewWriter(nil)
	require.NoError(t, err)
	defer enc.Close()
	return enc.EncodeAll(data, nil)
}

func lz4Compress(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := lz4.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return buf.Bytes()
}

func fftwTree(name string) []tarEntry {
	return []tarEntry{
		{name: name + "/", dir: true},
		{name: name + "/configure", body: "#!/bin/sh\n"},
		{name: name + "/api/fftw3.h", body: "/* header */\n"},
	}
}

// parseEnvFile reads NAME=value lines the way a POSIX shell would for values
// made of single-quoted segments and backslash-escaped characters.
func parseEnvFile(t *testing.T, content string) map[string]string {
	t.Helper()
	vars := make(map[string]string)
	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		name, raw, ok := strings.Cut(line, "=")
		require.True(t, ok, "line without assignment: %q", line)

		var val strings.Builder
		for i := 0; i < len(raw); i++ {
			switch raw[i] {
			case '\'':
				end := strings.IndexByte(raw[i+1:], '\'')
				require.GreaterOrEqual(t, end, 0, "unterminated quote in %q", line)
				val.WriteString(raw[i+1 : i+1+end])
				i += end + 1
			case '\\':
				require.Less(t, i+1, len(raw), "dangling escape in %q", line)
				i++
				val.WriteByte(raw[i])
			case ' ', '\t':
				t.Fatalf("unquoted whitespace in %q", line)
			default:
				val.WriteByte(raw[i])
			}
		}
		vars[name] = val.String()
	}
	return vars
}
