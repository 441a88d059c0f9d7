package fftwbuild

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"
)

// VerifyMD5 compares the MD5 digest of the file at path with want (hex).
func VerifyMD5(path, want string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("fftwbuild: %w", err)
	}
	defer f.Close()

	h := md5.New()
	if _, err := io.Copy(h, f); err != nil {
		return fmt.Errorf("fftwbuild: hash %s: %w", path, err)
	}

	got := hex.EncodeToString(h.Sum(nil))
	if !strings.EqualFold(got, want) {
		return fmt.Errorf("%w: %s has md5 %s, want %s", ErrChecksumMismatch, path, got, want)
	}
	return nil
}
