package fftwbuild

import (
	"fmt"

	"github.com/cwbudde/algo-fftw/plan"
)

type target struct {
	goos, goarch, goarm string
}

// hostTriples maps Go targets to autotools host triples. GOARM is only
// significant for arm.
var hostTriples = map[target]string{
	{"linux", "amd64", ""}:   "x86_64-linux-gnu",
	{"linux", "386", ""}:     "i686-linux-gnu",
	{"linux", "arm64", ""}:   "aarch64-linux-gnu",
	{"linux", "arm", "7"}:    "arm-linux-gnueabihf",
	{"linux", "arm", "6"}:    "arm-linux-gnueabi",
	{"linux", "ppc64le", ""}: "powerpc64le-linux-gnu",
	{"linux", "riscv64", ""}: "riscv64-linux-gnu",
	{"darwin", "amd64", ""}:  "x86_64-apple-darwin",
	{"darwin", "arm64", ""}:  "aarch64-apple-darwin",
	{"freebsd", "amd64", ""}: "x86_64-unknown-freebsd",
	{"windows", "amd64", ""}: "x86_64-w64-mingw32",
	{"windows", "386", ""}:   "i686-w64-mingw32",
}

// TargetTriple returns the host triple for a cross build. goarm is ignored
// unless goarch is arm, where an empty value means 7.
func TargetTriple(goos, goarch, goarm string) (string, error) {
	if goarch == "arm" {
		if goarm == "" {
			goarm = "7"
		}
	} else {
		goarm = ""
	}

	triple, ok := hostTriples[target{goos, goarch, goarm}]
	if !ok {
		if goarm != "" {
			return "", fmt.Errorf("%w: %s/%s (GOARM=%s)", ErrUnsupportedTarget, goos, goarch, goarm)
		}
		return "", fmt.Errorf("%w: %s/%s", ErrUnsupportedTarget, goos, goarch)
	}
	return triple, nil
}

// ConfigureArgs returns the arguments for FFTW's configure script. host is
// empty for a native build.
func ConfigureArgs(prefix string, prec plan.Precision, host string) []string {
	args := []string{
		"--with-pic",
		"--enable-static",
		"--disable-shared",
		"--disable-doc",
		"--disable-fortran",
		"--prefix=" + prefix,
	}
	if prec == plan.Single {
		args = append(args, "--enable-single")
	}
	if host != "" {
		args = append(args, "--host="+host)
	}
	return args
}
