// Package platform reports the operating system facts used to pick a native
// library variant.
package platform

import (
	"os"
	"runtime"
)

// OSName returns the kernel name, e.g. "Linux", "Darwin" or "Windows".
func OSName() string {
	return osName()
}

// OSArch returns the architecture as GOARCH spells it.
func OSArch() string {
	return runtime.GOARCH
}

// OSVersion returns the kernel release, or "" when it cannot be determined.
func OSVersion() string {
	return osVersion()
}

// TempDir returns the directory extracted libraries are written to.
func TempDir() string {
	return os.TempDir()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	b := []byte(s)
	if b[0] >= 'a' && b[0] <= 'z' {
		b[0] -= 'a' - 'A'
	}
	return string(b)
}
