//go:build !darwin && !freebsd && !linux && !windows

package nativelib

import (
	"fmt"
	"runtime"
)

// Dlopen always fails: there is no dynamic loader binding for this GOOS.
func Dlopen(path string) error {
	return fmt.Errorf("dlopen %s: GOOS=%s is not supported", path, runtime.GOOS)
}
