//go:build darwin || freebsd || linux

package nativelib

import "github.com/ebitengine/purego"

// Dlopen loads the shared library at path into the process. It is the
// default LoadFunc.
func Dlopen(path string) error {
	_, err := purego.Dlopen(path, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	return err
}
