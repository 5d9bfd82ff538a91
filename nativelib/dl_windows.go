//go:build windows

package nativelib

import "golang.org/x/sys/windows"

// Dlopen loads the DLL at path into the process. It is the default LoadFunc.
func Dlopen(path string) error {
	_, err := windows.LoadLibrary(path)
	return err
}
