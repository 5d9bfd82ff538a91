//go:build !darwin && !freebsd && !linux && !netbsd && !openbsd && !windows

package platform

import "runtime"

func osName() string {
	return capitalize(runtime.GOOS)
}

func osVersion() string {
	return ""
}
