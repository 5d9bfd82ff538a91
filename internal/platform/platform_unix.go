//go:build darwin || freebsd || linux || netbsd || openbsd

package platform

import (
	"runtime"

	"golang.org/x/sys/unix"
)

func uname() (*unix.Utsname, bool) {
	var u unix.Utsname
	if err := unix.Uname(&u); err != nil {
		return nil, false
	}
	return &u, true
}

func osName() string {
	if u, ok := uname(); ok {
		if name := unix.ByteSliceToString(u.Sysname[:]); name != "" {
			return name
		}
	}
	return capitalize(runtime.GOOS)
}

func osVersion() string {
	if u, ok := uname(); ok {
		return unix.ByteSliceToString(u.Release[:])
	}
	return ""
}
