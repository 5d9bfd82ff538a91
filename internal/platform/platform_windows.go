//go:build windows

package platform

import (
	"fmt"

	"golang.org/x/sys/windows"
)

func osName() string {
	return "Windows"
}

func osVersion() string {
	v := windows.RtlGetVersion()
	return fmt.Sprintf("%d.%d.%d", v.MajorVersion, v.MinorVersion, v.BuildNumber)
}
