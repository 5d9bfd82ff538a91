package nativelib

import "github.com/bagtoad/nativeload/internal/platform"

// Descriptor holds the facts about the running platform that routing and
// extraction depend on. It is captured once, when a Loader is created.
type Descriptor struct {
	OSName    string
	OSArch    string
	OSVersion string
	TempDir   string
}

// SystemDescriptor describes the current process.
func SystemDescriptor() Descriptor {
	return Descriptor{
		OSName:    platform.OSName(),
		OSArch:    platform.OSArch(),
		OSVersion: platform.OSVersion(),
		TempDir:   platform.TempDir(),
	}
}
