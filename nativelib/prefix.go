package nativelib

import (
	"path"
	"runtime/debug"
)

// DefaultPrefix builds the cache-file prefix "<title>-<version>-".
func DefaultPrefix(title, version string) string {
	return title + "-" + version + "-"
}

// buildPrefix derives the prefix from the main module of the running binary,
// so that two applications sharing a temp directory do not overwrite each
// other's extracted libraries.
func buildPrefix() string {
	title, version := "nativelib", "devel"
	if bi, ok := debug.ReadBuildInfo(); ok {
		if bi.Main.Path != "" {
			title = path.Base(bi.Main.Path)
		}
		if bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			version = bi.Main.Version
		}
	}
	return DefaultPrefix(title, version)
}
