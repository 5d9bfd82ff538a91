package nativelib

import "strings"

// MapLibraryName returns the platform file name for the logical library name
// on the OS family described by osName: "<name>.dll" on Windows,
// "lib<name>.dylib" on macOS and "lib<name>.so" everywhere else.
func MapLibraryName(osName, name string) string {
	switch family(osName) {
	case "windows":
		return name + ".dll"
	case "darwin":
		return "lib" + name + ".dylib"
	default:
		return "lib" + name + ".so"
	}
}

func family(osName string) string {
	lower := strings.ToLower(osName)
	switch {
	case strings.HasPrefix(lower, "windows"):
		return "windows"
	case strings.HasPrefix(lower, "darwin"), strings.HasPrefix(lower, "mac"):
		return "darwin"
	default:
		return "unix"
	}
}
