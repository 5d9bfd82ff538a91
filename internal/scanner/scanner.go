// Package scanner lists the native libraries contained in a resource bundle.
package scanner

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// SupportedExtensions contains the shared library extensions we recognize.
var SupportedExtensions = map[string]bool{
	".so":    true,
	".dylib": true,
	".dll":   true,
}

// Entry is one library found in the bundle.
type Entry struct {
	Path   string
	Dir    string
	Size   int64
	Digest uint64
}

// Result holds the output of scanning a bundle.
type Result struct {
	Libraries    []Entry
	SkippedCount int
}

// IsLibrary reports whether name looks like a shared library, including
// versioned names such as "libfoo.so.1".
func IsLibrary(name string) bool {
	if SupportedExtensions[strings.ToLower(path.Ext(name))] {
		return true
	}
	return strings.Contains(name, ".so.")
}

// Scan walks bundle recursively and returns the shared libraries it holds
// and a count of other files. Hidden files and directories are ignored.
func Scan(bundle fs.FS) (*Result, error) {
	result := &Result{}
	err := fs.WalkDir(bundle, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if p != "." && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if !IsLibrary(d.Name()) {
			result.SkippedCount++
			return nil
		}

		data, err := fs.ReadFile(bundle, p)
		if err != nil {
			return fmt.Errorf("cannot read %s: %w", p, err)
		}
		result.Libraries = append(result.Libraries, Entry{
			Path:   p,
			Dir:    path.Dir(p),
			Size:   int64(len(data)),
			Digest: xxhash.Sum64(data),
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cannot scan bundle: %w", err)
	}

	if len(result.Libraries) == 0 {
		return nil, fmt.Errorf("no native libraries found in bundle")
	}

	return result, nil
}
