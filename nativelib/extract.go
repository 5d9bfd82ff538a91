package nativelib

import (
	"bytes"
	"errors"
	"io"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// Extraction describes where a library was read from and written to.
type Extraction struct {
	Descriptor   Descriptor
	ResourceDir  string
	ResourcePath string
	CachePath    string
	Size         int
	// Written is false when an identical cache file was already present.
	Written bool
}

// Extract copies the named library from the bundle to the temp directory and
// returns where it went. The cache file is rewritten only when it is missing
// or its content differs from the bundled bytes.
func (l *Loader) Extract(name string) (*Extraction, error) {
	if name == "" {
		return nil, invalidArgument("library name is empty")
	}

	dir, err := l.Resolve()
	if err != nil {
		return nil, err
	}

	mapped := l.mapName(name)
	resourcePath := ResourcePath(dir, mapped)

	data, err := l.readResource(resourcePath)
	if err != nil {
		return nil, err
	}

	cachePath := l.CachePath(name)
	written, err := writeIfDifferent(l.fs, data, cachePath)
	if err != nil {
		return nil, &Error{Kind: KindCacheWrite, Path: cachePath, Cause: err}
	}

	return &Extraction{
		Descriptor:   l.desc,
		ResourceDir:  dir,
		ResourcePath: resourcePath,
		CachePath:    cachePath,
		Size:         len(data),
		Written:      written,
	}, nil
}

// CachePath returns the path the named library is extracted to.
func (l *Loader) CachePath(name string) string {
	return filepath.Join(l.desc.TempDir, l.prefix+l.mapName(name))
}

// ResourcePath joins a route directory and a mapped file name into a bundle
// path. Bundle paths are unrooted, so a leading slash on dir is dropped.
func ResourcePath(dir, mapped string) string {
	return path.Join(strings.TrimLeft(dir, "/"), mapped)
}

func (l *Loader) readResource(resourcePath string) ([]byte, error) {
	f, err := l.bundle.Open(resourcePath)
	if err != nil {
		return nil, &Error{Kind: KindResourceNotFound, Path: resourcePath, Cause: err}
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, &Error{Kind: KindResourceRead, Path: resourcePath, Cause: err}
	}
	return data, nil
}

// writeIfDifferent writes data to target unless target already holds exactly
// data. It reports whether a write happened.
func writeIfDifferent(fsys afero.Fs, data []byte, target string) (bool, error) {
	info, err := fsys.Stat(target)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return false, err
	case info.Size() == int64(len(data)):
		existing, err := afero.ReadFile(fsys, target)
		if err != nil {
			return false, err
		}
		if bytes.Equal(existing, data) {
			return false, nil
		}
	}

	if err := writeAtomic(fsys, target, data); err != nil {
		return false, err
	}
	return true, nil
}

// writeAtomic writes to a temp file next to target and renames it into
// place, so target is never observed half-written.
func writeAtomic(fsys afero.Fs, target string, data []byte) error {
	dir := filepath.Dir(target)
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return err
	}

	tmp, err := afero.TempFile(fsys, dir, "."+filepath.Base(target)+".*.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer func() {
		tmp.Close()
		fsys.Remove(tmpPath) // clean up if not renamed
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := fsys.Chmod(tmpPath, 0755); err != nil {
		return err
	}
	return fsys.Rename(tmpPath, target)
}
