// Package nativelib loads a platform-specific native library that is bundled
// with the application.
//
// A Loader holds an ordered table of routes. Each route maps patterns over the
// OS name, architecture and OS version to a directory of the resource bundle.
// Load picks the first matching route, extracts "<dir>/<mapped name>" from the
// bundle into the temp directory (skipping the write when an identical copy
// is already there) and hands the extracted file to the native loader:
//
//	l := nativelib.FromSystem(nativelib.WithResourceRoot(libs))
//	l.MustAddRoute("Windows.*", "amd64", ".*", "windows-amd64").
//		MustAddRoute("Linux", "amd64", ".*", "linux-amd64")
//	if err := l.Load("codec"); err != nil {
//		return err
//	}
//
// Routes and settings must be configured before the first Load; a Loader does
// no locking of its own.
package nativelib

import (
	"io/fs"
	"regexp"

	"github.com/spf13/afero"
)

// LoadFunc loads the library file at path into the running process.
type LoadFunc func(path string) error

// Option configures a Loader at construction.
type Option func(*Loader)

// WithFs sets the filesystem the cache file is written to.
func WithFs(fsys afero.Fs) Option {
	return func(l *Loader) { l.fs = fsys }
}

// WithLoadFunc replaces Dlopen as the native-load capability.
func WithLoadFunc(fn LoadFunc) Option {
	return func(l *Loader) { l.load = fn }
}

// WithNameMapper replaces MapLibraryName for the loader's platform.
func WithNameMapper(fn func(name string) string) Option {
	return func(l *Loader) { l.mapName = fn }
}

// WithResourceRoot sets the bundle the libraries are read from.
func WithResourceRoot(bundle fs.FS) Option {
	return func(l *Loader) { l.bundle = bundle }
}

// WithPrefix sets the cache-file prefix.
func WithPrefix(prefix string) Option {
	return func(l *Loader) { l.prefix = prefix }
}

// Loader resolves, extracts and loads bundled native libraries.
type Loader struct {
	desc    Descriptor
	routes  RouteTable
	bundle  fs.FS
	prefix  string
	fs      afero.Fs
	mapName func(string) string
	load    LoadFunc
}

// New creates a Loader for the given platform. Without options it reads from
// an empty bundle, writes to the OS filesystem and loads with Dlopen.
func New(desc Descriptor, opts ...Option) *Loader {
	l := &Loader{
		desc:   desc,
		bundle: emptyFS{},
		prefix: buildPrefix(),
		fs:     afero.NewOsFs(),
		load:   Dlopen,
	}
	l.mapName = func(name string) string {
		return MapLibraryName(l.desc.OSName, name)
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// FromSystem creates a Loader for the current process.
func FromSystem(opts ...Option) *Loader {
	return New(SystemDescriptor(), opts...)
}

// Descriptor returns the platform the loader was created for.
func (l *Loader) Descriptor() Descriptor { return l.desc }

// Prefix returns the cache-file prefix.
func (l *Loader) Prefix() string { return l.prefix }

// Routes returns the loader's route table.
func (l *Loader) Routes() *RouteTable { return &l.routes }

// AddRoute appends a route. A malformed pattern fails here with a
// KindPattern error and the table is left unchanged.
func (l *Loader) AddRoute(osNamePattern, osArchPattern, osVersionPattern, dir string) error {
	r, err := NewRoute(osNamePattern, osArchPattern, osVersionPattern, dir)
	if err != nil {
		return err
	}
	l.routes.Add(r)
	return nil
}

// AddRouteRegexp appends a route built from precompiled patterns.
func (l *Loader) AddRouteRegexp(osNamePattern, osArchPattern, osVersionPattern *regexp.Regexp, dir string) error {
	r, err := NewRouteRegexp(osNamePattern, osArchPattern, osVersionPattern, dir)
	if err != nil {
		return err
	}
	l.routes.Add(r)
	return nil
}

// MustAddRoute is like AddRoute but panics on a malformed pattern. It returns
// the loader so that static tables can be chained.
func (l *Loader) MustAddRoute(osNamePattern, osArchPattern, osVersionPattern, dir string) *Loader {
	if err := l.AddRoute(osNamePattern, osArchPattern, osVersionPattern, dir); err != nil {
		panic(err)
	}
	return l
}

// SetResourceRoot replaces the bundle the libraries are read from.
func (l *Loader) SetResourceRoot(bundle fs.FS) error {
	if bundle == nil {
		return invalidArgument("resource root is nil")
	}
	l.bundle = bundle
	return nil
}

// SetPrefix replaces the cache-file prefix.
func (l *Loader) SetPrefix(prefix string) error {
	if prefix == "" {
		return invalidArgument("prefix is empty")
	}
	l.prefix = prefix
	return nil
}

// Resolve returns the bundle directory for the loader's platform.
func (l *Loader) Resolve() (string, error) {
	dir, ok := l.routes.Resolve(l.desc)
	if !ok {
		desc := l.desc
		return "", &Error{
			Kind:     KindUnsupportedPlatform,
			Detail:   "no route matches",
			Platform: &desc,
		}
	}
	return dir, nil
}

// MappedName returns the file name the logical library name maps to.
func (l *Loader) MappedName(name string) string {
	return l.mapName(name)
}

// Load extracts the named library and loads it into the process.
//
// A failure of the native-load function is not returned as is: it comes back
// as a KindNativeLoad *Error carrying the cache path. Use errors.Is or
// errors.As to reach the original error; comparing with == will not match.
func (l *Loader) Load(name string) error {
	_, err := l.LoadExtraction(name)
	return err
}

// LoadExtraction is like Load but also returns the extraction it loaded.
func (l *Loader) LoadExtraction(name string) (*Extraction, error) {
	ex, err := l.Extract(name)
	if err != nil {
		return nil, err
	}
	if err := l.load(ex.CachePath); err != nil {
		return nil, &Error{Kind: KindNativeLoad, Path: ex.CachePath, Cause: err}
	}
	return ex, nil
}

type emptyFS struct{}

func (emptyFS) Open(name string) (fs.File, error) {
	return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
}
