// Package onnxlib extracts the embedded ONNX Runtime shared library to the
// temp directory and initializes onnxruntime_go with it. This allows a binary
// to be fully self-contained with no external runtime dependencies.
//
// The library is embedded only when building with -tags embed_onnx; the
// bundle is laid out as lib/<goos>-<goarch>/<platform file name>.
package onnxlib

import (
	"fmt"
	"io/fs"
	"sync"

	"github.com/bagtoad/nativeload/internal/routes"
	"github.com/bagtoad/nativeload/nativelib"
	ort "github.com/yalue/onnxruntime_go"
	"go.uber.org/zap"
)

const libraryName = "onnxruntime"

var (
	loggerMu sync.RWMutex
	logger   = zap.NewNop()
)

// Logger returns the package logger. It is a no-op logger by default.
func Logger() *zap.Logger {
	loggerMu.RLock()
	defer loggerMu.RUnlock()
	return logger
}

// SetLogger configures the package logger. A nil logger restores the no-op
// default. It is safe to call concurrently with Load.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	loggerMu.Lock()
	logger = l
	loggerMu.Unlock()
}

// NewLoader returns a loader for the bundled runtime on the given platform.
// opts are applied after the defaults, so callers can swap the bundle, the
// filesystem or the load function.
func NewLoader(desc nativelib.Descriptor, opts ...nativelib.Option) (*nativelib.Loader, error) {
	root, err := fs.Sub(bundle, "lib")
	if err != nil {
		return nil, fmt.Errorf("cannot open embedded bundle: %w", err)
	}

	defaults := []nativelib.Option{
		nativelib.WithResourceRoot(root),
		nativelib.WithLoadFunc(initialize),
	}
	l := nativelib.New(desc, append(defaults, opts...)...)
	if err := routes.Apply(l, routes.DefaultRules); err != nil {
		return nil, err
	}
	return l, nil
}

// Extract writes the embedded ONNX Runtime shared library to the temp
// directory and returns its full path.
func Extract() (string, error) {
	l, err := NewLoader(nativelib.SystemDescriptor())
	if err != nil {
		return "", err
	}
	ex, err := l.Extract(libraryName)
	if err != nil {
		return "", fmt.Errorf("no embedded ONNX Runtime library for this platform: %w", err)
	}
	Logger().Debug("extracted onnx runtime",
		zap.String("path", ex.CachePath),
		zap.Bool("written", ex.Written))
	return ex.CachePath, nil
}

// Load extracts the embedded runtime and initializes the ONNX Runtime
// environment with it.
func Load() error {
	l, err := NewLoader(nativelib.SystemDescriptor())
	if err != nil {
		return err
	}
	if err := l.Load(libraryName); err != nil {
		return fmt.Errorf("cannot initialize ONNX Runtime: %w", err)
	}
	Logger().Info("onnx runtime initialized",
		zap.String("path", l.CachePath(libraryName)),
		zap.String("version", ort.GetVersion()))
	return nil
}

func initialize(path string) error {
	if ort.IsInitialized() {
		return nil
	}
	ort.SetSharedLibraryPath(path)
	return ort.InitializeEnvironment()
}
