package nativelib

import (
	"strings"
)

// Kind categorizes a loader error.
type Kind string

const (
	KindInvalidArgument     Kind = "invalid_argument"
	KindPattern             Kind = "pattern"
	KindUnsupportedPlatform Kind = "unsupported_platform"
	KindResourceNotFound    Kind = "resource_not_found"
	KindResourceRead        Kind = "resource_read"
	KindCacheWrite          Kind = "cache_write"
	KindNativeLoad          Kind = "native_load"
)

// Sentinels for errors.Is. They match any *Error of the same Kind.
var (
	ErrInvalidArgument     = &Error{Kind: KindInvalidArgument}
	ErrPattern             = &Error{Kind: KindPattern}
	ErrUnsupportedPlatform = &Error{Kind: KindUnsupportedPlatform}
	ErrResourceNotFound    = &Error{Kind: KindResourceNotFound}
	ErrResourceRead        = &Error{Kind: KindResourceRead}
	ErrCacheWrite          = &Error{Kind: KindCacheWrite}
	ErrNativeLoad          = &Error{Kind: KindNativeLoad}
)

// Error is returned by every failing Loader operation.
type Error struct {
	Kind Kind
	// Path is the resource path, cache path or pattern involved, if any.
	Path   string
	Detail string
	// Platform is set for KindUnsupportedPlatform.
	Platform *Descriptor
	Cause    error
}

func (e *Error) Error() string {
	var b strings.Builder

	b.WriteString("nativelib: ")
	b.WriteString(string(e.Kind))

	if e.Path != "" {
		b.WriteString(" '")
		b.WriteString(e.Path)
		b.WriteByte('\'')
	}

	if e.Platform != nil {
		b.WriteString(" for os.name='")
		b.WriteString(e.Platform.OSName)
		b.WriteString("' os.arch='")
		b.WriteString(e.Platform.OSArch)
		b.WriteString("' os.version='")
		b.WriteString(e.Platform.OSVersion)
		b.WriteByte('\'')
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}

	return b.String()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func invalidArgument(detail string) *Error {
	return &Error{Kind: KindInvalidArgument, Detail: detail}
}
