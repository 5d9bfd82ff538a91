package nativelib

import (
	"errors"
	"regexp"
	"testing"
)

func mustRoute(t *testing.T, name, arch, version, dir string) Route {
	t.Helper()
	r, err := NewRoute(name, arch, version, dir)
	if err != nil {
		t.Fatalf("NewRoute(%q, %q, %q) failed: %v", name, arch, version, err)
	}
	return r
}

func TestRouteWholeStringMatch(t *testing.T) {
	r := mustRoute(t, "Linux", "amd64", ".*", "linux64")

	tests := []struct {
		name string
		desc Descriptor
		want bool
	}{
		{"exact", Descriptor{OSName: "Linux", OSArch: "amd64", OSVersion: "5.10.0"}, true},
		{"name has suffix", Descriptor{OSName: "Linux 5.10", OSArch: "amd64", OSVersion: "5.10.0"}, false},
		{"name has prefix", Descriptor{OSName: "GNU/Linux", OSArch: "amd64", OSVersion: "5.10.0"}, false},
		{"arch substring", Descriptor{OSName: "Linux", OSArch: "xamd64", OSVersion: "5.10.0"}, false},
		{"empty version", Descriptor{OSName: "Linux", OSArch: "amd64"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Matches(tt.desc); got != tt.want {
				t.Errorf("Matches(%+v) = %v, want %v", tt.desc, got, tt.want)
			}
		})
	}
}

func TestRouteAlternationIsAnchoredAsAWhole(t *testing.T) {
	r := mustRoute(t, "Linux|Windows", "amd64|x86_64", ".*", "dir")

	if !r.Matches(Descriptor{OSName: "Windows", OSArch: "x86_64"}) {
		t.Error("expected the second alternative to match")
	}
	if r.Matches(Descriptor{OSName: "Windows 10", OSArch: "amd64"}) {
		t.Error("alternation must not match a longer string")
	}
}

func TestRouteTableFirstMatchWins(t *testing.T) {
	var table RouteTable
	table.Add(mustRoute(t, "Linux.*", "amd64", ".*", "specific"))
	table.Add(mustRoute(t, ".*", ".*", ".*", "fallback"))

	desc := Descriptor{OSName: "Linux", OSArch: "amd64", OSVersion: "6.1"}
	dir, ok := table.Resolve(desc)
	if !ok || dir != "specific" {
		t.Fatalf("expected specific, got %q (ok=%v)", dir, ok)
	}

	dir, ok = table.Resolve(Descriptor{OSName: "Linux", OSArch: "arm64", OSVersion: "6.1"})
	if !ok || dir != "fallback" {
		t.Fatalf("expected fallback, got %q (ok=%v)", dir, ok)
	}
}

func TestRouteTableDeterministic(t *testing.T) {
	var table RouteTable
	table.Add(mustRoute(t, "Windows.*", ".*", ".*", "win32"))
	table.Add(mustRoute(t, "Linux.*", ".*", ".*", "linux64"))

	desc := Descriptor{OSName: "Linux 5.10", OSArch: "amd64", OSVersion: "5.10.0"}
	first, _ := table.Resolve(desc)
	for i := 0; i < 10; i++ {
		if dir, _ := table.Resolve(desc); dir != first {
			t.Fatalf("resolution changed from %q to %q", first, dir)
		}
	}
}

func TestRouteTableEmpty(t *testing.T) {
	var table RouteTable
	if dir, ok := table.Resolve(Descriptor{OSName: "Linux"}); ok {
		t.Errorf("expected no match from an empty table, got %q", dir)
	}
	if table.Len() != 0 {
		t.Errorf("expected 0 routes, got %d", table.Len())
	}
}

func TestRouteTableRoutesIsACopy(t *testing.T) {
	var table RouteTable
	table.Add(mustRoute(t, "a", "b", "c", "d"))

	routes := table.Routes()
	routes[0] = Route{}
	if table.Routes()[0].Dir() != "d" {
		t.Error("mutating Routes() result changed the table")
	}
}

func TestNewRouteMalformedPattern(t *testing.T) {
	patterns := [][3]string{
		{"(Linux", ".*", ".*"},
		{".*", "[amd64", ".*"},
		{".*", ".*", "5.*)"},
		{`\QLinux\E)`, ".*", ".*"},
	}
	for _, p := range patterns {
		_, err := NewRoute(p[0], p[1], p[2], "dir")
		if !errors.Is(err, ErrPattern) {
			t.Errorf("NewRoute(%q): expected pattern error, got %v", p, err)
		}
	}
}

func TestNewRouteRegexp(t *testing.T) {
	r, err := NewRouteRegexp(regexp.MustCompile(`(?i)linux`), regexp.MustCompile(`amd64`), regexp.MustCompile(`.*`), "linux64")
	if err != nil {
		t.Fatal(err)
	}
	if !r.Matches(Descriptor{OSName: "LINUX", OSArch: "amd64"}) {
		t.Error("expected case-insensitive flag to be kept")
	}
	if r.Matches(Descriptor{OSName: "Linux", OSArch: "amd64x"}) {
		t.Error("precompiled pattern must match the whole string")
	}

	if _, err := NewRouteRegexp(nil, regexp.MustCompile(`.*`), regexp.MustCompile(`.*`), "d"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected invalid argument for nil pattern, got %v", err)
	}
}

func TestNewRouteCannotEscapeAnchors(t *testing.T) {
	if _, err := NewRoute("Linux)|(.*", ".*", ".*", "dir"); !errors.Is(err, ErrPattern) {
		t.Errorf("expected pattern error, got %v", err)
	}

	// An unterminated \Q quote runs to the end of the pattern.
	r, err := NewRoute(`\QLinux`, ".*", ".*", "dir")
	if err != nil {
		t.Fatalf("expected unterminated quote to be accepted, got %v", err)
	}
	if !r.Matches(Descriptor{OSName: "Linux"}) {
		t.Error("expected quoted literal to match")
	}
	if r.Matches(Descriptor{OSName: "Linux 5.10"}) {
		t.Error("quoted literal must match the whole string")
	}

	r, err = NewRoute(`\QLinux)|(.*`, ".*", ".*", "dir")
	if err != nil {
		t.Fatalf("expected quoted metacharacters to be accepted, got %v", err)
	}
	if r.Matches(Descriptor{OSName: "Darwin"}) {
		t.Error("quoted alternation must stay literal")
	}
	if !r.Matches(Descriptor{OSName: "Linux)|(.*"}) {
		t.Error("expected the literal text to match")
	}
}

func TestLoaderAddRouteUnterminatedQuote(t *testing.T) {
	l := New(Descriptor{OSName: "Linux", OSArch: "amd64"})
	if err := l.AddRoute(`\QLinux`, `\Qamd64`, ".*", "linux64"); err != nil {
		t.Fatal(err)
	}
	if err := l.AddRouteRegexp(regexp.MustCompile(`\QLinux`), regexp.MustCompile(".*"), regexp.MustCompile(".*"), "other"); err != nil {
		t.Fatal(err)
	}
	dir, err := l.Resolve()
	if err != nil || dir != "linux64" {
		t.Errorf("expected linux64, got %q (%v)", dir, err)
	}
}

func TestZeroRouteMatchesNothing(t *testing.T) {
	var table RouteTable
	table.Add(Route{})
	table.Add(mustRoute(t, ".*", ".*", ".*", "fallback"))

	dir, ok := table.Resolve(Descriptor{OSName: "Linux", OSArch: "amd64"})
	if !ok || dir != "fallback" {
		t.Errorf("expected fallback, got %q (ok=%v)", dir, ok)
	}
}
