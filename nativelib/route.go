package nativelib

import (
	"regexp"
	"regexp/syntax"
)

// Route binds a set of platform patterns to a directory in the resource bundle.
type Route struct {
	osName    *regexp.Regexp
	osArch    *regexp.Regexp
	osVersion *regexp.Regexp
	dir       string
}

// NewRoute compiles the three patterns. Each pattern must match the whole
// descriptor field, not a substring of it.
func NewRoute(osNamePattern, osArchPattern, osVersionPattern, dir string) (Route, error) {
	name, err := compileAnchored(osNamePattern)
	if err != nil {
		return Route{}, err
	}
	arch, err := compileAnchored(osArchPattern)
	if err != nil {
		return Route{}, err
	}
	version, err := compileAnchored(osVersionPattern)
	if err != nil {
		return Route{}, err
	}
	return Route{osName: name, osArch: arch, osVersion: version, dir: dir}, nil
}

// NewRouteRegexp builds a route from precompiled patterns. The patterns are
// re-anchored so they keep whole-string semantics.
func NewRouteRegexp(osNamePattern, osArchPattern, osVersionPattern *regexp.Regexp, dir string) (Route, error) {
	if osNamePattern == nil || osArchPattern == nil || osVersionPattern == nil {
		return Route{}, invalidArgument("route pattern is nil")
	}
	return NewRoute(osNamePattern.String(), osArchPattern.String(), osVersionPattern.String(), dir)
}

// compileAnchored anchors the parsed pattern rather than its text, so neither
// "a)|(b" nor an unterminated \Q quote can escape the anchors.
func compileAnchored(pattern string) (*regexp.Regexp, error) {
	re, err := syntax.Parse(pattern, syntax.Perl)
	if err != nil {
		return nil, &Error{Kind: KindPattern, Path: pattern, Cause: err}
	}
	anchored := &syntax.Regexp{
		Op:    syntax.OpConcat,
		Flags: syntax.Perl,
		Sub:   []*syntax.Regexp{{Op: syntax.OpBeginText}, re, {Op: syntax.OpEndText}},
	}
	compiled, err := regexp.Compile(anchored.String())
	if err != nil {
		return nil, &Error{Kind: KindPattern, Path: pattern, Cause: err}
	}
	return compiled, nil
}

// Dir returns the resource directory of the route.
func (r Route) Dir() string { return r.dir }

// Matches reports whether all three patterns match d. The zero Route
// matches nothing.
func (r Route) Matches(d Descriptor) bool {
	if r.osName == nil || r.osArch == nil || r.osVersion == nil {
		return false
	}
	return r.osName.MatchString(d.OSName) &&
		r.osArch.MatchString(d.OSArch) &&
		r.osVersion.MatchString(d.OSVersion)
}

// RouteTable is an ordered list of routes. The zero value is an empty table.
type RouteTable struct {
	routes []Route
}

// Add appends r. Routes added earlier take precedence, so register them from
// most specific to most general.
func (t *RouteTable) Add(r Route) {
	t.routes = append(t.routes, r)
}

// Resolve returns the directory of the first route matching d.
func (t *RouteTable) Resolve(d Descriptor) (string, bool) {
	for _, r := range t.routes {
		if r.Matches(d) {
			return r.dir, true
		}
	}
	return "", false
}

// Len returns the number of routes.
func (t *RouteTable) Len() int { return len(t.routes) }

// Routes returns a copy of the routes in resolution order.
func (t *RouteTable) Routes() []Route {
	out := make([]Route, len(t.routes))
	copy(out, t.routes)
	return out
}
