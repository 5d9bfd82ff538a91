// Package routes provides the default and custom route rules for locating a
// bundled native library.
package routes

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bagtoad/nativeload/nativelib"
)

// Rule is the textual form of a route: three patterns and a bundle directory.
type Rule struct {
	OSName    string
	OSArch    string
	OSVersion string
	Dir       string
}

func (r Rule) String() string {
	return strings.Join([]string{r.OSName, r.OSArch, r.OSVersion, r.Dir}, " ")
}

// DefaultRules lays a bundle out as "<goos>-<goarch>/". Architecture
// patterns accept both the Go and the uname spelling.
var DefaultRules = []Rule{
	{"Linux", "amd64|x86_64", ".*", "linux-amd64"},
	{"Linux", "arm64|aarch64", ".*", "linux-arm64"},
	{"Darwin|Mac.*", "arm64|aarch64", ".*", "darwin-arm64"},
	{"Darwin|Mac.*", "amd64|x86_64", ".*", "darwin-amd64"},
	{"Windows.*", "amd64|x86_64", ".*", "windows-amd64"},
	{"Windows.*", "arm64|aarch64", ".*", "windows-arm64"},
	{"Windows.*", "386|x86", ".*", "windows-386"},
	{"FreeBSD", "amd64|x86_64", ".*", "freebsd-amd64"},
}

// ParseRule parses "OS_PATTERN ARCH_PATTERN VERSION_PATTERN DIR".
func ParseRule(line string) (Rule, error) {
	fields := strings.Fields(line)
	if len(fields) != 4 {
		return Rule{}, fmt.Errorf("route %q: expected 4 fields, got %d", line, len(fields))
	}
	return Rule{OSName: fields[0], OSArch: fields[1], OSVersion: fields[2], Dir: fields[3]}, nil
}

// configPath returns the path to the user's custom routes file.
func configPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".nativeload", "routes.txt"), nil
}

// LoadCustomRules reads rules from ~/.nativeload/routes.txt.
// Returns nil if the file does not exist.
func LoadCustomRules() ([]Rule, error) {
	path, err := configPath()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot open routes file: %w", err)
	}
	defer f.Close()

	var rules []Rule
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		rule, err := ParseRule(line)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		rules = append(rules, rule)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading routes file: %w", err)
	}

	return rules, nil
}

// Resolve returns the rules to register.
// Priority: CLI flag > custom file > defaults.
func Resolve(cliRules []string) ([]Rule, error) {
	if len(cliRules) > 0 {
		rules := make([]Rule, 0, len(cliRules))
		for _, s := range cliRules {
			rule, err := ParseRule(s)
			if err != nil {
				return nil, err
			}
			rules = append(rules, rule)
		}
		return rules, nil
	}

	custom, err := LoadCustomRules()
	if err != nil {
		return nil, err
	}
	if len(custom) > 0 {
		return custom, nil
	}

	return DefaultRules, nil
}

// Apply registers rules on l in order.
func Apply(l *nativelib.Loader, rules []Rule) error {
	for _, r := range rules {
		if err := l.AddRoute(r.OSName, r.OSArch, r.OSVersion, r.Dir); err != nil {
			return fmt.Errorf("route %q: %w", r.String(), err)
		}
	}
	return nil
}
