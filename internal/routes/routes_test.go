package routes

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/bagtoad/nativeload/nativelib"
)

func TestResolveWithCLIRules(t *testing.T) {
	cli := []string{"Windows.* .* .* win32", "Linux.* .* .* linux64"}
	result, err := Resolve(cli)
	if err != nil {
		t.Fatal(err)
	}
	if len(result) != 2 {
		t.Fatalf("expected 2 rules, got %d", len(result))
	}
	if result[0].Dir != "win32" || result[1].OSName != "Linux.*" {
		t.Errorf("unexpected rules: %v", result)
	}
}

func TestResolveInvalidCLIRule(t *testing.T) {
	if _, err := Resolve([]string{"Linux amd64 linux64"}); err == nil {
		t.Error("expected error for a rule with 3 fields")
	}
}

func TestResolveDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	result, err := Resolve(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(result) != len(DefaultRules) {
		t.Errorf("expected %d default rules, got %d", len(DefaultRules), len(result))
	}
}

func TestLoadCustomRules(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	dir := filepath.Join(tmpHome, ".nativeload")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}

	content := "# most specific first\nLinux amd64 5\\..* linux64-legacy\n\n  Linux.*   .*  .*  linux64  \n"
	if err := os.WriteFile(filepath.Join(dir, "routes.txt"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	rules, err := LoadCustomRules()
	if err != nil {
		t.Fatal(err)
	}
	expected := []Rule{
		{"Linux", "amd64", `5\..*`, "linux64-legacy"},
		{"Linux.*", ".*", ".*", "linux64"},
	}
	if len(rules) != len(expected) {
		t.Fatalf("expected %d rules, got %d: %v", len(expected), len(rules), rules)
	}
	for i, r := range expected {
		if rules[i] != r {
			t.Errorf("rule %d: expected %v, got %v", i, r, rules[i])
		}
	}
}

func TestLoadCustomRulesBadLine(t *testing.T) {
	tmpHome := t.TempDir()
	t.Setenv("HOME", tmpHome)

	dir := filepath.Join(tmpHome, ".nativeload")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "routes.txt"), []byte("Linux linux64\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadCustomRules(); err == nil {
		t.Error("expected error for malformed line")
	}
}

func TestLoadCustomRulesNoFile(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	rules, err := LoadCustomRules()
	if err != nil {
		t.Fatal(err)
	}
	if rules != nil {
		t.Errorf("expected nil for missing file, got %v", rules)
	}
}

func TestApplyDefaultRules(t *testing.T) {
	tests := []struct {
		desc nativelib.Descriptor
		want string
	}{
		{nativelib.Descriptor{OSName: "Linux", OSArch: "amd64"}, "linux-amd64"},
		{nativelib.Descriptor{OSName: "Linux", OSArch: "aarch64"}, "linux-arm64"},
		{nativelib.Descriptor{OSName: "Darwin", OSArch: "arm64"}, "darwin-arm64"},
		{nativelib.Descriptor{OSName: "Windows", OSArch: "amd64"}, "windows-amd64"},
		{nativelib.Descriptor{OSName: "Windows 10", OSArch: "x86"}, "windows-386"},
	}
	for _, tt := range tests {
		l := nativelib.New(tt.desc)
		if err := Apply(l, DefaultRules); err != nil {
			t.Fatal(err)
		}
		dir, err := l.Resolve()
		if err != nil {
			t.Errorf("%+v: %v", tt.desc, err)
			continue
		}
		if dir != tt.want {
			t.Errorf("%+v: expected %q, got %q", tt.desc, tt.want, dir)
		}
	}
}

func TestApplyBadPattern(t *testing.T) {
	l := nativelib.New(nativelib.Descriptor{OSName: "Linux"})
	err := Apply(l, []Rule{{"(", ".*", ".*", "dir"}})
	if !errors.Is(err, nativelib.ErrPattern) {
		t.Errorf("expected pattern error, got %v", err)
	}
}
