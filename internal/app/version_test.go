package app

import (
	"strings"
	"testing"
)

// TestHasVersionFlag tests the HasVersionFlag function.
func TestHasVersionFlag(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		args     []string
		expected bool
	}{
		{"Empty args", []string{}, false},
		{"No version flag", []string{"-max-order", "10"}, false},
		{"Long version flag", []string{"--version"}, true},
		{"Short version flag", []string{"-V"}, true},
		{"Version flag with dash", []string{"-version"}, true},
		{"Version flag in middle", []string{"-max-order", "10", "--version", "-quiet"}, true},
		{"Similar but not version", []string{"--verbose"}, false},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			result := HasVersionFlag(tc.args)
			if result != tc.expected {
				t.Errorf("HasVersionFlag(%v) = %v, want %v", tc.args, result, tc.expected)
			}
		})
	}
}

// TestBuildInfo verifies the build information string.
func TestBuildInfo(t *testing.T) {
	t.Parallel()
	info := BuildInfo()

	if !strings.Contains(info, "somoscan") {
		t.Error("BuildInfo output should contain 'somoscan'")
	}
	if !strings.Contains(info, Version) {
		t.Errorf("BuildInfo output should contain version '%s'", Version)
	}
	if !strings.Contains(info, Commit) {
		t.Errorf("BuildInfo output should contain commit '%s'", Commit)
	}
	if !strings.Contains(info, Date) {
		t.Errorf("BuildInfo output should contain build date '%s'", Date)
	}
}
