package version

import (
	"runtime/debug"
	"testing"
)

func TestFromSettings(t *testing.T) {
	settings := []debug.BuildSetting{
		{Key: "vcs.revision", Value: "0123456789abcdef"},
		{Key: "vcs.time", Value: "2026-10-01T12:00:00Z"},
		{Key: "vcs.modified", Value: "true"},
	}

	tests := []struct {
		name     string
		info     Info
		expected string
	}{
		{
			name:     "embedded settings fill unset values",
			info:     Info{Commit: "unknown", BuildTime: "unknown"},
			expected: "rhom dev (commit: 0123456-dirty, built: 2026-10-01T12:00:00Z)",
		},
		{
			name:     "ldflags values win",
			info:     Info{Commit: "fedcba9876", BuildTime: "today"},
			expected: "rhom dev (commit: fedcba9-dirty, built: today)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fromSettings(tt.info, settings).String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestInfoString_ShortCommit(t *testing.T) {
	got := Info{Commit: "abc", BuildTime: "unknown"}.String()
	if got != "rhom dev (commit: abc, built: unknown)" {
		t.Errorf("String() = %q", got)
	}
}
