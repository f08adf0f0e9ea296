package logger

import (
	"testing"

	"go.uber.org/zap"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		name, mode string
		want       string
	}{
		{"", "debug", "debug"},
		{"", "release", "info"},
		{"warn", "debug", "warn"},
		{"ERROR", "release", "error"},
		{"nonsense", "debug", "info"},
	}
	for _, tc := range cases {
		if got := ParseLevel(tc.name, tc.mode).String(); got != tc.want {
			t.Fatalf("ParseLevel(%q, %q) = %s, want %s", tc.name, tc.mode, got, tc.want)
		}
	}
}

func TestSetLevel(t *testing.T) {
	defer SetLevel("info", "")

	SetLevel("error", "debug")
	if Level() != zap.ErrorLevel {
		t.Fatalf("expected error level, got %s", Level())
	}
}
