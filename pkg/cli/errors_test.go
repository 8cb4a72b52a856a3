package cli

import (
	"errors"
	"strings"
	"testing"
)

func TestUsageError(t *testing.T) {
	err := NewUsageError("--format", "unknown format \"yaml\"")
	if !strings.Contains(err.Error(), "--format") {
		t.Errorf("error should name the flag: %v", err)
	}
}

func TestCommandError(t *testing.T) {
	inner := errors.New("boom")
	err := NewCommandError("validate", inner)

	if !strings.Contains(err.Error(), "validate") {
		t.Errorf("error should name the command: %v", err)
	}
	if !errors.Is(err, inner) {
		t.Error("expected unwrap to reach the inner error")
	}
}
