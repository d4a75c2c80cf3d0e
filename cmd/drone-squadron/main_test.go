package main

import (
	"path/filepath"
	"testing"
)

func TestRun_UnknownFlag(t *testing.T) {
	if code := run([]string{"-bogus"}); code != 2 {
		t.Fatalf("expected exit code 2, got %d", code)
	}
}

func TestRun_MissingConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "absent.yaml")
	if code := run([]string{"-config", path}); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}
