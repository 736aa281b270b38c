package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "flap.log")

	logger, closeFn, err := New(Options{Prefix: "flap", Level: "debug", File: path})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}

	logger.Debug("run started", "run", 1)
	if err := closeFn(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "run started") || !strings.Contains(out, "flap") {
		t.Errorf("log file missing entry: %q", out)
	}
}

func TestNewLevel(t *testing.T) {
	logger, closeFn, err := New(Options{Level: "warn"})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer closeFn()

	if logger.GetLevel() != log.WarnLevel {
		t.Errorf("level = %v, expected warn", logger.GetLevel())
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, _, err := New(Options{Level: "loud"}); err == nil {
		t.Error("New() should reject an unknown level")
	}
}

func TestNewDefaultsToInfo(t *testing.T) {
	logger, closeFn, err := New(Options{})
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	defer closeFn()

	if logger.GetLevel() != log.InfoLevel {
		t.Errorf("level = %v, expected info", logger.GetLevel())
	}
}
