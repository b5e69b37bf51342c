package logging

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestNewRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo)
	log.Debug("hidden")
	log.Info("renamed", "from", "a!.txt", "to", "a.txt")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("Debug line should be filtered: %s", out)
	}
	if !strings.Contains(out, "from=a!.txt") || !strings.Contains(out, "to=a.txt") {
		t.Fatalf("Expected structured attributes, got: %s", out)
	}
}

func TestOpenWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "namescrub.log")
	log, closeFn, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	log.Info("to file")
	if err := closeFn(); err != nil {
		t.Fatal(err)
	}

	b, _ := os.ReadFile(path)
	if !bytes.Contains(b, []byte("level=INFO")) || !bytes.Contains(b, []byte("to file")) {
		t.Errorf("log file content: %s", string(b))
	}
}

func TestOpenWithoutFile(t *testing.T) {
	log, closeFn, err := Open("")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	log.Info("discarded")
	if err := closeFn(); err != nil {
		t.Fatal(err)
	}
}
