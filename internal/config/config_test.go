package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s != Default() {
		t.Fatalf("Expected defaults, got %+v", s)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.json")
	want := Settings{Interactive: InteractiveNever, Plain: true, Progress: true, LogFile: "/tmp/ns.log", History: false, HistoryLimit: 10}

	if err := Save(path, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got != want {
		t.Fatalf("Expected %+v, got %+v", want, got)
	}
}

func TestLoadFillsEmptyFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"interactive": "", "progress": true}`), 0644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Interactive != InteractiveAuto || s.HistoryLimit != 500 || !s.History || !s.Progress {
		t.Fatalf("Unexpected settings: %+v", s)
	}
}

func TestLoadInvalidJSONFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}
	s, err := Load(path)
	if s != Default() {
		t.Fatalf("Expected defaults for a corrupt file, got %+v", s)
	}
	// The error is still returned so callers can report the broken file.
	if err == nil {
		t.Fatal("Expected parse error alongside the defaults")
	}
}

func TestValidate(t *testing.T) {
	if err := Default().Validate(); err != nil {
		t.Fatalf("Defaults should validate: %v", err)
	}
	s := Default()
	s.Interactive = "sometimes"
	if err := s.Validate(); err == nil {
		t.Fatal("Expected invalid interactive mode to fail")
	}
	s = Default()
	s.HistoryLimit = -1
	if err := s.Validate(); err == nil {
		t.Fatal("Expected negative history limit to fail")
	}
}
