// Package config loads namescrub settings from a JSON file.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

const fileName = "config.json"

// Interactive modes.
const (
	InteractiveAuto   = "auto"
	InteractiveAlways = "always"
	InteractiveNever  = "never"
)

// Settings holds user configuration
type Settings struct {
	Interactive  string `json:"interactive"`
	Plain        bool   `json:"plain"`
	Progress     bool   `json:"progress"`
	LogFile      string `json:"log_file,omitempty"`
	History      bool   `json:"history"`
	HistoryLimit int    `json:"history_limit"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		Interactive:  InteractiveAuto,
		History:      true,
		HistoryLimit: 500,
	}
}

// Validate rejects settings the CLI cannot act on.
func (s Settings) Validate() error {
	switch s.Interactive {
	case InteractiveAuto, InteractiveAlways, InteractiveNever:
	default:
		return fmt.Errorf("invalid interactive mode %q (want auto, always or never)", s.Interactive)
	}
	if s.HistoryLimit < 1 {
		return fmt.Errorf("history_limit must be positive, got %d", s.HistoryLimit)
	}
	return nil
}

// Dir returns ~/.config/namescrub, creating it if needed.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".config", "namescrub")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return dir, nil
}

// DefaultPath returns the config file location inside Dir.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fileName), nil
}

// Load reads settings from path. A missing file yields the defaults; empty
// fields fall back to their default values.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Default(), nil
		}
		return Default(), fmt.Errorf("failed to read config: %w", err)
	}

	s := Default()
	if err := json.Unmarshal(data, &s); err != nil {
		return Default(), fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	// Set defaults for empty fields
	if s.Interactive == "" {
		s.Interactive = InteractiveAuto
	}
	if s.HistoryLimit == 0 {
		s.HistoryLimit = Default().HistoryLimit
	}
	return s, nil
}

// Save writes s to path as indented JSON.
func Save(path string, s Settings) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
