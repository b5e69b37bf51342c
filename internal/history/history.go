// Package history keeps a JSON log of completed renames with a BLAKE3
// fingerprint of each file, so a later run can check that the renamed
// files are still where the log says.
package history

import (
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/blake3"
)

const fileName = "history.json"

// Entry represents a single rename record
type Entry struct {
	ID        string `json:"id"`
	OldPath   string `json:"old_path"`
	NewPath   string `json:"new_path"`
	Size      int64  `json:"size"`
	Digest    string `json:"blake3"`
	Manual    bool   `json:"manual,omitempty"`
	Timestamp string `json:"timestamp"`
}

// Store is the on-disk rename log, newest entry first.
type Store struct {
	mu      sync.RWMutex
	path    string
	limit   int
	entries []Entry
}

// Open loads the log kept in dir. A missing or unreadable log starts empty.
func Open(dir string, limit int) (*Store, error) {
	s := &Store{path: filepath.Join(dir, fileName), limit: limit}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	if err := json.Unmarshal(data, &s.entries); err != nil {
		return nil, fmt.Errorf("failed to parse history %s: %w", s.path, err)
	}
	return s, nil
}

// Record fingerprints the file now at newPath and prepends an entry.
func (s *Store) Record(oldPath, newPath string, manual bool) (Entry, error) {
	digest, size, err := Digest(newPath)
	if err != nil {
		return Entry{}, err
	}

	entry := Entry{
		ID:        uuid.NewString(),
		OldPath:   absOrSame(oldPath),
		NewPath:   absOrSame(newPath),
		Size:      size,
		Digest:    digest,
		Manual:    manual,
		Timestamp: time.Now().Format(time.RFC3339),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = append([]Entry{entry}, s.entries...)
	if s.limit > 0 && len(s.entries) > s.limit {
		s.entries = s.entries[:s.limit]
	}
	return entry, s.save()
}

// Entries returns up to n entries, newest first. n <= 0 returns all.
func (s *Store) Entries(n int) []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || n > len(s.entries) {
		n = len(s.entries)
	}
	out := make([]Entry, n)
	copy(out, s.entries[:n])
	return out
}

// Clear drops every entry.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	return s.save()
}

func (s *Store) save() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	return os.WriteFile(s.path, data, 0644)
}

// Status of a verified entry.
type Status string

const (
	StatusOK      Status = "ok"
	StatusMissing Status = "missing"
	StatusChanged Status = "changed"
)

// Check is the verification result for one entry.
type Check struct {
	Entry  Entry
	Status Status
	Err    error
}

// Verify re-hashes the file at every entry's new path.
func (s *Store) Verify() []Check {
	return VerifyEntries(s.Entries(0))
}

// VerifyEntries re-hashes the file at each entry's new path, e.g. for
// entries read back with Import.
func VerifyEntries(entries []Entry) []Check {
	checks := make([]Check, 0, len(entries))
	for _, e := range entries {
		c := Check{Entry: e, Status: StatusOK}
		digest, _, err := Digest(e.NewPath)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			c.Status = StatusMissing
		case err != nil:
			c.Status = StatusMissing
			c.Err = err
		case digest != e.Digest:
			c.Status = StatusChanged
		}
		checks = append(checks, c)
	}
	return checks
}

// Export writes every entry to w as zstd-compressed JSON.
func (s *Store) Export(w io.Writer) error {
	enc, err := zstd.NewWriter(w)
	if err != nil {
		return fmt.Errorf("failed to create zstd writer: %w", err)
	}
	if err := json.NewEncoder(enc).Encode(s.Entries(0)); err != nil {
		enc.Close()
		return fmt.Errorf("failed to encode history: %w", err)
	}
	return enc.Close()
}

// Import reads entries produced by Export.
func Import(r io.Reader) ([]Entry, error) {
	dec, err := zstd.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd reader: %w", err)
	}
	defer dec.Close()

	var entries []Entry
	if err := json.NewDecoder(dec).Decode(&entries); err != nil {
		return nil, fmt.Errorf("failed to decode history: %w", err)
	}
	return entries, nil
}

// Digest returns the hex BLAKE3 sum and size of the file at path.
func Digest(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	hasher := blake3.New()
	n, err := io.Copy(hasher, f)
	if err != nil {
		return "", 0, fmt.Errorf("failed to hash %s: %w", path, err)
	}
	return hex.EncodeToString(hasher.Sum(nil)), n, nil
}

func absOrSame(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	return abs
}
