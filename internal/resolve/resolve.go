// Package resolve picks a destination name for a cleaned file that does not
// clobber another file in the same directory.
package resolve

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/example/namescrub/pkg/utils"
)

// FS is the read-only filesystem surface the collision probe needs.
type FS interface {
	// Exists reports whether any directory entry is present at path.
	Exists(path string) (bool, error)
	// SameFile reports whether a and b resolve to the same location.
	SameFile(a, b string) (bool, error)
}

// OS queries the real filesystem.
type OS struct{}

// Exists uses Lstat so a dangling symlink still counts as taken.
func (OS) Exists(path string) (bool, error) {
	_, err := os.Lstat(path)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// SameFile compares absolute, symlink-resolved paths.
func (OS) SameFile(a, b string) (bool, error) {
	ra, err := resolvePath(a)
	if err != nil {
		return false, err
	}
	rb, err := resolvePath(b)
	if err != nil {
		return false, err
	}
	return ra == rb, nil
}

func resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return abs, nil
		}
		return "", err
	}
	return resolved, nil
}

// Unique returns the path originalPath should be renamed to so that its base
// name becomes cleaned. The extension of originalPath is kept. When the stem
// already equals cleaned, originalPath itself is returned and no rename is
// needed. Otherwise "cleaned(1)ext", "cleaned(2)ext", ... are probed until a
// name is found that is free or already belongs to originalPath.
func Unique(fsys FS, originalPath, cleaned string) (string, error) {
	stem, ext := utils.SplitName(filepath.Base(originalPath))
	if stem == cleaned {
		return originalPath, nil
	}

	candidate := utils.WithName(originalPath, cleaned+ext)
	for counter := 1; ; counter++ {
		taken, err := occupied(fsys, candidate, originalPath)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
		candidate = utils.WithName(originalPath, fmt.Sprintf("%s(%d)%s", cleaned, counter, ext))
	}
}

func occupied(fsys FS, candidate, originalPath string) (bool, error) {
	exists, err := fsys.Exists(candidate)
	if err != nil {
		return false, fmt.Errorf("failed to check %s: %w", candidate, err)
	}
	if !exists {
		return false, nil
	}
	same, err := fsys.SameFile(candidate, originalPath)
	if err != nil {
		return false, fmt.Errorf("failed to compare %s: %w", candidate, err)
	}
	return !same, nil
}
