package utils

import (
	"path/filepath"
	"strings"
)

// SplitName splits a file name into its stem and extension.
// The extension starts at the last '.' only when that dot is neither the
// first nor the last character, so ".bashrc" and "notes." have no extension
// and "backup.tar.gz" yields ".gz".
func SplitName(name string) (stem, ext string) {
	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return name, ""
	}
	return name[:i], name[i:]
}

// WithName returns path with its final element replaced by name.
func WithName(path, name string) string {
	return filepath.Join(filepath.Dir(path), name)
}
