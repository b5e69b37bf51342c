// Package rename applies name cleanup to files on disk, one at a time.
//
// A Renamer checks each path, cleans its base name, asks the user for a
// replacement when nothing valid is left (if a prompter is configured),
// resolves collisions against the directory as it is at that moment, and
// performs the rename. Batch drivers count outcomes and keep going when a
// single item fails.
package rename

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/example/namescrub/internal/history"
	"github.com/example/namescrub/internal/resolve"
	"github.com/example/namescrub/internal/sanitize"
	"github.com/example/namescrub/pkg/utils"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrNotAFile      = errors.New("not a file")
	ErrNotADirectory = errors.New("not a folder")
)

// Outcome of a single RenameFile call.
type Outcome int

const (
	Unchanged Outcome = iota
	Renamed
	Skipped
)

func (o Outcome) String() string {
	switch o {
	case Renamed:
		return "renamed"
	case Skipped:
		return "skipped"
	default:
		return "unchanged"
	}
}

// Stats counts outcomes over a batch.
type Stats struct {
	Renamed   int
	Unchanged int
	Skipped   int
	Errors    int
}

func (s Stats) String() string {
	out := fmt.Sprintf("renamed=%d, unchanged=%d, errors=%d", s.Renamed, s.Unchanged, s.Errors)
	if s.Skipped > 0 {
		out += fmt.Sprintf(", skipped=%d", s.Skipped)
	}
	return out
}

func (s *Stats) add(o Outcome) {
	switch o {
	case Renamed:
		s.Renamed++
	case Skipped:
		s.Skipped++
	default:
		s.Unchanged++
	}
}

// ManualPrompter asks the user for a replacement name when cleanup leaves
// nothing usable. An error wrapping context.Canceled stops the whole batch.
type ManualPrompter interface {
	ConfirmManual(file string) (bool, error)
	AskName(file string) (string, error)
}

// Reporter receives console messages.
type Reporter interface {
	Info(format string, a ...interface{})
	Success(format string, a ...interface{})
	Warn(format string, a ...interface{})
	Error(format string, a ...interface{})
}

// Recorder stores completed renames.
type Recorder interface {
	Record(oldPath, newPath string, manual bool) (history.Entry, error)
}

// Progress is advanced once per processed file.
type Progress interface {
	Add(n int) error
	Finish() error
}

// Options configures a Renamer. Only Reporter is required.
type Options struct {
	FS       resolve.FS
	Reporter Reporter
	Prompter ManualPrompter
	Logger   *slog.Logger
	History  Recorder

	// NewProgress, when set, is called at the start of each batch.
	NewProgress func(total int, description string) Progress
}

// Renamer renames files according to the cleanup rules.
type Renamer struct {
	fs          resolve.FS
	out         Reporter
	prompter    ManualPrompter
	log         *slog.Logger
	history     Recorder
	newProgress func(int, string) Progress
}

// New creates a Renamer from opts.
func New(opts Options) *Renamer {
	r := &Renamer{
		fs:          opts.FS,
		out:         opts.Reporter,
		prompter:    opts.Prompter,
		log:         opts.Logger,
		history:     opts.History,
		newProgress: opts.NewProgress,
	}
	if r.fs == nil {
		r.fs = resolve.OS{}
	}
	if r.log == nil {
		r.log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return r
}

// RenameFile cleans the base name of the file at path and renames it.
func (r *Renamer) RenameFile(ctx context.Context, path string) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return Unchanged, err
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Unchanged, fmt.Errorf("file %w: %s", ErrNotFound, path)
		}
		return Unchanged, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return Unchanged, fmt.Errorf("%w: %s", ErrNotAFile, path)
	}

	stem, _ := utils.SplitName(filepath.Base(path))
	manual := false
	cleaned, err := sanitize.Clean(stem)
	if err != nil {
		if !errors.Is(err, sanitize.ErrNoValidCharacters) || r.prompter == nil {
			return Unchanged, err
		}
		cleaned, err = r.askManual(path)
		if err != nil {
			return Unchanged, err
		}
		if cleaned == "" {
			r.log.Info("skipped", "path", path)
			return Skipped, nil
		}
		manual = true
	}

	target, err := resolve.Unique(r.fs, path, cleaned)
	if err != nil {
		return Unchanged, err
	}
	if target == path {
		if manual {
			r.out.Info("No rename needed.")
		}
		r.log.Debug("unchanged", "path", path)
		return Unchanged, nil
	}

	if err := os.Rename(path, target); err != nil {
		return Unchanged, fmt.Errorf("failed to rename: %w", err)
	}
	r.out.Success("Renamed: %s -> %s", filepath.Base(path), filepath.Base(target))
	r.log.Info("renamed", "from", path, "to", target, "manual", manual)

	if r.history != nil {
		if _, err := r.history.Record(path, target, manual); err != nil {
			r.out.Warn("Could not record history for %s: %v", filepath.Base(target), err)
			r.log.Warn("history record failed", "path", target, "err", err)
		}
	}
	return Renamed, nil
}

// askManual runs the manual rename conversation. An empty name with a nil
// error means the user declined.
func (r *Renamer) askManual(path string) (string, error) {
	name := filepath.Base(path)
	r.out.Error("Error for '%s': %v", name, sanitize.ErrNoValidCharacters)

	ok, err := r.prompter.ConfirmManual(name)
	if err != nil {
		return "", err
	}
	if !ok {
		r.out.Warn("Skipped '%s' without renaming.", name)
		return "", nil
	}

	for {
		input, err := r.prompter.AskName(name)
		if err != nil {
			return "", err
		}
		cleaned, err := sanitize.ValidateManual(input)
		if err == nil {
			return cleaned, nil
		}
		r.out.Error("%v", err)
	}
}

// ProcessFolder renames every regular file directly inside dir. A missing
// dir or a dir that is not a folder is returned as an error; failures on
// individual files are counted in Stats and reported.
func (r *Renamer) ProcessFolder(ctx context.Context, dir string) (Stats, error) {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Stats{}, fmt.Errorf("folder %w: %s", ErrNotFound, dir)
		}
		return Stats{}, fmt.Errorf("failed to stat %s: %w", dir, err)
	}
	if !info.IsDir() {
		return Stats{}, fmt.Errorf("%w: %s", ErrNotADirectory, dir)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to list %s: %w", dir, err)
	}

	var files []string
	subfolders := false
	for _, e := range entries {
		p := filepath.Join(dir, e.Name())
		st, err := os.Stat(p)
		if err != nil {
			r.log.Debug("ignoring entry", "path", p, "err", err)
			continue
		}
		switch {
		case st.IsDir():
			subfolders = true
		case st.Mode().IsRegular():
			files = append(files, p)
		}
	}
	if subfolders {
		r.out.Warn("subfolder and the content inside cannot be renamed")
	}

	stats, err := r.run(ctx, files, "renaming", filepath.Base)
	r.out.Info("Folder processing complete: %s", stats)
	return stats, err
}

// ProcessFiles renames each of paths, which may live in different folders.
func (r *Renamer) ProcessFiles(ctx context.Context, paths []string) (Stats, error) {
	stats, err := r.run(ctx, paths, "renaming", func(p string) string { return p })
	r.out.Info("File processing complete: %s", stats)
	return stats, err
}

func (r *Renamer) run(ctx context.Context, paths []string, desc string, label func(string) string) (Stats, error) {
	var stats Stats

	var bar Progress
	if r.newProgress != nil && len(paths) > 0 {
		bar = r.newProgress(len(paths), desc)
		defer bar.Finish()
	}

	for i, p := range paths {
		if err := ctx.Err(); err != nil {
			r.out.Warn("Interrupted: %d file(s) not processed", len(paths)-i)
			return stats, err
		}

		outcome, err := r.RenameFile(ctx, p)
		if errors.Is(err, context.Canceled) {
			r.out.Warn("Interrupted: %d file(s) not processed", len(paths)-i)
			r.log.Warn("batch interrupted", "path", p, "err", err)
			return stats, err
		}
		if err != nil {
			stats.Errors++
			r.out.Error("Error for '%s': %v", label(p), err)
			r.log.Error("rename failed", "path", p, "err", err)
		} else {
			stats.add(outcome)
		}

		if bar != nil {
			_ = bar.Add(1)
		}
	}
	return stats, nil
}
