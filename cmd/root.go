package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/example/namescrub/internal/config"
	"github.com/example/namescrub/internal/history"
	"github.com/example/namescrub/internal/logging"
	"github.com/example/namescrub/internal/prompt"
	"github.com/example/namescrub/internal/rename"
	localUI "github.com/example/namescrub/internal/ui"
	"github.com/example/namescrub/pkg/ui"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// version is set at build time via -ldflags.
var version = "dev"

var (
	errUsage  = errors.New("usage error")
	errFailed = errors.New("some files could not be renamed")
)

// session is everything an interactive run may ask the user.
type session interface {
	rename.ManualPrompter
	ChooseMode() (string, error)
	AskFolder() (string, error)
	AskFiles() ([]string, error)
}

type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	configPath  string
	folder      string
	interactive string
	logFile     string
	plain       bool
	progress    bool
	noHistory   bool
}

func newRootCmd(in io.Reader, out, errOut io.Writer) *cobra.Command {
	a := &app{in: in, out: out, errOut: errOut}

	cmd := &cobra.Command{
		Use:   "namescrub [file...]",
		Short: "Clean up file names so they only use letters, digits and spaces",
		Long: `namescrub replaces every character outside A-Z, a-z and 0-9 in a file's name
(not its extension) with a space, trims the result and renames the file.
If the cleaned name is taken, (1), (2), ... is appended.

Pass files as arguments, or a folder with --folder (not recursive).
With neither, namescrub asks what to rename.`,
		Args:          cobra.ArbitraryArgs,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          a.runRename,
	}
	cmd.CompletionOptions.DisableDefaultCmd = true
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return fmt.Errorf("%w: %w", err, errUsage)
	})

	f := cmd.Flags()
	f.StringVar(&a.folder, "folder", "", "process all files in a folder (non-recursive)")
	f.StringVar(&a.interactive, "interactive", "", "ask for a new name when nothing valid is left: auto, always or never")
	f.BoolVar(&a.plain, "plain", false, "use plain line prompts instead of the full-screen prompts")
	f.BoolVar(&a.progress, "progress", false, "show a progress bar while renaming")
	f.StringVar(&a.logFile, "log-file", "", "append a structured log of every rename to this file")
	f.BoolVar(&a.noHistory, "no-history", false, "do not record renames in the history")
	cmd.PersistentFlags().StringVar(&a.configPath, "config", "", "config file; the history is kept in the same folder (default ~/.config/namescrub/config.json)")

	cmd.AddCommand(newPreviewCmd(), newHistoryCmd(a), newConfigCmd(a))
	return cmd
}

// Execute runs the CLI against the process streams and exits.
func Execute() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	cmd := newRootCmd(in, out, errOut)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(ctx); err != nil {
		ui.NewPrinter(errOut).Error("%v", err)
		return exitCode(err)
	}
	return 0
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, errUsage):
		return 2
	default:
		return 1
	}
}

func (a *app) settings(cmd *cobra.Command) (config.Settings, error) {
	s := config.Default()
	if path, err := a.settingsPath(); err == nil {
		loaded, err := config.Load(path)
		if err != nil {
			ui.NewPrinter(cmd.OutOrStdout()).Warn("Using default settings: %v", err)
			loaded = config.Default()
		}
		s = loaded
	}

	f := cmd.Flags()
	if f.Changed("interactive") {
		s.Interactive = a.interactive
	}
	if f.Changed("plain") {
		s.Plain = a.plain
	}
	if f.Changed("progress") {
		s.Progress = a.progress
	}
	if f.Changed("log-file") {
		s.LogFile = a.logFile
	}
	if a.noHistory {
		s.History = false
	}
	if err := s.Validate(); err != nil {
		return s, fmt.Errorf("%w: %w", err, errUsage)
	}
	return s, nil
}

func (a *app) settingsPath() (string, error) {
	if a.configPath != "" {
		return a.configPath, nil
	}
	return config.DefaultPath()
}

func (a *app) runRename(cmd *cobra.Command, args []string) error {
	if a.folder != "" && len(args) > 0 {
		return fmt.Errorf("use either file inputs or --folder, not both: %w", errUsage)
	}

	s, err := a.settings(cmd)
	if err != nil {
		return err
	}

	log, closeLog, err := logging.Open(s.LogFile)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer closeLog()

	printer := ui.NewPrinter(a.out)
	sess := a.session(s, func() {
		if printer.BeforeWrite != nil {
			printer.BeforeWrite()
		}
	})

	opts := rename.Options{
		Reporter: printer,
		Logger:   log,
	}
	if sess != nil {
		opts.Prompter = sess
	}
	if s.History {
		if store, err := a.openHistory(s); err != nil {
			printer.Warn("History disabled: %v", err)
		} else {
			opts.History = store
		}
	}
	if s.Progress {
		opts.NewProgress = progressFactory(printer, a.errOut)
	}
	renamer := rename.New(opts)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var stats rename.Stats
	switch {
	case a.folder != "":
		stats, err = renamer.ProcessFolder(ctx, a.folder)
	case len(args) > 0:
		stats, err = renamer.ProcessFiles(ctx, args)
	case sess != nil:
		stats, err = a.runInteractive(ctx, renamer, sess, printer)
	default:
		return fmt.Errorf("no files given; pass file paths or --folder: %w", errUsage)
	}
	if err != nil {
		return err
	}
	if stats.Errors > 0 {
		return errFailed
	}
	return nil
}

// runInteractive asks for a mode and the paths to work on.
func (a *app) runInteractive(ctx context.Context, r *rename.Renamer, sess session, printer *ui.Printer) (rename.Stats, error) {
	printer.Banner()
	mode, err := sess.ChooseMode()
	if err != nil {
		return rename.Stats{}, err
	}

	switch mode {
	case localUI.ModeFolder:
		dir, err := sess.AskFolder()
		if err != nil {
			return rename.Stats{}, err
		}
		return r.ProcessFolder(ctx, dir)
	case localUI.ModeFiles:
		files, err := sess.AskFiles()
		if err != nil {
			return rename.Stats{}, err
		}
		return r.ProcessFiles(ctx, files)
	default:
		printer.Error("Invalid mode. Use 'files' or 'folder'.")
		return rename.Stats{}, fmt.Errorf("invalid mode %q: %w", mode, errUsage)
	}
}

// session picks the prompter for this run, or nil when prompting is off.
// beforePrompt runs ahead of every question so a progress bar can be cleared.
func (a *app) session(s config.Settings, beforePrompt func()) session {
	tty := isTerminal(a.in)
	switch s.Interactive {
	case config.InteractiveNever:
		return nil
	case config.InteractiveAuto:
		if !tty {
			return nil
		}
	}
	if s.Plain || !tty {
		l := prompt.NewLine(a.in, a.out)
		l.BeforePrompt = beforePrompt
		return l
	}
	t := localUI.NewTUI(tea.WithInput(a.in), tea.WithOutput(a.out))
	t.BeforePrompt = beforePrompt
	return t
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// openHistory keeps the history next to the config file in use.
func (a *app) openHistory(s config.Settings) (*history.Store, error) {
	if a.configPath == "" {
		dir, err := config.Dir()
		if err != nil {
			return nil, err
		}
		return history.Open(dir, s.HistoryLimit)
	}
	dir := filepath.Dir(a.configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return history.Open(dir, s.HistoryLimit)
}

func progressFactory(printer *ui.Printer, w io.Writer) func(int, string) rename.Progress {
	return func(total int, desc string) rename.Progress {
		bar := progressbar.NewOptions(total,
			progressbar.OptionSetWriter(w),
			progressbar.OptionSetDescription(desc),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		printer.BeforeWrite = func() { _ = bar.Clear() }
		return bar
	}
}
