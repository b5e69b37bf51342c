package cmd

import (
	"fmt"
	"os"

	"github.com/example/namescrub/internal/history"
	"github.com/example/namescrub/pkg/ui"
	"github.com/spf13/cobra"
)

func newHistoryCmd(a *app) *cobra.Command {
	var limit int

	open := func(cmd *cobra.Command) (*history.Store, error) {
		s, err := a.settings(cmd)
		if err != nil {
			return nil, err
		}
		return a.openHistory(s)
	}

	list := func(cmd *cobra.Command, args []string) error {
		store, err := open(cmd)
		if err != nil {
			return err
		}
		entries := store.Entries(limit)
		if len(entries) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No renames recorded.")
			return nil
		}
		for _, e := range entries {
			manual := ""
			if e.Manual {
				manual = " (manual)"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s -> %s%s\n", e.Timestamp, e.OldPath, e.NewPath, manual)
		}
		return nil
	}

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show renames made by earlier runs",
		Args:  cobra.NoArgs,
		RunE:  list,
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show (0 for all)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List recorded renames, newest first",
		Args:  cobra.NoArgs,
		RunE:  list,
	}
	listCmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of entries to show (0 for all)")

	var from string
	verifyCmd := &cobra.Command{
		Use:   "verify",
		Short: "Check that renamed files still exist with the recorded content",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var checks []history.Check
			if from != "" {
				f, err := os.Open(from)
				if err != nil {
					return fmt.Errorf("failed to open export: %w", err)
				}
				entries, err := history.Import(f)
				f.Close()
				if err != nil {
					return err
				}
				checks = history.VerifyEntries(entries)
			} else {
				store, err := open(cmd)
				if err != nil {
					return err
				}
				checks = store.Verify()
			}

			printer := ui.NewPrinter(cmd.OutOrStdout())
			bad := 0
			for _, c := range checks {
				switch c.Status {
				case history.StatusOK:
					printer.Success("%s", c.Entry.NewPath)
				case history.StatusChanged:
					bad++
					printer.Warn("%s: content changed since rename", c.Entry.NewPath)
				default:
					bad++
					if c.Err != nil {
						printer.Error("%s: %v", c.Entry.NewPath, c.Err)
					} else {
						printer.Error("%s: missing", c.Entry.NewPath)
					}
				}
			}
			if bad > 0 {
				return fmt.Errorf("%d recorded file(s) missing or changed", bad)
			}
			return nil
		},
	}

	verifyCmd.Flags().StringVar(&from, "from", "", "verify the entries of a file written by 'history export'")

	exportCmd := &cobra.Command{
		Use:   "export FILE",
		Short: "Write the history as zstd-compressed JSON",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open(cmd)
			if err != nil {
				return err
			}
			f, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("failed to create export file: %w", err)
			}
			if err := store.Export(f); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			ui.NewPrinter(cmd.OutOrStdout()).Success("Exported %d entries to %s", len(store.Entries(0)), args[0])
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete all recorded renames",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := open(cmd)
			if err != nil {
				return err
			}
			if err := store.Clear(); err != nil {
				return fmt.Errorf("failed to clear history: %w", err)
			}
			ui.NewPrinter(cmd.OutOrStdout()).Success("History cleared")
			return nil
		},
	}

	cmd.AddCommand(listCmd, verifyCmd, exportCmd, clearCmd)
	return cmd
}
