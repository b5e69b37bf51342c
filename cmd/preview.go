package cmd

import (
	"fmt"

	"github.com/example/namescrub/internal/sanitize"
	"github.com/example/namescrub/pkg/ui"
	"github.com/example/namescrub/pkg/utils"
	"github.com/spf13/cobra"
)

func newPreviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "preview NAME...",
		Short: "Show what file names would be cleaned to, without renaming anything",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			printer := ui.NewPrinter(cmd.OutOrStdout())
			failed := 0
			for _, name := range args {
				stem, ext := utils.SplitName(name)
				cleaned, err := sanitize.Clean(stem)
				switch {
				case err != nil:
					failed++
					printer.Error("%s: %v", name, err)
				case cleaned == stem:
					printer.Info("%s (unchanged)", name)
				default:
					printer.Success("%s -> %s", name, cleaned+ext)
				}
			}
			if failed > 0 {
				return fmt.Errorf("%d name(s) have no valid characters", failed)
			}
			return nil
		},
	}
}
