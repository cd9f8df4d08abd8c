package octconnect

import (
	"fmt"
	"path/filepath"

	"github.com/octave-engine/octconnect/internal/ignore"
	"github.com/spf13/cobra"
)

func init() {
	ignCmd := &cobra.Command{
		Use:   "ignore",
		Short: "Manage the project's " + ignore.FileName,
	}
	rootCmd.AddCommand(ignCmd)

	ignCmd.AddCommand(&cobra.Command{
		Use:   "add <pattern>...",
		Short: "Append patterns to " + ignore.FileName,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, p := range args {
				changed, err := ignore.Append(proj.root, ignore.FileName, p)
				if err != nil {
					return err
				}
				if changed {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "added", p)
				} else {
					_, _ = fmt.Fprintln(cmd.OutOrStdout(), "already present:", p)
				}
			}
			return nil
		},
	})

	ignCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "Print the active ignore patterns",
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, _ := ignore.Load(filepath.Join(proj.root, ignore.FileName))
			for _, p := range m.Patterns() {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return nil
		},
	})
}
