package octconnect

import (
	"fmt"
	"os"

	"github.com/octave-engine/octconnect/internal/update"
	"github.com/spf13/cobra"
)

var flagUpdateCheckOnly bool

func init() {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update octconnect to the latest release",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if flagUpdateCheckOnly {
				latest, newer, err := update.Check(version, false)
				if err != nil {
					return err
				}
				if newer {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "v%s available (running v%s)\n", latest, version)
				} else {
					_, _ = fmt.Fprintf(cmd.OutOrStdout(), "up to date (v%s)\n", version)
				}
				return nil
			}
			if err := selfUpdate(); err != nil {
				return fmt.Errorf("self update: %w", err)
			}
			_, _ = fmt.Fprintln(os.Stderr, "updated to latest; re-run command")
			return nil
		},
	}
	cmd.Flags().BoolVar(&flagUpdateCheckOnly, "check", false, "only report whether a newer release exists")
	rootCmd.AddCommand(cmd)
}
