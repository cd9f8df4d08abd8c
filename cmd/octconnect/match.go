package octconnect

import (
	"errors"
	"fmt"
	"os"

	"github.com/octave-engine/octconnect/internal/catalog"
	"github.com/octave-engine/octconnect/internal/match"
	"github.com/octave-engine/octconnect/internal/report"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "match <objectName>...",
		Short: "Find the catalog asset each scene object name refers to",
		Long: "Blender duplicate suffixes such as .001 are ignored. An exact leaf " +
			"name wins, then a case-insensitive match, then substring matches.",
		Args: cobra.MinimumNArgs(1),
		RunE: runMatch,
	}
	rootCmd.AddCommand(cmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	assets, err := catalog.BuildAssets(catalog.Config{Root: proj.root, ExcludeGlobs: proj.exclude("")})
	if err != nil {
		if errors.Is(err, catalog.ErrProjectNotFound) {
			_, _ = fmt.Fprintln(os.Stderr, "warning:", err)
			os.Exit(1)
		}
		return err
	}

	objects := make([]match.Object, 0, len(args))
	for _, a := range args {
		objects = append(objects, match.Object{Name: a})
	}
	sum := match.All(objects, assets)

	if proj.jsonOut() {
		return report.WriteJSON(out, sum, true)
	}
	rows := make([][]string, 0, len(sum.Results))
	for _, r := range sum.Results {
		asset := r.Asset
		if asset == "" {
			asset = "-"
		}
		rows = append(rows, []string{r.Object, asset})
	}
	if err := report.Table(out, []string{"OBJECT", "ASSET"}, rows); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(out, "Matched %d, unmatched %d\n", sum.Matched, sum.Unmatched)
	return nil
}
