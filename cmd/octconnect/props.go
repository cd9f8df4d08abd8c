package octconnect

import (
	"fmt"

	"github.com/octave-engine/octconnect/internal/report"
	"github.com/octave-engine/octconnect/internal/types"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "props <script.lua>...",
		Short: "Show the editable properties a script declares",
		Long: "Paths are relative to the project root unless absolute. Properties " +
			"are read from GatherProperties and defaults from Create.",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: completeExt("lua"),
		RunE:              runProps,
	}
	rootCmd.AddCommand(cmd)
}

type scriptProps struct {
	Script     string                    `json:"script"`
	Properties []types.ScriptPropertyDef `json:"properties"`
}

func runProps(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	s, _ := proj.openSession("")

	results := make([]scriptProps, 0, len(args))
	for _, a := range args {
		defs := s.Properties(a)
		if defs == nil {
			defs = []types.ScriptPropertyDef{}
		}
		results = append(results, scriptProps{Script: a, Properties: defs})
	}

	if proj.jsonOut() {
		return report.WriteJSON(out, results, true)
	}
	for i, r := range results {
		if i > 0 {
			_, _ = fmt.Fprintln(out)
		}
		if err := report.PrintProperties(out, r.Script, r.Properties); err != nil {
			return err
		}
	}
	return nil
}
