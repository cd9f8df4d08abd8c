package octconnect

import (
	"fmt"
	"strings"

	"github.com/octave-engine/octconnect/internal/octhash"
	"github.com/octave-engine/octconnect/internal/report"
	"github.com/spf13/cobra"
)

var flagHashKnown bool

func init() {
	cmd := &cobra.Command{
		Use:   "hash [name]...",
		Short: "Hash names the way the engine does and resolve asset type ids",
		RunE:  runHash,
	}
	rootCmd.AddCommand(cmd)
	cmd.Flags().BoolVar(&flagHashKnown, "known", false, "hash every known asset type name")
}

type hashRow struct {
	Name string `json:"name"`
	ID   uint32 `json:"id"`
	Hex  string `json:"hex"`
	Type string `json:"type"`
}

func runHash(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	names := args
	if flagHashKnown {
		names = append(names, octhash.KnownTypes...)
	}
	if len(names) == 0 {
		return fmt.Errorf("no names given (pass names or --known)")
	}

	table := octhash.Default()
	rows := make([]hashRow, 0, len(names))
	for _, n := range names {
		id := octhash.String(n)
		rows = append(rows, hashRow{Name: n, ID: id, Hex: fmt.Sprintf("%#08x", id), Type: table.Name(id)})
	}

	if proj.jsonOut() {
		return report.WriteJSON(out, map[string]any{
			"hashes":      rows,
			"ambiguities": table.Ambiguities(),
		}, true)
	}

	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []string{r.Name, r.Hex, fmt.Sprint(r.ID), r.Type})
	}
	if err := report.Table(out, []string{"NAME", "HEX", "ID", "TYPE"}, cells); err != nil {
		return err
	}
	for _, a := range table.Ambiguities() {
		_, _ = fmt.Fprintf(out, "ambiguous id %#08x: %s (resolves to %s)\n", a.ID, strings.Join(a.Names, ", "), a.Names[0])
	}
	return nil
}
