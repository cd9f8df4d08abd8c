// Package report renders catalogs, property lists and scan history as
// terminal tables or JSON.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/octave-engine/octconnect/internal/audit"
	"github.com/octave-engine/octconnect/internal/octhash"
	"github.com/octave-engine/octconnect/internal/types"
	"github.com/olekukonko/tablewriter"
)

type PrintOptions struct {
	NoColor  bool
	Duration time.Duration
	Skipped  int
}

// Table writes header and rows as a bordered table.
func Table(w io.Writer, header []string, rows [][]string) error {
	table := tablewriter.NewWriter(w)
	table.Header(header)
	for _, r := range rows {
		if err := table.Append(r); err != nil {
			return err
		}
	}
	return table.Render()
}

// PrintAssets renders the asset catalog followed by a summary footer.
func PrintAssets(w io.Writer, assets []types.AssetCatalogEntry, opts PrintOptions) error {
	if len(assets) == 0 {
		fmt.Fprintln(w, "No assets found")
	} else {
		rows := make([][]string, 0, len(assets))
		for _, a := range assets {
			typeName := a.TypeName
			if !opts.NoColor {
				typeName = colorType(typeName)
			}
			rows = append(rows, []string{a.Name, typeName, a.UUIDString(), a.RelativePath})
		}
		fmt.Fprintf(w, "Assets: %d\n", len(assets))
		if err := Table(w, []string{"NAME", "TYPE", "UUID", "PATH"}, rows); err != nil {
			return err
		}
	}
	if opts.Duration > 0 || opts.Skipped > 0 {
		fmt.Fprintln(w)
		if opts.Skipped > 0 {
			fmt.Fprintf(w, "Skipped: %d unreadable asset file(s)\n", opts.Skipped)
		}
		if opts.Duration > 0 {
			fmt.Fprintf(w, "Scan duration: %.2fs\n", opts.Duration.Seconds())
		}
	}
	return nil
}

// PrintScripts renders the script catalog.
func PrintScripts(w io.Writer, scripts []string) error {
	if len(scripts) == 0 {
		fmt.Fprintln(w, "No scripts found")
		return nil
	}
	rows := make([][]string, 0, len(scripts))
	for _, s := range scripts {
		rows = append(rows, []string{s})
	}
	fmt.Fprintf(w, "Scripts: %d\n", len(scripts))
	return Table(w, []string{"SCRIPT"}, rows)
}

// PrintProperties renders a script's editable properties.
func PrintProperties(w io.Writer, script string, defs []types.ScriptPropertyDef) error {
	if len(defs) == 0 {
		fmt.Fprintf(w, "%s: no editable properties\n", script)
		return nil
	}
	rows := make([][]string, 0, len(defs))
	for _, d := range defs {
		def := "-"
		if d.Default != nil {
			def = d.Default.String()
		}
		rows = append(rows, []string{d.Name, d.Type.String(), fmt.Sprint(int(d.Type)), def})
	}
	fmt.Fprintf(w, "%s: %d properties\n", script, len(defs))
	return Table(w, []string{"NAME", "TYPE", "ID", "DEFAULT"}, rows)
}

// PrintHistory renders scan records, newest first.
func PrintHistory(w io.Writer, records []audit.ScanRecord) error {
	if len(records) == 0 {
		fmt.Fprintln(w, "No scans recorded")
		return nil
	}
	rows := make([][]string, 0, len(records))
	for i, r := range records {
		commit := r.Commit
		if len(commit) > 8 {
			commit = commit[:8]
		}
		rows = append(rows, []string{
			fmt.Sprint(i),
			r.Timestamp.Local().Format("2006-01-02 15:04:05"),
			fmt.Sprint(r.Assets),
			fmt.Sprint(r.Scripts),
			fmt.Sprint(r.Skipped),
			r.Duration,
			commit,
		})
	}
	return Table(w, []string{"#", "TIME", "ASSETS", "SCRIPTS", "SKIPPED", "DURATION", "COMMIT"}, rows)
}

// WriteJSON encodes v, indented when indent is set.
func WriteJSON(w io.Writer, v any, indent bool) error {
	enc := json.NewEncoder(w)
	if indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

func colorType(name string) string {
	switch {
	case name == octhash.Unknown:
		return "\x1b[31m" + name + "\x1b[0m" // red
	case strings.HasPrefix(name, "Material"):
		return "\x1b[35m" + name + "\x1b[0m" // magenta
	case strings.HasSuffix(name, "Mesh"):
		return "\x1b[36m" + name + "\x1b[0m" // cyan
	default:
		return name
	}
}
