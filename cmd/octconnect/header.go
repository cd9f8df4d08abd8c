package octconnect

import (
	"fmt"
	"path/filepath"

	"github.com/octave-engine/octconnect/internal/header"
	"github.com/octave-engine/octconnect/internal/octhash"
	"github.com/octave-engine/octconnect/internal/report"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "header <file.oct>...",
		Short: "Decode asset file headers",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runHeader,
	}
	rootCmd.AddCommand(cmd)
}

type headerRow struct {
	File     string `json:"file"`
	Version  uint32 `json:"version"`
	TypeID   uint32 `json:"type_id"`
	Type     string `json:"type"`
	Embedded bool   `json:"embedded"`
	UUID     uint64 `json:"uuid,string"`
	Error    string `json:"error,omitempty"`
}

func runHeader(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	rows := make([]headerRow, 0, len(args))
	failed := 0
	for _, a := range args {
		p := a
		if !filepath.IsAbs(p) {
			p = filepath.Join(proj.root, p)
		}
		h, err := header.ReadFile(p)
		if err != nil {
			log.Debug().Err(err).Str("file", a).Msg("header unreadable")
			rows = append(rows, headerRow{File: a, Error: err.Error()})
			failed++
			continue
		}
		rows = append(rows, headerRow{
			File:     a,
			Version:  h.Version,
			TypeID:   h.TypeID,
			Type:     octhash.TypeName(h.TypeID),
			Embedded: h.Embedded != 0,
			UUID:     h.UUID,
		})
	}

	if proj.jsonOut() {
		if err := report.WriteJSON(out, rows, true); err != nil {
			return err
		}
	} else {
		cells := make([][]string, 0, len(rows))
		for _, r := range rows {
			if r.Error != "" {
				cells = append(cells, []string{r.File, "-", "-", "error: " + r.Error, "-"})
				continue
			}
			cells = append(cells, []string{r.File, fmt.Sprint(r.Version), fmt.Sprintf("%#08x", r.TypeID), r.Type, fmt.Sprint(r.UUID)})
		}
		if err := report.Table(out, []string{"FILE", "VERSION", "TYPE ID", "TYPE", "UUID"}, cells); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d file(s) could not be decoded", failed, len(args))
	}
	return nil
}
