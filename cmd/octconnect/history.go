package octconnect

import (
	"fmt"

	"github.com/octave-engine/octconnect/internal/audit"
	"github.com/octave-engine/octconnect/internal/report"
	"github.com/spf13/cobra"
)

var (
	flagHistoryLimit  int
	flagHistoryDelete int
)

func init() {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded scans, newest first",
		RunE:  runHistory,
	}
	rootCmd.AddCommand(cmd)
	cmd.Flags().IntVarP(&flagHistoryLimit, "limit", "n", 20, "show at most this many records (0 = all)")
	cmd.Flags().IntVar(&flagHistoryDelete, "delete", -1, "delete the record with this index")
}

func runHistory(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	audits := audit.NewAuditLog(proj.root)

	if flagHistoryDelete >= 0 {
		if err := audits.DeleteRecord(flagHistoryDelete); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(out, "Deleted record %d\n", flagHistoryDelete)
		return nil
	}

	records, err := audits.LoadHistory()
	if err != nil {
		return err
	}
	if flagHistoryLimit > 0 && len(records) > flagHistoryLimit {
		records = records[:flagHistoryLimit]
	}
	if proj.jsonOut() {
		if records == nil {
			records = []audit.ScanRecord{}
		}
		return report.WriteJSON(out, records, true)
	}
	return report.PrintHistory(out, records)
}
