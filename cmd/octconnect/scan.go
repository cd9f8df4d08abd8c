package octconnect

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/octave-engine/octconnect/internal/audit"
	"github.com/octave-engine/octconnect/internal/cache"
	"github.com/octave-engine/octconnect/internal/catalog"
	"github.com/octave-engine/octconnect/internal/git"
	"github.com/octave-engine/octconnect/internal/octhash"
	"github.com/octave-engine/octconnect/internal/report"
	"github.com/octave-engine/octconnect/internal/types"
	"github.com/octave-engine/octconnect/internal/update"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	flagExclude    string
	flagAssetsOnly bool
	flagNoHistory  bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Catalog the project's assets and scripts",
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVar(&flagExclude, "exclude", "", "comma-separated exclude globs")
	cmd.Flags().BoolVar(&flagAssetsOnly, "assets-only", false, "print only the asset table")
	cmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "do not append this scan to the history log")
}

func runScan(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	jsonOut := proj.jsonOut()
	exclude := proj.exclude(flagExclude)

	if !jsonOut {
		if proj.updateCheck() {
			if latest, newer, _ := update.Check(version, false); newer && latest != "" {
				_, _ = fmt.Fprintf(os.Stderr, "(new version available: v%s)  run 'octconnect update' to upgrade\n", latest)
			}
		}
		_, _ = fmt.Fprintf(os.Stderr, "Scanning %s...\n", proj.root)
	}

	var progress func(current, total int)
	showBar := !jsonOut && isTerminal(os.Stderr)
	if showBar {
		progress = func(current, total int) {
			if current%10 == 0 || current == total {
				pct := float64(current) / float64(total) * 100
				_, _ = fmt.Fprintf(os.Stderr, "\r[%d/%d] %.0f%%", current, total, pct)
			}
		}
	}

	s, db := proj.openSession(exclude)
	cat, err := s.Rescan(progress)
	if showBar && len(cat.Assets)+len(cat.Skipped) > 0 {
		_, _ = fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		if errors.Is(err, catalog.ErrProjectNotFound) || errors.Is(err, catalog.ErrNoProjectDirs) {
			_, _ = fmt.Fprintln(os.Stderr, "warning:", err)
			os.Exit(1)
		}
		return fmt.Errorf("scan error: %w", err)
	}
	for _, derr := range cat.DirErrors {
		log.Warn().Err(derr).Msg("directory skipped")
	}
	for _, a := range octhash.Default().Ambiguities() {
		log.Warn().Str("id", fmt.Sprintf("%#08x", a.ID)).Strs("names", a.Names).Msg("asset type id is ambiguous; first name used")
	}

	// Parse every script so the property cache covers the whole project.
	keep := map[string]bool{}
	for _, rel := range cat.Scripts {
		_ = s.Properties(rel)
		if b, err := os.ReadFile(filepath.Join(proj.root, filepath.FromSlash(rel))); err == nil {
			keep[cache.ContentHash(b)] = true
		}
	}
	if db != nil {
		if n := db.Retain(keep); n > 0 {
			log.Debug().Int("dropped", n).Msg("pruned stale property cache entries")
		}
		if err := cache.Save(proj.root, db); err != nil {
			log.Warn().Err(err).Msg("could not save property cache")
		}
	}

	stamp := git.RepoMetadata(proj.root)
	if err := cache.SaveSnapshot(proj.root, cache.Snapshot{
		Root:    proj.root,
		Repo:    stamp,
		Assets:  cat.Assets,
		Scripts: cat.Scripts,
		Skipped: cat.Skipped,
	}); err != nil {
		log.Warn().Err(err).Msg("could not save catalog snapshot")
	}
	if !flagNoHistory {
		names := make([]string, 0, len(cat.Assets))
		for _, a := range cat.Assets {
			names = append(names, a.TypeName)
		}
		rec := audit.CreateScanRecord(audit.Summary{
			Root:      proj.root,
			SessionID: s.ID(),
			Commit:    stamp.Commit,
			TypeNames: names,
			Scripts:   len(cat.Scripts),
			Skipped:   len(cat.Skipped),
			Duration:  cat.Duration,
		})
		if err := audit.NewAuditLog(proj.root).LogScan(rec); err != nil {
			log.Warn().Err(err).Msg("could not record scan history")
		}
	}

	if jsonOut {
		if cat.Assets == nil {
			cat.Assets = []types.AssetCatalogEntry{}
		} // no `null` in JSON
		return report.WriteJSON(out, cat, true)
	}
	if err := report.PrintAssets(out, cat.Assets, report.PrintOptions{
		NoColor:  proj.noColor(),
		Duration: cat.Duration,
		Skipped:  len(cat.Skipped),
	}); err != nil {
		return err
	}
	if flagAssetsOnly {
		return nil
	}
	_, _ = fmt.Fprintln(out)
	return report.PrintScripts(out, cat.Scripts)
}
