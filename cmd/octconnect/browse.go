package octconnect

import (
	"errors"
	"fmt"
	"os"

	"github.com/octave-engine/octconnect/internal/cache"
	"github.com/octave-engine/octconnect/internal/catalog"
	"github.com/octave-engine/octconnect/internal/tui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func init() {
	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Browse the catalog interactively",
		RunE:  runBrowse,
	}
	rootCmd.AddCommand(cmd)
}

func runBrowse(_ *cobra.Command, _ []string) error {
	if !isTerminal(os.Stdout) {
		return errors.New("browse needs an interactive terminal")
	}
	s, db := proj.openSession(proj.exclude(""))
	cat, err := s.Rescan(nil)
	if err != nil {
		if errors.Is(err, catalog.ErrProjectNotFound) || errors.Is(err, catalog.ErrNoProjectDirs) {
			_, _ = fmt.Fprintln(os.Stderr, "warning:", err)
			os.Exit(1)
		}
		return err
	}

	err = tui.Run(tui.Options{
		Catalog: cat,
		Rescan: func() (catalog.Catalog, error) {
			return s.Rescan(nil)
		},
		Properties: s.Properties,
		Prefs:      tui.LoadPrefs(),
	})
	if db != nil {
		if serr := cache.Save(proj.root, db); serr != nil {
			log.Warn().Err(serr).Msg("could not save property cache")
		}
	}
	return err
}
