package octconnect

import (
	"fmt"
	"os"

	"github.com/octave-engine/octconnect/internal/logging"
	"github.com/spf13/cobra"
)

var (
	flagPath          string
	flagJSON          bool
	flagNoColor       bool
	flagLogLevel      string
	flagNoCache       bool
	flagNoUpdateCheck bool

	version = "0.1.0"

	// proj is resolved once per invocation before any subcommand runs.
	proj project
)

// rootCmd is the base Cobra command for the octconnect CLI.
var rootCmd = &cobra.Command{
	Use:   "octconnect",
	Short: "Catalog Octave projects and bake scene extras",
	Long: "octconnect scans an Octave engine project for assets and Lua scripts, " +
		"extracts script properties and writes the glTF extras the engine importer reads.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		proj = loadProject()
		return logging.Setup(proj.logLevel(), proj.noColor())
	},
}

// Execute runs the octconnect CLI. It should be called by the main package.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagPath, "path", "p", "", "project root (default: config project or current directory)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "emit JSON")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "disable colorized output")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug|info|warn|error (default warn)")
	rootCmd.PersistentFlags().BoolVar(&flagNoCache, "no-cache", false, "do not read or write the persistent property cache")
	rootCmd.PersistentFlags().BoolVar(&flagNoUpdateCheck, "no-update-check", false, "disable update check")
	rootCmd.Version = version
}
