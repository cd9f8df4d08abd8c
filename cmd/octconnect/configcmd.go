package octconnect

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/octave-engine/octconnect/internal/cache"
	"github.com/octave-engine/octconnect/internal/config"
	"github.com/octave-engine/octconnect/internal/ignore"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var (
	cfgOutput string
	cfgForce  bool
	cfgGlobal bool
	cfgGitDir bool
)

func init() {
	cfgCmd := &cobra.Command{Use: "config", Short: "Configuration helpers"}
	rootCmd.AddCommand(cfgCmd)

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Write a commented .octconnect.yml",
		RunE:  runConfigInit,
	}
	cfgCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&cfgOutput, "output", "", "output file path (default <project>/.octconnect.yml)")
	initCmd.Flags().BoolVar(&cfgForce, "force", false, "overwrite an existing file")
	initCmd.Flags().BoolVar(&cfgGlobal, "global", false, "write the global config instead")
	initCmd.Flags().BoolVar(&cfgGitDir, "gitignore", false, "also add the "+cache.Dir+"/ state directory to the project's .gitignore")

	showCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the merged configuration in effect",
		RunE:  runConfigShow,
	}
	cfgCmd.AddCommand(showCmd)
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	out := cfgOutput
	switch {
	case out != "":
	case cfgGlobal:
		out = config.GlobalPath()
		if out == "" {
			return fmt.Errorf("no config directory available")
		}
	default:
		out = filepath.Join(proj.root, config.LocalNames[0])
	}
	if _, err := os.Stat(out); err == nil && !cfgForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", out)
	}
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(out, []byte(config.Template), 0o644); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Wrote", out)
	if cfgGitDir {
		changed, err := ignore.Append(proj.root, ".gitignore", cache.Dir+"/")
		if err != nil {
			return err
		}
		if changed {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Added", cache.Dir+"/", "to .gitignore")
		}
	}
	return nil
}

// effectiveConfig is what `config show` prints.
type effectiveConfig struct {
	Project     string `yaml:"project"`
	Exclude     string `yaml:"exclude"`
	LogLevel    string `yaml:"log_level"`
	NoColor     bool   `yaml:"no_color"`
	NoCache     bool   `yaml:"no_cache"`
	JSON        bool   `yaml:"json"`
	UpdateCheck bool   `yaml:"update_check"`
	BakeOutput  string `yaml:"bake_output"`
	BakeIndent  bool   `yaml:"bake_indent"`
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	bc := proj.local.GetBakeConfig()
	b, err := yaml.Marshal(effectiveConfig{
		Project:     proj.root,
		Exclude:     proj.exclude(""),
		LogLevel:    proj.logLevel(),
		NoColor:     proj.noColor(),
		NoCache:     proj.noCache(),
		JSON:        proj.jsonOut(),
		UpdateCheck: proj.updateCheck(),
		BakeOutput:  bc.GetOutput(),
		BakeIndent:  bc.IndentEnabled(),
	})
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(b)
	return err
}
