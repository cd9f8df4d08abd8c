package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileConfig is the on-disk YAML configuration shape. Pointer fields tell
// "unset" apart from a zero value so layers can be merged.
type FileConfig struct {
	Project  *string `yaml:"project"`
	Exclude  *string `yaml:"exclude"`
	LogLevel *string `yaml:"log_level"`
	NoColor  *bool   `yaml:"no_color"`
	NoCache  *bool   `yaml:"no_cache"`
	JSON     *bool   `yaml:"json"`
	// UpdateCheck enables the background release check. Defaults to true.
	UpdateCheck *bool `yaml:"update_check"`

	Bake *BakeConfig `yaml:"bake"`
}

// BakeConfig holds defaults for the bake command.
type BakeConfig struct {
	// Output is the file extras are written to; empty means stdout.
	Output *string `yaml:"output"`
	// Indent pretty-prints the output JSON. Defaults to true.
	Indent *bool `yaml:"indent"`
}

// LoadFile reads a YAML config file from the provided path.
func LoadFile(path string) (FileConfig, error) {
	var cfg FileConfig
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// LocalNames are the project config file names, in search order.
var LocalNames = []string{".octconnect.yml", ".octconnect.yaml", "octconnect.yml", "octconnect.yaml"}

// LoadLocal searches for a project config file in root.
func LoadLocal(root string) (FileConfig, error) {
	var cfg FileConfig
	for _, name := range LocalNames {
		p := filepath.Join(root, name)
		if _, err := os.Stat(p); err == nil {
			return LoadFile(p)
		}
	}
	return cfg, errors.New("no local config")
}

// GlobalPath returns the global config location under XDG_CONFIG_HOME or
// ~/.config, or "" when neither can be determined.
func GlobalPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, _ := os.UserHomeDir()
		if home != "" {
			base = filepath.Join(home, ".config")
		}
	}
	if base == "" {
		return ""
	}
	return filepath.Join(base, "octconnect", "config.yml")
}

// LoadGlobal loads the global config file.
func LoadGlobal() (FileConfig, error) {
	var cfg FileConfig
	p := GlobalPath()
	if p == "" {
		return cfg, errors.New("no config dir")
	}
	if _, err := os.Stat(p); err == nil {
		return LoadFile(p)
	}
	return cfg, errors.New("no global config")
}

// UpdateCheckEnabled reports whether the release check should run.
func (fc FileConfig) UpdateCheckEnabled() bool {
	if fc.UpdateCheck == nil {
		return true
	}
	return *fc.UpdateCheck
}

// GetBakeConfig returns the bake section with defaults applied.
func (fc FileConfig) GetBakeConfig() BakeConfig {
	if fc.Bake == nil {
		indent := true
		return BakeConfig{Indent: &indent}
	}
	cfg := *fc.Bake
	if cfg.Indent == nil {
		indent := true
		cfg.Indent = &indent
	}
	return cfg
}

// GetOutput returns the configured output path or "".
func (bc BakeConfig) GetOutput() string {
	if bc.Output == nil {
		return ""
	}
	return *bc.Output
}

// IndentEnabled reports whether output is pretty-printed (default: true).
func (bc BakeConfig) IndentEnabled() bool {
	if bc.Indent == nil {
		return true
	}
	return *bc.Indent
}

// Template is written by `octconnect config init`.
const Template = `# octconnect configuration
# project: .            # project root (contains Assets/ and/or Scripts/)
# exclude: "**/Temp/**,*.bak.oct"
# log_level: info       # debug, info, warn, error
# no_color: false
# no_cache: false
# json: false
# update_check: true
# bake:
#   output: extras.json
#   indent: true
`
