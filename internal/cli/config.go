package cli

import (
	"github.com/spf13/afero"
	errors "gopkg.in/src-d/go-errors.v1"
	yaml "gopkg.in/yaml.v2"

	"github.com/zephyrtronium/calc/internal/session"
)

// ErrConfig is returned for a configuration file that cannot be read or
// decoded.
var ErrConfig = errors.NewKind("invalid config file %s")

// DefaultPrompt is the REPL prompt when none is configured.
const DefaultPrompt = ">>> "

// Config holds the settings that may come from a configuration file. Flags
// given on the command line take precedence.
type Config struct {
	Prompt      string `yaml:"prompt"`
	HistoryFile string `yaml:"history_file"`
	Format      string `yaml:"format"`
	Verbose     bool   `yaml:"verbose"`
}

// DefaultConfig returns the configuration used when no file is given.
func DefaultConfig() *Config {
	return &Config{
		Prompt:      DefaultPrompt,
		HistoryFile: session.DefaultHistoryFile,
	}
}

// LoadConfig reads a YAML configuration file from fs. Keys missing from the
// file keep their defaults. Unknown keys are an error.
func LoadConfig(fs afero.Fs, path string) (*Config, error) {
	b, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, ErrConfig.Wrap(err, path)
	}
	cfg := DefaultConfig()
	if err := yaml.UnmarshalStrict(b, cfg); err != nil {
		return nil, ErrConfig.Wrap(err, path)
	}
	if cfg.Prompt == "" {
		cfg.Prompt = DefaultPrompt
	}
	if cfg.HistoryFile == "" {
		cfg.HistoryFile = session.DefaultHistoryFile
	}
	return cfg, nil
}
