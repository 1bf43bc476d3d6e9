package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ostnam/nlox/pkg/eval"
)

// Name of the configuration file looked up in the home directory.
const DefaultFileName = ".nlox.yml"

type Config struct {
	Prompt       string `yaml:"prompt"`
	HistoryFile  string `yaml:"history_file"`
	MaxCallDepth int    `yaml:"max_call_depth"`
	Debug        Debug  `yaml:"debug"`
}

type Debug struct {
	Tokens bool `yaml:"tokens"`
	AST    bool `yaml:"ast"`
}

// Lists every problem found in a configuration file.
type ValidationError struct {
	Path   string
	Issues []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Path, strings.Join(e.Issues, "; "))
}

func Default() *Config {
	return &Config{
		Prompt:       "> ",
		HistoryFile:  "~/.nlox_history",
		MaxCallDepth: eval.DefaultMaxDepth,
	}
}

// Reads the YAML file at path. Keys missing from the file keep their
// default value; unknown keys are an error.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer file.Close()
	return Decode(file, path)
}

// Decodes a configuration from r; name is only used in error messages.
func Decode(r io.Reader, name string) (*Config, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	cfg := Default()
	if err := decoder.Decode(cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("config: %s is empty", name)
		}
		return nil, fmt.Errorf("config: parse %s: %w", name, err)
	}
	if err := cfg.validate(name); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Loads the file in the home directory if there is one, else returns the
// defaults.
func LoadDefault() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Default(), nil
	}
	path := filepath.Join(home, DefaultFileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(path)
}

func (c *Config) validate(name string) error {
	var errs ValidationError
	if c.MaxCallDepth < 0 {
		errs.Issues = append(errs.Issues, "max_call_depth must not be negative")
	}
	if strings.ContainsAny(c.Prompt, "\n\r") {
		errs.Issues = append(errs.Issues, "prompt must be a single line")
	}
	if len(errs.Issues) > 0 {
		errs.Path = name
		return &errs
	}
	return nil
}

// History file path with a leading ~ expanded. Empty disables history.
func (c *Config) HistoryPath() string {
	path := c.HistoryFile
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		return filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return path
}
