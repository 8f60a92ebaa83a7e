package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the working directory when --config is
// not given.
const DefaultConfigFile = ".fsplit.yaml"

// FileConfig is the YAML config file. Unset keys leave the flag defaults.
type FileConfig struct {
	Rename        string `yaml:"rename"`
	ComponentsDir string `yaml:"components_dir"`
	Collision     string `yaml:"collision"`
	Verbose       *bool  `yaml:"verbose"`
}

// LoadFile reads path, or DefaultConfigFile when path is empty. A missing
// default file is not an error; a missing explicit file is.
func LoadFile(path string) (*FileConfig, error) {
	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return &FileConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fc FileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	return &fc, nil
}

// apply copies file values into cfg for every flag the user did not set.
func (fc *FileConfig) apply(cfg *Config, flags *pflag.FlagSet) {
	if fc.Rename != "" && !flags.Changed("rename") {
		cfg.Rename = fc.Rename
	}
	if fc.ComponentsDir != "" && !flags.Changed("components-dir") {
		cfg.ComponentsDir = fc.ComponentsDir
	}
	if fc.Collision != "" && !flags.Changed("collision") {
		cfg.Collision = fc.Collision
	}
	if fc.Verbose != nil && !flags.Changed("verbose") {
		cfg.Verbose = *fc.Verbose
	}
}
