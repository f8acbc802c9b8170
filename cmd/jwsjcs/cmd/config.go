package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigEnv names the environment variable that points at the config file.
const ConfigEnv = "JWSJCS_CONFIG"

// Config holds defaults read from the YAML config file. Command-line flags
// take precedence over every field.
type Config struct {
	// Key is the default JWK file for sign and verify.
	Key string `yaml:"key"`

	// SignatureProperty overrides the member name holding the envelope.
	SignatureProperty string `yaml:"signature_property"`

	// MaxDepth limits nesting of signed documents. Zero means no limit.
	MaxDepth int `yaml:"max_depth"`

	// Algorithms is the verify allow-list.
	Algorithms []string `yaml:"algorithms"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`
}

// ConfigPath returns the default config file location.
func ConfigPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}

	return filepath.Join(dir, "jwsjcs", "config.yaml")
}

// resolveConfigPath picks the config file: --config flag, then the
// JWSJCS_CONFIG environment variable, then ConfigPath. The second result
// reports whether the path was chosen explicitly.
func resolveConfigPath(flagValue string) (string, bool) {
	if flagValue != "" {
		return flagValue, true
	}

	if env := os.Getenv(ConfigEnv); env != "" {
		return env, true
	}

	return ConfigPath(), false
}

// LoadConfig reads the config file at path. A missing default file yields an
// empty config; a missing explicit file is an error.
func LoadConfig(path string, explicit bool) (*Config, error) {
	cfg := &Config{}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}

		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	if cfg.MaxDepth < 0 {
		return nil, fmt.Errorf("invalid config %s: max_depth must not be negative", path)
	}

	return cfg, nil
}
