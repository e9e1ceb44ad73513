package config

import (
	"os"

	"github.com/pelletier/go-toml"
	"github.com/pkg/errors"
)

// FileName is the default name of the backend configuration file.
const FileName = "chogo.toml"

// tomlConfigFile represents the configuration file as it is encoded in TOML.
type tomlConfigFile struct {
	Backend *tomlBackend `toml:"backend"`
}

// tomlBackend represents the backend settings as they are encoded in TOML.
type tomlBackend struct {
	HeapSizeMB int    `toml:"heap-size-mb,omitempty"`
	LibDir     string `toml:"lib-dir,omitempty"`
	LogLevel   string `toml:"log-level,omitempty"`
	OutputPath string `toml:"output,omitempty"`
}

// Config holds the backend settings of a compilation.
type Config struct {
	// HeapSizeMB is the runtime heap size in megabytes.
	HeapSizeMB int

	// LibDir overrides the embedded runtime library with on-disk fragments.
	LibDir string

	// LogLevel is one of silent, error, warn, verbose.
	LogLevel string

	// OutputPath is where the generated assembly is written.
	OutputPath string
}

// Default returns the settings used when no configuration file is present.
func Default() *Config {
	return &Config{
		HeapSizeMB: 32,
		LogLevel:   "verbose",
		OutputPath: "out.s",
	}
}

// HeapSizeBytes returns the configured heap size in bytes.
func (c *Config) HeapSizeBytes() int {
	return c.HeapSizeMB * 1024 * 1024
}

// Load reads the configuration file at path and overlays it on the defaults.
// A missing file is not an error: the defaults are returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	buff, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	tcf := &tomlConfigFile{}
	if err := toml.Unmarshal(buff, tcf); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file %s", path)
	}
	if tcf.Backend == nil {
		return cfg, nil
	}

	if tcf.Backend.HeapSizeMB > 0 {
		cfg.HeapSizeMB = tcf.Backend.HeapSizeMB
	}
	if tcf.Backend.LibDir != "" {
		cfg.LibDir = tcf.Backend.LibDir
	}
	if tcf.Backend.LogLevel != "" {
		cfg.LogLevel = tcf.Backend.LogLevel
	}
	if tcf.Backend.OutputPath != "" {
		cfg.OutputPath = tcf.Backend.OutputPath
	}
	return cfg, nil
}
