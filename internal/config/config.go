package config

import (
	"errors"
	"os"

	"github.com/creasty/defaults"
)

// Version is the release version. It may be overridden at link time
// with -ldflags "-X dumpwatch/internal/config.Version=...".
var Version = "v0.1.0"

type (
	//Config holds the configuration for the running system
	Config struct {
		S StaticCfg
		R RunningCfg
	}
)

// DefaultConfigPath is read when no config file is given. Unlike an
// explicit path, it may be absent.
const DefaultConfigPath = "dumpwatch.yaml"

// LoadConfig initializes a Config struct with defaults and the values
// read from a config file. If customConfigPath is empty the default
// path is used when it exists.
func LoadConfig(customConfigPath string) (*Config, error) {
	configPath := DefaultConfigPath
	if customConfigPath != "" {
		configPath = customConfigPath
	}

	config := &Config{}

	// Initialize static config to the default values
	if err := defaults.Set(&config.S); err != nil {
		return nil, err
	}

	contents, err := readStaticConfigFile(configPath)
	if errors.Is(err, os.ErrNotExist) && customConfigPath == "" {
		contents = nil
	} else if err != nil {
		return nil, err
	}

	// Deserialize the yaml file contents into the static config
	if err := parseStaticConfig(contents, &config.S); err != nil {
		return nil, err
	}

	return config, config.Refresh()
}

// Refresh validates the static config and rebuilds the running config
// from it. Call it after changing static values, e.g. from flags.
func (c *Config) Refresh() error {
	if err := validateStaticConfig(&c.S); err != nil {
		return err
	}
	return initRunningConfig(&c.S, &c.R)
}
