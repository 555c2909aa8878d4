package config

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"

	yaml "gopkg.in/yaml.v2"
)

type (
	//StaticCfg is the container for other static config sections
	StaticCfg struct {
		Thresholds ThresholdCfg `yaml:"Thresholds"`
		Output     OutputCfg    `yaml:"Output"`
		LogLevel   int          `yaml:"LogLevel" default:"4"`
		Version    string       `yaml:"-"`
	}

	//ThresholdCfg holds the flag limits on destination occurrences
	ThresholdCfg struct {
		SSH  int `yaml:"SSH" default:"5"`
		HTTP int `yaml:"HTTP" default:"5"`
	}

	//OutputCfg controls where and how results are written
	OutputCfg struct {
		Dir      string   `yaml:"Dir" default:"results"`
		CSVName  string   `yaml:"CSVName" default:"trame.csv"`
		PadWidth int      `yaml:"PadWidth" default:"50"`
		Formats  []string `yaml:"Formats" default:"[\"html\",\"markdown\"]"`
	}
)

// readStaticConfigFile attempts to read the contents of the
// given cfgPath file path (e.g. ./dumpwatch.yaml)
func readStaticConfigFile(cfgPath string) ([]byte, error) {
	if _, err := os.Stat(cfgPath); err != nil {
		return nil, err
	}
	return os.ReadFile(cfgPath)
}

// parseStaticConfig loads the yaml from cfgFile into the provided config struct.
// It also fixes up misc values that need tweaking into the right format.
func parseStaticConfig(cfgFile []byte, config *StaticCfg) error {
	if err := yaml.Unmarshal(cfgFile, config); err != nil {
		return err
	}

	// expand env variables, config is a pointer
	// so we have to call elem on the reflect value
	expandConfig(reflect.ValueOf(config).Elem())

	config.Output.Dir = filepath.Clean(config.Output.Dir)

	// grab the release version, possibly overridden at link time
	config.Version = Version

	return nil
}

func validateStaticConfig(config *StaticCfg) error {
	if config.Thresholds.SSH < 0 || config.Thresholds.HTTP < 0 {
		return fmt.Errorf("thresholds must not be negative (SSH %d, HTTP %d)",
			config.Thresholds.SSH, config.Thresholds.HTTP)
	}
	if config.Output.PadWidth < 0 {
		return fmt.Errorf("pad width must not be negative: %d", config.Output.PadWidth)
	}
	if config.Output.CSVName == "" || filepath.Base(config.Output.CSVName) != config.Output.CSVName {
		return fmt.Errorf("invalid CSV file name: %q", config.Output.CSVName)
	}
	return nil
}

// expandConfig expands environment variables in config strings
func expandConfig(reflected reflect.Value) {
	for i := 0; i < reflected.NumField(); i++ {
		f := reflected.Field(i)
		// process sub configs
		if f.Kind() == reflect.Struct {
			expandConfig(f)
		} else if f.Kind() == reflect.String {
			f.SetString(os.ExpandEnv(f.String()))
		} else if f.Kind() == reflect.Slice && f.Type().Elem().Kind() == reflect.String {
			strs := f.Interface().([]string)
			for i, str := range strs {
				strs[i] = os.ExpandEnv(str)
			}
			f.Set(reflect.ValueOf(strs))
		}
	}
}
