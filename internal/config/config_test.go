package config

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "dumpwatch.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	// Run from an empty directory so the default file is absent
	chdir(t, t.TempDir())

	conf, err := LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, 5, conf.S.Thresholds.SSH)
	assert.Equal(t, 5, conf.S.Thresholds.HTTP)
	assert.Equal(t, "results", conf.S.Output.Dir)
	assert.Equal(t, "trame.csv", conf.S.Output.CSVName)
	assert.Equal(t, 50, conf.S.Output.PadWidth)
	assert.Equal(t, []string{"html", "markdown"}, conf.S.Output.Formats)
	assert.Equal(t, log.InfoLevel, conf.R.LogLevel)
	assert.True(t, filepath.IsAbs(conf.R.ResultsDir))
	assert.Equal(t, uint64(0), conf.R.Version.Major)
}

func TestLoadConfigFile(t *testing.T) {
	t.Setenv("DUMPWATCH_OUT", "/tmp/dumpwatch-out")
	path := writeConfig(t, `
LogLevel: 5
Thresholds:
  SSH: 10
  HTTP: 20
Output:
  Dir: $DUMPWATCH_OUT/run
  PadWidth: 0
  Formats: [markdown]
`)

	conf, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 10, conf.R.Thresholds.SSH)
	assert.Equal(t, 20, conf.R.Thresholds.HTTP)
	assert.Equal(t, "/tmp/dumpwatch-out/run", conf.R.ResultsDir)
	assert.Equal(t, 0, conf.S.Output.PadWidth)
	assert.Equal(t, "trame.csv", conf.S.Output.CSVName)
	assert.Equal(t, []string{"markdown"}, conf.S.Output.Formats)
	assert.Equal(t, log.DebugLevel, conf.R.LogLevel)
}

func TestLoadConfigMissingExplicitFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigInvalid(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "Thresholds:\n  SSH: -1\n"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "Output:\n  CSVName: ../escape.csv\n"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "Thresholds: [not, a, map]\n"))
	assert.Error(t, err)
}

func TestRefreshAppliesOverrides(t *testing.T) {
	conf, err := LoadConfig(writeConfig(t, "LogLevel: 42\n"))
	require.NoError(t, err)
	assert.Equal(t, log.InfoLevel, conf.R.LogLevel)

	conf.S.Thresholds.SSH = 1
	require.NoError(t, conf.Refresh())
	assert.Equal(t, 1, conf.R.Thresholds.SSH)
}

func TestRunningVersionMatchesRelease(t *testing.T) {
	chdir(t, t.TempDir())

	conf, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, Version, "v"+conf.R.Version.String())
}

func TestLoadConfigInvalidVersion(t *testing.T) {
	chdir(t, t.TempDir())
	saved := Version
	Version = "undefined"
	defer func() { Version = saved }()

	_, err := LoadConfig("")
	assert.Error(t, err)
}
