package config

import (
	"path/filepath"

	"github.com/blang/semver"
	log "github.com/sirupsen/logrus"

	"dumpwatch/internal/analysis"
)

type (
	//RunningCfg holds values derived from the static config
	RunningCfg struct {
		Thresholds analysis.Thresholds
		ResultsDir string
		LogLevel   log.Level
		Version    semver.Version
	}
)

// initRunningConfig uses data in the static config to initialize
// the passed in running config
func initRunningConfig(static *StaticCfg, running *RunningCfg) error {
	running.Thresholds = analysis.Thresholds{
		SSH:  static.Thresholds.SSH,
		HTTP: static.Thresholds.HTTP,
	}

	dir, err := filepath.Abs(static.Output.Dir)
	if err != nil {
		return err
	}
	running.ResultsDir = dir

	running.LogLevel = log.Level(static.LogLevel)
	if static.LogLevel < int(log.PanicLevel) || static.LogLevel > int(log.TraceLevel) {
		running.LogLevel = log.InfoLevel
	}

	running.Version, err = semver.ParseTolerant(static.Version)
	if err != nil {
		log.WithError(err).WithField("version", static.Version).Error(
			"Version error: the build version is not a valid semantic version",
		)
	}
	return err
}
