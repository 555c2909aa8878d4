package main

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli"

	"dumpwatch/internal/analysis"
	"dumpwatch/internal/config"
	"dumpwatch/internal/pipeline"
	"dumpwatch/internal/reporting"
	"dumpwatch/internal/tui"
)

func main() {
	app := cli.NewApp()
	app.Name = "dumpwatch"
	app.Usage = "Analyze a tcpdump text capture and report suspicious endpoint activity"
	app.UsageText = "dumpwatch [options] <capture-file>"
	app.Version = config.Version
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "Use a given `CONFIG_FILE` instead of " + config.DefaultConfigPath,
		},
		cli.StringFlag{
			Name:  "results, o",
			Usage: "Write results to `DIR`",
		},
		cli.StringFlag{
			Name:  "format, f",
			Value: pipeline.FormatAuto,
			Usage: "Input format: text, pcap, pcapng or auto",
		},
		cli.StringFlag{
			Name:  "report, r",
			Usage: "Comma separated report formats: html, markdown",
		},
		cli.IntFlag{
			Name:  "ssh-threshold",
			Usage: "Flag SSH activity above `N` destination occurrences",
		},
		cli.IntFlag{
			Name:  "http-threshold",
			Usage: "Flag HTTP activity above `N` destination occurrences",
		},
		cli.BoolFlag{
			Name:  "tui",
			Usage: "Browse the results interactively after the run",
		},
		cli.BoolFlag{
			Name:  "verbose",
			Usage: "log more information",
		},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		log.WithError(err).Fatal("dumpwatch failed")
	}
}

func run(c *cli.Context) error {
	inputPath := c.Args().First()
	if inputPath == "" {
		cli.ShowAppHelp(c)
		return cli.NewExitError("no capture file given", 1)
	}

	conf, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("could not load configuration file: %w", err)
	}
	if err := applyFlags(c, conf); err != nil {
		return err
	}

	log.SetLevel(conf.R.LogLevel)
	if c.Bool("verbose") {
		log.SetLevel(log.DebugLevel)
	}

	res, err := readCapture(inputPath, c.String("format"))
	if err != nil {
		return err
	}

	src, dst := analysis.Aggregate(res.Sources, res.Destinations)
	flags := analysis.NewFlagger(conf.R.Thresholds).Evaluate(dst)

	data := reporting.Data{
		InputFile:    inputPath,
		CSVFile:      conf.S.Output.CSVName,
		Packets:      res.Packets,
		Lines:        res.Lines,
		Skipped:      res.Skipped,
		Sources:      src,
		Destinations: dst,
		Flags:        flags,
		Version:      "v" + conf.R.Version.String(),
		GeneratedAt:  time.Now(),
	}

	art, err := reporting.Assemble(conf.R.ResultsDir, data, reporting.Options{
		Formats:  conf.S.Output.Formats,
		PadWidth: conf.S.Output.PadWidth,
	})
	if err != nil {
		return err
	}

	reporting.PrintSummary(os.Stdout, data)
	for _, p := range art.Reports {
		fmt.Printf("Report written: %s\n", p)
	}

	if c.Bool("tui") {
		p := tea.NewProgram(tui.NewResultsModel(data), tea.WithAltScreen())
		if _, err := p.Run(); err != nil {
			log.WithError(err).Error("Error running TUI")
		}
	}
	return nil
}

// readCapture runs the pipeline over path. An unreadable input becomes
// the single exit message shown to the user.
func readCapture(path, format string) (*pipeline.Result, error) {
	res, err := pipeline.RunFile(path, format)
	if errors.Is(err, pipeline.ErrInputUnreadable) {
		log.WithError(err).WithField("input", path).Debug("Could not read the capture file")
		return nil, cli.NewExitError(fmt.Sprintf("The file %s could not be read.", path), 1)
	}
	return res, err
}

// applyFlags overrides configuration values with the flags that were set.
func applyFlags(c *cli.Context, conf *config.Config) error {
	if c.IsSet("results") {
		conf.S.Output.Dir = c.String("results")
	}
	if c.IsSet("report") {
		var formats []string
		for _, f := range strings.Split(c.String("report"), ",") {
			if f = strings.TrimSpace(f); f != "" {
				formats = append(formats, f)
			}
		}
		conf.S.Output.Formats = formats
	}
	if c.IsSet("ssh-threshold") {
		conf.S.Thresholds.SSH = c.Int("ssh-threshold")
	}
	if c.IsSet("http-threshold") {
		conf.S.Thresholds.HTTP = c.Int("http-threshold")
	}
	return conf.Refresh()
}
