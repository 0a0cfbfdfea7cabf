// Package cli contains the posealign command line application.
package cli

import (
	"io"

	"github.com/urfave/cli/v2"

	"go.viam.com/posealign/logging"
)

const (
	// Global flags.
	flagConfig = "config"
	flagDebug  = "debug"

	// align flags.
	alignFlagFramesCSV   = "csv-from-video"
	alignFlagOdometryCSV = "csv-from-odometry"
	alignFlagOutFile     = "out-file"
	alignFlagRef         = "ref"
	alignFlagPolicy      = "policy"
	alignFlagWorkers     = "workers"

	// extract-ts flags.
	extractFlagInFile  = "in-file"
	extractFlagOutFile = "out-file"
	extractFlagRef     = "ref"

	// replay flags.
	replayFlagInCSV   = "in-csv"
	replayFlagRate    = "rate"
	replayFlagOffsetX = "offset-x"
	replayFlagOffsetY = "offset-y"
	replayFlagOffsetZ = "offset-z"
	replayFlagOutput  = "output"

	loggerKey = "logger"
)

// NewApp returns the posealign application writing results to out and logs to errOut.
func NewApp(out, errOut io.Writer) *cli.App {
	return &cli.App{
		Name:      "posealign",
		Usage:     "align camera frame timestamps with an odometry trace",
		Writer:    out,
		ErrWriter: errOut,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagConfig,
				Aliases: []string{"c"},
				Usage:   "load configuration from `FILE`",
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			logger := logging.NewBlankLogger("posealign")
			logger.AddAppender(logging.NewWriterAppender(c.App.ErrWriter))
			if !c.Bool(flagDebug) {
				logger.SetLevel(logging.INFO)
			}
			if c.App.Metadata == nil {
				c.App.Metadata = map[string]interface{}{}
			}
			c.App.Metadata[loggerKey] = logger
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:      "align",
				Usage:     "interpolate an odometry pose for every camera frame",
				UsageText: "posealign [global options] align --csv-from-video <csv> --csv-from-odometry <csv> --out-file <csv>",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  alignFlagFramesCSV,
						Usage: "CSV of camera frame paths with timestamps in the filenames",
					},
					&cli.StringFlag{
						Name:  alignFlagOdometryCSV,
						Usage: "CSV of timestamped odometry poses",
					},
					&cli.StringFlag{
						Name:  alignFlagOutFile,
						Usage: "path to write the aligned pose CSV to",
					},
					&cli.StringFlag{
						Name:  alignFlagRef,
						Usage: "frame CSV column holding the reference camera paths",
					},
					&cli.StringFlag{
						Name:  alignFlagPolicy,
						Usage: "what to do with frames outside the odometry trace: reject or clamp",
					},
					&cli.IntFlag{
						Name:  alignFlagWorkers,
						Usage: "number of parallel workers, 0 for one per CPU",
					},
				},
				Action: AlignAction,
			},
			{
				Name:  "extract-ts",
				Usage: "export the seconds and nanoseconds of every camera frame timestamp",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     extractFlagInFile,
						Required: true,
						Usage:    "CSV of camera frame paths",
					},
					&cli.StringFlag{
						Name:     extractFlagOutFile,
						Required: true,
						Usage:    "path to write the sec,nsec CSV to",
					},
					&cli.StringFlag{
						Name:  extractFlagRef,
						Usage: "frame CSV column holding the reference camera paths",
					},
				},
				Action: ExtractTimestampsAction,
			},
			{
				Name:  "replay",
				Usage: "republish an aligned pose CSV as odometry messages",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     replayFlagInCSV,
						Required: true,
						Usage:    "aligned pose CSV written by the align command",
					},
					&cli.Float64Flag{
						Name:  replayFlagRate,
						Usage: "messages per second, 0 or less to publish as fast as possible",
					},
					&cli.Float64Flag{
						Name:  replayFlagOffsetX,
						Usage: "x offset subtracted from every position",
					},
					&cli.Float64Flag{
						Name:  replayFlagOffsetY,
						Usage: "y offset subtracted from every position",
					},
					&cli.Float64Flag{
						Name:  replayFlagOffsetZ,
						Usage: "z offset subtracted from every position",
					},
					&cli.StringFlag{
						Name:  replayFlagOutput,
						Usage: "file to write JSON lines to instead of stdout",
					},
				},
				Action: ReplayAction,
			},
		},
	}
}

func loggerFrom(c *cli.Context) logging.Logger {
	if logger, ok := c.App.Metadata[loggerKey].(logging.Logger); ok {
		return logger
	}
	return logging.Global()
}
