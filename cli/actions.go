package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"go.uber.org/multierr"

	"go.viam.com/posealign/align"
	"go.viam.com/posealign/config"
	"go.viam.com/posealign/dataset"
	"go.viam.com/posealign/replay"
	"go.viam.com/posealign/utils"
)

// readConfig loads the --config file if one was given, or the defaults otherwise.
func readConfig(c *cli.Context) (*config.Config, string, error) {
	path := c.String(flagConfig)
	if path == "" {
		cfg := &config.Config{}
		cfg.ApplyDefaults()
		return cfg, "flags", nil
	}
	cfg, err := config.Read(path)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// AlignAction is the corresponding action for 'align'.
func AlignAction(c *cli.Context) error {
	logger := loggerFrom(c)
	cfg, path, err := readConfig(c)
	if err != nil {
		return err
	}
	if c.IsSet(alignFlagFramesCSV) {
		cfg.FramesCSV = c.String(alignFlagFramesCSV)
	}
	if c.IsSet(alignFlagOdometryCSV) {
		cfg.OdometryCSV = c.String(alignFlagOdometryCSV)
	}
	if c.IsSet(alignFlagOutFile) {
		cfg.OutFile = c.String(alignFlagOutFile)
	}
	if c.IsSet(alignFlagRef) {
		cfg.RefColumn = c.String(alignFlagRef)
	}
	if c.IsSet(alignFlagPolicy) {
		cfg.Policy = c.String(alignFlagPolicy)
	}
	if c.IsSet(alignFlagWorkers) {
		cfg.Workers = c.Int(alignFlagWorkers)
	}
	if err := cfg.Validate(path); err != nil {
		return err
	}

	queries, err := dataset.ReadFrameTimestampsFile(cfg.FramesCSV, cfg.RefColumn)
	if err != nil {
		return err
	}
	tr, err := dataset.ReadOdometryFile(cfg.OdometryCSV)
	if err != nil {
		return err
	}

	summary, err := align.Summarize(queries, tr)
	if err != nil {
		return err
	}
	logger.Infow("alignment inputs",
		"frames", summary.Queries,
		"poses", tr.Len(),
		"before_track", summary.BeforeTrack,
		"after_track", summary.AfterTrack,
		"exact_hits", summary.ExactHits,
		"mean_bracket_ms", summary.MeanBracketMs,
		"p95_bracket_ms", summary.P95BracketMs,
		"max_bracket_ms", summary.MaxBracketMs,
	)

	done := utils.SlowLogger(c.Context, "still aligning", "frames", cfg.FramesCSV, 2*time.Second, clock.New(), logger)
	poses, err := align.Align(c.Context, queries, tr,
		align.WithPolicy(cfg.PolicyValue()),
		align.WithWorkers(cfg.Workers),
		align.WithLogger(logger.Sublogger("align")),
	)
	done()
	if err != nil {
		return err
	}

	if err := dataset.WriteAlignedFile(cfg.OutFile, poses); err != nil {
		return err
	}
	fmt.Fprintf(c.App.Writer, "wrote %d aligned poses to %s\n", len(poses), cfg.OutFile)
	return nil
}

// ExtractTimestampsAction is the corresponding action for 'extract-ts'.
func ExtractTimestampsAction(c *cli.Context) error {
	cfg, _, err := readConfig(c)
	if err != nil {
		return err
	}
	ref := cfg.RefColumn
	if c.IsSet(extractFlagRef) {
		ref = c.String(extractFlagRef)
	}

	paths, err := dataset.ReadFramePathsFile(c.String(extractFlagInFile), ref)
	if err != nil {
		return err
	}
	outFile := c.String(extractFlagOutFile)
	if err := dataset.WriteSecNsecFile(outFile, paths); err != nil {
		return err
	}
	loggerFrom(c).Debugw("extracted timestamps", "column", ref, "rows", len(paths))
	fmt.Fprintf(c.App.Writer, "wrote %d timestamps to %s\n", len(paths), outFile)
	return nil
}

// ReplayAction is the corresponding action for 'replay'.
func ReplayAction(c *cli.Context) (err error) {
	logger := loggerFrom(c)
	cfg, path, err := readConfig(c)
	if err != nil {
		return err
	}
	r := cfg.NewReplayer(logger)
	if c.IsSet(replayFlagRate) {
		r.Rate = c.Float64(replayFlagRate)
	}
	if c.IsSet(replayFlagOffsetX) {
		r.Offset.X = c.Float64(replayFlagOffsetX)
	}
	if c.IsSet(replayFlagOffsetY) {
		r.Offset.Y = c.Float64(replayFlagOffsetY)
	}
	if c.IsSet(replayFlagOffsetZ) {
		r.Offset.Z = c.Float64(replayFlagOffsetZ)
	}
	logger.Debugw("replaying", "config", path, "rate", r.Rate, "offset", r.Offset)

	rows, err := dataset.ReadAlignedFile(c.String(replayFlagInCSV))
	if err != nil {
		return err
	}

	var out io.Writer = c.App.Writer
	if output := c.String(replayFlagOutput); output != "" {
		//nolint:gosec
		f, createErr := os.Create(output)
		if createErr != nil {
			return errors.Wrap(createErr, "creating replay output")
		}
		defer multierr.AppendInvoke(&err, multierr.Close(f))
		out = f
	}

	_, err = r.Run(c.Context, rows, replay.NewJSONLinesSink(out))
	return err
}
