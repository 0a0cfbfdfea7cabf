// Package config defines the structures to configure an alignment run.
package config

import (
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/utils"

	"go.viam.com/posealign/align"
	"go.viam.com/posealign/dataset"
	"go.viam.com/posealign/logging"
	"go.viam.com/posealign/replay"
)

// Config describes the inputs and output of an alignment run.
type Config struct {
	FramesCSV   string        `json:"frames_csv"`
	OdometryCSV string        `json:"odometry_csv"`
	OutFile     string        `json:"out_file"`
	RefColumn   string        `json:"ref_column,omitempty"`
	Policy      string        `json:"policy,omitempty"`
	Workers     int           `json:"workers,omitempty"`
	Replay      *ReplayConfig `json:"replay,omitempty"`
}

// ReplayConfig describes how an aligned table is replayed.
type ReplayConfig struct {
	Rate         float64      `json:"rate,omitempty"`
	Offset       *Translation `json:"offset,omitempty"`
	FrameID      string       `json:"frame_id,omitempty"`
	ChildFrameID string       `json:"child_frame_id,omitempty"`
}

// Translation is a position offset in meters.
type Translation struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Vector returns t as an r3.Vector.
func (t Translation) Vector() r3.Vector {
	return r3.Vector{X: t.X, Y: t.Y, Z: t.Z}
}

// ApplyDefaults fills in unset optional fields.
func (c *Config) ApplyDefaults() {
	if c.RefColumn == "" {
		c.RefColumn = dataset.DefaultReferenceColumn
	}
	if c.Policy == "" {
		c.Policy = align.PolicyReject.String()
	}
	if c.Workers == 0 {
		c.Workers = 1
	}
	if c.Replay == nil {
		c.Replay = &ReplayConfig{}
	}
	c.Replay.applyDefaults()
}

func (rc *ReplayConfig) applyDefaults() {
	if rc.Rate == 0 {
		rc.Rate = replay.DefaultRate
	}
	if rc.Offset == nil {
		rc.Offset = &Translation{X: replay.DefaultOffset.X, Y: replay.DefaultOffset.Y, Z: replay.DefaultOffset.Z}
	}
	if rc.FrameID == "" {
		rc.FrameID = replay.DefaultFrameID
	}
	if rc.ChildFrameID == "" {
		rc.ChildFrameID = replay.DefaultChildFrameID
	}
}

// Validate ensures all parts of the config are valid.
func (c *Config) Validate(path string) error {
	if c.FramesCSV == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "frames_csv")
	}
	if c.OdometryCSV == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "odometry_csv")
	}
	if c.OutFile == "" {
		return utils.NewConfigValidationFieldRequiredError(path, "out_file")
	}
	if _, err := align.ParsePolicy(c.Policy); err != nil {
		return utils.NewConfigValidationError(path, err)
	}
	if c.Workers < 0 {
		return utils.NewConfigValidationError(path, errors.Errorf("workers must be non-negative, got %d", c.Workers))
	}
	if c.Replay != nil && c.Replay.Rate < 0 {
		return utils.NewConfigValidationError(path, errors.Errorf("replay rate must be non-negative, got %v", c.Replay.Rate))
	}
	return nil
}

// PolicyValue returns the parsed out-of-range policy.
func (c *Config) PolicyValue() align.OutOfRangePolicy {
	policy, err := align.ParsePolicy(c.Policy)
	if err != nil {
		return align.PolicyReject
	}
	return policy
}

// NewReplayer builds a replayer from the replay section. Call ApplyDefaults first.
func (c *Config) NewReplayer(logger logging.Logger) *replay.Replayer {
	r := replay.NewReplayer(logger)
	if c.Replay == nil {
		return r
	}
	r.Rate = c.Replay.Rate
	r.FrameID = c.Replay.FrameID
	r.ChildFrameID = c.Replay.ChildFrameID
	if c.Replay.Offset != nil {
		r.Offset = c.Replay.Offset.Vector()
	}
	return r
}
