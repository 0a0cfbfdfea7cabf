package replay

import (
	"context"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"go.viam.com/posealign/dataset"
	"go.viam.com/posealign/logging"
	"go.viam.com/posealign/timestamp"
)

// Defaults of a new Replayer.
const (
	DefaultRate         = 50.0
	DefaultFrameID      = "world"
	DefaultChildFrameID = "rig"
)

// DefaultOffset is the map origin subtracted from replayed positions.
var DefaultOffset = r3.Vector{X: 188.27431170228132, Y: -139.24082646997755, Z: -4.207249075320555}

// Replayer publishes aligned rows as odometry messages.
type Replayer struct {
	// Offset is subtracted from every position.
	Offset r3.Vector
	// Rate is the maximum number of messages per second. Zero or less is unthrottled.
	Rate         float64
	FrameID      string
	ChildFrameID string

	logger logging.Logger
}

// NewReplayer returns a Replayer with the default offset, rate and frames.
func NewReplayer(logger logging.Logger) *Replayer {
	return &Replayer{
		Offset:       DefaultOffset,
		Rate:         DefaultRate,
		FrameID:      DefaultFrameID,
		ChildFrameID: DefaultChildFrameID,
		logger:       logger,
	}
}

// Message converts one aligned row. The row timestamp must have 19 digits.
func (r *Replayer) Message(seq int, row dataset.AlignedRow) (*Odometry, error) {
	sec, nsec, err := timestamp.Decode(row.Timestamp)
	if err != nil {
		return nil, err
	}
	return &Odometry{
		Header: Header{
			Seq:     uint32(seq), //nolint:gosec
			Stamp:   Stamp{Secs: sec, Nsecs: nsec},
			FrameID: r.FrameID,
		},
		ChildFrameID: r.ChildFrameID,
		Pose:         newPoseMsg(row.Pose.Position.Sub(r.Offset), row.Pose.Orientation),
	}, nil
}

// Run publishes rows to sink in order, waiting between messages to honor Rate. It returns the
// number of messages published. Cancelling ctx stops the run with ctx's error.
func (r *Replayer) Run(ctx context.Context, rows []dataset.AlignedRow, sink Sink) (int, error) {
	limit := rate.Inf
	if r.Rate > 0 {
		limit = rate.Limit(r.Rate)
	}
	limiter := rate.NewLimiter(limit, 1)

	for i, row := range rows {
		msg, err := r.Message(i, row)
		if err != nil {
			return i, errors.Wrapf(err, "row %d", i)
		}
		if err := limiter.Wait(ctx); err != nil {
			return i, err
		}
		if err := sink.Publish(ctx, msg); err != nil {
			return i, err
		}
	}
	if r.logger != nil {
		r.logger.Infow("replay finished", "messages", len(rows), "frame", r.FrameID, "child_frame", r.ChildFrameID)
	}
	return len(rows), nil
}
