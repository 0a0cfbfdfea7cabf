// Package align interpolates a pose for every camera frame timestamp from a sparse pose track.
package align

import (
	"context"

	"github.com/pkg/errors"
	"go.uber.org/atomic"

	"go.viam.com/posealign/logging"
	"go.viam.com/posealign/spatialmath"
	"go.viam.com/posealign/timestamp"
	"go.viam.com/posealign/track"
	"go.viam.com/posealign/utils"
)

// ErrOutOfRangeQuery is returned for a query outside the pose track under PolicyReject.
var ErrOutOfRangeQuery = errors.New("query timestamp outside pose track")

// AlignedPose is the pose interpolated for one query timestamp.
type AlignedPose struct {
	Timestamp timestamp.Timestamp
	Pose      spatialmath.Pose
}

type options struct {
	policy  OutOfRangePolicy
	workers int
	logger  logging.Logger
}

// Option configures Align.
type Option func(*options)

// WithPolicy sets how queries outside the track are handled. The default is PolicyReject.
func WithPolicy(policy OutOfRangePolicy) Option {
	return func(o *options) {
		o.policy = policy
	}
}

// WithWorkers splits the queries across n goroutines. n <= 0 uses utils.ParallelFactor.
// The default is 1.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithLogger sets the logger used to report the run.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// Align returns one pose per query, in query order. Any failing query fails the whole run and no
// poses are returned; the error names the lowest failing query index.
func Align(ctx context.Context, queries []timestamp.Timestamp, tr *track.PoseTrack, opts ...Option) ([]AlignedPose, error) {
	o := options{policy: PolicyReject, workers: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers <= 0 {
		o.workers = utils.ParallelFactor
	}
	if tr == nil {
		return nil, track.ErrEmptyTrack
	}

	out := make([]AlignedPose, len(queries))
	clamped := atomic.NewInt64(0)
	alignRange := func(ctx context.Context, groupNum, from, to int) error {
		for i := from; i < to; i++ {
			if err := ctx.Err(); err != nil {
				return err
			}
			pose, wasClamped, err := poseAt(tr, queries[i], o.policy)
			if err != nil {
				return errors.Wrapf(err, "query %d at %s", i, queries[i])
			}
			if wasClamped {
				clamped.Inc()
			}
			out[i] = AlignedPose{Timestamp: queries[i], Pose: pose}
		}
		return nil
	}

	var err error
	if o.workers == 1 {
		err = alignRange(ctx, 0, 0, len(queries))
	} else {
		err = utils.GroupWorkParallel(ctx, len(queries), o.workers, alignRange)
	}
	if err != nil {
		return nil, err
	}

	if o.logger != nil {
		o.logger.Debugw("aligned queries", "queries", len(queries), "samples", tr.Len(), "workers", o.workers)
		if n := clamped.Load(); n > 0 {
			o.logger.Warnw("clamped queries outside the pose track", "count", n, "first", tr.First(), "last", tr.Last())
		}
	}
	return out, nil
}

// PoseAt returns the pose of the track at query.
func PoseAt(tr *track.PoseTrack, query timestamp.Timestamp, policy OutOfRangePolicy) (spatialmath.Pose, error) {
	pose, _, err := poseAt(tr, query, policy)
	return pose, err
}

// poseAt also reports whether the pose was clamped to an endpoint.
func poseAt(tr *track.PoseTrack, query timestamp.Timestamp, policy OutOfRangePolicy) (spatialmath.Pose, bool, error) {
	if !tr.Covers(query) {
		if policy != PolicyClamp {
			return spatialmath.Pose{}, false, errors.Wrapf(ErrOutOfRangeQuery,
				"%s is outside [%s, %s]", query, tr.First(), tr.Last())
		}
		if query < tr.First() {
			return tr.Pose(0), true, nil
		}
		return tr.Pose(tr.Len() - 1), true, nil
	}

	b := tr.Locate(query)
	// the upper sample is the first one at or after query, so an exact hit on a repeated
	// timestamp has no single pose to return
	if tr.Timestamp(b.Upper) == query && tr.Duplicated(b.Upper) {
		return spatialmath.Pose{}, false, errors.Wrapf(spatialmath.ErrDegenerateBracket,
			"%s matches more than one sample starting at %d", query, b.Upper)
	}
	if b.Degenerate() {
		return tr.Pose(b.Lower), false, nil
	}

	lower, upper := tr.Entry(b.Lower), tr.Entry(b.Upper)
	ratio, err := spatialmath.Ratio(int64(query), int64(lower.Timestamp), int64(upper.Timestamp))
	if err != nil {
		return spatialmath.Pose{}, false, err
	}
	return spatialmath.Interpolate(lower.Pose, upper.Pose, ratio), false, nil
}
