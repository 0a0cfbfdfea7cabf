// Package track holds a time-ordered trace of reference poses and locates the pair of samples
// that bracket a query time.
package track

import (
	"sort"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"

	"go.viam.com/posealign/spatialmath"
	"go.viam.com/posealign/timestamp"
)

// UnitTolerance is how far from 1 the norm of a sample orientation may be.
const UnitTolerance = 1e-3

var (
	// ErrEmptyTrack is returned when a track is built without samples.
	ErrEmptyTrack = errors.New("pose track has no samples")
	// ErrUnsortedTrack is returned when sample timestamps decrease.
	ErrUnsortedTrack = errors.New("pose track timestamps are not sorted")
	// ErrNonUnitQuaternion is returned when a sample orientation is not a unit quaternion.
	ErrNonUnitQuaternion = errors.New("pose track orientation is not a unit quaternion")
)

// Entry is one timestamped reference pose.
type Entry struct {
	Timestamp timestamp.Timestamp
	Pose      spatialmath.Pose
}

// PoseTrack is an immutable sequence of reference poses ordered by non-decreasing timestamp.
type PoseTrack struct {
	timestamps []timestamp.Timestamp
	poses      []spatialmath.Pose
}

// New builds a track from entries already sorted by timestamp. Duplicate timestamps are allowed;
// decreasing ones are not.
func New(entries []Entry) (*PoseTrack, error) {
	if len(entries) == 0 {
		return nil, ErrEmptyTrack
	}
	tr := &PoseTrack{
		timestamps: make([]timestamp.Timestamp, len(entries)),
		poses:      make([]spatialmath.Pose, len(entries)),
	}
	for i, e := range entries {
		if i > 0 && e.Timestamp < entries[i-1].Timestamp {
			return nil, errors.Wrapf(ErrUnsortedTrack, "sample %d at %s comes after %s", i, e.Timestamp, entries[i-1].Timestamp)
		}
		if !spatialmath.IsUnit(e.Pose.Orientation, UnitTolerance) {
			return nil, errors.Wrapf(ErrNonUnitQuaternion, "sample %d at %s has norm %f",
				i, e.Timestamp, quat.Abs(e.Pose.Orientation))
		}
		tr.timestamps[i] = e.Timestamp
		tr.poses[i] = e.Pose
	}
	return tr, nil
}

// Len returns the number of samples.
func (tr *PoseTrack) Len() int {
	return len(tr.timestamps)
}

// Timestamp returns the timestamp of sample i.
func (tr *PoseTrack) Timestamp(i int) timestamp.Timestamp {
	return tr.timestamps[i]
}

// Pose returns the pose of sample i.
func (tr *PoseTrack) Pose(i int) spatialmath.Pose {
	return tr.poses[i]
}

// Entry returns sample i.
func (tr *PoseTrack) Entry(i int) Entry {
	return Entry{tr.timestamps[i], tr.poses[i]}
}

// First returns the timestamp of the earliest sample.
func (tr *PoseTrack) First() timestamp.Timestamp {
	return tr.timestamps[0]
}

// Last returns the timestamp of the latest sample.
func (tr *PoseTrack) Last() timestamp.Timestamp {
	return tr.timestamps[len(tr.timestamps)-1]
}

// Covers reports whether query lies within [First, Last].
func (tr *PoseTrack) Covers(query timestamp.Timestamp) bool {
	return query >= tr.First() && query <= tr.Last()
}

// Duplicated reports whether the timestamp of sample i is shared with a neighbour.
func (tr *PoseTrack) Duplicated(i int) bool {
	return (i > 0 && tr.timestamps[i-1] == tr.timestamps[i]) ||
		(i+1 < len(tr.timestamps) && tr.timestamps[i+1] == tr.timestamps[i])
}

// Bracket is a pair of adjacent sample indices around a query time.
type Bracket struct {
	Lower int
	Upper int
}

// Degenerate reports whether both indices point at the same sample.
func (b Bracket) Degenerate() bool {
	return b.Lower == b.Upper
}

// Locate finds the left insertion point i of query, the first sample with timestamp >= query.
// It returns {n, n} when query is past every sample, {0, 0} when query is at or before the first
// sample and {i-1, i} otherwise. The {n, n} bracket does not index a sample.
func (tr *PoseTrack) Locate(query timestamp.Timestamp) Bracket {
	n := len(tr.timestamps)
	i := sort.Search(n, func(i int) bool {
		return tr.timestamps[i] >= query
	})
	switch i {
	case n:
		return Bracket{n, n}
	case 0:
		return Bracket{0, 0}
	}
	return Bracket{i - 1, i}
}
