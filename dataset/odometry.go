package dataset

import (
	"io"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"

	"go.viam.com/posealign/spatialmath"
	"go.viam.com/posealign/timestamp"
	"go.viam.com/posealign/track"
)

// ReadOdometry reads an odometry table into a PoseTrack. Columns are matched by name and
// extra columns are ignored.
func ReadOdometry(r io.Reader) (*track.PoseTrack, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	idx, err := t.columns(OdometryColumns...)
	if err != nil {
		return nil, err
	}
	entries := make([]track.Entry, 0, len(t.rows))
	for i, row := range t.rows {
		ts, err := parseTimestamp(row[idx[0]])
		if err != nil {
			return nil, errors.Wrapf(err, "row %d column %q", i, ColTimestamp)
		}
		vals, err := parseFloats(row, idx[1:], OdometryColumns[1:])
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i)
		}
		entries = append(entries, track.Entry{
			Timestamp: timestamp.Timestamp(ts),
			Pose: spatialmath.NewPose(
				r3.Vector{X: vals[0], Y: vals[1], Z: vals[2]},
				spatialmath.NewQuaternion(vals[3], vals[4], vals[5], vals[6]),
			),
		})
	}
	return track.New(entries)
}

func parseFloats(row []string, idx []int, names []string) ([]float64, error) {
	vals := make([]float64, len(idx))
	for i, pos := range idx {
		v, err := parseFloat(row[pos])
		if err != nil {
			return nil, errors.Wrapf(err, "column %q", names[i])
		}
		vals[i] = v
	}
	return vals, nil
}
