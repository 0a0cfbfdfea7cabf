package dataset

import (
	"encoding/csv"
	"io"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/samber/lo"

	"go.viam.com/posealign/align"
	"go.viam.com/posealign/spatialmath"
)

// AlignedRow is one row of an aligned pose table. The timestamp is kept as written so that
// consumers can split it into seconds and nanoseconds without losing leading zeros.
type AlignedRow struct {
	Timestamp string
	Pose      spatialmath.Pose
}

// WriteAligned writes one row per aligned pose with the header timestamp,x,y,z,qx,qy,qz,qw.
// Quaternions are written in x, y, z, w order.
func WriteAligned(w io.Writer, poses []align.AlignedPose) error {
	rows := lo.Map(poses, func(p align.AlignedPose, _ int) []string {
		pos, q := p.Pose.Position, p.Pose.Orientation
		return []string{
			p.Timestamp.String(),
			formatFloat(pos.X), formatFloat(pos.Y), formatFloat(pos.Z),
			formatFloat(q.Imag), formatFloat(q.Jmag), formatFloat(q.Kmag), formatFloat(q.Real),
		}
	})
	return writeAll(w, append([][]string{AlignedColumns}, rows...))
}

// ReadAligned reads a table written by WriteAligned.
func ReadAligned(r io.Reader) ([]AlignedRow, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	idx, err := t.columns(AlignedColumns...)
	if err != nil {
		return nil, err
	}
	out := make([]AlignedRow, 0, len(t.rows))
	for i, row := range t.rows {
		vals, err := parseFloats(row, idx[1:], AlignedColumns[1:])
		if err != nil {
			return nil, errors.Wrapf(err, "row %d", i)
		}
		out = append(out, AlignedRow{
			Timestamp: row[idx[0]],
			Pose: spatialmath.NewPose(
				r3.Vector{X: vals[0], Y: vals[1], Z: vals[2]},
				spatialmath.NewQuaternion(vals[3], vals[4], vals[5], vals[6]),
			),
		})
	}
	return out, nil
}

func writeAll(w io.Writer, rows [][]string) error {
	return errors.Wrap(csv.NewWriter(w).WriteAll(rows), "writing csv")
}
