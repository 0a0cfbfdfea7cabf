// Package spatialmath defines spatial mathematical operations on poses and orientations.
package spatialmath

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/num/quat"
)

// ErrDegenerateBracket is returned when an interpolation interval has zero width.
var ErrDegenerateBracket = errors.New("degenerate bracket: zero-width time interval")

// Pose is a position in a world frame together with a unit quaternion orientation in the same frame.
type Pose struct {
	Position    r3.Vector
	Orientation quat.Number
}

// NewPose returns a pose at the given position and orientation.
func NewPose(position r3.Vector, orientation quat.Number) Pose {
	return Pose{Position: position, Orientation: orientation}
}

// NewPoseFromPoint returns a pose at the given position with no rotation.
func NewPoseFromPoint(position r3.Vector) Pose {
	return Pose{Position: position, Orientation: NewZeroOrientation()}
}

func (p Pose) String() string {
	o := p.Orientation
	return fmt.Sprintf("{X:%.4f Y:%.4f Z:%.4f QX:%.4f QY:%.4f QZ:%.4f QW:%.4f}",
		p.Position.X, p.Position.Y, p.Position.Z, o.Imag, o.Jmag, o.Kmag, o.Real)
}

// PoseAlmostEqual returns whether two poses are within tol of each other in both position (per axis)
// and orientation (per component, sign-insensitive).
func PoseAlmostEqual(a, b Pose, tol float64) bool {
	return math.Abs(a.Position.X-b.Position.X) < tol &&
		math.Abs(a.Position.Y-b.Position.Y) < tol &&
		math.Abs(a.Position.Z-b.Position.Z) < tol &&
		QuaternionAlmostEqual(a.Orientation, b.Orientation, tol)
}

// Interpolate will return a new Pose that has been interpolated the set amount between two poses.
// Position is interpolated linearly per axis and orientation with Slerp. by == 0 returns from and
// by == 1 returns to, both unchanged.
func Interpolate(from, to Pose, by float64) Pose {
	switch by {
	case 0:
		return from
	case 1:
		return to
	}
	return Pose{
		Position: r3.Vector{
			X: (1-by)*from.Position.X + by*to.Position.X,
			Y: (1-by)*from.Position.Y + by*to.Position.Y,
			Z: (1-by)*from.Position.Z + by*to.Position.Z,
		},
		Orientation: Slerp(from.Orientation, to.Orientation, by),
	}
}

// Ratio returns where at falls between lower and upper as a fraction of the interval. The
// differences are taken on the integers before converting, so nanosecond epoch values keep their
// precision.
func Ratio(at, lower, upper int64) (float64, error) {
	width := upper - lower
	if width == 0 {
		return 0, errors.Wrapf(ErrDegenerateBracket, "lower and upper are both %d", lower)
	}
	return float64(at-lower) / float64(width), nil
}
