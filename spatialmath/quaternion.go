package spatialmath

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

// Above this |dot| two unit quaternions are treated as parallel and slerp falls back to a
// normalized lerp, since sin(theta) is too small to divide by.
const slerpParallelThreshold = 0.9995

// NewZeroOrientation returns the identity quaternion, which signifies no rotation.
func NewZeroOrientation() quat.Number {
	return quat.Number{Real: 1}
}

// NewQuaternion builds a quaternion from its components in x, y, z, w order.
func NewQuaternion(x, y, z, w float64) quat.Number {
	return quat.Number{Real: w, Imag: x, Jmag: y, Kmag: z}
}

// Normalize scales q to unit length. The zero quaternion is returned unchanged.
func Normalize(q quat.Number) quat.Number {
	norm := quat.Abs(q)
	if norm == 0 {
		return q
	}
	return quat.Scale(1/norm, q)
}

// Flip will multiply a quaternion by -1, returning a quaternion representing the same orientation but in the opposing octant.
func Flip(q quat.Number) quat.Number {
	return quat.Number{Real: -q.Real, Imag: -q.Imag, Jmag: -q.Jmag, Kmag: -q.Kmag}
}

// Dot returns the 4D dot product of two quaternions.
func Dot(q1, q2 quat.Number) float64 {
	return q1.Real*q2.Real + q1.Imag*q2.Imag + q1.Jmag*q2.Jmag + q1.Kmag*q2.Kmag
}

// IsUnit reports whether q has unit norm within tol.
func IsUnit(q quat.Number, tol float64) bool {
	return math.Abs(quat.Abs(q)-1) <= tol
}

// QuaternionAlmostEqual is an equality test for quaternions that represent the same rotation.
// q and -q are considered equal.
func QuaternionAlmostEqual(a, b quat.Number, tol float64) bool {
	closeTo := func(x, y quat.Number) bool {
		return math.Abs(x.Real-y.Real) < tol &&
			math.Abs(x.Imag-y.Imag) < tol &&
			math.Abs(x.Jmag-y.Jmag) < tol &&
			math.Abs(x.Kmag-y.Kmag) < tol
	}
	return closeTo(a, b) || closeTo(a, Flip(b))
}

// QuaternionAngle returns the rotation angle in radians between two orientations, in [0, pi].
func QuaternionAngle(a, b quat.Number) float64 {
	d := math.Abs(Dot(Normalize(a), Normalize(b)))
	if d > 1 {
		d = 1
	}
	return 2 * math.Acos(d)
}

// Slerp is the spherical linear interpolation between two quaternions along the shorter arc.
// by == 0 yields q1 and by == 1 yields q2 (or its negation). Values of by outside [0, 1]
// extrapolate along the same great circle. The result has unit norm.
func Slerp(q1, q2 quat.Number, by float64) quat.Number {
	q1 = Normalize(q1)
	q2 = Normalize(q2)

	cosTheta := Dot(q1, q2)
	if cosTheta < 0 {
		q2 = Flip(q2)
		cosTheta = -cosTheta
	}

	if cosTheta > slerpParallelThreshold {
		return Normalize(quat.Add(q1, quat.Scale(by, quat.Sub(q2, q1))))
	}

	theta := math.Acos(cosTheta)
	sinTheta := math.Sin(theta)
	s1 := math.Sin((1-by)*theta) / sinTheta
	s2 := math.Sin(by*theta) / sinTheta
	return Normalize(quat.Add(quat.Scale(s1, q1), quat.Scale(s2, q2)))
}
