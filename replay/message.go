// Package replay republishes an aligned pose table as a stream of timestamped odometry messages.
package replay

import (
	"github.com/golang/geo/r3"
	"gonum.org/v1/gonum/num/quat"
)

// Stamp is a message time split into whole seconds and nanoseconds.
type Stamp struct {
	Secs  int64 `json:"secs"`
	Nsecs int64 `json:"nsecs"`
}

// Header identifies when and in which frame a message was produced.
type Header struct {
	Seq     uint32 `json:"seq"`
	Stamp   Stamp  `json:"stamp"`
	FrameID string `json:"frame_id"`
}

// Point is a position in meters.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Quaternion is an orientation in x, y, z, w order.
type Quaternion struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
	W float64 `json:"w"`
}

// PoseMsg is a position and orientation.
type PoseMsg struct {
	Position    Point      `json:"position"`
	Orientation Quaternion `json:"orientation"`
}

// Twist is a linear and angular velocity.
type Twist struct {
	Linear  Point `json:"linear"`
	Angular Point `json:"angular"`
}

// Odometry is the pose of ChildFrameID expressed in Header.FrameID. Replayed messages always
// carry a zero twist.
type Odometry struct {
	Header       Header  `json:"header"`
	ChildFrameID string  `json:"child_frame_id"`
	Pose         PoseMsg `json:"pose"`
	Twist        Twist   `json:"twist"`
}

func newPoseMsg(position r3.Vector, orientation quat.Number) PoseMsg {
	return PoseMsg{
		Position: Point{X: position.X, Y: position.Y, Z: position.Z},
		Orientation: Quaternion{
			X: orientation.Imag,
			Y: orientation.Jmag,
			Z: orientation.Kmag,
			W: orientation.Real,
		},
	}
}
