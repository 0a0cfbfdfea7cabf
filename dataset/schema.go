// Package dataset reads and writes the CSV tables that feed and record pose alignment runs.
package dataset

import (
	"github.com/pkg/errors"
)

// DefaultReferenceColumn is the frame table column used when none is configured.
const DefaultReferenceColumn = "/camera_image2"

// Column names of the odometry table.
const (
	ColTimestamp = "timestamp"
	ColPosX      = "p_w_b_x"
	ColPosY      = "p_w_b_y"
	ColPosZ      = "p_w_b_z"
	ColQuatX     = "q_w_b_x"
	ColQuatY     = "q_w_b_y"
	ColQuatZ     = "q_w_b_z"
	ColQuatW     = "q_w_b_w"
)

var (
	// OdometryColumns are the columns ReadOdometry requires, in their conventional order.
	OdometryColumns = []string{ColTimestamp, ColPosX, ColPosY, ColPosZ, ColQuatX, ColQuatY, ColQuatZ, ColQuatW}
	// AlignedColumns is the header of the aligned pose table.
	AlignedColumns = []string{"timestamp", "x", "y", "z", "qx", "qy", "qz", "qw"}
	// SecNsecColumns is the header of the seconds/nanoseconds export.
	SecNsecColumns = []string{"sec", "nsec"}
)

// ErrMissingColumn is returned when a table header lacks a required column.
var ErrMissingColumn = errors.New("missing column")
