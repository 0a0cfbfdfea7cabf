package replay

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"go.viam.com/posealign/dataset"
	"go.viam.com/posealign/logging"
	"go.viam.com/posealign/spatialmath"
	"go.viam.com/posealign/timestamp"
)

type recordingSink struct {
	msgs []*Odometry
}

func (s *recordingSink) Publish(ctx context.Context, msg *Odometry) error {
	s.msgs = append(s.msgs, msg)
	return nil
}

func alignedRows(n int) []dataset.AlignedRow {
	rows := make([]dataset.AlignedRow, 0, n)
	for i := 0; i < n; i++ {
		ts := timestamp.Timestamp(1688567270000000123 + int64(i)*int64(time.Second))
		rows = append(rows, dataset.AlignedRow{
			Timestamp: ts.String(),
			Pose: spatialmath.NewPose(
				DefaultOffset.Add(r3.Vector{X: float64(i), Y: 1, Z: -1}),
				spatialmath.NewQuaternion(0, 0, 1, 0),
			),
		})
	}
	return rows
}

func TestMessage(t *testing.T) {
	r := NewReplayer(logging.NewTestLogger(t))
	msg, err := r.Message(3, alignedRows(2)[1])
	test.That(t, err, test.ShouldBeNil)
	test.That(t, msg.Header.Seq, test.ShouldEqual, uint32(3))
	test.That(t, msg.Header.Stamp, test.ShouldResemble, Stamp{Secs: 1688567271, Nsecs: 123})
	test.That(t, msg.Header.FrameID, test.ShouldEqual, "world")
	test.That(t, msg.ChildFrameID, test.ShouldEqual, "rig")
	test.That(t, msg.Pose.Position.X, test.ShouldAlmostEqual, 1)
	test.That(t, msg.Pose.Position.Y, test.ShouldAlmostEqual, 1)
	test.That(t, msg.Pose.Position.Z, test.ShouldAlmostEqual, -1)
	test.That(t, msg.Pose.Orientation, test.ShouldResemble, Quaternion{Z: 1})
	test.That(t, msg.Twist, test.ShouldResemble, Twist{})

	r.Offset = r3.Vector{}
	msg, err = r.Message(0, alignedRows(1)[0])
	test.That(t, err, test.ShouldBeNil)
	test.That(t, msg.Pose.Position.X, test.ShouldEqual, DefaultOffset.X)

	_, err = r.Message(0, dataset.AlignedRow{Timestamp: "1688567270"})
	test.That(t, errors.Is(err, timestamp.ErrInvalidTimestampFormat), test.ShouldBeTrue)
}

func TestRun(t *testing.T) {
	r := NewReplayer(logging.NewTestLogger(t))
	r.Rate = 0

	var buf bytes.Buffer
	n, err := r.Run(context.Background(), alignedRows(4), NewJSONLinesSink(&buf))
	test.That(t, err, test.ShouldBeNil)
	test.That(t, n, test.ShouldEqual, 4)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	test.That(t, lines, test.ShouldHaveLength, 4)
	var last Odometry
	test.That(t, json.Unmarshal([]byte(lines[3]), &last), test.ShouldBeNil)
	test.That(t, last.Header.Seq, test.ShouldEqual, uint32(3))
	test.That(t, last.Header.Stamp.Secs, test.ShouldEqual, int64(1688567273))
	test.That(t, last.Pose.Position.X, test.ShouldAlmostEqual, 3)
	test.That(t, lines[0], test.ShouldContainSubstring, `"child_frame_id":"rig"`)

	t.Run("bad row", func(t *testing.T) {
		rows := alignedRows(3)
		rows[2].Timestamp = "abc"
		sink := &recordingSink{}
		n, err := r.Run(context.Background(), rows, sink)
		test.That(t, errors.Is(err, timestamp.ErrInvalidTimestampFormat), test.ShouldBeTrue)
		test.That(t, err.Error(), test.ShouldContainSubstring, "row 2")
		test.That(t, n, test.ShouldEqual, 2)
		test.That(t, sink.msgs, test.ShouldHaveLength, 2)
	})

	t.Run("canceled", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		sink := &recordingSink{}
		n, err := r.Run(ctx, alignedRows(3), sink)
		test.That(t, errors.Is(err, context.Canceled), test.ShouldBeTrue)
		test.That(t, n, test.ShouldEqual, 0)
		test.That(t, sink.msgs, test.ShouldBeEmpty)
	})
}

func TestRunRate(t *testing.T) {
	r := NewReplayer(logging.NewTestLogger(t))
	r.Rate = 100

	sink := &recordingSink{}
	start := time.Now()
	n, err := r.Run(context.Background(), alignedRows(4), sink)
	test.That(t, err, test.ShouldBeNil)
	test.That(t, n, test.ShouldEqual, 4)
	// the first message goes out immediately, the other three wait 10ms each
	test.That(t, time.Since(start), test.ShouldBeGreaterThanOrEqualTo, 25*time.Millisecond)
	for i, msg := range sink.msgs {
		test.That(t, msg.Header.Seq, test.ShouldEqual, uint32(i))
	}
}
