package replay

import (
	"context"
	"encoding/json"
	"io"
	"sync"

	"github.com/pkg/errors"
)

// A Sink receives replayed messages in order.
type Sink interface {
	Publish(ctx context.Context, msg *Odometry) error
}

// JSONLinesSink writes each message as one JSON object per line.
type JSONLinesSink struct {
	mu  sync.Mutex
	enc *json.Encoder
}

// NewJSONLinesSink returns a sink writing to w.
func NewJSONLinesSink(w io.Writer) *JSONLinesSink {
	return &JSONLinesSink{enc: json.NewEncoder(w)}
}

// Publish encodes msg as a single line.
func (s *JSONLinesSink) Publish(ctx context.Context, msg *Odometry) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return errors.Wrapf(s.enc.Encode(msg), "publishing message %d", msg.Header.Seq)
}
