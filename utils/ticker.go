package utils

import (
	"context"
	"time"

	"github.com/benbjohnson/clock"

	"go.viam.com/posealign/logging"
)

// SlowLogger starts a goroutine that warns periodically until the returned func is called or ctx
// is done. The first warning comes after first, the second 3s later and the rest every 5s.
func SlowLogger(
	ctx context.Context,
	msg, fieldName, fieldVal string,
	first time.Duration,
	clk clock.Clock,
	logger logging.Logger,
) func() {
	slowTicker := clk.Ticker(first)
	firstTick := true

	ctxWithCancel, cancel := context.WithCancel(ctx)
	startTime := clk.Now()
	go func() {
		for {
			select {
			case <-slowTicker.C:
				// the next interval is set before logging so an observed warning implies it
				if firstTick {
					slowTicker.Reset(3 * time.Second)
					firstTick = false
				} else {
					slowTicker.Reset(5 * time.Second)
				}
				elapsed := clk.Since(startTime).Round(time.Millisecond).String()
				logger.Warnw(msg, fieldName, fieldVal, "time_elapsed", elapsed)
			case <-ctxWithCancel.Done():
				return
			}
		}
	}()
	return func() { slowTicker.Stop(); cancel() }
}
