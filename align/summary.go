package align

import (
	"time"

	"github.com/montanaflynn/stats"

	"go.viam.com/posealign/timestamp"
	"go.viam.com/posealign/track"
)

// Summary describes how well a set of queries is covered by a pose track.
type Summary struct {
	Queries     int
	BeforeTrack int
	AfterTrack  int
	ExactHits   int

	// Widths of the brackets used for interpolation, in milliseconds.
	MeanBracketMs float64
	MaxBracketMs  float64
	P95BracketMs  float64
}

// Summarize computes coverage and bracket width statistics for queries against tr.
func Summarize(queries []timestamp.Timestamp, tr *track.PoseTrack) (Summary, error) {
	s := Summary{Queries: len(queries)}
	widths := make(stats.Float64Data, 0, len(queries))
	for _, q := range queries {
		switch {
		case q < tr.First():
			s.BeforeTrack++
			continue
		case q > tr.Last():
			s.AfterTrack++
			continue
		}
		b := tr.Locate(q)
		if b.Degenerate() || tr.Timestamp(b.Upper) == q {
			s.ExactHits++
			continue
		}
		width := tr.Timestamp(b.Upper) - tr.Timestamp(b.Lower)
		widths = append(widths, float64(width)/float64(time.Millisecond))
	}
	if len(widths) == 0 {
		return s, nil
	}

	var err error
	if s.MeanBracketMs, err = stats.Mean(widths); err != nil {
		return s, err
	}
	if s.MaxBracketMs, err = stats.Max(widths); err != nil {
		return s, err
	}
	if s.P95BracketMs, err = stats.Percentile(widths, 95); err != nil {
		return s, err
	}
	return s, nil
}
