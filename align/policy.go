package align

import (
	"strings"

	"github.com/pkg/errors"
)

// OutOfRangePolicy decides what happens to queries outside the time span of the pose track.
type OutOfRangePolicy int

const (
	// PolicyReject fails the run with ErrOutOfRangeQuery.
	PolicyReject OutOfRangePolicy = iota
	// PolicyClamp uses the nearest endpoint sample unchanged.
	PolicyClamp
)

var policyNames = map[OutOfRangePolicy]string{
	PolicyReject: "reject",
	PolicyClamp:  "clamp",
}

func (p OutOfRangePolicy) String() string {
	if name, ok := policyNames[p]; ok {
		return name
	}
	return "unknown"
}

// ParsePolicy parses "reject" or "clamp", case-insensitively. The empty string is PolicyReject.
func ParsePolicy(s string) (OutOfRangePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reject":
		return PolicyReject, nil
	case "clamp":
		return PolicyClamp, nil
	}
	return PolicyReject, errors.Errorf("unknown out-of-range policy %q, want one of reject, clamp", s)
}
