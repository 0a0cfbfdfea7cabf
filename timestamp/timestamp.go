// Package timestamp converts between the textual timestamps embedded in sensor filenames and
// integer nanosecond timestamps.
package timestamp

import (
	"regexp"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

const (
	// DigitCount is the number of decimal digits in a full nanosecond epoch timestamp.
	DigitCount = 19
	// SecondsDigits is the number of leading digits that hold whole seconds.
	SecondsDigits = 10

	nanosPerSecond = int64(time.Second)
)

var (
	// ErrInvalidTimestampFormat is returned for digit strings that are not exactly 19 ASCII digits
	// or that do not fit in an int64.
	ErrInvalidTimestampFormat = errors.New("invalid timestamp format")
	// ErrNoTimestampFound is returned when a path has no digit run right before an image suffix.
	ErrNoTimestampFound = errors.New("no timestamp found")
)

// the digit run must be immediately followed by the suffix, which must end the string.
var pathPattern = regexp.MustCompile(`(\d+)\.(?i:png|jpe?g|bmp|tiff?)$`)

// Timestamp is a count of nanoseconds since the Unix epoch.
type Timestamp int64

// New combines whole seconds and nanoseconds into a Timestamp.
func New(sec, nsec int64) Timestamp {
	return Timestamp(sec*nanosPerSecond + nsec)
}

// Split returns the whole seconds and the remaining nanoseconds of ts.
func (ts Timestamp) Split() (sec, nsec int64) {
	return int64(ts) / nanosPerSecond, int64(ts) % nanosPerSecond
}

// Time returns ts as a UTC time.Time.
func (ts Timestamp) Time() time.Time {
	return time.Unix(0, int64(ts)).UTC()
}

func (ts Timestamp) String() string {
	return strconv.FormatInt(int64(ts), 10)
}

// Decode splits a 19 digit timestamp string into its seconds (first 10 digits) and nanoseconds
// (last 9 digits).
func Decode(digits string) (sec, nsec int64, err error) {
	if len(digits) != DigitCount {
		return 0, 0, errors.Wrapf(ErrInvalidTimestampFormat,
			"%q has %d digits, want %d", digits, len(digits), DigitCount)
	}
	for i := 0; i < len(digits); i++ {
		if digits[i] < '0' || digits[i] > '9' {
			return 0, 0, errors.Wrapf(ErrInvalidTimestampFormat, "%q has a non-digit at %d", digits, i)
		}
	}

	// 10 and 9 digit runs always fit in an int64
	sec, _ = strconv.ParseInt(digits[:SecondsDigits], 10, 64)
	nsec, _ = strconv.ParseInt(digits[SecondsDigits:], 10, 64)
	return sec, nsec, nil
}

// Parse decodes a 19 digit timestamp string into a Timestamp.
func Parse(digits string) (Timestamp, error) {
	sec, nsec, err := Decode(digits)
	if err != nil {
		return 0, err
	}
	if sec > (int64(^uint64(0)>>1)-nsec)/nanosPerSecond {
		return 0, errors.Wrapf(ErrInvalidTimestampFormat, "%q overflows a 64-bit timestamp", digits)
	}
	return New(sec, nsec), nil
}

// ExtractFromPath returns the timestamp encoded as the run of digits right before the image
// suffix of path, e.g. /data/images_2/1688567270696679671.png.
func ExtractFromPath(path string) (Timestamp, error) {
	match := pathPattern.FindStringSubmatch(path)
	if match == nil {
		return 0, errors.Wrapf(ErrNoTimestampFound, "filename %q does not match %s", path, pathPattern)
	}
	v, err := strconv.ParseInt(match[1], 10, 64)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidTimestampFormat, "filename %q: %v", path, err)
	}
	return Timestamp(v), nil
}

// ExtractDigits is like ExtractFromPath but returns the digit run as written, leading zeros included.
func ExtractDigits(path string) (string, error) {
	match := pathPattern.FindStringSubmatch(path)
	if match == nil {
		return "", errors.Wrapf(ErrNoTimestampFound, "filename %q does not match %s", path, pathPattern)
	}
	return match[1], nil
}
