package timestamp

import (
	"testing"

	"github.com/pkg/errors"
	"go.viam.com/test"
)

func TestDecode(t *testing.T) {
	sec, nsec, err := Decode("1688567270696679671")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, sec, test.ShouldEqual, int64(1688567270))
	test.That(t, nsec, test.ShouldEqual, int64(696679671))

	sec, nsec, err = Decode("1688567270000000001")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, sec, test.ShouldEqual, int64(1688567270))
	test.That(t, nsec, test.ShouldEqual, int64(1))

	for _, bad := range []string{
		"168856727069667967",   // 18 digits
		"16885672706966796711", // 20 digits
		"",
		"16885672706966796x1",
		"-688567270696679671",
	} {
		t.Run(bad, func(t *testing.T) {
			_, _, err := Decode(bad)
			test.That(t, errors.Is(err, ErrInvalidTimestampFormat), test.ShouldBeTrue)
			test.That(t, err.Error(), test.ShouldContainSubstring, bad)
		})
	}
}

func TestParse(t *testing.T) {
	ts, err := Parse("1688567270696679671")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, ts, test.ShouldEqual, Timestamp(1688567270696679671))
	test.That(t, ts.String(), test.ShouldEqual, "1688567270696679671")

	sec, nsec := ts.Split()
	test.That(t, sec, test.ShouldEqual, int64(1688567270))
	test.That(t, nsec, test.ShouldEqual, int64(696679671))
	test.That(t, New(sec, nsec), test.ShouldEqual, ts)
	test.That(t, ts.Time().Unix(), test.ShouldEqual, sec)
	test.That(t, ts.Time().Nanosecond(), test.ShouldEqual, 696679671)

	_, err = Parse("9999999999999999999")
	test.That(t, errors.Is(err, ErrInvalidTimestampFormat), test.ShouldBeTrue)
}

func TestExtractFromPath(t *testing.T) {
	for _, tc := range []struct {
		path     string
		expected Timestamp
	}{
		{"/data/01_PillarRoom_15ms/images_2/1688567270696679671.png", 1688567270696679671},
		{"images_0/1688567270696679671.jpg", 1688567270696679671},
		{"cam/frame_42.JPEG", 42},
		{"/a/b7/c/0001500.tiff", 1500},
		{"1000.bmp", 1000},
	} {
		t.Run(tc.path, func(t *testing.T) {
			ts, err := ExtractFromPath(tc.path)
			test.That(t, err, test.ShouldBeNil)
			test.That(t, ts, test.ShouldEqual, tc.expected)
		})
	}

	for _, bad := range []string{
		"/data/images_2/frame.png",
		"/data/images_2/1688567270696679671.png.bak",
		"/data/images_2/1688567270696679671.txt",
		"/data/images_2/1688567270696679671",
		"",
	} {
		t.Run("no match "+bad, func(t *testing.T) {
			_, err := ExtractFromPath(bad)
			test.That(t, errors.Is(err, ErrNoTimestampFound), test.ShouldBeTrue)
		})
	}

	_, err := ExtractFromPath("99999999999999999999999.png")
	test.That(t, errors.Is(err, ErrInvalidTimestampFormat), test.ShouldBeTrue)
}

func TestExtractDigits(t *testing.T) {
	digits, err := ExtractDigits("/a/b/0001500.png")
	test.That(t, err, test.ShouldBeNil)
	test.That(t, digits, test.ShouldEqual, "0001500")

	_, err = ExtractDigits("/a/b/none.png")
	test.That(t, errors.Is(err, ErrNoTimestampFound), test.ShouldBeTrue)
}
