package dataset

import (
	"io"

	"github.com/pkg/errors"

	"go.viam.com/posealign/timestamp"
)

// ReadFramePaths returns the cells of the named column of a frame table, one per frame.
func ReadFramePaths(r io.Reader, column string) ([]string, error) {
	t, err := readTable(r)
	if err != nil {
		return nil, err
	}
	return t.column(column)
}

// ReadFrameTimestamps reads a frame table and extracts the capture timestamp embedded in
// each path of the named column.
func ReadFrameTimestamps(r io.Reader, column string) ([]timestamp.Timestamp, error) {
	paths, err := ReadFramePaths(r, column)
	if err != nil {
		return nil, err
	}
	out := make([]timestamp.Timestamp, len(paths))
	for i, p := range paths {
		ts, err := timestamp.ExtractFromPath(p)
		if err != nil {
			return nil, errors.Wrapf(err, "row %d (%q)", i, p)
		}
		out[i] = ts
	}
	return out, nil
}

// WriteSecNsec writes the seconds and nanoseconds parts of each path's timestamp. Both parts
// keep their digits verbatim, so nanoseconds stay zero padded to nine places.
func WriteSecNsec(w io.Writer, paths []string) error {
	rows := make([][]string, 0, len(paths)+1)
	rows = append(rows, SecNsecColumns)
	for i, p := range paths {
		digits, err := timestamp.ExtractDigits(p)
		if err != nil {
			return errors.Wrapf(err, "row %d (%q)", i, p)
		}
		if _, _, err := timestamp.Decode(digits); err != nil {
			return errors.Wrapf(err, "row %d (%q)", i, p)
		}
		rows = append(rows, []string{digits[:timestamp.SecondsDigits], digits[timestamp.SecondsDigits:]})
	}
	return writeAll(w, rows)
}
