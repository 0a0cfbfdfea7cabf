package dataset

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// table is a CSV body indexed by its header row.
type table struct {
	index map[string]int
	rows  [][]string
}

func readTable(r io.Reader) (*table, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, errors.Wrap(err, "reading csv")
	}
	if len(records) == 0 {
		return nil, errors.New("csv has no header row")
	}
	t := &table{index: make(map[string]int, len(records[0])), rows: records[1:]}
	for i, name := range records[0] {
		t.index[strings.TrimSpace(name)] = i
	}
	return t, nil
}

// columns returns the positions of names in the header.
func (t *table) columns(names ...string) ([]int, error) {
	idx := make([]int, len(names))
	for i, name := range names {
		pos, ok := t.index[name]
		if !ok {
			return nil, errors.Wrapf(ErrMissingColumn, "%q", name)
		}
		idx[i] = pos
	}
	return idx, nil
}

func (t *table) column(name string) ([]string, error) {
	idx, err := t.columns(name)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(t.rows))
	for i, row := range t.rows {
		out[i] = strings.TrimSpace(row[idx[0]])
	}
	return out, nil
}

func parseFloat(cell string) (float64, error) {
	return cast.ToFloat64E(strings.TrimSpace(cell))
}

// timestamps are parsed base 10 so zero-padded values are not read as octal.
func parseTimestamp(cell string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(cell), 10, 64)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, errors.Errorf("timestamp %d is negative", v)
	}
	return v, nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
