package dataset

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"go.viam.com/utils"

	"go.viam.com/posealign/align"
	"go.viam.com/posealign/timestamp"
	"go.viam.com/posealign/track"
)

// ReadFrameTimestampsFile is ReadFrameTimestamps on the file at path.
func ReadFrameTimestampsFile(path, column string) ([]timestamp.Timestamp, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer utils.UncheckedErrorFunc(f.Close)
	ts, err := ReadFrameTimestamps(f, column)
	return ts, errors.Wrapf(err, "frame table %s", path)
}

// ReadFramePathsFile is ReadFramePaths on the file at path.
func ReadFramePathsFile(path, column string) ([]string, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer utils.UncheckedErrorFunc(f.Close)
	paths, err := ReadFramePaths(f, column)
	return paths, errors.Wrapf(err, "frame table %s", path)
}

// ReadOdometryFile is ReadOdometry on the file at path.
func ReadOdometryFile(path string) (*track.PoseTrack, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer utils.UncheckedErrorFunc(f.Close)
	tr, err := ReadOdometry(f)
	return tr, errors.Wrapf(err, "odometry table %s", path)
}

// ReadAlignedFile is ReadAligned on the file at path.
func ReadAlignedFile(path string) ([]AlignedRow, error) {
	//nolint:gosec
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer utils.UncheckedErrorFunc(f.Close)
	rows, err := ReadAligned(f)
	return rows, errors.Wrapf(err, "aligned table %s", path)
}

// WriteAlignedFile writes the aligned table to path, creating its parent directory.
func WriteAlignedFile(path string, poses []align.AlignedPose) (err error) {
	f, err := create(path)
	if err != nil {
		return err
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))
	return WriteAligned(f, poses)
}

// WriteSecNsecFile writes the sec/nsec table to path, creating its parent directory.
func WriteSecNsecFile(path string, paths []string) (err error) {
	f, err := create(path)
	if err != nil {
		return err
	}
	defer multierr.AppendInvoke(&err, multierr.Close(f))
	return WriteSecNsec(f, paths)
}

func create(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, errors.Wrapf(err, "creating output directory %s", dir)
		}
	}
	//nolint:gosec
	return os.Create(path)
}
