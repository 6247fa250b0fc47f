package datasets

import (
	"io"
	"os"

	"github.com/YuminosukeSato/gboost/pkg/errors"
	"github.com/sbinet/npyio"
	"gonum.org/v1/gonum/mat"
)

// ReadNPY loads a 2-D float64 array from a NumPy .npy file.
func ReadNPY(path string) (m *mat.Dense, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()
	return ReadNPYFrom(f)
}

// ReadNPYFrom decodes a 2-D float64 array in .npy format from r.
func ReadNPYFrom(r io.Reader) (*mat.Dense, error) {
	rd, err := npyio.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "read npy header")
	}
	m := &mat.Dense{}
	if err := rd.Read(m); err != nil {
		return nil, errors.Wrap(err, "read npy data")
	}
	return m, nil
}

// WriteNPY stores m as a float64 .npy file, creating or truncating path.
func WriteNPY(path string, m mat.Matrix) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "close %s", path)
		}
	}()
	return WriteNPYTo(f, m)
}

// WriteNPYTo encodes m in .npy format to w.
func WriteNPYTo(w io.Writer, m mat.Matrix) error {
	if err := npyio.Write(w, mat.DenseCopyOf(m)); err != nil {
		return errors.Wrap(err, "write npy")
	}
	return nil
}
