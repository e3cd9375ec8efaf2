package utils

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

var stdin io.Reader = os.Stdin

// stdinFilename is the name of the file that is used in many command line
// utilities to denote input is to be read from STDIN.
const stdinFilename = "-"

// ReadFile returns the contents of the file identified by name. It reads from
// STDIN if name is "-".
func ReadFile(filename string) (b []byte, err error) {
	if filename == stdinFilename {
		filename = "/dev/stdin"
		b, err = io.ReadAll(stdin)
	} else {
		b, err = os.ReadFile(filename)
	}
	if err != nil {
		return nil, errors.Wrapf(maybeUnwrap(err), "error reading %s", filename)
	}
	return b, nil
}

// WriteFile writes data to a file named by filename.
// If the file does not exist, WriteFile creates it with permissions perm
// (before umask); otherwise WriteFile truncates it before writing.
func WriteFile(filename string, data []byte, perm os.FileMode) error {
	if err := os.WriteFile(filename, data, perm); err != nil {
		return errors.Wrapf(maybeUnwrap(err), "error writing %s", filename)
	}
	return nil
}

// maybeUnwrap returns the cause of the error if it was wrapped with
// errors.WithMessage, and the error itself otherwise.
func maybeUnwrap(err error) error {
	if wrapped := errors.Unwrap(err); wrapped != nil {
		return wrapped
	}
	return err
}
