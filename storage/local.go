package storage

import (
	"context"
	"errors"
	"os"
)

var errIsDir = errors.New("is a directory")

// Local is a Source backed by the local filesystem.
type Local struct{}

// Open opens a local file for reading.  A directory is not a readable file.
func (Local) Open(ctx context.Context, path string) (File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	fi, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	if fi.IsDir() {
		f.Close()
		return nil, &os.PathError{Op: "open", Path: path, Err: errIsDir}
	}
	return f, nil
}

// Stat returns the size of a local file.
func (Local) Stat(ctx context.Context, path string) (int64, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return fi.Size(), nil
}
