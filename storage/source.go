/*
	Package storage provides the data sources raw volumes are read from: the local
	filesystem, cloud buckets through gocloud.dev, and in-memory buffers.  A Source
	opens files for random access and reports their sizes, which is all the reader
	needs to seek rows and detect header sizes.
*/
package storage

import (
	"context"
	"io"
)

// File is an open raw data file.  Reads address absolute byte offsets so a row
// read is a single seek-and-read.
type File interface {
	io.ReaderAt
	io.Closer
}

// Source opens files by path and reports their size.
type Source interface {
	// Open opens the file at path for reading.
	Open(ctx context.Context, path string) (File, error)

	// Stat returns the size in bytes of the file at path.
	Stat(ctx context.Context, path string) (int64, error)
}
