package rawvol

import "errors"

// Error kinds returned by naming, storage and reader operations.  They are wrapped
// with path, slice and row context, so test with errors.Is.  A cancelled read is
// not an error and is reported through the reader's Stats instead.
var (
	// ErrNoIdentitySpecified means none of a file name, file pattern or file name
	// list has been configured.
	ErrNoIdentitySpecified = errors.New("either a file name, file names, or file pattern must be specified")

	// ErrIndexOutOfRange means a slice index past the end of an explicit file list.
	ErrIndexOutOfRange = errors.New("slice index out of range of file list")

	// ErrFileOpen means a resolved path could not be opened for reading.
	ErrFileOpen = errors.New("could not open file")

	// ErrFileNotAccessible means a file could not be stat'd while detecting its header size.
	ErrFileNotAccessible = errors.New("could not stat file to detect header size")

	// ErrShortRead means fewer bytes were available than a row requires.
	ErrShortRead = errors.New("short read")

	// ErrUnsupportedScalarKind means a scalar kind or component count that has no byte layout.
	ErrUnsupportedScalarKind = errors.New("unsupported scalar kind")

	// ErrInvalidSeekOffset means a seek computation left the configured data extent.
	ErrInvalidSeekOffset = errors.New("invalid seek offset")

	// ErrBufferTooSmall means a destination buffer cannot hold the requested extent.
	ErrBufferTooSmall = errors.New("destination buffer too small for extent")
)
