package reader

import (
	"context"
	"fmt"

	"github.com/janelia-flyem/rawvol/rawvol"
	"github.com/janelia-flyem/rawvol/storage"
)

// ResolveHeader returns the number of bytes to skip at the start of the file at path.
// A manual header size is returned without touching the source.  Otherwise the
// header is whatever precedes the payload expected for one file, a z slice for 2d
// files or the whole data extent for 3d files, and is never negative.
func ResolveHeader(ctx context.Context, src storage.Source, path string, hdr HeaderSize,
	el Element, ext rawvol.Extents3d, dim Dimensionality) (int64, error) {

	if n, manual := hdr.Manual(); manual {
		return n, nil
	}
	inc, err := StrideFor(ext, el)
	if err != nil {
		return 0, err
	}
	size, err := src.Stat(ctx, path)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", rawvol.ErrFileNotAccessible, path, err)
	}
	header := size - inc.PayloadBytes(dim)
	if header < 0 {
		rawvol.Debugf("File %q has %d bytes, less than the %d expected for extent %s\n",
			path, size, inc.PayloadBytes(dim), ext)
		return 0, nil
	}
	return header, nil
}
