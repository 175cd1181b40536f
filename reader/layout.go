package reader

import (
	"fmt"

	"github.com/janelia-flyem/rawvol/rawvol"
)

// Element describes the on-disk representation of one voxel: Components values of
// the same scalar kind, interleaved.
type Element struct {
	Kind       rawvol.ScalarKind
	Components int32
}

// DefaultElement is a single 16-bit signed integer per voxel.
var DefaultElement = Element{Kind: rawvol.T_int16, Components: 1}

// ValueBytes returns the width of one component value.
func (el Element) ValueBytes() (int64, error) {
	nbytes := el.Kind.Bytes()
	if nbytes == 0 {
		return 0, fmt.Errorf("%w: %s", rawvol.ErrUnsupportedScalarKind, el.Kind)
	}
	return int64(nbytes), nil
}

// Bytes returns the width of a whole element.
func (el Element) Bytes() (int64, error) {
	nbytes, err := el.ValueBytes()
	if err != nil {
		return 0, err
	}
	if el.Components < 1 {
		return 0, fmt.Errorf("%w: %d components per element", rawvol.ErrUnsupportedScalarKind, el.Components)
	}
	return nbytes * int64(el.Components), nil
}

func (el Element) String() string {
	return fmt.Sprintf("%d x %s", el.Components, el.Kind)
}

// Increments are the number of bytes to advance in a file to move one unit along
// x, y and z, and lastly the number of bytes in the whole volume.
type Increments [4]int64

// StrideFor derives the increments of a volume with the given extents and element.
func StrideFor(ext rawvol.Extents3d, el Element) (inc Increments, err error) {
	nbytes, err := el.Bytes()
	if err != nil {
		return
	}
	size := ext.Size()
	for dim := 0; dim < 3; dim++ {
		inc[dim] = nbytes
		nbytes *= int64(size[dim])
	}
	inc[3] = nbytes
	return
}

// PayloadBytes returns the number of data bytes held by one file: a z slice for
// 2d files, the whole volume for 3d files.
func (inc Increments) PayloadBytes(dim Dimensionality) int64 {
	if dim == ThreeD {
		return inc[3]
	}
	return inc[2]
}

// RowBytes returns the number of bytes in one row of the extents, the unit of
// every read.
func RowBytes(ext rawvol.Extents3d, el Element) (int64, error) {
	nbytes, err := el.Bytes()
	if err != nil {
		return 0, err
	}
	return int64(ext.Size()[0]) * nbytes, nil
}
