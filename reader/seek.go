package reader

import (
	"fmt"

	"github.com/janelia-flyem/rawvol/rawvol"
)

// SeekCalculator converts voxel coordinates within a stored extent into byte
// offsets of an open file.
type SeekCalculator struct {
	Extent         rawvol.Extents3d
	Increments     Increments
	RowOrder       RowOrientation
	Dimensionality Dimensionality
}

// Offset returns the byte offset of voxel (i, j, k) in the file holding slice k,
// given that file's header size.  With OriginUpperLeft the rows are stored top
// down, so the row term mirrors j across the extent's y range.  In 2d files the
// slice is selected by the file, not by the offset.
func (s SeekCalculator) Offset(i, j, k int32, header int64) (int64, error) {
	ext := s.Extent
	if !ext.ContainsPoint(rawvol.Point3d{i, j, k}) {
		return 0, fmt.Errorf("%w: voxel (%d,%d,%d) outside data extent %s",
			rawvol.ErrInvalidSeekOffset, i, j, k, ext)
	}
	offset := int64(i-ext.MinPoint[0]) * s.Increments[0]
	if s.RowOrder == OriginLowerLeft {
		offset += int64(j-ext.MinPoint[1]) * s.Increments[1]
	} else {
		offset += int64(ext.MaxPoint[1]-j) * s.Increments[1]
	}
	if s.Dimensionality == ThreeD {
		offset += int64(k-ext.MinPoint[2]) * s.Increments[2]
	}
	offset += header
	if offset < 0 {
		return 0, fmt.Errorf("%w: offset %d for voxel (%d,%d,%d) with header %d",
			rawvol.ErrInvalidSeekOffset, offset, i, j, k, header)
	}
	return offset, nil
}
