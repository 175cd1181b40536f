package rawvol

import (
	"fmt"
	"strconv"
	"strings"
)

// Extents3d is an inclusive, axis-aligned box of voxel coordinates.  The zero value
// is the degenerate 0..0 box holding a single voxel.
type Extents3d struct {
	MinPoint Point3d
	MaxPoint Point3d
}

// NewExtents3d returns extents from bounds given in (xMin, xMax, yMin, yMax, zMin, zMax) order.
func NewExtents3d(xMin, xMax, yMin, yMax, zMin, zMax int32) Extents3d {
	return Extents3d{
		MinPoint: Point3d{xMin, yMin, zMin},
		MaxPoint: Point3d{xMax, yMax, zMax},
	}
}

// ExtentsFromBounds returns extents from a six element (xMin, xMax, yMin, yMax, zMin, zMax) slice.
func ExtentsFromBounds(b []int32) (Extents3d, error) {
	if len(b) != 6 {
		return Extents3d{}, fmt.Errorf("extent needs 6 bounds, got %d", len(b))
	}
	ext := NewExtents3d(b[0], b[1], b[2], b[3], b[4], b[5])
	if !ext.Valid() {
		return Extents3d{}, fmt.Errorf("extent %s has a max below its min", ext)
	}
	return ext, nil
}

// ParseExtents3d parses a comma or space separated list of six bounds, e.g. "0,255,0,255,0,99".
func ParseExtents3d(s string) (Extents3d, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	bounds := make([]int32, len(fields))
	for i, field := range fields {
		v, err := strconv.ParseInt(field, 10, 32)
		if err != nil {
			return Extents3d{}, fmt.Errorf("bad extent bound %q: %v", field, err)
		}
		bounds[i] = int32(v)
	}
	return ExtentsFromBounds(bounds)
}

// Bounds returns the extents in (xMin, xMax, yMin, yMax, zMin, zMax) order.
func (ext Extents3d) Bounds() [6]int32 {
	return [6]int32{
		ext.MinPoint[0], ext.MaxPoint[0],
		ext.MinPoint[1], ext.MaxPoint[1],
		ext.MinPoint[2], ext.MaxPoint[2],
	}
}

// Valid returns true if max >= min along every axis.
func (ext Extents3d) Valid() bool {
	for dim := 0; dim < 3; dim++ {
		if ext.MaxPoint[dim] < ext.MinPoint[dim] {
			return false
		}
	}
	return true
}

// Size returns the number of voxels along each axis.
func (ext Extents3d) Size() Point3d {
	return ext.MaxPoint.Sub(ext.MinPoint).AddScalar(1)
}

// NumVoxels returns the number of voxels within the extents.
func (ext Extents3d) NumVoxels() int64 {
	return ext.Size().Prod()
}

// Contains returns true if the passed extents are within the receiver.
func (ext Extents3d) Contains(sub Extents3d) bool {
	for dim := 0; dim < 3; dim++ {
		if sub.MinPoint[dim] < ext.MinPoint[dim] || sub.MaxPoint[dim] > ext.MaxPoint[dim] {
			return false
		}
	}
	return true
}

// ContainsPoint returns true if the point is within the extents.
func (ext Extents3d) ContainsPoint(p Point3d) bool {
	for dim := 0; dim < 3; dim++ {
		if p[dim] < ext.MinPoint[dim] || p[dim] > ext.MaxPoint[dim] {
			return false
		}
	}
	return true
}

func (ext Extents3d) String() string {
	b := ext.Bounds()
	return fmt.Sprintf("(%d, %d, %d, %d, %d, %d)", b[0], b[1], b[2], b[3], b[4], b[5])
}
