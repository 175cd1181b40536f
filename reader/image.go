package reader

import (
	"fmt"

	"github.com/janelia-flyem/rawvol/rawvol"
)

// Image is a read extent of a volume with its geometry.  Data holds the voxels in
// x-fastest order, each element's components interleaved.
type Image struct {
	Extent    rawvol.Extents3d
	Element   Element
	Spacing   [3]float64
	Origin    [3]float64
	Direction [9]float64
	Data      []byte
}

// NewImage allocates an image for ext with the element and geometry of cfg.
func NewImage(ext rawvol.Extents3d, cfg Config) (*Image, error) {
	if !ext.Valid() {
		return nil, fmt.Errorf("%w: bad extent %s", rawvol.ErrInvalidSeekOffset, ext)
	}
	nbytes, err := cfg.Element.Bytes()
	if err != nil {
		return nil, err
	}
	return &Image{
		Extent:    ext,
		Element:   cfg.Element,
		Spacing:   cfg.Spacing,
		Origin:    cfg.Origin,
		Direction: cfg.Direction,
		Data:      make([]byte, ext.NumVoxels()*nbytes),
	}, nil
}

func (img *Image) NumVoxels() int64 {
	return img.Extent.NumVoxels()
}

// Bytes returns the number of bytes of voxel data.
func (img *Image) Bytes() int64 {
	return int64(len(img.Data))
}

// Index returns the byte offset in Data of the voxel at (x, y, z), or false if the
// voxel is outside the image.
func (img *Image) Index(x, y, z int32) (int64, bool) {
	if !img.Extent.ContainsPoint(rawvol.Point3d{x, y, z}) {
		return 0, false
	}
	nbytes, err := img.Element.Bytes()
	if err != nil {
		return 0, false
	}
	size := img.Extent.Size()
	min := img.Extent.MinPoint
	voxel := (int64(z-min[2])*int64(size[1])+int64(y-min[1]))*int64(size[0]) + int64(x-min[0])
	return voxel * nbytes, true
}
