package reader

import (
	"bytes"
	"fmt"

	"github.com/janelia-flyem/rawvol/naming"
	"github.com/janelia-flyem/rawvol/rawvol"
)

// RowOrientation tells whether the first row stored in a file is the top
// (OriginUpperLeft) or the bottom (OriginLowerLeft) row of the logical y axis.
type RowOrientation uint8

const (
	OriginUpperLeft RowOrientation = iota
	OriginLowerLeft
)

func (o RowOrientation) String() string {
	if o == OriginLowerLeft {
		return "lower-left"
	}
	return "upper-left"
}

// Dimensionality tells whether each file holds one z slice (TwoD) or the whole
// volume (ThreeD).
type Dimensionality uint8

const (
	TwoD Dimensionality = iota
	ThreeD
)

func (d Dimensionality) String() string {
	if d == ThreeD {
		return "3"
	}
	return "2"
}

// HeaderSize is either a manually set number of bytes to skip at the start of each
// file, or automatic detection from the file size.  The zero value is automatic.
type HeaderSize struct {
	manual bool
	n      int64
}

// ManualHeader returns a HeaderSize that skips n bytes.
func ManualHeader(n int64) HeaderSize {
	return HeaderSize{manual: true, n: n}
}

// AutoHeader detects header sizes from file sizes.
var AutoHeader = HeaderSize{}

// Manual returns the manual header size and true, or false if detection is automatic.
func (h HeaderSize) Manual() (int64, bool) {
	return h.n, h.manual
}

func (h HeaderSize) String() string {
	if h.manual {
		return fmt.Sprintf("%d", h.n)
	}
	return "auto"
}

// Config describes how a raw volume is laid out and where it is stored.  It is a
// plain value: the reader derives increments and header sizes from it at the start
// of every read, so changing one setting never leaves stale derived state.
type Config struct {
	// Naming is the single strategy used to find the file of each slice.
	Naming    naming.Strategy
	Numbering naming.Numbering

	// DataExtent is the extent of the volume as stored.
	DataExtent rawvol.Extents3d
	Element    Element

	// Geometry carried to the produced image.
	Spacing   [3]float64
	Origin    [3]float64
	Direction [9]float64

	Header         HeaderSize
	ByteOrder      rawvol.ByteOrder
	RowOrder       RowOrientation
	Dimensionality Dimensionality

	// MemoryBuffer, if not nil, holds the whole volume and is read instead of any file.
	MemoryBuffer []byte
}

// DefaultConfig returns a configuration with a single-voxel extent of one 16-bit
// signed integer per voxel, unit spacing, identity direction, and the default file
// pattern with no prefix set.
func DefaultConfig() Config {
	return Config{
		Numbering: naming.DefaultNumbering,
		Element:   DefaultElement,
		Spacing:   [3]float64{1, 1, 1},
		Direction: [9]float64{1, 0, 0, 0, 1, 0, 0, 0, 1},
	}
}

// SetFileName names the volume by a single file, clearing any prefix, pattern or file list.
func (c *Config) SetFileName(path string) {
	c.Naming = naming.SingleFile(path)
}

// FileName returns the single file name if that is how the volume is named.
func (c *Config) FileName() (string, bool) {
	f, ok := c.Naming.(naming.SingleFile)
	return string(f), ok
}

// SetFilePrefix names the volume by a numbered series with the given prefix, keeping
// any pattern already set and clearing a file name or file list.
func (c *Config) SetFilePrefix(prefix string) {
	ps, _ := c.Naming.(naming.PatternSeries)
	ps.Prefix = prefix
	c.Naming = ps
}

// FilePrefix returns the prefix if the volume is named by a numbered series.
func (c *Config) FilePrefix() (string, bool) {
	ps, ok := c.Naming.(naming.PatternSeries)
	return ps.Prefix, ok
}

// SetFilePattern names the volume by a numbered series with the given pattern, keeping
// any prefix already set and clearing a file name or file list.
func (c *Config) SetFilePattern(pattern string) {
	ps, _ := c.Naming.(naming.PatternSeries)
	ps.Pattern = pattern
	c.Naming = ps
}

// FilePattern returns the pattern if the volume is named by a numbered series.
func (c *Config) FilePattern() (string, bool) {
	ps, ok := c.Naming.(naming.PatternSeries)
	if !ok {
		return "", false
	}
	if ps.Pattern == "" {
		return naming.DefaultPattern, true
	}
	return ps.Pattern, true
}

// SetFileNames names each z slice by a path in the list, clearing any file name,
// prefix or pattern.  A non-empty list sets the z extent to [0, len-1].
func (c *Config) SetFileNames(paths []string) {
	c.Naming = naming.ExplicitList(append([]string(nil), paths...))
	c.forceListExtent()
}

// FileNames returns the explicit file list if that is how the volume is named.
func (c *Config) FileNames() ([]string, bool) {
	l, ok := c.Naming.(naming.ExplicitList)
	return []string(l), ok
}

func (c *Config) forceListExtent() {
	if l, ok := c.Naming.(naming.ExplicitList); ok && len(l) > 0 {
		c.DataExtent.MinPoint[2] = 0
		c.DataExtent.MaxPoint[2] = int32(len(l) - 1)
	}
}

// SetDataExtent sets the stored extent.  With an explicit file list the z extent
// stays fixed to the list.
func (c *Config) SetDataExtent(ext rawvol.Extents3d) {
	c.DataExtent = ext
	c.forceListExtent()
}

// SetHeaderSize sets a manual header size that is kept until ResetHeaderSize.
func (c *Config) SetHeaderSize(n int64) {
	c.Header = ManualHeader(n)
}

// ResetHeaderSize returns to detecting header sizes from file sizes.
func (c *Config) ResetHeaderSize() {
	c.Header = AutoHeader
}

// SetDataByteOrderToBigEndian declares the stored data big endian.
func (c *Config) SetDataByteOrderToBigEndian() {
	c.ByteOrder = rawvol.BigEndianOrder()
}

// SetDataByteOrderToLittleEndian declares the stored data little endian.
func (c *Config) SetDataByteOrderToLittleEndian() {
	c.ByteOrder = rawvol.LittleEndianOrder()
}

func (c Config) String() string {
	var buf bytes.Buffer
	if c.MemoryBuffer != nil {
		fmt.Fprintf(&buf, "Memory Buffer: %d bytes\n", len(c.MemoryBuffer))
	} else if c.Naming == nil {
		fmt.Fprintf(&buf, "Naming: (none)\n")
	} else {
		fmt.Fprintf(&buf, "Naming: %s\n", c.Naming)
	}
	fmt.Fprintf(&buf, "Slice Offset: %d, Slice Spacing: %d\n", c.Numbering.Offset, c.Numbering.Spacing)
	fmt.Fprintf(&buf, "Data Element: %s\n", c.Element)
	fmt.Fprintf(&buf, "File Dimensionality: %s\n", c.Dimensionality)
	fmt.Fprintf(&buf, "Row Orientation: %s\n", c.RowOrder)
	fmt.Fprintf(&buf, "Data Byte Order: %s\n", c.ByteOrder)
	fmt.Fprintf(&buf, "DataExtent: %s\n", c.DataExtent)
	fmt.Fprintf(&buf, "DataSpacing: %v\n", c.Spacing)
	fmt.Fprintf(&buf, "DataDirection: %v\n", c.Direction)
	fmt.Fprintf(&buf, "DataOrigin: %v\n", c.Origin)
	fmt.Fprintf(&buf, "HeaderSize: %s\n", c.Header)
	return buf.String()
}
