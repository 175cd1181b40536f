package reader

import (
	"context"
	"errors"
	"testing"

	"github.com/janelia-flyem/rawvol/naming"
	"github.com/janelia-flyem/rawvol/rawvol"
	"github.com/janelia-flyem/rawvol/storage"
)

func TestStrideFor(t *testing.T) {
	tests := []struct {
		ext      rawvol.Extents3d
		el       Element
		expected Increments
	}{
		{rawvol.NewExtents3d(0, 9, 0, 4, 0, 2), Element{rawvol.T_float32, 3}, Increments{12, 120, 600, 1800}},
		{rawvol.NewExtents3d(0, 0, 0, 0, 0, 0), DefaultElement, Increments{2, 2, 2, 2}},
		{rawvol.NewExtents3d(-5, 4, 10, 19, 3, 3), Element{rawvol.T_uint8, 1}, Increments{1, 10, 100, 100}},
		{rawvol.NewExtents3d(0, 1, 0, 1, 0, 1), Element{rawvol.T_float64, 2}, Increments{16, 32, 64, 128}},
	}
	for i, tc := range tests {
		inc, err := StrideFor(tc.ext, tc.el)
		if err != nil {
			t.Fatalf("test %d: %v", i, err)
		}
		if inc != tc.expected {
			t.Errorf("test %d: expected increments %v, got %v", i, tc.expected, inc)
		}
		nbytes, _ := tc.el.Bytes()
		if inc[0] != nbytes {
			t.Errorf("test %d: inc[0] %d != element bytes %d", i, inc[0], nbytes)
		}
		size := tc.ext.Size()
		for k := 1; k < 4; k++ {
			if inc[k] != inc[k-1]*int64(size[k-1]) {
				t.Errorf("test %d: inc[%d] = %d breaks recurrence", i, k, inc[k])
			}
		}
	}
}

func TestStrideForUnsupported(t *testing.T) {
	ext := rawvol.NewExtents3d(0, 9, 0, 9, 0, 9)
	if _, err := StrideFor(ext, Element{rawvol.ScalarKind(99), 1}); !errors.Is(err, rawvol.ErrUnsupportedScalarKind) {
		t.Errorf("expected unsupported scalar kind error, got %v", err)
	}
	if _, err := StrideFor(ext, Element{rawvol.T_uint8, 0}); !errors.Is(err, rawvol.ErrUnsupportedScalarKind) {
		t.Errorf("expected error for zero components, got %v", err)
	}
	if _, err := RowBytes(ext, Element{rawvol.ScalarKind(99), 1}); !errors.Is(err, rawvol.ErrUnsupportedScalarKind) {
		t.Errorf("expected unsupported scalar kind error from RowBytes, got %v", err)
	}
}

func TestPayloadBytes(t *testing.T) {
	inc, err := StrideFor(rawvol.NewExtents3d(0, 3, 0, 2, 0, 4), Element{rawvol.T_uint16, 1})
	if err != nil {
		t.Fatal(err)
	}
	if got := inc.PayloadBytes(TwoD); got != 24 {
		t.Errorf("expected 24 bytes per 2d file, got %d", got)
	}
	if got := inc.PayloadBytes(ThreeD); got != 120 {
		t.Errorf("expected 120 bytes per 3d file, got %d", got)
	}
	rowBytes, err := RowBytes(rawvol.NewExtents3d(1, 2, 0, 2, 0, 4), Element{rawvol.T_uint16, 3})
	if err != nil {
		t.Fatal(err)
	}
	if rowBytes != 12 {
		t.Errorf("expected 12 row bytes, got %d", rowBytes)
	}
}

func TestMirrorOffsets(t *testing.T) {
	for _, ext := range []rawvol.Extents3d{
		rawvol.NewExtents3d(0, 7, 0, 5, 0, 3),
		rawvol.NewExtents3d(2, 9, 3, 11, -2, 1),
	} {
		inc, err := StrideFor(ext, Element{rawvol.T_int32, 2})
		if err != nil {
			t.Fatal(err)
		}
		for _, dim := range []Dimensionality{TwoD, ThreeD} {
			upper := SeekCalculator{Extent: ext, Increments: inc, RowOrder: OriginUpperLeft, Dimensionality: dim}
			lower := SeekCalculator{Extent: ext, Increments: inc, RowOrder: OriginLowerLeft, Dimensionality: dim}
			yMin, yMax := ext.MinPoint[1], ext.MaxPoint[1]
			for k := ext.MinPoint[2]; k <= ext.MaxPoint[2]; k++ {
				for j := yMin; j <= yMax; j++ {
					i := ext.MinPoint[0] + 1
					up, err := upper.Offset(i, j, k, 64)
					if err != nil {
						t.Fatal(err)
					}
					low, err := lower.Offset(i, yMin+yMax-j, k, 64)
					if err != nil {
						t.Fatal(err)
					}
					if up != low {
						t.Errorf("extent %s dim %s: upper-left row %d at %d, lower-left row %d at %d",
							ext, dim, j, up, yMin+yMax-j, low)
					}
				}
			}
		}
	}
}

func TestSeekOffsets(t *testing.T) {
	ext := rawvol.NewExtents3d(0, 3, 0, 2, 0, 1)
	inc, _ := StrideFor(ext, Element{rawvol.T_uint16, 1})
	s := SeekCalculator{Extent: ext, Increments: inc, RowOrder: OriginLowerLeft, Dimensionality: ThreeD}
	tests := []struct {
		i, j, k  int32
		header   int64
		expected int64
	}{
		{0, 0, 0, 0, 0},
		{1, 0, 0, 0, 2},
		{0, 1, 0, 0, 8},
		{0, 0, 1, 0, 24},
		{3, 2, 1, 10, 10 + 6 + 16 + 24},
	}
	for _, tc := range tests {
		offset, err := s.Offset(tc.i, tc.j, tc.k, tc.header)
		if err != nil {
			t.Fatal(err)
		}
		if offset != tc.expected {
			t.Errorf("(%d,%d,%d) header %d: expected offset %d, got %d", tc.i, tc.j, tc.k, tc.header, tc.expected, offset)
		}
	}

	// 2d files ignore the slice
	s.Dimensionality = TwoD
	if offset, _ := s.Offset(0, 0, 1, 0); offset != 0 {
		t.Errorf("expected 2d offset 0 for slice 1, got %d", offset)
	}

	// upper-left stores the top row first
	s.RowOrder = OriginUpperLeft
	if offset, _ := s.Offset(0, 2, 0, 0); offset != 0 {
		t.Errorf("expected upper-left top row at 0, got %d", offset)
	}

	if _, err := s.Offset(0, 2, 0, -4); !errors.Is(err, rawvol.ErrInvalidSeekOffset) {
		t.Errorf("expected invalid seek offset for negative result, got %v", err)
	}
	if _, err := s.Offset(4, 0, 0, 0); !errors.Is(err, rawvol.ErrInvalidSeekOffset) {
		t.Errorf("expected invalid seek offset outside extent, got %v", err)
	}
}

// statSource fails every Stat and counts the calls.
type statSource struct {
	storage.Source
	stats int
}

func (s *statSource) Stat(ctx context.Context, path string) (int64, error) {
	s.stats++
	return 0, errors.New("permission denied")
}

func TestResolveHeader(t *testing.T) {
	ctx := context.Background()
	ext := rawvol.NewExtents3d(0, 3, 0, 2, 0, 4)
	el := Element{rawvol.T_uint16, 1}
	mem := storage.NewMemory(make([]byte, 24+16))

	tests := []struct {
		hdr      HeaderSize
		dim      Dimensionality
		expected int64
	}{
		{AutoHeader, TwoD, 16},
		{AutoHeader, ThreeD, 0}, // file smaller than the volume clamps to 0
		{ManualHeader(7), TwoD, 7},
		{ManualHeader(0), ThreeD, 0},
	}
	for i, tc := range tests {
		header, err := ResolveHeader(ctx, mem, "slice", tc.hdr, el, ext, tc.dim)
		if err != nil {
			t.Fatalf("test %d: %v", i, err)
		}
		if header != tc.expected {
			t.Errorf("test %d: expected header %d, got %d", i, tc.expected, header)
		}
	}

	failing := &statSource{Source: mem}
	if _, err := ResolveHeader(ctx, failing, "slice", AutoHeader, el, ext, TwoD); !errors.Is(err, rawvol.ErrFileNotAccessible) {
		t.Errorf("expected file not accessible, got %v", err)
	}
	if _, err := ResolveHeader(ctx, failing, "slice", ManualHeader(3), el, ext, TwoD); err != nil {
		t.Errorf("manual header should not stat: %v", err)
	}
	if failing.stats != 1 {
		t.Errorf("expected 1 stat call, got %d", failing.stats)
	}
}

func TestStrategyExclusive(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SetFileName("vol.raw")
	if name, ok := cfg.FileName(); !ok || name != "vol.raw" {
		t.Errorf("expected file name vol.raw, got %q %t", name, ok)
	}

	cfg.SetFilePrefix("img")
	if _, ok := cfg.FileName(); ok {
		t.Errorf("setting a prefix should clear the file name")
	}
	cfg.SetFilePattern("%s_%03d.raw")
	if prefix, ok := cfg.FilePrefix(); !ok || prefix != "img" {
		t.Errorf("setting a pattern should keep the prefix, got %q %t", prefix, ok)
	}

	cfg.SetFileNames([]string{"a", "b"})
	if _, ok := cfg.FilePrefix(); ok {
		t.Errorf("setting a file list should clear the prefix")
	}
	if _, ok := cfg.FilePattern(); ok {
		t.Errorf("setting a file list should clear the pattern")
	}

	cfg.SetFileName("other.raw")
	if _, ok := cfg.FileNames(); ok {
		t.Errorf("setting a file name should clear the file list")
	}

	cfg.SetFilePrefix("img")
	if pattern, ok := cfg.FilePattern(); !ok || pattern != naming.DefaultPattern {
		t.Errorf("expected default pattern, got %q %t", pattern, ok)
	}
}

func TestFileListForcesZ(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SetDataExtent(rawvol.NewExtents3d(0, 9, 0, 9, 5, 20))
	cfg.SetFileNames([]string{"a", "b", "c"})
	if cfg.DataExtent.MinPoint[2] != 0 || cfg.DataExtent.MaxPoint[2] != 2 {
		t.Errorf("expected z forced to [0,2], got %s", cfg.DataExtent)
	}
	cfg.SetDataExtent(rawvol.NewExtents3d(0, 4, 0, 4, 7, 9))
	if cfg.DataExtent.MinPoint[2] != 0 || cfg.DataExtent.MaxPoint[2] != 2 {
		t.Errorf("expected z kept at [0,2], got %s", cfg.DataExtent)
	}
	if cfg.DataExtent.MaxPoint[0] != 4 {
		t.Errorf("expected x extent to change, got %s", cfg.DataExtent)
	}

	cfg.SetFileNames(nil)
	cfg.SetDataExtent(rawvol.NewExtents3d(0, 4, 0, 4, 7, 9))
	if cfg.DataExtent.MinPoint[2] != 7 || cfg.DataExtent.MaxPoint[2] != 9 {
		t.Errorf("empty file list should leave z alone, got %s", cfg.DataExtent)
	}
}

func TestHeaderSticky(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SetHeaderSize(512)
	cfg.SetDataExtent(rawvol.NewExtents3d(0, 9, 0, 9, 0, 9))
	cfg.Element = Element{rawvol.T_float32, 1}
	if n, manual := cfg.Header.Manual(); !manual || n != 512 {
		t.Errorf("expected manual header 512, got %d %t", n, manual)
	}
	cfg.ResetHeaderSize()
	if _, manual := cfg.Header.Manual(); manual {
		t.Errorf("expected automatic header after reset")
	}
}
