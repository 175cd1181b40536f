/*
	Package reader reads axis-aligned extents of raw, regular-grid scalar volumes.

	A volume is stored as rows of interleaved element components, optionally after a
	fixed-size header, in one file per z slice or in a single file for the whole
	volume.  The Reader seeks to and reads exactly the rows of the requested extent,
	one row at a time, swapping byte order if needed.  Reads are synchronous and hold
	at most one open file; cancellation of the passed context is checked before each
	row.
*/
package reader

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/janelia-flyem/rawvol/naming"
	"github.com/janelia-flyem/rawvol/rawvol"
	"github.com/janelia-flyem/rawvol/storage"
)

// maxProgressUpdates bounds the number of progress calls for one read.
const maxProgressUpdates = 50

// Stats summarize a read.  A cancelled read is not an error: Cancelled is set and
// the destination holds the Rows rows read before cancellation was noticed.
type Stats struct {
	Rows      int64
	BytesRead int64
	Files     int
	Cancelled bool
}

// Reader reads raw volumes described by a Config.  A Reader is not safe for
// concurrent reads; use one Reader per goroutine.
type Reader struct {
	cfg      Config
	src      storage.Source
	progress func(float64)
}

type Option func(*Reader)

// WithSource reads files through src instead of the local filesystem.
func WithSource(src storage.Source) Option {
	return func(r *Reader) {
		r.src = src
	}
}

// WithProgress calls fn with the fraction of rows read, at most 50 times per read.
func WithProgress(fn func(float64)) Option {
	return func(r *Reader) {
		r.progress = fn
	}
}

// New returns a Reader for the given configuration, which is copied.
func New(cfg Config, opts ...Option) *Reader {
	r := &Reader{cfg: cfg, src: storage.Local{}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Config returns a copy of the reader's configuration.
func (r *Reader) Config() Config {
	return r.cfg
}

// SetConfig replaces the reader's configuration for subsequent reads.
func (r *Reader) SetConfig(cfg Config) {
	r.cfg = cfg
}

// plan is the state derived from a configuration at the start of a read.
type plan struct {
	cfg        Config
	src        storage.Source
	dim        Dimensionality
	increments Increments
	seeker     SeekCalculator
}

func (r *Reader) derive() (*plan, error) {
	cfg := r.cfg
	cfg.forceListExtent()

	p := &plan{cfg: cfg, src: r.src, dim: cfg.Dimensionality}
	if cfg.MemoryBuffer != nil {
		// a memory buffer holds the whole volume, like a 3d file
		p.src = storage.NewMemory(cfg.MemoryBuffer)
		p.dim = ThreeD
	} else if cfg.Naming == nil {
		return nil, rawvol.ErrNoIdentitySpecified
	}
	if !cfg.DataExtent.Valid() {
		return nil, fmt.Errorf("%w: data extent %s has a max below its min", rawvol.ErrInvalidSeekOffset, cfg.DataExtent)
	}
	var err error
	if p.increments, err = StrideFor(cfg.DataExtent, cfg.Element); err != nil {
		return nil, err
	}
	p.seeker = SeekCalculator{
		Extent:         cfg.DataExtent,
		Increments:     p.increments,
		RowOrder:       cfg.RowOrder,
		Dimensionality: p.dim,
	}
	return p, nil
}

// openFile is the single file a read holds open.
type openFile struct {
	storage.File
	path   string
	header int64
}

// open resolves and opens the file for a slice and determines its header size.
func (p *plan) open(ctx context.Context, slice int32) (*openFile, error) {
	var path string
	if p.cfg.MemoryBuffer == nil {
		var err error
		if path, err = naming.Resolve(p.cfg.Naming, slice, p.cfg.Numbering); err != nil {
			return nil, err
		}
	}
	rawvol.Debugf("Opening file %q for slice %d\n", path, slice)
	f, err := p.src.Open(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w %q for slice %d: %v", rawvol.ErrFileOpen, path, slice, err)
	}
	header, err := ResolveHeader(ctx, p.src, path, p.cfg.Header, p.cfg.Element, p.cfg.DataExtent, p.dim)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &openFile{File: f, path: path, header: header}, nil
}

// Read reads the whole data extent into dst.  With an explicit file list the z
// extent is that of the list.
func (r *Reader) Read(ctx context.Context, dst []byte) (Stats, error) {
	cfg := r.cfg
	cfg.forceListExtent()
	return r.ReadExtent(ctx, cfg.DataExtent, dst)
}

// ReadExtent reads the voxels of ext, which must be within the data extent, into
// dst in x-fastest order with rows ascending in y then z.  dst must hold at least
// the extent's bytes; bytes of rows not reached because of an error or
// cancellation are left untouched.
func (r *Reader) ReadExtent(ctx context.Context, ext rawvol.Extents3d, dst []byte) (stats Stats, err error) {
	timedLog := rawvol.NewTimeLog()
	p, err := r.derive()
	if err != nil {
		return
	}
	if !ext.Valid() || !p.cfg.DataExtent.Contains(ext) {
		err = fmt.Errorf("%w: read extent %s not within data extent %s",
			rawvol.ErrInvalidSeekOffset, ext, p.cfg.DataExtent)
		return
	}
	rowBytes, err := RowBytes(ext, p.cfg.Element)
	if err != nil {
		return
	}
	size := ext.Size()
	numRows := int64(size[1]) * int64(size[2])
	if needed := numRows * rowBytes; int64(len(dst)) < needed {
		err = fmt.Errorf("%w: %d bytes for %s, need %d", rawvol.ErrBufferTooSmall, len(dst), ext, needed)
		return
	}
	valueBytes, _ := p.cfg.Element.ValueBytes()
	swap := p.cfg.ByteOrder == rawvol.Swapped && valueBytes > 1

	var f *openFile
	defer func() {
		if f != nil {
			f.Close()
		}
		if err != nil {
			rawvol.Warningf("Read of %s failed after %d rows: %v\n", ext, stats.Rows, err)
		}
	}()

	if p.dim == ThreeD {
		if f, err = p.open(ctx, 0); err != nil {
			return
		}
		stats.Files++
	}

	target := numRows/maxProgressUpdates + 1
	var count, pos int64
	for k := ext.MinPoint[2]; k <= ext.MaxPoint[2]; k++ {
		if p.dim == TwoD {
			if f, err = p.open(ctx, k); err != nil {
				return
			}
			stats.Files++
		}
		for j := ext.MinPoint[1]; j <= ext.MaxPoint[1]; j++ {
			if ctx.Err() != nil {
				stats.Cancelled = true
				rawvol.Infof("Read of %s cancelled after %d of %d rows\n", ext, stats.Rows, numRows)
				return
			}
			if r.progress != nil && count%target == 0 {
				r.progress(float64(count) / float64(numRows))
			}
			count++

			var offset int64
			if offset, err = p.seeker.Offset(ext.MinPoint[0], j, k, f.header); err != nil {
				return
			}
			row := dst[pos : pos+rowBytes]
			n, readErr := f.ReadAt(row, offset)
			if int64(n) < rowBytes {
				if readErr == nil || errors.Is(readErr, io.EOF) {
					readErr = io.ErrUnexpectedEOF
				}
				err = fmt.Errorf("%w: row %d of slice %d in %q: read %d of %d bytes at offset %d: %v",
					rawvol.ErrShortRead, j, k, f.path, n, rowBytes, offset, readErr)
				return
			}
			if swap {
				rawvol.SwapRange(row, int(valueBytes))
			}
			pos += rowBytes
			stats.Rows++
			stats.BytesRead += rowBytes
		}
		if p.dim == TwoD {
			f.Close()
			f = nil
		}
	}
	timedLog.Debugf("Read %s (%s) of %s from %d files", ext, humanize.Bytes(uint64(stats.BytesRead)),
		p.cfg.Element, stats.Files)
	return
}

// ReadImage allocates and reads the voxels of ext along with the configured geometry.
func (r *Reader) ReadImage(ctx context.Context, ext rawvol.Extents3d) (*Image, Stats, error) {
	img, err := NewImage(ext, r.cfg)
	if err != nil {
		return nil, Stats{}, err
	}
	stats, err := r.ReadExtent(ctx, ext, img.Data)
	if err != nil {
		return nil, stats, err
	}
	return img, stats, nil
}

// Layout describes how a configured volume maps to its files.
type Layout struct {
	DataExtent rawvol.Extents3d
	Increments Increments
	RowBytes   int64

	// FirstFile is the file of the first slice and HeaderSize its header size.
	FirstFile  string
	HeaderSize int64
}

// Inspect derives the layout of the configured volume, opening the file of the
// first stored slice to determine its header size.
func (r *Reader) Inspect(ctx context.Context) (Layout, error) {
	p, err := r.derive()
	if err != nil {
		return Layout{}, err
	}
	rowBytes, err := RowBytes(p.cfg.DataExtent, p.cfg.Element)
	if err != nil {
		return Layout{}, err
	}
	slice := p.cfg.DataExtent.MinPoint[2]
	if p.dim == ThreeD {
		slice = 0
	}
	f, err := p.open(ctx, slice)
	if err != nil {
		return Layout{}, err
	}
	defer f.Close()
	return Layout{
		DataExtent: p.cfg.DataExtent,
		Increments: p.increments,
		RowBytes:   rowBytes,
		FirstFile:  f.path,
		HeaderSize: f.header,
	}, nil
}
