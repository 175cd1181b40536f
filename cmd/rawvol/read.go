package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/dustin/go-humanize"
	"github.com/twinj/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/janelia-flyem/rawvol/config"
	"github.com/janelia-flyem/rawvol/rawvol"
	"github.com/janelia-flyem/rawvol/reader"
	"github.com/janelia-flyem/rawvol/storage"
)

// Sidecar is the metadata written next to each serialized volume.
type Sidecar struct {
	Name       string             `toml:"name"`
	ReadID     string             `toml:"read_id"`
	Version    string             `toml:"version"`
	Extent     [6]int32           `toml:"extent"`
	DataExtent [6]int32           `toml:"data_extent"`
	Scalar     rawvol.ScalarKind  `toml:"scalar"`
	Components int32              `toml:"components"`
	Spacing    [3]float64         `toml:"spacing"`
	Origin     [3]float64         `toml:"origin"`
	Direction  [9]float64         `toml:"direction"`
	Bytes      int64              `toml:"bytes"`
	Rows       int64              `toml:"rows"`
	Files      int                `toml:"files"`
	Data       string             `toml:"data"`
	Compressed rawvol.Compression `toml:"compression"`
	Checksum   rawvol.Checksum    `toml:"checksum"`
}

// volumeSource returns the data source of a volume and a function to release it.
func volumeSource(ctx context.Context, c *config.Config, v config.VolumeConfig) (storage.Source, func(), error) {
	var src storage.Source = storage.Local{}
	release := func() {}
	if !v.Local() {
		bucket, err := storage.OpenBucket(ctx, v.Source)
		if err != nil {
			return nil, release, fmt.Errorf("volume %q: %w", v.Name, err)
		}
		b := storage.NewBucket(bucket)
		src = b
		release = func() {
			if err := b.Close(); err != nil {
				rawvol.Errorf("Closing bucket %q of volume %q: %v\n", v.Source, v.Name, err)
			}
		}
	}
	if size := c.StatCacheSize(); size > 0 {
		cache := storage.NewStatCache(src, size, time.Duration(c.StatCacheTTL())*time.Second)
		src = cache
		prev := release
		release = func() {
			rawvol.Debugf("Stat cache hit rate for volume %q: %.2f\n", v.Name, cache.HitRate())
			prev()
		}
	}
	return src, release, nil
}

// DoInfo performs the "info" command, showing how each configured volume maps to its files.
func DoInfo(ctx context.Context, cmd Command) error {
	c, err := config.LoadConfig(cmd.Argument(1))
	if err != nil {
		return err
	}
	for _, v := range c.Volume {
		cfg, err := v.ReaderConfig()
		if err != nil {
			return err
		}
		ext, err := v.ReadExtentBounds(cfg)
		if err != nil {
			return err
		}
		src, release, err := volumeSource(ctx, c, v)
		if err != nil {
			return err
		}
		layout, err := reader.New(cfg, reader.WithSource(src)).Inspect(ctx)
		release()
		if err != nil {
			return fmt.Errorf("volume %q: %w", v.Name, err)
		}
		readBytes := ext.NumVoxels() * layout.Increments[0]
		fmt.Printf("Volume %q\n", v.Name)
		fmt.Printf("%s", cfg)
		fmt.Printf("Increments: %v\n", layout.Increments)
		fmt.Printf("Row Bytes: %d\n", layout.RowBytes)
		fmt.Printf("Volume Bytes: %s\n", humanize.Bytes(uint64(layout.Increments[3])))
		fmt.Printf("First File: %s (header %d bytes)\n", layout.FirstFile, layout.HeaderSize)
		fmt.Printf("Read Extent: %s (%s)\n\n", ext, humanize.Bytes(uint64(readBytes)))
	}
	return nil
}

// DoRead performs the "read" command, reading every configured volume concurrently.
func DoRead(ctx context.Context, cmd Command) error {
	c, err := config.LoadConfig(cmd.Argument(1))
	if err != nil {
		return err
	}
	c.Logging.SetLogger()
	if err := os.MkdirAll(c.Output.Dir, 0755); err != nil {
		return fmt.Errorf("could not create output directory %q: %v", c.Output.Dir, err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(numCPU)
	for _, v := range c.Volume {
		g.Go(func() error {
			return readVolume(gctx, c, v)
		})
	}
	return g.Wait()
}

func readVolume(ctx context.Context, c *config.Config, v config.VolumeConfig) error {
	timedLog := rawvol.NewTimeLog()
	readID := fmt.Sprintf("%x", uuid.NewV4().Bytes())

	cfg, err := v.ReaderConfig()
	if err != nil {
		return err
	}
	ext, err := v.ReadExtentBounds(cfg)
	if err != nil {
		return err
	}
	src, release, err := volumeSource(ctx, c, v)
	if err != nil {
		return err
	}
	defer release()

	progress := func(f float64) {
		rawvol.Debugf("[%s] volume %q: %.0f%% read\n", readID, v.Name, f*100)
	}
	rawvol.Infof("[%s] Reading extent %s of volume %q\n", readID, ext, v.Name)
	img, stats, err := reader.New(cfg, reader.WithSource(src), reader.WithProgress(progress)).ReadImage(ctx, ext)
	if err != nil {
		return fmt.Errorf("volume %q: %w", v.Name, err)
	}
	if stats.Cancelled {
		return fmt.Errorf("volume %q: read cancelled after %d rows: %w", v.Name, stats.Rows, ctx.Err())
	}

	serialization, err := rawvol.SerializeData(img.Data, c.Output.Compression, c.Output.Checksum)
	if err != nil {
		return fmt.Errorf("volume %q: %w", v.Name, err)
	}
	dataPath := filepath.Join(c.Output.Dir, v.Name+".raw")
	if err := os.WriteFile(dataPath, serialization, 0644); err != nil {
		return fmt.Errorf("volume %q: %w", v.Name, err)
	}

	sidecar := Sidecar{
		Name:       v.Name,
		ReadID:     readID,
		Version:    rawvol.Version.String(),
		Extent:     img.Extent.Bounds(),
		DataExtent: cfg.DataExtent.Bounds(),
		Scalar:     img.Element.Kind,
		Components: img.Element.Components,
		Spacing:    img.Spacing,
		Origin:     img.Origin,
		Direction:  img.Direction,
		Bytes:      img.Bytes(),
		Rows:       stats.Rows,
		Files:      stats.Files,
		Data:       filepath.Base(dataPath),
		Compressed: c.Output.Compression,
		Checksum:   c.Output.Checksum,
	}
	if err := writeSidecar(filepath.Join(c.Output.Dir, v.Name+".toml"), sidecar); err != nil {
		return fmt.Errorf("volume %q: %w", v.Name, err)
	}
	timedLog.Infof("[%s] Read volume %q extent %s: %s in %d rows from %d files, wrote %s to %s",
		readID, v.Name, ext, humanize.Bytes(uint64(stats.BytesRead)), stats.Rows, stats.Files,
		humanize.Bytes(uint64(len(serialization))), dataPath)
	return nil
}

func writeSidecar(path string, sidecar Sidecar) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := toml.NewEncoder(f).Encode(sidecar); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
