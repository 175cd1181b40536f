/*
	Package config loads the TOML configuration of raw volumes to read, along with
	logging, caching and output settings.

	An example configuration:

		[logging]
		logfile = "rawvol.log"
		max_log_size = 500 # MB
		max_log_age = 30   # days

		[cache]
		stat_size = 16 # MB
		stat_ttl = 600 # seconds

		[output]
		dir = "out"
		compression = "zstd"
		checksum = "crc32"

		[[volume]]
		name = "brain"
		prefix = "slices/brain"
		pattern = "%s.%03d"
		extent = [0, 511, 0, 511, 0, 99]
		read_extent = [100, 199, 100, 199, 0, 9]
		scalar = "uint16"
		byte_order = "big"
		row_order = "lower-left"
		dimensionality = 2
*/
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/janelia-flyem/rawvol/naming"
	"github.com/janelia-flyem/rawvol/rawvol"
	"github.com/janelia-flyem/rawvol/reader"
)

const (
	// DefaultStatTTL is the number of seconds a cached file size is kept.
	DefaultStatTTL = 300

	// DefaultOutputDir is used if no output directory is configured.
	DefaultOutputDir = "."
)

// Config is the parsed TOML configuration.
type Config struct {
	Logging rawvol.LogConfig
	Cache   CacheConfig
	Output  OutputConfig
	Volume  []VolumeConfig

	location string
}

type CacheConfig struct {
	StatSize int `toml:"stat_size"` // MB
	StatTTL  int `toml:"stat_ttl"`  // seconds
}

type OutputConfig struct {
	Dir         string             `toml:"dir"`
	Compression rawvol.Compression `toml:"compression"`
	Checksum    rawvol.Checksum    `toml:"checksum"`
}

// VolumeConfig describes one raw volume and the extent to read from it.  Exactly
// one of File, Prefix/Pattern or Files names its files.
type VolumeConfig struct {
	Name string `toml:"name"`

	// Source is a bucket URL the files are read from.  Empty reads the local filesystem.
	Source string `toml:"source"`

	File    string   `toml:"file"`
	Prefix  string   `toml:"prefix"`
	Pattern string   `toml:"pattern"`
	Files   []string `toml:"files"`

	Extent     []int32 `toml:"extent"`
	ReadExtent []int32 `toml:"read_extent"`

	Scalar         string `toml:"scalar"`
	Components     int32  `toml:"components"`
	HeaderSize     *int64 `toml:"header_size"`
	ByteOrder      string `toml:"byte_order"`
	RowOrder       string `toml:"row_order"`
	Dimensionality int    `toml:"dimensionality"`

	SliceOffset  int32 `toml:"slice_offset"`
	SliceSpacing int32 `toml:"slice_spacing"`

	Spacing   []float64 `toml:"spacing"`
	Origin    []float64 `toml:"origin"`
	Direction []float64 `toml:"direction"`
}

// Local returns true if the volume's files are on the local filesystem.
func (v VolumeConfig) Local() bool {
	return v.Source == ""
}

// ReaderConfig converts the volume settings into a reader configuration.
func (v VolumeConfig) ReaderConfig() (reader.Config, error) {
	cfg := reader.DefaultConfig()
	var err error
	if cfg.Naming, err = naming.New(v.File, v.Prefix, v.Pattern, v.Files); err != nil {
		return cfg, fmt.Errorf("volume %q: %w", v.Name, err)
	}

	if len(v.Extent) == 0 {
		return cfg, fmt.Errorf("volume %q: no extent given", v.Name)
	}
	ext, err := rawvol.ExtentsFromBounds(v.Extent)
	if err != nil {
		return cfg, fmt.Errorf("volume %q: bad extent: %w", v.Name, err)
	}
	cfg.SetDataExtent(ext)

	if v.Scalar != "" {
		if cfg.Element.Kind, err = rawvol.ParseScalarKind(v.Scalar); err != nil {
			return cfg, fmt.Errorf("volume %q: %w", v.Name, err)
		}
	}
	if v.Components != 0 {
		cfg.Element.Components = v.Components
	}
	if _, err := cfg.Element.Bytes(); err != nil {
		return cfg, fmt.Errorf("volume %q: %w", v.Name, err)
	}

	if v.HeaderSize != nil {
		if *v.HeaderSize < 0 {
			return cfg, fmt.Errorf("volume %q: negative header_size %d", v.Name, *v.HeaderSize)
		}
		cfg.SetHeaderSize(*v.HeaderSize)
	}

	switch strings.ToLower(v.ByteOrder) {
	case "", "native":
		cfg.ByteOrder = rawvol.Native
	case "swapped":
		cfg.ByteOrder = rawvol.Swapped
	case "big", "bigendian", "big-endian":
		cfg.SetDataByteOrderToBigEndian()
	case "little", "littleendian", "little-endian":
		cfg.SetDataByteOrderToLittleEndian()
	default:
		return cfg, fmt.Errorf("volume %q: unknown byte_order %q", v.Name, v.ByteOrder)
	}

	switch strings.ToLower(v.RowOrder) {
	case "", "upper-left":
		cfg.RowOrder = reader.OriginUpperLeft
	case "lower-left":
		cfg.RowOrder = reader.OriginLowerLeft
	default:
		return cfg, fmt.Errorf("volume %q: unknown row_order %q", v.Name, v.RowOrder)
	}

	switch v.Dimensionality {
	case 0, 2:
		cfg.Dimensionality = reader.TwoD
	case 3:
		cfg.Dimensionality = reader.ThreeD
	default:
		return cfg, fmt.Errorf("volume %q: dimensionality must be 2 or 3, not %d", v.Name, v.Dimensionality)
	}

	cfg.Numbering.Offset = v.SliceOffset
	if v.SliceSpacing != 0 {
		cfg.Numbering.Spacing = v.SliceSpacing
	}

	if err := copyFloats(cfg.Spacing[:], v.Spacing, "spacing"); err != nil {
		return cfg, fmt.Errorf("volume %q: %w", v.Name, err)
	}
	if err := copyFloats(cfg.Origin[:], v.Origin, "origin"); err != nil {
		return cfg, fmt.Errorf("volume %q: %w", v.Name, err)
	}
	if err := copyFloats(cfg.Direction[:], v.Direction, "direction"); err != nil {
		return cfg, fmt.Errorf("volume %q: %w", v.Name, err)
	}
	return cfg, nil
}

func copyFloats(dst, src []float64, name string) error {
	if len(src) == 0 {
		return nil
	}
	if len(src) != len(dst) {
		return fmt.Errorf("%s needs %d values, got %d", name, len(dst), len(src))
	}
	copy(dst, src)
	return nil
}

// ReadExtentBounds returns the extent to read, which defaults to the whole data
// extent of the given reader configuration.
func (v VolumeConfig) ReadExtentBounds(cfg reader.Config) (rawvol.Extents3d, error) {
	if len(v.ReadExtent) == 0 {
		return cfg.DataExtent, nil
	}
	ext, err := rawvol.ExtentsFromBounds(v.ReadExtent)
	if err != nil {
		return ext, fmt.Errorf("volume %q: bad read_extent: %w", v.Name, err)
	}
	if !cfg.DataExtent.Contains(ext) {
		return ext, fmt.Errorf("volume %q: read_extent %s not within extent %s", v.Name, ext, cfg.DataExtent)
	}
	return ext, nil
}

// StatCacheSize returns the number of bytes to reserve for caching file sizes, or 0
// if sizes should not be cached.
func (c *Config) StatCacheSize() int {
	return c.Cache.StatSize * rawvol.Mega
}

// StatCacheTTL returns the number of seconds a cached file size is kept.
func (c *Config) StatCacheTTL() int {
	if c.Cache.StatTTL <= 0 {
		return DefaultStatTTL
	}
	return c.Cache.StatTTL
}

// Location returns the path of the loaded TOML file.
func (c *Config) Location() string {
	return c.location
}

// Some settings in the TOML can be given as relative paths.
// This function converts them in-place to absolute paths,
// assuming the given paths were relative to the TOML file's own directory.
func (c *Config) convertPathsToAbsolute(configPath string) error {
	var err error

	configDir := filepath.Dir(configPath)

	// [logging].logfile
	if c.Logging.Logfile != "" {
		c.Logging.Logfile, err = rawvol.ConvertToAbsolute(c.Logging.Logfile, configDir)
		if err != nil {
			return fmt.Errorf("Error converting logfile setting to absolute path")
		}
	}

	// [output].dir
	if c.Output.Dir == "" {
		c.Output.Dir = DefaultOutputDir
	}
	c.Output.Dir, err = rawvol.ConvertToAbsolute(c.Output.Dir, configDir)
	if err != nil {
		return fmt.Errorf("Error converting output dir to absolute path")
	}

	// [[volume]] file paths, only for the local filesystem
	for i := range c.Volume {
		v := &c.Volume[i]
		if !v.Local() {
			continue
		}
		if v.File != "" {
			if v.File, err = rawvol.ConvertToAbsolute(v.File, configDir); err != nil {
				return fmt.Errorf("Error converting file of volume %q to absolute path: %q", v.Name, v.File)
			}
		}
		if v.Prefix != "" {
			if v.Prefix, err = rawvol.ConvertToAbsolute(v.Prefix, configDir); err != nil {
				return fmt.Errorf("Error converting prefix of volume %q to absolute path: %q", v.Name, v.Prefix)
			}
		} else if v.Pattern != "" && !strings.Contains(v.Pattern, "%s") {
			if v.Pattern, err = rawvol.ConvertToAbsolute(v.Pattern, configDir); err != nil {
				return fmt.Errorf("Error converting pattern of volume %q to absolute path: %q", v.Name, v.Pattern)
			}
		}
		for j, path := range v.Files {
			if v.Files[j], err = rawvol.ConvertToAbsolute(path, configDir); err != nil {
				return fmt.Errorf("Error converting files[%d] of volume %q to absolute path: %q", j, v.Name, path)
			}
		}
	}
	return nil
}

func (c *Config) validate() error {
	names := make(map[string]struct{}, len(c.Volume))
	for i, v := range c.Volume {
		if v.Name == "" {
			return fmt.Errorf("volume %d has no name", i)
		}
		if _, found := names[v.Name]; found {
			return fmt.Errorf("volume %q given more than once", v.Name)
		}
		names[v.Name] = struct{}{}
	}
	return nil
}

// Find returns the configuration of the named volume.
func (c *Config) Find(name string) (VolumeConfig, bool) {
	for _, v := range c.Volume {
		if v.Name == name {
			return v, true
		}
	}
	return VolumeConfig{}, false
}

// LoadConfig loads a configuration from a TOML file.
func LoadConfig(filename string) (*Config, error) {
	if filename == "" {
		return nil, fmt.Errorf("no TOML configuration file provided")
	}
	c := new(Config)
	md, err := toml.DecodeFile(filename, c)
	if err != nil {
		return nil, fmt.Errorf("could not decode TOML config: %v", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) != 0 {
		rawvol.Warningf("Ignoring unknown settings in %s: %v\n", filename, undecoded)
	}
	c.location = filename

	if err := c.validate(); err != nil {
		return nil, fmt.Errorf("bad TOML config %s: %v", filename, err)
	}
	if err := c.convertPathsToAbsolute(filename); err != nil {
		return nil, fmt.Errorf("could not convert relative paths to absolute paths in TOML config: %v", err)
	}
	rawvol.Debugf("Loaded %d volumes from %s\n", len(c.Volume), filename)
	return c, nil
}
