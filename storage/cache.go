package storage

import (
	"context"
	"encoding/binary"
	"time"

	"github.com/coocood/freecache"
	"github.com/janelia-flyem/rawvol/rawvol"
)

// StatCache wraps a Source so file sizes are remembered for a while.  Header size
// detection stats every slice file of a volume, which for bucket sources is a round
// trip per slice, and repeated reads of the same volume ask again for each read.
type StatCache struct {
	Source
	cache         *freecache.Cache
	expireSeconds int
}

// NewStatCache returns a caching Source using about numBytes of memory for sizes that
// are remembered for ttl.  A ttl under a second keeps sizes until evicted.
func NewStatCache(src Source, numBytes int, ttl time.Duration) *StatCache {
	c := &StatCache{
		Source:        src,
		cache:         freecache.NewCache(numBytes),
		expireSeconds: int(ttl / time.Second),
	}
	mbs := numBytes >> 20
	rawvol.Debugf("Created freecache of ~ %d MB for file sizes.\n", mbs)
	return c
}

// Stat returns the cached size for path or asks the wrapped Source.
func (c *StatCache) Stat(ctx context.Context, path string) (int64, error) {
	key := []byte(path)
	if value, err := c.cache.Get(key); err == nil && len(value) == 8 {
		return int64(binary.LittleEndian.Uint64(value)), nil
	} else if err != nil && err != freecache.ErrNotFound {
		rawvol.Warningf("unable to get cached size of %q: %v\n", path, err)
	}
	size, err := c.Source.Stat(ctx, path)
	if err != nil {
		return 0, err
	}
	value := make([]byte, 8)
	binary.LittleEndian.PutUint64(value, uint64(size))
	if err := c.cache.Set(key, value, c.expireSeconds); err != nil {
		rawvol.Warningf("unable to cache size of %q: %v\n", path, err)
	}
	return size, nil
}

// HitRate returns the fraction of Stat calls answered from the cache.
func (c *StatCache) HitRate() float64 {
	return c.cache.HitRate()
}

// Clear forgets all cached sizes.
func (c *StatCache) Clear() {
	c.cache.Clear()
}
