package providers

import (
	"activitydash/internal/structures"
	"encoding/binary"
	"strconv"
	"sync/atomic"
	"time"
	"unsafe"

	"github.com/coocood/freecache"
)

// DefaultCacheSizeMB leaves 64KB per freecache entry, enough for a full
// posts view. Larger values are split into chunks.
const DefaultCacheSizeMB = 64

// entryHeaderSize mirrors freecache's per-entry header, which counts against
// the size/1024 limit on key plus value.
const entryHeaderSize = 24

const (
	entryInline byte = iota
	entryChunked
)

// CacheProviderInterface backs the per-session view state. A zero ttl keeps
// the entry until it is evicted or overwritten.
type CacheProviderInterface interface {
	Get(key string) ([]byte, bool)
	Set(key string, value []byte, ttl time.Duration)
	Del(key string)
}

type CacheProvider struct {
	cache    *freecache.Cache
	logger   Logger
	maxEntry int
	gen      atomic.Uint64
}

func NewCacheProvider(conf *structures.Config, logger Logger) CacheProviderInterface {
	if !conf.Cache.Enabled || conf.Cache.Size <= 0 {
		logger.Warnf(TypeApp, "View state store disabled: toasts and workflow status will not survive redirects")
		return &noopCache{}
	}

	sizeBytes := conf.Cache.Size * 1024 * 1024
	logger.Infof(TypeApp, "View state store initialized: %dMB", conf.Cache.Size)
	return &CacheProvider{
		cache:    freecache.NewCache(sizeBytes),
		logger:   logger,
		maxEntry: sizeBytes/1024 - entryHeaderSize,
	}
}

// unsafeStringToBytes converts string to []byte without allocation.
// freecache copies keys internally, so the result is never mutated.
func unsafeStringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

// ttlSeconds rounds up so that sub-second lifetimes still expire.
func ttlSeconds(ttl time.Duration) int {
	if ttl <= 0 {
		return 0
	}
	secs := int(ttl / time.Second)
	if ttl%time.Second != 0 {
		secs++
	}
	return secs
}

func chunkKey(key string, gen uint64, i int) string {
	return key + "\x00" + strconv.FormatUint(gen, 36) + "." + strconv.Itoa(i)
}

// manifest describes a chunked value: the write generation and chunk count.
type manifest struct {
	gen    uint64
	chunks int
}

func decodeManifest(b []byte) (manifest, bool) {
	gen, n := binary.Uvarint(b)
	if n <= 0 {
		return manifest{}, false
	}
	chunks, m := binary.Uvarint(b[n:])
	if m <= 0 {
		return manifest{}, false
	}
	return manifest{gen: gen, chunks: int(chunks)}, true
}

func (c *CacheProvider) Get(key string) ([]byte, bool) {
	val, err := c.cache.Get(unsafeStringToBytes(key))
	if err != nil || len(val) == 0 {
		return nil, false
	}
	switch val[0] {
	case entryInline:
		return val[1:], true
	case entryChunked:
		mf, ok := decodeManifest(val[1:])
		if !ok {
			return nil, false
		}
		return c.assemble(key, mf)
	}
	return nil, false
}

// assemble reports a miss when any chunk has been evicted.
func (c *CacheProvider) assemble(key string, mf manifest) ([]byte, bool) {
	var out []byte
	for i := 0; i < mf.chunks; i++ {
		part, err := c.cache.Get(unsafeStringToBytes(chunkKey(key, mf.gen, i)))
		if err != nil {
			return nil, false
		}
		out = append(out, part...)
	}
	return out, true
}

func (c *CacheProvider) Set(key string, value []byte, ttl time.Duration) {
	previous, hadPrevious := c.manifest(key)
	secs := ttlSeconds(ttl)

	var ok bool
	if len(key)+1+len(value) <= c.maxEntry {
		entry := make([]byte, 0, len(value)+1)
		entry = append(append(entry, entryInline), value...)
		ok = c.store(key, entry, secs)
	} else {
		ok = c.setChunked(key, value, secs)
	}
	if !ok {
		// never serve the value this write meant to replace
		c.Del(key)
		return
	}
	if hadPrevious {
		c.dropChunks(key, previous)
	}
}

func (c *CacheProvider) setChunked(key string, value []byte, secs int) bool {
	gen := c.gen.Add(1)
	// room for the generation and index suffix
	size := c.maxEntry - len(key) - 32
	if size <= 0 {
		c.logger.Warnf(TypeApp, "View state entry %q dropped: key too long for %d byte entries", key, c.maxEntry)
		return false
	}

	mf := manifest{gen: gen}
	for start := 0; start < len(value); start += size {
		end := min(start+size, len(value))
		if !c.store(chunkKey(key, gen, mf.chunks), value[start:end], secs) {
			c.dropChunks(key, mf)
			return false
		}
		mf.chunks++
	}

	entry := []byte{entryChunked}
	entry = binary.AppendUvarint(entry, mf.gen)
	entry = binary.AppendUvarint(entry, uint64(mf.chunks))
	if !c.store(key, entry, secs) {
		c.dropChunks(key, mf)
		return false
	}
	return true
}

func (c *CacheProvider) store(key string, value []byte, secs int) bool {
	if err := c.cache.Set(unsafeStringToBytes(key), value, secs); err != nil {
		c.logger.Warnf(TypeApp, "View state entry %q dropped (%d bytes): %s", key, len(value), err)
		return false
	}
	return true
}

func (c *CacheProvider) manifest(key string) (manifest, bool) {
	val, err := c.cache.Get(unsafeStringToBytes(key))
	if err != nil || len(val) == 0 || val[0] != entryChunked {
		return manifest{}, false
	}
	return decodeManifest(val[1:])
}

func (c *CacheProvider) dropChunks(key string, mf manifest) {
	for i := 0; i < mf.chunks; i++ {
		c.cache.Del(unsafeStringToBytes(chunkKey(key, mf.gen, i)))
	}
}

func (c *CacheProvider) Del(key string) {
	mf, chunked := c.manifest(key)
	c.cache.Del(unsafeStringToBytes(key))
	if chunked {
		c.dropChunks(key, mf)
	}
}

type noopCache struct{}

func (n *noopCache) Get(_ string) ([]byte, bool)             { return nil, false }
func (n *noopCache) Set(_ string, _ []byte, _ time.Duration) {}
func (n *noopCache) Del(_ string)                            {}
