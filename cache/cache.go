// Package cache is a global cache for large shared objects, above all
// loaded dictionary graphs. Several sessions of the same lexicon should
// share one graph rather than each paying hundreds of megabytes for
// their own copy.
package cache

import (
	"sync"

	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"

	"github.com/domino14/crosshatch/config"
)

type entry struct {
	obj  interface{}
	size uint64
	key  string
}

type cache struct {
	sync.Mutex
	objects map[string]*entry
	// insertion order, oldest first, for eviction
	order     []string
	totalSize uint64
	maxSize   uint64
}

// A LoadFunc materializes the object for a cache key, returning the
// object and its approximate size in bytes.
type LoadFunc func(cfg *config.Config, key string) (interface{}, uint64, error)

// GlobalObjectCache is our global object cache, of course.
var GlobalObjectCache *cache

// CreateGlobalObjectCache initializes the global cache, capping it at
// the given fraction of total system memory. Fractions outside (0, 1]
// fall back to a quarter of memory.
func CreateGlobalObjectCache(fraction float64) {
	if fraction <= 0 || fraction > 1 {
		fraction = 0.25
	}
	GlobalObjectCache = &cache{
		objects: make(map[string]*entry),
		maxSize: uint64(float64(memory.TotalMemory()) * fraction),
	}
}

func (c *cache) load(cfg *config.Config, key string, loadFunc LoadFunc) error {
	log.Debug().Str("key", key).Msg("loading into cache")
	obj, size, err := loadFunc(cfg, key)
	if err != nil {
		return err
	}
	// Evict oldest entries until the newcomer fits. An object larger
	// than the whole budget is still cached alone; refusing it would
	// just shift the memory to the caller.
	for c.totalSize+size > c.maxSize && len(c.order) > 0 {
		oldest := c.order[0]
		c.order = c.order[1:]
		if e, ok := c.objects[oldest]; ok {
			log.Debug().Str("key", oldest).Uint64("size", e.size).Msg("evicting from cache")
			c.totalSize -= e.size
			delete(c.objects, oldest)
		}
	}
	c.objects[key] = &entry{obj: obj, size: size, key: key}
	c.order = append(c.order, key)
	c.totalSize += size
	return nil
}

func (c *cache) get(cfg *config.Config, key string, loadFunc LoadFunc) (interface{}, error) {
	c.Lock()
	defer c.Unlock()
	if e, ok := c.objects[key]; ok {
		log.Debug().Str("key", key).Msg("getting obj from cache")
		return e.obj, nil
	}
	if err := c.load(cfg, key, loadFunc); err != nil {
		return nil, err
	}
	return c.objects[key].obj, nil
}

// Load fetches the object for the key, loading and caching it on a
// miss.
func Load(cfg *config.Config, key string, loadFunc LoadFunc) (interface{}, error) {
	if GlobalObjectCache == nil {
		CreateGlobalObjectCache(cfg.CacheFractionOfMem)
	}
	return GlobalObjectCache.get(cfg, key, loadFunc)
}
