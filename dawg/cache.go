package dawg

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/domino14/crosshatch/cache"
	"github.com/domino14/crosshatch/config"
	"github.com/domino14/crosshatch/tilemapping"
)

const cachePrefix = "dawg:"

// ApproxSize returns the in-memory footprint of the graph, roughly.
func (d *SimpleDawg) ApproxSize() uint64 {
	return uint64(len(d.nodes))*4 + uint64(len(d.letterSets))*8
}

// CacheLoadFunc loads a DAWG from the configured data path for the
// global object cache.
func CacheLoadFunc(cfg *config.Config, key string) (interface{}, uint64, error) {
	lexiconName := strings.TrimPrefix(key, cachePrefix)
	path := filepath.Join(cfg.DataPath, "lexica", "dawg", lexiconName+".dawg")
	d, err := LoadFromFile(path)
	if err != nil {
		return nil, 0, err
	}
	return d, d.ApproxSize(), nil
}

// Get loads the named lexicon's DAWG through the global cache, so
// concurrent sessions of the same lexicon share one copy.
func Get(cfg *config.Config, name string) (*SimpleDawg, error) {
	obj, err := cache.Load(cfg, cachePrefix+name, CacheLoadFunc)
	if err != nil {
		return nil, err
	}
	d, ok := obj.(*SimpleDawg)
	if !ok {
		return nil, fmt.Errorf("cached object under %q is not a dawg", name)
	}
	return d, nil
}

// LetterSetForPrefix is a small debugging helper: it returns the set of
// letters that complete a word after the given prefix.
func (d *SimpleDawg) LetterSetForPrefix(prefix tilemapping.MachineWord) tilemapping.LetterSet {
	node := d.GetRootNodeIndex()
	for _, ml := range prefix {
		node = d.NextNodeIdx(node, ml)
		if node == 0 {
			return 0
		}
	}
	return d.GetLetterSet(node)
}
