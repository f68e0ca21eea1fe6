package scrapyard

import "github.com/TheBitDrifter/mask"

// matchCache memoizes which archetypes match a required component mask.
// Creating an archetype bumps the version, dropping every cached result at
// once instead of tracking matches per entry.
type matchCache struct {
	version uint64
	entries map[mask.Mask]matchEntry
}

type matchEntry struct {
	version uint64
	ids     []archetypeID
}

func newMatchCache() *matchCache {
	return &matchCache{entries: make(map[mask.Mask]matchEntry)}
}

func (c *matchCache) invalidate() {
	c.version++
}

func (c *matchCache) lookup(required mask.Mask, compute func() []archetypeID) []archetypeID {
	if entry, ok := c.entries[required]; ok && entry.version == c.version {
		return entry.ids
	}
	ids := compute()
	c.entries[required] = matchEntry{version: c.version, ids: ids}
	return ids
}
