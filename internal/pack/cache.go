package pack

import "image"

// BandCache holds the decoded bands of one group, keyed by canonical
// suffix. It belongs to a single group and is never shared.
type BandCache struct {
	items map[string]*cacheEntry
	order []string
}

type cacheEntry struct {
	bands  []image.Image
	failed bool // decode was attempted and failed; bands is nil
}

// NewBandCache returns an empty cache.
func NewBandCache() *BandCache {
	return &BandCache{items: make(map[string]*cacheEntry)}
}

// Len returns the number of cached suffixes, failed ones included.
func (c *BandCache) Len() int {
	return len(c.items)
}

// Has reports whether suffix was already loaded or attempted.
func (c *BandCache) Has(suffix string) bool {
	_, ok := c.items[suffix]
	return ok
}

// Bands returns the bands for suffix. ok is false when the suffix was never
// loaded or its decode failed.
func (c *BandCache) Bands(suffix string) ([]image.Image, bool) {
	e, exists := c.items[suffix]
	if !exists || e.failed {
		return nil, false
	}
	return e.bands, true
}

// Put stores the bands for suffix.
func (c *BandCache) Put(suffix string, bands []image.Image) {
	c.store(suffix, &cacheEntry{bands: bands})
}

// MarkFailed records a failed decode for suffix.
func (c *BandCache) MarkFailed(suffix string) {
	c.store(suffix, &cacheEntry{failed: true})
}

func (c *BandCache) store(suffix string, e *cacheEntry) {
	if _, exists := c.items[suffix]; !exists {
		c.order = append(c.order, suffix)
	}
	c.items[suffix] = e
}

// canvas returns the bounds of the first usable band in load order.
func (c *BandCache) canvas() (image.Rectangle, bool) {
	for _, s := range c.order {
		if e := c.items[s]; !e.failed && len(e.bands) > 0 && e.bands[0] != nil {
			return e.bands[0].Bounds(), true
		}
	}
	return image.Rectangle{}, false
}
