package progress

import (
	"slices"
	"sync"
)

type cacheKey struct {
	userID       string
	collectionID string
}

// completionCache memoizes completion reports per (user, collection).
// A report computed before an invalidation is never stored: put compares the
// version observed before computing with the current one.
type completionCache struct {
	mu       sync.Mutex
	epoch    uint64
	versions map[cacheKey]uint64
	entries  map[cacheKey]CompletionReport
}

type cacheVersion struct {
	epoch   uint64
	version uint64
}

func newCompletionCache() *completionCache {
	return &completionCache{
		versions: make(map[cacheKey]uint64),
		entries:  make(map[cacheKey]CompletionReport),
	}
}

func (c *completionCache) get(key cacheKey) (CompletionReport, cacheVersion, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	v := cacheVersion{epoch: c.epoch, version: c.versions[key]}
	report, ok := c.entries[key]
	if !ok {
		return CompletionReport{}, v, false
	}
	return cloneReport(report), v, true
}

func (c *completionCache) put(key cacheKey, v cacheVersion, report CompletionReport) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if v.epoch != c.epoch || v.version != c.versions[key] {
		return
	}
	c.entries[key] = cloneReport(report)
}

func (c *completionCache) invalidate(userID, collectionID string) {
	key := cacheKey{userID: userID, collectionID: collectionID}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.versions[key]++
	delete(c.entries, key)
}

func (c *completionCache) invalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	c.versions = make(map[cacheKey]uint64)
	c.entries = make(map[cacheKey]CompletionReport)
}

func cloneReport(r CompletionReport) CompletionReport {
	r.Steps = slices.Clone(r.Steps)
	return r
}
