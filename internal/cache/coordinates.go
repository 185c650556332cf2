// Package cache holds postal code resolutions for the lifetime of the process.
package cache

import (
	"sync"

	"github.com/UnknownOlympus/loadmatch/internal/models"
)

// Coordinates memoizes postal code → coordinate resolutions. It is safe for concurrent use.
// Entries are never evicted or invalidated: US postal codes number in the tens of thousands
// and their coordinates do not change during a process lifetime.
type Coordinates struct {
	mu      sync.RWMutex
	entries map[models.PostalKey]models.Coordinate
}

// NewCoordinates creates an empty cache.
func NewCoordinates() *Coordinates {
	return &Coordinates{entries: make(map[models.PostalKey]models.Coordinate)}
}

// Get returns the cached coordinate for key.
func (c *Coordinates) Get(key models.PostalKey) (models.Coordinate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	coord, ok := c.entries[key]
	return coord, ok
}

// Put stores coord under key. A later Put for the same key overwrites the earlier one.
func (c *Coordinates) Put(key models.PostalKey, coord models.Coordinate) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = coord
}

// Len returns the number of cached entries.
func (c *Coordinates) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
