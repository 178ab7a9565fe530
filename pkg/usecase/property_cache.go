package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/fieldswitch/pkg/domain/interfaces"
	"github.com/secmon-lab/fieldswitch/pkg/domain/model"
)

// PropertyCache holds an immutable snapshot of the property definitions.
// Pages are built from one snapshot, so the field registry of a page never
// changes while it is rendered.
type PropertyCache struct {
	repo interfaces.Repository

	mu        sync.RWMutex
	snapshot  []*model.Property
	loaded    bool
	refreshed time.Time
}

// NewPropertyCache creates an empty cache; the first Snapshot call loads it
func NewPropertyCache(repo interfaces.Repository) *PropertyCache {
	return &PropertyCache{repo: repo}
}

// Refresh reloads the property definitions from the repository.
// On failure the previous snapshot is kept.
func (c *PropertyCache) Refresh(ctx context.Context) error {
	props, err := c.repo.Property().List(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to load properties")
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.snapshot = props
	c.loaded = true
	c.refreshed = time.Now()
	return nil
}

// Snapshot returns the current property definitions in display order.
// The returned slice must not be modified.
func (c *PropertyCache) Snapshot(ctx context.Context) ([]*model.Property, error) {
	c.mu.RLock()
	if c.loaded {
		defer c.mu.RUnlock()
		return c.snapshot, nil
	}
	c.mu.RUnlock()

	if err := c.Refresh(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot, nil
}

// RefreshedAt returns when the snapshot was last loaded; zero if never
func (c *PropertyCache) RefreshedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.refreshed
}
