package memcache

import (
	"context"
	"sync"
	"time"

	"github.com/go-contacts-api/internal/domain"
)

type entry struct {
	user      domain.CachedUser
	expiresAt time.Time
}

// UserCache is an in-process substitute for the Redis user cache, used in
// development and tests when no Redis address is configured. Expired
// entries are treated as absent on read and dropped lazily.
type UserCache struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration

	now func() time.Time // overridable in tests
}

func NewUserCache(ttl time.Duration) *UserCache {
	return &UserCache{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *UserCache) Get(_ context.Context, username string) (*domain.CachedUser, error) {
	c.mu.RLock()
	e, ok := c.entries[username]
	c.mu.RUnlock()
	if !ok {
		return nil, nil
	}
	if c.now().After(e.expiresAt) {
		c.mu.Lock()
		delete(c.entries, username)
		c.mu.Unlock()
		return nil, nil
	}
	u := e.user
	return &u, nil
}

func (c *UserCache) Put(_ context.Context, username string, u *domain.CachedUser) error {
	c.mu.Lock()
	c.entries[username] = entry{user: *u, expiresAt: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return nil
}

func (c *UserCache) Invalidate(_ context.Context, username string) error {
	c.mu.Lock()
	delete(c.entries, username)
	c.mu.Unlock()
	return nil
}
