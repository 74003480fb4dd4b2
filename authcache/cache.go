// Package authcache is an explicit client-side credential cache with a
// defined synchronization contract: state is loaded from Storage once at
// construction and written through on every mutation. It backs CLI and
// desktop clients of the portal that cannot rely on browser cookies.
package authcache

import (
	"encoding/json"
	"sync"

	"github.com/pkg/errors"

	"github.com/akriva/portal/identity"
	"github.com/akriva/portal/session"
)

// Entry is the cached state: the credential triple plus the resolved user.
type Entry struct {
	Tokens identity.Credentials `json:"tokens"`
	User   session.User         `json:"user"`
}

// Cache holds at most one Entry and keeps Storage in sync with it.
type Cache struct {
	storage Storage
	entry   *Entry
	lock    sync.RWMutex
}

// New loads any previously stored entry. Corrupt stored state is discarded
// rather than surfaced; the next signin rewrites it.
func New(storage Storage) (*Cache, error) {
	if storage == nil {
		return nil, errors.New("[authcache.New] storage is required")
	}

	cache := &Cache{storage: storage}

	data, err := storage.Load()
	if err != nil {
		return nil, errors.Wrap(err, "[authcache.New] load stored state")
	}
	if len(data) > 0 {
		var entry Entry
		if err := json.Unmarshal(data, &entry); err != nil {
			_ = storage.Clear()
		} else {
			cache.entry = &entry
		}
	}

	return cache, nil
}

// Get returns the cached entry and whether one is present.
func (c *Cache) Get() (Entry, bool) {
	c.lock.RLock()
	defer c.lock.RUnlock()

	if c.entry == nil {
		return Entry{}, false
	}
	return *c.entry, true
}

// Set replaces the cached entry and writes it through to storage.
func (c *Cache) Set(entry Entry) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.entry = &entry
	return c.persistLocked()
}

// UpdateTokens swaps in a refreshed credential triple, keeping the held
// refresh token when the provider did not rotate it.
func (c *Cache) UpdateTokens(tokens identity.Credentials) error {
	c.lock.Lock()
	defer c.lock.Unlock()

	if c.entry == nil {
		return errors.New("[Cache.UpdateTokens] no cached session")
	}
	if tokens.RefreshToken == "" {
		tokens.RefreshToken = c.entry.Tokens.RefreshToken
	}
	c.entry.Tokens = tokens
	return c.persistLocked()
}

// Clear drops the cached entry and removes the stored state. Clearing an
// empty cache is a no-op.
func (c *Cache) Clear() error {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.entry = nil
	return errors.Wrap(c.storage.Clear(), "[Cache.Clear]")
}

func (c *Cache) persistLocked() error {
	data, err := json.Marshal(c.entry)
	if err != nil {
		return errors.Wrap(err, "marshal cached state")
	}
	return errors.Wrap(c.storage.Store(data), "store cached state")
}
