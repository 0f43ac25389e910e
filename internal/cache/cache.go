// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cache stores composed blog posts per topic for one session.
// Topics are exact-match keys: no normalization, so differently cased
// topics are distinct entries. Entries live until the session ends; Put
// overwrites unconditionally (last writer wins, no locking).
package cache

import (
	"sort"

	"github.com/pdiddy/medblog-engine/pkg/types"
)

// Cache maps topic strings to composed posts. The pipeline receives a Cache
// at construction so each session owns its own instance and tests start
// fresh.
type Cache interface {
	// Get returns the stored post for an exact-match topic.
	Get(topic string) (types.BlogPost, bool, error)

	// Put stores the post, overwriting any prior entry for the topic.
	Put(topic string, post types.BlogPost) error

	// Topics lists cached topic keys in sorted order.
	Topics() ([]string, error)
}

// MemoryCache is the in-process Cache used when no database path is
// configured. Zero value is not usable; call NewMemoryCache.
type MemoryCache struct {
	posts map[string]types.BlogPost
}

// NewMemoryCache returns an empty session cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{posts: make(map[string]types.BlogPost)}
}

// Get returns the stored post for an exact-match topic.
func (c *MemoryCache) Get(topic string) (types.BlogPost, bool, error) {
	post, ok := c.posts[topic]
	return post, ok, nil
}

// Put stores the post, overwriting any prior entry for the topic.
func (c *MemoryCache) Put(topic string, post types.BlogPost) error {
	c.posts[topic] = post
	return nil
}

// Topics lists cached topic keys in sorted order.
func (c *MemoryCache) Topics() ([]string, error) {
	keys := make([]string, 0, len(c.posts))
	for k := range c.posts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}
