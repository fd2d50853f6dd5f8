// Package caching keeps short-lived in-process copies of values that are read
// on most requests, such as runtime settings.
package caching

import (
	"time"

	"github.com/patrickmn/go-cache"
)

type Cache struct {
	memoryCache *cache.Cache
}

// New returns a cache whose entries expire after ttl.
func New(ttl time.Duration) *Cache {
	return &Cache{memoryCache: cache.New(ttl, 2*ttl)}
}

func (s *Cache) GetString(key string) (string, bool) {
	v, ok := s.memoryCache.Get(key)
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

func (s *Cache) SetString(key string, value string) {
	s.memoryCache.SetDefault(key, value)
}

func (s *Cache) Delete(key string) {
	s.memoryCache.Delete(key)
}

func (s *Cache) Flush() {
	s.memoryCache.Flush()
}

func (s *Cache) Len() int {
	return s.memoryCache.ItemCount()
}
