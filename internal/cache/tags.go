package cache

import (
	"sync"
	"time"
)

// Store is an in-memory cache whose entries are labeled with
// invalidation tags. Reads populate it; every successful mutation
// invalidates one or more tags, marking the associated entries stale
// so the next read recomputes them.
type Store struct {
	mu       sync.RWMutex
	entries  map[string]*entry
	byTag    map[string]map[string]struct{}
	ttl      time.Duration
	stopChan chan struct{}
}

type entry struct {
	value     interface{}
	tags      []string
	expiresAt time.Time
}

// Config holds cache store configuration
type Config struct {
	TTL     time.Duration // How long entries stay fresh (default 5m)
	Cleanup time.Duration // Cleanup interval for expired entries (default 1m)
}

// NewStore creates a tag-keyed cache store
func NewStore(cfg Config) *Store {
	if cfg.TTL == 0 {
		cfg.TTL = 5 * time.Minute
	}
	if cfg.Cleanup == 0 {
		cfg.Cleanup = time.Minute
	}

	s := &Store{
		entries:  make(map[string]*entry),
		byTag:    make(map[string]map[string]struct{}),
		ttl:      cfg.TTL,
		stopChan: make(chan struct{}),
	}

	go s.cleanupLoop(cfg.Cleanup)

	return s
}

// Stop stops the cleanup goroutine
func (s *Store) Stop() {
	close(s.stopChan)
}

// Get returns the cached value for key, if present and unexpired
func (s *Store) Get(key string) (interface{}, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[key]
	if !ok || time.Now().After(e.expiresAt) {
		return nil, false
	}
	return e.value, true
}

// Set stores a value under key, labeled with the given tags
func (s *Store) Set(key string, value interface{}, tags ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if old, ok := s.entries[key]; ok {
		s.untagLocked(key, old.tags)
	}

	s.entries[key] = &entry{
		value:     value,
		tags:      tags,
		expiresAt: time.Now().Add(s.ttl),
	}
	for _, tag := range tags {
		keys, ok := s.byTag[tag]
		if !ok {
			keys = make(map[string]struct{})
			s.byTag[tag] = keys
		}
		keys[key] = struct{}{}
	}
}

// Invalidate drops every entry labeled with any of the given tags
func (s *Store) Invalidate(tags ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, tag := range tags {
		for key := range s.byTag[tag] {
			if e, ok := s.entries[key]; ok {
				s.untagLocked(key, e.tags)
				delete(s.entries, key)
			}
		}
		delete(s.byTag, tag)
	}
}

// Len returns the number of live entries
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) untagLocked(key string, tags []string) {
	for _, tag := range tags {
		if keys, ok := s.byTag[tag]; ok {
			delete(keys, key)
			if len(keys) == 0 {
				delete(s.byTag, tag)
			}
		}
	}
}

func (s *Store) cleanupLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.cleanup()
		case <-s.stopChan:
			return
		}
	}
}

func (s *Store) cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for key, e := range s.entries {
		if e.expiresAt.Before(now) {
			s.untagLocked(key, e.tags)
			delete(s.entries, key)
		}
	}
}
