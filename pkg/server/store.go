package server

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Store keeps campaigns and their logs in memory. Everything is
// copied on the way out so callers never share slices or structs with
// the background workers.
type Store struct {
	mu        sync.RWMutex
	campaigns map[uuid.UUID]*Campaign
	order     []uuid.UUID
	logs      map[uuid.UUID][]LogEntry
}

func NewStore() *Store {
	return &Store{
		campaigns: make(map[uuid.UUID]*Campaign),
		logs:      make(map[uuid.UUID][]LogEntry),
	}
}

func (s *Store) Put(c *Campaign) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.campaigns[c.ID]; !ok {
		s.order = append(s.order, c.ID)
	}
	cp := *c
	s.campaigns[c.ID] = &cp
}

func (s *Store) Get(id uuid.UUID) (*Campaign, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.campaigns[id]
	if !ok {
		return nil, fmt.Errorf("campaign %s not found", id)
	}
	cp := *c
	return &cp, nil
}

// List returns campaigns newest first, capped at limit.
func (s *Store) List(limit int) []Campaign {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []Campaign
	for i := len(s.order) - 1; i >= 0 && len(out) < limit; i-- {
		if c, ok := s.campaigns[s.order[i]]; ok {
			out = append(out, *c)
		}
	}
	return out
}

// Update applies fn to the stored campaign under the write lock and
// stamps UpdatedAt.
func (s *Store) Update(id uuid.UUID, fn func(*Campaign)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.campaigns[id]
	if !ok {
		return fmt.Errorf("campaign %s not found", id)
	}
	fn(c)
	c.UpdatedAt = time.Now()
	return nil
}

func (s *Store) AppendLog(id uuid.UUID, entry LogEntry) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry.ID = len(s.logs[id]) + 1
	s.logs[id] = append(s.logs[id], entry)
}

func (s *Store) Logs(id uuid.UUID) []LogEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.logs[id]
	out := make([]LogEntry, len(entries))
	copy(out, entries)
	return out
}
