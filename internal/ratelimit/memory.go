// memory.go
//
// A classifieds marketplace data service built on the jam-build data service stack
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of jam-build-classifieds.
// jam-build-classifieds is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// jam-build-classifieds is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with jam-build-classifieds.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package ratelimit

import (
	"context"
	"sync"
	"time"
)

// DefaultCleanupInterval is how often the memory store evicts expired windows
const DefaultCleanupInterval = 5 * time.Minute

type window struct {
	count   int
	resetAt time.Time
}

// MemoryStore keeps windows in process memory. Counts are not shared between instances.
type MemoryStore struct {
	mu              sync.Mutex
	windows         map[string]*window
	cleanupInterval time.Duration
	lastCleanup     time.Time
}

// NewMemoryStore creates an empty store swept at most once per cleanupInterval
func NewMemoryStore(cleanupInterval time.Duration) *MemoryStore {
	if cleanupInterval <= 0 {
		cleanupInterval = DefaultCleanupInterval
	}
	return &MemoryStore{
		windows:         make(map[string]*window),
		cleanupInterval: cleanupInterval,
	}
}

// Name identifies the store kind
func (s *MemoryStore) Name() string {
	return "memory"
}

// Increment implements Store
func (s *MemoryStore) Increment(_ context.Context, key string, p Policy, now time.Time) (int, time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweep(now)

	w, ok := s.windows[key]
	if !ok || now.After(w.resetAt) {
		w = &window{count: 1, resetAt: now.Add(p.Window)}
		s.windows[key] = w
		return w.count, w.resetAt, nil
	}
	if w.count >= p.MaxRequests {
		return p.MaxRequests + 1, w.resetAt, nil
	}
	w.count++
	return w.count, w.resetAt, nil
}

// Len reports the number of tracked keys
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.windows)
}

func (s *MemoryStore) sweep(now time.Time) {
	if s.lastCleanup.IsZero() {
		s.lastCleanup = now
		return
	}
	if now.Sub(s.lastCleanup) < s.cleanupInterval {
		return
	}
	for key, w := range s.windows {
		if now.After(w.resetAt) {
			delete(s.windows, key)
		}
	}
	s.lastCleanup = now
}
