// ratelimit.go
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

// Package ratelimit implements a fixed-window request limiter over a pluggable counter store.
package ratelimit

import (
	"context"
	"log/slog"
	"time"
)

// Policy is the budget for one key: MaxRequests per Window
type Policy struct {
	MaxRequests int           `yaml:"maxRequests"`
	Window      time.Duration `yaml:"window"`
}

// Result is the outcome of a single Check
type Result struct {
	Allowed   bool
	Limit     int
	Remaining int
	ResetAt   time.Time
}

// Store counts hits per key in fixed windows.
// Increment starts a new window of length p.Window at now when the key is absent or its window has passed,
// otherwise it adds one to the current window. A window never records more than p.MaxRequests hits:
// once full, Increment leaves it untouched and reports p.MaxRequests+1.
type Store interface {
	Increment(ctx context.Context, key string, p Policy, now time.Time) (count int, resetAt time.Time, err error)
	Name() string
}

// Limiter applies policies against a Store
type Limiter struct {
	store Store
	now   func() time.Time
}

// New creates a Limiter over store
func New(store Store) *Limiter {
	return &Limiter{store: store, now: time.Now}
}

// Store returns the backing store
func (l *Limiter) Store() Store {
	return l.store
}

// Check counts one request for key. It never fails: a store error allows the request.
func (l *Limiter) Check(ctx context.Context, key string, p Policy) Result {
	now := l.now()
	count, resetAt, err := l.store.Increment(ctx, key, p, now)
	if err != nil {
		slog.Warn("rate limit store failed, allowing request", "key", key, "store", l.store.Name(), "error", err)
		return Result{Allowed: true, Limit: p.MaxRequests, Remaining: p.MaxRequests, ResetAt: now.Add(p.Window)}
	}

	remaining := p.MaxRequests - count
	if remaining < 0 {
		remaining = 0
	}
	return Result{
		Allowed:   count <= p.MaxRequests,
		Limit:     p.MaxRequests,
		Remaining: remaining,
		ResetAt:   resetAt,
	}
}

// Key builds the limiter key for a client and route tag
func Key(clientIP, routeTag string) string {
	return clientIP + ":" + routeTag
}
