// gorm_store.go
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
	"errors"
	"fmt"
	"time"

	"github.com/localnerve/jam-build-classifieds/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const maxInsertRetries = 3

// GormStore keeps windows in the rate_limit_counters table so every instance shares them.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a database-backed store
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// Name identifies the store kind
func (s *GormStore) Name() string {
	return "database"
}

// Increment implements Store. The row is locked for the read-modify-write where the dialect supports it.
func (s *GormStore) Increment(ctx context.Context, key string, p Policy, now time.Time) (int, time.Time, error) {
	var (
		row  models.RateLimitCounter
		full bool
	)

	for attempt := 0; attempt < maxInsertRetries; attempt++ {
		err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			query := tx
			if supportsRowLocks(tx) {
				query = query.Clauses(clause.Locking{Strength: "UPDATE"})
			}

			err := query.Where(&models.RateLimitCounter{Key: key}).Take(&row).Error
			if errors.Is(err, gorm.ErrRecordNotFound) {
				row = models.RateLimitCounter{Key: key, Count: 1, ResetAt: now.Add(p.Window)}
				return tx.Create(&row).Error
			}
			if err != nil {
				return err
			}

			switch {
			case now.After(row.ResetAt):
				row.Count = 1
				row.ResetAt = now.Add(p.Window)
			case row.Count >= p.MaxRequests:
				full = true
				return nil
			default:
				row.Count++
			}
			return tx.Model(&models.RateLimitCounter{}).
				Where(&models.RateLimitCounter{Key: key}).
				Updates(map[string]interface{}{"hits": row.Count, "reset_at": row.ResetAt}).Error
		})
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// another instance created the window first
			continue
		}
		if err != nil {
			return 0, time.Time{}, fmt.Errorf("rate limit increment: %w", err)
		}
		if full {
			return p.MaxRequests + 1, row.ResetAt, nil
		}
		return row.Count, row.ResetAt, nil
	}

	return 0, time.Time{}, fmt.Errorf("rate limit increment: gave up after %d conflicting inserts", maxInsertRetries)
}

// Purge removes windows that ended before now
func (s *GormStore) Purge(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Where("reset_at < ?", now).Delete(&models.RateLimitCounter{})
	return res.RowsAffected, res.Error
}

func supportsRowLocks(db *gorm.DB) bool {
	switch db.Dialector.Name() {
	case "mysql", "postgres":
		return true
	}
	return false
}
