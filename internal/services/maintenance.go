// maintenance.go
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

package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/localnerve/jam-build-classifieds/internal/models"
	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// Purger removes expired rows from a backing store
type Purger interface {
	Purge(ctx context.Context, now time.Time) (int64, error)
}

// PurgeResult counts rows removed by one maintenance run
type PurgeResult struct {
	ResetTokens       int64
	RateLimitCounters int64
}

// Maintenance periodically purges expired reset tokens and rate-limit counters
type Maintenance struct {
	db       *gorm.DB
	counters Purger
	cron     *cron.Cron
}

// NewMaintenance creates a maintenance scheduler. counters may be nil when rate-limit state is kept in memory.
func NewMaintenance(db *gorm.DB, counters Purger) *Maintenance {
	return &Maintenance{
		db:       db,
		counters: counters,
		cron:     cron.New(),
	}
}

// RunOnce purges everything that expired before now
func (m *Maintenance) RunOnce(ctx context.Context, now time.Time) (PurgeResult, error) {
	var result PurgeResult

	res := m.db.WithContext(ctx).Where("expires < ?", now).Delete(&models.VerificationToken{})
	if res.Error != nil {
		return result, fmt.Errorf("purge reset tokens: %w", res.Error)
	}
	result.ResetTokens = res.RowsAffected

	if m.counters != nil {
		n, err := m.counters.Purge(ctx, now)
		if err != nil {
			return result, fmt.Errorf("purge rate-limit counters: %w", err)
		}
		result.RateLimitCounters = n
	}

	return result, nil
}

// Start schedules RunOnce on spec. An empty spec disables maintenance.
func (m *Maintenance) Start(ctx context.Context, spec string) error {
	if spec == "" {
		slog.Info("maintenance disabled")
		return nil
	}

	_, err := m.cron.AddFunc(spec, func() {
		result, err := m.RunOnce(ctx, m.db.NowFunc())
		if err != nil {
			slog.Error("maintenance run failed", "error", err)
			return
		}
		slog.Info("maintenance run complete",
			"reset_tokens", result.ResetTokens,
			"rate_limit_counters", result.RateLimitCounters)
	})
	if err != nil {
		return fmt.Errorf("invalid maintenance schedule %q: %w", spec, err)
	}

	slog.Info("starting maintenance", "schedule", spec)
	m.cron.Start()
	return nil
}

// Stop waits for a running job to finish
func (m *Maintenance) Stop() {
	<-m.cron.Stop().Done()
}
