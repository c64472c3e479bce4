// maintenance_test.go
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
	"testing"
	"time"

	"github.com/localnerve/jam-build-classifieds/internal/config"
	"github.com/localnerve/jam-build-classifieds/internal/models"
	"github.com/localnerve/jam-build-classifieds/internal/ratelimit"
	"github.com/localnerve/jam-build-classifieds/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMaintenanceRunOnce(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, db.Create(&[]models.VerificationToken{
		{Identifier: "a@example.com", Token: "old", Expires: now.Add(-time.Hour)},
		{Identifier: "b@example.com", Token: "live", Expires: now.Add(time.Hour)},
	}).Error)

	store := ratelimit.NewGormStore(db)
	_, _, err := store.Increment(ctx, "1.2.3.4:old", ratelimit.Policy{MaxRequests: 5, Window: time.Minute}, now.Add(-2*time.Minute))
	require.NoError(t, err)
	_, _, err = store.Increment(ctx, "1.2.3.4:live", ratelimit.Policy{MaxRequests: 5, Window: time.Minute}, now)
	require.NoError(t, err)

	m := NewMaintenance(db, store)
	result, err := m.RunOnce(ctx, now)
	require.NoError(t, err)
	assert.EqualValues(t, 1, result.ResetTokens)
	assert.EqualValues(t, 1, result.RateLimitCounters)

	var tokens []models.VerificationToken
	require.NoError(t, db.Find(&tokens).Error)
	require.Len(t, tokens, 1)
	assert.Equal(t, "live", tokens[0].Token)

	result, err = NewMaintenance(db, nil).RunOnce(ctx, now)
	require.NoError(t, err)
	assert.Zero(t, result.ResetTokens)
	assert.Zero(t, result.RateLimitCounters)
}

func TestMaintenanceStart(t *testing.T) {
	db := testutil.NewDB(t)
	ctx := context.Background()

	m := NewMaintenance(db, nil)
	assert.Error(t, m.Start(ctx, "not a schedule"))

	m = NewMaintenance(db, nil)
	require.NoError(t, m.Start(ctx, ""))
	m.Stop()

	m = NewMaintenance(db, nil)
	require.NoError(t, m.Start(ctx, "@every 1h"))
	m.Stop()
}

func TestHealthCheck(t *testing.T) {
	db := testutil.NewDB(t)
	cfg := &config.Config{DBType: "sqlite", DBDatabase: ":memory:", RateLimitStore: "memory"}

	result := HealthCheck(context.Background(), cfg, db, ratelimit.NewMemoryStore(0))
	assert.True(t, result.Healthy())
	assert.Equal(t, "ok", result.Database)
	assert.Equal(t, "memory", result.RateLimitStore)
	assert.Equal(t, "sqlite", result.Details["database_type"])

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	result = HealthCheck(context.Background(), cfg, db, nil)
	assert.False(t, result.Healthy())
	assert.Equal(t, "unreachable", result.Database)
	assert.Equal(t, "memory", result.RateLimitStore)
	assert.NotEmpty(t, result.ErrorMessage)
}
