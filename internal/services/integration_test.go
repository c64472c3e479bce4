// integration_test.go
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
	"sync"
	"testing"
	"time"

	"github.com/localnerve/jam-build-classifieds/internal/database"
	"github.com/localnerve/jam-build-classifieds/internal/models"
	"github.com/localnerve/jam-build-classifieds/internal/ratelimit"
	"github.com/localnerve/jam-build-classifieds/internal/testutil"
	"github.com/localnerve/jam-build-classifieds/internal/types"
	"github.com/localnerve/jam-build-classifieds/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// TestWithPostgreSQL runs the store-sensitive paths against a real PostgreSQL container
func TestWithPostgreSQL(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	image := testutil.ContainerImage()
	if image == "" {
		t.Skip("POSTGRES_IMAGE is not set")
	}

	ctx := context.Background()

	container, err := testutil.StartDatabase(ctx, "postgres", image)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate PostgreSQL container: %v", err)
		}
	}()

	db, err := database.Connect(container.Config)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	t.Run("KeywordSearch", func(t *testing.T) {
		testKeywordSearch(t, db)
	})

	t.Run("ConcurrentRateLimitCounters", func(t *testing.T) {
		testConcurrentCounters(t, db)
	})

	t.Run("ConcurrentFavorites", func(t *testing.T) {
		testConcurrentFavorites(t, db)
	})

	t.Run("SoftDeleteAndPurge", func(t *testing.T) {
		testSoftDeleteAndPurge(t, db)
	})
}

func testKeywordSearch(t *testing.T, db *gorm.DB) {
	owner := testutil.CreateUser(t, db, models.User{})
	hit := testutil.CreateListing(t, db, owner.ID, testutil.WithTitle("Penthouse With 100% Ocean View"), testutil.WithLocation("Pg City", "North"))
	testutil.CreateListing(t, db, owner.ID, testutil.WithTitle("Penthouse with 1000 square feet"), testutil.WithLocation("Pg City", "North"))

	page, err := SearchListings(db, "", queryFilter("city=Pg+City&keyword=100%25+ocean"))
	require.NoError(t, err)
	assert.Equal(t, []string{hit.ID}, listingIDs(page))

	page, err = SearchListings(db, "", queryFilter("city=Pg+City&keyword=PENTHOUSE"))
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
}

func testConcurrentCounters(t *testing.T, db *gorm.DB) {
	store := ratelimit.NewGormStore(db)
	now := time.Now().UTC()
	const workers = 20

	var wg sync.WaitGroup
	counts := make(chan int, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			n, _, err := store.Increment(context.Background(), "pg|concurrent", ratelimit.Policy{MaxRequests: workers, Window: time.Minute}, now)
			if assert.NoError(t, err) {
				counts <- n
			}
		}()
	}
	wg.Wait()
	close(counts)

	seen := make(map[int]bool)
	for n := range counts {
		assert.False(t, seen[n], "count %d handed out twice", n)
		seen[n] = true
	}
	assert.Len(t, seen, workers)
}

func testConcurrentFavorites(t *testing.T, db *gorm.DB) {
	owner := testutil.CreateUser(t, db, models.User{})
	fan := testutil.CreateUser(t, db, models.User{})
	l := testutil.CreateListing(t, db, owner.ID)
	const workers = 8

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
		dupes   int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := AddFavorite(db, fan.ID, &validation.FavoriteInput{ListingID: l.ID})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				created++
				return
			}
			if appErr, ok := types.AsAppError(err); ok && appErr.Code == types.CodeBadRequest {
				dupes++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, created)
	assert.Equal(t, workers-1, dupes)
}

func testSoftDeleteAndPurge(t *testing.T, db *gorm.DB) {
	owner := testutil.CreateUser(t, db, models.User{})
	l := testutil.CreateListing(t, db, owner.ID)

	require.NoError(t, SoftDeleteListing(db, owner.ID, l))

	_, err := GetListingDetail(db, owner.ID, l.ID)
	requireAppError(t, err, types.CodeNotFound)

	var stored models.Listing
	require.NoError(t, db.Unscoped().Where("id = ?", l.ID).Take(&stored).Error)
	assert.Equal(t, models.StatusDeleted, stored.Lifecycle())

	now := time.Now().UTC()
	require.NoError(t, db.Create(&models.VerificationToken{
		Token: "pg-expired", Identifier: owner.Email, Expires: now.Add(-time.Minute),
	}).Error)

	result, err := NewMaintenance(db, ratelimit.NewGormStore(db)).RunOnce(context.Background(), now.Add(2*time.Minute))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, result.ResetTokens, int64(1))
	assert.GreaterOrEqual(t, result.RateLimitCounters, int64(1), "counters from the concurrency test have expired")
}
