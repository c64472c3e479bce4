// listing_query_test.go
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
	"net/url"
	"testing"
	"time"

	"github.com/localnerve/jam-build-classifieds/internal/models"
	"github.com/localnerve/jam-build-classifieds/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func queryFilter(raw string) ListingFilter {
	q, _ := url.ParseQuery(raw)
	return ParseListingFilter(q.Get)
}

func listingIDs(p Page[ListingView]) []string {
	ids := make([]string, 0, len(p.Data))
	for _, v := range p.Data {
		ids = append(ids, v.ID)
	}
	return ids
}

func TestParseListingFilter(t *testing.T) {
	f := queryFilter("keyword=++garden++&category=REAL_ESTATE&city=Springfield&minPrice=100&maxPrice=abc&bedrooms=2&page=-3&pageSize=500&userId=me")

	assert.Equal(t, "garden", f.Keyword)
	assert.Equal(t, models.CategoryRealEstate, f.Category)
	assert.Equal(t, "Springfield", f.City)
	require.NotNil(t, f.MinPrice)
	assert.Equal(t, 100.0, *f.MinPrice)
	assert.Nil(t, f.MaxPrice, "non-numeric bounds are dropped")
	require.NotNil(t, f.Bedrooms)
	assert.Equal(t, 2, *f.Bedrooms)
	assert.Equal(t, 1, f.Page)
	assert.Equal(t, 50, f.PageSize)
	assert.Equal(t, OwnerMe, f.UserID)

	empty := queryFilter("")
	assert.Equal(t, 1, empty.Page)
	assert.Equal(t, 12, empty.PageSize)
	assert.Nil(t, empty.MinPrice)
}

func TestSearchListingsPriceRange(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, models.User{})

	inRange := map[string]bool{}
	for _, price := range []float64{50, 100, 300, 500, 600, 99.99, 500.01, 250, 1000, 10} {
		l := testutil.CreateListing(t, db, owner.ID, testutil.WithPrice(price))
		if price >= 100 && price <= 500 {
			inRange[l.ID] = true
		}
	}

	f := queryFilter("minPrice=100&maxPrice=500&pageSize=2")
	page, err := SearchListings(db, "", f)
	require.NoError(t, err)

	assert.EqualValues(t, len(inRange), page.Total)
	assert.Len(t, page.Data, 2)
	assert.Equal(t, 2, page.TotalPages)

	f.PageSize = 50
	page, err = SearchListings(db, "", f)
	require.NoError(t, err)
	assert.EqualValues(t, len(inRange), page.Total)
	for _, v := range page.Data {
		assert.True(t, inRange[v.ID], "price %v outside range", v.Price)
	}
}

func TestSearchListingsFilters(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, models.User{})

	house := models.PropertyHouse
	big := testutil.CreateListing(t, db, owner.ID,
		testutil.WithTitle("Large family house with garden"),
		testutil.WithDetails(models.RealEstateDetails{PropertyType: &house, Area: testutil.Ptr(220.0), Bedrooms: testutil.Ptr(4)}),
		testutil.WithLocation("Shelbyville", "North"))
	small := testutil.CreateListing(t, db, owner.ID,
		testutil.WithDetails(models.RealEstateDetails{Area: testutil.Ptr(40.0), Bedrooms: testutil.Ptr(1)}),
		testutil.WithType(models.ListingRent))
	car := testutil.CreateListing(t, db, owner.ID,
		testutil.WithCategory(models.CategoryVehicles),
		testutil.WithTitle("Reliable hatchback 100% serviced"),
		testutil.WithDetails(models.GoodsDetails{Condition: testutil.Ptr(models.ConditionGood)}))

	tests := []struct {
		query string
		want  []string
	}{
		{"bedrooms=2", []string{big.ID}},
		{"bedrooms=1", []string{big.ID, small.ID}},
		{"minArea=50&maxArea=300", []string{big.ID}},
		{"maxArea=40", []string{small.ID}},
		{"city=Shelbyville", []string{big.ID}},
		{"district=North", []string{big.ID}},
		{"propertyType=HOUSE", []string{big.ID}},
		{"listingType=RENT", []string{small.ID}},
		{"category=VEHICLES", []string{car.ID}},
		{"condition=GOOD", []string{car.ID}},
		{"keyword=GARDEN", []string{big.ID}},
		{"keyword=park+avenue", []string{big.ID, small.ID, car.ID}},
		{"keyword=100%25", []string{car.ID}},
		{"keyword=_", nil},
		{"category=VEHICLES&keyword=garden", nil},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			page, err := SearchListings(db, "", queryFilter(tt.query))
			require.NoError(t, err)
			assert.ElementsMatch(t, tt.want, listingIDs(page))
			assert.EqualValues(t, len(tt.want), page.Total)
		})
	}
}

func TestSearchListingsOrderAndPaging(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, models.User{})

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var ids []string
	for i := 0; i < 5; i++ {
		l := testutil.CreateListing(t, db, owner.ID, testutil.WithCreatedAt(base.Add(time.Duration(i)*time.Hour)))
		ids = append(ids, l.ID)
	}

	page, err := SearchListings(db, "", queryFilter("pageSize=2&page=1"))
	require.NoError(t, err)
	assert.Equal(t, []string{ids[4], ids[3]}, listingIDs(page))
	assert.EqualValues(t, 5, page.Total)
	assert.Equal(t, 3, page.TotalPages)

	page, err = SearchListings(db, "", queryFilter("pageSize=2&page=3"))
	require.NoError(t, err)
	assert.Equal(t, []string{ids[0]}, listingIDs(page))

	page, err = SearchListings(db, "", queryFilter("pageSize=2&page=9"))
	require.NoError(t, err)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
	assert.EqualValues(t, 5, page.Total)
}

func TestSearchListingsMeWithoutSession(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, models.User{})
	testutil.CreateListing(t, db, owner.ID)

	// a closed handle proves the store is never touched
	closed := db.Session(&gorm.Session{NewDB: true})
	sqlDB, err := closed.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	page, err := SearchListings(closed, "", queryFilter("userId=me"))
	require.NoError(t, err)
	assert.NotNil(t, page.Data)
	assert.Empty(t, page.Data)
	assert.EqualValues(t, 0, page.Total)
	assert.Equal(t, 0, page.TotalPages)
}

func TestSearchListingsVisibility(t *testing.T) {
	db := testutil.NewDB(t)
	a := testutil.CreateUser(t, db, models.User{})
	b := testutil.CreateUser(t, db, models.User{})

	active := testutil.CreateListing(t, db, a.ID)
	pending := testutil.CreateListing(t, db, a.ID, testutil.WithStatus(models.StatusPending))
	deleted := testutil.CreateListing(t, db, a.ID, testutil.Deleted())
	others := testutil.CreateListing(t, db, b.ID)

	tests := []struct {
		name  string
		actor string
		query string
		want  []string
	}{
		{"owner me", a.ID, "userId=me", []string{active.ID, pending.ID}},
		{"owner by id", a.ID, "userId=" + a.ID, []string{active.ID, pending.ID}},
		{"other user", b.ID, "userId=" + a.ID, []string{active.ID, others.ID}},
		{"anonymous", "", "userId=" + a.ID, []string{active.ID, others.ID}},
		{"browse", a.ID, "", []string{active.ID, others.ID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := SearchListings(db, tt.actor, queryFilter(tt.query))
			require.NoError(t, err)
			ids := listingIDs(page)
			assert.ElementsMatch(t, tt.want, ids)
			assert.NotContains(t, ids, deleted.ID)
		})
	}
}

func TestSearchListingsForeignOwnerFallsBackToPublicSearch(t *testing.T) {
	db := testutil.NewDB(t)
	seller := testutil.CreateUser(t, db, models.User{})
	viewer := testutil.CreateUser(t, db, models.User{})

	testutil.CreateListing(t, db, seller.ID)
	testutil.CreateListing(t, db, seller.ID, testutil.WithStatus(models.StatusPending))
	testutil.CreateListing(t, db, viewer.ID)

	page, err := SearchListings(db, viewer.ID, queryFilter("userId="+seller.ID))
	require.NoError(t, err)
	assert.EqualValues(t, 2, page.Total)
	for _, v := range page.Data {
		assert.Equal(t, models.StatusActive, v.Status)
	}
}

func TestSearchListingsIncludesImagesAndOwner(t *testing.T) {
	db := testutil.NewDB(t)
	owner := testutil.CreateUser(t, db, models.User{Name: "Grace", Phone: testutil.Ptr("555-0100")})
	testutil.CreateListing(t, db, owner.ID, testutil.WithImages("https://img.example.com/1.jpg", "https://img.example.com/2.jpg"))

	page, err := SearchListings(db, "", queryFilter(""))
	require.NoError(t, err)
	require.Len(t, page.Data, 1)

	v := page.Data[0]
	require.Len(t, v.Images, 2)
	assert.Equal(t, "https://img.example.com/1.jpg", v.Images[0].URL)
	assert.Equal(t, 1, v.Images[1].Position)
	require.NotNil(t, v.User)
	assert.Equal(t, "Grace", v.User.Name)
	assert.Equal(t, models.StatusActive, v.Status)
}

func TestContainsPattern(t *testing.T) {
	assert.Equal(t, "%abc%", containsPattern("ABC"))
	assert.Equal(t, "%50!%%", containsPattern("50%"))
	assert.Equal(t, "%a!_b%", containsPattern("a_b"))
	assert.Equal(t, "%!!%", containsPattern("!"))
}
