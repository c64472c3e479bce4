// fixtures.go
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

package testutil

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/localnerve/jam-build-classifieds/internal/models"
	"gorm.io/gorm"
)

// CreateUser inserts a user built from u, filling in a unique name and email
func CreateUser(t testing.TB, db *gorm.DB, u models.User) *models.User {
	t.Helper()

	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if u.Name == "" {
		u.Name = "User " + u.ID[:8]
	}
	if u.Email == "" {
		u.Email = fmt.Sprintf("user-%s@example.com", u.ID[:8])
	}
	if err := db.Create(&u).Error; err != nil {
		t.Fatalf("Failed to create user: %v", err)
	}
	return &u
}

// ListingOption adjusts a fixture listing before insert
type ListingOption func(*models.Listing)

// WithPrice sets the price
func WithPrice(price float64) ListingOption {
	return func(l *models.Listing) { l.Price = price }
}

// WithStatus sets the stored status
func WithStatus(s models.ListingStatus) ListingOption {
	return func(l *models.Listing) { l.Status = s }
}

// WithCreatedAt sets the creation time
func WithCreatedAt(at time.Time) ListingOption {
	return func(l *models.Listing) { l.CreatedAt = at }
}

// WithCategory switches category and resets the detail family
func WithCategory(c models.Category) ListingOption {
	return func(l *models.Listing) {
		l.Category = c
		if models.IsRealEstate(c) {
			l.SetDetails(models.RealEstateDetails{})
		} else {
			l.SetDetails(models.GoodsDetails{})
		}
	}
}

// WithTitle sets the title
func WithTitle(title string) ListingOption {
	return func(l *models.Listing) { l.Title = title }
}

// WithLocation sets city and district
func WithLocation(city, district string) ListingOption {
	return func(l *models.Listing) { l.City, l.District = city, district }
}

// WithDetails sets the category variant
func WithDetails(d models.ListingDetails) ListingOption {
	return func(l *models.Listing) { l.SetDetails(d) }
}

// WithType sets the listing type
func WithType(lt models.ListingType) ListingOption {
	return func(l *models.Listing) { l.ListingType = lt }
}

// WithImages attaches images by url
func WithImages(urls ...string) ListingOption {
	return func(l *models.Listing) {
		for i, u := range urls {
			l.Images = append(l.Images, models.ListingImage{URL: u, Position: i})
		}
	}
}

// Deleted soft-deletes the listing on insert
func Deleted() ListingOption {
	return func(l *models.Listing) { _ = l.MarkDeleted(time.Now().UTC()) }
}

// CreateListing inserts an ACTIVE real estate SALE listing for ownerID
func CreateListing(t testing.TB, db *gorm.DB, ownerID string, opts ...ListingOption) *models.Listing {
	t.Helper()

	apartment := models.PropertyApartment
	area := 80.0
	beds := 2
	l := &models.Listing{
		UserID:      ownerID,
		Title:       "Sunny apartment near the park",
		Description: strings.Repeat("Spacious rooms with plenty of light. ", 3),
		Price:       250000,
		Category:    models.CategoryRealEstate,
		ListingType: models.ListingSale,
		Status:      models.StatusActive,
		Address:     "1 Park Avenue",
		District:    "Central",
		City:        "Springfield",
	}
	l.SetDetails(models.RealEstateDetails{PropertyType: &apartment, Area: &area, Bedrooms: &beds})
	for _, opt := range opts {
		opt(l)
	}

	if err := db.Create(l).Error; err != nil {
		t.Fatalf("Failed to create listing: %v", err)
	}
	return l
}

// Ptr returns a pointer to v
func Ptr[T any](v T) *T {
	return &v
}
