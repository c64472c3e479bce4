// listing_query.go
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
	"fmt"
	"strings"

	"github.com/localnerve/jam-build-classifieds/internal/models"
	"github.com/localnerve/jam-build-classifieds/internal/sanitize"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/hints"
)

// ListingFilter is the normalized set of listing search parameters.
// Every field is optional and all present fields are AND'ed.
type ListingFilter struct {
	Keyword      string
	Category     models.Category
	City         string
	District     string
	PropertyType models.PropertyType
	ListingType  models.ListingType
	Condition    models.Condition
	MinPrice     *float64
	MaxPrice     *float64
	MinArea      *float64
	MaxArea      *float64
	Bedrooms     *int
	UserID       string
	Page         int
	PageSize     int
}

// ParseListingFilter normalizes raw query parameters read through get
func ParseListingFilter(get func(key string) string) ListingFilter {
	return ListingFilter{
		Keyword:      sanitize.Keyword(get("keyword")),
		Category:     models.Category(strings.TrimSpace(get("category"))),
		City:         strings.TrimSpace(get("city")),
		District:     strings.TrimSpace(get("district")),
		PropertyType: models.PropertyType(strings.TrimSpace(get("propertyType"))),
		ListingType:  models.ListingType(strings.TrimSpace(get("listingType"))),
		Condition:    models.Condition(strings.TrimSpace(get("condition"))),
		MinPrice:     sanitize.Float(get("minPrice")),
		MaxPrice:     sanitize.Float(get("maxPrice")),
		MinArea:      sanitize.Float(get("minArea")),
		MaxArea:      sanitize.Float(get("maxArea")),
		Bedrooms:     sanitize.Int(get("bedrooms")),
		UserID:       strings.TrimSpace(get("userId")),
		Page:         sanitize.Page(get("page")),
		PageSize:     sanitize.PageSize(get("pageSize")),
	}
}

var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// containsPattern builds a case-folded LIKE pattern matching s anywhere, escaped with '!'
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

// listingScope applies the visibility constraint and every present filter.
// Soft-deleted rows are excluded by the model's gorm.DeletedAt.
func listingScope(db *gorm.DB, f ListingFilter, vis StatusFilter) *gorm.DB {
	q := db.Model(&models.Listing{})

	if vis.OwnerID != "" {
		q = q.Where(clause.Eq{Column: "user_id", Value: vis.OwnerID})
	}
	if vis.ActiveOnly {
		q = q.Where(clause.Eq{Column: "status", Value: models.StatusActive})
	}

	if f.Keyword != "" {
		pattern := containsPattern(f.Keyword)
		group := db.Session(&gorm.Session{NewDB: true}).
			Where("LOWER(title) LIKE ? ESCAPE '!'", pattern).
			Or("LOWER(description) LIKE ? ESCAPE '!'", pattern).
			Or("LOWER(address) LIKE ? ESCAPE '!'", pattern)
		q = q.Where(group)
	}

	exact := []struct {
		column string
		value  string
	}{
		{"category", string(f.Category)},
		{"city", f.City},
		{"district", f.District},
		{"property_type", string(f.PropertyType)},
		{"listing_type", string(f.ListingType)},
		{"condition", string(f.Condition)},
	}
	for _, e := range exact {
		if e.value != "" {
			q = q.Where(clause.Eq{Column: e.column, Value: e.value})
		}
	}

	if f.MinPrice != nil {
		q = q.Where(clause.Gte{Column: "price", Value: *f.MinPrice})
	}
	if f.MaxPrice != nil {
		q = q.Where(clause.Lte{Column: "price", Value: *f.MaxPrice})
	}
	if f.MinArea != nil {
		q = q.Where(clause.Gte{Column: "area", Value: *f.MinArea})
	}
	if f.MaxArea != nil {
		q = q.Where(clause.Lte{Column: "area", Value: *f.MaxArea})
	}
	if f.Bedrooms != nil {
		q = q.Where(clause.Gte{Column: "bedrooms", Value: *f.Bedrooms})
	}

	return q
}

func orderedImages(db *gorm.DB) *gorm.DB {
	return db.Order("position ASC").Order("created_at ASC")
}

func ownerColumns(db *gorm.DB) *gorm.DB {
	return db.Select("id", "name", "image")
}

// SearchListings returns one page of listings visible to actorID that match f, newest first.
func SearchListings(db *gorm.DB, actorID string, f ListingFilter) (Page[ListingView], error) {
	if f.Page < 1 {
		f.Page = sanitize.DefaultPage
	}
	if f.PageSize < 1 || f.PageSize > sanitize.MaxPageSize {
		f.PageSize = sanitize.DefaultPageSize
	}

	vis := ResolveListingStatusFilter(actorID, f.UserID)
	if vis.Empty {
		return NewPage([]ListingView{}, 0, sanitize.DefaultPage, f.PageSize), nil
	}

	var total int64
	if err := listingScope(db, f, vis).
		Clauses(hints.Comment("select", "listing_count")).
		Count(&total).Error; err != nil {
		return Page[ListingView]{}, fmt.Errorf("count listings: %w", err)
	}

	find := listingScope(db, f, vis).Clauses(hints.Comment("select", "listing_search"))
	if vis.ActiveOnly && db.Dialector.Name() == "mysql" {
		find = find.Clauses(hints.UseIndex("idx_listings_status_created"))
	}

	var rows []models.Listing
	if err := find.
		Preload("Images", orderedImages).
		Preload("Owner", ownerColumns).
		Order("created_at DESC").
		Order("id DESC").
		Offset((f.Page - 1) * f.PageSize).
		Limit(f.PageSize).
		Find(&rows).Error; err != nil {
		return Page[ListingView]{}, fmt.Errorf("search listings: %w", err)
	}

	views := make([]ListingView, 0, len(rows))
	for i := range rows {
		views = append(views, newListingView(&rows[i]))
	}
	return NewPage(views, total, f.Page, f.PageSize), nil
}
