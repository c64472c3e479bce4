// views.go
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
	"time"

	"github.com/localnerve/jam-build-classifieds/internal/models"
)

// Page is one window of a paginated collection. Data is never nil.
type Page[T any] struct {
	Data       []T   `json:"data"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	PageSize   int   `json:"pageSize"`
	TotalPages int   `json:"totalPages"`
}

// NewPage builds a Page, computing TotalPages from total and pageSize
func NewPage[T any](data []T, total int64, page, pageSize int) Page[T] {
	if data == nil {
		data = []T{}
	}
	totalPages := 0
	if pageSize > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}
	return Page[T]{
		Data:       data,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}
}

// OwnerSummary is the public face of a listing owner
type OwnerSummary struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Image *string `json:"image"`
}

// OwnerContact is the owner block of a listing detail. Phone is nil unless the viewer is the owner.
type OwnerContact struct {
	OwnerSummary
	Phone     *string   `json:"phone"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// ImageView is one gallery entry
type ImageView struct {
	ID          string  `json:"id"`
	URL         string  `json:"url"`
	ExternalRef *string `json:"externalRef"`
	Position    int     `json:"position"`
}

// ListingView is a listing as returned by the API
type ListingView struct {
	ID           string               `json:"id"`
	Title        string               `json:"title"`
	Description  string               `json:"description"`
	Price        float64              `json:"price"`
	Category     models.Category      `json:"category"`
	ListingType  models.ListingType   `json:"listingType"`
	Status       models.ListingStatus `json:"status"`
	PropertyType *models.PropertyType `json:"propertyType,omitempty"`
	Area         *float64             `json:"area,omitempty"`
	Bedrooms     *int                 `json:"bedrooms,omitempty"`
	Bathrooms    *int                 `json:"bathrooms,omitempty"`
	Condition    *models.Condition    `json:"condition,omitempty"`
	Brand        *string              `json:"brand,omitempty"`
	Model        *string              `json:"model,omitempty"`
	YearMade     *int                 `json:"yearMade,omitempty"`
	Address      string               `json:"address"`
	Ward         *string              `json:"ward"`
	District     string               `json:"district"`
	City         string               `json:"city"`
	Latitude     *float64             `json:"latitude"`
	Longitude    *float64             `json:"longitude"`
	UserID       string               `json:"userId"`
	Images       []ImageView          `json:"images"`
	User         *OwnerSummary        `json:"user,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
	UpdatedAt    time.Time            `json:"updatedAt"`
}

// ListingDetail is the single-listing view with viewer-specific fields
type ListingDetail struct {
	ListingView
	User          *OwnerContact `json:"user"`
	IsFavorited   bool          `json:"isFavorited"`
	FavoriteCount int64         `json:"favoriteCount"`
}

func newListingView(l *models.Listing) ListingView {
	v := ListingView{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		Price:       l.Price,
		Category:    l.Category,
		ListingType: l.ListingType,
		Status:      l.Lifecycle(),
		Address:     l.Address,
		Ward:        l.Ward,
		District:    l.District,
		City:        l.City,
		Latitude:    l.Latitude,
		Longitude:   l.Longitude,
		UserID:      l.UserID,
		Images:      make([]ImageView, 0, len(l.Images)),
		CreatedAt:   l.CreatedAt,
		UpdatedAt:   l.UpdatedAt,
	}

	switch d := l.Details().(type) {
	case models.RealEstateDetails:
		v.PropertyType, v.Area, v.Bedrooms, v.Bathrooms = d.PropertyType, d.Area, d.Bedrooms, d.Bathrooms
	case models.GoodsDetails:
		v.Condition, v.Brand, v.Model, v.YearMade = d.Condition, d.Brand, d.Model, d.YearMade
	}

	for _, img := range l.Images {
		v.Images = append(v.Images, ImageView{
			ID:          img.ID,
			URL:         img.URL,
			ExternalRef: img.ExternalRef,
			Position:    img.Position,
		})
	}

	if l.Owner != nil {
		v.User = newOwnerSummary(l.Owner)
	}
	return v
}

func newOwnerSummary(u *models.User) *OwnerSummary {
	return &OwnerSummary{ID: u.ID, Name: u.Name, Image: u.Image}
}
