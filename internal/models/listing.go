// listing.go
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

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Category is the top-level marketplace classification
type Category string

const (
	CategoryRealEstate  Category = "REAL_ESTATE"
	CategoryVehicles    Category = "VEHICLES"
	CategoryElectronics Category = "ELECTRONICS"
	CategoryFashion     Category = "FASHION"
	CategoryHomeGarden  Category = "HOME_GARDEN"
	CategorySports      Category = "SPORTS"
	CategoryJobs        Category = "JOBS"
	CategoryServices    Category = "SERVICES"
	CategoryOther       Category = "OTHER"
)

// Categories lists every valid Category in display order
var Categories = []Category{
	CategoryRealEstate, CategoryVehicles, CategoryElectronics, CategoryFashion,
	CategoryHomeGarden, CategorySports, CategoryJobs, CategoryServices, CategoryOther,
}

// ListingType distinguishes sale from rental offers
type ListingType string

const (
	ListingSale ListingType = "SALE"
	ListingRent ListingType = "RENT"
)

// PropertyType sub-classifies REAL_ESTATE listings
type PropertyType string

const (
	PropertyApartment PropertyType = "APARTMENT"
	PropertyHouse     PropertyType = "HOUSE"
	PropertyVilla     PropertyType = "VILLA"
	PropertyLand      PropertyType = "LAND"
	PropertyOffice    PropertyType = "OFFICE"
	PropertyShophouse PropertyType = "SHOPHOUSE"
)

// Condition describes the wear of a non real-estate item
type Condition string

const (
	ConditionNew     Condition = "NEW"
	ConditionLikeNew Condition = "LIKE_NEW"
	ConditionGood    Condition = "GOOD"
	ConditionFair    Condition = "FAIR"
	ConditionPoor    Condition = "POOR"
)

// Listing is a single classified ad. Status and DeletedAt are only changed through
// the lifecycle methods in lifecycle.go; the category-specific columns only through SetDetails.
type Listing struct {
	ID          string        `gorm:"type:char(36);primaryKey"`
	UserID      string        `gorm:"type:char(36);not null;index"`
	Owner       *User         `gorm:"foreignKey:UserID"`
	Title       string        `gorm:"size:200;not null"`
	Description string        `gorm:"type:text;not null"`
	Price       float64       `gorm:"not null;index"`
	Category    Category      `gorm:"size:30;not null;index"`
	ListingType ListingType   `gorm:"size:10;not null"`
	Status      ListingStatus `gorm:"size:20;not null;default:'ACTIVE';index:idx_listings_status_created,priority:1"`

	// REAL_ESTATE only
	PropertyType *PropertyType `gorm:"size:20"`
	Area         *float64
	Bedrooms     *int
	Bathrooms    *int

	// Every other category
	Condition *Condition `gorm:"size:20"`
	Brand     *string    `gorm:"size:100"`
	Model     *string    `gorm:"size:100"`
	YearMade  *int

	Address   string   `gorm:"size:500;not null"`
	Ward      *string  `gorm:"size:100"`
	District  string   `gorm:"size:100;not null;index"`
	City      string   `gorm:"size:100;not null;index"`
	Latitude  *float64
	Longitude *float64

	Images []ListingImage `gorm:"foreignKey:ListingID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time      `gorm:"index:idx_listings_status_created,priority:2"`
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

// TableName overrides the table name for Listing
func (Listing) TableName() string {
	return "listings"
}

// BeforeCreate assigns an id and the initial lifecycle state
func (l *Listing) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	if l.Status == "" {
		l.Status = StatusActive
	}
	return nil
}

// ListingImage is one entry of a listing's ordered gallery
type ListingImage struct {
	ID          string  `gorm:"type:char(36);primaryKey"`
	ListingID   string  `gorm:"type:char(36);not null;index"`
	URL         string  `gorm:"size:1000;not null"`
	ExternalRef *string `gorm:"size:255"`
	Position    int     `gorm:"not null;default:0"`
	CreatedAt   time.Time
}

// TableName overrides the table name for ListingImage
func (ListingImage) TableName() string {
	return "listing_images"
}

// BeforeCreate assigns an id
func (i *ListingImage) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}
