// details.go
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

// ListingDetails is the category-specific part of a listing.
// Exactly one family applies, chosen by Category.
type ListingDetails interface {
	family() string
}

// RealEstateDetails applies when Category is REAL_ESTATE
type RealEstateDetails struct {
	PropertyType *PropertyType
	Area         *float64
	Bedrooms     *int
	Bathrooms    *int
}

func (RealEstateDetails) family() string { return "real_estate" }

// GoodsDetails applies to every other category
type GoodsDetails struct {
	Condition *Condition
	Brand     *string
	Model     *string
	YearMade  *int
}

func (GoodsDetails) family() string { return "goods" }

// IsRealEstate reports whether the category uses RealEstateDetails
func IsRealEstate(c Category) bool {
	return c == CategoryRealEstate
}

// Details returns the variant that matches the listing's category
func (l *Listing) Details() ListingDetails {
	if IsRealEstate(l.Category) {
		return RealEstateDetails{
			PropertyType: l.PropertyType,
			Area:         l.Area,
			Bedrooms:     l.Bedrooms,
			Bathrooms:    l.Bathrooms,
		}
	}
	return GoodsDetails{
		Condition: l.Condition,
		Brand:     l.Brand,
		Model:     l.Model,
		YearMade:  l.YearMade,
	}
}

// SetDetails writes d into the listing and clears the other family's columns.
func (l *Listing) SetDetails(d ListingDetails) {
	switch v := d.(type) {
	case RealEstateDetails:
		l.PropertyType, l.Area, l.Bedrooms, l.Bathrooms = v.PropertyType, v.Area, v.Bedrooms, v.Bathrooms
		l.Condition, l.Brand, l.Model, l.YearMade = nil, nil, nil, nil
	case GoodsDetails:
		l.Condition, l.Brand, l.Model, l.YearMade = v.Condition, v.Brand, v.Model, v.YearMade
		l.PropertyType, l.Area, l.Bedrooms, l.Bathrooms = nil, nil, nil, nil
	}
}

// DetailColumns lists the columns SetDetails may touch
var DetailColumns = []string{
	"property_type", "area", "bedrooms", "bathrooms",
	"condition", "brand", "model", "year_made",
}
