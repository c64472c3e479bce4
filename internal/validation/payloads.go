// payloads.go
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

package validation

import (
	"github.com/go-playground/validator/v10"
	"github.com/localnerve/jam-build-classifieds/internal/models"
	"github.com/localnerve/jam-build-classifieds/internal/types"
)

// ImageInput is one image reference in a listing payload
type ImageInput struct {
	URL         string  `json:"url" validate:"required,url,max=1000"`
	ExternalRef *string `json:"externalRef" validate:"omitempty,max=255"`
}

// ListingInput is the full create/update payload for a listing.
// A nil Images leaves stored images alone on update, an empty one clears them.
type ListingInput struct {
	Title        string                `json:"title" validate:"required,min=10,max=200"`
	Description  string                `json:"description" validate:"required,min=50,max=10000"`
	Price        types.FlexFloat64     `json:"price" validate:"gt=0,lte=1000000000000"`
	Category     models.Category       `json:"category" validate:"required,oneof=REAL_ESTATE VEHICLES ELECTRONICS FASHION HOME_GARDEN SPORTS JOBS SERVICES OTHER"`
	ListingType  models.ListingType    `json:"listingType" validate:"required,oneof=SALE RENT"`
	PropertyType *models.PropertyType  `json:"propertyType" validate:"omitnil,oneof=APARTMENT HOUSE VILLA LAND OFFICE SHOPHOUSE"`
	Area         *types.FlexFloat64    `json:"area" validate:"omitnil,gt=0,lte=100000"`
	Bedrooms     *int                  `json:"bedrooms" validate:"omitnil,min=0,max=50"`
	Bathrooms    *int                  `json:"bathrooms" validate:"omitnil,min=0,max=50"`
	Condition    *models.Condition     `json:"condition" validate:"omitnil,oneof=NEW LIKE_NEW GOOD FAIR POOR"`
	Brand        *string               `json:"brand" validate:"omitnil,max=100"`
	Model        *string               `json:"model" validate:"omitnil,max=100"`
	YearMade     *int                  `json:"yearMade" validate:"omitnil,min=1900,max=2100"`
	Address      string                `json:"address" validate:"required,min=5,max=500"`
	Ward         *string               `json:"ward" validate:"omitnil,max=100"`
	District     string                `json:"district" validate:"required,max=100"`
	City         string                `json:"city" validate:"required,max=100"`
	Latitude     *types.FlexFloat64    `json:"latitude" validate:"omitnil,gte=-90,lte=90"`
	Longitude    *types.FlexFloat64    `json:"longitude" validate:"omitnil,gte=-180,lte=180"`
	Images       []ImageInput          `json:"images" validate:"omitempty,max=20,dive"`
	Status       *models.ListingStatus `json:"status" validate:"omitnil,oneof=PENDING ACTIVE SOLD RENTED INACTIVE"`
}

// Details returns the category variant carried by the payload
func (in *ListingInput) Details() models.ListingDetails {
	if models.IsRealEstate(in.Category) {
		return models.RealEstateDetails{
			PropertyType: in.PropertyType,
			Area:         types.FloatPtr(in.Area),
			Bedrooms:     in.Bedrooms,
			Bathrooms:    in.Bathrooms,
		}
	}
	return models.GoodsDetails{
		Condition: in.Condition,
		Brand:     in.Brand,
		Model:     in.Model,
		YearMade:  in.YearMade,
	}
}

func listingFamilies(sl validator.StructLevel) {
	in := sl.Current().Interface().(ListingInput)
	if in.Category == "" {
		return
	}
	if models.IsRealEstate(in.Category) {
		if in.Condition != nil {
			sl.ReportError(in.Condition, "condition", "Condition", "goods_only", "")
		}
		if in.Brand != nil {
			sl.ReportError(in.Brand, "brand", "Brand", "goods_only", "")
		}
		if in.Model != nil {
			sl.ReportError(in.Model, "model", "Model", "goods_only", "")
		}
		if in.YearMade != nil {
			sl.ReportError(in.YearMade, "yearMade", "YearMade", "goods_only", "")
		}
		return
	}
	if in.PropertyType != nil {
		sl.ReportError(in.PropertyType, "propertyType", "PropertyType", "real_estate_only", "")
	}
	if in.Area != nil {
		sl.ReportError(in.Area, "area", "Area", "real_estate_only", "")
	}
	if in.Bedrooms != nil {
		sl.ReportError(in.Bedrooms, "bedrooms", "Bedrooms", "real_estate_only", "")
	}
	if in.Bathrooms != nil {
		sl.ReportError(in.Bathrooms, "bathrooms", "Bathrooms", "real_estate_only", "")
	}
}

// RegisterInput creates a credential account
type RegisterInput struct {
	Name            string `json:"name" validate:"required,min=2,max=100"`
	Email           string `json:"email" validate:"required,email,max=255"`
	Password        string `json:"password" validate:"required,min=8,max=100,hasupper,hasdigit,hasspecial"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// LoginInput exchanges credentials for a session
type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ForgotPasswordInput requests a reset token
type ForgotPasswordInput struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordInput consumes a reset token
type ResetPasswordInput struct {
	Token           string `json:"token" validate:"required"`
	Password        string `json:"password" validate:"required,min=8,max=100,hasupper,hasdigit,hasspecial"`
	ConfirmPassword string `json:"confirmPassword" validate:"required,eqfield=Password"`
}

// ProfileInput updates the caller's own profile
type ProfileInput struct {
	Name  string  `json:"name" validate:"required,min=2,max=100"`
	Phone *string `json:"phone" validate:"omitempty,max=30"`
	Image *string `json:"image" validate:"omitempty,url,max=1000"`
}

// FavoriteInput bookmarks a listing
type FavoriteInput struct {
	ListingID string `json:"listingId" validate:"required"`
}

// MessageInput contacts a listing owner
type MessageInput struct {
	ListingID string  `json:"listingId" validate:"required"`
	Content   string  `json:"content" validate:"required,min=10,max=2000"`
	Phone     *string `json:"phone" validate:"omitempty,max=30"`
	Email     *string `json:"email" validate:"omitempty,email,max=255"`
}

func messageContact(sl validator.StructLevel) {
	in := sl.Current().Interface().(MessageInput)
	if isBlank(in.Phone) && isBlank(in.Email) {
		sl.ReportError(in.Phone, "phone", "Phone", "phone_or_email", "")
	}
}

// ReportInput flags a listing for moderation
type ReportInput struct {
	ListingID string  `json:"listingId" validate:"required"`
	Reason    string  `json:"reason" validate:"required,min=5,max=200"`
	Details   *string `json:"details" validate:"omitempty,max=2000"`
}

func isBlank(s *string) bool {
	return s == nil || *s == ""
}
