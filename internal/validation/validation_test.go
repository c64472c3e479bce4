// validation_test.go
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
	"encoding/json"
	"strings"
	"testing"

	"github.com/localnerve/jam-build-classifieds/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validListing() ListingInput {
	var in ListingInput
	body := `{
		"title": "Two bedroom apartment downtown",
		"description": "` + strings.Repeat("Bright and quiet with a balcony. ", 3) + `",
		"price": "2500000",
		"category": "REAL_ESTATE",
		"listingType": "SALE",
		"propertyType": "APARTMENT",
		"area": 72.5,
		"bedrooms": 2,
		"address": "12 Market Street",
		"district": "Central",
		"city": "Springfield",
		"images": [{"url": "https://cdn.example.com/a.jpg"}]
	}`
	if err := json.Unmarshal([]byte(body), &in); err != nil {
		panic(err)
	}
	return in
}

func TestListingInputValid(t *testing.T) {
	in := validListing()
	assert.Empty(t, Struct(&in))

	d, ok := in.Details().(models.RealEstateDetails)
	require.True(t, ok)
	assert.Equal(t, 72.5, *d.Area)
}

func TestListingInputViolationsAreOrdered(t *testing.T) {
	in := validListing()
	in.Title = "short"
	in.Price = 0
	in.City = ""

	v := Struct(&in)
	require.Len(t, v, 3)
	assert.Equal(t, "title", v[0].Field)
	assert.Equal(t, "Title must be at least 10 characters", v.First().Message)
	assert.Equal(t, "price", v[1].Field)
	assert.Equal(t, "city", v[2].Field)

	appErr := v.AppError()
	assert.Equal(t, 400, appErr.Status)
	assert.Equal(t, v[0].Message, appErr.Message)
}

func TestListingInputLimits(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*ListingInput)
		field  string
	}{
		{"price ceiling", func(in *ListingInput) { in.Price = 1e13 }, "price"},
		{"area ceiling", func(in *ListingInput) { a := validListing().Area; *a = 200000; in.Area = a }, "area"},
		{"zero area", func(in *ListingInput) { a := validListing().Area; *a = 0; in.Area = a }, "area"},
		{"bad category", func(in *ListingInput) { in.Category = "BOATS" }, "category"},
		{"bad listing type", func(in *ListingInput) { in.ListingType = "LEASE" }, "listingType"},
		{"short description", func(in *ListingInput) { in.Description = "too short" }, "description"},
		{"bad image url", func(in *ListingInput) { in.Images = []ImageInput{{URL: "not a url"}} }, "url"},
		{"bad status", func(in *ListingInput) { s := models.StatusDeleted; in.Status = &s }, "status"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validListing()
			tt.mutate(&in)
			v := Struct(&in)
			require.NotEmpty(t, v)
			assert.Equal(t, tt.field, v[0].Field)
		})
	}
}

func TestListingInputRejectsWrongFamily(t *testing.T) {
	in := validListing()
	cond := models.ConditionGood
	in.Condition = &cond

	v := Struct(&in)
	require.Len(t, v, 1)
	assert.Equal(t, "condition", v[0].Field)
	assert.Equal(t, "Condition is not allowed for REAL_ESTATE listings", v[0].Message)

	in = validListing()
	in.Category = models.CategoryVehicles
	in.PropertyType = nil
	in.Area = nil
	v = Struct(&in)
	require.Len(t, v, 1)
	assert.Equal(t, "bedrooms", v[0].Field)
	assert.Equal(t, "Bedrooms is only allowed for REAL_ESTATE listings", v[0].Message)
}

func TestRegisterInput(t *testing.T) {
	valid := RegisterInput{Name: "Jo", Email: "jo@example.com", Password: "Secret#123", ConfirmPassword: "Secret#123"}
	assert.Empty(t, Struct(&valid))

	tests := []struct {
		name     string
		password string
		confirm  string
		message  string
	}{
		{"too short", "Ab#1", "Ab#1", "Password must be at least 8 characters"},
		{"no upper", "secret#123", "secret#123", "Password must contain at least one uppercase letter"},
		{"no digit", "Secret#abc", "Secret#abc", "Password must contain at least one number"},
		{"no special", "Secret1234", "Secret1234", "Password must contain at least one special character"},
		{"mismatch", "Secret#123", "Secret#124", "Passwords do not match"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := valid
			in.Password, in.ConfirmPassword = tt.password, tt.confirm
			v := Struct(&in)
			require.NotEmpty(t, v)
			assert.Equal(t, tt.message, v.First().Message)
		})
	}

	bad := valid
	bad.Email = "nope"
	assert.Equal(t, "Invalid email address", Struct(&bad).First().Message)
}

func TestMessageInputNeedsContact(t *testing.T) {
	in := MessageInput{ListingID: "abc", Content: "Is this still available?"}
	v := Struct(&in)
	require.Len(t, v, 1)
	assert.Equal(t, "phone_or_email", v[0].Rule)

	email := "buyer@example.com"
	in.Email = &email
	assert.Empty(t, Struct(&in))

	in.Content = "hi"
	assert.Equal(t, "content", Struct(&in).First().Field)
}

func TestReportAndProfileInput(t *testing.T) {
	assert.Equal(t, "reason", Struct(&ReportInput{ListingID: "abc", Reason: "bad"}).First().Field)
	assert.Equal(t, "listingId", Struct(&ReportInput{Reason: "Looks like a scam"}).First().Field)
	assert.Empty(t, Struct(&ReportInput{ListingID: "abc", Reason: "Looks like a scam"}))

	img := "not-a-url"
	assert.Equal(t, "image", Struct(&ProfileInput{Name: "Jo", Image: &img}).First().Field)
	assert.Empty(t, Struct(&ProfileInput{Name: "Jo"}))
}
