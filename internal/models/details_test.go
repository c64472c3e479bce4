// details_test.go
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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetDetailsClearsOtherFamily(t *testing.T) {
	apartment := PropertyApartment
	area := 72.5
	beds := 2
	cond := ConditionGood
	brand := "Honda"

	l := &Listing{Category: CategoryVehicles}
	l.SetDetails(GoodsDetails{Condition: &cond, Brand: &brand})
	assert.Equal(t, &cond, l.Condition)

	l.Category = CategoryRealEstate
	l.SetDetails(RealEstateDetails{PropertyType: &apartment, Area: &area, Bedrooms: &beds})

	assert.Nil(t, l.Condition)
	assert.Nil(t, l.Brand)
	assert.Equal(t, &area, l.Area)

	d, ok := l.Details().(RealEstateDetails)
	assert.True(t, ok)
	assert.Equal(t, &apartment, d.PropertyType)
}

func TestDetailsFollowsCategory(t *testing.T) {
	area := 10.0
	l := &Listing{Category: CategoryElectronics, Area: &area}
	_, ok := l.Details().(GoodsDetails)
	assert.True(t, ok)
	assert.False(t, IsRealEstate(l.Category))
}

func TestNewAuditDetails(t *testing.T) {
	d, err := NewAuditDetails(map[string]any{"title": "Bike"})
	assert.NoError(t, err)

	var out map[string]string
	assert.NoError(t, d.Decode(&out))
	assert.Equal(t, "Bike", out["title"])

	empty, err := NewAuditDetails(nil)
	assert.NoError(t, err)
	assert.Equal(t, "{}", string(empty.JSON))
}
