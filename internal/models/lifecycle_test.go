// lifecycle_test.go
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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListingTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    ListingStatus
		kind    ListingType
		to      ListingStatus
		allowed bool
	}{
		{"pending to active", StatusPending, ListingSale, StatusActive, true},
		{"pending to inactive", StatusPending, ListingSale, StatusInactive, true},
		{"pending to sold", StatusPending, ListingSale, StatusSold, false},
		{"active to sold", StatusActive, ListingSale, StatusSold, true},
		{"active to rented", StatusActive, ListingRent, StatusRented, true},
		{"rent listing cannot be sold", StatusActive, ListingRent, StatusSold, false},
		{"sale listing cannot be rented", StatusActive, ListingSale, StatusRented, false},
		{"active to inactive", StatusActive, ListingSale, StatusInactive, true},
		{"sold back to active", StatusSold, ListingSale, StatusActive, true},
		{"rented back to active", StatusRented, ListingRent, StatusActive, true},
		{"inactive to active", StatusInactive, ListingRent, StatusActive, true},
		{"sold to inactive", StatusSold, ListingSale, StatusInactive, false},
		{"same status", StatusActive, ListingSale, StatusActive, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &Listing{Status: tt.from, ListingType: tt.kind}
			err := l.Transition(tt.to)
			if tt.allowed {
				require.NoError(t, err)
				assert.Equal(t, tt.to, l.Status)
			} else {
				require.Error(t, err)
				assert.Equal(t, tt.from, l.Status)
			}
		})
	}
}

func TestMarkDeletedIsTerminal(t *testing.T) {
	l := &Listing{Status: StatusActive, ListingType: ListingSale}
	require.NoError(t, l.MarkDeleted(time.Now()))

	assert.Equal(t, StatusInactive, l.Status)
	assert.True(t, l.DeletedAt.Valid)
	assert.Equal(t, StatusDeleted, l.Lifecycle())
	assert.Error(t, l.Transition(StatusActive))
	assert.Error(t, l.MarkDeleted(time.Now()))
}

func TestValidListingStatus(t *testing.T) {
	assert.True(t, ValidListingStatus(StatusPending))
	assert.True(t, ValidListingStatus(StatusRented))
	assert.False(t, ValidListingStatus(StatusDeleted))
	assert.False(t, ValidListingStatus("ARCHIVED"))
}

func TestKeepingStatusMustMatchType(t *testing.T) {
	l := &Listing{Status: StatusSold, ListingType: ListingRent}
	assert.Error(t, l.Transition(StatusSold))
	assert.NoError(t, l.Transition(StatusActive))
}
