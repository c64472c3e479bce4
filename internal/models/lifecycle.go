// lifecycle.go
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
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ListingStatus is the stored lifecycle state of a listing
type ListingStatus string

const (
	StatusPending  ListingStatus = "PENDING"
	StatusActive   ListingStatus = "ACTIVE"
	StatusSold     ListingStatus = "SOLD"
	StatusRented   ListingStatus = "RENTED"
	StatusInactive ListingStatus = "INACTIVE"
)

// StatusDeleted is never stored. Lifecycle reports it once DeletedAt is set.
const StatusDeleted ListingStatus = "DELETED"

var transitions = map[ListingStatus][]ListingStatus{
	StatusPending:  {StatusActive, StatusInactive},
	StatusActive:   {StatusSold, StatusRented, StatusInactive},
	StatusSold:     {StatusActive},
	StatusRented:   {StatusActive},
	StatusInactive: {StatusActive},
}

// Lifecycle returns the effective state, DELETED when soft-deleted
func (l *Listing) Lifecycle() ListingStatus {
	if l.DeletedAt.Valid {
		return StatusDeleted
	}
	return l.Status
}

// IsDeleted reports whether the listing has been soft-deleted
func (l *Listing) IsDeleted() bool {
	return l.DeletedAt.Valid
}

// CanTransition reports whether the listing may move to next.
// Keeping the current status is allowed while it agrees with the listing type.
func (l *Listing) CanTransition(next ListingStatus) error {
	current := l.Lifecycle()
	if current == StatusDeleted {
		return fmt.Errorf("listing is deleted")
	}
	if next == StatusSold && l.ListingType != ListingSale {
		return fmt.Errorf("only SALE listings can be marked SOLD")
	}
	if next == StatusRented && l.ListingType != ListingRent {
		return fmt.Errorf("only RENT listings can be marked RENTED")
	}
	if next == current {
		return nil
	}
	for _, allowed := range transitions[current] {
		if allowed == next {
			return nil
		}
	}
	return fmt.Errorf("cannot change status from %s to %s", current, next)
}

// Transition moves the listing to next if allowed
func (l *Listing) Transition(next ListingStatus) error {
	if err := l.CanTransition(next); err != nil {
		return err
	}
	l.Status = next
	return nil
}

// MarkDeleted sets the soft-delete marker and deactivates the listing in one step.
// The caller persists both columns together.
func (l *Listing) MarkDeleted(now time.Time) error {
	if l.IsDeleted() {
		return fmt.Errorf("listing is deleted")
	}
	l.Status = StatusInactive
	l.DeletedAt = gorm.DeletedAt{Time: now, Valid: true}
	return nil
}

// ValidListingStatus reports whether s is a storable status
func ValidListingStatus(s ListingStatus) bool {
	_, ok := transitions[s]
	return ok
}
