// visibility.go
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
	"errors"
	"fmt"

	"github.com/localnerve/jam-build-classifieds/internal/models"
	"gorm.io/gorm"
)

// OwnerMe asks for the caller's own listings
const OwnerMe = "me"

// StatusFilter is the visibility constraint for a listing collection
type StatusFilter struct {
	OwnerID    string // empty means every owner
	ActiveOnly bool
	Empty      bool // no listing can match, skip the store
}

// ResolveListingStatusFilter decides which listings a collection request may see.
// actorID is empty for anonymous callers.
//
//   - no owner requested: every owner, ACTIVE only
//   - "me" without a session: nothing
//   - "me", or the caller's own id: that owner, every status
//   - another owner's id: ignored, every owner, ACTIVE only
func ResolveListingStatusFilter(actorID, requestedOwnerID string) StatusFilter {
	switch {
	case requestedOwnerID == "":
		return StatusFilter{ActiveOnly: true}
	case requestedOwnerID == OwnerMe && actorID == "":
		return StatusFilter{Empty: true}
	case requestedOwnerID == OwnerMe || requestedOwnerID == actorID:
		return StatusFilter{OwnerID: actorID}
	}
	return StatusFilter{ActiveOnly: true}
}

// CanMutate reports whether actorID may edit or delete a resource owned by ownerID.
// Owners always may; anyone else needs the ADMIN role.
func CanMutate(db *gorm.DB, actorID, ownerID string) (bool, error) {
	if actorID == "" {
		return false, nil
	}
	if actorID == ownerID {
		return true, nil
	}

	var actor models.User
	err := db.Select("id", "role").Where("id = ?", actorID).Take(&actor).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load actor role: %w", err)
	}
	return actor.IsAdmin(), nil
}

// RedactPhone returns phone only when the viewer owns the listing. Admins are not exempt.
func RedactPhone(viewerID, ownerID string, phone *string) *string {
	if viewerID == "" || viewerID != ownerID {
		return nil
	}
	return phone
}
