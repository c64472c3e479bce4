// audit.go
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
	"log/slog"

	"github.com/localnerve/jam-build-classifieds/internal/models"
	"gorm.io/gorm"
)

// Audit actions
const (
	ActionCreate = "CREATE"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// Audit resources
const (
	ResourceListing = "Listing"
	ResourceUser    = "User"
	ResourceReport  = "Report"
)

// RecordAudit appends an audit entry. Failures are logged and never returned.
func RecordAudit(db *gorm.DB, userID, action, resource, resourceID string, details any) {
	payload, err := models.NewAuditDetails(details)
	if err != nil {
		slog.Warn("audit details not encodable", "action", action, "resource", resource, "error", err)
		payload, _ = models.NewAuditDetails(nil)
	}

	entry := models.AuditLog{
		UserID:   userID,
		Action:   action,
		Resource: resource,
		Details:  payload,
	}
	if resourceID != "" {
		entry.ResourceID = &resourceID
	}

	if err := db.Create(&entry).Error; err != nil {
		slog.Warn("audit log write failed",
			"user", userID, "action", action, "resource", resource, "resource_id", resourceID, "error", err)
	}
}
