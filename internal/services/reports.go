// reports.go
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
	"time"

	"github.com/localnerve/jam-build-classifieds/internal/models"
	"github.com/localnerve/jam-build-classifieds/internal/sanitize"
	"github.com/localnerve/jam-build-classifieds/internal/types"
	"github.com/localnerve/jam-build-classifieds/internal/validation"
	"gorm.io/gorm"
)

// ReportView is a report as returned by the API
type ReportView struct {
	ID         string              `json:"id"`
	Reason     string              `json:"reason"`
	Details    *string             `json:"details"`
	Status     models.ReportStatus `json:"status"`
	ReporterID string              `json:"reporterId"`
	ListingID  *string             `json:"listingId"`
	CreatedAt  time.Time           `json:"createdAt"`
}

// CreateReport flags a live listing for moderation
func CreateReport(db *gorm.DB, reporterID string, in *validation.ReportInput) (*ReportView, error) {
	if v := validation.Struct(in); len(v) > 0 {
		return nil, v.AppError()
	}

	var listing models.Listing
	err := db.Select("id").Where("id = ?", in.ListingID).Take(&listing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NotFound(listingNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load listing %s: %w", in.ListingID, err)
	}

	report := models.Report{
		Reason:     sanitize.Text(in.Reason, sanitize.MaxReasonLength),
		Details:    sanitize.OptionalText(in.Details, sanitize.MaxDetailsLength),
		Status:     models.ReportPending,
		ReporterID: reporterID,
		ListingID:  &listing.ID,
	}
	if err := db.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("create report: %w", err)
	}

	RecordAudit(db, reporterID, ActionCreate, ResourceReport, report.ID, map[string]any{"listingId": listing.ID})

	return &ReportView{
		ID:         report.ID,
		Reason:     report.Reason,
		Details:    report.Details,
		Status:     report.Status,
		ReporterID: report.ReporterID,
		ListingID:  report.ListingID,
		CreatedAt:  report.CreatedAt,
	}, nil
}
