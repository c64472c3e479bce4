// social.go
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

// Favorite bookmarks a listing for a user. (UserID, ListingID) is unique.
type Favorite struct {
	ID        string   `gorm:"type:char(36);primaryKey"`
	UserID    string   `gorm:"type:char(36);not null;uniqueIndex:idx_favorites_user_listing,priority:1"`
	ListingID string   `gorm:"type:char(36);not null;uniqueIndex:idx_favorites_user_listing,priority:2;index"`
	Listing   *Listing `gorm:"foreignKey:ListingID"`
	CreatedAt time.Time
}

// TableName overrides the table name for Favorite
func (Favorite) TableName() string {
	return "favorites"
}

// BeforeCreate assigns an id
func (f *Favorite) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

// Message is an inquiry sent to a listing owner
type Message struct {
	ID         string   `gorm:"type:char(36);primaryKey"`
	Content    string   `gorm:"type:text;not null"`
	Phone      *string  `gorm:"size:30"`
	Email      *string  `gorm:"size:255"`
	Read       bool     `gorm:"column:is_read;not null;default:false"`
	SenderID   string   `gorm:"type:char(36);not null;index"`
	Sender     *User    `gorm:"foreignKey:SenderID"`
	ReceiverID string   `gorm:"type:char(36);not null;index"`
	ListingID  string   `gorm:"type:char(36);not null;index"`
	Listing    *Listing `gorm:"foreignKey:ListingID"`
	CreatedAt  time.Time
}

// TableName overrides the table name for Message
func (Message) TableName() string {
	return "messages"
}

// BeforeCreate assigns an id
func (m *Message) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

// ReportStatus is the moderation state of a report
type ReportStatus string

const (
	ReportPending     ReportStatus = "PENDING"
	ReportUnderReview ReportStatus = "UNDER_REVIEW"
	ReportResolved    ReportStatus = "RESOLVED"
	ReportDismissed   ReportStatus = "DISMISSED"
)

// Report flags a listing for moderation
type Report struct {
	ID         string       `gorm:"type:char(36);primaryKey"`
	Reason     string       `gorm:"size:200;not null"`
	Details    *string      `gorm:"type:text"`
	Status     ReportStatus `gorm:"size:20;not null;default:'PENDING';index"`
	ReporterID string       `gorm:"type:char(36);not null;index"`
	ListingID  *string      `gorm:"type:char(36);index"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName overrides the table name for Report
func (Report) TableName() string {
	return "reports"
}

// BeforeCreate assigns an id and the initial status
func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	if r.Status == "" {
		r.Status = ReportPending
	}
	return nil
}
