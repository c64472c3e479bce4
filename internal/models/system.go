// system.go
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

// VerificationToken is a single-use password reset token keyed by email
type VerificationToken struct {
	Token      string    `gorm:"size:64;primaryKey"`
	Identifier string    `gorm:"size:255;not null;index"`
	Expires    time.Time `gorm:"not null;index"`
}

// TableName overrides the table name for VerificationToken
func (VerificationToken) TableName() string {
	return "verification_tokens"
}

// Expired reports whether the token is no longer usable at now
func (t *VerificationToken) Expired(now time.Time) bool {
	return !now.Before(t.Expires)
}

// AuditLog is an append-only record of a mutating action
type AuditLog struct {
	ID         string       `gorm:"type:char(36);primaryKey"`
	UserID     string       `gorm:"type:char(36);not null;index"`
	Action     string       `gorm:"size:50;not null;index"`
	Resource   string       `gorm:"size:50;not null"`
	ResourceID *string      `gorm:"type:char(36)"`
	Details    AuditDetails
	CreatedAt  time.Time    `gorm:"index"`
}

// TableName overrides the table name for AuditLog
func (AuditLog) TableName() string {
	return "audit_logs"
}

// BeforeCreate assigns an id
func (a *AuditLog) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// RateLimitCounter is one fixed window held by the database rate limit store
type RateLimitCounter struct {
	Key     string    `gorm:"column:bucket_key;size:255;primaryKey"`
	Count   int       `gorm:"column:hits;not null"`
	ResetAt time.Time `gorm:"not null;index"`
}

// TableName overrides the table name for RateLimitCounter
func (RateLimitCounter) TableName() string {
	return "rate_limit_counters"
}

// All returns every model for migration, in dependency order
func All() []interface{} {
	return []interface{}{
		&User{},
		&Listing{},
		&ListingImage{},
		&Favorite{},
		&Message{},
		&Report{},
		&VerificationToken{},
		&AuditLog{},
		&RateLimitCounter{},
	}
}
