// json.go
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
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// AuditDetails is a free-form JSON payload stored with an audit record
type AuditDetails struct {
	datatypes.JSON
}

// NewAuditDetails encodes v. A nil v yields an empty document.
func NewAuditDetails(v any) (AuditDetails, error) {
	if v == nil {
		return AuditDetails{JSON: datatypes.JSON("{}")}, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return AuditDetails{}, fmt.Errorf("encode audit details: %w", err)
	}
	return AuditDetails{JSON: datatypes.JSON(raw)}, nil
}

// Decode unmarshals the document into dst
func (d AuditDetails) Decode(dst any) error {
	if len(d.JSON) == 0 {
		return nil
	}
	return json.Unmarshal(d.JSON, dst)
}

// Value promotes the embedded JSON's Value method
func (d AuditDetails) Value() (driver.Value, error) {
	return d.JSON.Value()
}

// Scan promotes the embedded JSON's Scan method
func (d *AuditDetails) Scan(value interface{}) error {
	return d.JSON.Scan(value)
}

// GormDBDataType picks a column type per dialect, MSSQL has no json type.
func (AuditDetails) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	switch db.Dialector.Name() {
	case "mysql":
		return "JSON"
	case "postgres":
		return "JSONB"
	case "sqlserver", "mssql":
		return "NVARCHAR(MAX)"
	}
	return "TEXT"
}
