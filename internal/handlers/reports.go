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

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/jam-build-classifieds/internal/services"
	"github.com/localnerve/jam-build-classifieds/internal/utils"
	"github.com/localnerve/jam-build-classifieds/internal/validation"
	"gorm.io/gorm"
)

// ReportHandler handles moderation reports
type ReportHandler struct {
	DB *gorm.DB
}

// Create handles POST /api/reports
// @Summary Report a listing
// @Tags Reports
// @Accept json
// @Produce json
// @Param report body validation.ReportInput true "Report"
// @Success 201 {object} services.ReportView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /reports [post]
func (h *ReportHandler) Create(c *fiber.Ctx) error {
	var in validation.ReportInput
	if err := parseBody(c, &in); err != nil {
		return utils.AppErrorResponse(c, err, "createReport")
	}

	report, err := services.CreateReport(h.DB.WithContext(c.UserContext()), actor(c), &in)
	if err != nil {
		return utils.AppErrorResponse(c, err, "createReport")
	}
	return c.Status(fiber.StatusCreated).JSON(report)
}
