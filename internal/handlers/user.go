// user.go
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

// UserHandler handles the caller's own account
type UserHandler struct {
	DB           *gorm.DB
	Accounts     *services.Accounts
	SecureCookie bool
}

// GetProfile handles GET /api/user/profile
// @Summary Get profile
// @Tags User
// @Produce json
// @Success 200 {object} services.ProfileView
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /user/profile [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	profile, err := h.Accounts.GetProfile(h.DB.WithContext(c.UserContext()), actor(c))
	if err != nil {
		return utils.AppErrorResponse(c, err, "getProfile")
	}
	return c.JSON(profile)
}

// UpdateProfile handles PUT /api/user/profile
// @Summary Update profile
// @Tags User
// @Accept json
// @Produce json
// @Param profile body validation.ProfileInput true "Profile"
// @Success 200 {object} services.AccountView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /user/profile [put]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var in validation.ProfileInput
	if err := parseBody(c, &in); err != nil {
		return utils.AppErrorResponse(c, err, "updateProfile")
	}

	user, err := h.Accounts.UpdateProfile(h.DB.WithContext(c.UserContext()), actor(c), &in)
	if err != nil {
		return utils.AppErrorResponse(c, err, "updateProfile")
	}
	return c.JSON(user)
}

// DeleteAccount handles DELETE /api/user
// @Summary Delete account
// @Description Anonymizes the account and soft-deletes its listings. Rows are kept.
// @Tags User
// @Produce json
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /user [delete]
func (h *UserHandler) DeleteAccount(c *fiber.Ctx) error {
	if err := h.Accounts.DeleteAccount(h.DB.WithContext(c.UserContext()), actor(c)); err != nil {
		return utils.AppErrorResponse(c, err, "deleteAccount")
	}
	clearSession(c, h.SecureCookie)
	return utils.MessageResponse(c, fiber.StatusOK, "Account deleted successfully")
}
