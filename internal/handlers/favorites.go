// favorites.go
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

// FavoriteHandler handles favorite routes
type FavoriteHandler struct {
	DB *gorm.DB
}

// List handles GET /api/favorites
// @Summary List favorites
// @Tags Favorites
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size (max 50)"
// @Success 200 {object} services.Page[services.FavoriteView]
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /favorites [get]
func (h *FavoriteHandler) List(c *fiber.Ctx) error {
	page, size := pageParams(c)

	result, err := services.ListFavorites(h.DB.WithContext(c.UserContext()), actor(c), page, size)
	if err != nil {
		return utils.AppErrorResponse(c, err, "listFavorites")
	}
	return c.JSON(result)
}

// Add handles POST /api/favorites
// @Summary Favorite a listing
// @Tags Favorites
// @Accept json
// @Produce json
// @Param favorite body validation.FavoriteInput true "Listing to favorite"
// @Success 201 {object} services.FavoriteView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /favorites [post]
func (h *FavoriteHandler) Add(c *fiber.Ctx) error {
	var in validation.FavoriteInput
	if err := parseBody(c, &in); err != nil {
		return utils.AppErrorResponse(c, err, "addFavorite")
	}

	fav, err := services.AddFavorite(h.DB.WithContext(c.UserContext()), actor(c), &in)
	if err != nil {
		return utils.AppErrorResponse(c, err, "addFavorite")
	}
	return c.Status(fiber.StatusCreated).JSON(fav)
}

// Remove handles DELETE /api/favorites?listingId=
// @Summary Remove a favorite
// @Tags Favorites
// @Produce json
// @Param listingId query string true "Listing ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /favorites [delete]
func (h *FavoriteHandler) Remove(c *fiber.Ctx) error {
	if err := services.RemoveFavorite(h.DB.WithContext(c.UserContext()), actor(c), c.Query("listingId")); err != nil {
		return utils.AppErrorResponse(c, err, "removeFavorite")
	}
	return utils.MessageResponse(c, fiber.StatusOK, "Removed from favorites")
}
