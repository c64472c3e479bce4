// listings.go
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

// ListingHandler handles listing routes
type ListingHandler struct {
	DB *gorm.DB
}

// List handles GET /api/listings
// @Summary Search listings
// @Description Filtered, paginated listings, newest first. userId=me returns the caller's own listings in every status.
// @Tags Listings
// @Produce json
// @Param keyword query string false "Substring of title, description or address"
// @Param category query string false "Category"
// @Param city query string false "City"
// @Param district query string false "District"
// @Param propertyType query string false "Property type"
// @Param listingType query string false "SALE or RENT"
// @Param condition query string false "Item condition"
// @Param minPrice query number false "Minimum price"
// @Param maxPrice query number false "Maximum price"
// @Param minArea query number false "Minimum area"
// @Param maxArea query number false "Maximum area"
// @Param bedrooms query int false "Minimum bedrooms"
// @Param userId query string false "Owner id or 'me'"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size (max 50)"
// @Success 200 {object} services.Page[services.ListingView]
// @Failure 429 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /listings [get]
func (h *ListingHandler) List(c *fiber.Ctx) error {
	filter := services.ParseListingFilter(query(c))

	page, err := services.SearchListings(h.DB.WithContext(c.UserContext()), actor(c), filter)
	if err != nil {
		return utils.AppErrorResponse(c, err, "listListings")
	}
	return c.JSON(page)
}

// Get handles GET /api/listings/:id
// @Summary Get a listing
// @Description A live listing in any status. The owner's phone is only returned to the owner.
// @Tags Listings
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} services.ListingDetail
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /listings/{id} [get]
func (h *ListingHandler) Get(c *fiber.Ctx) error {
	detail, err := services.GetListingDetail(h.DB.WithContext(c.UserContext()), actor(c), c.Params("id"))
	if err != nil {
		return utils.AppErrorResponse(c, err, "getListing")
	}
	return c.JSON(detail)
}

// Create handles POST /api/listings
// @Summary Create a listing
// @Tags Listings
// @Accept json
// @Produce json
// @Param listing body validation.ListingInput true "Listing"
// @Success 201 {object} services.ListingView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /listings [post]
func (h *ListingHandler) Create(c *fiber.Ctx) error {
	var in validation.ListingInput
	if err := parseBody(c, &in); err != nil {
		return utils.AppErrorResponse(c, err, "createListing")
	}

	view, err := services.CreateListing(h.DB.WithContext(c.UserContext()), actor(c), &in)
	if err != nil {
		return utils.AppErrorResponse(c, err, "createListing")
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// Update handles PUT /api/listings/:id
// @Summary Replace a listing
// @Description Full-payload update by the owner or an admin. Supplying images replaces the whole set.
// @Tags Listings
// @Accept json
// @Produce json
// @Param id path string true "Listing ID"
// @Param listing body validation.ListingInput true "Listing"
// @Success 200 {object} services.ListingView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /listings/{id} [put]
func (h *ListingHandler) Update(c *fiber.Ctx) error {
	db := h.DB.WithContext(c.UserContext())

	listing, err := services.LoadMutableListing(db, actor(c), c.Params("id"))
	if err != nil {
		return utils.AppErrorResponse(c, err, "updateListing")
	}

	var in validation.ListingInput
	if err := parseBody(c, &in); err != nil {
		return utils.AppErrorResponse(c, err, "updateListing")
	}

	view, err := services.UpdateListing(db, actor(c), listing, &in)
	if err != nil {
		return utils.AppErrorResponse(c, err, "updateListing")
	}
	return c.JSON(view)
}

// Delete handles DELETE /api/listings/:id
// @Summary Delete a listing
// @Description Soft delete by the owner or an admin
// @Tags Listings
// @Produce json
// @Param id path string true "Listing ID"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /listings/{id} [delete]
func (h *ListingHandler) Delete(c *fiber.Ctx) error {
	db := h.DB.WithContext(c.UserContext())

	listing, err := services.LoadMutableListing(db, actor(c), c.Params("id"))
	if err != nil {
		return utils.AppErrorResponse(c, err, "deleteListing")
	}
	if err := services.SoftDeleteListing(db, actor(c), listing); err != nil {
		return utils.AppErrorResponse(c, err, "deleteListing")
	}
	return utils.MessageResponse(c, fiber.StatusOK, "Listing deleted")
}
