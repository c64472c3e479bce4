// messages.go
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

// MessageHandler handles contact message routes
type MessageHandler struct {
	DB *gorm.DB
}

// List handles GET /api/messages
// @Summary List received messages
// @Tags Messages
// @Produce json
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size (max 50)"
// @Success 200 {object} services.Page[services.MessageView]
// @Failure 401 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /messages [get]
func (h *MessageHandler) List(c *fiber.Ctx) error {
	page, size := pageParams(c)

	result, err := services.ListMessages(h.DB.WithContext(c.UserContext()), actor(c), page, size)
	if err != nil {
		return utils.AppErrorResponse(c, err, "listMessages")
	}
	return c.JSON(result)
}

// Send handles POST /api/messages
// @Summary Contact a listing owner
// @Tags Messages
// @Accept json
// @Produce json
// @Param message body validation.MessageInput true "Message"
// @Success 201 {object} services.MessageView
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /messages [post]
func (h *MessageHandler) Send(c *fiber.Ctx) error {
	var in validation.MessageInput
	if err := parseBody(c, &in); err != nil {
		return utils.AppErrorResponse(c, err, "sendMessage")
	}

	msg, err := services.SendMessage(h.DB.WithContext(c.UserContext()), actor(c), &in)
	if err != nil {
		return utils.AppErrorResponse(c, err, "sendMessage")
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

// MarkRead handles PUT /api/messages/:id/read
// @Summary Mark a message read
// @Tags Messages
// @Produce json
// @Param id path string true "Message ID"
// @Success 200 {object} services.MessageView
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Security BearerAuth
// @Router /messages/{id}/read [put]
func (h *MessageHandler) MarkRead(c *fiber.Ctx) error {
	msg, err := services.MarkMessageRead(h.DB.WithContext(c.UserContext()), actor(c), c.Params("id"))
	if err != nil {
		return utils.AppErrorResponse(c, err, "markMessageRead")
	}
	return c.JSON(msg)
}
