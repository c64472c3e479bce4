// response.go
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

package utils

import (
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/jam-build-classifieds/internal/types"
)

// ErrorResponseStruct defines the schema for error responses
type ErrorResponseStruct struct {
	Status    int             `json:"status"`
	Code      types.ErrorCode `json:"code"`
	Message   string          `json:"message"`
	Ok        bool            `json:"ok"`
	Timestamp string          `json:"timestamp"`
	URL       string          `json:"url"`
}

// MessageResponseStruct defines the schema for plain success messages
type MessageResponseStruct struct {
	Message string `json:"message"`
	Ok      bool   `json:"ok"`
}

// ErrorResponse sends the standard error envelope
func ErrorResponse(c *fiber.Ctx, status int, code types.ErrorCode, message string) error {
	return c.Status(status).JSON(ErrorResponseStruct{
		Status:    status,
		Code:      code,
		Message:   message,
		Ok:        false,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		URL:       c.OriginalURL(),
	})
}

// AppErrorResponse renders err. Anything that is not an AppError is logged and hidden behind a generic 500.
func AppErrorResponse(c *fiber.Ctx, err error, operation string) error {
	appErr, ok := types.AsAppError(err)
	if !ok {
		appErr = types.Internal(err)
	}
	if appErr.Status >= fiber.StatusInternalServerError {
		slog.Error("request failed",
			"operation", operation,
			"method", c.Method(),
			"path", c.Path(),
			"error", err)
	}
	return ErrorResponse(c, appErr.Status, appErr.Code, appErr.Message)
}

// NotFoundResponse sends a 404 not found response
func NotFoundResponse(c *fiber.Ctx, message string) error {
	return ErrorResponse(c, fiber.StatusNotFound, types.CodeNotFound, message)
}

// MessageResponse sends a success message
func MessageResponse(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(MessageResponseStruct{Message: message, Ok: true})
}

// ErrorHandler is the global fiber error handler
func ErrorHandler(c *fiber.Ctx, err error) error {
	if _, ok := types.AsAppError(err); ok {
		return AppErrorResponse(c, err, "handler")
	}

	var fe *fiber.Error
	if errors.As(err, &fe) {
		switch {
		case fe.Code == fiber.StatusNotFound:
			return NotFoundResponse(c, "[404] Resource Not Found")
		case fe.Code == fiber.StatusUnauthorized:
			return ErrorResponse(c, fe.Code, types.CodeUnauthorized, fe.Message)
		case fe.Code == fiber.StatusForbidden:
			return ErrorResponse(c, fe.Code, types.CodeForbidden, fe.Message)
		case fe.Code == fiber.StatusTooManyRequests:
			return ErrorResponse(c, fe.Code, types.CodeRateLimited, fe.Message)
		case fe.Code >= 400 && fe.Code < 500:
			return ErrorResponse(c, fe.Code, types.CodeBadRequest, fe.Message)
		}
	}

	return AppErrorResponse(c, err, "unhandled")
}

// ClientIP returns the caller's address. Proxy headers are honored only when trustProxy is set.
func ClientIP(c *fiber.Ctx, trustProxy bool) string {
	if trustProxy {
		if fwd := c.Get(fiber.HeaderXForwardedFor); fwd != "" {
			first, _, _ := strings.Cut(fwd, ",")
			if ip := strings.TrimSpace(first); ip != "" {
				return ip
			}
		}
		if ip := strings.TrimSpace(c.Get("X-Real-IP")); ip != "" {
			return ip
		}
	}
	if ip := c.IP(); ip != "" {
		return ip
	}
	return "127.0.0.1"
}
