// auth.go
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

package middleware

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/jam-build-classifieds/internal/auth"
	"github.com/localnerve/jam-build-classifieds/internal/models"
	"github.com/localnerve/jam-build-classifieds/internal/types"
	"gorm.io/gorm"
)

// SessionCookie is the cookie carrying the session token
const SessionCookie = "session"

const userIDKey = "userID"

// Identify resolves the session token from the Authorization header or the session cookie.
// Requests without a valid token, or whose user is missing or no longer ACTIVE, continue anonymously.
func Identify(issuer *auth.Issuer, db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			token = c.Cookies(SessionCookie)
		}
		if token == "" {
			return c.Next()
		}

		claims, err := issuer.ValidateToken(token)
		if err != nil {
			return c.Next()
		}

		active, err := isActive(db.WithContext(c.UserContext()), claims.UserID)
		if err != nil {
			return types.Internal(err)
		}
		if active {
			c.Locals(userIDKey, claims.UserID)
		}
		return c.Next()
	}
}

// isActive reports whether the token's user still exists and may act.
// Deleted accounts are BANNED, so their tokens stop working immediately.
func isActive(db *gorm.DB, userID string) (bool, error) {
	var user models.User
	err := db.Select("id", "status").Where("id = ?", userID).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.Status == models.UserActive, nil
}

// RequireAuth rejects anonymous requests. It runs after Identify.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if UserID(c) == "" {
			return types.Unauthorized("Authentication required")
		}
		return c.Next()
	}
}

// UserID returns the authenticated user's id, or "" for anonymous requests
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(userIDKey).(string)
	return id
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
