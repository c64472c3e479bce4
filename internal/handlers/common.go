// common.go
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
	"github.com/localnerve/jam-build-classifieds/internal/middleware"
	"github.com/localnerve/jam-build-classifieds/internal/sanitize"
	"github.com/localnerve/jam-build-classifieds/internal/types"
)

// parseBody decodes the JSON request body into v
func parseBody(c *fiber.Ctx, v any) error {
	if len(c.Body()) == 0 {
		return types.BadRequest("Request body is required")
	}
	if err := c.BodyParser(v); err != nil {
		return types.BadRequest("Invalid request body")
	}
	return nil
}

// pageParams reads and normalizes page and pageSize
func pageParams(c *fiber.Ctx) (int, int) {
	return sanitize.Page(c.Query("page")), sanitize.PageSize(c.Query("pageSize"))
}

// query adapts fiber's query lookup to a plain getter
func query(c *fiber.Ctx) func(string) string {
	return func(key string) string {
		return c.Query(key)
	}
}

// actor is the authenticated caller, "" when anonymous
func actor(c *fiber.Ctx) string {
	return middleware.UserID(c)
}
