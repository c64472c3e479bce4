// response_test.go
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
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/jam-build-classifieds/internal/testutil"
	"github.com/localnerve/jam-build-classifieds/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandler(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	app.Get("/forbidden", func(c *fiber.Ctx) error {
		return types.Forbidden("nope")
	})
	app.Get("/wrapped", func(c *fiber.Ctx) error {
		return fmt.Errorf("outer: %w", types.NotFound("gone"))
	})
	app.Get("/store", func(c *fiber.Ctx) error {
		return errors.New("dial tcp 10.0.0.5:5432: connection refused")
	})
	app.Get("/fiber", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusRequestEntityTooLarge, "Request Entity Too Large")
	})

	tests := []struct {
		path    string
		status  int
		code    string
		message string
	}{
		{"/forbidden", 403, "FORBIDDEN", "nope"},
		{"/wrapped", 404, "NOT_FOUND", "gone"},
		{"/store", 500, "INTERNAL_ERROR", "An unexpected error occurred"},
		{"/fiber", 413, "BAD_REQUEST", "Request Entity Too Large"},
		{"/missing-route", 404, "NOT_FOUND", "[404] Resource Not Found"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp := testutil.Do(t, app, testutil.Request{Method: "GET", Path: tt.path})
			body := testutil.ExpectError(t, resp, tt.status, tt.code)
			assert.Equal(t, tt.message, body.Message)
			assert.Equal(t, tt.path, body.URL)
			assert.NotEmpty(t, body.Timestamp)
		})
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		trust   bool
		want    string
	}{
		{"forwarded first entry", map[string]string{"X-Forwarded-For": " 203.0.113.7 , 10.0.0.1"}, true, "203.0.113.7"},
		{"real ip", map[string]string{"X-Real-IP": "198.51.100.2"}, true, "198.51.100.2"},
		{"forwarded wins", map[string]string{"X-Forwarded-For": "203.0.113.7", "X-Real-IP": "198.51.100.2"}, true, "203.0.113.7"},
		{"untrusted headers ignored", map[string]string{"X-Forwarded-For": "203.0.113.7"}, false, ""},
		{"no headers", nil, true, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				return c.SendString(ClientIP(c, tt.trust))
			})

			req := httptest.NewRequest("GET", "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)

			buf := make([]byte, 64)
			n, _ := resp.Body.Read(buf)
			got := string(buf[:n])
			if tt.want == "" {
				// falls back to the connection address
				assert.NotEmpty(t, got)
				assert.NotEqual(t, "203.0.113.7", got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}
