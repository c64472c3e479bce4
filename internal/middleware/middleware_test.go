// middleware_test.go
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
	"net/http"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/jam-build-classifieds/internal/auth"
	"github.com/localnerve/jam-build-classifieds/internal/models"
	"github.com/localnerve/jam-build-classifieds/internal/ratelimit"
	"github.com/localnerve/jam-build-classifieds/internal/testutil"
	"github.com/localnerve/jam-build-classifieds/internal/utils"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newApp() *fiber.App {
	return fiber.New(fiber.Config{ErrorHandler: utils.ErrorHandler})
}

func TestIdentifyAndRequireAuth(t *testing.T) {
	db := testutil.NewDB(t)
	testutil.CreateUser(t, db, models.User{ID: "user-1", Email: "user@example.com"})
	issuer := auth.NewIssuer("middleware-secret", time.Hour)
	token, _, err := issuer.GenerateToken("user-1", "user@example.com")
	require.NoError(t, err)

	app := newApp()
	app.Use(Identify(issuer, db))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"id": UserID(c)})
	})
	app.Get("/private", RequireAuth(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	var body struct {
		ID string `json:"id"`
	}

	resp := testutil.Do(t, app, testutil.Request{Method: "GET", Path: "/whoami", Token: token})
	testutil.ExpectStatus(t, resp, http.StatusOK, &body)
	assert.Equal(t, "user-1", body.ID)

	resp = testutil.Do(t, app, testutil.Request{Method: "GET", Path: "/whoami", Headers: map[string]string{
		"Cookie": SessionCookie + "=" + token,
	}})
	testutil.ExpectStatus(t, resp, http.StatusOK, &body)
	assert.Equal(t, "user-1", body.ID)

	resp = testutil.Do(t, app, testutil.Request{Method: "GET", Path: "/whoami", Token: "garbage"})
	testutil.ExpectStatus(t, resp, http.StatusOK, &body)
	assert.Empty(t, body.ID, "invalid tokens are anonymous")

	resp = testutil.Do(t, app, testutil.Request{Method: "GET", Path: "/private"})
	testutil.ExpectError(t, resp, http.StatusUnauthorized, "UNAUTHORIZED")

	resp = testutil.Do(t, app, testutil.Request{Method: "GET", Path: "/private", Token: token})
	testutil.ExpectStatus(t, resp, http.StatusNoContent, nil)
}

func TestIdentifyRejectsInactiveUsers(t *testing.T) {
	db := testutil.NewDB(t)
	issuer := auth.NewIssuer("middleware-secret", time.Hour)

	suspended := testutil.CreateUser(t, db, models.User{Status: models.UserSuspended})
	banned := testutil.CreateUser(t, db, models.User{Status: models.UserBanned})

	app := newApp()
	app.Use(Identify(issuer, db))
	app.Get("/private", RequireAuth(), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	tests := []struct {
		name   string
		userID string
	}{
		{"suspended", suspended.ID},
		{"banned", banned.ID},
		{"unknown", "no-such-user"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, _, err := issuer.GenerateToken(tt.userID, "x@example.com")
			require.NoError(t, err)

			resp := testutil.Do(t, app, testutil.Request{Method: "GET", Path: "/private", Token: token})
			testutil.ExpectError(t, resp, http.StatusUnauthorized, "UNAUTHORIZED")
		})
	}
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", bearerToken("Bearer abc"))
	assert.Equal(t, "abc", bearerToken("bearer  abc "))
	assert.Empty(t, bearerToken("Basic abc"))
	assert.Empty(t, bearerToken("abc"))
	assert.Empty(t, bearerToken(""))
}

func TestRateLimit(t *testing.T) {
	limiter := ratelimit.New(ratelimit.NewMemoryStore(0))
	policy := ratelimit.Policy{MaxRequests: 2, Window: time.Minute}
	reached := false

	app := newApp()
	app.Get("/limited", RateLimit(limiter, "limited-test", policy, true), func(c *fiber.Ctx) error {
		reached = true
		return c.SendStatus(fiber.StatusNoContent)
	})

	from := func(ip string) testutil.Request {
		return testutil.Request{Method: "GET", Path: "/limited", Headers: map[string]string{"X-Forwarded-For": ip}}
	}
	before := promtest.ToFloat64(rateLimitedTotal.WithLabelValues("limited-test"))

	resp := testutil.Do(t, app, from("203.0.113.1"))
	testutil.ExpectStatus(t, resp, http.StatusNoContent, nil)
	assert.Equal(t, "2", resp.Header.Get("X-RateLimit-Limit"))
	assert.Equal(t, "1", resp.Header.Get("X-RateLimit-Remaining"))

	resp = testutil.Do(t, app, from("203.0.113.1"))
	testutil.ExpectStatus(t, resp, http.StatusNoContent, nil)
	assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))

	reached = false
	resp = testutil.Do(t, app, from("203.0.113.1"))
	testutil.ExpectError(t, resp, http.StatusTooManyRequests, "RATE_LIMITED")
	assert.Equal(t, "0", resp.Header.Get("X-RateLimit-Remaining"))
	assert.NotEmpty(t, resp.Header.Get("Retry-After"))
	assert.False(t, reached, "rejected requests never reach the handler")

	resp = testutil.Do(t, app, from("203.0.113.2"))
	testutil.ExpectStatus(t, resp, http.StatusNoContent, nil)
	assert.Equal(t, "1", resp.Header.Get("X-RateLimit-Remaining"))

	assert.Equal(t, before+1, promtest.ToFloat64(rateLimitedTotal.WithLabelValues("limited-test")))
}

func TestVersionMiddleware(t *testing.T) {
	app := newApp()
	app.Use(VersionMiddleware())
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(c.Locals("apiVersion").(string))
	})

	tests := []struct {
		header string
		status int
		want   string
	}{
		{"", http.StatusOK, "1.0.0"},
		{"1.0", http.StatusOK, "1.0.0"},
		{"1.2.0", http.StatusOK, "1.2.0"},
		{"2.0.0", http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			req := testutil.Request{Method: "GET", Path: "/"}
			if tt.header != "" {
				req.Headers = map[string]string{"X-Api-Version": tt.header}
			}
			resp := testutil.Do(t, app, req)
			if tt.status != http.StatusOK {
				testutil.ExpectError(t, resp, tt.status, "BAD_REQUEST")
				return
			}
			testutil.ExpectStatus(t, resp, tt.status, nil)
			assert.Equal(t, tt.want, resp.Header.Get("X-Api-Version"))
		})
	}
}
