// routes.go
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
	"github.com/localnerve/jam-build-classifieds/internal/auth"
	"github.com/localnerve/jam-build-classifieds/internal/config"
	"github.com/localnerve/jam-build-classifieds/internal/middleware"
	"github.com/localnerve/jam-build-classifieds/internal/ratelimit"
	"github.com/localnerve/jam-build-classifieds/internal/services"
	"gorm.io/gorm"
)

// Deps are the collaborators shared by every route
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Issuer   *auth.Issuer
	Accounts *services.Accounts
	Limiter  *ratelimit.Limiter
	Policies ratelimit.Policies
}

// Routes mounts the API on router. Every route except health is rate limited first,
// then the session is identified.
func Routes(router fiber.Router, d *Deps) {
	identify := middleware.Identify(d.Issuer, d.DB)
	requireAuth := middleware.RequireAuth()
	limit := func(tag string, tier ratelimit.Tier) fiber.Handler {
		return middleware.RateLimit(d.Limiter, tag, d.Policies.For(tier), d.Config.TrustProxy)
	}
	secure := d.Config.IsProduction()

	listings := &ListingHandler{DB: d.DB}
	favorites := &FavoriteHandler{DB: d.DB}
	messages := &MessageHandler{DB: d.DB}
	reports := &ReportHandler{DB: d.DB}
	authn := &AuthHandler{DB: d.DB, Accounts: d.Accounts, SecureCookie: secure}
	user := &UserHandler{DB: d.DB, Accounts: d.Accounts, SecureCookie: secure}
	health := &HealthHandler{DB: d.DB, Config: d.Config, Store: d.Limiter.Store()}

	// Listings (public reads, owner/admin writes)
	router.Get("/listings", limit("listings-list", ratelimit.TierAPI), identify, listings.List)
	router.Get("/listings/:id", limit("listing-detail", ratelimit.TierAPI), identify, listings.Get)
	router.Post("/listings", limit("listing-create", ratelimit.TierMutation), identify, requireAuth, listings.Create)
	router.Put("/listings/:id", limit("listing-update", ratelimit.TierMutation), identify, requireAuth, listings.Update)
	router.Delete("/listings/:id", limit("listing-delete", ratelimit.TierMutation), identify, requireAuth, listings.Delete)

	// Favorites
	router.Get("/favorites", limit("favorites-list", ratelimit.TierAPI), identify, requireAuth, favorites.List)
	router.Post("/favorites", limit("favorites-create", ratelimit.TierMutation), identify, requireAuth, favorites.Add)
	router.Delete("/favorites", limit("favorites-delete", ratelimit.TierMutation), identify, requireAuth, favorites.Remove)

	// Messages
	router.Get("/messages", limit("messages-list", ratelimit.TierAPI), identify, requireAuth, messages.List)
	router.Post("/messages", limit("messages-create", ratelimit.TierMutation), identify, requireAuth, messages.Send)
	router.Put("/messages/:id/read", limit("messages-read", ratelimit.TierMutation), identify, requireAuth, messages.MarkRead)

	// Reports
	router.Post("/reports", limit("report", ratelimit.TierMutation), identify, requireAuth, reports.Create)

	// Auth
	router.Post("/auth/register", limit("auth-register", ratelimit.TierAuth), authn.Register)
	router.Post("/auth/login", limit("auth-login", ratelimit.TierAuth), authn.Login)
	router.Post("/auth/forgot-password", limit("forgot-password", ratelimit.TierAuth), authn.ForgotPassword)
	router.Post("/auth/reset-password", limit("reset-password", ratelimit.TierAuth), authn.ResetPassword)

	// Own account
	router.Get("/user/profile", limit("profile-get", ratelimit.TierAPI), identify, requireAuth, user.GetProfile)
	router.Put("/user/profile", limit("profile-update", ratelimit.TierMutation), identify, requireAuth, user.UpdateProfile)
	router.Delete("/user", limit("user-delete", ratelimit.TierAuth), identify, requireAuth, user.DeleteAccount)

	router.Get("/health", health.Check)
}
