// main.go
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

package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	swagger "github.com/gofiber/swagger"
	"github.com/localnerve/jam-build-classifieds/internal/auth"
	"github.com/localnerve/jam-build-classifieds/internal/config"
	"github.com/localnerve/jam-build-classifieds/internal/database"
	"github.com/localnerve/jam-build-classifieds/internal/handlers"
	"github.com/localnerve/jam-build-classifieds/internal/middleware"
	"github.com/localnerve/jam-build-classifieds/internal/ratelimit"
	"github.com/localnerve/jam-build-classifieds/internal/services"
	"github.com/localnerve/jam-build-classifieds/internal/utils"

	_ "github.com/localnerve/jam-build-classifieds/docs/api" // Swagger docs
)

// @title Classifieds API
// @version 1.0.0
// @description Classifieds marketplace data service with multi-database support
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/localnerve/jam-build-classifieds
// @contact.email info@localnerve.com

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	slog.SetDefault(newLogger(cfg))

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Rate limiting
	policies, err := ratelimit.LoadPolicies(cfg.RateLimitPolicyFile)
	if err != nil {
		log.Fatalf("Failed to load rate limit policies: %v", err)
	}
	var (
		store    ratelimit.Store
		counters services.Purger
	)
	if cfg.RateLimitStore == "database" {
		gormStore := ratelimit.NewGormStore(db)
		store, counters = gormStore, gormStore
	} else {
		store = ratelimit.NewMemoryStore(ratelimit.DefaultCleanupInterval)
	}
	limiter := ratelimit.New(store)

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.SessionTTL)

	// Background purge of expired tokens and counters
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	maintenance := services.NewMaintenance(db, counters)
	if err := maintenance.Start(ctx, cfg.MaintenanceCron); err != nil {
		log.Fatalf("Failed to schedule maintenance: %v", err)
	}
	defer maintenance.Stop()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: utils.ErrorHandler,
		AppName:      "jam-build-classifieds",
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("classifieds")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// API routes under /api
	api := app.Group("/api")
	api.Use(middleware.VersionMiddleware())

	handlers.Routes(api, &handlers.Deps{
		DB:     db,
		Config: cfg,
		Issuer: issuer,
		Accounts: &services.Accounts{
			Issuer:   issuer,
			Notifier: services.LogNotifier{},
			ResetTTL: cfg.ResetTokenTTL,
			BaseURL:  cfg.PublicBaseURL,
		},
		Limiter:  limiter,
		Policies: policies,
	})

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return utils.NotFoundResponse(c, "[404] Resource Not Found")
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-quit
		slog.Info("gracefully shutting down")
		cancel()
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	// Start server
	slog.Info("starting server",
		"port", cfg.Port,
		"environment", cfg.Environment,
		"database", cfg.DBType,
		"rateLimitStore", store.Name(),
	)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	slog.Info("server stopped")
}

// newLogger builds the process logger from LOG_LEVEL and LOG_FORMAT
func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
