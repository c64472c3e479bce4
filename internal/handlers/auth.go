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

package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/localnerve/jam-build-classifieds/internal/middleware"
	"github.com/localnerve/jam-build-classifieds/internal/services"
	"github.com/localnerve/jam-build-classifieds/internal/utils"
	"github.com/localnerve/jam-build-classifieds/internal/validation"
	"gorm.io/gorm"
)

// AuthHandler handles credential and password reset routes
type AuthHandler struct {
	DB           *gorm.DB
	Accounts     *services.Accounts
	SecureCookie bool
}

// RegisterResponse is returned by a successful registration
type RegisterResponse struct {
	Message string               `json:"message"`
	User    services.AccountView `json:"user"`
}

// Register handles POST /api/auth/register
// @Summary Register an account
// @Tags Auth
// @Accept json
// @Produce json
// @Param account body validation.RegisterInput true "Account"
// @Success 201 {object} RegisterResponse
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 429 {object} utils.ErrorResponseStruct
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in validation.RegisterInput
	if err := parseBody(c, &in); err != nil {
		return utils.AppErrorResponse(c, err, "register")
	}

	user, err := h.Accounts.Register(h.DB.WithContext(c.UserContext()), &in)
	if err != nil {
		return utils.AppErrorResponse(c, err, "register")
	}
	return c.Status(fiber.StatusCreated).JSON(RegisterResponse{
		Message: "Account created successfully",
		User:    *user,
	})
}

// Login handles POST /api/auth/login
// @Summary Sign in
// @Description Returns a session token and sets it as the HttpOnly "session" cookie
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body validation.LoginInput true "Credentials"
// @Success 200 {object} services.Session
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 429 {object} utils.ErrorResponseStruct
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in validation.LoginInput
	if err := parseBody(c, &in); err != nil {
		return utils.AppErrorResponse(c, err, "login")
	}

	session, err := h.Accounts.Login(h.DB.WithContext(c.UserContext()), &in)
	if err != nil {
		return utils.AppErrorResponse(c, err, "login")
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HTTPOnly: true,
		Secure:   h.SecureCookie,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(session)
}

// ForgotPassword handles POST /api/auth/forgot-password
// @Summary Request a password reset
// @Description Always answers with the same message whether or not the account exists
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body validation.ForgotPasswordInput true "Email"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 429 {object} utils.ErrorResponseStruct
// @Router /auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var in validation.ForgotPasswordInput
	if err := parseBody(c, &in); err != nil {
		return utils.AppErrorResponse(c, err, "forgotPassword")
	}

	if err := h.Accounts.ForgotPassword(c.UserContext(), h.DB.WithContext(c.UserContext()), &in); err != nil {
		return utils.AppErrorResponse(c, err, "forgotPassword")
	}
	return utils.MessageResponse(c, fiber.StatusOK, services.ForgotPasswordMessage)
}

// ResetPassword handles POST /api/auth/reset-password
// @Summary Reset a password
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body validation.ResetPasswordInput true "Token and new password"
// @Success 200 {object} utils.MessageResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 429 {object} utils.ErrorResponseStruct
// @Router /auth/reset-password [post]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var in validation.ResetPasswordInput
	if err := parseBody(c, &in); err != nil {
		return utils.AppErrorResponse(c, err, "resetPassword")
	}

	if err := h.Accounts.ResetPassword(h.DB.WithContext(c.UserContext()), &in); err != nil {
		return utils.AppErrorResponse(c, err, "resetPassword")
	}
	return utils.MessageResponse(c, fiber.StatusOK, "Password has been reset successfully")
}

func clearSession(c *fiber.Ctx, secure bool) {
	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
