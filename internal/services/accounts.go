// accounts.go
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

package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/localnerve/jam-build-classifieds/internal/auth"
	"github.com/localnerve/jam-build-classifieds/internal/models"
	"github.com/localnerve/jam-build-classifieds/internal/sanitize"
	"github.com/localnerve/jam-build-classifieds/internal/types"
	"github.com/localnerve/jam-build-classifieds/internal/validation"
	"gorm.io/gorm"
)

// ForgotPasswordMessage is returned whether or not the email exists
const ForgotPasswordMessage = "If an account exists for that email, a password reset link has been sent."

const invalidCredentials = "Invalid email or password"

// Accounts handles credential accounts and sessions
type Accounts struct {
	Issuer   *auth.Issuer
	Notifier ResetNotifier
	ResetTTL time.Duration
	BaseURL  string
}

// AccountView is the public shape of the caller's own account
type AccountView struct {
	ID    string      `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
	Phone *string     `json:"phone,omitempty"`
	Image *string     `json:"image,omitempty"`
	Role  models.Role `json:"role,omitempty"`
}

// ProfileCounts holds the caller's activity totals
type ProfileCounts struct {
	Listings  int64 `json:"listings"`
	Favorites int64 `json:"favorites"`
}

// ProfileView is the caller's profile
type ProfileView struct {
	AccountView
	CreatedAt time.Time     `json:"createdAt"`
	Count     ProfileCounts `json:"_count"`
}

// Session is a signed-in session token
type Session struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      AccountView `json:"user"`
}

func newAccountView(u *models.User) AccountView {
	return AccountView{ID: u.ID, Name: u.Name, Email: u.Email, Phone: u.Phone, Image: u.Image, Role: u.Role}
}

// Register creates a credential account
func (a *Accounts) Register(db *gorm.DB, in *validation.RegisterInput) (*AccountView, error) {
	in.Email = sanitize.Email(in.Email)
	if v := validation.Struct(in); len(v) > 0 {
		return nil, v.AppError()
	}

	email := in.Email
	var existing int64
	if err := db.Model(&models.User{}).Where("email = ?", email).Count(&existing).Error; err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if existing > 0 {
		return nil, types.BadRequest("Email is already registered")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Name:         sanitize.Text(in.Name, sanitize.MaxNameLength),
		Email:        email,
		PasswordHash: &hash,
		Role:         models.RoleBuyer,
		Status:       models.UserActive,
	}
	if err := db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, types.BadRequest("Email is already registered")
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	view := AccountView{ID: user.ID, Name: user.Name, Email: user.Email}
	return &view, nil
}

// Login verifies credentials and issues a session token. Only ACTIVE accounts may sign in.
func (a *Accounts) Login(db *gorm.DB, in *validation.LoginInput) (*Session, error) {
	in.Email = sanitize.Email(in.Email)
	if v := validation.Struct(in); len(v) > 0 {
		return nil, v.AppError()
	}

	var user models.User
	err := db.Where("email = ?", in.Email).Take(&user).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("load user: %w", err)
	}

	var hash *string
	if err == nil {
		hash = user.PasswordHash
	}
	if !auth.CheckPassword(hash, in.Password) {
		return nil, types.Unauthorized(invalidCredentials)
	}
	if user.Status != models.UserActive {
		return nil, types.Forbidden("This account is not active")
	}

	token, expires, err := a.Issuer.GenerateToken(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: expires, User: newAccountView(&user)}, nil
}

// ForgotPassword replaces any reset token for the email and hands a new link to the notifier.
// The outcome is never revealed to the caller.
func (a *Accounts) ForgotPassword(ctx context.Context, db *gorm.DB, in *validation.ForgotPasswordInput) error {
	in.Email = sanitize.Email(in.Email)
	if v := validation.Struct(in); len(v) > 0 {
		return v.AppError()
	}

	email := in.Email
	var user models.User
	err := db.Select("id", "email", "status").Where("email = ?", email).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}
	if user.Status == models.UserBanned {
		return nil
	}

	token := models.VerificationToken{
		Identifier: email,
		Token:      uuid.NewString(),
		Expires:    db.NowFunc().Add(a.ResetTTL),
	}
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("identifier = ?", email).Delete(&models.VerificationToken{}).Error; err != nil {
			return err
		}
		return tx.Create(&token).Error
	})
	if err != nil {
		return fmt.Errorf("issue reset token: %w", err)
	}

	link := a.BaseURL + "/auth/reset-password?token=" + url.QueryEscape(token.Token)
	if err := a.Notifier.SendPasswordReset(ctx, email, link, token.Expires); err != nil {
		slog.ErrorContext(ctx, "password reset delivery failed", "email", email, "error", err)
	}
	return nil
}

// ResetPassword consumes a live token and sets a new password in one transaction
func (a *Accounts) ResetPassword(db *gorm.DB, in *validation.ResetPasswordInput) error {
	if v := validation.Struct(in); len(v) > 0 {
		return v.AppError()
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return err
	}

	return db.Transaction(func(tx *gorm.DB) error {
		var token models.VerificationToken
		err := tx.Where("token = ?", in.Token).Take(&token).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return types.BadRequest("Invalid or expired reset token")
		}
		if err != nil {
			return fmt.Errorf("load reset token: %w", err)
		}
		if token.Expired(tx.NowFunc()) {
			return types.BadRequest("Invalid or expired reset token")
		}

		res := tx.Model(&models.User{}).Where("email = ?", token.Identifier).Update("password", hash)
		if res.Error != nil {
			return fmt.Errorf("update password: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return types.BadRequest("Invalid or expired reset token")
		}

		if err := tx.Delete(&token).Error; err != nil {
			return fmt.Errorf("consume reset token: %w", err)
		}
		return nil
	})
}

// GetProfile returns the caller's profile with activity counts
func (a *Accounts) GetProfile(db *gorm.DB, userID string) (*ProfileView, error) {
	user, err := loadUser(db, userID)
	if err != nil {
		return nil, err
	}

	view := &ProfileView{AccountView: newAccountView(user), CreatedAt: user.CreatedAt}
	if err := db.Model(&models.Listing{}).Where("user_id = ?", userID).Count(&view.Count.Listings).Error; err != nil {
		return nil, fmt.Errorf("count listings: %w", err)
	}
	if err := db.Model(&models.Favorite{}).Where("user_id = ?", userID).Count(&view.Count.Favorites).Error; err != nil {
		return nil, fmt.Errorf("count favorites: %w", err)
	}
	return view, nil
}

// UpdateProfile changes the caller's name, phone and image
func (a *Accounts) UpdateProfile(db *gorm.DB, userID string, in *validation.ProfileInput) (*AccountView, error) {
	if v := validation.Struct(in); len(v) > 0 {
		return nil, v.AppError()
	}

	user, err := loadUser(db, userID)
	if err != nil {
		return nil, err
	}

	user.Name = sanitize.Text(in.Name, sanitize.MaxNameLength)
	user.Phone = sanitize.OptionalText(in.Phone, sanitize.MaxPhoneLength)
	user.Image = in.Image
	if err := db.Model(user).Select("name", "phone", "image").Updates(user).Error; err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	RecordAudit(db, userID, ActionUpdate, ResourceUser, userID, nil)

	view := newAccountView(user)
	return &view, nil
}

// DeleteAccount anonymizes the user and soft-deletes every live listing they own.
// Rows are kept for referential and audit integrity.
func (a *Accounts) DeleteAccount(db *gorm.DB, userID string) error {
	user, err := loadUser(db, userID)
	if err != nil {
		return err
	}

	RecordAudit(db, userID, ActionDelete, ResourceUser, userID, map[string]any{"reason": "account deletion"})

	return db.Transaction(func(tx *gorm.DB) error {
		var listings []models.Listing
		if err := tx.Where("user_id = ?", userID).Find(&listings).Error; err != nil {
			return fmt.Errorf("load listings: %w", err)
		}
		now := tx.NowFunc()
		for i := range listings {
			l := &listings[i]
			if err := l.MarkDeleted(now); err != nil {
				continue
			}
			if err := tx.Model(&models.Listing{}).Where("id = ?", l.ID).Updates(map[string]interface{}{
				"status":     l.Status,
				"deleted_at": l.DeletedAt,
			}).Error; err != nil {
				return fmt.Errorf("soft delete listing %s: %w", l.ID, err)
			}
		}

		anonymized := map[string]interface{}{
			"name":     "Deleted User",
			"email":    fmt.Sprintf("deleted-%s@deleted.local", user.ID),
			"phone":    nil,
			"image":    nil,
			"password": nil,
			"status":   models.UserBanned,
		}
		if err := tx.Model(&models.User{}).Where("id = ?", user.ID).Updates(anonymized).Error; err != nil {
			return fmt.Errorf("anonymize user: %w", err)
		}

		if err := tx.Where("identifier = ?", user.Email).Delete(&models.VerificationToken{}).Error; err != nil {
			return fmt.Errorf("delete reset tokens: %w", err)
		}
		return nil
	})
}

func loadUser(db *gorm.DB, userID string) (*models.User, error) {
	var user models.User
	err := db.Where("id = ?", userID).Take(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, types.NotFound("User not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load user %s: %w", userID, err)
	}
	return &user, nil
}
