// accounts_test.go
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
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/localnerve/jam-build-classifieds/internal/auth"
	"github.com/localnerve/jam-build-classifieds/internal/models"
	"github.com/localnerve/jam-build-classifieds/internal/testutil"
	"github.com/localnerve/jam-build-classifieds/internal/types"
	"github.com/localnerve/jam-build-classifieds/internal/validation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testPassword = "Sup3r-secret"

type sentReset struct {
	email string
	link  string
}

type recordingNotifier struct {
	mu   sync.Mutex
	sent []sentReset
}

func (n *recordingNotifier) SendPasswordReset(_ context.Context, email, link string, _ time.Time) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.sent = append(n.sent, sentReset{email: email, link: link})
	return nil
}

func (n *recordingNotifier) lastToken(t *testing.T) string {
	t.Helper()
	n.mu.Lock()
	defer n.mu.Unlock()
	require.NotEmpty(t, n.sent)
	u, err := url.Parse(n.sent[len(n.sent)-1].link)
	require.NoError(t, err)
	return u.Query().Get("token")
}

func newAccounts() (*Accounts, *recordingNotifier) {
	n := &recordingNotifier{}
	return &Accounts{
		Issuer:   auth.NewIssuer("test-secret", time.Hour),
		Notifier: n,
		ResetTTL: time.Hour,
		BaseURL:  "http://localhost:3000",
	}, n
}

func register(t *testing.T, db *gorm.DB, a *Accounts, email string) *AccountView {
	t.Helper()
	user, err := a.Register(db, &validation.RegisterInput{
		Name:            "Ada Lovelace",
		Email:           email,
		Password:        testPassword,
		ConfirmPassword: testPassword,
	})
	require.NoError(t, err)
	return user
}

func TestRegister(t *testing.T) {
	db := testutil.NewDB(t)
	a, _ := newAccounts()

	user, err := a.Register(db, &validation.RegisterInput{
		Name:            "  <b>Ada</b> Lovelace ",
		Email:           "  Ada@Example.com ",
		Password:        testPassword,
		ConfirmPassword: testPassword,
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", user.Name)
	assert.Equal(t, "ada@example.com", user.Email)

	var stored models.User
	require.NoError(t, db.Where("id = ?", user.ID).Take(&stored).Error)
	require.NotNil(t, stored.PasswordHash)
	assert.NotEqual(t, testPassword, *stored.PasswordHash)
	assert.Equal(t, models.RoleBuyer, stored.Role)
	assert.Equal(t, models.UserActive, stored.Status)

	_, err = a.Register(db, &validation.RegisterInput{
		Name: "Someone", Email: "ADA@example.com", Password: testPassword, ConfirmPassword: testPassword,
	})
	appErr := requireAppError(t, err, types.CodeBadRequest)
	assert.Equal(t, "Email is already registered", appErr.Message)

	_, err = a.Register(db, &validation.RegisterInput{
		Name: "Someone", Email: "new@example.com", Password: testPassword, ConfirmPassword: "different",
	})
	appErr = requireAppError(t, err, types.CodeBadRequest)
	assert.Equal(t, "Passwords do not match", appErr.Message)
}

func TestLogin(t *testing.T) {
	db := testutil.NewDB(t)
	a, _ := newAccounts()
	user := register(t, db, a, "ada@example.com")

	session, err := a.Login(db, &validation.LoginInput{Email: "ADA@example.com", Password: testPassword})
	require.NoError(t, err)
	assert.Equal(t, user.ID, session.User.ID)
	assert.True(t, session.ExpiresAt.After(time.Now()))

	claims, err := a.Issuer.ValidateToken(session.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	_, err = a.Login(db, &validation.LoginInput{Email: "ada@example.com", Password: "Wrong-pass1"})
	wrongPassword := requireAppError(t, err, types.CodeUnauthorized)

	_, err = a.Login(db, &validation.LoginInput{Email: "nobody@example.com", Password: testPassword})
	unknown := requireAppError(t, err, types.CodeUnauthorized)
	assert.Equal(t, wrongPassword.Message, unknown.Message, "failures do not reveal which part was wrong")

	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).Update("status", models.UserSuspended).Error)
	_, err = a.Login(db, &validation.LoginInput{Email: "ada@example.com", Password: testPassword})
	requireAppError(t, err, types.CodeForbidden)
}

func TestLoginWithoutPassword(t *testing.T) {
	db := testutil.NewDB(t)
	a, _ := newAccounts()
	testutil.CreateUser(t, db, models.User{Email: "oauth@example.com"})

	_, err := a.Login(db, &validation.LoginInput{Email: "oauth@example.com", Password: testPassword})
	requireAppError(t, err, types.CodeUnauthorized)
}

func TestForgotPasswordIsGeneric(t *testing.T) {
	db := testutil.NewDB(t)
	a, n := newAccounts()
	register(t, db, a, "ada@example.com")
	ctx := context.Background()

	require.NoError(t, a.ForgotPassword(ctx, db, &validation.ForgotPasswordInput{Email: "nobody@example.com"}))
	assert.Empty(t, n.sent)

	require.NoError(t, a.ForgotPassword(ctx, db, &validation.ForgotPasswordInput{Email: "ada@example.com"}))
	require.Len(t, n.sent, 1)
	assert.Contains(t, n.sent[0].link, "http://localhost:3000/auth/reset-password?token=")
}

func TestPasswordReset(t *testing.T) {
	db := testutil.NewDB(t)
	a, n := newAccounts()
	register(t, db, a, "ada@example.com")
	ctx := context.Background()

	require.NoError(t, a.ForgotPassword(ctx, db, &validation.ForgotPasswordInput{Email: "ada@example.com"}))
	first := n.lastToken(t)
	require.NoError(t, a.ForgotPassword(ctx, db, &validation.ForgotPasswordInput{Email: "ada@example.com"}))
	second := n.lastToken(t)
	require.NotEqual(t, first, second)

	var tokens int64
	require.NoError(t, db.Model(&models.VerificationToken{}).Where("identifier = ?", "ada@example.com").Count(&tokens).Error)
	assert.EqualValues(t, 1, tokens, "a new request replaces the old token")

	const newPassword = "N3w-password!"
	reset := func(token string) error {
		return a.ResetPassword(db, &validation.ResetPasswordInput{Token: token, Password: newPassword, ConfirmPassword: newPassword})
	}

	requireAppError(t, reset(first), types.CodeBadRequest)
	require.NoError(t, reset(second))
	requireAppError(t, reset(second), types.CodeBadRequest)

	_, err := a.Login(db, &validation.LoginInput{Email: "ada@example.com", Password: newPassword})
	require.NoError(t, err)
	_, err = a.Login(db, &validation.LoginInput{Email: "ada@example.com", Password: testPassword})
	requireAppError(t, err, types.CodeUnauthorized)
}

func TestPasswordResetExpired(t *testing.T) {
	db := testutil.NewDB(t)
	a, _ := newAccounts()
	register(t, db, a, "ada@example.com")

	token := models.VerificationToken{
		Identifier: "ada@example.com",
		Token:      "expired-token",
		Expires:    time.Now().UTC().Add(-time.Minute),
	}
	require.NoError(t, db.Create(&token).Error)

	err := a.ResetPassword(db, &validation.ResetPasswordInput{Token: "expired-token", Password: "N3w-password!", ConfirmPassword: "N3w-password!"})
	appErr := requireAppError(t, err, types.CodeBadRequest)
	assert.Equal(t, "Invalid or expired reset token", appErr.Message)
}

func TestProfile(t *testing.T) {
	db := testutil.NewDB(t)
	a, _ := newAccounts()
	user := register(t, db, a, "ada@example.com")
	other := testutil.CreateUser(t, db, models.User{})

	testutil.CreateListing(t, db, user.ID)
	testutil.CreateListing(t, db, user.ID, testutil.WithStatus(models.StatusPending))
	testutil.CreateListing(t, db, user.ID, testutil.Deleted())
	theirs := testutil.CreateListing(t, db, other.ID)
	_, err := AddFavorite(db, user.ID, &validation.FavoriteInput{ListingID: theirs.ID})
	require.NoError(t, err)

	profile, err := a.GetProfile(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "ada@example.com", profile.Email)
	assert.EqualValues(t, 2, profile.Count.Listings)
	assert.EqualValues(t, 1, profile.Count.Favorites)

	updated, err := a.UpdateProfile(db, user.ID, &validation.ProfileInput{
		Name:  "Ada <i>King</i>",
		Phone: testutil.Ptr(" 555-0100 "),
		Image: testutil.Ptr("https://img.example.com/ada.png"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Ada King", updated.Name)
	assert.Equal(t, "555-0100", *updated.Phone)

	profile, err = a.GetProfile(db, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada King", profile.Name)
	assert.Equal(t, "https://img.example.com/ada.png", *profile.Image)

	_, err = a.UpdateProfile(db, user.ID, &validation.ProfileInput{Name: "A"})
	requireAppError(t, err, types.CodeBadRequest)

	_, err = a.GetProfile(db, "missing")
	requireAppError(t, err, types.CodeNotFound)
}

func TestDeleteAccount(t *testing.T) {
	db := testutil.NewDB(t)
	a, _ := newAccounts()
	user := register(t, db, a, "ada@example.com")

	live := testutil.CreateListing(t, db, user.ID)
	sold := testutil.CreateListing(t, db, user.ID, testutil.WithStatus(models.StatusSold))
	testutil.CreateListing(t, db, user.ID, testutil.Deleted())

	require.NoError(t, a.DeleteAccount(db, user.ID))

	var stored models.User
	require.NoError(t, db.Where("id = ?", user.ID).Take(&stored).Error)
	assert.Equal(t, "Deleted User", stored.Name)
	assert.Equal(t, "deleted-"+user.ID+"@deleted.local", stored.Email)
	assert.Nil(t, stored.Phone)
	assert.Nil(t, stored.Image)
	assert.Nil(t, stored.PasswordHash)
	assert.Equal(t, models.UserBanned, stored.Status)

	for _, id := range []string{live.ID, sold.ID} {
		var l models.Listing
		require.NoError(t, db.Unscoped().Where("id = ?", id).Take(&l).Error)
		assert.Equal(t, models.StatusDeleted, l.Lifecycle())
		assert.Equal(t, models.StatusInactive, l.Status)
	}

	var rows int64
	require.NoError(t, db.Unscoped().Model(&models.Listing{}).Where("user_id = ?", user.ID).Count(&rows).Error)
	assert.EqualValues(t, 3, rows, "rows are kept")

	assert.EqualValues(t, 1, auditCount(t, db, ActionDelete, user.ID))

	_, err := a.Login(db, &validation.LoginInput{Email: "ada@example.com", Password: testPassword})
	requireAppError(t, err, types.CodeUnauthorized)

	requireAppError(t, a.DeleteAccount(db, "missing"), types.CodeNotFound)
}
