package service

import (
	"context"
	"testing"

	"bizhive/internal/model"
	"bizhive/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) AuthService {
	return NewAuthService(
		repository.NewUserRepository(db),
		repository.NewUserRoleRepository(db),
		repository.NewProfileRepository(db),
		repository.NewTransactionManager(db),
		[]byte("test_secret"),
	)
}

func TestSignUpCreatesAdminWithProfile(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	res, err := svc.SignUp(context.Background(), SignUpRequest{
		Email:    "owner@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleAdmin, res.Role)

	var role model.UserRole
	require.NoError(t, db.First(&role, "role = ?", model.RoleAdmin).Error)

	// Defaults come from the email prefix.
	var profile model.Profile
	require.NoError(t, db.First(&profile, "id = ?", role.UserID).Error)
	assert.Equal(t, "owner", profile.FullName)
	assert.Equal(t, "Mi Empresa", profile.CompanyName)
}

func TestSignUpRejectsDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	_, err := svc.SignUp(context.Background(), SignUpRequest{Email: "owner@example.com", Password: "secret123"})
	require.NoError(t, err)

	_, err = svc.SignUp(context.Background(), SignUpRequest{Email: "owner@example.com", Password: "otherpass"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestLogin(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	_, err := svc.SignUp(context.Background(), SignUpRequest{Email: "owner@example.com", Password: "secret123"})
	require.NoError(t, err)

	tokens, err := svc.Login(context.Background(), LoginRequest{Email: "owner@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEmpty(t, tokens.Token)
	assert.NotEmpty(t, tokens.RefreshToken)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "owner@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(context.Background(), LoginRequest{Email: "nobody@example.com", Password: "secret123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshRotatesToken(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	_, err := svc.SignUp(context.Background(), SignUpRequest{Email: "owner@example.com", Password: "secret123"})
	require.NoError(t, err)
	tokens, err := svc.Login(context.Background(), LoginRequest{Email: "owner@example.com", Password: "secret123"})
	require.NoError(t, err)

	rotated, err := svc.Refresh(context.Background(), tokens.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, tokens.RefreshToken, rotated.RefreshToken)

	// The presented refresh token is single-use.
	_, err = svc.Refresh(context.Background(), tokens.RefreshToken)
	assert.Error(t, err)
}

func TestLogoutIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	svc := newAuthService(db)

	require.NoError(t, svc.Logout(context.Background(), ""))
	require.NoError(t, svc.Logout(context.Background(), "unknown-token"))
}
