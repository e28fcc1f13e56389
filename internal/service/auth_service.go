package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"bizhive/internal/model"
	"bizhive/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const (
	accessTokenTTL  = 24 * time.Hour
	refreshTokenTTL = 7 * 24 * time.Hour
)

// DTOs for Request validation
type SignUpRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	FullName    string `json:"full_name"`
	CompanyName string `json:"company_name"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type TokenResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refresh_token"`
}

type SignUpResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// AuthService owns the session lifecycle: registration, sign-in, token
// refresh, and sign-out. Registration is for business owners, who get the
// admin role; employee accounts are provisioned through EmployeeService.
type AuthService interface {
	SignUp(ctx context.Context, req SignUpRequest) (*SignUpResponse, error)
	Login(ctx context.Context, req LoginRequest) (*TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
}

type authService struct {
	users     repository.UserRepository
	roles     repository.UserRoleRepository
	profiles  repository.ProfileRepository
	txManager repository.TransactionManager
	jwtSecret []byte
}

func NewAuthService(
	users repository.UserRepository,
	roles repository.UserRoleRepository,
	profiles repository.ProfileRepository,
	txManager repository.TransactionManager,
	jwtSecret []byte,
) AuthService {
	return &authService{
		users:     users,
		roles:     roles,
		profiles:  profiles,
		txManager: txManager,
		jwtSecret: jwtSecret,
	}
}

func (s *authService) SignUp(ctx context.Context, req SignUpRequest) (*SignUpResponse, error) {
	if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
		return nil, Validationf("email already registered")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	user := &model.User{
		Email:    req.Email,
		Password: string(hashed),
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.users.Create(txCtx, user); err != nil {
			return err
		}

		// Self-registered users are business owners.
		role := &model.UserRole{UserID: user.ID, Role: model.RoleAdmin}
		if err := s.roles.Assign(txCtx, role); err != nil {
			return err
		}

		fullName := req.FullName
		if fullName == "" {
			fullName = strings.SplitN(req.Email, "@", 2)[0]
		}
		companyName := req.CompanyName
		if companyName == "" {
			companyName = "Mi Empresa"
		}
		profile := &model.Profile{
			ID:          user.ID,
			FullName:    fullName,
			CompanyName: companyName,
		}
		return s.profiles.Create(txCtx, profile)
	})
	if err != nil {
		return nil, err
	}

	return &SignUpResponse{
		ID:    user.ID.String(),
		Email: user.Email,
		Role:  model.RoleAdmin,
	}, nil
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*TokenResponse, error) {
	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenResponse, error) {
	stored, err := s.users.GetRefreshToken(ctx, refreshToken)
	if err != nil {
		return nil, errors.New("invalid refresh token")
	}
	if time.Now().After(stored.ExpiresAt) {
		_ = s.users.DeleteRefreshToken(ctx, refreshToken)
		return nil, errors.New("refresh token expired")
	}

	user, err := s.users.GetByID(ctx, stored.UserID)
	if err != nil {
		return nil, errors.New("user not found")
	}

	// Rotate: the presented token is single-use.
	if err := s.users.DeleteRefreshToken(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, user)
}

func (s *authService) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	err := s.users.DeleteRefreshToken(ctx, refreshToken)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	return err
}

func (s *authService) issueTokens(ctx context.Context, user *model.User) (*TokenResponse, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   user.ID.String(),
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(accessTokenTTL).Unix(),
	})

	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, errors.New("failed to generate token")
	}

	refresh := &model.RefreshToken{
		UserID:    user.ID,
		Token:     uuid.NewString(),
		ExpiresAt: now.Add(refreshTokenTTL),
	}
	if err := s.users.SaveRefreshToken(ctx, refresh); err != nil {
		return nil, err
	}

	return &TokenResponse{Token: signed, RefreshToken: refresh.Token}, nil
}
