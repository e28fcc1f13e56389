package service

import (
	"context"
	"errors"
	"strings"

	"bizhive/internal/access"
	"bizhive/internal/model"
	"bizhive/internal/repository"

	"gorm.io/gorm"
)

type UpdateProfileRequest struct {
	FullName    string `json:"full_name" binding:"required,min=2,max=100"`
	CompanyName string `json:"company_name" binding:"required,min=2,max=100"`
	Phone       string `json:"phone"`
}

type ProfileService interface {
	Get(ctx context.Context, ac access.Context) (*model.Profile, error)
	Update(ctx context.Context, ac access.Context, req UpdateProfileRequest) (*model.Profile, error)
}

type profileService struct {
	profiles repository.ProfileRepository
}

func NewProfileService(profiles repository.ProfileRepository) ProfileService {
	return &profileService{profiles: profiles}
}

// Get returns the caller's profile, creating a default one for accounts that
// predate profile rows so callers never see a 404 for their own profile.
func (s *profileService) Get(ctx context.Context, ac access.Context) (*model.Profile, error) {
	profile, err := s.profiles.FindByID(ctx, ac.UserID)
	if err == nil {
		return profile, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	profile = &model.Profile{
		ID:          ac.UserID,
		FullName:    strings.SplitN(ac.Email, "@", 2)[0],
		CompanyName: "Mi Empresa",
	}
	if err := s.profiles.Create(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}

func (s *profileService) Update(ctx context.Context, ac access.Context, req UpdateProfileRequest) (*model.Profile, error) {
	if req.Phone != "" && !phonePattern.MatchString(req.Phone) {
		return nil, Validationf("phone may only contain digits and + - ( ) characters")
	}

	profile, err := s.Get(ctx, ac)
	if err != nil {
		return nil, err
	}

	profile.FullName = req.FullName
	profile.CompanyName = req.CompanyName
	profile.Phone = req.Phone

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}
	return profile, nil
}
