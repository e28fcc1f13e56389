package repository

import (
	"context"

	"bizhive/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRoleRepository reads and writes the single role row per identity.
type UserRoleRepository interface {
	Assign(ctx context.Context, role *model.UserRole) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*model.UserRole, error)
}

type userRoleRepository struct {
	db *gorm.DB
}

func NewUserRoleRepository(db *gorm.DB) UserRoleRepository {
	return &userRoleRepository{db: db}
}

func (r *userRoleRepository) Assign(ctx context.Context, role *model.UserRole) error {
	return GetDB(ctx, r.db).Create(role).Error
}

func (r *userRoleRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*model.UserRole, error) {
	var role model.UserRole
	if err := GetDB(ctx, r.db).First(&role, "user_id = ?", userID).Error; err != nil {
		return nil, err
	}
	return &role, nil
}
