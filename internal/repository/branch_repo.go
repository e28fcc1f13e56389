package repository

import (
	"context"

	"bizhive/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// BranchRepository defines data access for branches. There is no Delete:
// branches only ever change status.
type BranchRepository interface {
	Create(ctx context.Context, branch *model.Branch) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Branch, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, includeInactive bool) ([]model.Branch, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) error
}

type branchRepository struct {
	db *gorm.DB
}

func NewBranchRepository(db *gorm.DB) BranchRepository {
	return &branchRepository{db: db}
}

func (r *branchRepository) Create(ctx context.Context, branch *model.Branch) error {
	return GetDB(ctx, r.db).Create(branch).Error
}

func (r *branchRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Branch, error) {
	var branch model.Branch
	if err := GetDB(ctx, r.db).First(&branch, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &branch, nil
}

func (r *branchRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID, includeInactive bool) ([]model.Branch, error) {
	var branches []model.Branch
	db := GetDB(ctx, r.db).Where("owner_id = ?", ownerID)
	if !includeInactive {
		db = db.Where("status <> ?", model.BranchInactive)
	}
	if err := db.Order("created_at desc").Find(&branches).Error; err != nil {
		return nil, err
	}
	return branches, nil
}

func (r *branchRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status string) error {
	return GetDB(ctx, r.db).Model(&model.Branch{}).Where("id = ?", id).Update("status", status).Error
}
