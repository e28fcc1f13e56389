package repository

import (
	"context"

	"bizhive/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// InventoryRepository defines data access for inventory items.
type InventoryRepository interface {
	Create(ctx context.Context, item *model.InventoryItem) error
	CreateBatch(ctx context.Context, items []model.InventoryItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error)
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error)
	ListByBranch(ctx context.Context, branchID uuid.UUID, search, category string) ([]model.InventoryItem, error)
	CountByBranch(ctx context.Context, branchID uuid.UUID) (int64, error)
	UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error
}

type inventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &inventoryRepository{db: db}
}

func (r *inventoryRepository) Create(ctx context.Context, item *model.InventoryItem) error {
	return GetDB(ctx, r.db).Create(item).Error
}

func (r *inventoryRepository) CreateBatch(ctx context.Context, items []model.InventoryItem) error {
	return GetDB(ctx, r.db).Create(&items).Error
}

func (r *inventoryRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	var item model.InventoryItem
	if err := GetDB(ctx, r.db).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// FindByIDForUpdate locks the row for the duration of the surrounding
// transaction so quantity checks are made against a stable value. Engines
// without row locks (sqlite) serialize writes anyway, so the clause is only
// added on postgres.
func (r *inventoryRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*model.InventoryItem, error) {
	var item model.InventoryItem
	db := GetDB(ctx, r.db)
	if db.Dialector.Name() == "postgres" {
		db = db.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := db.Where("id = ?", id).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *inventoryRepository) ListByBranch(ctx context.Context, branchID uuid.UUID, search, category string) ([]model.InventoryItem, error) {
	var items []model.InventoryItem

	db := GetDB(ctx, r.db).Where("branch_id = ?", branchID)
	if search != "" {
		pattern := "%" + search + "%"
		db = db.Where("product_name ILIKE ? OR sku ILIKE ?", pattern, pattern)
	}
	if category != "" {
		db = db.Where("category = ?", category)
	}

	if err := db.Order("product_name").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *inventoryRepository) CountByBranch(ctx context.Context, branchID uuid.UUID) (int64, error) {
	var total int64
	err := GetDB(ctx, r.db).Model(&model.InventoryItem{}).Where("branch_id = ?", branchID).Count(&total).Error
	return total, err
}

func (r *inventoryRepository) UpdateQuantity(ctx context.Context, id uuid.UUID, quantity int) error {
	return GetDB(ctx, r.db).Model(&model.InventoryItem{}).Where("id = ?", id).Update("quantity", quantity).Error
}
