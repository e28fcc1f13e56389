package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryItem is a stocked product belonging to exactly one branch.
// Quantity never goes negative; every mutation path checks the resulting
// value before writing.
type InventoryItem struct {
	ID          uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	BranchID    uuid.UUID        `gorm:"type:uuid;not null;index" json:"branch_id"`
	Branch      Branch           `gorm:"foreignKey:BranchID" json:"-"`
	ProductName string           `gorm:"type:varchar(100);not null" json:"product_name"`
	SKU         string           `gorm:"type:varchar(50)" json:"sku"`
	Category    string           `gorm:"type:varchar(50)" json:"category"`
	Quantity    int              `gorm:"type:int;default:0;not null" json:"quantity"`
	UnitPrice   *decimal.Decimal `gorm:"type:decimal(12,2)" json:"unit_price"`
	MinStock    int              `gorm:"type:int;default:0;not null" json:"min_stock"`
	CreatedAt   time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

// BeforeCreate fills the ID on engines without a uuid column default.
func (i *InventoryItem) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}

// LowStock reports whether the item is at or below its minimum stock threshold.
func (i *InventoryItem) LowStock() bool {
	return i.Quantity <= i.MinStock
}
