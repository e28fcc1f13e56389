package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Branch status values. Branches are never hard-deleted: closing one moves it
// to "inactive" and keeps all employees and inventory attached.
const (
	BranchActive      = "active"
	BranchMaintenance = "maintenance"
	BranchInactive    = "inactive"
)

// Branch is a physical business location, exclusively owned by one admin user.
type Branch struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID   uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Address   string    `gorm:"type:varchar(200);not null" json:"address"`
	Phone     string    `gorm:"type:varchar(20)" json:"phone"`
	Status    string    `gorm:"type:varchar(20);default:'active';not null" json:"status"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// BeforeCreate fills the ID on engines without a uuid column default.
func (b *Branch) BeforeCreate(*gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// ValidBranchStatus reports whether s is one of the branch lifecycle states.
func ValidBranchStatus(s string) bool {
	switch s {
	case BranchActive, BranchMaintenance, BranchInactive:
		return true
	}
	return false
}
