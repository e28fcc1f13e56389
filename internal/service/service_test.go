package service

import (
	"testing"

	"bizhive/internal/access"
	"bizhive/internal/model"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.UserRole{},
		&model.Profile{},
		&model.Branch{},
		&model.Employee{},
		&model.InventoryItem{},
		&model.AuditLog{},
	); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return db
}

func seedBranch(t *testing.T, db *gorm.DB, ownerID uuid.UUID) *model.Branch {
	branch := &model.Branch{
		OwnerID: ownerID,
		Name:    "Sucursal Centro",
		Address: "Av. Principal 123",
		Status:  model.BranchActive,
	}
	if err := db.Create(branch).Error; err != nil {
		t.Fatalf("Failed to seed branch: %v", err)
	}
	return branch
}

func adminCtx(userID uuid.UUID) access.Context {
	return access.Context{
		UserID: userID,
		Email:  "owner@example.com",
		Role:   model.RoleAdmin,
	}
}

func boundCtx(role string, branchID uuid.UUID) access.Context {
	return access.Context{
		UserID:        uuid.New(),
		Email:         role + "@example.com",
		Role:          role,
		BoundBranchID: &branchID,
	}
}

func countAudits(t *testing.T, db *gorm.DB, action, table string) int64 {
	var total int64
	if err := db.Model(&model.AuditLog{}).
		Where("action = ? AND table_name = ?", action, table).
		Count(&total).Error; err != nil {
		t.Fatalf("Failed to count audit logs: %v", err)
	}
	return total
}
