package service

import (
	"context"
	"strings"
	"testing"

	"bizhive/internal/model"
	"bizhive/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newInventoryService(db *gorm.DB) InventoryService {
	return NewInventoryService(
		repository.NewInventoryRepository(db),
		repository.NewBranchRepository(db),
		repository.NewAuditRepository(db),
		repository.NewTransactionManager(db),
		nil,
	)
}

func seedItem(t *testing.T, db *gorm.DB, branchID uuid.UUID, quantity, minStock int) *model.InventoryItem {
	item := &model.InventoryItem{
		BranchID:    branchID,
		ProductName: "Cafe Molido",
		SKU:         "CAF-001",
		Category:    "bebidas",
		Quantity:    quantity,
		MinStock:    minStock,
	}
	if err := db.Create(item).Error; err != nil {
		t.Fatalf("Failed to seed item: %v", err)
	}
	return item
}

func TestAdjustQuantityAppliesDelta(t *testing.T) {
	db := setupTestDB(t)
	svc := newInventoryService(db)
	owner := uuid.New()
	branch := seedBranch(t, db, owner)
	item := seedItem(t, db, branch.ID, 5, 0)

	res, err := svc.AdjustQuantity(context.Background(), adminCtx(owner), item.ID.String(),
		AdjustQuantityRequest{Delta: 3})
	require.NoError(t, err)
	assert.Equal(t, 8, res.Quantity)

	var stored model.InventoryItem
	require.NoError(t, db.First(&stored, "id = ?", item.ID).Error)
	assert.Equal(t, 8, stored.Quantity)
	assert.Equal(t, int64(1), countAudits(t, db, model.AuditUpdate, model.TableInventory))
}

func TestAdjustQuantityRejectsNegativeResult(t *testing.T) {
	db := setupTestDB(t)
	svc := newInventoryService(db)
	owner := uuid.New()
	branch := seedBranch(t, db, owner)
	item := seedItem(t, db, branch.ID, 5, 0)

	_, err := svc.AdjustQuantity(context.Background(), adminCtx(owner), item.ID.String(),
		AdjustQuantityRequest{Delta: -10})
	assert.ErrorIs(t, err, ErrValidation)

	// Rejected adjustment leaves stored state untouched.
	var stored model.InventoryItem
	require.NoError(t, db.First(&stored, "id = ?", item.ID).Error)
	assert.Equal(t, 5, stored.Quantity)
	assert.Equal(t, int64(0), countAudits(t, db, model.AuditUpdate, model.TableInventory))
}

func TestAdjustQuantityGateViewOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := newInventoryService(db)
	branch := seedBranch(t, db, uuid.New())
	item := seedItem(t, db, branch.ID, 5, 0)

	// Empleados and pasantes may view but never mutate.
	for _, role := range []string{model.RoleEmpleado, model.RolePasante} {
		_, err := svc.AdjustQuantity(context.Background(), boundCtx(role, branch.ID), item.ID.String(),
			AdjustQuantityRequest{Delta: -1})
		assert.ErrorIs(t, err, ErrForbidden, role)
	}

	// A gerente bound to this branch may.
	res, err := svc.AdjustQuantity(context.Background(), boundCtx(model.RoleGerente, branch.ID), item.ID.String(),
		AdjustQuantityRequest{Delta: -1})
	require.NoError(t, err)
	assert.Equal(t, 4, res.Quantity)
}

func TestCreateItemValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newInventoryService(db)
	owner := uuid.New()
	branch := seedBranch(t, db, owner)

	item, err := svc.CreateItem(context.Background(), adminCtx(owner), branch.ID.String(), CreateItemRequest{
		ProductName: "Azucar Blanca",
		SKU:         "AZU-001",
		Quantity:    20,
		MinStock:    5,
	})
	require.NoError(t, err)
	assert.Equal(t, 20, item.Quantity)
	assert.Equal(t, int64(1), countAudits(t, db, model.AuditInsert, model.TableInventory))

	_, err = svc.CreateItem(context.Background(), boundCtx(model.RoleEmpleado, branch.ID), branch.ID.String(),
		CreateItemRequest{ProductName: "Harina", Quantity: 1})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestExportCSV(t *testing.T) {
	db := setupTestDB(t)
	svc := newInventoryService(db)
	owner := uuid.New()
	branch := seedBranch(t, db, owner)
	seedItem(t, db, branch.ID, 5, 2)

	data, err := svc.ExportCSV(context.Background(), adminCtx(owner), branch.ID.String())
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "product_name,sku,category,quantity,unit_price,min_stock", lines[0])
	assert.Equal(t, "Cafe Molido,CAF-001,bebidas,5,,2", lines[1])
}

func TestImportCSVInsertOnly(t *testing.T) {
	db := setupTestDB(t)
	svc := newInventoryService(db)
	owner := uuid.New()
	branch := seedBranch(t, db, owner)
	seedItem(t, db, branch.ID, 5, 2)

	// A row reusing an existing SKU inserts a new item; it never adjusts the
	// existing one.
	csvData := "product_name,sku,category,quantity,unit_price,min_stock\n" +
		"Cafe Molido,CAF-001,bebidas,7,12.50,2\n" +
		"Te Verde,TEV-001,bebidas,3,,1\n"

	res, err := svc.ImportCSV(context.Background(), adminCtx(owner), branch.ID.String(), strings.NewReader(csvData))
	require.NoError(t, err)
	assert.Equal(t, 2, res.Imported)

	var total int64
	require.NoError(t, db.Model(&model.InventoryItem{}).Where("branch_id = ?", branch.ID).Count(&total).Error)
	assert.Equal(t, int64(3), total)

	var original model.InventoryItem
	require.NoError(t, db.Where("sku = ? AND quantity = ?", "CAF-001", 5).First(&original).Error)
}

func TestImportCSVRejectsBadRowByLine(t *testing.T) {
	db := setupTestDB(t)
	svc := newInventoryService(db)
	owner := uuid.New()
	branch := seedBranch(t, db, owner)

	csvData := "product_name,sku,category,quantity,unit_price,min_stock\n" +
		"Te Verde,TEV-001,bebidas,3,,1\n" +
		"Cafe Molido,CAF-001,bebidas,-4,,2\n"

	_, err := svc.ImportCSV(context.Background(), adminCtx(owner), branch.ID.String(), strings.NewReader(csvData))
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "line 3")

	// The whole file is rejected; no partial insert.
	var total int64
	require.NoError(t, db.Model(&model.InventoryItem{}).Where("branch_id = ?", branch.ID).Count(&total).Error)
	assert.Equal(t, int64(0), total)
}
