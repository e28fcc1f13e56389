package service

import (
	"context"
	"testing"

	"bizhive/internal/model"
	"bizhive/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newBranchService(db *gorm.DB) BranchService {
	return NewBranchService(
		repository.NewBranchRepository(db),
		repository.NewEmployeeRepository(db),
		repository.NewInventoryRepository(db),
		repository.NewAuditRepository(db),
		repository.NewTransactionManager(db),
	)
}

func TestCreateBranch(t *testing.T) {
	db := setupTestDB(t)
	svc := newBranchService(db)
	owner := uuid.New()

	res, err := svc.Create(context.Background(), adminCtx(owner), CreateBranchRequest{
		Name:    "Sucursal Norte",
		Address: "Calle 45 #12-30",
		Phone:   "+57 (300) 123-4567",
	})
	require.NoError(t, err)
	assert.Equal(t, "Sucursal Norte", res.Name)
	assert.Equal(t, model.BranchActive, res.Status)

	assert.Equal(t, int64(1), countAudits(t, db, model.AuditInsert, model.TableBranches))
}

func TestCreateBranchRequiresAdmin(t *testing.T) {
	db := setupTestDB(t)
	svc := newBranchService(db)
	branch := seedBranch(t, db, uuid.New())

	_, err := svc.Create(context.Background(), boundCtx(model.RoleGerente, branch.ID), CreateBranchRequest{
		Name:    "Sucursal Sur",
		Address: "Carrera 7 #80-10",
	})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateBranchValidatesPhone(t *testing.T) {
	db := setupTestDB(t)
	svc := newBranchService(db)

	_, err := svc.Create(context.Background(), adminCtx(uuid.New()), CreateBranchRequest{
		Name:    "Sucursal Este",
		Address: "Diagonal 20 #5-55",
		Phone:   "not-a-phone!",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDashboardAdminCounts(t *testing.T) {
	db := setupTestDB(t)
	svc := newBranchService(db)
	owner := uuid.New()
	branch := seedBranch(t, db, owner)

	require.NoError(t, db.Create(&model.Employee{
		BranchID: branch.ID, Name: "Ana Gomez", Position: "Cajera", Status: model.EmployeeActive,
	}).Error)
	require.NoError(t, db.Create(&model.InventoryItem{
		BranchID: branch.ID, ProductName: "Cafe Molido", Quantity: 10, MinStock: 2,
	}).Error)

	res, err := svc.Dashboard(context.Background(), adminCtx(owner), false)
	require.NoError(t, err)
	assert.Nil(t, res.RedirectBranchID)
	assert.Equal(t, int64(1), res.TotalBranches)
	assert.Equal(t, int64(1), res.TotalEmployees)
	assert.Equal(t, int64(1), res.TotalInventory)
	require.Len(t, res.Branches, 1)
	assert.Equal(t, int64(1), res.Branches[0].EmployeeCount)
}

func TestDashboardRedirectsBoundUser(t *testing.T) {
	db := setupTestDB(t)
	svc := newBranchService(db)
	branch := seedBranch(t, db, uuid.New())

	res, err := svc.Dashboard(context.Background(), boundCtx(model.RoleGerente, branch.ID), false)
	require.NoError(t, err)
	require.NotNil(t, res.RedirectBranchID)
	assert.Equal(t, branch.ID.String(), *res.RedirectBranchID)
	assert.Empty(t, res.Branches)
}

func TestDashboardNoBranchAssigned(t *testing.T) {
	db := setupTestDB(t)
	svc := newBranchService(db)

	ac := boundCtx(model.RoleEmpleado, uuid.New())
	ac.BoundBranchID = nil

	res, err := svc.Dashboard(context.Background(), ac, false)
	require.NoError(t, err)
	assert.True(t, res.NoBranchAssigned)
	assert.Nil(t, res.RedirectBranchID)
	assert.Empty(t, res.Branches)
}

func TestGetBranchPermissions(t *testing.T) {
	db := setupTestDB(t)
	svc := newBranchService(db)
	owner := uuid.New()
	branch := seedBranch(t, db, owner)

	// Owner sees the branch with edit rights.
	res, err := svc.Get(context.Background(), adminCtx(owner), branch.ID.String())
	require.NoError(t, err)
	assert.True(t, res.CanEdit)

	// A bound empleado sees it read-only.
	res, err = svc.Get(context.Background(), boundCtx(model.RoleEmpleado, branch.ID), branch.ID.String())
	require.NoError(t, err)
	assert.False(t, res.CanEdit)

	// A user bound to a different branch sees nothing.
	_, err = svc.Get(context.Background(), boundCtx(model.RoleGerente, uuid.New()), branch.ID.String())
	assert.ErrorIs(t, err, ErrForbidden)

	// Another admin does not own it.
	_, err = svc.Get(context.Background(), adminCtx(uuid.New()), branch.ID.String())
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateBranchStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := newBranchService(db)
	owner := uuid.New()
	branch := seedBranch(t, db, owner)

	_, err := svc.UpdateStatus(context.Background(), adminCtx(owner), branch.ID.String(),
		UpdateBranchStatusRequest{Status: "closed"})
	assert.ErrorIs(t, err, ErrValidation)

	res, err := svc.UpdateStatus(context.Background(), adminCtx(owner), branch.ID.String(),
		UpdateBranchStatusRequest{Status: model.BranchInactive})
	require.NoError(t, err)
	assert.Equal(t, model.BranchInactive, res.Status)

	// Child records survive deactivation.
	var stored model.Branch
	require.NoError(t, db.First(&stored, "id = ?", branch.ID).Error)
	assert.Equal(t, model.BranchInactive, stored.Status)
	assert.Equal(t, int64(1), countAudits(t, db, model.AuditUpdate, model.TableBranches))
}
