package service

import (
	"context"
	"testing"

	"bizhive/internal/model"
	"bizhive/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newEmployeeService(db *gorm.DB) EmployeeService {
	return NewEmployeeService(
		repository.NewEmployeeRepository(db),
		repository.NewBranchRepository(db),
		repository.NewUserRepository(db),
		repository.NewUserRoleRepository(db),
		repository.NewAuditRepository(db),
		repository.NewTransactionManager(db),
	)
}

func TestCreateEmployee(t *testing.T) {
	db := setupTestDB(t)
	svc := newEmployeeService(db)
	owner := uuid.New()
	branch := seedBranch(t, db, owner)

	salary := decimal.NewFromInt(1200)
	employee, err := svc.Create(context.Background(), adminCtx(owner), branch.ID.String(), CreateEmployeeRequest{
		Name:     "Maria Lopez",
		Email:    "maria@example.com",
		Position: "Cajera",
		Salary:   &salary,
		HireDate: "2026-01-15",
	})
	require.NoError(t, err)
	assert.Equal(t, model.EmployeeActive, employee.Status)
	assert.Nil(t, employee.UserID)
	require.NotNil(t, employee.HireDate)
	assert.Equal(t, int64(1), countAudits(t, db, model.AuditInsert, model.TableEmployees))
}

func TestCreateEmployeeProvisionsAccount(t *testing.T) {
	db := setupTestDB(t)
	svc := newEmployeeService(db)
	owner := uuid.New()
	branch := seedBranch(t, db, owner)

	employee, err := svc.Create(context.Background(), adminCtx(owner), branch.ID.String(), CreateEmployeeRequest{
		Name:          "Carlos Ruiz",
		Email:         "carlos@example.com",
		Position:      "Gerente General",
		CreateAccount: true,
		Password:      "secret123",
	})
	require.NoError(t, err)
	require.NotNil(t, employee.UserID)

	// The role is classified from the position at creation time.
	var role model.UserRole
	require.NoError(t, db.First(&role, "user_id = ?", employee.UserID).Error)
	assert.Equal(t, model.RoleGerente, role.Role)

	var user model.User
	require.NoError(t, db.First(&user, "id = ?", employee.UserID).Error)
	assert.Equal(t, "carlos@example.com", user.Email)
	assert.NotEqual(t, "secret123", user.Password)
}

func TestCreateEmployeeAccountValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newEmployeeService(db)
	owner := uuid.New()
	branch := seedBranch(t, db, owner)

	_, err := svc.Create(context.Background(), adminCtx(owner), branch.ID.String(), CreateEmployeeRequest{
		Name:          "Sin Correo",
		Position:      "Cajero",
		CreateAccount: true,
		Password:      "secret123",
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Create(context.Background(), adminCtx(owner), branch.ID.String(), CreateEmployeeRequest{
		Name:          "Clave Corta",
		Email:         "clave@example.com",
		Position:      "Cajero",
		CreateAccount: true,
		Password:      "123",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreateEmployeeRequiresEditAccess(t *testing.T) {
	db := setupTestDB(t)
	svc := newEmployeeService(db)
	branch := seedBranch(t, db, uuid.New())

	_, err := svc.Create(context.Background(), boundCtx(model.RolePasante, branch.ID), branch.ID.String(),
		CreateEmployeeRequest{Name: "No Puede", Position: "Cajero"})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListEmployeesGated(t *testing.T) {
	db := setupTestDB(t)
	svc := newEmployeeService(db)
	owner := uuid.New()
	branch := seedBranch(t, db, owner)
	other := seedBranch(t, db, owner)

	require.NoError(t, db.Create(&model.Employee{
		BranchID: branch.ID, Name: "Ana Gomez", Position: "Cajera", Status: model.EmployeeActive,
	}).Error)

	// Bound view-only roles can list their own branch.
	employees, err := svc.ListByBranch(context.Background(), boundCtx(model.RoleEmpleado, branch.ID), branch.ID.String())
	require.NoError(t, err)
	assert.Len(t, employees, 1)

	// But not a sibling branch.
	_, err = svc.ListByBranch(context.Background(), boundCtx(model.RoleEmpleado, branch.ID), other.ID.String())
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpdateEmployee(t *testing.T) {
	db := setupTestDB(t)
	svc := newEmployeeService(db)
	owner := uuid.New()
	branch := seedBranch(t, db, owner)

	employee := &model.Employee{
		BranchID: branch.ID, Name: "Ana Gomez", Position: "Cajera", Status: model.EmployeeActive,
	}
	require.NoError(t, db.Create(employee).Error)

	updated, err := svc.Update(context.Background(), adminCtx(owner), employee.ID.String(), UpdateEmployeeRequest{
		Name:     "Ana Gomez",
		Position: "Cajera Principal",
		Status:   model.EmployeeVacation,
	})
	require.NoError(t, err)
	assert.Equal(t, model.EmployeeVacation, updated.Status)
	assert.Equal(t, "Cajera Principal", updated.Position)
	assert.Equal(t, int64(1), countAudits(t, db, model.AuditUpdate, model.TableEmployees))

	_, err = svc.Update(context.Background(), adminCtx(owner), uuid.NewString(), UpdateEmployeeRequest{
		Name: "Nadie", Position: "Cajero", Status: model.EmployeeActive,
	})
	assert.ErrorIs(t, err, ErrNotFound)
}
