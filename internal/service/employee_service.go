package service

import (
	"context"
	"errors"
	"time"

	"bizhive/internal/access"
	"bizhive/internal/model"
	"bizhive/internal/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateEmployeeRequest struct {
	Name     string           `json:"name" binding:"required,min=2,max=100"`
	Email    string           `json:"email" binding:"omitempty,email"`
	Phone    string           `json:"phone"`
	Position string           `json:"position" binding:"required,min=2,max=100"`
	Salary   *decimal.Decimal `json:"salary"`
	HireDate string           `json:"hire_date"`
	Status   string           `json:"status"`

	// CreateAccount provisions a login for the employee. The assigned role is
	// classified from Position once, at creation time.
	CreateAccount bool   `json:"create_account"`
	Password      string `json:"password"`
}

type UpdateEmployeeRequest struct {
	Name     string           `json:"name" binding:"required,min=2,max=100"`
	Email    string           `json:"email" binding:"omitempty,email"`
	Phone    string           `json:"phone"`
	Position string           `json:"position" binding:"required,min=2,max=100"`
	Salary   *decimal.Decimal `json:"salary"`
	HireDate string           `json:"hire_date"`
	Status   string           `json:"status" binding:"required"`
}

type EmployeeService interface {
	ListByBranch(ctx context.Context, ac access.Context, branchID string) ([]model.Employee, error)
	Create(ctx context.Context, ac access.Context, branchID string, req CreateEmployeeRequest) (*model.Employee, error)
	Update(ctx context.Context, ac access.Context, id string, req UpdateEmployeeRequest) (*model.Employee, error)
}

type employeeService struct {
	employees repository.EmployeeRepository
	branches  repository.BranchRepository
	users     repository.UserRepository
	roles     repository.UserRoleRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
}

func NewEmployeeService(
	employees repository.EmployeeRepository,
	branches repository.BranchRepository,
	users repository.UserRepository,
	roles repository.UserRoleRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) EmployeeService {
	return &employeeService{
		employees: employees,
		branches:  branches,
		users:     users,
		roles:     roles,
		auditRepo: auditRepo,
		txManager: txManager,
	}
}

func (s *employeeService) ListByBranch(ctx context.Context, ac access.Context, branchID string) ([]model.Employee, error) {
	branch, err := gateBranch(ctx, s.branches, ac, branchID, false)
	if err != nil {
		return nil, err
	}
	return s.employees.ListByBranch(ctx, branch.ID)
}

func (s *employeeService) Create(ctx context.Context, ac access.Context, branchID string, req CreateEmployeeRequest) (*model.Employee, error) {
	branch, err := gateBranch(ctx, s.branches, ac, branchID, true)
	if err != nil {
		return nil, err
	}

	if req.Phone != "" && !phonePattern.MatchString(req.Phone) {
		return nil, Validationf("phone may only contain digits and + - ( ) characters")
	}
	if req.Salary != nil && req.Salary.IsNegative() {
		return nil, Validationf("salary cannot be negative")
	}
	status := req.Status
	if status == "" {
		status = model.EmployeeActive
	}
	if !model.ValidEmployeeStatus(status) {
		return nil, Validationf("invalid employee status %q", status)
	}
	hireDate, err := parseHireDate(req.HireDate)
	if err != nil {
		return nil, err
	}
	if req.CreateAccount {
		if req.Email == "" {
			return nil, Validationf("email is required to create an account")
		}
		if len(req.Password) < 6 {
			return nil, Validationf("password must be at least 6 characters")
		}
		if _, err := s.users.GetByEmail(ctx, req.Email); err == nil {
			return nil, Validationf("email already registered")
		}
	}

	employee := &model.Employee{
		BranchID: branch.ID,
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Position: req.Position,
		Salary:   req.Salary,
		HireDate: hireDate,
		Status:   status,
	}

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if req.CreateAccount {
			hashed, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
			if err != nil {
				return errors.New("failed to hash password")
			}
			user := &model.User{Email: req.Email, Password: string(hashed)}
			if err := s.users.Create(txCtx, user); err != nil {
				return err
			}
			role := &model.UserRole{UserID: user.ID, Role: model.RoleFromPosition(req.Position)}
			if err := s.roles.Assign(txCtx, role); err != nil {
				return err
			}
			userID := user.ID
			employee.UserID = &userID
		}

		if err := s.employees.Create(txCtx, employee); err != nil {
			return err
		}
		entry := auditEntry(ac.Email, model.AuditInsert, model.TableEmployees, employee.ID.String(), nil, employee)
		return s.auditRepo.Log(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}

	return employee, nil
}

func (s *employeeService) Update(ctx context.Context, ac access.Context, id string, req UpdateEmployeeRequest) (*model.Employee, error) {
	employeeID, err := uuid.Parse(id)
	if err != nil {
		return nil, Validationf("invalid employee id")
	}

	employee, err := s.employees.FindByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if _, err := gateBranch(ctx, s.branches, ac, employee.BranchID.String(), true); err != nil {
		return nil, err
	}

	if req.Phone != "" && !phonePattern.MatchString(req.Phone) {
		return nil, Validationf("phone may only contain digits and + - ( ) characters")
	}
	if req.Salary != nil && req.Salary.IsNegative() {
		return nil, Validationf("salary cannot be negative")
	}
	if !model.ValidEmployeeStatus(req.Status) {
		return nil, Validationf("invalid employee status %q", req.Status)
	}
	hireDate, err := parseHireDate(req.HireDate)
	if err != nil {
		return nil, err
	}

	before := *employee
	employee.Name = req.Name
	employee.Email = req.Email
	employee.Phone = req.Phone
	employee.Position = req.Position
	employee.Salary = req.Salary
	employee.HireDate = hireDate
	employee.Status = req.Status

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.employees.Update(txCtx, employee); err != nil {
			return err
		}
		entry := auditEntry(ac.Email, model.AuditUpdate, model.TableEmployees, employee.ID.String(), before, employee)
		return s.auditRepo.Log(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}

	return employee, nil
}

func parseHireDate(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, Validationf("hire_date must be in YYYY-MM-DD format")
	}
	return &t, nil
}
