package service

import (
	"context"
	"errors"
	"regexp"

	"bizhive/internal/access"
	"bizhive/internal/model"
	"bizhive/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var phonePattern = regexp.MustCompile(`^[0-9+\-\s()]+$`)

// DTOs
type CreateBranchRequest struct {
	Name    string `json:"name" binding:"required,min=2,max=100"`
	Address string `json:"address" binding:"required,min=5,max=200"`
	Phone   string `json:"phone"`
	Status  string `json:"status"`
}

type UpdateBranchStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type BranchResponse struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Address        string `json:"address"`
	Phone          string `json:"phone,omitempty"`
	Status         string `json:"status"`
	EmployeeCount  int64  `json:"employee_count"`
	InventoryCount int64  `json:"inventory_count"`
	CreatedAt      string `json:"created_at"`
}

type BranchDetailResponse struct {
	BranchResponse
	CanEdit bool `json:"can_edit"`
}

// DashboardResponse is either an admin summary or, for branch-bound roles, a
// redirect to their branch. RedirectBranchID is decided from the resolved
// access context alone, before any branch-scoped data is fetched.
type DashboardResponse struct {
	RedirectBranchID *string          `json:"redirect_branch_id,omitempty"`
	NoBranchAssigned bool             `json:"no_branch_assigned,omitempty"`
	TotalBranches    int64            `json:"total_branches"`
	TotalEmployees   int64            `json:"total_employees"`
	TotalInventory   int64            `json:"total_inventory"`
	Branches         []BranchResponse `json:"branches"`
}

type BranchService interface {
	Dashboard(ctx context.Context, ac access.Context, includeInactive bool) (*DashboardResponse, error)
	Create(ctx context.Context, ac access.Context, req CreateBranchRequest) (*BranchResponse, error)
	Get(ctx context.Context, ac access.Context, id string) (*BranchDetailResponse, error)
	UpdateStatus(ctx context.Context, ac access.Context, id string, req UpdateBranchStatusRequest) (*BranchResponse, error)
}

type branchService struct {
	branches  repository.BranchRepository
	employees repository.EmployeeRepository
	inventory repository.InventoryRepository
	auditRepo repository.AuditRepository
	txManager repository.TransactionManager
}

func NewBranchService(
	branches repository.BranchRepository,
	employees repository.EmployeeRepository,
	inventory repository.InventoryRepository,
	auditRepo repository.AuditRepository,
	txManager repository.TransactionManager,
) BranchService {
	return &branchService{
		branches:  branches,
		employees: employees,
		inventory: inventory,
		auditRepo: auditRepo,
		txManager: txManager,
	}
}

// Dashboard routes non-admins to their bound branch before touching any
// branch data; admins get their branches with per-branch counts.
func (s *branchService) Dashboard(ctx context.Context, ac access.Context, includeInactive bool) (*DashboardResponse, error) {
	if !ac.IsAdmin() {
		if ac.BoundBranchID != nil {
			id := ac.BoundBranchID.String()
			return &DashboardResponse{RedirectBranchID: &id}, nil
		}
		return &DashboardResponse{NoBranchAssigned: true, Branches: []BranchResponse{}}, nil
	}

	branches, err := s.branches.ListByOwner(ctx, ac.UserID, includeInactive)
	if err != nil {
		return nil, err
	}

	res := &DashboardResponse{Branches: make([]BranchResponse, 0, len(branches))}
	for _, b := range branches {
		br, err := s.withCounts(ctx, b)
		if err != nil {
			return nil, err
		}
		res.Branches = append(res.Branches, br)
		res.TotalBranches++
		// Inactive branches keep their records but drop out of the totals.
		if b.Status != model.BranchInactive {
			res.TotalEmployees += br.EmployeeCount
			res.TotalInventory += br.InventoryCount
		}
	}
	return res, nil
}

func (s *branchService) Create(ctx context.Context, ac access.Context, req CreateBranchRequest) (*BranchResponse, error) {
	if !ac.IsAdmin() {
		return nil, ErrForbidden
	}
	if req.Phone != "" && !phonePattern.MatchString(req.Phone) {
		return nil, Validationf("phone may only contain digits and + - ( ) characters")
	}
	status := req.Status
	if status == "" {
		status = model.BranchActive
	}
	if !model.ValidBranchStatus(status) {
		return nil, Validationf("invalid branch status %q", status)
	}

	branch := &model.Branch{
		OwnerID: ac.UserID,
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Status:  status,
	}

	err := s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.branches.Create(txCtx, branch); err != nil {
			return err
		}
		entry := auditEntry(ac.Email, model.AuditInsert, model.TableBranches, branch.ID.String(), nil, branch)
		return s.auditRepo.Log(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}

	res := toBranchResponse(*branch)
	return &res, nil
}

func (s *branchService) Get(ctx context.Context, ac access.Context, id string) (*BranchDetailResponse, error) {
	branchID, err := uuid.Parse(id)
	if err != nil {
		return nil, Validationf("invalid branch id")
	}

	branch, err := s.branches.FindByID(ctx, branchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	decision := access.Check(ac, branch)
	if !decision.CanView {
		return nil, ErrForbidden
	}

	br, err := s.withCounts(ctx, *branch)
	if err != nil {
		return nil, err
	}
	return &BranchDetailResponse{BranchResponse: br, CanEdit: decision.CanEdit}, nil
}

// UpdateStatus moves a branch between active, maintenance, and inactive.
// Only the owning admin may do this; closing a branch never deletes rows.
func (s *branchService) UpdateStatus(ctx context.Context, ac access.Context, id string, req UpdateBranchStatusRequest) (*BranchResponse, error) {
	if !ac.IsAdmin() {
		return nil, ErrForbidden
	}
	if !model.ValidBranchStatus(req.Status) {
		return nil, Validationf("invalid branch status %q", req.Status)
	}

	branchID, err := uuid.Parse(id)
	if err != nil {
		return nil, Validationf("invalid branch id")
	}

	branch, err := s.branches.FindByID(ctx, branchID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if decision := access.Check(ac, branch); !decision.CanEdit {
		return nil, ErrForbidden
	}

	before := *branch
	branch.Status = req.Status

	err = s.txManager.RunInTx(ctx, func(txCtx context.Context) error {
		if err := s.branches.UpdateStatus(txCtx, branchID, req.Status); err != nil {
			return err
		}
		entry := auditEntry(ac.Email, model.AuditUpdate, model.TableBranches, branch.ID.String(), before, branch)
		return s.auditRepo.Log(txCtx, entry)
	})
	if err != nil {
		return nil, err
	}

	res := toBranchResponse(*branch)
	return &res, nil
}

func (s *branchService) withCounts(ctx context.Context, b model.Branch) (BranchResponse, error) {
	res := toBranchResponse(b)

	employees, err := s.employees.CountByBranch(ctx, b.ID)
	if err != nil {
		return res, err
	}
	items, err := s.inventory.CountByBranch(ctx, b.ID)
	if err != nil {
		return res, err
	}

	res.EmployeeCount = employees
	res.InventoryCount = items
	return res, nil
}

func toBranchResponse(b model.Branch) BranchResponse {
	return BranchResponse{
		ID:        b.ID.String(),
		Name:      b.Name,
		Address:   b.Address,
		Phone:     b.Phone,
		Status:    b.Status,
		CreatedAt: b.CreatedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
}
