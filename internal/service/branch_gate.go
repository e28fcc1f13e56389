package service

import (
	"context"
	"errors"

	"bizhive/internal/access"
	"bizhive/internal/model"
	"bizhive/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// gateBranch loads a branch and runs the access gate against it, requiring
// edit permission when edit is true. Services call this before touching any
// branch-scoped rows.
func gateBranch(ctx context.Context, branches repository.BranchRepository, ac access.Context, branchID string, edit bool) (*model.Branch, error) {
	id, err := uuid.Parse(branchID)
	if err != nil {
		return nil, Validationf("invalid branch id")
	}

	branch, err := branches.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	decision := access.Check(ac, branch)
	if !decision.CanView || (edit && !decision.CanEdit) {
		return nil, ErrForbidden
	}
	return branch, nil
}
