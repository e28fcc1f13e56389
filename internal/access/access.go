// Package access resolves who an authenticated user is allowed to act as and
// which branch they are scoped to. Every branch-scoped request goes through
// Resolve followed by Check before any data is fetched.
package access

import (
	"context"
	"errors"

	"bizhive/internal/model"
	"bizhive/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// Context is the resolved access state for one identity: a single role and,
// for non-admins, the one branch their employee record binds them to.
// BoundBranchID is nil for admins (who are scoped by ownership instead) and
// for non-admins with no employee record (who can see nothing).
type Context struct {
	UserID        uuid.UUID
	Email         string
	Role          string
	BoundBranchID *uuid.UUID
}

// IsAdmin reports whether the identity owns branches rather than being bound to one.
func (c Context) IsAdmin() bool {
	return c.Role == model.RoleAdmin
}

// Resolver maps an authenticated identity to its access Context.
type Resolver struct {
	roles     repository.UserRoleRepository
	employees repository.EmployeeRepository
}

func NewResolver(roles repository.UserRoleRepository, employees repository.EmployeeRepository) *Resolver {
	return &Resolver{roles: roles, employees: employees}
}

// Resolve looks up the user's role assignment and, for non-admins, the branch
// their employee record points at.
//
// Lookups fail closed: a missing role row or a read error both degrade to
// empleado with no bound branch. Blocking an authenticated session on a
// transient read failure would be worse than under-privileging it, so errors
// here are logged and absorbed, never propagated.
func (r *Resolver) Resolve(ctx context.Context, userID uuid.UUID, email string) Context {
	out := Context{
		UserID: userID,
		Email:  email,
		Role:   model.RoleEmpleado,
	}

	role, err := r.roles.GetByUserID(ctx, userID)
	switch {
	case err == nil:
		out.Role = role.Role
	case errors.Is(err, gorm.ErrRecordNotFound):
		// No assignment: keep the lowest-privilege default.
	default:
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("role lookup failed, degrading to empleado")
		return out
	}

	if out.Role == model.RoleAdmin {
		return out
	}

	employee, err := r.employees.FindByUserID(ctx, userID)
	switch {
	case err == nil:
		branchID := employee.BranchID
		out.BoundBranchID = &branchID
	case errors.Is(err, gorm.ErrRecordNotFound):
		// No employee record: the user keeps their role but is bound to
		// no branch, which the gate treats as "view nothing".
	default:
		log.Warn().Err(err).Str("user_id", userID.String()).Msg("employee lookup failed, no branch bound")
	}

	return out
}
