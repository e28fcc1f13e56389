package access

import (
	"bizhive/internal/model"
)

// Decision is the gate's answer for one (user, branch) pair.
// CanEdit is never true without CanView.
type Decision struct {
	CanView bool `json:"can_view"`
	CanEdit bool `json:"can_edit"`
}

// Check decides whether the resolved identity may view or mutate the given
// branch. Admins act on any branch they own; gerentes view and edit only
// their bound branch; empleados and pasantes view their bound branch
// read-only. A non-admin with no bound branch can see nothing.
func Check(ac Context, branch *model.Branch) Decision {
	if branch == nil {
		return Decision{}
	}

	if ac.IsAdmin() {
		if branch.OwnerID == ac.UserID {
			return Decision{CanView: true, CanEdit: true}
		}
		return Decision{}
	}

	if ac.BoundBranchID == nil || *ac.BoundBranchID != branch.ID {
		return Decision{}
	}

	if ac.Role == model.RoleGerente {
		return Decision{CanView: true, CanEdit: true}
	}
	return Decision{CanView: true}
}
