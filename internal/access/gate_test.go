package access

import (
	"testing"

	"bizhive/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCheck(t *testing.T) {
	ownerID := uuid.New()
	branchID := uuid.New()
	otherBranchID := uuid.New()
	branch := &model.Branch{ID: branchID, OwnerID: ownerID, Status: model.BranchActive}

	tests := []struct {
		name    string
		ctx     Context
		branch  *model.Branch
		canView bool
		canEdit bool
	}{
		{
			name:    "admin owns branch",
			ctx:     Context{UserID: ownerID, Role: model.RoleAdmin},
			branch:  branch,
			canView: true,
			canEdit: true,
		},
		{
			name:   "admin does not own branch",
			ctx:    Context{UserID: uuid.New(), Role: model.RoleAdmin},
			branch: branch,
		},
		{
			name:    "gerente bound to branch",
			ctx:     Context{UserID: uuid.New(), Role: model.RoleGerente, BoundBranchID: &branchID},
			branch:  branch,
			canView: true,
			canEdit: true,
		},
		{
			name:   "gerente bound elsewhere",
			ctx:    Context{UserID: uuid.New(), Role: model.RoleGerente, BoundBranchID: &otherBranchID},
			branch: branch,
		},
		{
			name:    "empleado bound to branch is view-only",
			ctx:     Context{UserID: uuid.New(), Role: model.RoleEmpleado, BoundBranchID: &branchID},
			branch:  branch,
			canView: true,
		},
		{
			name:    "pasante bound to branch is view-only",
			ctx:     Context{UserID: uuid.New(), Role: model.RolePasante, BoundBranchID: &branchID},
			branch:  branch,
			canView: true,
		},
		{
			name:   "non-admin with no bound branch sees nothing",
			ctx:    Context{UserID: uuid.New(), Role: model.RoleEmpleado},
			branch: branch,
		},
		{
			name: "nil branch denies everyone",
			ctx:  Context{UserID: ownerID, Role: model.RoleAdmin},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Check(tt.ctx, tt.branch)
			assert.Equal(t, tt.canView, d.CanView)
			assert.Equal(t, tt.canEdit, d.CanEdit)

			// Edit permission always implies view permission.
			if d.CanEdit {
				assert.True(t, d.CanView)
			}
		})
	}
}
