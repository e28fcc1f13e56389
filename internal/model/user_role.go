package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role names mirror the positions used throughout the product UI.
const (
	RoleAdmin    = "admin"
	RoleGerente  = "gerente"
	RoleEmpleado = "empleado"
	RolePasante  = "pasante"
)

// UserRole assigns exactly one role to an identity. The unique index on
// UserID is what guarantees "one role per user" — application code relies
// on it and never inserts a second row.
type UserRole struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Role      string    `gorm:"type:varchar(50);not null" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// BeforeCreate fills the ID on engines without a uuid column default.
func (r *UserRole) BeforeCreate(*gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// ValidRole reports whether name is one of the fixed role set.
func ValidRole(name string) bool {
	switch name {
	case RoleAdmin, RoleGerente, RoleEmpleado, RolePasante:
		return true
	}
	return false
}

// RoleFromPosition classifies a free-form position string into a role.
// This is a one-time classification at employee creation; the assignment is
// not re-evaluated if the position later changes.
func RoleFromPosition(position string) string {
	p := strings.ToLower(position)
	switch {
	case strings.Contains(p, RoleGerente):
		return RoleGerente
	case strings.Contains(p, RolePasante):
		return RolePasante
	default:
		return RoleEmpleado
	}
}
