package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Employee status values
const (
	EmployeeActive   = "active"
	EmployeeInactive = "inactive"
	EmployeeVacation = "vacation"
)

// Employee is a personnel record bound to one branch. UserID is a weak
// reference to an identity: it is used for role/branch resolution only, and
// deleting the User does not cascade here — payroll history outlives accounts.
type Employee struct {
	ID        uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	BranchID  uuid.UUID        `gorm:"type:uuid;not null;index" json:"branch_id"`
	Branch    Branch           `gorm:"foreignKey:BranchID" json:"-"`
	UserID    *uuid.UUID       `gorm:"type:uuid;index" json:"user_id"`
	Name      string           `gorm:"type:varchar(100);not null" json:"name"`
	Email     string           `gorm:"type:varchar(255)" json:"email"`
	Phone     string           `gorm:"type:varchar(20)" json:"phone"`
	Position  string           `gorm:"type:varchar(100);not null" json:"position"`
	Salary    *decimal.Decimal `gorm:"type:decimal(12,2)" json:"salary"`
	HireDate  *time.Time       `gorm:"type:date" json:"hire_date"`
	Status    string           `gorm:"type:varchar(20);default:'active';not null" json:"status"`
	CreatedAt time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

// BeforeCreate fills the ID on engines without a uuid column default.
func (e *Employee) BeforeCreate(*gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// ValidEmployeeStatus reports whether s is a known employee status.
func ValidEmployeeStatus(s string) bool {
	switch s {
	case EmployeeActive, EmployeeInactive, EmployeeVacation:
		return true
	}
	return false
}
