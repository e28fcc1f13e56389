package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Audit actions
const (
	AuditInsert = "INSERT"
	AuditUpdate = "UPDATE"
	AuditDelete = "DELETE"
)

// Audited table names
const (
	TableBranches  = "branches"
	TableEmployees = "employees"
	TableInventory = "inventory"
)

// AuditLog is an immutable record of a mutation: who did it, what changed, and
// the before/after snapshots. Rows are written in the same transaction as the
// mutation they describe and are never updated or deleted by application code.
type AuditLog struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserEmail string    `gorm:"type:varchar(255);index" json:"user_email"`
	Action    string    `gorm:"type:varchar(20);not null;index" json:"action"`
	TableName string    `gorm:"type:varchar(50);not null;index" json:"table_name"`
	RecordID  string    `gorm:"type:varchar(50);index" json:"record_id"`
	OldData   string    `gorm:"type:jsonb" json:"old_data,omitempty"`
	NewData   string    `gorm:"type:jsonb" json:"new_data,omitempty"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

// BeforeCreate fills the ID on engines without a uuid column default.
func (l *AuditLog) BeforeCreate(*gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	return nil
}
