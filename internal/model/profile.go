package model

import (
	"time"

	"github.com/google/uuid"
)

// Profile carries display data for a user. It shares the user's ID and is
// created lazily on first read with sensible defaults.
type Profile struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	FullName    string    `gorm:"type:varchar(100)" json:"full_name"`
	CompanyName string    `gorm:"type:varchar(100)" json:"company_name"`
	Phone       string    `gorm:"type:varchar(20)" json:"phone"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
