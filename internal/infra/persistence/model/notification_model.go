package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// NotificationModel is the GORM-specific struct for the 'notifications' table.
// It represents one user-facing notification stored in the hosted backend.
type NotificationModel struct {
	ID        uuid.UUID         `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID    uuid.UUID         `gorm:"type:uuid;not null;index"`
	Title     string            `gorm:"type:text;not null"`
	Body      string            `gorm:"type:text;not null"`
	Type      string            `gorm:"type:varchar(50);not null;default:'info'"`
	Category  string            `gorm:"type:varchar(50)"`
	Read      bool              `gorm:"not null;default:false"`
	Data      datatypes.JSONMap `gorm:"type:jsonb"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (NotificationModel) TableName() string {
	return "notifications"
}
