package model

import (
	"time"

	"github.com/google/uuid"
)

// Candidate device table names. The registry reads the canonical table
// first and falls back to the legacy name left behind by an earlier schema
// migration.
const (
	DeviceTableName       = "user_devices"
	DeviceLegacyTableName = "device_tokens"
)

// UserDeviceModel is the GORM-specific struct shared by both candidate
// device tables. IsActive is a pointer so a NULL column value can be told
// apart from an explicit false: only explicit false excludes a row from
// delivery.
type UserDeviceModel struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	UserID     uuid.UUID `gorm:"type:uuid;not null;index"`
	PushToken  string    `gorm:"type:varchar(255);not null"`
	DeviceType string    `gorm:"type:varchar(50)"`
	IsActive   *bool     `gorm:"default:true"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TableName explicitly sets the canonical table name for GORM.
func (UserDeviceModel) TableName() string {
	return DeviceTableName
}

// Active reports whether the row is eligible for delivery; an absent flag
// counts as active.
func (m *UserDeviceModel) Active() bool {
	return m.IsActive == nil || *m.IsActive
}
