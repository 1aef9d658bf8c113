package models

import (
	"time"

	"github.com/google/uuid"
)

// Session maps an opaque bearer token to a user. Sessions have no expiry;
// they live until revoked on password change or account deletion.
type Session struct {
	Token     string    `json:"token" gorm:"primaryKey"` // secure random token
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;index;not null"`
	CreatedAt time.Time `json:"createdAt" gorm:"autoCreateTime"`
}
