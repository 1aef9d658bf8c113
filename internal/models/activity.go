package models

import (
	"time"

	"github.com/google/uuid"
)

type Activity struct {
	ID              uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	Date            string    `json:"date" gorm:"size:10;not null"` // calendar date, YYYY-MM-DD
	Sport           string    `json:"sport" gorm:"not null"`
	DurationMinutes int       `json:"durationMinutes" gorm:"not null"`
	Intensity       string    `json:"intensity" gorm:"default:moderate"`
	Notes           string    `json:"notes"`
	Photo           []byte    `json:"-" gorm:"type:bytea"` // inline blob, serialized as a data URI
	PhotoType       string    `json:"-"`
	IsPublic        bool      `json:"isPublic" gorm:"default:false;index"`
	OwnerID         uuid.UUID `json:"ownerId" gorm:"type:uuid;index;not null"`
	CreatedAt       time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt       time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
