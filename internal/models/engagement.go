package models

import (
	"time"

	"github.com/google/uuid"
)

// Like records one user liking one activity. The composite unique index is
// what enforces "at most one like per (activity, user)".
type Like struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ActivityID uuid.UUID `json:"activityId" gorm:"type:uuid;not null;uniqueIndex:idx_likes_activity_user"`
	UserID     uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_likes_activity_user"`
	CreatedAt  time.Time `json:"createdAt" gorm:"autoCreateTime"`
}

type Comment struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey"`
	ActivityID uuid.UUID `json:"activityId" gorm:"type:uuid;index;not null"`
	UserID     uuid.UUID `json:"userId" gorm:"type:uuid;index;not null"`
	Content    string    `json:"content" gorm:"not null"`
	CreatedAt  time.Time `json:"createdAt" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updatedAt" gorm:"autoUpdateTime"`
}
