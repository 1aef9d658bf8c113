package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jcheng-dev/sportlog/internal/models"
	"github.com/jcheng-dev/sportlog/internal/utils"
)

// 256-bit tokens; long enough that collisions and guessing are non-issues.
const sessionTokenBytes = 32

// IssueSession creates a session for the user and returns its bearer token.
// A store write failure means no session exists; the error must surface.
func IssueSession(userID uuid.UUID) (string, error) {
	token, err := utils.GenerateSecureToken(sessionTokenBytes)
	if err != nil {
		return "", err
	}

	session := models.Session{
		Token:  token,
		UserID: userID,
	}
	if err := DB.Create(&session).Error; err != nil {
		return "", err
	}
	return token, nil
}

// ResolveSession returns the user a token belongs to, or ErrNotFound for
// unknown (including revoked) tokens. There is no expiry check; sessions
// live until explicitly revoked.
func ResolveSession(token string) (uuid.UUID, error) {
	var session models.Session
	err := DB.Where("token = ?", token).First(&session).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return uuid.Nil, ErrNotFound
	}
	if err != nil {
		return uuid.Nil, err
	}
	return session.UserID, nil
}

// RevokeSessions deletes every session for the user. Idempotent: revoking
// with none outstanding is a no-op.
func RevokeSessions(userID uuid.UUID) error {
	return DB.Where("user_id = ?", userID).Delete(&models.Session{}).Error
}
