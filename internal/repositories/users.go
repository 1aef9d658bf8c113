package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jcheng-dev/sportlog/internal/models"
)

// CreateUser stores a new account. Username uniqueness is case-sensitive
// and exact; the caller is expected to have trimmed the username already.
func CreateUser(username, passwordHash, displayName string) (*models.User, error) {
	var existing models.User
	err := DB.Where("username = ?", username).First(&existing).Error
	if err == nil {
		return nil, ErrDuplicate
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := models.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: passwordHash,
		DisplayName:  displayName,
	}
	if err := DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByUsername(username string) (*models.User, error) {
	var user models.User
	err := DB.Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func FindUserByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	err := DB.Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UsernameAvailable is a pure read used by the availability check endpoint.
func UsernameAvailable(username string) (bool, error) {
	var count int64
	if err := DB.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return false, err
	}
	return count == 0, nil
}

func UpdatePasswordHash(userID uuid.UUID, passwordHash string) error {
	res := DB.Model(&models.User{}).Where("id = ?", userID).Update("password_hash", passwordHash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteUser removes the account and everything hanging off it: owned
// activities with their likes/comments, likes/comments the user left on
// other people's activities, and all sessions. The cascade is explicit so
// it behaves identically on postgres and the sqlite test driver.
func DeleteUser(userID uuid.UUID) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		// Fresh subquery per statement; gorm subqueries are single-use.
		owned := func() *gorm.DB {
			return tx.Model(&models.Activity{}).Select("id").Where("owner_id = ?", userID)
		}

		if err := tx.Where("user_id = ? OR activity_id IN (?)", userID, owned()).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR activity_id IN (?)", userID, owned()).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		if err := tx.Where("owner_id = ?", userID).Delete(&models.Activity{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.Session{}).Error; err != nil {
			return err
		}

		res := tx.Where("id = ?", userID).Delete(&models.User{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return nil
	})
}
