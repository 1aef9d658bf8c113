package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jcheng-dev/sportlog/internal/models"
)

// ActivityRow is an activity annotated with its owner's display name, as
// produced by the listing joins.
type ActivityRow struct {
	models.Activity
	OwnerName string
}

// ActivityChanges carries the replacement values for an update. A nil Photo
// means "keep the stored photo"; a non-nil one replaces it together with
// its media type.
type ActivityChanges struct {
	Date            string
	Sport           string
	DurationMinutes int
	Intensity       string
	Notes           string
	IsPublic        bool
	Photo           []byte
	PhotoType       string
}

func CreateActivity(activity *models.Activity) error {
	activity.ID = uuid.New()
	return DB.Create(activity).Error
}

// ListOwnActivities returns the caller's activities, newest-created first.
func ListOwnActivities(ownerID uuid.UUID) ([]ActivityRow, error) {
	var rows []ActivityRow
	err := DB.Model(&models.Activity{}).
		Select("activities.*, users.display_name AS owner_name").
		Joins("JOIN users ON users.id = activities.owner_id").
		Where("activities.owner_id = ?", ownerID).
		Order("activities.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

// ListPublicActivities returns every public activity regardless of owner,
// newest-created first.
func ListPublicActivities() ([]ActivityRow, error) {
	var rows []ActivityRow
	err := DB.Model(&models.Activity{}).
		Select("activities.*, users.display_name AS owner_name").
		Joins("JOIN users ON users.id = activities.owner_id").
		Where("activities.is_public = ?", true).
		Order("activities.created_at DESC").
		Scan(&rows).Error
	return rows, err
}

// UpdateActivity replaces an activity owned by callerID. Absence and
// non-ownership both come back as ErrNotFound so that callers cannot probe
// for other users' private records.
func UpdateActivity(activityID, callerID uuid.UUID, changes ActivityChanges) (*models.Activity, error) {
	var activity models.Activity
	err := DB.Where("id = ? AND owner_id = ?", activityID, callerID).First(&activity).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	activity.Date = changes.Date
	activity.Sport = changes.Sport
	activity.DurationMinutes = changes.DurationMinutes
	activity.Intensity = changes.Intensity
	activity.Notes = changes.Notes
	activity.IsPublic = changes.IsPublic
	if changes.Photo != nil {
		activity.Photo = changes.Photo
		activity.PhotoType = changes.PhotoType
	}

	if err := DB.Save(&activity).Error; err != nil {
		return nil, err
	}
	return &activity, nil
}

// DeleteActivity removes an activity owned by callerID along with its likes
// and comments, under the same merged not-found/not-owner rule as update.
func DeleteActivity(activityID, callerID uuid.UUID) error {
	return DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND owner_id = ?", activityID, callerID).Delete(&models.Activity{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		if err := tx.Where("activity_id = ?", activityID).Delete(&models.Like{}).Error; err != nil {
			return err
		}
		return tx.Where("activity_id = ?", activityID).Delete(&models.Comment{}).Error
	})
}

func activityExists(db *gorm.DB, activityID uuid.UUID) (bool, error) {
	var count int64
	if err := db.Model(&models.Activity{}).Where("id = ?", activityID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
