package repositories

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jcheng-dev/sportlog/internal/models"
)

// CommentRow is a comment annotated with its author's identity, as shown in
// comment listings.
type CommentRow struct {
	models.Comment
	Username    string
	DisplayName string
}

// LikeStatus reports how many likes an activity has and whether the caller
// is among them. Pure read.
type LikeStatus struct {
	Count       int64
	LikedByUser bool
}

// LikeActivity records a like and returns the activity's new like count.
// Fails with ErrNotFound if the activity does not exist and ErrDuplicate if
// the caller already liked it.
func LikeActivity(activityID, userID uuid.UUID) (int64, error) {
	var count int64
	err := DB.Transaction(func(tx *gorm.DB) error {
		exists, err := activityExists(tx, activityID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}

		var existing int64
		if err := tx.Model(&models.Like{}).
			Where("activity_id = ? AND user_id = ?", activityID, userID).
			Count(&existing).Error; err != nil {
			return err
		}
		if existing > 0 {
			return ErrDuplicate
		}

		like := models.Like{
			ID:         uuid.New(),
			ActivityID: activityID,
			UserID:     userID,
		}
		if err := tx.Create(&like).Error; err != nil {
			return err
		}

		return tx.Model(&models.Like{}).Where("activity_id = ?", activityID).Count(&count).Error
	})
	return count, err
}

// UnlikeActivity removes the caller's like and returns the updated count.
// Fails with ErrNotFound when no matching like exists.
func UnlikeActivity(activityID, userID uuid.UUID) (int64, error) {
	var count int64
	err := DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Where("activity_id = ? AND user_id = ?", activityID, userID).Delete(&models.Like{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrNotFound
		}
		return tx.Model(&models.Like{}).Where("activity_id = ?", activityID).Count(&count).Error
	})
	return count, err
}

func GetLikeStatus(activityID, userID uuid.UUID) (*LikeStatus, error) {
	var status LikeStatus
	if err := DB.Model(&models.Like{}).Where("activity_id = ?", activityID).Count(&status.Count).Error; err != nil {
		return nil, err
	}
	var mine int64
	if err := DB.Model(&models.Like{}).
		Where("activity_id = ? AND user_id = ?", activityID, userID).
		Count(&mine).Error; err != nil {
		return nil, err
	}
	status.LikedByUser = mine > 0
	return &status, nil
}

// CreateComment stores a comment against an existing activity and returns
// it annotated with the author's identity. Content is expected to be
// trimmed and non-empty by the caller.
func CreateComment(activityID, userID uuid.UUID, content string) (*CommentRow, error) {
	var row CommentRow
	err := DB.Transaction(func(tx *gorm.DB) error {
		exists, err := activityExists(tx, activityID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}

		comment := models.Comment{
			ID:         uuid.New(),
			ActivityID: activityID,
			UserID:     userID,
			Content:    content,
		}
		if err := tx.Create(&comment).Error; err != nil {
			return err
		}

		var author models.User
		if err := tx.Where("id = ?", userID).First(&author).Error; err != nil {
			return err
		}

		row = CommentRow{
			Comment:     comment,
			Username:    author.Username,
			DisplayName: author.DisplayName,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// ListComments returns an activity's comments oldest first, each with the
// author's identity.
func ListComments(activityID uuid.UUID) ([]CommentRow, error) {
	var rows []CommentRow
	err := DB.Model(&models.Comment{}).
		Select("comments.*, users.username AS username, users.display_name AS display_name").
		Joins("JOIN users ON users.id = comments.user_id").
		Where("comments.activity_id = ?", activityID).
		Order("comments.created_at ASC").
		Scan(&rows).Error
	return rows, err
}

// DeleteComment removes a comment, but only for its author. Unlike the
// activity rules, a non-author gets ErrNotAuthor rather than a masked
// not-found; comment existence is not treated as sensitive.
func DeleteComment(commentID, callerID uuid.UUID) error {
	var comment models.Comment
	err := DB.Where("id = ?", commentID).First(&comment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if comment.UserID != callerID {
		return ErrNotAuthor
	}
	return DB.Delete(&comment).Error
}
