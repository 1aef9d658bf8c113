package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jcheng-dev/sportlog/internal/api/middleware"
	"github.com/jcheng-dev/sportlog/internal/repositories"
	"github.com/jcheng-dev/sportlog/internal/utils"
)

type commentView struct {
	ID              string    `json:"id"`
	Content         string    `json:"content"`
	UserID          string    `json:"userId"`
	UserName        string    `json:"userName"`
	UserDisplayName string    `json:"userDisplayName"`
	CreatedAt       time.Time `json:"createdAt"`
}

func toCommentView(row *repositories.CommentRow) commentView {
	return commentView{
		ID:              row.ID.String(),
		Content:         row.Content,
		UserID:          row.UserID.String(),
		UserName:        row.Username,
		UserDisplayName: row.DisplayName,
		CreatedAt:       row.CreatedAt,
	}
}

// POST /api/activities/{id}/like
func LikeActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	activityID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.JSONError(w, http.StatusNotFound, "Activity not found.")
		return
	}

	count, err := repositories.LikeActivity(activityID, userID)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			utils.JSONError(w, http.StatusNotFound, "Activity not found.")
		case errors.Is(err, repositories.ErrDuplicate):
			utils.JSONError(w, http.StatusBadRequest, "Already liked this activity.")
		default:
			log.Printf("like failed: %v", err)
			utils.JSONError(w, http.StatusInternalServerError, "Server error while liking activity.")
		}
		return
	}

	utils.JSONData(w, http.StatusOK, map[string]any{"likeCount": count})
}

// DELETE /api/activities/{id}/like
func UnlikeActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	activityID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.JSONError(w, http.StatusNotFound, "Like not found.")
		return
	}

	count, err := repositories.UnlikeActivity(activityID, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.JSONError(w, http.StatusNotFound, "Like not found.")
			return
		}
		log.Printf("unlike failed: %v", err)
		utils.JSONError(w, http.StatusInternalServerError, "Server error while unliking activity.")
		return
	}

	utils.JSONData(w, http.StatusOK, map[string]any{"likeCount": count})
}

// GET /api/activities/{id}/likes
func GetLikes(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	activityID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.JSONError(w, http.StatusNotFound, "Activity not found.")
		return
	}

	status, err := repositories.GetLikeStatus(activityID, userID)
	if err != nil {
		log.Printf("like status failed: %v", err)
		utils.JSONError(w, http.StatusInternalServerError, "Server error while fetching likes.")
		return
	}

	utils.JSONData(w, http.StatusOK, map[string]any{
		"likeCount": status.Count,
		"userLiked": status.LikedByUser,
	})
}

// POST /api/activities/{id}/comments
func AddComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	activityID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.JSONError(w, http.StatusNotFound, "Activity not found.")
		return
	}

	var input struct {
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "Comment content is required.")
		return
	}
	content := strings.TrimSpace(input.Content)
	if content == "" {
		utils.JSONError(w, http.StatusBadRequest, "Comment content is required.")
		return
	}

	row, err := repositories.CreateComment(activityID, userID, content)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.JSONError(w, http.StatusNotFound, "Activity not found.")
			return
		}
		log.Printf("add comment failed: %v", err)
		utils.JSONError(w, http.StatusInternalServerError, "Server error while adding comment.")
		return
	}

	utils.JSONData(w, http.StatusCreated, toCommentView(row))
}

// GET /api/activities/{id}/comments
func ListComments(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserID(r.Context()); !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	activityID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.JSONError(w, http.StatusNotFound, "Activity not found.")
		return
	}

	rows, err := repositories.ListComments(activityID)
	if err != nil {
		log.Printf("list comments failed: %v", err)
		utils.JSONError(w, http.StatusInternalServerError, "Server error while listing comments.")
		return
	}

	views := make([]commentView, 0, len(rows))
	for i := range rows {
		views = append(views, toCommentView(&rows[i]))
	}
	utils.JSONData(w, http.StatusOK, views)
}

// DELETE /api/comments/{id}
func DeleteComment(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	commentID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		utils.JSONError(w, http.StatusNotFound, "Comment not found.")
		return
	}

	if err := repositories.DeleteComment(commentID, userID); err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			utils.JSONError(w, http.StatusNotFound, "Comment not found.")
		case errors.Is(err, repositories.ErrNotAuthor):
			utils.JSONError(w, http.StatusForbidden, "You can only delete your own comments.")
		default:
			log.Printf("delete comment failed: %v", err)
			utils.JSONError(w, http.StatusInternalServerError, "Server error while deleting comment.")
		}
		return
	}

	utils.JSONData(w, http.StatusOK, map[string]any{"id": commentID.String()})
}
