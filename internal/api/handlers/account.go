package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"golang.org/x/crypto/bcrypt"

	"github.com/jcheng-dev/sportlog/internal/api/middleware"
	"github.com/jcheng-dev/sportlog/internal/repositories"
	"github.com/jcheng-dev/sportlog/internal/utils"
)

// PUT /api/user/password
func ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	var input struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.CurrentPassword == "" || input.NewPassword == "" {
		utils.JSONError(w, http.StatusBadRequest, "currentPassword and newPassword are required fields.")
		return
	}
	if len(input.NewPassword) < minPasswordLength {
		utils.JSONError(w, http.StatusBadRequest, "New password must be at least 6 characters long.")
		return
	}

	user, err := repositories.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.JSONError(w, http.StatusNotFound, "User not found.")
			return
		}
		log.Printf("password change lookup failed: %v", err)
		utils.JSONError(w, http.StatusInternalServerError, "Server error during password update.")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.CurrentPassword)) != nil {
		utils.JSONError(w, http.StatusUnauthorized, "Current password is incorrect.")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("password hash failed: %v", err)
		utils.JSONError(w, http.StatusInternalServerError, "Server error during password update.")
		return
	}

	if err := repositories.UpdatePasswordHash(userID, string(hash)); err != nil {
		log.Printf("password update failed: %v", err)
		utils.JSONError(w, http.StatusInternalServerError, "Server error during password update.")
		return
	}

	// Every outstanding session dies with the old password.
	if err := repositories.RevokeSessions(userID); err != nil {
		log.Printf("session revocation failed: %v", err)
		utils.JSONError(w, http.StatusInternalServerError, "Server error during password update.")
		return
	}

	utils.JSONData(w, http.StatusOK, map[string]any{
		"message": "Password updated successfully. Please log in again.",
	})
}

// DELETE /api/user
func DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	var input struct {
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil || input.Password == "" {
		utils.JSONError(w, http.StatusBadRequest, "Password is required to delete account.")
		return
	}

	user, err := repositories.FindUserByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.JSONError(w, http.StatusNotFound, "User not found.")
			return
		}
		log.Printf("account deletion lookup failed: %v", err)
		utils.JSONError(w, http.StatusInternalServerError, "Server error during account deletion.")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		utils.JSONError(w, http.StatusUnauthorized, "Password is incorrect.")
		return
	}

	if err := repositories.DeleteUser(userID); err != nil {
		log.Printf("account deletion failed: %v", err)
		utils.JSONError(w, http.StatusInternalServerError, "Server error during account deletion.")
		return
	}

	utils.JSONData(w, http.StatusOK, map[string]any{
		"message": "Account deleted successfully.",
	})
}
