package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jcheng-dev/sportlog/internal/models"
	"github.com/jcheng-dev/sportlog/internal/repositories"
	"github.com/jcheng-dev/sportlog/internal/utils"
)

const minPasswordLength = 6

type userView struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	DisplayName string `json:"displayName"`
}

func sanitizeUser(user *models.User) userView {
	return userView{
		ID:          user.ID.String(),
		Username:    user.Username,
		DisplayName: user.DisplayName,
	}
}

// POST /api/register
func RegisterUser(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username    string `json:"username"`
		Password    string `json:"password"`
		DisplayName string `json:"displayName"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "username and password are required fields.")
		return
	}

	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		utils.JSONError(w, http.StatusBadRequest, "username and password are required fields.")
		return
	}
	if len(input.Password) < minPasswordLength {
		utils.JSONError(w, http.StatusBadRequest, "Password must be at least 6 characters long.")
		return
	}

	displayName := strings.TrimSpace(input.DisplayName)
	if displayName == "" {
		displayName = username
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("password hash failed: %v", err)
		utils.JSONError(w, http.StatusInternalServerError, "Server error during registration.")
		return
	}

	user, err := repositories.CreateUser(username, string(hash), displayName)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			utils.JSONError(w, http.StatusConflict, "Username already exists.")
			return
		}
		log.Printf("create user failed: %v", err)
		utils.JSONError(w, http.StatusInternalServerError, "Server error during registration.")
		return
	}

	utils.JSONData(w, http.StatusCreated, map[string]any{
		"user":    sanitizeUser(user),
		"message": "Registration successful. Please log in.",
	})
}

// GET /api/check-username
func CheckUsername(w http.ResponseWriter, r *http.Request) {
	username := strings.TrimSpace(r.URL.Query().Get("username"))
	if username == "" {
		utils.JSONError(w, http.StatusBadRequest, "Username is required.")
		return
	}

	available, err := repositories.UsernameAvailable(username)
	if err != nil {
		log.Printf("username check failed: %v", err)
		utils.JSONError(w, http.StatusInternalServerError, "Server error during username check.")
		return
	}

	utils.JSONData(w, http.StatusOK, map[string]any{
		"username":  username,
		"available": available,
	})
}

// POST /api/login
func LoginUser(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "username and password are required fields.")
		return
	}

	username := strings.TrimSpace(input.Username)
	if username == "" || input.Password == "" {
		utils.JSONError(w, http.StatusBadRequest, "username and password are required fields.")
		return
	}

	// Unknown username and wrong password answer identically so the
	// endpoint cannot be used to enumerate accounts.
	user, err := repositories.FindUserByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.JSONError(w, http.StatusUnauthorized, "Invalid username or password.")
			return
		}
		log.Printf("login lookup failed: %v", err)
		utils.JSONError(w, http.StatusInternalServerError, "Server error during login.")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)) != nil {
		utils.JSONError(w, http.StatusUnauthorized, "Invalid username or password.")
		return
	}

	token, err := repositories.IssueSession(user.ID)
	if err != nil {
		log.Printf("session issue failed: %v", err)
		utils.JSONError(w, http.StatusInternalServerError, "Server error during login.")
		return
	}

	utils.JSONData(w, http.StatusOK, map[string]any{
		"token": token,
		"user":  sanitizeUser(user),
	})
}
