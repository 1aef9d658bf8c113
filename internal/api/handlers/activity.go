package handlers

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jcheng-dev/sportlog/internal/api/middleware"
	"github.com/jcheng-dev/sportlog/internal/models"
	"github.com/jcheng-dev/sportlog/internal/repositories"
	"github.com/jcheng-dev/sportlog/internal/utils"
)

const maxPhotoBytes = 5 << 20 // 5 MB

type activityView struct {
	ID              string    `json:"id"`
	Date            string    `json:"date"`
	Sport           string    `json:"sport"`
	DurationMinutes int       `json:"durationMinutes"`
	Intensity       string    `json:"intensity"`
	Notes           string    `json:"notes"`
	PhotoURL        string    `json:"photoUrl"`
	IsPublic        bool      `json:"isPublic"`
	OwnerID         string    `json:"ownerId"`
	OwnerName       string    `json:"ownerName,omitempty"`
	IsOwner         *bool     `json:"isOwner,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

func toActivityView(a *models.Activity, ownerName string) activityView {
	return activityView{
		ID:              a.ID.String(),
		Date:            a.Date,
		Sport:           a.Sport,
		DurationMinutes: a.DurationMinutes,
		Intensity:       a.Intensity,
		Notes:           a.Notes,
		PhotoURL:        photoDataURI(a.Photo, a.PhotoType),
		IsPublic:        a.IsPublic,
		OwnerID:         a.OwnerID.String(),
		OwnerName:       ownerName,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// photoDataURI renders the inline blob the way the web client consumes it:
// a self-describing data URI. Empty when no photo is stored.
func photoDataURI(photo []byte, mediaType string) string {
	if len(photo) == 0 {
		return ""
	}
	return fmt.Sprintf("data:%s;base64,%s", mediaType, base64.StdEncoding.EncodeToString(photo))
}

// activityPayload is the decoded, validated create/update input. photo is
// nil when the request carried none, which on update means "keep it".
type activityPayload struct {
	date      string
	sport     string
	duration  int
	intensity string
	notes     string
	isPublic  bool
	photo     []byte
	photoType string
}

// readActivityPayload decodes either a JSON body or a multipart form with an
// optional "photo" file field. On failure it writes the error response and
// returns false.
func readActivityPayload(w http.ResponseWriter, r *http.Request, defaultPublic bool) (*activityPayload, bool) {
	var (
		date, sport, intensity, notes string
		rawDuration, rawPublic        any
		photo                         []byte
		photoType                     string
	)

	if strings.Contains(r.Header.Get("Content-Type"), "multipart/form-data") {
		if err := r.ParseMultipartForm(maxPhotoBytes + 1<<20); err != nil {
			utils.JSONError(w, http.StatusBadRequest, "Invalid upload form.")
			return nil, false
		}
		date = r.FormValue("date")
		sport = r.FormValue("sport")
		intensity = r.FormValue("intensity")
		notes = r.FormValue("notes")
		if v := r.FormValue("durationMinutes"); v != "" {
			rawDuration = v
		}
		if v := r.FormValue("isPublic"); v != "" {
			rawPublic = v
		}

		file, header, err := r.FormFile("photo")
		switch {
		case errors.Is(err, http.ErrMissingFile):
			// no photo supplied
		case err != nil:
			utils.JSONError(w, http.StatusBadRequest, "Upload failed.")
			return nil, false
		default:
			defer file.Close()
			if header.Size > maxPhotoBytes {
				utils.JSONError(w, http.StatusBadRequest, "Photo must be smaller than 5 MB.")
				return nil, false
			}
			photoType = header.Header.Get("Content-Type")
			if !strings.HasPrefix(photoType, "image/") {
				utils.JSONError(w, http.StatusBadRequest, "Only image uploads are allowed.")
				return nil, false
			}
			photo, err = io.ReadAll(io.LimitReader(file, maxPhotoBytes+1))
			if err != nil {
				utils.JSONError(w, http.StatusBadRequest, "Upload failed.")
				return nil, false
			}
			if len(photo) > maxPhotoBytes {
				utils.JSONError(w, http.StatusBadRequest, "Photo must be smaller than 5 MB.")
				return nil, false
			}
		}
	} else {
		var body struct {
			Date            string `json:"date"`
			Sport           string `json:"sport"`
			DurationMinutes any    `json:"durationMinutes"`
			Intensity       string `json:"intensity"`
			Notes           string `json:"notes"`
			IsPublic        any    `json:"isPublic"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			utils.JSONError(w, http.StatusBadRequest, "date, sport, and durationMinutes are required fields.")
			return nil, false
		}
		date = body.Date
		sport = body.Sport
		intensity = body.Intensity
		notes = body.Notes
		rawDuration = body.DurationMinutes
		rawPublic = body.IsPublic
	}

	normalizedDate, ok := normalizeDate(date)
	if date == "" || sport == "" || rawDuration == nil {
		utils.JSONError(w, http.StatusBadRequest, "date, sport, and durationMinutes are required fields.")
		return nil, false
	}
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "date must be a YYYY-MM-DD calendar date.")
		return nil, false
	}

	duration, ok := coerceDuration(rawDuration)
	if !ok {
		utils.JSONError(w, http.StatusBadRequest, "durationMinutes must be a positive number.")
		return nil, false
	}

	if intensity == "" {
		intensity = "moderate"
	}

	return &activityPayload{
		date:      normalizedDate,
		sport:     sport,
		duration:  duration,
		intensity: intensity,
		notes:     notes,
		isPublic:  parseBooleanFlag(rawPublic, defaultPublic),
		photo:     photo,
		photoType: photoType,
	}, true
}

// normalizeDate reduces the input to a YYYY-MM-DD calendar string. The date
// is never interpreted as an instant, so the stored day cannot shift with
// the server's time zone.
func normalizeDate(value string) (string, bool) {
	if len(value) < 10 {
		return "", false
	}
	day := value[:10]
	if _, err := time.Parse("2006-01-02", day); err != nil {
		return "", false
	}
	return day, true
}

// coerceDuration accepts the JSON number or string encodings of a duration
// and requires a positive whole number of minutes.
func coerceDuration(value any) (int, bool) {
	var n float64
	switch v := value.(type) {
	case float64:
		n = v
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		n = parsed
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0, false
		}
		n = parsed
	default:
		return 0, false
	}
	if n <= 0 || n != math.Trunc(n) {
		return 0, false
	}
	return int(n), true
}

// parseBooleanFlag maps the tolerant boolean encoding to a bool: the truthy
// tokens {"true","1","on","yes"} and falsy tokens {"false","0","off","no"}
// are matched case-insensitively; anything else falls back.
func parseBooleanFlag(value any, fallback bool) bool {
	if value == nil {
		return fallback
	}
	if b, ok := value.(bool); ok {
		return b
	}
	switch strings.ToLower(strings.TrimSpace(fmt.Sprint(value))) {
	case "true", "1", "on", "yes":
		return true
	case "false", "0", "off", "no":
		return false
	case "":
		return fallback
	}
	return fallback
}

// GET /api/activities
// ListActivities godoc
// @Summary List the caller's activities
// @Tags Activities
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Router /api/activities [get]
func ListActivities(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	rows, err := repositories.ListOwnActivities(userID)
	if err != nil {
		log.Printf("list activities failed: %v", err)
		utils.JSONError(w, http.StatusInternalServerError, "Server error while listing activities.")
		return
	}

	views := make([]activityView, 0, len(rows))
	for i := range rows {
		views = append(views, toActivityView(&rows[i].Activity, rows[i].OwnerName))
	}
	utils.JSONData(w, http.StatusOK, views)
}

// GET /api/activities/public
// ListPublicActivities godoc
// @Summary List the shared public feed
// @Tags Activities
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]any
// @Router /api/activities/public [get]
func ListPublicActivities(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	rows, err := repositories.ListPublicActivities()
	if err != nil {
		log.Printf("list public feed failed: %v", err)
		utils.JSONError(w, http.StatusInternalServerError, "Server error while listing activities.")
		return
	}

	views := make([]activityView, 0, len(rows))
	for i := range rows {
		view := toActivityView(&rows[i].Activity, rows[i].OwnerName)
		isOwner := rows[i].OwnerID == userID
		view.IsOwner = &isOwner
		views = append(views, view)
	}
	utils.JSONData(w, http.StatusOK, views)
}

// POST /api/activities
// CreateActivity godoc
// @Summary Record a new activity
// @Description JSON body or multipart form with an optional "photo" image (≤5 MB)
// @Tags Activities
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Success 201 {object} map[string]any
// @Failure 400 {object} map[string]string
// @Router /api/activities [post]
func CreateActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	payload, ok := readActivityPayload(w, r, false)
	if !ok {
		return
	}

	activity := models.Activity{
		Date:            payload.date,
		Sport:           payload.sport,
		DurationMinutes: payload.duration,
		Intensity:       payload.intensity,
		Notes:           payload.notes,
		Photo:           payload.photo,
		PhotoType:       payload.photoType,
		IsPublic:        payload.isPublic,
		OwnerID:         userID,
	}
	if err := repositories.CreateActivity(&activity); err != nil {
		log.Printf("create activity failed: %v", err)
		utils.JSONError(w, http.StatusInternalServerError, "Server error while creating activity.")
		return
	}

	utils.JSONData(w, http.StatusCreated, toActivityView(&activity, ""))
}

// PUT /api/activities/{id}
// UpdateActivity godoc
// @Summary Update an owned activity
// @Tags Activities
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "Activity ID"
// @Success 200 {object} map[string]any
// @Failure 404 {object} map[string]string
// @Router /api/activities/{id} [put]
func UpdateActivity(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	activityID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		// Malformed IDs get the same answer as someone else's record.
		utils.JSONError(w, http.StatusNotFound, "Activity not found.")
		return
	}

	payload, ok := readActivityPayload(w, r, false)
	if !ok {
		return
	}

	activity, err := repositories.UpdateActivity(activityID, userID, repositories.ActivityChanges{
		Date:            payload.date,
		Sport:           payload.sport,
		DurationMinutes: payload.duration,
		Intensity:       payload.intensity,
		Notes:           payload.notes,
		IsPublic:        payload.isPublic,
		Photo:           payload.photo,
		PhotoType:       payload.photoType,
	})
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.JSONError(w, http.StatusNotFound, "Activity not found.")
			return
		}
		log.Printf("update activity failed: %v", err)
		utils.JSONError(w, http.StatusInternalServerError, "Server error while updating activity.")
		return
	}

	utils.JSONData(w, http.StatusOK, toActivityView(activity, ""))
}

// DELETE /api/activities/{id}
func DeleteActivity(w http.ResponseWriter, r *http.Request) {
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

	if err := repositories.DeleteActivity(activityID, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			utils.JSONError(w, http.StatusNotFound, "Activity not found.")
			return
		}
		log.Printf("delete activity failed: %v", err)
		utils.JSONError(w, http.StatusInternalServerError, "Server error while deleting activity.")
		return
	}

	utils.JSONData(w, http.StatusOK, map[string]any{"id": activityID.String()})
}
