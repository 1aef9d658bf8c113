package handlers

import (
	"net/http"
	"time"

	"github.com/jcheng-dev/sportlog/internal/utils"
)

// GET /api/health
func Health(w http.ResponseWriter, r *http.Request) {
	utils.JSONData(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
