package handlers

import (
	"net/http"
	"strconv"

	"github.com/jcheng-dev/sportlog/internal/api/middleware"
	"github.com/jcheng-dev/sportlog/internal/config"
	"github.com/jcheng-dev/sportlog/internal/utils"
	"github.com/jcheng-dev/sportlog/internal/weather"
)

// WeatherClient talks to the external observation provider. Exposed so
// tests can point it at a stub server.
var WeatherClient = weather.NewClient(config.Envs.Weather.ProviderURL)

// GET /api/weather
// GetWeather godoc
// @Summary Current conditions at the nearest station
// @Description Best-effort: a dead provider yields a degraded snapshot, never an error
// @Tags Weather
// @Produce json
// @Security BearerAuth
// @Param lat query number false "Caller latitude"
// @Param lon query number false "Caller longitude"
// @Success 200 {object} map[string]any
// @Router /api/weather [get]
func GetWeather(w http.ResponseWriter, r *http.Request) {
	if _, ok := middleware.UserID(r.Context()); !ok {
		utils.JSONError(w, http.StatusUnauthorized, "Unauthorized.")
		return
	}

	station := config.Envs.Weather.DefaultStation
	lat, latErr := strconv.ParseFloat(r.URL.Query().Get("lat"), 64)
	lon, lonErr := strconv.ParseFloat(r.URL.Query().Get("lon"), 64)
	if latErr == nil && lonErr == nil {
		station = weather.NearestStation(lat, lon)
	}

	snapshot := WeatherClient.Current(r.Context(), station)
	utils.JSONData(w, http.StatusOK, snapshot)
}
