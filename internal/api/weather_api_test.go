package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcheng-dev/sportlog/internal/api/handlers"
	"github.com/jcheng-dev/sportlog/internal/weather"
)

func TestWeatherDegradesWithoutProvider(t *testing.T) {
	handler := setupTestRouter(t)
	token := registerAndLogin(t, handler, "alice", "secret1")

	original := handlers.WeatherClient
	handlers.WeatherClient = weather.NewClient("")
	t.Cleanup(func() { handlers.WeatherClient = original })

	rec := doJSON(t, handler, http.MethodGet, "/api/weather", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	snapshot := decodeData(t, rec).(map[string]any)
	assert.Equal(t, "台北", snapshot["station"])
	assert.Equal(t, "unavailable", snapshot["condition"])
	assert.Nil(t, snapshot["temperatureC"])
}

func TestWeatherResolvesNearestStation(t *testing.T) {
	handler := setupTestRouter(t)
	token := registerAndLogin(t, handler, "alice", "secret1")

	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/observations", r.URL.Path)
		assert.Equal(t, "高雄", r.URL.Query().Get("station"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"records":[{"station":"高雄","weather":"Sunny","temperature":31.5,"humidity":68,"obsTime":"2024-07-01 14:00"}]}`))
	}))
	t.Cleanup(provider.Close)

	original := handlers.WeatherClient
	handlers.WeatherClient = weather.NewClient(provider.URL)
	t.Cleanup(func() { handlers.WeatherClient = original })

	// Coordinates near Kaohsiung pick that station over the default.
	rec := doJSON(t, handler, http.MethodGet, "/api/weather?lat=22.63&lon=120.30", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	snapshot := decodeData(t, rec).(map[string]any)
	assert.Equal(t, "高雄", snapshot["station"])
	assert.Equal(t, "Sunny", snapshot["condition"])
	assert.Equal(t, 31.5, snapshot["temperatureC"])
	assert.Equal(t, 0.68, snapshot["humidity"])
	assert.Equal(t, "2024-07-01 14:00", snapshot["observedAt"])
}
