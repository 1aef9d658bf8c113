package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangePasswordRevokesSessions(t *testing.T) {
	handler := setupTestRouter(t)
	token := registerAndLogin(t, handler, "alice", "secret1")

	rec := doJSON(t, handler, http.MethodPut, "/api/user/password", token, map[string]any{
		"currentPassword": "wrong",
		"newPassword":     "secret2",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Current password is incorrect.", decodeError(t, rec))

	rec = doJSON(t, handler, http.MethodPut, "/api/user/password", token, map[string]any{
		"currentPassword": "secret1",
		"newPassword":     "short",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, handler, http.MethodPut, "/api/user/password", token, map[string]any{
		"currentPassword": "secret1",
		"newPassword":     "secret2",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// The old token died with the old password.
	rec = doJSON(t, handler, http.MethodGet, "/api/activities", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// The old password no longer logs in, the new one does.
	rec = doJSON(t, handler, http.MethodPost, "/api/login", "", map[string]any{
		"username": "alice",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/api/login", "", map[string]any{
		"username": "alice",
		"password": "secret2",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	newToken := decodeData(t, rec).(map[string]any)["token"].(string)

	rec = doJSON(t, handler, http.MethodGet, "/api/activities", newToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestDeleteAccount(t *testing.T) {
	handler := setupTestRouter(t)
	aliceToken := registerAndLogin(t, handler, "alice", "secret1")
	bobToken := registerAndLogin(t, handler, "bob", "secret2")
	activityID := createPublicActivity(t, handler, aliceToken)

	// Bob engages with alice's activity before she leaves.
	rec := doJSON(t, handler, http.MethodPost, "/api/activities/"+activityID+"/like", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodDelete, "/api/user", aliceToken, map[string]any{
		"password": "bad",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Password is incorrect.", decodeError(t, rec))

	rec = doJSON(t, handler, http.MethodDelete, "/api/user", aliceToken, map[string]any{
		"password": "secret1",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// Her credentials and sessions are gone.
	rec = doJSON(t, handler, http.MethodPost, "/api/login", "", map[string]any{
		"username": "alice",
		"password": "secret1",
	})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	rec = doJSON(t, handler, http.MethodGet, "/api/activities", aliceToken, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// And so are her activities, from everyone's feed.
	rec = doJSON(t, handler, http.MethodGet, "/api/activities/public", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeData(t, rec).([]any))

	// The username frees up for re-registration.
	rec = doJSON(t, handler, http.MethodGet, "/api/check-username?username=alice", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decodeData(t, rec).(map[string]any)["available"])
}
