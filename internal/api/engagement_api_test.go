package api

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createPublicActivity(t *testing.T, handler http.Handler, token string) string {
	t.Helper()

	rec := doJSON(t, handler, http.MethodPost, "/api/activities", token, map[string]any{
		"date":            "2024-05-10",
		"sport":           "Swim",
		"durationMinutes": 45,
		"isPublic":        true,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decodeData(t, rec).(map[string]any)["id"].(string)
}

func TestLikeFlow(t *testing.T) {
	handler := setupTestRouter(t)
	aliceToken := registerAndLogin(t, handler, "alice", "secret1")
	bobToken := registerAndLogin(t, handler, "bob", "secret2")
	activityID := createPublicActivity(t, handler, aliceToken)

	rec := doJSON(t, handler, http.MethodPost, "/api/activities/"+activityID+"/like", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, float64(1), decodeData(t, rec).(map[string]any)["likeCount"])

	// Liking twice is an error, not a no-op.
	rec = doJSON(t, handler, http.MethodPost, "/api/activities/"+activityID+"/like", bobToken, nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Already liked this activity.", decodeError(t, rec))

	// Like status is per requesting user.
	rec = doJSON(t, handler, http.MethodGet, "/api/activities/"+activityID+"/likes", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	status := decodeData(t, rec).(map[string]any)
	assert.Equal(t, float64(1), status["likeCount"])
	assert.Equal(t, true, status["userLiked"])

	rec = doJSON(t, handler, http.MethodGet, "/api/activities/"+activityID+"/likes", aliceToken, nil)
	status = decodeData(t, rec).(map[string]any)
	assert.Equal(t, float64(1), status["likeCount"])
	assert.Equal(t, false, status["userLiked"])

	rec = doJSON(t, handler, http.MethodDelete, "/api/activities/"+activityID+"/like", bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, float64(0), decodeData(t, rec).(map[string]any)["likeCount"])

	// Unliking without a like behaves like a missing resource.
	rec = doJSON(t, handler, http.MethodDelete, "/api/activities/"+activityID+"/like", bobToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Like not found.", decodeError(t, rec))

	rec = doJSON(t, handler, http.MethodPost, "/api/activities/"+uuid.NewString()+"/like", bobToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Activity not found.", decodeError(t, rec))
}

func TestCommentFlow(t *testing.T) {
	handler := setupTestRouter(t)
	aliceToken := registerAndLogin(t, handler, "alice", "secret1")
	bobToken := registerAndLogin(t, handler, "bob", "secret2")
	activityID := createPublicActivity(t, handler, aliceToken)

	rec := doJSON(t, handler, http.MethodPost, "/api/activities/"+activityID+"/comments", bobToken, map[string]any{
		"content": "Nice pace!",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	comment := decodeData(t, rec).(map[string]any)
	commentID := comment["id"].(string)
	assert.Equal(t, "Nice pace!", comment["content"])
	assert.Equal(t, "bob", comment["userName"])
	assert.Equal(t, "bob", comment["userDisplayName"])

	// Blank content is rejected.
	rec = doJSON(t, handler, http.MethodPost, "/api/activities/"+activityID+"/comments", bobToken, map[string]any{
		"content": "   ",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "Comment content is required.", decodeError(t, rec))

	rec = doJSON(t, handler, http.MethodGet, "/api/activities/"+activityID+"/comments", aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	comments := decodeData(t, rec).([]any)
	require.Len(t, comments, 1)
	assert.Equal(t, commentID, comments[0].(map[string]any)["id"])

	// Only the author may delete, even on the owner's activity.
	rec = doJSON(t, handler, http.MethodDelete, "/api/comments/"+commentID, aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "You can only delete your own comments.", decodeError(t, rec))

	rec = doJSON(t, handler, http.MethodDelete, "/api/comments/"+commentID, bobToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodDelete, "/api/comments/"+commentID, bobToken, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Comment not found.", decodeError(t, rec))

	rec = doJSON(t, handler, http.MethodGet, "/api/activities/"+activityID+"/comments", aliceToken, nil)
	assert.Empty(t, decodeData(t, rec).([]any))
}
