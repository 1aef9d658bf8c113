package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcheng-dev/sportlog/internal/models"
)

func TestListOwnActivitiesNewestFirst(t *testing.T) {
	newTestDB(t)
	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	older := &models.Activity{Date: "2024-02-28", Sport: "Swim", DurationMinutes: 40, OwnerID: alice.ID, CreatedAt: base}
	require.NoError(t, CreateActivity(older))
	newer := &models.Activity{Date: "2024-03-01", Sport: "Run", DurationMinutes: 30, OwnerID: alice.ID, CreatedAt: base.Add(time.Minute)}
	require.NoError(t, CreateActivity(newer))
	require.NoError(t, CreateActivity(&models.Activity{Date: "2024-03-01", Sport: "Ride", DurationMinutes: 90, OwnerID: bob.ID}))

	rows, err := ListOwnActivities(alice.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, newer.ID, rows[0].ID)
	assert.Equal(t, older.ID, rows[1].ID)
	assert.Equal(t, "alice display", rows[0].OwnerName)
}

func TestListPublicActivities(t *testing.T) {
	newTestDB(t)
	alice := createTestUser(t, "alice")

	public := &models.Activity{Date: "2024-03-01", Sport: "Run", DurationMinutes: 30, OwnerID: alice.ID, IsPublic: true}
	require.NoError(t, CreateActivity(public))
	require.NoError(t, CreateActivity(&models.Activity{Date: "2024-03-02", Sport: "Swim", DurationMinutes: 20, OwnerID: alice.ID}))

	rows, err := ListPublicActivities()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, public.ID, rows[0].ID)
	assert.Equal(t, "alice display", rows[0].OwnerName)
}

func TestUpdateActivityMergesAbsenceAndOwnership(t *testing.T) {
	newTestDB(t)
	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")

	activity := &models.Activity{Date: "2024-03-01", Sport: "Run", DurationMinutes: 30, OwnerID: alice.ID}
	require.NoError(t, CreateActivity(activity))

	changes := ActivityChanges{Date: "2024-03-02", Sport: "Trail run", DurationMinutes: 45, Intensity: "hard"}

	// A non-owner sees exactly the same error as if the record did not
	// exist; the distinction must not leak.
	_, err := UpdateActivity(activity.ID, bob.ID, changes)
	assert.ErrorIs(t, err, ErrNotFound)

	updated, err := UpdateActivity(activity.ID, alice.ID, changes)
	require.NoError(t, err)
	assert.Equal(t, "Trail run", updated.Sport)
	assert.Equal(t, 45, updated.DurationMinutes)
	assert.Equal(t, "2024-03-02", updated.Date)
}

func TestUpdateActivityKeepsPhotoWhenNoneSupplied(t *testing.T) {
	newTestDB(t)
	alice := createTestUser(t, "alice")

	activity := &models.Activity{
		Date: "2024-03-01", Sport: "Run", DurationMinutes: 30, OwnerID: alice.ID,
		Photo: []byte{0x89, 0x50, 0x4e, 0x47}, PhotoType: "image/png",
	}
	require.NoError(t, CreateActivity(activity))

	updated, err := UpdateActivity(activity.ID, alice.ID, ActivityChanges{
		Date: "2024-03-01", Sport: "Run", DurationMinutes: 35, Intensity: "moderate",
	})
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 0x50, 0x4e, 0x47}, updated.Photo)
	assert.Equal(t, "image/png", updated.PhotoType)

	replaced, err := UpdateActivity(activity.ID, alice.ID, ActivityChanges{
		Date: "2024-03-01", Sport: "Run", DurationMinutes: 35, Intensity: "moderate",
		Photo: []byte{0xff, 0xd8}, PhotoType: "image/jpeg",
	})
	require.NoError(t, err)
	assert.Equal(t, []byte{0xff, 0xd8}, replaced.Photo)
	assert.Equal(t, "image/jpeg", replaced.PhotoType)
}

func TestDeleteActivityCascadesEngagement(t *testing.T) {
	newTestDB(t)
	alice := createTestUser(t, "alice")
	bob := createTestUser(t, "bob")

	activity := &models.Activity{Date: "2024-03-01", Sport: "Run", DurationMinutes: 30, OwnerID: alice.ID, IsPublic: true}
	require.NoError(t, CreateActivity(activity))

	_, err := LikeActivity(activity.ID, bob.ID)
	require.NoError(t, err)
	_, err = CreateComment(activity.ID, bob.ID, "nice one")
	require.NoError(t, err)

	// Only the owner can delete.
	assert.ErrorIs(t, DeleteActivity(activity.ID, bob.ID), ErrNotFound)
	require.NoError(t, DeleteActivity(activity.ID, alice.ID))

	var likes, comments int64
	require.NoError(t, DB.Model(&models.Like{}).Where("activity_id = ?", activity.ID).Count(&likes).Error)
	require.NoError(t, DB.Model(&models.Comment{}).Where("activity_id = ?", activity.ID).Count(&comments).Error)
	assert.Zero(t, likes)
	assert.Zero(t, comments)
}

func TestDateRoundTripsUnchanged(t *testing.T) {
	newTestDB(t)
	alice := createTestUser(t, "alice")

	activity := &models.Activity{Date: "2024-03-05", Sport: "Run", DurationMinutes: 30, OwnerID: alice.ID}
	require.NoError(t, CreateActivity(activity))

	rows, err := ListOwnActivities(alice.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	// The calendar date is stored as-is, never as an instant, so it can
	// not shift with the server's time zone.
	assert.Equal(t, "2024-03-05", rows[0].Date)
}
