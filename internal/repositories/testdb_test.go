package repositories

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/jcheng-dev/sportlog/internal/models"
)

// newTestDB points the package-level DB at a fresh sqlite database for the
// duration of one test.
func newTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "sportlog.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	DB = db
}

func createTestUser(t *testing.T, username string) *models.User {
	t.Helper()

	// Repository tests never verify passwords, so a placeholder hash is fine.
	user, err := CreateUser(username, "not-a-real-hash", username+" display")
	require.NoError(t, err)
	return user
}
