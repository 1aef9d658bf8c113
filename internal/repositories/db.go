package repositories

import (
	"errors"
	"log"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/jcheng-dev/sportlog/internal/config"
	"github.com/jcheng-dev/sportlog/internal/models"
)

var DB *gorm.DB

func ConnectDatabase() {
	dsn := config.Envs.DB_URL
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	if err := Migrate(db); err != nil {
		log.Fatal("Migration failed:", err)
	}
	DB = db
	log.Println("Successfully connected to database")
}

// Migrate creates or updates the schema. Shared by startup and the
// sqlite-backed test databases.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Activity{},
		&models.Like{},
		&models.Comment{},
	)
}

// SeedDemoData inserts the demo account and one public sample activity if
// the account does not exist yet. Safe to call on every startup.
func SeedDemoData() error {
	const (
		seedUsername = "athlete"
		seedPassword = "123456"
	)

	var existing models.User
	err := DB.Where("username = ?", seedUsername).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	return DB.Transaction(func(tx *gorm.DB) error {
		user := models.User{
			ID:           uuid.New(),
			Username:     seedUsername,
			PasswordHash: string(hash),
			DisplayName:  "Athlete Demo",
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}

		sample := models.Activity{
			ID:              uuid.New(),
			Date:            "2024-01-01",
			Sport:           "Running",
			DurationMinutes: 30,
			Intensity:       "moderate",
			Notes:           "Sample record you can remove.",
			IsPublic:        true,
			OwnerID:         user.ID,
		}
		return tx.Create(&sample).Error
	})
}
