package database

import (
	"fmt"
	"log"

	"github.com/prabhath004/quizly/internal/config"
	"github.com/prabhath004/quizly/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Initialize opens the database connection and migrates the schema.
func Initialize(cfg *config.Config) error {
	var err error
	DB, err = gorm.Open(postgres.Open(cfg.Database.DSN()), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %v", err)
	}

	if err := DB.AutoMigrate(
		&models.User{},
		&models.Folder{},
		&models.Deck{},
		&models.Flashcard{},
		&models.StudySession{},
		&models.SessionResult{},
	); err != nil {
		return fmt.Errorf("failed to migrate database: %v", err)
	}

	log.Println("Database connection established")
	return nil
}

func GetDB() *gorm.DB {
	return DB
}
