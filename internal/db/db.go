package db

import (
	"log"

	"hootline/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Init connects to PostgreSQL, migrates the hoot tables and seeds a first hoot.
func Init(dsn string) *gorm.DB {
	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	log.Println("Database connection established")

	err = DB.AutoMigrate(
		&models.User{},
		&models.Hoot{},
		&models.Comment{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	seedHoots()
	return DB
}

func seedHoots() {
	var count int64
	DB.Model(&models.Hoot{}).Count(&count)
	if count > 0 {
		log.Println("Hoots already seeded, skipping")
		return
	}

	author := models.User{ID: uuid.NewString(), Username: "hootline"}
	hoot := models.Hoot{
		ID:       uuid.NewString(),
		Category: "News",
		Title:    "Welcome to Hootline",
		Text:     "Sign in with a token from the hoot API to comment.",
		AuthorID: author.ID,
	}

	err := DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&author).Error; err != nil {
			return err
		}
		return tx.Omit("Author").Create(&hoot).Error
	})
	if err != nil {
		log.Printf("Failed to seed hoots: %v", err)
		return
	}
	log.Println("Initial hoot created successfully")
}
