package database

import (
	"fmt"
	"os"

	"atelier-backend/models"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Connect() {
	// .env is optional; containerized deployments inject real env vars.
	_ = godotenv.Load()

	host := os.Getenv("DB_HOST")
	if host == "" {
		host = "db"
	}
	port := os.Getenv("DB_PORT")
	if port == "" {
		port = "5432"
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		host, os.Getenv("DB_USER"), os.Getenv("DB_PASSWORD"), os.Getenv("DB_NAME"), port)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal().Err(err).Msg("could not connect to database")
	}
}

// AutoMigrate migrates the public (cross-tenant) tables.
func AutoMigrate() {
	if err := DB.AutoMigrate(&models.User{}, &models.Studio{}); err != nil {
		log.Fatal().Err(err).Msg("public automigrate failed")
	}
}
