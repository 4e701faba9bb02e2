// Command migrate applies the database schema.
package main

import (
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/dailyworklog/server/internal/config"
	"github.com/dailyworklog/server/internal/database"
	"github.com/dailyworklog/server/internal/repository"
)

func main() {
	log := logrus.New()

	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load config")
	}

	db, err := database.Connect(database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer db.Close()

	log.Info("Running migration...")
	if _, err := db.Exec(repository.Schema); err != nil {
		log.WithError(err).Fatal("Migration failed")
	}
	log.Info("Migration completed")
}
