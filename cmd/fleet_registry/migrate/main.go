package main

import (
	"fleet_registry/internal/app/config"
	"fleet_registry/internal/app/dsn"
	"fleet_registry/internal/app/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	_, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("error loading config: %v", err)
	}

	postgresString := dsn.FromEnv()
	db, err := gorm.Open(postgres.Open(postgresString), &gorm.Config{})
	if err != nil {
		logrus.Fatalf("error connecting to database: %v", err)
	}

	// users first, then owners and catalogs, vessels, then everything hanging off a vessel
	for _, model := range repository.Models() {
		if err := db.AutoMigrate(model); err != nil {
			logrus.Fatalf("error migrating %T: %v", model, err)
		}
	}

	logrus.Info("Database migration completed")
}
