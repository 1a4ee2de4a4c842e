package main

import (
	"log"

	"ai-ragchat-be/internal/config"
	"ai-ragchat-be/internal/model"
	"ai-ragchat-be/pkg/database"
)

func main() {
	cfg := config.Load()
	if cfg.Database.Connection == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(cfg.Database.Connection, false)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	log.Println("Running migrations...")
	if err := database.Migrate(db, model.All()...); err != nil {
		log.Fatal("Error: Migration failed:", err)
	}
	log.Println("Migration complete")
}
