// Command migrate applies the database schema. Production deployments run
// this explicitly; non-production environments migrate on connect.
package main

import (
	"log"

	"inkwell/internal/config"
	"inkwell/internal/database"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}
	log.Println("Migration complete.")
}
