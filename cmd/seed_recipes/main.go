package main

import (
	"context"
	"flag"
	"log"

	"github.com/pageza/cookbook/backend/config"
	"github.com/pageza/cookbook/backend/internal/database"
	"github.com/pageza/cookbook/backend/internal/service"
)

func main() {
	force := flag.Bool("force", false, "insert the sample recipes even if the table is not empty")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.New(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			log.Printf("Failed to close database: %v", err)
		}
	}()

	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to prepare database schema: %v", err)
	}

	inserted, err := seed(context.Background(), service.NewRecipeService(db), *force)
	if err != nil {
		log.Fatalf("Failed to seed recipes: %v", err)
	}
	log.Printf("Seeded %d recipes", inserted)
}
