// Command main runs the database seeder for DevConnector.
package main

import (
	"context"
	"flag"
	"log"
	"time"

	"devconnector/internal/config"
	"devconnector/internal/database"
	"devconnector/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 25, "Number of users to create")
	numPosts := flag.Int("posts", 100, "Number of posts to create")
	password := flag.String("password", "password123", "Password shared by all seeded users")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Printf("Seeding %d users and %d posts (clean=%v)", *numUsers, *numPosts, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()
	defer database.Disconnect(ctx, db)

	s := seed.NewSeeder(db)
	if *shouldClean {
		if err := s.ClearAll(ctx); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := s.Run(ctx, seed.Options{
		Users:    *numUsers,
		Posts:    *numPosts,
		Password: *password,
	}); err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Println("Seeding complete")
}
