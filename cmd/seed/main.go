// Command main runs the database seeder.
package main

import (
	"flag"
	"log"

	"murmur/internal/config"
	"murmur/internal/database"
	"murmur/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 50, "Number of users to create")
	numPosts := flag.Int("posts", 200, "Number of posts to create")
	numConversations := flag.Int("conversations", 30, "Number of conversations to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	skipBcrypt := flag.Bool("skip-bcrypt", false, "Store plaintext passwords (fast, dev only)")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")
	log.Printf("Target: %d users, %d posts, %d conversations, clean=%v\n",
		*numUsers, *numPosts, *numConversations, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if _, err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeederWithOptions(database.DB, seed.SeedOptions{SkipBcrypt: *skipBcrypt})

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	users, err := s.SeedSocialMesh(*numUsers)
	if err != nil {
		log.Fatalf("User seeding failed: %v", err)
	}
	if _, err := s.SeedEngagement(users, *numPosts); err != nil {
		log.Fatalf("Engagement seeding failed: %v", err)
	}
	if err := s.SeedConversations(users, *numConversations); err != nil {
		log.Fatalf("Conversation seeding failed: %v", err)
	}

	log.Println("All done! Your database is now populated with test data.")
	log.Println("All test users have the password: password123")
}
