// Command main runs the database seeder for the Lattice network engine.
package main

import (
	"flag"
	"log"

	"lattice/internal/config"
	"lattice/internal/database"
	"lattice/internal/seed"
)

func main() {
	// Parse command line flags
	numProfiles := flag.Int("profiles", 50, "Number of profiles to create")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	demoOnly := flag.Bool("demo", false, "Seed only the fixed demo topology")
	flag.Parse()

	log.Println("Database Seeder")
	log.Println("===============")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	s := seed.NewSeeder(db)

	if *shouldClean {
		if err := s.ClearAll(); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	if err := seed.DemoNetwork(db); err != nil {
		log.Fatalf("Demo topology seeding failed: %v", err)
	}

	if !*demoOnly {
		if _, err := s.SeedNetworkMesh(*numProfiles); err != nil {
			log.Fatalf("Mesh seeding failed: %v", err)
		}
	}

	log.Println("All done! The database is populated with demo network data.")
}
