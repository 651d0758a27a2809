package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"waitly/internal/shared/config"
	"waitly/internal/shared/database"
	"waitly/internal/users"
	"waitly/internal/venues"
	"waitly/internal/waitlist"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Waitly Database Seeder...")

	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	// Clean database
	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	// Seed data
	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in the correct order (respecting foreign key constraints)
func (s *Seeder) CleanDatabase() error {
	// Delete in reverse dependency order
	tables := []string{
		"notifications",
		"waitlist_entries",
		"venues",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	return tx.Commit().Error
}

// SeedAll seeds all required data
func (s *Seeder) SeedAll() error {
	ctx := context.Background()

	// Seed users first (no dependencies)
	userIDs, err := s.SeedUsers()
	if err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	// Seed venues owned by staff1
	venueIDs, err := s.SeedVenues(userIDs["staff1"])
	if err != nil {
		return fmt.Errorf("failed to seed venues: %w", err)
	}

	// Seed a couple of waitlist entries so queues are not empty
	if err := s.SeedWaitlistEntries(userIDs, venueIDs); err != nil {
		return fmt.Errorf("failed to seed waitlist entries: %w", err)
	}

	// Clear Redis cache to ensure fresh state
	if s.db.Redis != nil {
		if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
			log.Printf("Warning: Failed to clear Redis cache: %v", err)
		}
	}

	return nil
}

// SeedUsers creates 5 users: 1 admin, 2 staff and 2 customers
func (s *Seeder) SeedUsers() (map[string]uuid.UUID, error) {
	fmt.Println("  👤 Seeding users...")

	userIDs := make(map[string]uuid.UUID)

	// Hash password for all users (using "qwerty")
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	usersData := []struct {
		key      string
		username string
		email    string
		role     users.Role
	}{
		{"admin", "admin", "admin@waitly.io", users.RoleAdmin},
		{"staff1", "staff1", "staff1@waitly.io", users.RoleStaff},
		{"staff2", "staff2", "staff2@waitly.io", users.RoleStaff},
		{"user1", "user1", "user1@waitly.io", users.RoleCustomer},
		{"user2", "user2", "user2@waitly.io", users.RoleCustomer},
	}

	for _, userData := range usersData {
		user := users.User{
			ID:        uuid.New(),
			Username:  userData.username,
			Email:     userData.email,
			Password:  string(hashedPassword),
			Role:      userData.role,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return nil, fmt.Errorf("failed to create user %s: %w", userData.email, err)
		}

		userIDs[userData.key] = user.ID
		fmt.Printf("    ✅ Created user: %s (%s)\n", user.Email, user.Role)
	}

	return userIDs, nil
}

// SeedVenues creates sample venues owned by the given staff user
func (s *Seeder) SeedVenues(ownerID uuid.UUID) ([]uuid.UUID, error) {
	fmt.Println("  🏪 Seeding venues...")

	var venueIDs []uuid.UUID

	venuesData := []struct {
		name           string
		location       string
		maxCapacity    int
		avgServiceTime int
	}{
		{"Cafe Aroma", "Manama", 40, 15},
		{"Tea House", "Riffa", 25, 10},
		{"Latte Lounge", "Muharraq", 30, 12},
		{"Coffee Corner", "Isa Town", 20, 8},
		{"The Brew Spot", "Juffair", 35, 14},
	}

	for _, venueData := range venuesData {
		venue := venues.Venue{
			ID:             uuid.New(),
			Name:           venueData.name,
			Location:       venueData.location,
			MaxCapacity:    venueData.maxCapacity,
			AvgServiceTime: venueData.avgServiceTime,
			OwnerID:        ownerID,
			CreatedAt:      time.Now(),
			UpdatedAt:      time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&venue).Error; err != nil {
			return nil, fmt.Errorf("failed to create venue %s: %w", venue.Name, err)
		}

		venueIDs = append(venueIDs, venue.ID)
		fmt.Printf("    ✅ Created venue: %s (%s)\n", venue.Name, venue.Location)
	}

	return venueIDs, nil
}

// SeedWaitlistEntries puts the two customers in the first venue's queue
func (s *Seeder) SeedWaitlistEntries(userIDs map[string]uuid.UUID, venueIDs []uuid.UUID) error {
	fmt.Println("  ⏳ Seeding waitlist entries...")

	if len(venueIDs) == 0 {
		return nil
	}

	entriesData := []struct {
		userKey  string
		position int
	}{
		{"user1", 1},
		{"user2", 2},
	}

	for _, entryData := range entriesData {
		position := entryData.position
		entry := waitlist.Entry{
			ID:        uuid.New(),
			UserID:    userIDs[entryData.userKey],
			VenueID:   venueIDs[0],
			Status:    waitlist.StatusWaiting,
			Position:  &position,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to create waitlist entry for %s: %w", entryData.userKey, err)
		}

		fmt.Printf("    ✅ Queued %s at position %d\n", entryData.userKey, position)
	}

	return nil
}
