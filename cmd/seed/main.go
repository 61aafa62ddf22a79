package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"easypark/internal/facilities"
	"easypark/internal/shared/config"
	"easypark/internal/shared/database"
	"easypark/internal/slots"
	"easypark/internal/users"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting EasyPark Database Seeder...")

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
		"parking_sessions",
		"slots",
		"facilities",
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

	if err := s.SeedUsers(); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	if err := s.SeedFacilities(ctx); err != nil {
		return fmt.Errorf("failed to seed facilities: %w", err)
	}

	// Clear Redis cache to ensure fresh state
	if s.db.Redis != nil {
		if err := s.db.Redis.FlushDB(ctx).Err(); err != nil {
			log.Printf("Warning: Failed to clear Redis cache: %v", err)
		}
	}

	return nil
}

// SeedUsers creates 1 admin and 2 gate operator accounts
func (s *Seeder) SeedUsers() error {
	fmt.Println("  👤 Seeding users...")

	// Hash password for all users (using "qwerty")
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte("qwerty"), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	usersData := []struct {
		name        string
		companyName string
		email       string
		mobileNo    string
		role        users.Role
	}{
		{"Admin", "EasyParking", "admin@easypark.dev", "9999900001", users.RoleAdmin},
		{"Downtown Gate", "Downtown Parking Co", "gate.downtown@easypark.dev", "9999900002", users.RoleOperator},
		{"Airport Gate", "Airport Parking Co", "gate.airport@easypark.dev", "9999900003", users.RoleOperator},
	}

	for _, userData := range usersData {
		user := users.User{
			ID:          uuid.New(),
			Name:        userData.name,
			CompanyName: userData.companyName,
			Email:       userData.email,
			MobileNo:    userData.mobileNo,
			Password:    string(hashedPassword),
			Role:        userData.role,
			CreatedAt:   time.Now(),
			UpdatedAt:   time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", userData.email, err)
		}

		fmt.Printf("    ✅ Created user: %s (%s)\n", user.Email, user.Role)
	}

	return nil
}

// SeedFacilities creates demo facilities with their slot inventories
func (s *Seeder) SeedFacilities(ctx context.Context) error {
	fmt.Println("  🅿️ Seeding facilities...")

	pool := slots.NewPool(s.db.PostgreSQL)

	facilitiesData := []struct {
		name      string
		address   string
		carSlots  int
		bikeSlots int
		carRate   float64
		bikeRate  float64
	}{
		{"Downtown Plaza", "12 MG Road, Pune", 40, 60, 50.0, 15.0},
		{"Airport Terminal 1", "Lohegaon, Pune", 120, 80, 80.0, 25.0},
		{"City Mall", "FC Road, Pune", 25, 40, 40.0, 10.0},
	}

	for _, facilityData := range facilitiesData {
		facility := facilities.Facility{
			ID:        uuid.New(),
			Name:      facilityData.name,
			Address:   facilityData.address,
			CarSlots:  facilityData.carSlots,
			BikeSlots: facilityData.bikeSlots,
			CarRate:   facilityData.carRate,
			BikeRate:  facilityData.bikeRate,
			CreatedAt: time.Now(),
			UpdatedAt: time.Now(),
		}

		if err := s.db.PostgreSQL.Create(&facility).Error; err != nil {
			return fmt.Errorf("failed to create facility %s: %w", facility.Name, err)
		}

		if err := pool.Provision(ctx, facility.ID, slots.ClassCar, facility.CarSlots); err != nil {
			return fmt.Errorf("failed to provision car slots for %s: %w", facility.Name, err)
		}
		if err := pool.Provision(ctx, facility.ID, slots.ClassBike, facility.BikeSlots); err != nil {
			return fmt.Errorf("failed to provision bike slots for %s: %w", facility.Name, err)
		}

		fmt.Printf("    ✅ Created facility: %s (%d car, %d bike slots)\n",
			facility.Name, facility.CarSlots, facility.BikeSlots)
	}

	return nil
}
