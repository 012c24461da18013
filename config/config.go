package config

import (
	"fmt"
	"log"
	"os"

	"healthycore/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB opens the Postgres connection, runs migrations and seeds the
// reference tables. The returned handle is passed into every service;
// there is no package-level DB.
func InitDB() *gorm.DB {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file, relying on environment")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}
	if err := SeedReferenceData(db); err != nil {
		log.Fatalf("Seeding reference data failed: %v", err)
	}
	return db
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Tag{},
		&models.FoodItem{},
		&models.NutritionalPlan{},
		&models.Diet{},
		&models.SedentaryLevel{},
		&models.NutritionalPreference{},
		&models.WeightEvolutionSample{},
		&models.NutritionLogEntry{},
	)
}

// SeedReferenceData fills the plan/diet/activity-level tables the
// onboarding screens select from. Idempotent.
func SeedReferenceData(db *gorm.DB) error {
	plans := []models.NutritionalPlan{
		{Name: "Balanced", CarbsPct: 50, ProteinPct: 30, FatPct: 20},
		{Name: "Low carb", CarbsPct: 30, ProteinPct: 40, FatPct: 30},
		{Name: "High protein", CarbsPct: 40, ProteinPct: 40, FatPct: 20},
	}
	for _, p := range plans {
		if err := db.Where("name = ?", p.Name).FirstOrCreate(&p).Error; err != nil {
			return err
		}
	}

	diets := []string{"none", "vegetarian", "vegan", "pescatarian"}
	for _, name := range diets {
		d := models.Diet{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&d).Error; err != nil {
			return err
		}
	}

	levels := []models.SedentaryLevel{
		{Name: "Sedentary", Factor: 1.2},
		{Name: "Lightly active", Factor: 1.375},
		{Name: "Moderately active", Factor: 1.55},
		{Name: "Very active", Factor: 1.725},
		{Name: "Extremely active", Factor: 1.9},
	}
	for _, l := range levels {
		if err := db.Where("name = ?", l.Name).FirstOrCreate(&l).Error; err != nil {
			return err
		}
	}
	return nil
}
