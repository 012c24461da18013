package services

import (
	"testing"

	"healthycore/config"
	"healthycore/models"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("raw handle: %v", err)
	}
	// a fresh connection would see a fresh in-memory database
	sqlDB.SetMaxOpenConns(1)

	if err := config.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{
		Email:    email,
		Password: "irrelevant-hash",
		Sex:      models.SexFemale,
		Role:     models.RoleUser,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

// createTestPreference wires a 50/30/20 plan and a moderate activity
// level for the user with the given calorie goal.
func createTestPreference(t *testing.T, db *gorm.DB, userID uint, goal float64) *models.NutritionalPreference {
	t.Helper()

	plan := models.NutritionalPlan{Name: "Balanced", CarbsPct: 50, ProteinPct: 30, FatPct: 20}
	if err := db.Where("name = ?", plan.Name).FirstOrCreate(&plan).Error; err != nil {
		t.Fatalf("create plan: %v", err)
	}
	diet := models.Diet{Name: "none"}
	if err := db.Where("name = ?", diet.Name).FirstOrCreate(&diet).Error; err != nil {
		t.Fatalf("create diet: %v", err)
	}
	level := models.SedentaryLevel{Name: "Moderately active", Factor: 1.55}
	if err := db.Where("name = ?", level.Name).FirstOrCreate(&level).Error; err != nil {
		t.Fatalf("create level: %v", err)
	}

	pref := &models.NutritionalPreference{
		UserID:           userID,
		DailyCalorieGoal: goal,
		PlanID:           plan.ID,
		DietID:           diet.ID,
		SedentaryLevelID: level.ID,
	}
	if err := db.Create(pref).Error; err != nil {
		t.Fatalf("create preference: %v", err)
	}
	return pref
}

func createTestFood(t *testing.T, db *gorm.DB, name string, calories int, protein, carbs, fat float64) *models.FoodItem {
	t.Helper()
	food := &models.FoodItem{
		Name:     name,
		Category: models.FoodCategoryRecipe,
		Origin:   models.FoodOriginAdmin,
		Calories: calories,
		Protein:  protein,
		Carbs:    carbs,
		Fat:      fat,
	}
	if err := db.Create(food).Error; err != nil {
		t.Fatalf("create food: %v", err)
	}
	return food
}
