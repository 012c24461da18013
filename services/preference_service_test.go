package services

import (
	"context"
	"errors"
	"testing"

	"healthycore/models"
)

func TestValidMacroSplit(t *testing.T) {
	tests := []struct {
		name                string
		carbs, protein, fat float64
		want                bool
	}{
		{"exact hundred", 50, 30, 20, true},
		{"within tolerance", 33.3, 33.3, 33.4, true},
		{"rounded thirds", 33.33, 33.33, 33.33, true},
		{"short of hundred", 40, 30, 20, false},
		{"over hundred", 50, 40, 20, false},
		{"negative share", -10, 60, 50, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidMacroSplit(tt.carbs, tt.protein, tt.fat); got != tt.want {
				t.Errorf("ValidMacroSplit(%v,%v,%v) = %v, want %v",
					tt.carbs, tt.protein, tt.fat, got, tt.want)
			}
		})
	}
}

func TestGetCurrentNotConfigured(t *testing.T) {
	db := newTestDB(t)
	svc := NewPreferenceService(db)

	user := createTestUser(t, db, "alice@example.com")
	_, err := svc.GetCurrent(context.Background(), user.ID)
	if !errors.Is(err, ErrPreferencesNotConfigured) {
		t.Errorf("err = %v, want ErrPreferencesNotConfigured", err)
	}
}

func TestSetPreferenceUpsert(t *testing.T) {
	db := newTestDB(t)
	svc := NewPreferenceService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice@example.com")
	seed := createTestPreference(t, db, user.ID, 1800) // creates plan/diet/level rows too
	if err := db.Unscoped().Delete(seed).Error; err != nil {
		t.Fatalf("clear seed preference: %v", err)
	}

	var plan models.NutritionalPlan
	if err := db.First(&plan).Error; err != nil {
		t.Fatalf("plan: %v", err)
	}
	var diet models.Diet
	if err := db.First(&diet).Error; err != nil {
		t.Fatalf("diet: %v", err)
	}
	var level models.SedentaryLevel
	if err := db.First(&level).Error; err != nil {
		t.Fatalf("level: %v", err)
	}

	created, err := svc.Set(ctx, user.ID, 2200, plan.ID, diet.ID, level.ID)
	if err != nil {
		t.Fatalf("Set (create): %v", err)
	}
	if created.DailyCalorieGoal != 2200 {
		t.Errorf("goal = %f, want 2200", created.DailyCalorieGoal)
	}
	if created.Plan.CarbsPct != 50 {
		t.Errorf("plan not preloaded: %+v", created.Plan)
	}

	updated, err := svc.Set(ctx, user.ID, 1900, plan.ID, diet.ID, level.ID)
	if err != nil {
		t.Fatalf("Set (update): %v", err)
	}
	if updated.ID != created.ID {
		t.Errorf("update created a second record: %d != %d", updated.ID, created.ID)
	}
	if updated.DailyCalorieGoal != 1900 {
		t.Errorf("goal = %f, want 1900", updated.DailyCalorieGoal)
	}

	// one active record per user
	var count int64
	if err := db.Model(&models.NutritionalPreference{}).Where("user_id = ?", user.ID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Errorf("preference rows = %d, want 1", count)
	}
}

func TestSetPreferenceRejectsBadPlan(t *testing.T) {
	db := newTestDB(t)
	svc := NewPreferenceService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice@example.com")

	bad := models.NutritionalPlan{Name: "Broken", CarbsPct: 40, ProteinPct: 30, FatPct: 20}
	if err := db.Create(&bad).Error; err != nil {
		t.Fatalf("create plan: %v", err)
	}
	diet := models.Diet{Name: "none"}
	if err := db.Create(&diet).Error; err != nil {
		t.Fatalf("create diet: %v", err)
	}
	level := models.SedentaryLevel{Name: "Sedentary", Factor: 1.2}
	if err := db.Create(&level).Error; err != nil {
		t.Fatalf("create level: %v", err)
	}

	if _, err := svc.Set(ctx, user.ID, 2000, bad.ID, diet.ID, level.ID); !errors.Is(err, ErrInvalidMacroSplit) {
		t.Errorf("err = %v, want ErrInvalidMacroSplit", err)
	}

	if _, err := svc.Set(ctx, user.ID, 2000, 9999, diet.ID, level.ID); !errors.Is(err, ErrPlanNotFound) {
		t.Errorf("err = %v, want ErrPlanNotFound", err)
	}
}

func TestUpdateCalorieGoal(t *testing.T) {
	db := newTestDB(t)
	svc := NewPreferenceService(db)
	ctx := context.Background()

	user := createTestUser(t, db, "alice@example.com")

	if err := svc.UpdateCalorieGoal(ctx, user.ID, 2100); !errors.Is(err, ErrPreferencesNotConfigured) {
		t.Errorf("err = %v, want ErrPreferencesNotConfigured", err)
	}

	createTestPreference(t, db, user.ID, 1500)
	if err := svc.UpdateCalorieGoal(ctx, user.ID, 2100); err != nil {
		t.Fatalf("UpdateCalorieGoal: %v", err)
	}
	pref, err := svc.GetCurrent(ctx, user.ID)
	if err != nil {
		t.Fatalf("GetCurrent: %v", err)
	}
	if pref.DailyCalorieGoal != 2100 {
		t.Errorf("goal = %f, want 2100", pref.DailyCalorieGoal)
	}
}
