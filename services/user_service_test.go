package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"healthycore/config"
	"healthycore/models"
	"healthycore/utils"
)

func TestRegisterOnboarding(t *testing.T) {
	db := newTestDB(t)
	if err := config.SeedReferenceData(db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	prefs := NewPreferenceService(db)
	svc := NewUserService(db, prefs)
	ctx := context.Background()

	var plan models.NutritionalPlan
	if err := db.Where("name = ?", "Balanced").First(&plan).Error; err != nil {
		t.Fatalf("plan: %v", err)
	}
	var diet models.Diet
	if err := db.Where("name = ?", "none").First(&diet).Error; err != nil {
		t.Fatalf("diet: %v", err)
	}
	var level models.SedentaryLevel
	if err := db.Where("name = ?", "Moderately active").First(&level).Error; err != nil {
		t.Fatalf("level: %v", err)
	}

	result, err := svc.Register(ctx, RegisterInput{
		Email:            "bob@example.com",
		Password:         "s3cret-pass",
		FirstName:        "Bob",
		Sex:              "male",
		Birthday:         "1996-03-15",
		Height:           180,
		Weight:           90,
		TargetWeight:     75,
		PlanID:           plan.ID,
		DietID:           diet.ID,
		SedentaryLevelID: level.ID,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if !result.Assessment.IsValid {
		t.Fatalf("assessment invalid: %s", result.Assessment.Message)
	}

	// the persisted goal must equal the estimation's daily calories
	birthday, _ := time.Parse("2006-01-02", "1996-03-15")
	want := utils.ComputeWeightChangeEstimation(
		90, 75, 180, "male", utils.CalculateAge(birthday), level.Factor,
	)
	if result.Preference.DailyCalorieGoal != float64(want.DailyCalories) {
		t.Errorf("goal = %f, want %d", result.Preference.DailyCalorieGoal, want.DailyCalories)
	}
	if want.Orientation != utils.OrientationLoss {
		t.Errorf("orientation = %s, want loss", want.Orientation)
	}

	// registration stores the password hashed, never plain
	var user models.User
	if err := db.Where("email = ?", "bob@example.com").First(&user).Error; err != nil {
		t.Fatalf("user: %v", err)
	}
	if user.Password == "s3cret-pass" {
		t.Error("password stored in plain text")
	}
	if !utils.CheckPasswordHash("s3cret-pass", user.Password) {
		t.Error("stored hash does not verify")
	}

	// the first weight sample is recorded
	sample, err := svc.LatestSample(ctx, user.ID)
	if err != nil {
		t.Fatalf("LatestSample: %v", err)
	}
	if sample.Weight != 90 || sample.Height != 180 {
		t.Errorf("sample = %v/%v, want 90/180", sample.Weight, sample.Height)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	if err := config.SeedReferenceData(db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	prefs := NewPreferenceService(db)
	svc := NewUserService(db, prefs)

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

	input := RegisterInput{
		Email: "dup@example.com", Password: "s3cret-pass", FirstName: "Dup",
		Birthday: "1990-01-01", Height: 170, Weight: 70, TargetWeight: 68,
		PlanID: plan.ID, DietID: diet.ID, SedentaryLevelID: level.ID,
	}
	if _, err := svc.Register(context.Background(), input); err != nil {
		t.Fatalf("first register: %v", err)
	}
	if _, err := svc.Register(context.Background(), input); !errors.Is(err, ErrEmailTaken) {
		t.Errorf("err = %v, want ErrEmailTaken", err)
	}
}

func TestRegisterInvalidTargetStillCreatesAccount(t *testing.T) {
	db := newTestDB(t)
	if err := config.SeedReferenceData(db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	prefs := NewPreferenceService(db)
	svc := NewUserService(db, prefs)

	var plan models.NutritionalPlan
	if err := db.First(&plan).Error; err != nil {
		t.Fatalf("plan: %v", err)
	}
	var diet models.Diet
	if err := db.First(&diet).Error; err != nil {
		t.Fatalf("diet: %v", err)
	}
	var level models.SedentaryLevel
	if err := db.Where("factor = ?", 1.55).First(&level).Error; err != nil {
		t.Fatalf("level: %v", err)
	}

	// target of 40kg at 180cm is far below the BMI floor
	result, err := svc.Register(context.Background(), RegisterInput{
		Email: "carla@example.com", Password: "s3cret-pass", FirstName: "Carla",
		Sex: "female", Birthday: "1992-06-01", Height: 180, Weight: 80, TargetWeight: 40,
		PlanID: plan.ID, DietID: diet.ID, SedentaryLevelID: level.ID,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if result.Assessment.IsValid {
		t.Error("assessment must report the invalid target")
	}
	if result.Assessment.Estimation != nil {
		t.Error("no estimation for an invalid target")
	}

	// the account falls back to a maintenance goal
	birthday, _ := time.Parse("2006-01-02", "1992-06-01")
	maintain := utils.ComputeWeightChangeEstimation(
		80, 80, 180, "female", utils.CalculateAge(birthday), level.Factor,
	)
	if result.Preference.DailyCalorieGoal != float64(maintain.DailyCalories) {
		t.Errorf("goal = %f, want maintenance %d", result.Preference.DailyCalorieGoal, maintain.DailyCalories)
	}
}

func TestAddWeightSampleRecomputesGoal(t *testing.T) {
	db := newTestDB(t)
	if err := config.SeedReferenceData(db); err != nil {
		t.Fatalf("seed: %v", err)
	}
	prefs := NewPreferenceService(db)
	svc := NewUserService(db, prefs)
	ctx := context.Background()

	var plan models.NutritionalPlan
	if err := db.First(&plan).Error; err != nil {
		t.Fatalf("plan: %v", err)
	}
	var diet models.Diet
	if err := db.First(&diet).Error; err != nil {
		t.Fatalf("diet: %v", err)
	}
	var level models.SedentaryLevel
	if err := db.Where("factor = ?", 1.55).First(&level).Error; err != nil {
		t.Fatalf("level: %v", err)
	}

	result, err := svc.Register(ctx, RegisterInput{
		Email: "dana@example.com", Password: "s3cret-pass", FirstName: "Dana",
		Sex: "female", Birthday: "1994-09-20", Height: 168, Weight: 78, TargetWeight: 65,
		PlanID: plan.ID, DietID: diet.ID, SedentaryLevelID: level.ID,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	userID := result.User.ID

	if _, err := svc.AddWeightSample(ctx, userID, 72, 168); err != nil {
		t.Fatalf("AddWeightSample: %v", err)
	}

	birthday, _ := time.Parse("2006-01-02", "1994-09-20")
	want := utils.ComputeWeightChangeEstimation(
		72, 65, 168, "female", utils.CalculateAge(birthday), level.Factor,
	)
	pref, err := prefs.GetCurrent(ctx, userID)
	if err != nil {
		t.Fatalf("GetCurrent: %v", err)
	}
	if pref.DailyCalorieGoal != float64(want.DailyCalories) {
		t.Errorf("goal = %f, want recomputed %d", pref.DailyCalorieGoal, want.DailyCalories)
	}

	history, err := svc.WeightHistory(ctx, userID)
	if err != nil {
		t.Fatalf("WeightHistory: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("samples = %d, want 2", len(history))
	}
	// newest first
	if history[0].Weight != 72 {
		t.Errorf("latest weight = %f, want 72", history[0].Weight)
	}
}
