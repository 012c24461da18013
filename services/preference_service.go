package services

import (
	"context"
	"errors"
	"math"

	"healthycore/models"

	"gorm.io/gorm"
)

// macroSumTolerance is the rounding slack allowed on the 100% invariant.
const macroSumTolerance = 0.5

type PreferenceService struct{ db *gorm.DB }

func NewPreferenceService(db *gorm.DB) *PreferenceService { return &PreferenceService{db: db} }

// GetCurrent returns the user's active preference with plan, diet and
// activity level preloaded. Absence is a reportable condition, not a
// server fault.
func (s *PreferenceService) GetCurrent(ctx context.Context, userID uint) (*models.NutritionalPreference, error) {
	var pref models.NutritionalPreference
	err := s.db.WithContext(ctx).
		Preload("Plan").Preload("Diet").Preload("SedentaryLevel").
		Where("user_id = ?", userID).
		First(&pref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPreferencesNotConfigured
		}
		return nil, err
	}
	return &pref, nil
}

// Set upserts the one active preference per user.
func (s *PreferenceService) Set(ctx context.Context, userID uint, dailyCalorieGoal float64, planID, dietID, levelID uint) (*models.NutritionalPreference, error) {
	plan, err := s.GetPlan(ctx, planID)
	if err != nil {
		return nil, err
	}
	if !ValidMacroSplit(plan.CarbsPct, plan.ProteinPct, plan.FatPct) {
		return nil, ErrInvalidMacroSplit
	}
	if _, err := s.GetDiet(ctx, dietID); err != nil {
		return nil, err
	}
	if _, err := s.GetSedentaryLevel(ctx, levelID); err != nil {
		return nil, err
	}

	var pref models.NutritionalPreference
	err = s.db.WithContext(ctx).Where("user_id = ?", userID).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		pref = models.NutritionalPreference{
			UserID:           userID,
			DailyCalorieGoal: dailyCalorieGoal,
			PlanID:           planID,
			DietID:           dietID,
			SedentaryLevelID: levelID,
		}
		if err := s.db.WithContext(ctx).Create(&pref).Error; err != nil {
			return nil, err
		}
		return s.GetCurrent(ctx, userID)
	}
	if err != nil {
		return nil, err
	}

	pref.DailyCalorieGoal = dailyCalorieGoal
	pref.PlanID = planID
	pref.DietID = dietID
	pref.SedentaryLevelID = levelID
	if err := s.db.WithContext(ctx).Save(&pref).Error; err != nil {
		return nil, err
	}
	return s.GetCurrent(ctx, userID)
}

// UpdateCalorieGoal rewrites only the goal, keeping plan/diet/level.
func (s *PreferenceService) UpdateCalorieGoal(ctx context.Context, userID uint, goal float64) error {
	res := s.db.WithContext(ctx).Model(&models.NutritionalPreference{}).
		Where("user_id = ?", userID).
		Update("daily_calorie_goal", goal)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrPreferencesNotConfigured
	}
	return nil
}

func ValidMacroSplit(carbsPct, proteinPct, fatPct float64) bool {
	if carbsPct < 0 || proteinPct < 0 || fatPct < 0 {
		return false
	}
	return math.Abs(carbsPct+proteinPct+fatPct-100.0) <= macroSumTolerance
}

// ---------- Reference data ----------

func (s *PreferenceService) GetPlan(ctx context.Context, id uint) (*models.NutritionalPlan, error) {
	var plan models.NutritionalPlan
	if err := s.db.WithContext(ctx).First(&plan, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	return &plan, nil
}

func (s *PreferenceService) GetDiet(ctx context.Context, id uint) (*models.Diet, error) {
	var diet models.Diet
	if err := s.db.WithContext(ctx).First(&diet, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDietNotFound
		}
		return nil, err
	}
	return &diet, nil
}

func (s *PreferenceService) GetSedentaryLevel(ctx context.Context, id uint) (*models.SedentaryLevel, error) {
	var level models.SedentaryLevel
	if err := s.db.WithContext(ctx).First(&level, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSedentaryLevelNotFound
		}
		return nil, err
	}
	return &level, nil
}

func (s *PreferenceService) ListPlans(ctx context.Context) ([]models.NutritionalPlan, error) {
	var plans []models.NutritionalPlan
	err := s.db.WithContext(ctx).Order("id ASC").Find(&plans).Error
	return plans, err
}

func (s *PreferenceService) ListDiets(ctx context.Context) ([]models.Diet, error) {
	var diets []models.Diet
	err := s.db.WithContext(ctx).Order("id ASC").Find(&diets).Error
	return diets, err
}

func (s *PreferenceService) ListSedentaryLevels(ctx context.Context) ([]models.SedentaryLevel, error) {
	var levels []models.SedentaryLevel
	err := s.db.WithContext(ctx).Order("factor ASC").Find(&levels).Error
	return levels, err
}
