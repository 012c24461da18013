package models

import "gorm.io/gorm"

// NutritionalPlan is a macro-split plan: percentage of daily calories
// drawn from each macronutrient. Percentages must sum to 100 within
// rounding tolerance.
type NutritionalPlan struct {
	gorm.Model
	Name       string  `gorm:"uniqueIndex;not null" json:"name"`
	CarbsPct   float64 `json:"carbs_pct"`
	ProteinPct float64 `json:"protein_pct"`
	FatPct     float64 `json:"fat_pct"`
}

type Diet struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// SedentaryLevel maps an activity description to the TDEE multiplier.
type SedentaryLevel struct {
	gorm.Model
	Name   string  `gorm:"uniqueIndex;not null" json:"name"`
	Factor float64 `json:"factor"`
}

// NutritionalPreference is the one active record per user.
type NutritionalPreference struct {
	gorm.Model
	UserID           uint    `gorm:"uniqueIndex;not null" json:"user_id"`
	DailyCalorieGoal float64 `json:"daily_calorie_goal"`

	PlanID           uint            `gorm:"not null" json:"plan_id"`
	Plan             NutritionalPlan `json:"plan"`
	DietID           uint            `gorm:"not null" json:"diet_id"`
	Diet             Diet            `json:"diet"`
	SedentaryLevelID uint            `gorm:"not null" json:"sedentary_level_id"`
	SedentaryLevel   SedentaryLevel  `json:"sedentary_level"`
}
