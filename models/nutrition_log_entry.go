package models

import (
	"strings"
	"time"
)

type MealSlot string

const (
	MealBreakfast MealSlot = "breakfast"
	MealLunch     MealSlot = "lunch"
	MealDinner    MealSlot = "dinner"
	MealSnack     MealSlot = "snack"
	MealOther     MealSlot = "other"
)

// NormalizeMealSlot folds free-form labels onto the closed enumeration.
func NormalizeMealSlot(s string) MealSlot {
	switch MealSlot(strings.ToLower(strings.TrimSpace(s))) {
	case MealBreakfast:
		return MealBreakfast
	case MealLunch:
		return MealLunch
	case MealDinner:
		return MealDinner
	case MealSnack:
		return MealSnack
	default:
		return MealOther
	}
}

// NutritionLogEntry is one logged food. Entries are never updated in
// place; a correction is delete + re-log. No soft delete: a removed
// entry leaves no trace.
type NutritionLogEntry struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	FoodID     uint      `gorm:"index;not null" json:"food_id"`
	Food       FoodItem  `json:"-"`
	Quantity   float64   `json:"quantity"` // grams, or portions on the 100-base scale
	MealSlot   MealSlot  `gorm:"size:16;not null" json:"meal_slot"`
	ConsumedAt time.Time `gorm:"index;not null" json:"consumed_at"`
	CreatedAt  time.Time `json:"-"`
}
