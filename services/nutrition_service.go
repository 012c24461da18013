package services

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"healthycore/models"
	"healthycore/utils"

	"gorm.io/gorm"
)

type NutritionService struct {
	db    *gorm.DB
	prefs *PreferenceService
}

func NewNutritionService(db *gorm.DB, prefs *PreferenceService) *NutritionService {
	return &NutritionService{db: db, prefs: prefs}
}

func dayStart(t time.Time) time.Time {
	tt := t.In(time.Local)
	return time.Date(tt.Year(), tt.Month(), tt.Day(), 0, 0, 0, 0, time.Local)
}

func dayEnd(t time.Time) time.Time {
	return dayStart(t).Add(24 * time.Hour)
}

// scaled converts a per-100 nutritional value to the logged quantity.
func scaled(per100, quantity float64) float64 {
	return per100 * quantity / 100.0
}

// percentCompleted guards every percentage site against a zero goal.
func percentCompleted(value, goal float64) int {
	if goal <= 0 {
		return 0
	}
	return int(math.Round(value / goal * 100))
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// ---------- Log / delete ----------

type LogEntryInput struct {
	FoodID   uint       `json:"food_id" binding:"required"`
	Quantity float64    `json:"quantity" binding:"required"`
	MealSlot string     `json:"meal_slot" binding:"required"`
	Date     *time.Time `json:"date"`
}

type LoggedEntry struct {
	ID         uint            `json:"id"`
	FoodID     uint            `json:"foodId"`
	FoodName   string          `json:"foodName"`
	Quantity   float64         `json:"quantity"`
	MealSlot   models.MealSlot `json:"mealSlot"`
	ConsumedAt time.Time       `json:"consumedAt"`
	Calories   float64         `json:"calories"`

	DailyObjective struct {
		Completed bool `json:"completed"`
	} `json:"dailyObjective"`
}

// LogEntry persists the entry, then recomputes the day's calorie total
// inside the same transaction so the completion flag never reports a
// stale read.
func (s *NutritionService) LogEntry(ctx context.Context, userID uint, in LogEntryInput) (*LoggedEntry, error) {
	if in.Quantity <= 0 {
		return nil, ErrInvalidQuantity
	}

	var food models.FoodItem
	if err := s.db.WithContext(ctx).First(&food, in.FoodID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFoodNotFound
		}
		return nil, err
	}

	consumedAt := time.Now()
	if in.Date != nil {
		consumedAt = *in.Date
	}

	entry := models.NutritionLogEntry{
		UserID:     userID,
		FoodID:     food.ID,
		Quantity:   in.Quantity,
		MealSlot:   models.NormalizeMealSlot(in.MealSlot),
		ConsumedAt: consumedAt,
	}

	var totalCalories float64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}
		var entries []models.NutritionLogEntry
		if err := tx.Preload("Food").
			Where("user_id = ? AND consumed_at >= ? AND consumed_at < ?",
				userID, dayStart(consumedAt), dayEnd(consumedAt)).
			Find(&entries).Error; err != nil {
			return err
		}
		for _, e := range entries {
			totalCalories += scaled(float64(e.Food.Calories), e.Quantity)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out := &LoggedEntry{
		ID:         entry.ID,
		FoodID:     food.ID,
		FoodName:   food.Name,
		Quantity:   entry.Quantity,
		MealSlot:   entry.MealSlot,
		ConsumedAt: entry.ConsumedAt,
		Calories:   round1(scaled(float64(food.Calories), entry.Quantity)),
	}

	// A missing preference just means no goal to complete yet; it does
	// not block logging. Any other lookup failure is a real error.
	pref, err := s.prefs.GetCurrent(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrPreferencesNotConfigured) {
			return out, nil
		}
		return nil, err
	}
	if pref.DailyCalorieGoal > 0 {
		out.DailyObjective.Completed = totalCalories >= pref.DailyCalorieGoal
	}
	return out, nil
}

// DeleteEntry removes one entry after verifying ownership. A missing
// row and someone else's row are indistinguishable to the caller.
func (s *NutritionService) DeleteEntry(ctx context.Context, userID, entryID uint) error {
	var entry models.NutritionLogEntry
	err := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", entryID, userID).
		First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEntryNotFoundOrNotOwned
		}
		return err
	}
	return s.db.WithContext(ctx).Delete(&entry).Error
}

// ---------- Daily summary ----------

type MacroProgress struct {
	Goal             float64 `json:"goal"`
	Consumed         float64 `json:"consumed"`
	Unit             string  `json:"unit"`
	PercentCompleted int     `json:"percentCompleted"`
}

type DailySummary struct {
	Date              string  `json:"date"`
	CalorieGoal       float64 `json:"calorieGoal"`
	CaloriesConsumed  float64 `json:"caloriesConsumed"`
	CaloriesRemaining float64 `json:"caloriesRemaining"`
	PercentCompleted  int     `json:"percentCompleted"`
	Macronutrients    struct {
		Carbs   MacroProgress `json:"carbs"`
		Protein MacroProgress `json:"protein"`
		Fat     MacroProgress `json:"fat"`
	} `json:"macronutrients"`
}

// DailySummary reports consumption against the persisted goal. Macro
// goals are derived from the plan percentages at 4/4/9 kcal per gram.
func (s *NutritionService) DailySummary(ctx context.Context, userID uint, date time.Time) (*DailySummary, error) {
	pref, err := s.prefs.GetCurrent(ctx, userID)
	if err != nil {
		return nil, err
	}

	var entries []models.NutritionLogEntry
	if err := s.db.WithContext(ctx).Preload("Food").
		Where("user_id = ? AND consumed_at >= ? AND consumed_at < ?",
			userID, dayStart(date), dayEnd(date)).
		Find(&entries).Error; err != nil {
		return nil, err
	}

	var cals, protein, carbs, fat float64
	for _, e := range entries {
		cals += scaled(float64(e.Food.Calories), e.Quantity)
		protein += scaled(e.Food.Protein, e.Quantity)
		carbs += scaled(e.Food.Carbs, e.Quantity)
		fat += scaled(e.Food.Fat, e.Quantity)
	}

	goalMacros := utils.ComputeMacroDistribution(
		pref.DailyCalorieGoal,
		pref.Plan.CarbsPct, pref.Plan.ProteinPct, pref.Plan.FatPct,
	)

	out := &DailySummary{
		Date:              dayStart(date).Format("2006-01-02"),
		CalorieGoal:       pref.DailyCalorieGoal,
		CaloriesConsumed:  round1(cals),
		CaloriesRemaining: round1(pref.DailyCalorieGoal - cals),
		PercentCompleted:  percentCompleted(cals, pref.DailyCalorieGoal),
	}
	out.Macronutrients.Carbs = MacroProgress{
		Goal:             float64(goalMacros.Carbs.Grams),
		Consumed:         round1(carbs),
		Unit:             "g",
		PercentCompleted: percentCompleted(carbs, float64(goalMacros.Carbs.Grams)),
	}
	out.Macronutrients.Protein = MacroProgress{
		Goal:             float64(goalMacros.Protein.Grams),
		Consumed:         round1(protein),
		Unit:             "g",
		PercentCompleted: percentCompleted(protein, float64(goalMacros.Protein.Grams)),
	}
	out.Macronutrients.Fat = MacroProgress{
		Goal:             float64(goalMacros.Fat.Grams),
		Consumed:         round1(fat),
		Unit:             "g",
		PercentCompleted: percentCompleted(fat, float64(goalMacros.Fat.Grams)),
	}
	return out, nil
}

// ---------- Today breakdown ----------

type EntryDetail struct {
	ID       uint    `json:"id"`
	FoodID   uint    `json:"foodId"`
	FoodName string  `json:"foodName"`
	Quantity float64 `json:"quantity"`
	Calories float64 `json:"calories"`
	Proteins float64 `json:"proteins"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

type DayTotals struct {
	Calories int     `json:"calories"`
	Proteins float64 `json:"proteins"`
	Carbs    float64 `json:"carbs"`
	Fats     float64 `json:"fats"`
}

type TodayBreakdown struct {
	Date   string                   `json:"date"`
	Meals  map[string][]EntryDetail `json:"meals"`
	Totals DayTotals                `json:"totals"`
}

// TodayBreakdown groups the day's entries by meal slot with scaled
// values per entry.
func (s *NutritionService) TodayBreakdown(ctx context.Context, userID uint) (*TodayBreakdown, error) {
	now := time.Now()
	var entries []models.NutritionLogEntry
	if err := s.db.WithContext(ctx).Preload("Food").
		Where("user_id = ? AND consumed_at >= ? AND consumed_at < ?",
			userID, dayStart(now), dayEnd(now)).
		Order("consumed_at ASC").
		Find(&entries).Error; err != nil {
		return nil, err
	}

	out := &TodayBreakdown{
		Date:  dayStart(now).Format("2006-01-02"),
		Meals: map[string][]EntryDetail{},
	}
	var cals, protein, carbs, fat float64
	for _, e := range entries {
		detail := EntryDetail{
			ID:       e.ID,
			FoodID:   e.FoodID,
			FoodName: e.Food.Name,
			Quantity: e.Quantity,
			Calories: round1(scaled(float64(e.Food.Calories), e.Quantity)),
			Proteins: round1(scaled(e.Food.Protein, e.Quantity)),
			Carbs:    round1(scaled(e.Food.Carbs, e.Quantity)),
			Fats:     round1(scaled(e.Food.Fat, e.Quantity)),
		}
		slot := string(e.MealSlot)
		out.Meals[slot] = append(out.Meals[slot], detail)

		cals += scaled(float64(e.Food.Calories), e.Quantity)
		protein += scaled(e.Food.Protein, e.Quantity)
		carbs += scaled(e.Food.Carbs, e.Quantity)
		fat += scaled(e.Food.Fat, e.Quantity)
	}
	out.Totals = DayTotals{
		Calories: int(math.Round(cals)),
		Proteins: round1(protein),
		Carbs:    round1(carbs),
		Fats:     round1(fat),
	}
	return out, nil
}

// ---------- History ----------

type DayHistory struct {
	Date          string  `json:"date"`
	Calories      int     `json:"calories"`
	Proteins      float64 `json:"proteins"`
	Carbs         float64 `json:"carbs"`
	Fats          float64 `json:"fats"`
	GoalCompleted bool    `json:"goalCompleted"`
}

type History struct {
	History []DayHistory `json:"history"`
}

// History rolls entries up per calendar day, newest first. Values are
// accumulated, never averaged. The default window is the last 7 days
// ending today. Per-day completion compares against the current goal;
// a retroactive goal change rewrites historical flags.
func (s *NutritionService) History(ctx context.Context, userID uint, start, end *time.Time) (*History, error) {
	now := time.Now()
	to := dayEnd(now)
	from := dayStart(now.AddDate(0, 0, -6))
	if end != nil {
		to = dayEnd(*end)
	}
	if start != nil {
		from = dayStart(*start)
	}

	var entries []models.NutritionLogEntry
	if err := s.db.WithContext(ctx).Preload("Food").
		Where("user_id = ? AND consumed_at >= ? AND consumed_at < ?", userID, from, to).
		Find(&entries).Error; err != nil {
		return nil, err
	}

	goal := 0.0
	if pref, err := s.prefs.GetCurrent(ctx, userID); err == nil {
		goal = pref.DailyCalorieGoal
	} else if !errors.Is(err, ErrPreferencesNotConfigured) {
		return nil, err
	}

	type acc struct{ cals, protein, carbs, fat float64 }
	days := map[string]*acc{}
	for _, e := range entries {
		key := dayStart(e.ConsumedAt).Format("2006-01-02")
		a := days[key]
		if a == nil {
			a = &acc{}
			days[key] = a
		}
		a.cals += scaled(float64(e.Food.Calories), e.Quantity)
		a.protein += scaled(e.Food.Protein, e.Quantity)
		a.carbs += scaled(e.Food.Carbs, e.Quantity)
		a.fat += scaled(e.Food.Fat, e.Quantity)
	}

	out := &History{History: make([]DayHistory, 0, len(days))}
	for key, a := range days {
		out.History = append(out.History, DayHistory{
			Date:          key,
			Calories:      int(math.Round(a.cals)),
			Proteins:      round1(a.protein),
			Carbs:         round1(a.carbs),
			Fats:          round1(a.fat),
			GoalCompleted: goal > 0 && a.cals >= goal,
		})
	}
	sort.Slice(out.History, func(i, j int) bool {
		return out.History[i].Date > out.History[j].Date
	})
	return out, nil
}
