package utils

import "math"

// KcalPerKgBodyMass is the caloric cost of one kilogram of body mass.
const KcalPerKgBodyMass = 7700.0

// maintainBandKg: weight differences below this are treated as "no change".
const maintainBandKg = 0.1

// kcal per gram of each macronutrient (Atwater factors).
const (
	KcalPerGramCarbs   = 4.0
	KcalPerGramProtein = 4.0
	KcalPerGramFat     = 9.0
)

const (
	lossCalorieFactor = 0.9 // 10% deficit
	gainCalorieFactor = 1.1 // 10% surplus
)

const (
	OrientationMaintain = "maintain"
	OrientationLoss     = "loss"
	OrientationGain     = "gain"
)

// ComputeBMR uses the Mifflin-St Jeor equation. Any sex other than
// "male" uses the lower offset.
func ComputeBMR(weightKg, heightCm float64, sex string, ageYears int) float64 {
	base := 10.0*weightKg + 6.25*heightCm - 5.0*float64(ageYears)
	if sex == "male" {
		return base + 5.0
	}
	return base - 161.0
}

func ComputeTDEE(bmr, activityFactor float64) float64 {
	return bmr * activityFactor
}

// ComputeBMI expects weight in kilograms and height in centimeters.
func ComputeBMI(weightKg, heightCm float64) float64 {
	h := heightCm / 100.0
	return weightKg / (h * h)
}

type EstimationResult struct {
	Orientation       string  `json:"orientation"`
	BMR               int     `json:"bmr"`               // kcal
	TDEE              int     `json:"tdee"`              // kcal
	DailyCalories     int     `json:"dailyCalories"`     // kcal
	CaloricAdjustment int     `json:"caloricAdjustment"` // kcal, signed
	EstimatedDays     int     `json:"estimatedDays"`
	EstimatedWeeks    int     `json:"estimatedWeeks"`
	WeeklyChange      float64 `json:"weeklyChange"` // kg, signed, 2 decimals
}

// ComputeWeightChangeEstimation projects how long reaching targetWeightKg
// takes on a 10% calorie deficit/surplus over TDEE.
func ComputeWeightChangeEstimation(
	currentWeightKg, targetWeightKg, heightCm float64,
	sex string, ageYears int, activityFactor float64,
) EstimationResult {
	bmr := ComputeBMR(currentWeightKg, heightCm, sex, ageYears)
	tdee := ComputeTDEE(bmr, activityFactor)

	weightDiff := targetWeightKg - currentWeightKg
	if math.Abs(weightDiff) < maintainBandKg {
		return EstimationResult{
			Orientation:   OrientationMaintain,
			BMR:           int(math.Round(bmr)),
			TDEE:          int(math.Round(tdee)),
			DailyCalories: int(math.Round(tdee)),
		}
	}

	orientation := OrientationGain
	daily := tdee * gainCalorieFactor
	if weightDiff < 0 {
		orientation = OrientationLoss
		daily = tdee * lossCalorieFactor
	}
	adjustment := daily - tdee

	totalCaloricChange := math.Abs(weightDiff) * KcalPerKgBodyMass
	dailyChange := math.Abs(adjustment)

	days := 0
	if dailyChange >= 1 { // guard division by ~zero
		days = int(math.Ceil(totalCaloricChange / dailyChange))
	}
	weeks := 0
	if days > 0 {
		weeks = int(math.Ceil(float64(days) / 7.0))
	}

	weekly := 0.0
	if days > 0 {
		weekly = math.Abs(weightDiff) / float64(weeks)
		if orientation == OrientationLoss {
			weekly = -weekly
		}
	}

	return EstimationResult{
		Orientation:       orientation,
		BMR:               int(math.Round(bmr)),
		TDEE:              int(math.Round(tdee)),
		DailyCalories:     int(math.Round(daily)),
		CaloricAdjustment: int(math.Round(adjustment)),
		EstimatedDays:     days,
		EstimatedWeeks:    weeks,
		WeeklyChange:      Round2(weekly),
	}
}

type MacroTarget struct {
	Grams      int     `json:"grams"`
	Calories   int     `json:"calories"`
	Percentage float64 `json:"percentage"`
}

type MacroDistribution struct {
	Carbs   MacroTarget `json:"carbs"`
	Protein MacroTarget `json:"protein"`
	Fat     MacroTarget `json:"fat"`
}

// ComputeMacroDistribution splits a daily calorie budget across the three
// macronutrients at 4/4/9 kcal per gram.
func ComputeMacroDistribution(dailyCalories, carbsPct, proteinPct, fatPct float64) MacroDistribution {
	target := func(pct, kcalPerGram float64) MacroTarget {
		calories := dailyCalories * pct / 100.0
		return MacroTarget{
			Grams:      int(math.Round(calories / kcalPerGram)),
			Calories:   int(math.Round(calories)),
			Percentage: pct,
		}
	}
	return MacroDistribution{
		Carbs:   target(carbsPct, KcalPerGramCarbs),
		Protein: target(proteinPct, KcalPerGramProtein),
		Fat:     target(fatPct, KcalPerGramFat),
	}
}

func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
