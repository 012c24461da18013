package utils

import (
	"fmt"
	"time"
)

// BMI bounds a target weight must fall in to be accepted. The upper
// bound is intentionally lenient.
const (
	MinTargetBMI = 18.5
	MaxTargetBMI = 30.0
)

type TargetWeightValidation struct {
	TargetBMI float64 `json:"targetBMI"`
	IsValid   bool    `json:"isValid"`
	Message   string  `json:"message"`
}

// ValidateTargetWeight checks the BMI the target weight would produce.
// An out-of-range target is a normal, reportable outcome, not an error.
// The raw BMI is compared against the bounds; rounding is display-only.
func ValidateTargetWeight(targetWeightKg, heightCm float64) TargetWeightValidation {
	raw := ComputeBMI(targetWeightKg, heightCm)
	bmi := Round2(raw)
	switch {
	case raw < MinTargetBMI:
		return TargetWeightValidation{
			TargetBMI: bmi,
			Message:   fmt.Sprintf("target weight gives a BMI of %.2f, below the healthy minimum of %.1f", bmi, MinTargetBMI),
		}
	case raw > MaxTargetBMI:
		return TargetWeightValidation{
			TargetBMI: bmi,
			Message:   fmt.Sprintf("target weight gives a BMI of %.2f, above the allowed maximum of %.1f", bmi, MaxTargetBMI),
		}
	default:
		return TargetWeightValidation{
			TargetBMI: bmi,
			IsValid:   true,
			Message:   "target weight is within the accepted BMI range",
		}
	}
}

type TargetWeightAssessment struct {
	IsValid    bool              `json:"isValid"`
	TargetBMI  float64           `json:"targetBMI"`
	Estimation *EstimationResult `json:"estimation,omitempty"`
	Message    string            `json:"message"`
}

// AssessTargetWeight validates the target BMI first and only computes the
// weight-change estimation when the target passes.
func AssessTargetWeight(
	currentWeightKg, targetWeightKg, heightCm float64,
	sex string, birthday time.Time, activityFactor float64,
) TargetWeightAssessment {
	v := ValidateTargetWeight(targetWeightKg, heightCm)
	if !v.IsValid {
		return TargetWeightAssessment{TargetBMI: v.TargetBMI, Message: v.Message}
	}

	est := ComputeWeightChangeEstimation(
		currentWeightKg, targetWeightKg, heightCm,
		sex, CalculateAge(birthday), activityFactor,
	)
	return TargetWeightAssessment{
		IsValid:    true,
		TargetBMI:  v.TargetBMI,
		Estimation: &est,
		Message:    v.Message,
	}
}

// CalculateAge returns whole years, one less if the birthday has not
// occurred yet this year.
func CalculateAge(birthday time.Time) int {
	now := time.Now()
	age := now.Year() - birthday.Year()
	if now.Month() < birthday.Month() ||
		(now.Month() == birthday.Month() && now.Day() < birthday.Day()) {
		age--
	}
	return age
}
