package utils

import (
	"testing"
	"time"
)

func TestValidateTargetWeight(t *testing.T) {
	tests := []struct {
		name      string
		target    float64
		height    float64
		wantValid bool
	}{
		{"severely underweight target", 40, 180, false}, // BMI ≈ 12.3
		{"just below lower bound", 59.9241, 180, false}, // BMI ≈ 18.495, rounds to 18.5
		{"just above lower bound", 59.95, 180, true},    // BMI ≈ 18.50
		{"normal target", 70, 175, true},
		{"just below upper bound", 97.1, 180, true},  // BMI ≈ 29.97
		{"just above upper bound", 97.3, 180, false}, // BMI ≈ 30.03
		{"above upper bound", 100, 170, false},       // BMI ≈ 34.6
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := ValidateTargetWeight(tt.target, tt.height)
			if v.IsValid != tt.wantValid {
				t.Errorf("IsValid = %v (BMI %f), want %v", v.IsValid, v.TargetBMI, tt.wantValid)
			}
			if v.Message == "" {
				t.Error("message must always be populated")
			}
		})
	}
}

func TestAssessTargetWeightShortCircuits(t *testing.T) {
	birthday := time.Now().AddDate(-30, 0, 0)

	a := AssessTargetWeight(80, 40, 180, "male", birthday, 1.55)
	if a.IsValid {
		t.Fatal("expected invalid assessment for BMI ≈ 12.3")
	}
	if a.Estimation != nil {
		t.Error("no estimation may be computed for an invalid target")
	}
}

func TestAssessTargetWeightValid(t *testing.T) {
	birthday := time.Now().AddDate(-30, 0, 0)

	a := AssessTargetWeight(80, 72, 180, "male", birthday, 1.55)
	if !a.IsValid {
		t.Fatalf("expected valid assessment, got message %q", a.Message)
	}
	if a.Estimation == nil {
		t.Fatal("expected estimation for a valid target")
	}
	if a.Estimation.Orientation != OrientationLoss {
		t.Errorf("Orientation = %s, want loss", a.Estimation.Orientation)
	}
}

func TestCalculateAge(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name     string
		birthday time.Time
		want     int
	}{
		{"birthday already passed", now.AddDate(-30, 0, -1), 30},
		{"birthday not yet this year", now.AddDate(-30, 0, 1), 29},
		{"birthday today", now.AddDate(-30, 0, 0), 30},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CalculateAge(tt.birthday); got != tt.want {
				t.Errorf("CalculateAge = %d, want %d", got, tt.want)
			}
		})
	}
}
