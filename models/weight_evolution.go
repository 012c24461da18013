package models

import "time"

// WeightEvolutionSample is an append-only check-in series; the latest
// sample is the user's current weight/height for any recalculation.
type WeightEvolutionSample struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	UserID     uint      `gorm:"index;not null" json:"user_id"`
	RecordedAt time.Time `gorm:"index;not null" json:"recorded_at"`
	Weight     float64   `json:"weight"` // kg
	Height     float64   `json:"height"` // cm
	CreatedAt  time.Time `json:"-"`
}
