package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

const (
	SexMale        = "male"
	SexFemale      = "female"
	SexUnspecified = "unspecified"
)

type User struct {
	gorm.Model
	Email          string `gorm:"uniqueIndex;not null"`
	Password       string `gorm:"not null"`
	FirstName      string
	LastName       string
	Sex            string `gorm:"size:16;default:unspecified"`
	Birthday       time.Time
	Role           string  `gorm:"size:16;default:user"`
	TargetWeight   float64 // kg; 0 until onboarding records one
	ProfilePicture string
	ResetToken     string `gorm:"size:64"`
	ResetSentAt    time.Time
}
