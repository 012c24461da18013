package services

import (
	"context"
	"errors"
	"log"
	"time"

	"healthycore/models"
	"healthycore/utils"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const resetTokenTTL = time.Hour

type AuthService struct{ db *gorm.DB }

func NewAuthService(db *gorm.DB) *AuthService { return &AuthService{db: db} }

func (s *AuthService) Authenticate(ctx context.Context, email, password string) (string, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}

	if !utils.CheckPasswordHash(password, user.Password) {
		return "", ErrInvalidCredentials
	}

	return utils.GenerateJWT(user.ID, user.Email, user.Role)
}

// ForgotPassword issues a reset token and mails it. An unknown email is
// reported as success so the endpoint cannot be used to probe accounts.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		return err
	}

	user.ResetToken = uuid.NewString()
	user.ResetSentAt = time.Now()
	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return err
	}

	if err := utils.SendResetEmail(user.Email, user.ResetToken); err != nil {
		log.Printf("reset email to %s failed: %v", user.Email, err)
		return err
	}
	return nil
}

func (s *AuthService) ResetPassword(ctx context.Context, email, token, newPassword string) error {
	var user models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrInvalidResetToken
		}
		return err
	}

	if user.ResetToken == "" || user.ResetToken != token ||
		time.Since(user.ResetSentAt) > resetTokenTTL {
		return ErrInvalidResetToken
	}

	hashed, err := utils.HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.Password = hashed
	user.ResetToken = ""
	return s.db.WithContext(ctx).Save(&user).Error
}
