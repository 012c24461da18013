package services

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"healthycore/models"
	"healthycore/utils"
)

func seedAccount(t *testing.T, svc *AuthService, email, password string) *models.User {
	t.Helper()
	hashed, err := utils.HashPassword(password)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := models.User{
		Email:     email,
		Password:  hashed,
		FirstName: "Test",
		Role:      models.RoleUser,
	}
	if err := svc.db.Create(&user).Error; err != nil {
		t.Fatalf("create user: %v", err)
	}
	return &user
}

func TestAuthenticate(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	db := newTestDB(t)
	svc := NewAuthService(db)
	seedAccount(t, svc, "eve@example.com", "correct-horse")
	ctx := context.Background()

	token, err := svc.Authenticate(ctx, "eve@example.com", "correct-horse")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if token == "" {
		t.Fatal("empty token")
	}

	if _, err := svc.Authenticate(ctx, "eve@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: err = %v, want ErrInvalidCredentials", err)
	}
	if _, err := svc.Authenticate(ctx, "nobody@example.com", "correct-horse"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email: err = %v, want ErrInvalidCredentials", err)
	}
}

func TestForgotPasswordUnknownEmailSilent(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)

	// unknown addresses must not be distinguishable from known ones
	if err := svc.ForgotPassword(context.Background(), "ghost@example.com"); err != nil {
		t.Errorf("unknown email: err = %v, want nil", err)
	}
}

func TestResetPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)
	user := seedAccount(t, svc, "frank@example.com", "old-password")
	ctx := context.Background()

	user.ResetToken = "valid-token"
	user.ResetSentAt = time.Now()
	if err := db.Save(user).Error; err != nil {
		t.Fatalf("save token: %v", err)
	}

	tests := []struct {
		name    string
		email   string
		token   string
		wantErr error
	}{
		{"wrong token", "frank@example.com", "bogus", ErrInvalidResetToken},
		{"unknown email", "ghost@example.com", "valid-token", ErrInvalidResetToken},
		{"valid", "frank@example.com", "valid-token", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := svc.ResetPassword(ctx, tt.email, tt.token, "new-password")
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	// the token is single use and the new password works
	if err := svc.ResetPassword(ctx, "frank@example.com", "valid-token", "again"); !errors.Is(err, ErrInvalidResetToken) {
		t.Errorf("reuse: err = %v, want ErrInvalidResetToken", err)
	}
	os.Setenv("JWT_SECRET", "test-secret")
	if _, err := svc.Authenticate(ctx, "frank@example.com", "new-password"); err != nil {
		t.Errorf("new password rejected: %v", err)
	}
	if _, err := svc.Authenticate(ctx, "frank@example.com", "old-password"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("old password still accepted")
	}
}

func TestResetPasswordExpiredToken(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db)
	user := seedAccount(t, svc, "grace@example.com", "old-password")

	user.ResetToken = "stale-token"
	user.ResetSentAt = time.Now().Add(-2 * time.Hour)
	if err := db.Save(user).Error; err != nil {
		t.Fatalf("save token: %v", err)
	}

	err := svc.ResetPassword(context.Background(), "grace@example.com", "stale-token", "new-password")
	if !errors.Is(err, ErrInvalidResetToken) {
		t.Errorf("expired: err = %v, want ErrInvalidResetToken", err)
	}
}
