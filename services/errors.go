package services

import "errors"

var (
	ErrFoodNotFound             = errors.New("food item not found")
	ErrTagNotFound              = errors.New("tag not found")
	ErrEntryNotFoundOrNotOwned  = errors.New("log entry not found or not owned by user")
	ErrPreferencesNotConfigured = errors.New("nutritional preferences not configured")
	ErrPlanNotFound             = errors.New("nutritional plan not found")
	ErrDietNotFound             = errors.New("diet not found")
	ErrSedentaryLevelNotFound   = errors.New("sedentary level not found")
	ErrUserNotFound             = errors.New("user not found")
	ErrEmailTaken               = errors.New("email already registered")
	ErrInvalidCredentials       = errors.New("invalid email or password")
	ErrInvalidResetToken        = errors.New("invalid or expired reset token")
	ErrBarcodeRequired          = errors.New("product food items require a barcode")
	ErrBarcodeTaken             = errors.New("barcode already registered")
	ErrInvalidFoodCategory      = errors.New("category must be 'product' or 'recipe'")
	ErrInvalidMacroSplit        = errors.New("macro percentages must sum to 100")
	ErrInvalidQuantity          = errors.New("quantity must be positive")
)
