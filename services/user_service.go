package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"healthycore/models"
	"healthycore/utils"

	"gorm.io/gorm"
)

type UserService struct {
	db    *gorm.DB
	prefs *PreferenceService
}

func NewUserService(db *gorm.DB, prefs *PreferenceService) *UserService {
	return &UserService{db: db, prefs: prefs}
}

type RegisterInput struct {
	Email            string  `json:"email" binding:"required,email"`
	Password         string  `json:"password" binding:"required,min=8"`
	FirstName        string  `json:"first_name" binding:"required"`
	LastName         string  `json:"last_name"`
	Sex              string  `json:"sex"`
	Birthday         string  `json:"birthday" binding:"required"`    // YYYY-MM-DD
	Height           float64 `json:"height" binding:"required,gt=0"` // cm
	Weight           float64 `json:"weight" binding:"required,gt=0"` // kg
	TargetWeight     float64 `json:"target_weight" binding:"required,gt=0"`
	PlanID           uint    `json:"plan_id" binding:"required"`
	DietID           uint    `json:"diet_id" binding:"required"`
	SedentaryLevelID uint    `json:"sedentary_level_id" binding:"required"`
}

type RegistrationResult struct {
	User       *models.User                  `json:"user"`
	Preference *models.NutritionalPreference `json:"preference"`
	Assessment utils.TargetWeightAssessment  `json:"assessment"`
}

// Register runs the whole onboarding pipeline: create the account,
// record the first weight sample, assess the target weight and persist
// the resulting calorie goal as the user's preference.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*RegistrationResult, error) {
	birthday, err := time.Parse("2006-01-02", in.Birthday)
	if err != nil {
		return nil, errors.New("invalid birthday, expected YYYY-MM-DD")
	}

	sex := strings.ToLower(strings.TrimSpace(in.Sex))
	if sex != models.SexMale && sex != models.SexFemale {
		sex = models.SexUnspecified
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).
		Where("email = ?", in.Email).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	level, err := s.prefs.GetSedentaryLevel(ctx, in.SedentaryLevelID)
	if err != nil {
		return nil, err
	}

	hashed, err := utils.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	assessment := utils.AssessTargetWeight(
		in.Weight, in.TargetWeight, in.Height,
		sex, birthday, level.Factor,
	)

	// An out-of-range target registers at maintenance so the account is
	// still usable; the assessment in the response reports why.
	goal := float64(utils.ComputeWeightChangeEstimation(
		in.Weight, in.Weight, in.Height,
		sex, utils.CalculateAge(birthday), level.Factor,
	).DailyCalories)
	if assessment.IsValid {
		goal = float64(assessment.Estimation.DailyCalories)
	}

	user := models.User{
		Email:        in.Email,
		Password:     hashed,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Sex:          sex,
		Birthday:     birthday,
		Role:         models.RoleUser,
		TargetWeight: in.TargetWeight,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		sample := models.WeightEvolutionSample{
			UserID:     user.ID,
			RecordedAt: time.Now(),
			Weight:     in.Weight,
			Height:     in.Height,
		}
		return tx.Create(&sample).Error
	})
	if err != nil {
		return nil, err
	}

	pref, err := s.prefs.Set(ctx, user.ID, goal, in.PlanID, in.DietID, in.SedentaryLevelID)
	if err != nil {
		return nil, err
	}

	if err := utils.SendWelcomeEmail(user.Email, user.FirstName); err != nil {
		log.Printf("welcome email to %s failed: %v", user.Email, err)
	}

	return &RegistrationResult{User: &user, Preference: pref, Assessment: assessment}, nil
}

// ---------- Weight check-ins ----------

// AddWeightSample appends a check-in and recomputes the calorie goal
// from the new weight against the stored target. The calculator is
// reentrant; nothing else about the preference changes.
func (s *UserService) AddWeightSample(ctx context.Context, userID uint, weightKg, heightCm float64) (*models.WeightEvolutionSample, error) {
	if weightKg <= 0 || heightCm <= 0 {
		return nil, errors.New("weight and height must be positive")
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	sample := models.WeightEvolutionSample{
		UserID:     userID,
		RecordedAt: time.Now(),
		Weight:     weightKg,
		Height:     heightCm,
	}
	if err := s.db.WithContext(ctx).Create(&sample).Error; err != nil {
		return nil, err
	}

	pref, err := s.prefs.GetCurrent(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrPreferencesNotConfigured) {
			return &sample, nil
		}
		return nil, err
	}

	est := utils.ComputeWeightChangeEstimation(
		weightKg, user.TargetWeight, heightCm,
		user.Sex, utils.CalculateAge(user.Birthday), pref.SedentaryLevel.Factor,
	)
	if err := s.prefs.UpdateCalorieGoal(ctx, userID, float64(est.DailyCalories)); err != nil {
		return nil, err
	}
	return &sample, nil
}

func (s *UserService) WeightHistory(ctx context.Context, userID uint) ([]models.WeightEvolutionSample, error) {
	var samples []models.WeightEvolutionSample
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("recorded_at DESC").
		Find(&samples).Error
	return samples, err
}

// LatestSample returns the current weight/height for recalculation.
func (s *UserService) LatestSample(ctx context.Context, userID uint) (*models.WeightEvolutionSample, error) {
	var sample models.WeightEvolutionSample
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("recorded_at DESC").
		First(&sample).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &sample, nil
}

// ---------- Profile ----------

type ProfileInput struct {
	FirstName      string  `json:"first_name"`
	LastName       string  `json:"last_name"`
	Sex            string  `json:"sex"`
	Birthday       string  `json:"birthday"` // YYYY-MM-DD
	TargetWeight   float64 `json:"target_weight"`
	ProfilePicture string  `json:"profile_picture"` // base64 data URL
}

func (s *UserService) GetProfile(ctx context.Context, userID uint) (map[string]interface{}, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	age := 0
	if !user.Birthday.IsZero() {
		age = utils.CalculateAge(user.Birthday)
	}

	profile := map[string]interface{}{
		"id":              user.ID,
		"email":           user.Email,
		"first_name":      user.FirstName,
		"last_name":       user.LastName,
		"sex":             user.Sex,
		"birthday":        user.Birthday.Format("2006-01-02"),
		"age":             age,
		"target_weight":   user.TargetWeight,
		"profile_picture": user.ProfilePicture,
	}

	if sample, err := s.LatestSample(ctx, userID); err == nil {
		profile["weight"] = sample.Weight
		profile["height"] = sample.Height
		profile["bmi"] = utils.Round2(utils.ComputeBMI(sample.Weight, sample.Height))
	}
	return profile, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, userID uint, in ProfileInput) error {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if in.FirstName != "" {
		user.FirstName = in.FirstName
	}
	if in.LastName != "" {
		user.LastName = in.LastName
	}
	if in.Sex != "" {
		sex := strings.ToLower(strings.TrimSpace(in.Sex))
		if sex != models.SexMale && sex != models.SexFemale {
			sex = models.SexUnspecified
		}
		user.Sex = sex
	}
	if in.Birthday != "" {
		if birthday, err := time.Parse("2006-01-02", in.Birthday); err == nil {
			user.Birthday = birthday
		}
	}

	targetChanged := in.TargetWeight > 0 && in.TargetWeight != user.TargetWeight
	if targetChanged {
		user.TargetWeight = in.TargetWeight
	}

	if in.ProfilePicture != "" {
		url, err := utils.UploadBase64ImageToS3(in.ProfilePicture, "profile-pictures")
		if err != nil {
			return err
		}
		user.ProfilePicture = url
	}

	if err := s.db.WithContext(ctx).Save(&user).Error; err != nil {
		return err
	}

	if targetChanged {
		if err := s.recomputeGoal(ctx, &user); err != nil &&
			!errors.Is(err, ErrPreferencesNotConfigured) && !errors.Is(err, ErrUserNotFound) {
			return err
		}
	}
	return nil
}

func (s *UserService) recomputeGoal(ctx context.Context, user *models.User) error {
	sample, err := s.LatestSample(ctx, user.ID)
	if err != nil {
		return err
	}
	pref, err := s.prefs.GetCurrent(ctx, user.ID)
	if err != nil {
		return err
	}
	est := utils.ComputeWeightChangeEstimation(
		sample.Weight, user.TargetWeight, sample.Height,
		user.Sex, utils.CalculateAge(user.Birthday), pref.SedentaryLevel.Factor,
	)
	return s.prefs.UpdateCalorieGoal(ctx, user.ID, float64(est.DailyCalories))
}

// ---------- Admin ----------

func (s *UserService) ListUsers(ctx context.Context, page, limit int) ([]models.User, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	var total int64
	if err := s.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var users []models.User
	err := s.db.WithContext(ctx).
		Order("id ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	return users, total, err
}

func (s *UserService) DeleteUser(ctx context.Context, userID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var user models.User
		if err := tx.First(&user, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.NutritionLogEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", userID).Delete(&models.WeightEvolutionSample{}).Error; err != nil {
			return err
		}
		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.NutritionalPreference{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&user).Error
	})
}
