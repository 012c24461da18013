package services

import (
	"context"
	"errors"
	"strings"

	"healthycore/models"

	"gorm.io/gorm"
)

type FoodService struct{ db *gorm.DB }

func NewFoodService(db *gorm.DB) *FoodService { return &FoodService{db: db} }

// FoodInput carries patch semantics throughout: nil numeric facts and
// an absent barcode leave the stored values untouched on update. An
// explicit empty barcode clears the column.
type FoodInput struct {
	Name            string   `json:"name" binding:"required"`
	Category        string   `json:"category" binding:"required"`
	Origin          string   `json:"origin"`
	Calories        *int     `json:"calories" binding:"omitempty,min=0"`
	Protein         *float64 `json:"protein" binding:"omitempty,min=0"`
	Carbs           *float64 `json:"carbs" binding:"omitempty,min=0"`
	Fat             *float64 `json:"fat" binding:"omitempty,min=0"`
	Barcode         *string  `json:"barcode"`
	PreparationTime *int     `json:"preparation_time"`
	Ingredients     string   `json:"ingredients"`
	Image           string   `json:"image"` // base64 data URL, optional
	TagIDs          []uint   `json:"tag_ids"`
}

// Create validates the catalog invariants before persisting: category is
// closed, a human-entered product carries a barcode, and barcodes are
// unique across the catalog.
func (s *FoodService) Create(ctx context.Context, in FoodInput, imageURL string) (*models.FoodItem, error) {
	category := strings.ToLower(strings.TrimSpace(in.Category))
	if category != models.FoodCategoryProduct && category != models.FoodCategoryRecipe {
		return nil, ErrInvalidFoodCategory
	}

	origin := in.Origin
	if origin == "" {
		origin = models.FoodOriginAdmin
	}

	barcode := in.Barcode
	if barcode != nil && strings.TrimSpace(*barcode) == "" {
		barcode = nil
	}

	if category == models.FoodCategoryProduct && origin != models.FoodOriginCatalog && barcode == nil {
		return nil, ErrBarcodeRequired
	}

	if barcode != nil {
		var count int64
		if err := s.db.WithContext(ctx).Model(&models.FoodItem{}).
			Where("barcode = ?", *barcode).Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrBarcodeTaken
		}
	}

	tags, err := s.resolveTags(ctx, in.TagIDs)
	if err != nil {
		return nil, err
	}

	food := &models.FoodItem{
		Name:            in.Name,
		Category:        category,
		Origin:          origin,
		Barcode:         barcode,
		PreparationTime: in.PreparationTime,
		Ingredients:     in.Ingredients,
		ImageURL:        imageURL,
		Tags:            tags,
	}
	if in.Calories != nil {
		food.Calories = *in.Calories
	}
	if in.Protein != nil {
		food.Protein = *in.Protein
	}
	if in.Carbs != nil {
		food.Carbs = *in.Carbs
	}
	if in.Fat != nil {
		food.Fat = *in.Fat
	}
	if err := s.db.WithContext(ctx).Create(food).Error; err != nil {
		return nil, err
	}
	return food, nil
}

func (s *FoodService) Update(ctx context.Context, id uint, in FoodInput, imageURL string) (*models.FoodItem, error) {
	var food models.FoodItem
	if err := s.db.WithContext(ctx).Preload("Tags").First(&food, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFoodNotFound
		}
		return nil, err
	}

	if in.Name != "" {
		food.Name = in.Name
	}
	if in.Category != "" {
		category := strings.ToLower(strings.TrimSpace(in.Category))
		if category != models.FoodCategoryProduct && category != models.FoodCategoryRecipe {
			return nil, ErrInvalidFoodCategory
		}
		food.Category = category
	}
	if in.Calories != nil {
		food.Calories = *in.Calories
	}
	if in.Protein != nil {
		food.Protein = *in.Protein
	}
	if in.Carbs != nil {
		food.Carbs = *in.Carbs
	}
	if in.Fat != nil {
		food.Fat = *in.Fat
	}
	if in.Barcode != nil {
		if strings.TrimSpace(*in.Barcode) == "" {
			food.Barcode = nil
		} else {
			var count int64
			if err := s.db.WithContext(ctx).Model(&models.FoodItem{}).
				Where("barcode = ? AND id <> ?", *in.Barcode, food.ID).Count(&count).Error; err != nil {
				return nil, err
			}
			if count > 0 {
				return nil, ErrBarcodeTaken
			}
			food.Barcode = in.Barcode
		}
	}
	if food.Category == models.FoodCategoryProduct && food.Origin != models.FoodOriginCatalog {
		if food.Barcode == nil || strings.TrimSpace(*food.Barcode) == "" {
			return nil, ErrBarcodeRequired
		}
	}
	if in.PreparationTime != nil {
		food.PreparationTime = in.PreparationTime
	}
	if in.Ingredients != "" {
		food.Ingredients = in.Ingredients
	}
	if imageURL != "" {
		food.ImageURL = imageURL
	}

	if err := s.db.WithContext(ctx).Save(&food).Error; err != nil {
		return nil, err
	}

	if in.TagIDs != nil {
		tags, err := s.resolveTags(ctx, in.TagIDs)
		if err != nil {
			return nil, err
		}
		if err := s.db.WithContext(ctx).Model(&food).Association("Tags").Replace(tags); err != nil {
			return nil, err
		}
		food.Tags = tags
	}
	return &food, nil
}

// Delete removes a food for good. Tag links and the food's historical
// log entries go with it in the same transaction; there is no soft
// delete for nutritional history.
func (s *FoodService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var food models.FoodItem
		if err := tx.First(&food, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFoodNotFound
			}
			return err
		}
		if err := tx.Where("food_id = ?", food.ID).
			Delete(&models.NutritionLogEntry{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&food).Association("Tags").Clear(); err != nil {
			return err
		}
		return tx.Unscoped().Delete(&food).Error
	})
}

func (s *FoodService) GetByID(ctx context.Context, id uint) (*models.FoodItem, error) {
	var food models.FoodItem
	err := s.db.WithContext(ctx).Preload("Tags").First(&food, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFoodNotFound
		}
		return nil, err
	}
	return &food, nil
}

func (s *FoodService) GetByBarcode(ctx context.Context, barcode string) (*models.FoodItem, error) {
	var food models.FoodItem
	err := s.db.WithContext(ctx).Preload("Tags").
		Where("barcode = ?", barcode).First(&food).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFoodNotFound
		}
		return nil, err
	}
	return &food, nil
}

// List searches the catalog by name with optional category and tag
// filters, paginated.
func (s *FoodService) List(ctx context.Context, query, category string, tagID uint, page, limit int) ([]models.FoodItem, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	q := s.db.WithContext(ctx).Model(&models.FoodItem{})
	if query != "" {
		q = q.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(query)+"%")
	}
	if category != "" {
		q = q.Where("category = ?", strings.ToLower(category))
	}
	if tagID != 0 {
		q = q.Joins("JOIN food_item_tags ON food_item_tags.food_item_id = food_items.id").
			Where("food_item_tags.tag_id = ?", tagID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var foods []models.FoodItem
	err := q.Preload("Tags").
		Order("name ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&foods).Error
	return foods, total, err
}

func (s *FoodService) resolveTags(ctx context.Context, ids []uint) ([]models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var tags []models.Tag
	if err := s.db.WithContext(ctx).Where("id IN ?", ids).Find(&tags).Error; err != nil {
		return nil, err
	}
	if len(tags) != len(ids) {
		return nil, ErrTagNotFound
	}
	return tags, nil
}

// ---------- Tags ----------

func (s *FoodService) CreateTag(ctx context.Context, name string) (*models.Tag, error) {
	tag := models.Tag{Name: strings.TrimSpace(name)}
	if err := s.db.WithContext(ctx).Where("name = ?", tag.Name).FirstOrCreate(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (s *FoodService) ListTags(ctx context.Context) ([]models.Tag, error) {
	var tags []models.Tag
	err := s.db.WithContext(ctx).Order("name ASC").Find(&tags).Error
	return tags, err
}

func (s *FoodService) DeleteTag(ctx context.Context, id uint) error {
	var tag models.Tag
	if err := s.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrTagNotFound
		}
		return err
	}
	if err := s.db.WithContext(ctx).Exec(
		"DELETE FROM food_item_tags WHERE tag_id = ?", tag.ID).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Unscoped().Delete(&tag).Error
}
