package models

import "gorm.io/gorm"

const (
	FoodCategoryProduct = "product"
	FoodCategoryRecipe  = "recipe"
)

const (
	FoodOriginUser    = "user"
	FoodOriginAdmin   = "admin"
	FoodOriginCatalog = "external-catalog"
)

// FoodItem holds nutritional facts per 100 g for products,
// per portion for recipes.
type FoodItem struct {
	gorm.Model
	Name            string  `gorm:"not null;index" json:"name"`
	Category        string  `gorm:"size:16;not null" json:"category"`
	Origin          string  `gorm:"size:24;not null" json:"origin"`
	Calories        int     `json:"calories"` // kcal
	Protein         float64 `json:"protein"`  // g
	Carbs           float64 `json:"carbs"`    // g
	Fat             float64 `json:"fat"`      // g
	Barcode         *string `gorm:"uniqueIndex" json:"barcode,omitempty"`
	PreparationTime *int    `json:"preparation_time,omitempty"` // minutes
	Ingredients     string  `gorm:"type:text" json:"ingredients,omitempty"`
	ImageURL        string  `json:"image_url,omitempty"`
	Tags            []Tag   `gorm:"many2many:food_item_tags" json:"tags,omitempty"`
}

type Tag struct {
	gorm.Model
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}
