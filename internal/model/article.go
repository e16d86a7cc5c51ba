package model

import "gorm.io/gorm"

// Article is a catalog entry. The auth core treats this as a plain CRUD
// collaborator; it exists mainly so role enforcement has real routes to
// guard.
type Article struct {
	gorm.Model
	Title         string  `gorm:"column:title;not null"`
	Description   string  `gorm:"column:description"`
	Price         float64 `gorm:"column:price;not null"`
	CategoryID    *uint   `gorm:"column:category_id;index"`
	SubcategoryID *uint   `gorm:"column:subcategory_id;index"`
	ImagePath     string  `gorm:"column:image_path"`
}
