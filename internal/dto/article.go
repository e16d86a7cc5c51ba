package dto

import "time"

type CreateArticleRequest struct {
	Title         string  `json:"title" binding:"required,min=2,max=120"`
	Description   string  `json:"description" binding:"omitempty,max=2000"`
	Price         float64 `json:"price" binding:"required,gte=0"`
	CategoryID    *uint   `json:"category_id" binding:"omitempty"`
	SubcategoryID *uint   `json:"subcategory_id" binding:"omitempty"`
}

type UpdateArticleRequest struct {
	Title         string   `json:"title" binding:"omitempty,min=2,max=120"`
	Description   string   `json:"description" binding:"omitempty,max=2000"`
	Price         *float64 `json:"price" binding:"omitempty,gte=0"`
	CategoryID    *uint    `json:"category_id" binding:"omitempty"`
	SubcategoryID *uint    `json:"subcategory_id" binding:"omitempty"`
}

type ArticleResponse struct {
	ID            uint      `json:"id"`
	Title         string    `json:"title"`
	Description   string    `json:"description,omitempty"`
	Price         float64   `json:"price"`
	CategoryID    *uint     `json:"category_id,omitempty"`
	SubcategoryID *uint     `json:"subcategory_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
