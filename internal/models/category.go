package models

import (
	"time"
)

// DefaultCategoryColor is the display color assigned when none is given.
const DefaultCategoryColor = "#10B981"

// Category groups articles under a fixed, enumerated name.
type Category struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Color       string    `json:"color" db:"color"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// ValidCategoryNames is the closed set of category names.
var ValidCategoryNames = map[string]bool{
	"Technology": true,
	"Design":     true,
	"Marketing":  true,
	"Business":   true,
	"Health":     true,
	"Travel":     true,
}

// MaxCategoryDescriptionLength bounds the category description.
const MaxCategoryDescriptionLength = 200

// DefaultCategories are seeded when the category collection is empty.
var DefaultCategories = []Category{
	{Name: "Technology", Description: "Latest trends and insights in tech"},
	{Name: "Design", Description: "UI/UX and visual design inspiration"},
	{Name: "Marketing", Description: "Digital marketing strategies and tips"},
	{Name: "Business", Description: "Entrepreneurship and business growth"},
	{Name: "Health", Description: "Wellness and healthy living"},
	{Name: "Travel", Description: "Travel guides and experiences"},
}

// CategoryWithCount pairs a category with its derived article count.
type CategoryWithCount struct {
	Category
	ArticleCount int `json:"article_count"`
}
