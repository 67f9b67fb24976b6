package models

import (
	"time"

	"github.com/google/uuid"
)

// Recipe is the aggregate entity. Tags and ingredients are shared per-user
// records attached through join tables; deleting a recipe leaves them in
// place.
type Recipe struct {
	ID          uint         `gorm:"primarykey" json:"id"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Title       string       `gorm:"size:255;not null" json:"title"`
	Description string       `gorm:"type:text" json:"description"`
	TimeMinutes int          `json:"time_minutes"`
	Price       float64      `json:"price"`
	Link        string       `gorm:"size:255" json:"link"`
	Portions    *float64     `json:"portions"`
	Difficulty  int          `gorm:"default:0" json:"difficulty"`
	Timestamp   time.Time    `json:"timestamp"`
	ImageURL    string       `gorm:"size:255" json:"image"`
	UserID      uuid.UUID    `gorm:"type:varchar(36);not null;index" json:"user_id"`
	Tags        []Tag        `gorm:"many2many:recipe_tags" json:"tags"`
	Ingredients []Ingredient `gorm:"many2many:recipe_ingredients" json:"ingredients"`
}
