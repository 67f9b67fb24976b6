package models

import (
	"time"

	"github.com/google/uuid"
)

type Ingredient struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
	Name      string    `gorm:"size:255;not null;uniqueIndex:idx_ingredient_user_name" json:"name"`
	Amount    *float64  `json:"amount"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_ingredient_user_name" json:"-"`
}
