package models

import (
	"time"

	"github.com/google/uuid"
)

// Tag labels recipes for filtering. Uniqueness of (user, name) is enforced
// by the nested-resolution flow and backed by a composite index.
type Tag struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
	Name      string    `gorm:"size:255;not null;uniqueIndex:idx_tag_user_name" json:"name"`
	UserID    uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex:idx_tag_user_name" json:"-"`
}
