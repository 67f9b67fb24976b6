package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forkful/recipebook-backend/internal/models"
)

// TagService handles tag operations, scoped to the owning user.
type TagService struct {
	db *gorm.DB
}

func NewTagService(db *gorm.DB) *TagService {
	return &TagService{db: db}
}

// ListTags returns the user's tags ordered by name descending. With
// assignedOnly set, tags not referenced by any of the user's recipes are
// excluded.
func (s *TagService) ListTags(ctx context.Context, userID uuid.UUID, assignedOnly bool) ([]models.Tag, error) {
	query := s.db.WithContext(ctx).Model(&models.Tag{}).
		Where("tags.user_id = ?", userID).
		Order("tags.name DESC")

	if assignedOnly {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.tag_id = tags.id").
			Joins("JOIN recipes ON recipes.id = recipe_tags.recipe_id").
			Where("recipes.user_id = ?", userID)
	}

	var tags []models.Tag
	if err := query.Distinct("tags.*").Find(&tags).Error; err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *TagService) CreateTag(ctx context.Context, userID uuid.UUID, name string) (*models.Tag, error) {
	tag := models.Tag{Name: name, UserID: userID}
	if err := s.db.WithContext(ctx).Create(&tag).Error; err != nil {
		return nil, err
	}
	return &tag, nil
}

func (s *TagService) GetTag(ctx context.Context, userID uuid.UUID, id uint) (*models.Tag, error) {
	var tag models.Tag
	err := s.db.WithContext(ctx).First(&tag, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &tag, nil
}

func (s *TagService) UpdateTag(ctx context.Context, userID uuid.UUID, id uint, name string) (*models.Tag, error) {
	tag, err := s.GetTag(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Model(tag).Update("name", name).Error; err != nil {
		return nil, err
	}
	return tag, nil
}

// DeleteTag removes a tag and its recipe associations.
func (s *TagService) DeleteTag(ctx context.Context, userID uuid.UUID, id uint) error {
	tag, err := s.GetTag(ctx, userID, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM recipe_tags WHERE tag_id = ?", tag.ID).Error; err != nil {
			return err
		}
		return tx.Delete(tag).Error
	})
}
