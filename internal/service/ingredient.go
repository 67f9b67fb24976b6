package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forkful/recipebook-backend/internal/models"
)

// IngredientService handles ingredient operations, scoped to the owning
// user.
type IngredientService struct {
	db *gorm.DB
}

func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

// ListIngredients returns the user's ingredients ordered by name
// descending. With assignedOnly set, ingredients not referenced by any of
// the user's recipes are excluded.
func (s *IngredientService) ListIngredients(ctx context.Context, userID uuid.UUID, assignedOnly bool) ([]models.Ingredient, error) {
	query := s.db.WithContext(ctx).Model(&models.Ingredient{}).
		Where("ingredients.user_id = ?", userID).
		Order("ingredients.name DESC")

	if assignedOnly {
		query = query.
			Joins("JOIN recipe_ingredients ON recipe_ingredients.ingredient_id = ingredients.id").
			Joins("JOIN recipes ON recipes.id = recipe_ingredients.recipe_id").
			Where("recipes.user_id = ?", userID)
	}

	var ingredients []models.Ingredient
	if err := query.Distinct("ingredients.*").Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}

func (s *IngredientService) CreateIngredient(ctx context.Context, userID uuid.UUID, name string, amount *float64) (*models.Ingredient, error) {
	ingredient := models.Ingredient{Name: name, Amount: amount, UserID: userID}
	if err := s.db.WithContext(ctx).Create(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

func (s *IngredientService) GetIngredient(ctx context.Context, userID uuid.UUID, id uint) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := s.db.WithContext(ctx).First(&ingredient, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ingredient, nil
}

// UpdateIngredient applies a partial update. The amount is doubly
// indirect so a present null clears the value while an absent field
// leaves it untouched.
func (s *IngredientService) UpdateIngredient(ctx context.Context, userID uuid.UUID, id uint, name *string, amount **float64) (*models.Ingredient, error) {
	ingredient, err := s.GetIngredient(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	columns := map[string]interface{}{}
	if name != nil {
		columns["name"] = *name
	}
	if amount != nil {
		columns["amount"] = *amount
	}
	if len(columns) > 0 {
		if err := s.db.WithContext(ctx).Model(ingredient).Updates(columns).Error; err != nil {
			return nil, err
		}
	}
	return s.GetIngredient(ctx, userID, id)
}

// DeleteIngredient removes an ingredient and its recipe associations.
func (s *IngredientService) DeleteIngredient(ctx context.Context, userID uuid.UUID, id uint) error {
	ingredient, err := s.GetIngredient(ctx, userID, id)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM recipe_ingredients WHERE ingredient_id = ?", ingredient.ID).Error; err != nil {
			return err
		}
		return tx.Delete(ingredient).Error
	})
}
