package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forkful/recipebook-backend/internal/models"
)

// TagInput is a tag descriptor in a recipe payload.
type TagInput struct {
	Name string `json:"name" binding:"required"`
}

// IngredientInput is an ingredient descriptor in a recipe payload.
type IngredientInput struct {
	Name   string   `json:"name" binding:"required"`
	Amount *float64 `json:"amount"`
}

// RecipeFilter narrows a list query. A recipe matches when it carries at
// least one of the given tag ids and at least one of the ingredient ids.
type RecipeFilter struct {
	TagIDs        []uint
	IngredientIDs []uint
}

// RecipeUpdate carries a partial update. Nil fields are left untouched; a
// non-nil empty Tags/Ingredients slice clears the association.
type RecipeUpdate struct {
	Title       *string
	Description *string
	TimeMinutes *int
	Price       *float64
	Link        *string
	Portions    *float64
	Difficulty  *int
	Tags        *[]TagInput
	Ingredients *[]IngredientInput
}

// RecipeService handles recipe operations, always scoped to the owning
// user.
type RecipeService struct {
	db     *gorm.DB
	images *ImageService
}

func NewRecipeService(db *gorm.DB, images *ImageService) *RecipeService {
	return &RecipeService{db: db, images: images}
}

// ListRecipes lists the user's recipes, newest first, optionally filtered
// by tag/ingredient ids. Joined filters are deduplicated.
func (s *RecipeService) ListRecipes(ctx context.Context, userID uuid.UUID, filter RecipeFilter) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx).Model(&models.Recipe{}).
		Where("recipes.user_id = ?", userID).
		Preload("Tags").Preload("Ingredients").
		Order("recipes.id DESC")

	if len(filter.TagIDs) > 0 {
		query = query.
			Joins("JOIN recipe_tags ON recipe_tags.recipe_id = recipes.id").
			Where("recipe_tags.tag_id IN ?", filter.TagIDs)
	}
	if len(filter.IngredientIDs) > 0 {
		query = query.
			Joins("JOIN recipe_ingredients ON recipe_ingredients.recipe_id = recipes.id").
			Where("recipe_ingredients.ingredient_id IN ?", filter.IngredientIDs)
	}

	var recipes []models.Recipe
	if err := query.Distinct("recipes.*").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// GetRecipe retrieves one of the user's recipes. Recipes owned by someone
// else are indistinguishable from missing ones.
func (s *RecipeService) GetRecipe(ctx context.Context, userID uuid.UUID, id uint) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Tags").Preload("Ingredients").
		First(&recipe, "id = ? AND user_id = ?", id, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// CreateRecipe persists a new recipe for the user, resolving nested tag
// and ingredient descriptors get-or-create within one transaction.
func (s *RecipeService) CreateRecipe(ctx context.Context, userID uuid.UUID, recipe *models.Recipe, tags []TagInput, ingredients []IngredientInput) error {
	if err := validateDifficulty(recipe.Difficulty); err != nil {
		return err
	}

	recipe.UserID = userID
	recipe.Timestamp = time.Now().UTC()

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		resolvedTags, err := resolveTags(tx, userID, tags)
		if err != nil {
			return err
		}
		resolvedIngredients, err := resolveIngredients(tx, userID, ingredients)
		if err != nil {
			return err
		}
		recipe.Tags = resolvedTags
		recipe.Ingredients = resolvedIngredients

		// Associations are already persisted; only the join rows are new.
		return tx.Omit("Tags.*", "Ingredients.*").Create(recipe).Error
	})
}

// UpdateRecipe applies a partial update to one of the user's recipes.
// When a tag/ingredient list is present the association set is replaced
// with the resolved records; when absent it is untouched. The owner and
// creation timestamp are never modified.
func (s *RecipeService) UpdateRecipe(ctx context.Context, userID uuid.UUID, id uint, update RecipeUpdate) (*models.Recipe, error) {
	if update.Difficulty != nil {
		if err := validateDifficulty(*update.Difficulty); err != nil {
			return nil, err
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recipe models.Recipe
		if err := tx.First(&recipe, "id = ? AND user_id = ?", id, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		columns := map[string]interface{}{}
		if update.Title != nil {
			columns["title"] = *update.Title
		}
		if update.Description != nil {
			columns["description"] = *update.Description
		}
		if update.TimeMinutes != nil {
			columns["time_minutes"] = *update.TimeMinutes
		}
		if update.Price != nil {
			columns["price"] = *update.Price
		}
		if update.Link != nil {
			columns["link"] = *update.Link
		}
		if update.Portions != nil {
			columns["portions"] = *update.Portions
		}
		if update.Difficulty != nil {
			columns["difficulty"] = *update.Difficulty
		}
		if len(columns) > 0 {
			if err := tx.Model(&recipe).Updates(columns).Error; err != nil {
				return err
			}
		}

		if update.Tags != nil {
			tags, err := resolveTags(tx, userID, *update.Tags)
			if err != nil {
				return err
			}
			if err := tx.Model(&recipe).Association("Tags").Replace(&tags); err != nil {
				return err
			}
		}
		if update.Ingredients != nil {
			ingredients, err := resolveIngredients(tx, userID, *update.Ingredients)
			if err != nil {
				return err
			}
			if err := tx.Model(&recipe).Association("Ingredients").Replace(&ingredients); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetRecipe(ctx, userID, id)
}

// DeleteRecipe removes one of the user's recipes along with its stored
// image. Attached tags and ingredients survive.
func (s *RecipeService) DeleteRecipe(ctx context.Context, userID uuid.UUID, id uint) error {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&recipe).Association("Tags").Clear(); err != nil {
			return err
		}
		if err := tx.Model(&recipe).Association("Ingredients").Clear(); err != nil {
			return err
		}
		return tx.Delete(&recipe).Error
	})
	if err != nil {
		return err
	}

	if s.images != nil {
		s.images.Remove(ctx, recipe.ImageURL)
	}
	return nil
}

// AttachImage validates and stores an uploaded image for one of the
// user's recipes, replacing any previous one, and returns its path.
func (s *RecipeService) AttachImage(ctx context.Context, userID uuid.UUID, id uint, data []byte) (string, error) {
	var recipe models.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrNotFound
		}
		return "", err
	}

	path, err := s.images.StoreRecipeImage(ctx, data)
	if err != nil {
		return "", err
	}

	previous := recipe.ImageURL
	if err := s.db.WithContext(ctx).Model(&recipe).Update("image_url", path).Error; err != nil {
		return "", err
	}
	if previous != "" {
		s.images.Remove(ctx, previous)
	}
	return path, nil
}

func validateDifficulty(d int) error {
	if d < 0 || d > 5 {
		return ErrInvalidDifficulty
	}
	return nil
}

// resolveTags maps tag descriptors to persisted records owned by the
// user, creating the missing ones. Duplicate names in one payload
// collapse to a single record. Conditions are maps, not structs: a
// struct condition drops zero values, and an empty name must match
// nothing rather than everything.
func resolveTags(tx *gorm.DB, userID uuid.UUID, inputs []TagInput) ([]models.Tag, error) {
	tags := make([]models.Tag, 0, len(inputs))
	seen := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		if in.Name == "" {
			return nil, ErrEmptyName
		}
		if seen[in.Name] {
			continue
		}
		seen[in.Name] = true

		var tag models.Tag
		err := tx.Where(map[string]interface{}{"name": in.Name, "user_id": userID}).
			FirstOrCreate(&tag).Error
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}
	return tags, nil
}

func resolveIngredients(tx *gorm.DB, userID uuid.UUID, inputs []IngredientInput) ([]models.Ingredient, error) {
	ingredients := make([]models.Ingredient, 0, len(inputs))
	seen := make(map[string]bool, len(inputs))
	for _, in := range inputs {
		if in.Name == "" {
			return nil, ErrEmptyName
		}
		if seen[in.Name] {
			continue
		}
		seen[in.Name] = true

		var ingredient models.Ingredient
		err := tx.Where(map[string]interface{}{"name": in.Name, "user_id": userID}).
			Attrs(models.Ingredient{Amount: in.Amount}).
			FirstOrCreate(&ingredient).Error
		if err != nil {
			return nil, err
		}
		ingredients = append(ingredients, ingredient)
	}
	return ingredients, nil
}
