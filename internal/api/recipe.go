package api

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/forkful/recipebook-backend/internal/middleware"
	"github.com/forkful/recipebook-backend/internal/models"
	"github.com/forkful/recipebook-backend/internal/service"
)

type RecipeHandler struct {
	recipeService *service.RecipeService
	authService   middleware.TokenValidator
	rateLimiter   *middleware.RateLimiter
}

func NewRecipeHandler(recipeService *service.RecipeService, authService middleware.TokenValidator, rateLimiter *middleware.RateLimiter) *RecipeHandler {
	return &RecipeHandler{
		recipeService: recipeService,
		authService:   authService,
		rateLimiter:   rateLimiter,
	}
}

func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	recipes.Use(middleware.AuthMiddleware(h.authService))
	{
		recipes.GET("", h.ListRecipes)
		recipes.POST("", h.CreateRecipe)
		recipes.GET("/:id", h.GetRecipe)
		recipes.PUT("/:id", h.UpdateRecipe)
		recipes.PATCH("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)

		upload := recipes.Group("")
		if h.rateLimiter != nil {
			upload.Use(h.rateLimiter.RateLimitMiddleware())
		}
		upload.POST("/:id/upload-image", h.UploadImage)
	}
}

type CreateRecipeRequest struct {
	Title       string                    `json:"title" binding:"required"`
	Description string                    `json:"description"`
	TimeMinutes int                       `json:"time_minutes" binding:"required"`
	Price       float64                   `json:"price" binding:"required"`
	Link        string                    `json:"link"`
	Portions    *float64                  `json:"portions"`
	Difficulty  int                       `json:"difficulty"`
	Tags        []service.TagInput        `json:"tags" binding:"omitempty,dive"`
	Ingredients []service.IngredientInput `json:"ingredients" binding:"omitempty,dive"`
}

// UpdateRecipeRequest carries a partial update. Absent fields stay
// untouched; a present tags/ingredients list replaces the association,
// empty list included. Owner and timestamp fields are not bindable and
// any attempt to set them is silently dropped.
type UpdateRecipeRequest struct {
	Title       *string                    `json:"title"`
	Description *string                    `json:"description"`
	TimeMinutes *int                       `json:"time_minutes"`
	Price       *float64                   `json:"price"`
	Link        *string                    `json:"link"`
	Portions    *float64                   `json:"portions"`
	Difficulty  *int                       `json:"difficulty"`
	Tags        *[]service.TagInput        `json:"tags" binding:"omitempty,dive"`
	Ingredients *[]service.IngredientInput `json:"ingredients" binding:"omitempty,dive"`
}

func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var filter service.RecipeFilter
	var err error
	if filter.TagIDs, err = parseIDList(c.Query("tags")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid tags parameter"})
		return
	}
	if filter.IngredientIDs, err = parseIDList(c.Query("ingredients")); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid ingredients parameter"})
		return
	}

	recipes, err := h.recipeService.ListRecipes(c.Request.Context(), userID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipes"})
		return
	}

	c.JSON(http.StatusOK, recipes)
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	recipe, err := h.recipeService.GetRecipe(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch recipe"})
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe := models.Recipe{
		Title:       req.Title,
		Description: req.Description,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Link:        req.Link,
		Portions:    req.Portions,
		Difficulty:  req.Difficulty,
	}

	err := h.recipeService.CreateRecipe(c.Request.Context(), userID, &recipe, req.Tags, req.Ingredients)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDifficulty):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": "difficulty"})
		case errors.Is(err, service.ErrEmptyName):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": "name"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create recipe"})
		}
		return
	}

	c.JSON(http.StatusCreated, recipe)
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	update := service.RecipeUpdate{
		Title:       req.Title,
		Description: req.Description,
		TimeMinutes: req.TimeMinutes,
		Price:       req.Price,
		Link:        req.Link,
		Portions:    req.Portions,
		Difficulty:  req.Difficulty,
		Tags:        req.Tags,
		Ingredients: req.Ingredients,
	}

	recipe, err := h.recipeService.UpdateRecipe(c.Request.Context(), userID, id, update)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		case errors.Is(err, service.ErrInvalidDifficulty):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": "difficulty"})
		case errors.Is(err, service.ErrEmptyName):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": "name"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update recipe"})
		}
		return
	}

	c.JSON(http.StatusOK, recipe)
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.recipeService.DeleteRecipe(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete recipe"})
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *RecipeHandler) UploadImage(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}
	id, ok := parseID(c)
	if !ok {
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required", "field": "image"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image", "field": "image"})
		return
	}
	defer func() { _ = file.Close() }()

	data, err := io.ReadAll(file)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image", "field": "image"})
		return
	}

	path, err := h.recipeService.AttachImage(c.Request.Context(), userID, id, data)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "recipe not found"})
		case errors.Is(err, service.ErrNotAnImage):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error(), "field": "image"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to store image"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": id, "image": path})
}

// parseID reads the :id path param. Non-numeric ids get a 404 rather than
// a 400: they can never name an existing record.
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return 0, false
	}
	return uint(id), true
}

func parseIDList(raw string) ([]uint, error) {
	if raw == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, p := range parts {
		id, err := strconv.ParseUint(strings.TrimSpace(p), 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}
