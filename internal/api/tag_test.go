package api

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkful/recipebook-backend/internal/models"
)

func TestTagsAuthRequired(t *testing.T) {
	router, _ := setupTestRouter(t)

	w := performJSON(t, router, http.MethodGet, "/api/v1/tags", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestListTagsLimitedToUser(t *testing.T) {
	router, db := setupTestRouter(t)
	user, token := createTestUser(t, db, "user@example.com")
	other, _ := createTestUser(t, db, "other@example.com")

	require.NoError(t, db.Create(&models.Tag{Name: "Vegan", UserID: user.ID}).Error)
	require.NoError(t, db.Create(&models.Tag{Name: "Fruity", UserID: other.ID}).Error)

	w := performJSON(t, router, http.MethodGet, "/api/v1/tags", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var tags []map[string]interface{}
	decodeJSON(t, w, &tags)
	require.Len(t, tags, 1)
	assert.Equal(t, "Vegan", tags[0]["name"])
}

func TestListTagsOrderedByNameDesc(t *testing.T) {
	router, db := setupTestRouter(t)
	user, token := createTestUser(t, db, "user@example.com")

	for _, name := range []string{"Apple", "Zucchini", "Mango"} {
		require.NoError(t, db.Create(&models.Tag{Name: name, UserID: user.ID}).Error)
	}

	w := performJSON(t, router, http.MethodGet, "/api/v1/tags", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var tags []map[string]interface{}
	decodeJSON(t, w, &tags)
	require.Len(t, tags, 3)
	assert.Equal(t, "Zucchini", tags[0]["name"])
	assert.Equal(t, "Mango", tags[1]["name"])
	assert.Equal(t, "Apple", tags[2]["name"])
}

func TestCreateTag(t *testing.T) {
	router, db := setupTestRouter(t)
	user, token := createTestUser(t, db, "user@example.com")

	w := performJSON(t, router, http.MethodPost, "/api/v1/tags", token, map[string]string{"name": "Comfort food"})
	require.Equal(t, http.StatusCreated, w.Code)

	var tag models.Tag
	require.NoError(t, db.First(&tag, "name = ?", "Comfort food").Error)
	assert.Equal(t, user.ID, tag.UserID)
}

func TestCreateDuplicateTagConflict(t *testing.T) {
	router, db := setupTestRouter(t)
	user, token := createTestUser(t, db, "user@example.com")
	require.NoError(t, db.Create(&models.Tag{Name: "Vegan", UserID: user.ID}).Error)

	w := performJSON(t, router, http.MethodPost, "/api/v1/tags", token, map[string]string{"name": "Vegan"})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestUpdateTag(t *testing.T) {
	router, db := setupTestRouter(t)
	user, token := createTestUser(t, db, "user@example.com")
	tag := models.Tag{Name: "After dinner", UserID: user.ID}
	require.NoError(t, db.Create(&tag).Error)

	w := performJSON(t, router, http.MethodPatch, fmt.Sprintf("/api/v1/tags/%d", tag.ID), token, map[string]string{"name": "Dessert"})
	require.Equal(t, http.StatusOK, w.Code)

	var updated models.Tag
	require.NoError(t, db.First(&updated, tag.ID).Error)
	assert.Equal(t, "Dessert", updated.Name)
}

func TestUpdateOtherUsersTagNotFound(t *testing.T) {
	router, db := setupTestRouter(t)
	_, token := createTestUser(t, db, "user@example.com")
	other, _ := createTestUser(t, db, "other@example.com")
	tag := models.Tag{Name: "Private", UserID: other.ID}
	require.NoError(t, db.Create(&tag).Error)

	w := performJSON(t, router, http.MethodPatch, fmt.Sprintf("/api/v1/tags/%d", tag.ID), token, map[string]string{"name": "Hijacked"})
	assert.Equal(t, http.StatusNotFound, w.Code)

	var unchanged models.Tag
	require.NoError(t, db.First(&unchanged, tag.ID).Error)
	assert.Equal(t, "Private", unchanged.Name)
}

func TestDeleteTag(t *testing.T) {
	router, db := setupTestRouter(t)
	user, token := createTestUser(t, db, "user@example.com")
	tag := models.Tag{Name: "Fleeting", UserID: user.ID}
	require.NoError(t, db.Create(&tag).Error)

	w := performJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/tags/%d", tag.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	var count int64
	db.Model(&models.Tag{}).Where("id = ?", tag.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestDeleteTagKeepsRecipes(t *testing.T) {
	router, db := setupTestRouter(t)
	user, token := createTestUser(t, db, "user@example.com")

	tag := models.Tag{Name: "Linked", UserID: user.ID}
	require.NoError(t, db.Create(&tag).Error)
	recipe := createRecipeFixture(t, db, user, "Survivor")
	require.NoError(t, db.Model(recipe).Association("Tags").Append(&tag))

	w := performJSON(t, router, http.MethodDelete, fmt.Sprintf("/api/v1/tags/%d", tag.ID), token, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	var count int64
	db.Model(&models.Recipe{}).Where("id = ?", recipe.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestListTagsAssignedOnly(t *testing.T) {
	router, db := setupTestRouter(t)
	user, token := createTestUser(t, db, "user@example.com")

	assigned := models.Tag{Name: "Breakfast", UserID: user.ID}
	unassigned := models.Tag{Name: "Lunch", UserID: user.ID}
	require.NoError(t, db.Create(&assigned).Error)
	require.NoError(t, db.Create(&unassigned).Error)

	recipe := createRecipeFixture(t, db, user, "Eggs")
	require.NoError(t, db.Model(recipe).Association("Tags").Append(&assigned))

	w := performJSON(t, router, http.MethodGet, "/api/v1/tags?assigned_only=1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var tags []map[string]interface{}
	decodeJSON(t, w, &tags)
	require.Len(t, tags, 1)
	assert.Equal(t, "Breakfast", tags[0]["name"])
}

func TestListTagsAssignedOnlyDistinct(t *testing.T) {
	router, db := setupTestRouter(t)
	user, token := createTestUser(t, db, "user@example.com")

	tag := models.Tag{Name: "Breakfast", UserID: user.ID}
	require.NoError(t, db.Create(&tag).Error)

	r1 := createRecipeFixture(t, db, user, "Pancakes")
	r2 := createRecipeFixture(t, db, user, "Porridge")
	require.NoError(t, db.Model(r1).Association("Tags").Append(&tag))
	require.NoError(t, db.Model(r2).Association("Tags").Append(&tag))

	w := performJSON(t, router, http.MethodGet, "/api/v1/tags?assigned_only=1", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var tags []map[string]interface{}
	decodeJSON(t, w, &tags)
	assert.Len(t, tags, 1, "tag on two recipes is listed once")
}
