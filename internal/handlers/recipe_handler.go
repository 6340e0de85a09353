package handlers

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chefit/chefit-api/internal/models"
)

func (h *Handler) GetAllRecipes(c *gin.Context) {
	findOptions := options.Find().SetSort(bson.D{{Key: "title", Value: 1}})
	cursor, err := h.recipes().Find(c.Request.Context(), bson.M{}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve recipes"})
		return
	}
	defer cursor.Close(c.Request.Context())

	var recipes []models.Recipe
	if err := cursor.All(c.Request.Context(), &recipes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode recipes"})
		return
	}
	if recipes == nil {
		recipes = []models.Recipe{}
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *Handler) GetRecipe(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	var recipe models.Recipe
	err = h.recipes().FindOne(c.Request.Context(), bson.M{"_id": id}).Decode(&recipe)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	c.JSON(http.StatusOK, recipe)
}

// GetRecipeByTitle resolves a recipe by name. With ?exact=true the title must
// match the whole string (case-insensitive); otherwise any recipe whose title
// contains the fragment is returned, capped at 20.
func (h *Handler) GetRecipeByTitle(c *gin.Context) {
	title := c.Param("title")
	escaped := regexp.QuoteMeta(title)

	if c.Query("exact") == "true" {
		var recipe models.Recipe
		err := h.recipes().FindOne(c.Request.Context(), bson.M{
			"title": primitive.Regex{Pattern: "^" + escaped + "$", Options: "i"},
		}).Decode(&recipe)
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "No recipes found"})
			return
		}
		c.JSON(http.StatusOK, recipe)
		return
	}

	cursor, err := h.recipes().Find(c.Request.Context(), bson.M{
		"title": primitive.Regex{Pattern: escaped, Options: "i"},
	}, options.Find().SetLimit(20))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search recipes"})
		return
	}
	defer cursor.Close(c.Request.Context())

	var recipes []models.Recipe
	if err := cursor.All(c.Request.Context(), &recipes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode recipes"})
		return
	}
	if len(recipes) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No recipes found"})
		return
	}
	c.JSON(http.StatusOK, recipes)
}

// buildRecipeSearchFilter combines a case-insensitive text match over
// title/summary/ingredients with equality filters for every requested
// dietary flag. Unknown flag names are ignored rather than rejected.
func buildRecipeSearchFilter(query string, flags []string) bson.M {
	escaped := regexp.QuoteMeta(strings.TrimSpace(query))
	re := primitive.Regex{Pattern: escaped, Options: "i"}

	filter := bson.M{
		"$or": []bson.M{
			{"title": re},
			{"summary": re},
			{"ingredients": re},
		},
	}
	for _, flag := range flags {
		if field, ok := models.DietaryFlagFields[flag]; ok {
			filter[field] = true
		}
	}
	return filter
}

// SearchRecipes is the filtered search behind the meal-swap UI. A blank query
// is a validation failure, and zero matches is a 404 so callers can tell
// "bad request" from "nothing found".
func (h *Handler) SearchRecipes(c *gin.Context) {
	var req struct {
		Query        string   `json:"query"`
		Preferences  []string `json:"preferences"`
		Restrictions []string `json:"restrictions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search query is required"})
		return
	}

	filter := buildRecipeSearchFilter(req.Query, append(req.Preferences, req.Restrictions...))
	findOptions := options.Find().
		SetLimit(50).
		SetSort(bson.D{{Key: "title", Value: 1}})

	cursor, err := h.recipes().Find(c.Request.Context(), filter, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search recipes. Please try again."})
		return
	}
	defer cursor.Close(c.Request.Context())

	var recipes []models.Recipe
	if err := cursor.All(c.Request.Context(), &recipes); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode recipes"})
		return
	}
	if len(recipes) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No recipes found"})
		return
	}
	c.JSON(http.StatusOK, recipes)
}

func (h *Handler) CreateRecipe(c *gin.Context) {
	var recipe models.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	if recipe.Title == "" || recipe.Ingredients == "" || recipe.Instructions == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title, ingredients, and instructions are required"})
		return
	}

	recipe.ID = primitive.NewObjectID()
	if _, err := h.recipes().InsertOne(c.Request.Context(), recipe); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create recipe"})
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

func (h *Handler) UpdateRecipe(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}
	delete(fields, "_id")
	if len(fields) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No update fields provided"})
		return
	}

	after := options.After
	var recipe models.Recipe
	err = h.recipes().FindOneAndUpdate(
		c.Request.Context(),
		bson.M{"_id": id},
		bson.M{"$set": fields},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&recipe)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	c.JSON(http.StatusOK, recipe)
}

func (h *Handler) DeleteRecipe(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}

	result, err := h.recipes().DeleteOne(c.Request.Context(), bson.M{"_id": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete recipe"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted successfully"})
}
