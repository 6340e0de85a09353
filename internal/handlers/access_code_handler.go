package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/chefit/chefit-api/internal/models"
)

// The access code is a capability token: possession of the code is the whole
// authorization. These endpoints never touch the JWT middleware. Codes are
// resolved against nutritionist-managed patients first, then self-service
// ones, always excluding archived documents.

func accessCodeFilter(code string) bson.M {
	return bson.M{"accessCode": code, "archived": false}
}

// updateByAccessCode applies one update to whichever patient collection holds
// the code. Reports whether any document matched.
func (h *Handler) updateByAccessCode(ctx context.Context, code string, update bson.M) (bool, error) {
	result, err := h.nutritionistPatients().UpdateOne(ctx, accessCodeFilter(code), update)
	if err != nil {
		return false, err
	}
	if result.MatchedCount > 0 {
		return true, nil
	}
	result, err = h.patients().UpdateOne(ctx, accessCodeFilter(code), update)
	if err != nil {
		return false, err
	}
	return result.MatchedCount > 0, nil
}

// findByAccessCode decodes the matching document into a generic map so both
// patient shapes can be served from the same endpoint. Only a no-document
// miss falls through to the second collection; a real failure propagates.
func (h *Handler) findByAccessCode(ctx context.Context, code string) (bson.M, error) {
	var doc bson.M
	err := h.nutritionistPatients().FindOne(ctx, accessCodeFilter(code)).Decode(&doc)
	if err == nil {
		return doc, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}
	if err := h.patients().FindOne(ctx, accessCodeFilter(code)).Decode(&doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// lookupStatus maps a find error to the response: a missing document means a
// bad code, anything else is a server fault and must not masquerade as 404.
func lookupStatus(err error) (int, string) {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return http.StatusNotFound, "Invalid access code"
	}
	return http.StatusInternalServerError, "Failed to look up access code"
}

// buildMealStatusUpdate produces the single $set document for a skip/unskip.
// Skipping records the note and forces the completion flag off (skip wins
// over completion); unskipping clears both the skip flag and the note.
func buildMealStatusUpdate(day, meal string, skipped bool, note string) (bson.M, error) {
	skipPath, err := models.FieldPath("skippedMeals", day, meal)
	if err != nil {
		return nil, err
	}
	notePath, _ := models.FieldPath("mealNotes", day, meal)
	progressPath, _ := models.FieldPath("progress", day, meal)

	set := bson.M{skipPath: skipped, "updatedAt": time.Now()}
	if skipped {
		set[notePath] = note
		set[progressPath] = false
	} else {
		set[notePath] = ""
	}
	return bson.M{"$set": set}, nil
}

func (h *Handler) VerifyAccessCode(c *gin.Context) {
	var req struct {
		AccessCode string `json:"accessCode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Access code is required"})
		return
	}

	ctx := c.Request.Context()
	count, err := h.nutritionistPatients().CountDocuments(ctx, accessCodeFilter(req.AccessCode))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify access code"})
		return
	}
	if count == 0 {
		count, err = h.patients().CountDocuments(ctx, accessCodeFilter(req.AccessCode))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to verify access code"})
			return
		}
	}

	// Existence only; no patient data leaks through this endpoint.
	c.JSON(http.StatusOK, gin.H{"valid": count > 0})
}

func (h *Handler) GetAccessCodeData(c *gin.Context) {
	doc, err := h.findByAccessCode(c.Request.Context(), c.Param("accessCode"))
	if err != nil {
		status, msg := lookupStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}
	c.JSON(http.StatusOK, doc)
}

func (h *Handler) UpdateProgressByAccessCode(c *gin.Context) {
	var req struct {
		Day   string `json:"day" binding:"required"`
		Meal  string `json:"meal" binding:"required"`
		Value *bool  `json:"value" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "day, meal and value are required"})
		return
	}

	path, err := models.FieldPath("progress", req.Day, req.Meal)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	matched, err := h.updateByAccessCode(c.Request.Context(), c.Param("accessCode"),
		bson.M{"$set": bson.M{path: *req.Value, "updatedAt": time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update progress"})
		return
	}
	if !matched {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invalid access code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) UpdateMealStatusByAccessCode(c *gin.Context) {
	var req struct {
		Day     string `json:"day" binding:"required"`
		Meal    string `json:"meal" binding:"required"`
		Skipped *bool  `json:"skipped" binding:"required"`
		Note    string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "day, meal and skipped are required"})
		return
	}

	update, err := buildMealStatusUpdate(req.Day, req.Meal, *req.Skipped, req.Note)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	matched, err := h.updateByAccessCode(c.Request.Context(), c.Param("accessCode"), update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update meal status"})
		return
	}
	if !matched {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invalid access code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) UpdateMealNotesByAccessCode(c *gin.Context) {
	var req struct {
		Day  string `json:"day" binding:"required"`
		Meal string `json:"meal" binding:"required"`
		Note string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "day and meal are required"})
		return
	}

	path, err := models.FieldPath("mealNotes", req.Day, req.Meal)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	matched, err := h.updateByAccessCode(c.Request.Context(), c.Param("accessCode"),
		bson.M{"$set": bson.M{path: req.Note, "updatedAt": time.Now()}})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update meal notes"})
		return
	}
	if !matched {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invalid access code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateAddonStatusByAccessCode flips the completed/skipped flags of one
// addon item. Addons only exist on nutritionist-managed patients.
func (h *Handler) UpdateAddonStatusByAccessCode(c *gin.Context) {
	var req struct {
		Day       string `json:"day" binding:"required"`
		Meal      string `json:"meal" binding:"required"`
		Index     *int   `json:"index" binding:"required"`
		Completed *bool  `json:"completed"`
		Skipped   *bool  `json:"skipped"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "day, meal and index are required"})
		return
	}
	if !models.ValidCell(req.Day, req.Meal) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid day/meal pair %q/%q", req.Day, req.Meal)})
		return
	}
	if *req.Index < 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "index must be non-negative"})
		return
	}
	if req.Completed == nil && req.Skipped == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	base := fmt.Sprintf("mealAddons.%s.%s.%d", req.Day, req.Meal, *req.Index)
	set := bson.M{"updatedAt": time.Now()}
	if req.Completed != nil {
		set[base+".completed"] = *req.Completed
	}
	if req.Skipped != nil {
		set[base+".skipped"] = *req.Skipped
	}

	result, err := h.nutritionistPatients().UpdateOne(
		c.Request.Context(),
		accessCodeFilter(c.Param("accessCode")),
		bson.M{"$set": set},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update addon status"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Invalid access code"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) GetAccessCodeHistory(c *gin.Context) {
	doc, err := h.findByAccessCode(c.Request.Context(), c.Param("accessCode"))
	if err != nil {
		status, msg := lookupStatus(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	history, ok := doc["mealPlanHistory"]
	if !ok || history == nil {
		history = []models.MealPlanSnapshot{}
	}
	c.JSON(http.StatusOK, gin.H{"mealPlanHistory": history})
}

// UpdateHistoricalMealPlan edits the tracking state inside one archived
// snapshot, addressed by its id within the history array.
func (h *Handler) UpdateHistoricalMealPlan(c *gin.Context) {
	planID, err := primitive.ObjectIDFromHex(c.Param("planId"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meal plan not found"})
		return
	}

	var req struct {
		Day       string  `json:"day" binding:"required"`
		Meal      string  `json:"meal" binding:"required"`
		Completed *bool   `json:"completed"`
		Skipped   *bool   `json:"skipped"`
		Note      *string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "day and meal are required"})
		return
	}
	if !models.ValidCell(req.Day, req.Meal) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid day/meal pair %q/%q", req.Day, req.Meal)})
		return
	}
	if req.Completed == nil && req.Skipped == nil && req.Note == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "nothing to update"})
		return
	}

	cell := req.Day + "." + req.Meal
	set := bson.M{"updatedAt": time.Now()}
	if req.Completed != nil {
		set["mealPlanHistory.$.progress."+cell] = *req.Completed
	}
	if req.Skipped != nil {
		set["mealPlanHistory.$.skippedMeals."+cell] = *req.Skipped
	}
	if req.Note != nil {
		set["mealPlanHistory.$.mealNotes."+cell] = *req.Note
	}

	filter := accessCodeFilter(c.Param("accessCode"))
	filter["mealPlanHistory._id"] = planID

	update := bson.M{"$set": set}
	result, err := h.nutritionistPatients().UpdateOne(c.Request.Context(), filter, update)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update meal plan history"})
		return
	}
	if result.MatchedCount == 0 {
		patientResult, err := h.patients().UpdateOne(c.Request.Context(), filter, update)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update meal plan history"})
			return
		}
		if patientResult.MatchedCount == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": "Meal plan not found"})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
