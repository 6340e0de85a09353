package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chefit/chefit-api/internal/models"
	"github.com/chefit/chefit-api/internal/services"
	"github.com/chefit/chefit-api/internal/utils"
)

type NutritionistPatientRequest struct {
	FirstName string `json:"firstName" binding:"required"`
	LastName  string `json:"lastName" binding:"required"`
	PatientProfileRequest
}

// ownedPatientFilter scopes every nutritionist operation to the caller's own
// patients; one nutritionist can never address another's documents.
func ownedPatientFilter(c *gin.Context, id primitive.ObjectID) bson.M {
	nutritionistID, _ := c.Get("userID")
	return bson.M{"_id": id, "nutritionistId": nutritionistID.(string)}
}

func (h *Handler) GetNutritionistPatients(c *gin.Context) {
	nutritionistID, _ := c.Get("userID")

	filter := bson.M{"nutritionistId": nutritionistID.(string), "archived": false}
	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := h.nutritionistPatients().Find(c.Request.Context(), filter, findOptions)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to retrieve patients"})
		return
	}
	defer cursor.Close(c.Request.Context())

	var patients []models.NutritionistPatient
	if err := cursor.All(c.Request.Context(), &patients); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode patients"})
		return
	}
	if patients == nil {
		patients = []models.NutritionistPatient{}
	}
	c.JSON(http.StatusOK, patients)
}

func (h *Handler) GetNutritionistPatient(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}

	var patient models.NutritionistPatient
	err = h.nutritionistPatients().FindOne(c.Request.Context(), ownedPatientFilter(c, id)).Decode(&patient)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}
	c.JSON(http.StatusOK, patient)
}

func (h *Handler) CreateNutritionistPatient(c *gin.Context) {
	var req NutritionistPatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	nutritionistID, _ := c.Get("userID")

	bmi, err := utils.CalculateBMI(req.Height, req.Weight)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prediction, err := h.Predictor.PredictMealPlan(c.Request.Context(), req.predictionProfile())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	patient := models.NutritionistPatient{
		ID:              primitive.NewObjectID(),
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		NutritionistID:  nutritionistID.(string),
		Age:             req.Age,
		Height:          req.Height,
		Weight:          req.Weight,
		Gender:          req.Gender,
		ActivityLevel:   req.ActivityLevel,
		Preference:      req.Preference,
		Restrictions:    req.Restrictions,
		BMI:             bmi,
		Prediction:      prediction,
		MealPlanHistory: []models.MealPlanSnapshot{},
		AccessCode:      utils.GenerateAccessCode(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := h.nutritionistPatients().InsertOne(c.Request.Context(), patient); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create patient"})
		return
	}
	c.JSON(http.StatusCreated, patient)
}

func (h *Handler) UpdateNutritionistPatient(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}

	var req struct {
		FirstName     *string  `json:"firstName"`
		LastName      *string  `json:"lastName"`
		Age           *int     `json:"age"`
		Height        *float64 `json:"height"`
		Weight        *float64 `json:"weight"`
		ActivityLevel *float64 `json:"activity_level"`
		Preference    *string  `json:"preference"`
		Restrictions  *string  `json:"restrictions"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	set := bson.M{"updatedAt": time.Now()}
	if req.FirstName != nil {
		set["firstName"] = *req.FirstName
	}
	if req.LastName != nil {
		set["lastName"] = *req.LastName
	}
	if req.Age != nil {
		set["age"] = *req.Age
	}
	if req.Height != nil {
		set["height"] = *req.Height
	}
	if req.Weight != nil {
		set["weight"] = *req.Weight
	}
	if req.ActivityLevel != nil {
		set["activity_level"] = *req.ActivityLevel
	}
	if req.Preference != nil {
		set["preference"] = *req.Preference
	}
	if req.Restrictions != nil {
		set["restrictions"] = *req.Restrictions
	}

	after := options.After
	var patient models.NutritionistPatient
	err = h.nutritionistPatients().FindOneAndUpdate(
		c.Request.Context(),
		ownedPatientFilter(c, id),
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&patient)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}
	c.JSON(http.StatusOK, patient)
}

// DeleteNutritionistPatient archives rather than deletes; the document (and
// its history) stays addressable for audit.
func (h *Handler) DeleteNutritionistPatient(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}

	now := time.Now()
	result, err := h.nutritionistPatients().UpdateOne(
		c.Request.Context(),
		ownedPatientFilter(c, id),
		bson.M{"$set": bson.M{"archived": true, "archivedAt": now, "updatedAt": now}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to archive patient"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdatePlannedMeal swaps the recipe title in one slot of the current plan.
func (h *Handler) UpdatePlannedMeal(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}

	var req struct {
		Day   string `json:"day" binding:"required"`
		Meal  string `json:"meal" binding:"required"`
		Title string `json:"title" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "day, meal and title are required"})
		return
	}

	path, err := models.FieldPath("prediction", req.Day, req.Meal)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	after := options.After
	var patient models.NutritionistPatient
	err = h.nutritionistPatients().FindOneAndUpdate(
		c.Request.Context(),
		ownedPatientFilter(c, id),
		bson.M{"$set": bson.M{path + ".title": req.Title, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&patient)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "prediction": patient.Prediction})
}

func (h *Handler) UpdateNutritionistPatientProgress(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}

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

	after := options.After
	var patient models.NutritionistPatient
	err = h.nutritionistPatients().FindOneAndUpdate(
		c.Request.Context(),
		ownedPatientFilter(c, id),
		bson.M{"$set": bson.M{path: *req.Value, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&patient)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "progress": patient.Progress})
}

func (h *Handler) UpdateNutritionistNotes(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}

	var req struct {
		Day  string `json:"day" binding:"required"`
		Meal string `json:"meal" binding:"required"`
		Note string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "day and meal are required"})
		return
	}

	path, err := models.FieldPath("nutritionistNotes", req.Day, req.Meal)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.nutritionistPatients().UpdateOne(
		c.Request.Context(),
		ownedPatientFilter(c, id),
		bson.M{"$set": bson.M{path: req.Note, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update notes"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// UpdateMealAddons replaces the addon list for one slot.
func (h *Handler) UpdateMealAddons(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}

	var req struct {
		Day    string             `json:"day" binding:"required"`
		Meal   string             `json:"meal" binding:"required"`
		Addons []models.MealAddon `json:"addons"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "day and meal are required"})
		return
	}

	path, err := models.FieldPath("mealAddons", req.Day, req.Meal)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Addons == nil {
		req.Addons = []models.MealAddon{}
	}

	result, err := h.nutritionistPatients().UpdateOne(
		c.Request.Context(),
		ownedPatientFilter(c, id),
		bson.M{"$set": bson.M{path: req.Addons, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update addons"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// RegenerateMealPlan snapshots the current plan and tracking grids into the
// history, fetches a fresh prediction and resets the grids. The snapshot is
// pushed in the same update that installs the new plan, so a gateway failure
// leaves the document untouched.
func (h *Handler) RegenerateMealPlan(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}

	ctx := c.Request.Context()
	var patient models.NutritionistPatient
	if err := h.nutritionistPatients().FindOne(ctx, ownedPatientFilter(c, id)).Decode(&patient); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}

	prediction, err := h.Predictor.PredictMealPlan(ctx, services.PredictionProfile{
		Age:                 patient.Age,
		Height:              patient.Height,
		Weight:              patient.Weight,
		Gender:              patient.Gender,
		DietaryRestrictions: patient.Preference,
		Allergies:           patient.Restrictions,
		ActivityLevel:       patient.ActivityLevel,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	snapshot := models.MealPlanSnapshot{
		ID:                primitive.NewObjectID(),
		Date:              time.Now(),
		Prediction:        patient.Prediction,
		Progress:          patient.Progress,
		SkippedMeals:      patient.SkippedMeals,
		MealNotes:         patient.MealNotes,
		NutritionistNotes: patient.NutritionistNotes,
	}

	after := options.After
	var updated models.NutritionistPatient
	err = h.nutritionistPatients().FindOneAndUpdate(
		ctx,
		ownedPatientFilter(c, id),
		bson.M{
			"$push": bson.M{"mealPlanHistory": snapshot},
			"$set": bson.M{
				"prediction":   prediction,
				"progress":     models.WeekGrid[bool]{},
				"skippedMeals": models.WeekGrid[bool]{},
				"mealNotes":    models.WeekGrid[string]{},
				"updatedAt":    time.Now(),
			},
		},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&updated)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to regenerate meal plan"})
		return
	}
	c.JSON(http.StatusOK, updated)
}

func (h *Handler) GetMealPlanHistory(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}

	var patient models.NutritionistPatient
	err = h.nutritionistPatients().FindOne(
		c.Request.Context(),
		ownedPatientFilter(c, id),
		options.FindOne().SetProjection(bson.M{"mealPlanHistory": 1}),
	).Decode(&patient)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Patient not found"})
		return
	}

	// Newest first.
	history := patient.MealPlanHistory
	for i, j := 0, len(history)-1; i < j; i, j = i+1, j-1 {
		history[i], history[j] = history[j], history[i]
	}
	c.JSON(http.StatusOK, gin.H{"mealPlanHistory": history})
}
