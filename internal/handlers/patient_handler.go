package handlers

import (
	"context"
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

type PatientProfileRequest struct {
	Age           int     `json:"age" binding:"required"`
	Height        float64 `json:"height" binding:"required"`
	Weight        float64 `json:"weight" binding:"required"`
	Gender        string  `json:"gender" binding:"required"`
	ActivityLevel float64 `json:"activity_level" binding:"required"`
	Preference    string  `json:"preference"`
	Restrictions  string  `json:"restrictions"`
}

func (r PatientProfileRequest) predictionProfile() services.PredictionProfile {
	return services.PredictionProfile{
		Age:                 r.Age,
		Height:              r.Height,
		Weight:              r.Weight,
		Gender:              r.Gender,
		DietaryRestrictions: r.Preference,
		Allergies:           r.Restrictions,
		ActivityLevel:       r.ActivityLevel,
	}
}

// --- SELF-SERVICE CRUD (JWT required) ---

func (h *Handler) CreatePatient(c *gin.Context) {
	var req PatientProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	userIDHex, _ := c.Get("userID")

	bmi, err := utils.CalculateBMI(req.Height, req.Weight)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	bmr, err := utils.CalculateBMR(req.Height, req.Weight, req.Age, req.Gender)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tdee, err := utils.CalculateTDEE(bmr, req.ActivityLevel)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// A gateway failure fails the whole request; nothing is persisted.
	prediction, err := h.Predictor.PredictMealPlan(c.Request.Context(), req.predictionProfile())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	patient := models.Patient{
		ID:              primitive.NewObjectID(),
		UserID:          userIDHex.(string),
		Age:             req.Age,
		Height:          req.Height,
		Weight:          req.Weight,
		Gender:          req.Gender,
		ActivityLevel:   req.ActivityLevel,
		Preference:      req.Preference,
		Restrictions:    req.Restrictions,
		BMI:             bmi,
		BMR:             bmr,
		TDEE:            tdee,
		Prediction:      prediction,
		MealPlanHistory: []models.MealPlanSnapshot{},
		AccessCode:      utils.GenerateAccessCode(),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if _, err := h.patients().InsertOne(c.Request.Context(), patient); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create patient"})
		return
	}
	c.JSON(http.StatusCreated, patient)
}

func (h *Handler) GetUserMealPlans(c *gin.Context) {
	userIDHex, _ := c.Get("userID")

	findOptions := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := h.patients().Find(c.Request.Context(), bson.M{"userId": userIDHex.(string)}, findOptions)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve meal plans"})
		return
	}
	defer cursor.Close(context.TODO())

	var plans []models.Patient
	if err := cursor.All(c.Request.Context(), &plans); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode meal plans"})
		return
	}
	if plans == nil {
		plans = []models.Patient{}
	}
	c.JSON(http.StatusOK, plans)
}

func (h *Handler) GetPatient(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No patient found"})
		return
	}

	var patient models.Patient
	err = h.patients().FindOne(c.Request.Context(), bson.M{"_id": id}).Decode(&patient)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No patient found"})
		return
	}
	c.JSON(http.StatusOK, patient)
}

func (h *Handler) UpdatePatient(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No patient found"})
		return
	}

	var req struct {
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
	var patient models.Patient
	err = h.patients().FindOneAndUpdate(
		c.Request.Context(),
		bson.M{"_id": id},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&patient)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No patient found"})
		return
	}
	c.JSON(http.StatusOK, patient)
}

// DeletePatient is a hard delete; the self-service flow keeps no tombstones.
func (h *Handler) DeletePatient(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No patient found"})
		return
	}

	result, err := h.patients().DeleteOne(c.Request.Context(), bson.M{"_id": id})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete patient"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No patient found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) UpdatePatientProgress(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No patient found"})
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
	var patient models.Patient
	err = h.patients().FindOneAndUpdate(
		c.Request.Context(),
		bson.M{"_id": id},
		bson.M{"$set": bson.M{path: *req.Value, "updatedAt": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&patient)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No patient found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "progress": patient.Progress})
}

func (h *Handler) UpdatePatientMealNotes(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No patient found"})
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

	path, err := models.FieldPath("mealNotes", req.Day, req.Meal)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.patients().UpdateOne(
		c.Request.Context(),
		bson.M{"_id": id},
		bson.M{"$set": bson.M{path: req.Note, "updatedAt": time.Now()}},
	)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update meal notes"})
		return
	}
	if result.MatchedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No patient found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h *Handler) GetWeeklyProgress(c *gin.Context) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No patient found"})
		return
	}

	var patient models.Patient
	err = h.patients().FindOne(
		c.Request.Context(),
		bson.M{"_id": id},
		options.FindOne().SetProjection(bson.M{"progress": 1, "skippedMeals": 1}),
	).Decode(&patient)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No patient found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"progress":     patient.Progress,
		"skippedMeals": patient.SkippedMeals,
	})
}

// --- GUEST PREDICTION (no auth, no persistence) ---

func (h *Handler) GuestPredict(c *gin.Context) {
	var req PatientProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	bmi, err := utils.CalculateBMI(req.Height, req.Weight)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	bmr, err := utils.CalculateBMR(req.Height, req.Weight, req.Age, req.Gender)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	tdee, err := utils.CalculateTDEE(bmr, req.ActivityLevel)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	prediction, err := h.Predictor.PredictMealPlan(c.Request.Context(), req.predictionProfile())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"BMI":        bmi,
		"BMR":        bmr,
		"TDEE":       tdee,
		"prediction": prediction,
	})
}
