package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// NutritionistPatient is a patient managed by a nutritionist rather than
// self-registered. It carries the same plan/tracking grids as Patient plus
// nutritionist notes and per-slot addon lists. No BMR/TDEE here; only the
// self-service flow derives those.
type NutritionistPatient struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FirstName      string             `bson:"firstName" json:"firstName"`
	LastName       string             `bson:"lastName" json:"lastName"`
	NutritionistID string             `bson:"nutritionistId" json:"nutritionistId"`

	Age           int     `bson:"age" json:"age"`
	Height        float64 `bson:"height" json:"height"`
	Weight        float64 `bson:"weight" json:"weight"`
	Gender        string  `bson:"gender" json:"gender"`
	ActivityLevel float64 `bson:"activity_level" json:"activity_level"`
	Preference    string  `bson:"preference" json:"preference"`
	Restrictions  string  `bson:"restrictions" json:"restrictions"`

	BMI float64 `bson:"BMI" json:"BMI"`

	Prediction        WeekGrid[PlannedMeal] `bson:"prediction" json:"prediction"`
	Progress          WeekGrid[bool]        `bson:"progress" json:"progress"`
	SkippedMeals      WeekGrid[bool]        `bson:"skippedMeals" json:"skippedMeals"`
	MealNotes         WeekGrid[string]      `bson:"mealNotes" json:"mealNotes"`
	NutritionistNotes WeekGrid[string]      `bson:"nutritionistNotes" json:"nutritionistNotes"`
	MealAddons        WeekGrid[[]MealAddon] `bson:"mealAddons" json:"mealAddons"`

	MealPlanHistory []MealPlanSnapshot `bson:"mealPlanHistory" json:"mealPlanHistory"`

	AccessCode string `bson:"accessCode" json:"accessCode"`

	Archived   bool       `bson:"archived" json:"archived"`
	ArchivedAt *time.Time `bson:"archivedAt,omitempty" json:"archivedAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
