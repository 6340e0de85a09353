package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlannedMeal is one cell of a weekly meal plan. The prediction service only
// fills the title; calorie/serving detail is optional and may be set later.
type PlannedMeal struct {
	Title    string  `bson:"title" json:"title"`
	Calories float64 `bson:"calories,omitempty" json:"calories,omitempty"`
	Servings float64 `bson:"servings,omitempty" json:"servings,omitempty"`
}

// MealAddon is an extra item a nutritionist attaches to one meal slot.
type MealAddon struct {
	Text      string `bson:"text" json:"text"`
	Completed bool   `bson:"completed" json:"completed"`
	Skipped   bool   `bson:"skipped" json:"skipped"`
}

// MealPlanSnapshot captures the full tracking state of a plan at the moment
// it was regenerated. The history list is append-only.
type MealPlanSnapshot struct {
	ID                primitive.ObjectID    `bson:"_id" json:"_id"`
	Date              time.Time             `bson:"date" json:"date"`
	Prediction        WeekGrid[PlannedMeal] `bson:"prediction" json:"prediction"`
	Progress          WeekGrid[bool]        `bson:"progress" json:"progress"`
	SkippedMeals      WeekGrid[bool]        `bson:"skippedMeals" json:"skippedMeals"`
	MealNotes         WeekGrid[string]      `bson:"mealNotes" json:"mealNotes"`
	NutritionistNotes WeekGrid[string]      `bson:"nutritionistNotes" json:"nutritionistNotes"`
}

// Patient is a self-registered user's meal plan document.
type Patient struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	UserID        string             `bson:"userId" json:"userId"`
	Age           int                `bson:"age" json:"age"`
	Height        float64            `bson:"height" json:"height"` // cm
	Weight        float64            `bson:"weight" json:"weight"` // kg
	Gender        string             `bson:"gender" json:"gender"`
	ActivityLevel float64            `bson:"activity_level" json:"activity_level"`
	Preference    string             `bson:"preference" json:"preference"`
	Restrictions  string             `bson:"restrictions" json:"restrictions"`

	// Stored at creation, not recomputed on read.
	BMI  float64 `bson:"BMI" json:"BMI"`
	BMR  float64 `bson:"BMR" json:"BMR"`
	TDEE float64 `bson:"TDEE" json:"TDEE"`

	Prediction   WeekGrid[PlannedMeal] `bson:"prediction" json:"prediction"`
	Progress     WeekGrid[bool]        `bson:"progress" json:"progress"`
	SkippedMeals WeekGrid[bool]        `bson:"skippedMeals" json:"skippedMeals"`
	MealNotes    WeekGrid[string]      `bson:"mealNotes" json:"mealNotes"`

	MealPlanHistory []MealPlanSnapshot `bson:"mealPlanHistory" json:"mealPlanHistory"`

	// Capability token for guest access without a session.
	AccessCode string `bson:"accessCode" json:"accessCode"`

	Archived   bool       `bson:"archived" json:"archived"`
	ArchivedAt *time.Time `bson:"archivedAt,omitempty" json:"archivedAt,omitempty"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
