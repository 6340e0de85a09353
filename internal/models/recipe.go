package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Recipe is a flat catalog document. Ingredients are a comma-joined string
// and instructions a period-delimited string, matching the imported CSV.
type Recipe struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	Title        string             `bson:"title" json:"title"`
	Summary      string             `bson:"summary" json:"summary"`
	PrepTime     string             `bson:"prep_time" json:"prep_time"`
	CookTime     string             `bson:"cook_time" json:"cook_time"`
	Servings     string             `bson:"servings" json:"servings"`
	Ingredients  string             `bson:"ingredients" json:"ingredients"`
	Instructions string             `bson:"instructions" json:"instructions"`

	Calories      float64 `bson:"calories" json:"calories"`
	Carbohydrates float64 `bson:"carbohydrates" json:"carbohydrates"`
	Protein       float64 `bson:"protein" json:"protein"`
	Fat           float64 `bson:"fat" json:"fat"`
	Sodium        float64 `bson:"sodium" json:"sodium"`

	Vegetarian           bool `bson:"vegetarian" json:"vegetarian"`
	LowPurine            bool `bson:"low_purine" json:"low_purine"`
	LowFat               bool `bson:"low_fat" json:"low_fat"`
	LowSodium            bool `bson:"low_sodium" json:"low_sodium"`
	LactoseFree          bool `bson:"lactose_free" json:"lactose_free"`
	PeanutAllergySafe    bool `bson:"peanut_allergy_safe" json:"peanut_allergy_safe"`
	ShellfishAllergySafe bool `bson:"shellfish_allergy_safe" json:"shellfish_allergy_safe"`
	FishAllergySafe      bool `bson:"fish_allergy_safe" json:"fish_allergy_safe"`
	HalalKosher          bool `bson:"halal_kosher" json:"halal_kosher"`
}

// DietaryFlagFields maps the flag names accepted by recipe search to their
// document field names. Anything outside this map is ignored by search.
var DietaryFlagFields = map[string]string{
	"vegetarian":             "vegetarian",
	"low_purine":             "low_purine",
	"low_fat":                "low_fat",
	"low_sodium":             "low_sodium",
	"lactose_free":           "lactose_free",
	"peanut_allergy_safe":    "peanut_allergy_safe",
	"shellfish_allergy_safe": "shellfish_allergy_safe",
	"fish_allergy_safe":      "fish_allergy_safe",
	"halal_kosher":           "halal_kosher",
}
