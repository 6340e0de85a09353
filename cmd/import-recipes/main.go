package main

import (
	"context"
	"encoding/csv"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chefit/chefit-api/internal/config"
	"github.com/chefit/chefit-api/internal/models"
)

// Bulk-imports the recipe catalog from a CSV with a header row. Usage:
//
//	import-recipes <path/to/recipes.csv>
func main() {
	if len(os.Args) != 2 {
		log.Fatal("usage: import-recipes <path/to/recipes.csv>")
	}

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	recipes, err := readRecipes(os.Args[1])
	if err != nil {
		log.Fatalf("Failed to read recipes: %v", err)
	}
	if len(recipes) == 0 {
		log.Fatal("No recipes found in CSV")
	}

	docs := make([]interface{}, len(recipes))
	for i, r := range recipes {
		docs[i] = r
	}

	coll := client.Database(cfg.MongoDatabase).Collection("recipes")
	result, err := coll.InsertMany(ctx, docs)
	if err != nil {
		log.Fatalf("Failed to insert recipes: %v", err)
	}
	log.Printf("Imported %d recipes", len(result.InsertedIDs))
}

func readRecipes(path string) ([]models.Recipe, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	rows, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) < 2 {
		return nil, nil
	}

	// Header-keyed access so column order in the export doesn't matter.
	index := map[string]int{}
	for i, name := range rows[0] {
		index[strings.TrimSpace(name)] = i
	}
	field := func(row []string, name string) string {
		i, ok := index[name]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}
	number := func(row []string, name string) float64 {
		v, err := strconv.ParseFloat(field(row, name), 64)
		if err != nil {
			return 0
		}
		return v
	}
	boolean := func(row []string, name string) bool {
		switch strings.ToLower(field(row, name)) {
		case "true", "1", "yes":
			return true
		}
		return false
	}

	var recipes []models.Recipe
	for _, row := range rows[1:] {
		title := field(row, "title")
		if title == "" {
			continue
		}
		recipes = append(recipes, models.Recipe{
			Title:                title,
			Summary:              field(row, "summary"),
			PrepTime:             field(row, "prep_time"),
			CookTime:             field(row, "cook_time"),
			Servings:             field(row, "servings"),
			Ingredients:          field(row, "ingredients"),
			Instructions:         field(row, "instructions"),
			Calories:             number(row, "calories"),
			Carbohydrates:        number(row, "carbohydrates"),
			Protein:              number(row, "protein"),
			Fat:                  number(row, "fat"),
			Sodium:               number(row, "sodium"),
			Vegetarian:           boolean(row, "vegetarian"),
			LowPurine:            boolean(row, "low_purine"),
			LowFat:               boolean(row, "low_fat"),
			LowSodium:            boolean(row, "low_sodium"),
			LactoseFree:          boolean(row, "lactose_free"),
			PeanutAllergySafe:    boolean(row, "peanut_allergy_safe"),
			ShellfishAllergySafe: boolean(row, "shellfish_allergy_safe"),
			FishAllergySafe:      boolean(row, "fish_allergy_safe"),
			HalalKosher:          boolean(row, "halal_kosher"),
		})
	}
	return recipes, nil
}
