package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

func TestLookupStatus(t *testing.T) {
	status, msg := lookupStatus(mongo.ErrNoDocuments)
	if status != http.StatusNotFound {
		t.Errorf("no-documents status = %d, want 404", status)
	}
	if msg != "Invalid access code" {
		t.Errorf("no-documents message = %q", msg)
	}

	status, _ = lookupStatus(fmt.Errorf("decode: %w", mongo.ErrNoDocuments))
	if status != http.StatusNotFound {
		t.Errorf("wrapped no-documents status = %d, want 404", status)
	}

	status, _ = lookupStatus(errors.New("connection reset"))
	if status != http.StatusInternalServerError {
		t.Errorf("transport failure status = %d, want 500", status)
	}
}

func TestBuildMealStatusUpdate_Skip(t *testing.T) {
	update, err := buildMealStatusUpdate("Monday", "breakfast", true, "ate out with family")
	if err != nil {
		t.Fatalf("buildMealStatusUpdate: %v", err)
	}

	set, ok := update["$set"].(bson.M)
	if !ok {
		t.Fatalf("update has no $set document: %#v", update)
	}
	if v := set["skippedMeals.Monday.breakfast"]; v != true {
		t.Errorf("skippedMeals = %v, want true", v)
	}
	if v := set["mealNotes.Monday.breakfast"]; v != "ate out with family" {
		t.Errorf("mealNotes = %v, want the note", v)
	}
	// Skip always wins over a previous completion mark.
	if v := set["progress.Monday.breakfast"]; v != false {
		t.Errorf("progress = %v, want false", v)
	}
}

func TestBuildMealStatusUpdate_Unskip(t *testing.T) {
	update, err := buildMealStatusUpdate("Friday", "dinner", false, "stale note")
	if err != nil {
		t.Fatalf("buildMealStatusUpdate: %v", err)
	}

	set := update["$set"].(bson.M)
	if v := set["skippedMeals.Friday.dinner"]; v != false {
		t.Errorf("skippedMeals = %v, want false", v)
	}
	if v := set["mealNotes.Friday.dinner"]; v != "" {
		t.Errorf("unskip should clear the note, got %v", v)
	}
	// Unskipping must not resurrect or touch the completion flag.
	if _, ok := set["progress.Friday.dinner"]; ok {
		t.Error("unskip should leave progress untouched")
	}
}

func TestBuildMealStatusUpdate_InvalidCell(t *testing.T) {
	if _, err := buildMealStatusUpdate("Monday", "snack", true, ""); err == nil {
		t.Error("expected error for unknown meal slot")
	}
	if _, err := buildMealStatusUpdate("Blursday", "lunch", true, ""); err == nil {
		t.Error("expected error for unknown day")
	}
}
