package models

import (
	"encoding/json"
	"testing"
)

func TestWeekGridGetSet(t *testing.T) {
	var grid WeekGrid[bool]

	v, ok := grid.Get("Monday", "breakfast")
	if !ok {
		t.Fatal("Monday/breakfast should be a valid cell")
	}
	if v {
		t.Error("zero grid should read false")
	}

	if err := grid.Set("Monday", "breakfast", true); err != nil {
		t.Fatalf("Set: %v", err)
	}
	if v, _ := grid.Get("Monday", "breakfast"); !v {
		t.Error("Set value not readable back")
	}
	if v, _ := grid.Get("Monday", "lunch"); v {
		t.Error("Set leaked into a neighboring slot")
	}

	if err := grid.Set("Funday", "breakfast", true); err == nil {
		t.Error("expected error for unknown day")
	}
	if err := grid.Set("Monday", "brunch", true); err == nil {
		t.Error("expected error for unknown meal")
	}
}

func TestValidCell(t *testing.T) {
	for _, day := range Weekdays {
		for _, meal := range MealSlots {
			if !ValidCell(day, meal) {
				t.Errorf("ValidCell(%q, %q) = false", day, meal)
			}
		}
	}
	invalid := [][2]string{
		{"monday", "breakfast"}, // day keys are capitalized
		{"Monday", "Breakfast"}, // meal keys are lowercase
		{"Someday", "lunch"},
		{"Friday", "snack"},
		{"", ""},
	}
	for _, pair := range invalid {
		if ValidCell(pair[0], pair[1]) {
			t.Errorf("ValidCell(%q, %q) = true", pair[0], pair[1])
		}
	}
}

func TestFieldPath(t *testing.T) {
	path, err := FieldPath("progress", "Monday", "breakfast")
	if err != nil {
		t.Fatalf("FieldPath: %v", err)
	}
	if path != "progress.Monday.breakfast" {
		t.Errorf("path = %q, want %q", path, "progress.Monday.breakfast")
	}

	if _, err := FieldPath("progress", "Monday", "password"); err == nil {
		t.Error("expected error for non-meal field name")
	}
	if _, err := FieldPath("progress", "$set", "breakfast"); err == nil {
		t.Error("expected error for operator-looking day name")
	}
}

func TestWeekGridJSONKeys(t *testing.T) {
	var grid WeekGrid[string]
	b, err := json.Marshal(&grid)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded map[string]map[string]string
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(decoded) != 7 {
		t.Fatalf("got %d day keys, want 7", len(decoded))
	}
	for _, day := range Weekdays {
		meals, ok := decoded[day]
		if !ok {
			t.Fatalf("missing day key %q", day)
		}
		if len(meals) != 3 {
			t.Errorf("%s: got %d meal keys, want 3", day, len(meals))
		}
		for _, meal := range MealSlots {
			if _, ok := meals[meal]; !ok {
				t.Errorf("%s: missing meal key %q", day, meal)
			}
		}
	}
}
