package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/chefit/chefit-api/internal/models"
)

func testProfile() PredictionProfile {
	return PredictionProfile{
		Age:                 30,
		Height:              170,
		Weight:              70,
		Gender:              "male",
		DietaryRestrictions: "vegetarian",
		Allergies:           "none",
		ActivityLevel:       1.5,
	}
}

func TestPredictMealPlan_ObjectPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/predict_meal_plan" {
			t.Errorf("path = %q, want /predict_meal_plan", r.URL.Path)
		}
		if r.Method != http.MethodPost {
			t.Errorf("method = %q, want POST", r.Method)
		}
		var profile PredictionProfile
		if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
			t.Errorf("decode profile: %v", err)
		}
		if profile.Age != 30 {
			t.Errorf("age = %d, want 30", profile.Age)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"predicted_meal_plan": {"Monday": {"breakfast": "Oatmeal", "lunch": "Lentil Soup", "dinner": "Tofu Stir Fry"}}}`))
	}))
	defer srv.Close()

	plan, err := NewPredictor(srv.URL).PredictMealPlan(context.Background(), testProfile())
	if err != nil {
		t.Fatalf("PredictMealPlan: %v", err)
	}
	if got, _ := plan.Get("Monday", "breakfast"); got.Title != "Oatmeal" {
		t.Errorf("Monday breakfast = %q, want Oatmeal", got.Title)
	}
	if got, _ := plan.Get("Monday", "dinner"); got.Title != "Tofu Stir Fry" {
		t.Errorf("Monday dinner = %q, want Tofu Stir Fry", got.Title)
	}
	// Days the model did not mention stay as the empty skeleton.
	if got, _ := plan.Get("Tuesday", "lunch"); got.Title != "" {
		t.Errorf("Tuesday lunch = %q, want empty", got.Title)
	}
}

func TestPredictMealPlan_SingleQuotedStringPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"predicted_meal_plan": "{'Sunday': {'breakfast': 'Pancakes', 'lunch': 'Salad', 'dinner': 'Grilled Fish'}}"}`))
	}))
	defer srv.Close()

	plan, err := NewPredictor(srv.URL).PredictMealPlan(context.Background(), testProfile())
	if err != nil {
		t.Fatalf("PredictMealPlan: %v", err)
	}
	if got, _ := plan.Get("Sunday", "lunch"); got.Title != "Salad" {
		t.Errorf("Sunday lunch = %q, want Salad", got.Title)
	}
}

func TestPredictMealPlan_UnknownDaysDropped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"predicted_meal_plan": {"Funday": {"breakfast": "Cake"}, "Friday": {"BREAKFAST": "Eggs"}}}`))
	}))
	defer srv.Close()

	plan, err := NewPredictor(srv.URL).PredictMealPlan(context.Background(), testProfile())
	if err != nil {
		t.Fatalf("PredictMealPlan: %v", err)
	}
	// Unknown day dropped; meal key matched case-insensitively.
	if got, _ := plan.Get("Friday", "breakfast"); got.Title != "Eggs" {
		t.Errorf("Friday breakfast = %q, want Eggs", got.Title)
	}
	var empty models.WeekGrid[models.PlannedMeal]
	plan.Friday = empty.Friday
	if plan != empty {
		t.Error("cells outside Friday should be untouched")
	}
}

func TestPredictMealPlan_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model unavailable", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if _, err := NewPredictor(srv.URL).PredictMealPlan(context.Background(), testProfile()); err == nil {
		t.Fatal("expected error on upstream 500")
	}
}

func TestPredictMealPlan_MalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"predicted_meal_plan": "not a plan at all"}`))
	}))
	defer srv.Close()

	if _, err := NewPredictor(srv.URL).PredictMealPlan(context.Background(), testProfile()); err == nil {
		t.Fatal("expected error on malformed plan")
	}
}

func TestPredictMealPlan_MissingField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	if _, err := NewPredictor(srv.URL).PredictMealPlan(context.Background(), testProfile()); err == nil {
		t.Fatal("expected error when predicted_meal_plan is absent")
	}
}
