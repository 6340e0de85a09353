package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/chefit/chefit-api/internal/models"
)

// Predictor wraps the external meal-prediction service. The service takes a
// patient profile and returns a weekly grid of meal names; everything beyond
// that (model, training data) is opaque to the API.
type Predictor struct {
	baseURL string
	client  *http.Client
}

func NewPredictor(baseURL string) *Predictor {
	return &Predictor{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// PredictionProfile is the input contract of the prediction endpoint.
type PredictionProfile struct {
	Age                 int     `json:"age"`
	Height              float64 `json:"height"`
	Weight              float64 `json:"weight"`
	Gender              string  `json:"gender"`
	DietaryRestrictions string  `json:"dietary_restrictions"`
	Allergies           string  `json:"allergies"`
	ActivityLevel       float64 `json:"activity_level"`
}

type predictResponse struct {
	PredictedMealPlan json.RawMessage `json:"predicted_meal_plan"`
}

// PredictMealPlan posts the profile and maps the response onto a WeekGrid.
// The upstream payload is a day-keyed object of meal names, sometimes
// serialized as a single-quoted JSON string; quotes are normalized before
// decoding. Days missing from the payload keep the empty skeleton. Any
// transport or decode failure is returned as-is: callers fail the whole
// request rather than persisting a half-built plan.
func (p *Predictor) PredictMealPlan(ctx context.Context, profile PredictionProfile) (models.WeekGrid[models.PlannedMeal], error) {
	var plan models.WeekGrid[models.PlannedMeal]

	b, err := json.Marshal(profile)
	if err != nil {
		return plan, fmt.Errorf("failed to marshal prediction payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/predict_meal_plan", bytes.NewReader(b))
	if err != nil {
		return plan, fmt.Errorf("failed to create prediction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return plan, fmt.Errorf("failed to call prediction service: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return plan, fmt.Errorf("failed to read prediction response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return plan, fmt.Errorf("prediction service error %d: %s", resp.StatusCode, string(body))
	}

	var pr predictResponse
	if err := json.Unmarshal(body, &pr); err != nil {
		return plan, fmt.Errorf("failed to parse prediction response: %w", err)
	}
	if len(pr.PredictedMealPlan) == 0 {
		return plan, fmt.Errorf("prediction response missing predicted_meal_plan")
	}

	raw, err := normalizePrediction(pr.PredictedMealPlan)
	if err != nil {
		return plan, err
	}

	var days map[string]map[string]string
	if err := json.Unmarshal(raw, &days); err != nil {
		return plan, fmt.Errorf("failed to parse predicted meal plan: %w", err)
	}

	for day, meals := range days {
		d, ok := plan.Day(day)
		if !ok {
			continue // unknown day names are dropped, skeleton stays empty
		}
		for meal, title := range meals {
			if slot, ok := d.Slot(strings.ToLower(meal)); ok {
				slot.Title = title
			}
		}
	}
	return plan, nil
}

// normalizePrediction unwraps a string-encoded plan and rewrites the
// single-quoted pseudo-JSON the model emits into parseable JSON.
func normalizePrediction(raw json.RawMessage) (json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("empty predicted meal plan")
	}
	if trimmed[0] != '"' {
		return trimmed, nil
	}

	var inner string
	if err := json.Unmarshal(trimmed, &inner); err != nil {
		return nil, fmt.Errorf("failed to unwrap predicted meal plan string: %w", err)
	}
	inner = strings.ReplaceAll(inner, "'", `"`)
	return json.RawMessage(inner), nil
}
