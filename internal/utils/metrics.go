package utils

import (
	"errors"
	"math"
	"strings"
)

// CalculateBMI expects height in centimeters and weight in kilograms and
// returns the index rounded to two decimals, the value stored on the
// patient document at creation time.
func CalculateBMI(heightCm, weightKg float64) (float64, error) {
	if heightCm <= 0 || weightKg <= 0 {
		return 0, errors.New("height and weight must be positive")
	}

	h := heightCm / 100.0 // to meters
	bmi := weightKg / (h * h)
	return math.Round(bmi*100) / 100, nil
}

// CalculateBMR uses the Mifflin-St Jeor equation. Gender strings starting
// with "m"/"M" count as male; everything else as female.
func CalculateBMR(heightCm, weightKg float64, age int, gender string) (float64, error) {
	if heightCm <= 0 || weightKg <= 0 || age <= 0 {
		return 0, errors.New("height, weight and age must be positive")
	}

	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if strings.HasPrefix(strings.ToLower(gender), "m") {
		bmr += 5
	} else {
		bmr -= 161
	}
	return math.Round(bmr*100) / 100, nil
}

// CalculateTDEE scales BMR by the activity multiplier.
func CalculateTDEE(bmr, activityLevel float64) (float64, error) {
	if activityLevel <= 0 {
		return 0, errors.New("activity level must be positive")
	}
	return math.Round(bmr*activityLevel*100) / 100, nil
}
