package utils

import "testing"

func TestCalculateBMI(t *testing.T) {
	bmi, err := CalculateBMI(170, 70)
	if err != nil {
		t.Fatalf("CalculateBMI: %v", err)
	}
	if bmi != 24.22 {
		t.Errorf("BMI = %v, want 24.22", bmi)
	}
}

func TestCalculateBMI_Invalid(t *testing.T) {
	cases := []struct {
		name   string
		height float64
		weight float64
	}{
		{"zero height", 0, 70},
		{"zero weight", 170, 0},
		{"negative height", -170, 70},
	}
	for _, tc := range cases {
		if _, err := CalculateBMI(tc.height, tc.weight); err == nil {
			t.Errorf("%s: expected error, got none", tc.name)
		}
	}
}

func TestCalculateBMR(t *testing.T) {
	// Mifflin-St Jeor: 10*70 + 6.25*170 - 5*30 + 5 = 1617.5
	bmr, err := CalculateBMR(170, 70, 30, "M")
	if err != nil {
		t.Fatalf("CalculateBMR: %v", err)
	}
	if bmr != 1617.5 {
		t.Errorf("male BMR = %v, want 1617.5", bmr)
	}

	// Female: 10*70 + 6.25*170 - 5*30 - 161 = 1451.5
	bmr, err = CalculateBMR(170, 70, 30, "Female")
	if err != nil {
		t.Fatalf("CalculateBMR: %v", err)
	}
	if bmr != 1451.5 {
		t.Errorf("female BMR = %v, want 1451.5", bmr)
	}
}

func TestCalculateTDEE(t *testing.T) {
	tdee, err := CalculateTDEE(1617.5, 1.5)
	if err != nil {
		t.Fatalf("CalculateTDEE: %v", err)
	}
	if tdee != 2426.25 {
		t.Errorf("TDEE = %v, want 2426.25", tdee)
	}

	if _, err := CalculateTDEE(1617.5, 0); err == nil {
		t.Error("expected error for zero activity level")
	}
}
