package handlers

import (
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

func TestVerificationCodeFilter_Expiry(t *testing.T) {
	issued := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
	expiry := issued.Add(24 * time.Hour)

	filter := verificationCodeFilter("482913", issued.Add(23*time.Hour))
	if filter["verificationToken"] != "482913" {
		t.Errorf("token clause = %v", filter["verificationToken"])
	}
	bound := filter["verificationTokenExpiresAt"].(bson.M)["$gt"].(time.Time)
	if !expiry.After(bound) {
		t.Error("code should still match 23 hours after issue")
	}

	filter = verificationCodeFilter("482913", issued.Add(25*time.Hour))
	bound = filter["verificationTokenExpiresAt"].(bson.M)["$gt"].(time.Time)
	if expiry.After(bound) {
		t.Error("code should be expired 25 hours after issue")
	}
}

func TestResetTokenFilter_Expiry(t *testing.T) {
	issued := time.Date(2026, time.June, 1, 12, 0, 0, 0, time.UTC)
	expiry := issued.Add(1 * time.Hour)

	filter := resetTokenFilter("deadbeef", issued.Add(30*time.Minute))
	bound := filter["resetPasswordTokenExpiresAt"].(bson.M)["$gt"].(time.Time)
	if !expiry.After(bound) {
		t.Error("token should still match 30 minutes after issue")
	}

	filter = resetTokenFilter("deadbeef", issued.Add(2*time.Hour))
	bound = filter["resetPasswordTokenExpiresAt"].(bson.M)["$gt"].(time.Time)
	if expiry.After(bound) {
		t.Error("token should be expired 2 hours after issue")
	}
}

func TestAgeFromBirthDate(t *testing.T) {
	now := time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		name  string
		birth time.Time
		want  int
	}{
		{"birthday passed this year", time.Date(2000, time.March, 1, 0, 0, 0, 0, time.UTC), 26},
		{"birthday later this year", time.Date(2000, time.December, 1, 0, 0, 0, 0, time.UTC), 25},
		{"birthday today", time.Date(2006, time.June, 15, 0, 0, 0, 0, time.UTC), 20},
		{"just under twenty", time.Date(2006, time.June, 16, 0, 0, 0, 0, time.UTC), 19},
	}
	for _, tc := range cases {
		if got := ageFromBirthDate(tc.birth, now); got != tc.want {
			t.Errorf("%s: age = %d, want %d", tc.name, got, tc.want)
		}
	}
}
