package utils

import (
	"fmt"
	"math/rand"
)

// GenerateAccessCode returns a 6-digit numeric code. Used both for patient
// access codes and email verification codes.
func GenerateAccessCode() string {
	return fmt.Sprintf("%06d", rand.Intn(1000000))
}
