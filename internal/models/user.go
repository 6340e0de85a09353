package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	FirstName  string             `bson:"firstName" json:"firstName"`
	LastName   string             `bson:"lastName" json:"lastName"`
	BirthDate  time.Time          `bson:"birthDate" json:"birthDate"`
	Sex        string             `bson:"sex" json:"sex"` // "Male" | "Female"
	Email      string             `bson:"email" json:"email"`
	Password   string             `bson:"password" json:"-"` // bcrypt hash, never serialized
	IsVerified bool               `bson:"isVerified" json:"isVerified"`
	Role       string             `bson:"role" json:"role"` // "guest" | "user" | "admin"

	// Single-use, time-bounded tokens.
	VerificationToken           string     `bson:"verificationToken,omitempty" json:"-"`
	VerificationTokenExpiresAt  *time.Time `bson:"verificationTokenExpiresAt,omitempty" json:"verificationTokenExpiresAt,omitempty"`
	ResetPasswordToken          string     `bson:"resetPasswordToken,omitempty" json:"-"`
	ResetPasswordTokenExpiresAt *time.Time `bson:"resetPasswordTokenExpiresAt,omitempty" json:"-"`

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
