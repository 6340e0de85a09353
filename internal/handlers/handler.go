package handlers

import (
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/chefit/chefit-api/internal/services"
)

// Handler holds everything the HTTP layer needs: the database handle and the
// two external collaborators (mail provider, meal-prediction service).
type Handler struct {
	DB        *mongo.Database
	Mail      *services.Mailer
	Predictor *services.Predictor
	ClientURL string
	JWTSecret string
}

func NewHandler(db *mongo.Database, mail *services.Mailer, predictor *services.Predictor, clientURL, jwtSecret string) *Handler {
	return &Handler{
		DB:        db,
		Mail:      mail,
		Predictor: predictor,
		ClientURL: clientURL,
		JWTSecret: jwtSecret,
	}
}

func (h *Handler) users() *mongo.Collection {
	return h.DB.Collection("users")
}

func (h *Handler) patients() *mongo.Collection {
	return h.DB.Collection("patients")
}

func (h *Handler) nutritionistPatients() *mongo.Collection {
	return h.DB.Collection("nutritionist_patients")
}

func (h *Handler) recipes() *mongo.Collection {
	return h.DB.Collection("recipes")
}
