package main

import (
	"context"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/chefit/chefit-api/internal/config"
	"github.com/chefit/chefit-api/internal/handlers"
	"github.com/chefit/chefit-api/internal/middleware"
	"github.com/chefit/chefit-api/internal/services"
)

func main() {
	cfg := config.Load()

	// --- Database Connection ---
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)
	db := client.Database(cfg.MongoDatabase)
	log.Println("Successfully connected to MongoDB!")

	ensureIndexes(ctx, db)

	// --- Initialize Services ---
	mailer := services.NewMailer(cfg.ResendAPIKey)
	predictor := services.NewPredictor(cfg.MLAPIURL)

	// --- Initialize Handlers with DB and Services ---
	h := handlers.NewHandler(db, mailer, predictor, cfg.ClientURL, cfg.JWTSecret)

	// --- Gin Router ---
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.ClientURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	// --- Routes ---
	auth := r.Group("/api/auth")
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)
		auth.POST("/logout", h.Logout)
		auth.POST("/verify_email", h.VerifyEmail)
		auth.POST("/forgot_password", h.ForgotPassword)
		auth.POST("/reset_password/:token", h.ResetPassword)
		auth.GET("/check_reset_token/:token", h.CheckResetToken)
		auth.GET("/check_auth", middleware.AuthMiddleware(cfg.JWTSecret), h.CheckAuth)
	}

	patient := r.Group("/api/patient_routes")
	{
		// Guest surface: access codes are the authorization.
		patient.POST("/guest-predict", h.GuestPredict)
		patient.POST("/verify-access-code", h.VerifyAccessCode)
		patient.GET("/access-code-data/:accessCode", h.GetAccessCodeData)
		patient.GET("/access-code-history/:accessCode", h.GetAccessCodeHistory)
		patient.PATCH("/update-progress/:accessCode", h.UpdateProgressByAccessCode)
		patient.PATCH("/update-meal-status/:accessCode", h.UpdateMealStatusByAccessCode)
		patient.PATCH("/update-meal-notes/:accessCode", h.UpdateMealNotesByAccessCode)
		patient.PATCH("/update-addon-status/:accessCode", h.UpdateAddonStatusByAccessCode)
		patient.PATCH("/update-historical-meal-plan/:accessCode/:planId", h.UpdateHistoricalMealPlan)

		// Session surface.
		authed := patient.Group("")
		authed.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			authed.GET("", h.GetUserMealPlans)
			authed.POST("", h.CreatePatient)
			authed.GET("/user-meal-plans", h.GetUserMealPlans)
			authed.GET("/:id", h.GetPatient)
			authed.PATCH("/:id", h.UpdatePatient)
			authed.DELETE("/:id", h.DeletePatient)
			authed.GET("/:id/progress", h.GetWeeklyProgress)
			authed.PATCH("/:id/progress", h.UpdatePatientProgress)
			authed.PATCH("/:id/meal-notes", h.UpdatePatientMealNotes)
		}
	}

	nutritionist := r.Group("/api/nutritionist/patients")
	nutritionist.Use(middleware.AuthMiddleware(cfg.JWTSecret))
	{
		nutritionist.GET("", h.GetNutritionistPatients)
		nutritionist.POST("", h.CreateNutritionistPatient)
		nutritionist.GET("/:id", h.GetNutritionistPatient)
		nutritionist.PATCH("/:id", h.UpdateNutritionistPatient)
		nutritionist.DELETE("/:id", h.DeleteNutritionistPatient)
		nutritionist.PATCH("/:id/meal", h.UpdatePlannedMeal)
		nutritionist.PATCH("/:id/progress", h.UpdateNutritionistPatientProgress)
		nutritionist.PATCH("/:id/nutritionist-notes", h.UpdateNutritionistNotes)
		nutritionist.PATCH("/:id/meal-addons", h.UpdateMealAddons)
		nutritionist.POST("/:id/regenerate-meal-plan", h.RegenerateMealPlan)
		nutritionist.GET("/:id/meal-plan-history", h.GetMealPlanHistory)
	}

	recipes := r.Group("/api/recipes")
	{
		recipes.GET("", h.GetAllRecipes)
		recipes.GET("/:id", h.GetRecipe)
		recipes.GET("/title/:title", h.GetRecipeByTitle)

		protected := recipes.Group("")
		protected.Use(middleware.AuthMiddleware(cfg.JWTSecret))
		{
			protected.POST("/search", h.SearchRecipes)
			protected.POST("", h.CreateRecipe)
			protected.PATCH("/:id", h.UpdateRecipe)
			protected.DELETE("/:id", h.DeleteRecipe)
		}
	}

	log.Printf("Starting server on port %s", cfg.Port)
	r.Run(":" + cfg.Port)
}

func ensureIndexes(ctx context.Context, db *mongo.Database) {
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		log.Fatalf("Failed to create users email index: %v", err)
	}

	_, err = db.Collection("recipes").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "title", Value: "text"},
			{Key: "summary", Value: "text"},
			{Key: "ingredients", Value: "text"},
		},
	})
	if err != nil {
		log.Fatalf("Failed to create recipes text index: %v", err)
	}

	for _, coll := range []string{"patients", "nutritionist_patients"} {
		_, err = db.Collection(coll).Indexes().CreateOne(ctx, mongo.IndexModel{
			Keys: bson.D{{Key: "accessCode", Value: 1}},
		})
		if err != nil {
			log.Fatalf("Failed to create %s accessCode index: %v", coll, err)
		}
	}
}
