package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config carries every environment-derived setting the server needs. It is
// built once in main and passed down; nothing else reads the environment for
// connection or provider settings.
type Config struct {
	MongoURI      string
	MongoDatabase string
	Port          string
	JWTSecret     string
	ResendAPIKey  string
	MLAPIURL      string
	ClientURL     string
}

// Load reads .env (if present) and the process environment. A missing Mongo
// URI or JWT secret is fatal: the server cannot run without either.
func Load() Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables.")
	}

	cfg := Config{
		MongoURI:      os.Getenv("MONG_URI"),
		MongoDatabase: os.Getenv("MONGO_DATABASE"),
		Port:          os.Getenv("PORT"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		ResendAPIKey:  os.Getenv("RESEND_API_KEY"),
		MLAPIURL:      os.Getenv("ML_API_URL"),
		ClientURL:     os.Getenv("CLIENT_URL"),
	}

	if cfg.MongoURI == "" {
		log.Fatal("MONG_URI is not set")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}
	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = "chefit"
	}
	if cfg.Port == "" {
		cfg.Port = "4000"
	}
	if cfg.MLAPIURL == "" {
		cfg.MLAPIURL = "http://127.0.0.1:5000"
	}
	return cfg
}
