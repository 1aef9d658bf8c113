package config

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
)

type WeatherConfig struct {
	ProviderURL    string
	DefaultStation string
}

type Config struct {
	DB_URL      string
	Port        string
	Environment string
	SeedDemo    bool
	CorsConfig  cors.Options
	Weather     WeatherConfig
}

var Envs = initConfig()

func initConfig() Config {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("No", envFile, "file found")
	}

	return Config{
		DB_URL:      getEnv("DB_URL", ""),
		Port:        getEnv("PORT", "3000"),
		Environment: getEnv("ENV", "development"),
		SeedDemo:    getEnv("SEED_DEMO", "true") == "true",
		CorsConfig:  CorsConfig(),
		Weather: WeatherConfig{
			ProviderURL:    getEnv("WEATHER_PROVIDER_URL", ""),
			DefaultStation: getEnv("WEATHER_DEFAULT_STATION", "台北"),
		},
	}
}

// Gets the env by key or fallbacks
func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func CorsConfig() cors.Options {
	return cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:3000"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}
}
