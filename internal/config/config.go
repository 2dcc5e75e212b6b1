package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	SessionSecret       string
	DatabaseURL         string // sqlite file path or postgres:// DSN
	RedisURL            string
	GeminiAPIKey        string // empty disables the chatbot
	ModelPath           string // price-model artifact (JSON)
	DatasetPath         string // cleaned car dataset (CSV) for dropdown vocabularies
	FrontendURLEndsWith string
	DevPassword         string
	AllowCrossSiteDev   bool
	HealthAdminKey      string
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	port := viper.GetString("PORT")
	if port == "" {
		port = "8080"
	}
	env := viper.GetString("APP_ENV")
	if env == "" {
		env = "development"
	}

	dbURL := viper.GetString("DATABASE_URL")
	if dbURL == "" {
		dbURL = "app.db"
	}

	modelPath := viper.GetString("MODEL_PATH")
	if modelPath == "" {
		modelPath = "price_model.json"
	}
	datasetPath := viper.GetString("DATASET_PATH")
	if datasetPath == "" {
		datasetPath = "cleaned_car.csv"
	}

	return &Config{
		Env:                 env,
		Port:                port,
		SessionSecret:       viper.GetString("SESSION_SECRET"),
		DatabaseURL:         dbURL,
		RedisURL:            viper.GetString("REDIS_URL"),
		GeminiAPIKey:        viper.GetString("GEMINI_API_KEY"),
		ModelPath:           modelPath,
		DatasetPath:         datasetPath,
		FrontendURLEndsWith: viper.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         viper.GetString("DEV_PASSWORD"),
		AllowCrossSiteDev:   strings.EqualFold(viper.GetString("ALLOW_CROSS_SITE_DEV"), "true"),
		HealthAdminKey:      viper.GetString("HEALTH_ADMIN_KEY"),
	}, nil
}
