package config

import (
	"errors"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Server   ServerConfig
	Database DatabaseConfig
	JWT      JWTConfig
	Redis    RedisConfig
	Model    ModelConfig
}

type AppConfig struct {
	Name        string
	Version     string
	Environment string
}

type ServerConfig struct {
	Port string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type JWTConfig struct {
	SecretKey string
}

type RedisConfig struct {
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
}

type ModelConfig struct {
	// Dir is where filesystem artifact blobs live (one file per key).
	Dir string
	// ArtifactBackend selects "fs" or "redis".
	ArtifactBackend string
	// Rank and Alpha are the training defaults when tuning is off.
	Rank  int
	Alpha float64
	Tune  bool
	// Serving defaults for the two recommendation endpoints.
	DefaultNumRecs    int
	DefaultNumSimilar int
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, errors.New("invalid redis database index")
	}
	modelRank, err := strconv.Atoi(getEnv("MODEL_RANK", "10"))
	if err != nil {
		return nil, errors.New("invalid model rank")
	}
	modelAlpha, err := strconv.ParseFloat(getEnv("MODEL_ALPHA", "0.5"), 64)
	if err != nil {
		return nil, errors.New("invalid model alpha")
	}

	cfg := &Config{
		App: AppConfig{
			Name:        getEnv("APP_NAME", "webbanhang-recommender"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
			Environment: getEnv("APP_ENV", "development"),
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "3306"),
			User:     getEnv("DB_USER", "root"),
			Password: getEnv("DB_PASSWORD", ""),
			Name:     getEnv("DB_NAME", "websellproduct"),
		},
		JWT: JWTConfig{
			SecretKey: getEnv("JWT_SECRET", ""),
		},
		Redis: RedisConfig{
			RedisHost:     getEnv("REDIS_HOST", "localhost"),
			RedisPort:     getEnv("REDIS_PORT", "6379"),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       redisDB,
		},
		Model: ModelConfig{
			Dir:               getEnv("MODEL_DIR", "saved_models"),
			ArtifactBackend:   getEnv("ARTIFACT_BACKEND", "fs"),
			Rank:              modelRank,
			Alpha:             modelAlpha,
			Tune:              getEnv("MODEL_TUNE", "false") == "true",
			DefaultNumRecs:    5,
			DefaultNumSimilar: 3,
		},
	}

	if cfg.Model.Alpha < 0 || cfg.Model.Alpha > 1 {
		return nil, errors.New("model alpha must be in [0,1]")
	}
	if cfg.Model.ArtifactBackend != "fs" && cfg.Model.ArtifactBackend != "redis" {
		return nil, errors.New("artifact backend must be fs or redis")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}

	return defaultVal
}
