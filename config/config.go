package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server         ServerConfig
	Database       DatabaseConfig
	Redis          RedisConfig
	JWT            JWTConfig
	CORS           CORSConfig
	Catalog        CatalogConfig
	Recommendation RecommendationConfig
	RateLimit      RateLimitConfig
}

type ServerConfig struct {
	Port        string
	GinMode     string
	Environment string
}

type DatabaseConfig struct {
	Driver     string // postgres, sqlite
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SSLMode    string
	SQLitePath string
}

type RedisConfig struct {
	Enabled  bool
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret             string
	ProfileTokenExpiry time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

// CatalogConfig points at the static restaurant catalog used to seed the
// restaurants table on first start.
type CatalogConfig struct {
	Source            string // file, s3, none
	Path              string
	S3Region          string
	S3Bucket          string
	S3Key             string
	S3AccessKeyID     string
	S3SecretAccessKey string
}

type RecommendationConfig struct {
	DefaultLimit         int
	AdaptiveRadiusKm     float64
	CacheMoveThresholdKm float64
	CacheTTL             time.Duration
	CachePurgeSpec       string
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	config := &Config{
		Server: ServerConfig{
			Port:        getEnv("SERVER_PORT", "8080"),
			GinMode:     getEnv("GIN_MODE", "debug"),
			Environment: getEnv("ENVIRONMENT", "development"),
		},
		Database: DatabaseConfig{
			Driver:     getEnv("DB_DRIVER", "sqlite"),
			Host:       getEnv("DB_HOST", "localhost"),
			Port:       getEnv("DB_PORT", "5432"),
			User:       getEnv("DB_USER", "foodreco"),
			Password:   getEnv("DB_PASSWORD", ""),
			DBName:     getEnv("DB_NAME", "foodreco"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
			SQLitePath: getEnv("DB_SQLITE_PATH", "food_reco.db"),
		},
		Redis: RedisConfig{
			Enabled:  parseBool(getEnv("REDIS_ENABLED", "false")),
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       parseInt(getEnv("REDIS_DB", "0"), 0),
		},
		JWT: JWTConfig{
			Secret:             getEnv("JWT_SECRET", "your-secret-key"),
			ProfileTokenExpiry: parseDuration(getEnv("JWT_PROFILE_TOKEN_EXPIRY", "720h"), 720*time.Hour),
		},
		CORS: CORSConfig{
			AllowedOrigins: parseSlice(getEnv("ALLOWED_ORIGINS", "http://localhost:8081,http://localhost:19006")),
		},
		Catalog: CatalogConfig{
			Source:            getEnv("CATALOG_SOURCE", "file"),
			Path:              getEnv("CATALOG_PATH", "data/restaurants.json"),
			S3Region:          getEnv("AWS_REGION", "eu-west-3"),
			S3Bucket:          getEnv("CATALOG_S3_BUCKET", ""),
			S3Key:             getEnv("CATALOG_S3_KEY", "catalog/restaurants.json"),
			S3AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
			S3SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
		},
		Recommendation: RecommendationConfig{
			DefaultLimit:         parseInt(getEnv("RECOMMENDATION_DEFAULT_LIMIT", "10"), 10),
			AdaptiveRadiusKm:     parseFloat(getEnv("RECOMMENDATION_ADAPTIVE_RADIUS_KM", "20"), 20),
			CacheMoveThresholdKm: parseFloat(getEnv("RECOMMENDATION_CACHE_MOVE_KM", "0.2"), 0.2),
			CacheTTL:             parseDuration(getEnv("RECOMMENDATION_CACHE_TTL", "30m"), 30*time.Minute),
			CachePurgeSpec:       getEnv("RECOMMENDATION_CACHE_PURGE_SPEC", "*/10 * * * *"),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: parseFloat(getEnv("RATE_LIMIT_RPS", "20"), 20),
			Burst:             parseInt(getEnv("RATE_LIMIT_BURST", "40"), 40),
		},
	}

	if config.Database.Driver != "postgres" && config.Database.Driver != "sqlite" {
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", config.Database.Driver)
	}

	return config, nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(s string, fallback time.Duration) time.Duration {
	duration, err := time.ParseDuration(s)
	if err != nil {
		log.Printf("Invalid duration %s, using default %s", s, fallback)
		return fallback
	}
	return duration
}

func parseInt(s string, fallback int) int {
	v, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("Invalid integer %s, using default %d", s, fallback)
		return fallback
	}
	return v
}

func parseFloat(s string, fallback float64) float64 {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		log.Printf("Invalid number %s, using default %g", s, fallback)
		return fallback
	}
	return v
}

func parseBool(s string) bool {
	v, err := strconv.ParseBool(s)
	return err == nil && v
}

func parseSlice(s string) []string {
	if s == "" {
		return []string{}
	}
	var result []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			result = append(result, part)
		}
	}
	return result
}
