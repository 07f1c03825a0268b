// Package config loads service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server
	Environment   string
	ServerAddress string

	// AWS
	AWSRegion     string
	DynamoDBTable string
	EventBusName  string

	// Auth
	JWTSigningMethod string
	JWTSecret        string
	JWTPublicKey     string
	JWTIssuer        string

	// Rate limiting (requests per minute)
	IPRateLimit   int
	UserRateLimit int

	// Gemini
	GeminiAPIKey     string
	GeminiModel      string
	GeminiEmbedModel string
	GeminiTimeout    time.Duration
	GeminiMaxRetries int

	// Pinecone
	PineconeAPIKey    string
	PineconeIndexName string
	PineconeIndexHost string
	PineconeNSPrefix  string

	// Observability
	TracingEnabled bool

	// CORS
	AllowedOrigins []string
}

// Load reads configuration from environment variables
func Load() *Config {
	return &Config{
		Environment:   getEnv("ENVIRONMENT", "development"),
		ServerAddress: getEnv("SERVER_ADDRESS", ":8080"),

		AWSRegion:     getEnv("AWS_REGION", "us-east-1"),
		DynamoDBTable: getEnv("TABLE_NAME", "ideagraph"),
		EventBusName:  getEnv("EVENT_BUS_NAME", "ideagraph-events"),

		JWTSigningMethod: getEnv("JWT_SIGNING_METHOD", "HS256"),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		JWTPublicKey:     getEnv("JWT_PUBLIC_KEY", ""),
		JWTIssuer:        getEnv("JWT_ISSUER", "ideagraph"),

		IPRateLimit:   getEnvInt("IP_RATE_LIMIT", 120),
		UserRateLimit: getEnvInt("USER_RATE_LIMIT", 60),

		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModel:      getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		GeminiEmbedModel: getEnv("GEMINI_EMBED_MODEL", "text-embedding-004"),
		GeminiTimeout:    time.Duration(getEnvInt("GEMINI_TIMEOUT_SECONDS", 120)) * time.Second,
		GeminiMaxRetries: getEnvInt("GEMINI_MAX_RETRIES", 3),

		PineconeAPIKey:    getEnv("PINECONE_API_KEY", ""),
		PineconeIndexName: getEnv("PINECONE_INDEX_NAME", ""),
		PineconeIndexHost: getEnv("PINECONE_INDEX_HOST", ""),
		PineconeNSPrefix:  getEnv("PINECONE_NAMESPACE_PREFIX", "ig"),

		TracingEnabled: getEnvBool("TRACING_ENABLED", false),

		AllowedOrigins: []string{getEnv("FRONTEND_URL", "http://localhost:5173")},
	}
}

// Validate checks that required configuration is present
func (c *Config) Validate() error {
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	if c.PineconeAPIKey == "" {
		return fmt.Errorf("PINECONE_API_KEY is required")
	}
	if c.PineconeIndexName == "" {
		return fmt.Errorf("PINECONE_INDEX_NAME is required")
	}
	if c.IsProduction() {
		if c.JWTSigningMethod == "HS256" && c.JWTSecret == "" {
			return fmt.Errorf("JWT_SECRET is required in production")
		}
		if c.JWTSigningMethod == "RS256" && c.JWTPublicKey == "" {
			return fmt.Errorf("JWT_PUBLIC_KEY is required in production")
		}
	}
	return nil
}

// IsDevelopment returns true when running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true when running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
