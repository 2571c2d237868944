package config

import (
	"os"
	"strconv"
)

type Config struct {
	Addr       string
	CORSOrigin string
	// Storage backends. Redis wins when both are set; with neither the
	// server falls back to the in-memory store (data lost on restart).
	RedisURL    string
	DatabaseURL string
	// Gemini story generation - disabled when no API key is present
	GeminiAPIKey string
	GeminiModel  string
	// Meilisearch - optional, search falls back to a collection scan
	MeiliURL       string
	MeiliMasterKey string
	// Story revision history (go-git repositories under this directory)
	HistoryDir string
	// MinIO media storage - optional, uploads disabled if not configured
	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool
	MediaBaseURL   string
}

func Load() Config {
	return Config{
		Addr:           getenv("API_ADDR", ":8686"),
		CORSOrigin:     getenv("HIKAYA_CORS_ORIGIN", "*"),
		RedisURL:       getenv("REDIS_URL", ""),
		DatabaseURL:    getenv("DATABASE_URL", ""),
		GeminiAPIKey:   getenv("GEMINI_API_KEY", ""),
		GeminiModel:    getenv("HIKAYA_GEMINI_MODEL", "gemini-2.5-flash"),
		MeiliURL:       getenv("MEILI_URL", ""),
		MeiliMasterKey: getenv("MEILI_MASTER_KEY", ""),
		HistoryDir:     getenv("HIKAYA_HISTORY_DIR", "./data/revisions"),
		MinioEndpoint:  getenv("MINIO_ENDPOINT", ""),
		MinioAccessKey: getenv("MINIO_ACCESS_KEY", ""),
		MinioSecretKey: getenv("MINIO_SECRET_KEY", ""),
		MinioBucket:    getenv("MINIO_BUCKET", "hikaya-media"),
		MinioUseSSL:    getenvBool("MINIO_USE_SSL", false),
		MediaBaseURL:   getenv("HIKAYA_MEDIA_BASE_URL", ""),
	}
}

func getenv(key, fallback string) string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return value
}

func getenvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}
