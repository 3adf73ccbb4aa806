package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Mode string

const (
	ModeLocal Mode = "local"
	ModeGCP   Mode = "gcp"
)

type Config struct {
	Mode Mode

	Port     string
	LogLevel string

	// LLM (Vertex AI / Gemini)
	GCPProjectID string
	GCPLocation  string
	ModelName    string
	UseMockLLM   bool // true = use mock even on GCP

	// Search (SerpAPI)
	SerpAPIKey    string
	SearchEngine  string
	SearchBaseURL string
	SearchRPS     float64 // sustained requests per second against the provider
	SearchBurst   int
	UseMockSearch bool

	// Per-call timeout for the three external calls (classify, search, generate).
	CallTimeout time.Duration

	StorageBackend string // "memory" o "firestore"
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBoolEnv(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	if v == "1" || v == "true" || v == "TRUE" {
		return true
	}
	return false
}

func getFloatEnv(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getIntEnv(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getDurationEnv(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// Load reads all env vars and builds the config
func Load() *Config {
	modeStr := getEnv("AYUN_MODE", "local")
	var mode Mode
	switch modeStr {
	case "gcp":
		mode = ModeGCP
	default:
		mode = ModeLocal
	}

	cfg := &Config{
		Mode: mode,

		Port:     getEnv("AYUN_PORT", "8080"),
		LogLevel: getEnv("AYUN_LOG_LEVEL", "info"),

		GCPProjectID: getEnv("AYUN_GCP_PROJECT", ""),
		GCPLocation:  getEnv("AYUN_GCP_LOCATION", "us-central1"),
		ModelName:    getEnv("AYUN_MODEL_NAME", "gemini-2.0-flash"),
		UseMockLLM:   getBoolEnv("AYUN_USE_MOCK_LLM", mode == ModeLocal),

		SerpAPIKey:    getEnv("SERP_API_KEY", ""),
		SearchEngine:  getEnv("AYUN_SEARCH_ENGINE", "google"),
		SearchBaseURL: getEnv("AYUN_SEARCH_BASE_URL", "https://serpapi.com/search.json"),
		SearchRPS:     getFloatEnv("AYUN_SEARCH_RPS", 2.0),
		SearchBurst:   getIntEnv("AYUN_SEARCH_BURST", 5),
		UseMockSearch: getBoolEnv("AYUN_USE_MOCK_SEARCH", mode == ModeLocal),

		CallTimeout: getDurationEnv("AYUN_CALL_TIMEOUT", 30*time.Second),

		StorageBackend: getEnv("AYUN_STORAGE_BACKEND", "memory"),
	}

	// Minimal validation in GCP mode
	if cfg.Mode == ModeGCP && cfg.GCPProjectID == "" {
		log.Fatal("AYUN_GCP_PROJECT must be set in gcp mode")
	}
	if !cfg.UseMockSearch && cfg.SerpAPIKey == "" {
		log.Fatal("SERP_API_KEY must be set when the real search provider is enabled")
	}

	return cfg
}
