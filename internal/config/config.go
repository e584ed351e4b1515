package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	App        AppConfig
	Database   DatabaseConfig
	Keys       APIKeys
	Ai         AIConfig
	Extraction ExtractionConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	Environment        string
	LogFilePath        string
	ExtractionLogPath  string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini string
	EmbedTopic   string // Chunk embedding topic
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "ollama" or "gemini"
	LLMModel          string // e.g. "llama3", "qwen2.5"
	EmbeddingCache    bool   // cache embeddings in Redis
}

type ExtractionConfig struct {
	MaxRetries     int
	RetryBackoffMs int
	Concurrency    int
	AvgItemCost    int
	// ModelBudgets overrides the built-in model table, formatted as
	// "model=chars,model=chars".
	ModelBudgets map[string]int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			ExtractionLogPath:  getEnv("EXTRACTION_LOG_PATH", "logs/extraction.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			EmbedTopic:   getEnv("EMBED_SESSION_CHUNKS_TOPIC_NAME", "EMBED_SESSION_CHUNKS"),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
			EmbeddingCache:    getEnvAsBool("EMBEDDING_CACHE", true),
		},
		Extraction: ExtractionConfig{
			MaxRetries:     getEnvAsInt("EXTRACTION_MAX_RETRIES", 2),
			RetryBackoffMs: getEnvAsInt("EXTRACTION_RETRY_BACKOFF_MS", 2000),
			Concurrency:    getEnvAsInt("EXTRACTION_CONCURRENCY", 3),
			AvgItemCost:    getEnvAsInt("EXTRACTION_AVG_ITEM_COST", 4000),
			ModelBudgets:   parseModelBudgets(getEnv("MODEL_BUDGETS", "")),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

// parseModelBudgets reads "model=chars,model=chars" pairs. Malformed pairs
// are skipped so one typo doesn't wipe the whole table.
func parseModelBudgets(raw string) map[string]int {
	budgets := make(map[string]int)
	for _, pair := range strings.Split(raw, ",") {
		parts := strings.SplitN(strings.TrimSpace(pair), "=", 2)
		if len(parts) != 2 {
			continue
		}
		chars, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err != nil || chars <= 0 {
			continue
		}
		budgets[strings.TrimSpace(parts[0])] = chars
	}
	return budgets
}
