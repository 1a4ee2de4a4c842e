package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Keys     APIKeys
	Ai       AIConfig
	Chat     ChatConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
	JwtSecret          string
	OtelEnabled        bool
}

type DatabaseConfig struct {
	Connection string
}

type APIKeys struct {
	GoogleGemini string
	OpenAI       string
	HuggingFace  string
}

type AIConfig struct {
	EmbeddingProvider string // "gemini" or "ollama"
	OllamaBaseURL     string
	OllamaModel       string
	LLMProvider       string // "ollama", "openai", "huggingface"
	LLMModel          string
	LLMBaseURL        string
	LLMMaxTokens      int // 0 leaves the answer length to the provider
}

type ChatConfig struct {
	HistoryBackend      string // "memory", "redis" or "postgres"
	HistoryTTL          time.Duration
	HistoryMaxTurns     int // 0 keeps every turn in the prompt
	RetrieverTopK       int
	RetrieverMinScore   float64 // cosine similarity floor, 0 keeps everything
	RephraseTemperature float64
	StageTimeout        time.Duration
	PromptCacheTTL      time.Duration
	IndexTopicName      string
	ChunkSize           int
	ChunkOverlap        int
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", ""),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
			JwtSecret:          getEnv("JWT_SECRET", ""),
			OtelEnabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
			OpenAI:       getEnv("OPENAI_API_KEY", ""),
			HuggingFace:  getEnv("HUGGINGFACE_API_KEY", ""),
		},
		Ai: AIConfig{
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			LLMProvider:       getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:          getEnv("LLM_MODEL", "llama3"),
			LLMBaseURL:        getEnv("LLM_BASE_URL", ""),
			LLMMaxTokens:      getEnvAsInt("LLM_MAX_TOKENS", 0),
		},
		Chat: ChatConfig{
			HistoryBackend:      getEnv("HISTORY_BACKEND", "memory"),
			HistoryTTL:          getEnvAsDuration("HISTORY_TTL", 0),
			HistoryMaxTurns:     getEnvAsInt("HISTORY_MAX_TURNS", 0),
			RetrieverTopK:       getEnvAsInt("RETRIEVER_TOP_K", 4),
			RetrieverMinScore:   getEnvAsFloat("RETRIEVER_MIN_SCORE", 0),
			RephraseTemperature: getEnvAsFloat("REPHRASE_TEMPERATURE", 0.1),
			StageTimeout:        getEnvAsDuration("PIPELINE_STAGE_TIMEOUT", 60*time.Second),
			PromptCacheTTL:      getEnvAsDuration("PROMPT_CACHE_TTL", 5*time.Minute),
			IndexTopicName:      getEnv("INDEX_TOPIC_NAME", "INDEX_DOCUMENT"),
			ChunkSize:           getEnvAsInt("CHUNK_SIZE", 1500),
			ChunkOverlap:        getEnvAsInt("CHUNK_OVERLAP", 150),
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
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

// getEnvAsDuration accepts "90s" style values and bare seconds.
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	if secs, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
