package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Ai       AIConfig
	Corpus   CorpusConfig
	Tools    ToolsConfig
	Session  SessionConfig
	Tracing  TracingConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	JWTSecret          string
}

type DatabaseConfig struct {
	// empty keeps the todo list in memory
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type AIConfig struct {
	LLMProvider    string // "ollama" or "huggingface"
	LLMModel       string
	OllamaBaseURL  string
	HuggingFaceURL string
	HuggingFaceKey string
	Timeout        time.Duration
}

type CorpusConfig struct {
	DocsDir        string
	Extensions     []string
	TrustThreshold float64
	TitleWeight    float64
	KeywordWeight  float64
	MaxAnswerChars int
	Watch          bool
	WatchDebounce  time.Duration
}

type ToolsConfig struct {
	HandlerTimeout     time.Duration
	WebMaxResults      int
	WebRegion          string
	WeatherDefaultCity string
	UserAgent          string
}

type SessionConfig struct {
	Store        string // "memory" or "redis"
	RedisURL     string
	TTL          time.Duration
	HistoryLimit int
}

type TracingConfig struct {
	Enabled      bool
	OTLPEndpoint string
	ServiceName  string
}

func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/ai-tutor.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			JWTSecret:          getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Assistant académique"),
		},
		Ai: AIConfig{
			LLMProvider:    getEnv("LLM_PROVIDER", "ollama"),
			LLMModel:       getEnv("LLM_MODEL", "llama3.2:3b"),
			OllamaBaseURL:  getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			HuggingFaceURL: getEnv("HUGGINGFACE_BASE_URL", ""),
			HuggingFaceKey: getEnv("HUGGINGFACE_API_KEY", ""),
			Timeout:        getEnvAsDuration("LLM_TIMEOUT", 60*time.Second),
		},
		Corpus: CorpusConfig{
			DocsDir:        getEnv("DOCS_DIR", "docs"),
			Extensions:     getEnvAsList("DOCS_EXTENSIONS", []string{".txt", ".md", ".markdown"}),
			TrustThreshold: getEnvAsFloat("RAG_TRUST_THRESHOLD", 0.45),
			TitleWeight:    getEnvAsFloat("RAG_TITLE_WEIGHT", 0.4),
			KeywordWeight:  getEnvAsFloat("RAG_KEYWORD_WEIGHT", 0.6),
			MaxAnswerChars: getEnvAsInt("RAG_MAX_ANSWER_CHARS", 2200),
			Watch:          getEnvAsBool("DOCS_WATCH", true),
			WatchDebounce:  getEnvAsDuration("DOCS_WATCH_DEBOUNCE", 500*time.Millisecond),
		},
		Tools: ToolsConfig{
			HandlerTimeout:     getEnvAsDuration("TOOL_TIMEOUT", 20*time.Second),
			WebMaxResults:      getEnvAsInt("WEB_MAX_RESULTS", 5),
			WebRegion:          getEnv("WEB_REGION", "fr-fr"),
			WeatherDefaultCity: getEnv("WEATHER_DEFAULT_CITY", "Paris"),
			UserAgent:          getEnv("TOOLS_USER_AGENT", "ai-tutor/1.0 (education use)"),
		},
		Session: SessionConfig{
			Store:        getEnv("SESSION_STORE", "memory"),
			RedisURL:     getEnv("REDIS_URL", "redis://localhost:6379"),
			TTL:          getEnvAsDuration("SESSION_TTL", 24*time.Hour),
			HistoryLimit: getEnvAsInt("HISTORY_LIMIT", 30),
		},
		Tracing: TracingConfig{
			Enabled:      getEnvAsBool("OTEL_ENABLED", false),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4318"),
			ServiceName:  getEnv("OTEL_SERVICE_NAME", "ai-tutor-be"),
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
	if value, err := strconv.ParseFloat(getEnv(key, ""), 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	if value, err := strconv.ParseBool(getEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

// getEnvAsDuration accepts Go durations ("1m30s") or plain seconds
func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	if d, err := time.ParseDuration(strValue); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(strValue); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func getEnvAsList(key string, fallback []string) []string {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(strValue, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
