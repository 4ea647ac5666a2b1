package config

import (
	"time"

	"github.com/Sriramnat100/resumeoptimizer-sub000/pkg/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Server       ServerConfig
	Backend      BackendConfig
	Redis        RedisConfig
	JWT          JWTConfig
	AI           AIConfig
	Conversation ConversationConfig
	RateLimit    RateLimitConfig
	Log          LogConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// BackendConfig points at the REST backend that owns documents, labels and
// versions. Embedded serves an in-memory copy of that API from this process.
type BackendConfig struct {
	URL      string
	Token    string
	Timeout  time.Duration
	Embedded bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret         string
	AccessTokenTTL time.Duration
}

// AIConfig configures the generators behind the AI routes. A provider is
// enabled when its API key is set.
type AIConfig struct {
	GeminiAPIKey     string
	GeminiModel      string
	AnthropicAPIKey  string
	AnthropicModel   string
	AnthropicBaseURL string
	Temperature      float32
	TopP             float32
	TopK             float32
	MaxOutputTokens  int
	Timeout          time.Duration
	MaxAttempts      int
	HistoryLimit     int
}

type ConversationConfig struct {
	TTL       time.Duration
	MaxTurns  int
	KeyPrefix string
}

type RateLimitConfig struct {
	Enabled       bool
	UseRedis      bool
	RPS           float64
	Burst         int
	WindowSeconds int
}

type LogConfig struct {
	Level string
	JSON  bool
}

// Configured reports whether at least one generator has credentials.
func (a AIConfig) Configured() bool {
	return a.GeminiAPIKey != "" || a.AnthropicAPIKey != ""
}

// LoadConfig loads configuration from environment variables and .env file
func LoadConfig() (*Config, error) {
	_ = godotenv.Load(".env")

	viper.AutomaticEnv()

	viper.SetDefault("SERVER_PORT", "8002")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("SERVER_ENVIRONMENT", "development")
	viper.SetDefault("BACKEND_URL", "http://localhost:8001")
	viper.SetDefault("BACKEND_TIMEOUT_SECONDS", 30)
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("JWT_ACCESS_TOKEN_TTL", 60*24)
	viper.SetDefault("GEMINI_MODEL", "gemini-1.5-flash")
	viper.SetDefault("ANTHROPIC_MODEL", "claude-3-5-haiku-latest")
	viper.SetDefault("AI_TEMPERATURE", 0.7)
	viper.SetDefault("AI_TOP_P", 0.8)
	viper.SetDefault("AI_TOP_K", 40)
	viper.SetDefault("AI_MAX_OUTPUT_TOKENS", 3000)
	viper.SetDefault("AI_TIMEOUT_SECONDS", 60)
	viper.SetDefault("AI_MAX_ATTEMPTS", 2)
	viper.SetDefault("AI_HISTORY_LIMIT", 6)
	viper.SetDefault("CONVERSATION_TTL_MINUTES", 120)
	viper.SetDefault("CONVERSATION_MAX_TURNS", 20)
	viper.SetDefault("CONVERSATION_KEY_PREFIX", "conversation:")
	viper.SetDefault("RATE_LIMIT_ENABLED", true)
	viper.SetDefault("RATE_LIMIT_USE_REDIS", false)
	viper.SetDefault("RATE_LIMIT_RPS", 1.0)
	viper.SetDefault("RATE_LIMIT_BURST", 5)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	viper.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		Server: ServerConfig{
			Port:         viper.GetString("SERVER_PORT"),
			Host:         viper.GetString("SERVER_HOST"),
			Environment:  viper.GetString("SERVER_ENVIRONMENT"),
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 90 * time.Second,
		},
		Backend: BackendConfig{
			URL:      viper.GetString("BACKEND_URL"),
			Token:    viper.GetString("RESUME_TOKEN"),
			Timeout:  time.Duration(viper.GetInt("BACKEND_TIMEOUT_SECONDS")) * time.Second,
			Embedded: viper.GetBool("BACKEND_EMBEDDED"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:         viper.GetString("JWT_SECRET"),
			AccessTokenTTL: time.Duration(viper.GetInt("JWT_ACCESS_TOKEN_TTL")) * time.Minute,
		},
		AI: AIConfig{
			GeminiAPIKey:     viper.GetString("GEMINI_API_KEY"),
			GeminiModel:      viper.GetString("GEMINI_MODEL"),
			AnthropicAPIKey:  viper.GetString("ANTHROPIC_API_KEY"),
			AnthropicModel:   viper.GetString("ANTHROPIC_MODEL"),
			AnthropicBaseURL: viper.GetString("ANTHROPIC_BASE_URL"),
			Temperature:      float32(viper.GetFloat64("AI_TEMPERATURE")),
			TopP:             float32(viper.GetFloat64("AI_TOP_P")),
			TopK:             float32(viper.GetFloat64("AI_TOP_K")),
			MaxOutputTokens:  viper.GetInt("AI_MAX_OUTPUT_TOKENS"),
			Timeout:          time.Duration(viper.GetInt("AI_TIMEOUT_SECONDS")) * time.Second,
			MaxAttempts:      viper.GetInt("AI_MAX_ATTEMPTS"),
			HistoryLimit:     viper.GetInt("AI_HISTORY_LIMIT"),
		},
		Conversation: ConversationConfig{
			TTL:       time.Duration(viper.GetInt("CONVERSATION_TTL_MINUTES")) * time.Minute,
			MaxTurns:  viper.GetInt("CONVERSATION_MAX_TURNS"),
			KeyPrefix: viper.GetString("CONVERSATION_KEY_PREFIX"),
		},
		RateLimit: RateLimitConfig{
			Enabled:       viper.GetBool("RATE_LIMIT_ENABLED"),
			UseRedis:      viper.GetBool("RATE_LIMIT_USE_REDIS"),
			RPS:           viper.GetFloat64("RATE_LIMIT_RPS"),
			Burst:         viper.GetInt("RATE_LIMIT_BURST"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
			JSON:  viper.GetBool("LOG_JSON"),
		},
	}

	// Basic validation
	if cfg.JWT.Secret == "" {
		logger.Warn("JWT_SECRET is not set; AI routes will reject every bearer token")
	}
	if !cfg.AI.Configured() {
		logger.Warn("no GEMINI_API_KEY or ANTHROPIC_API_KEY set; AI routes answer with canned advice")
	}

	return cfg, nil
}
