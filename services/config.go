package services

import (
	"log/slog"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Environment string
	Server      ServerConfig
	App         AppConfig
	CORS        CORSConfig
	Database    DatabaseConfig
	AI          AIConfig
	JWT         JWTConfig
}

type ServerConfig struct {
	Port string
}

type AppConfig struct {
	HomeURL string
}

type CORSConfig struct {
	AllowedOrigins string
}

type DatabaseConfig struct {
	URL          string
	Seed         bool
	LogLevel     string
	MaxIdleConns int
	MaxOpenConns int
}

type AIConfig struct {
	Provider       string
	Model          string
	Timeout        time.Duration
	FeedbackPolicy string
	OpenAIKey      string
	OpenAIBaseURL  string
	GeminiAPIKey   string
	GeminiBaseURL  string
}

type JWTConfig struct {
	Secret string
}

const defaultHomeURL = "https://job-interview-project-v2.vercel.app/"

// LoadConfig loads configuration from environment variables and config files
func LoadConfig() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("environment", "development")
	viper.SetDefault("server.port", "8080")
	viper.SetDefault("app.home_url", defaultHomeURL)
	viper.SetDefault("cors.allowed_origins", "")
	viper.SetDefault("database.url", "")
	viper.SetDefault("database.seed", "false")
	viper.SetDefault("database.log_level", "silent")
	viper.SetDefault("database.max_idle_conns", "10")
	viper.SetDefault("database.max_open_conns", "100")
	viper.SetDefault("ai.provider", ProviderOpenAI)
	viper.SetDefault("ai.model", "")
	viper.SetDefault("ai.timeout", "60s")
	viper.SetDefault("ai.feedback_policy", string(BatchAllOrNothing))
	viper.SetDefault("openai.api_key", "")
	viper.SetDefault("openai.base_url", defaultOpenAIBaseURL)
	viper.SetDefault("gemini.api_key", "")
	viper.SetDefault("gemini.base_url", "")
	viper.SetDefault("jwt.secret", "")

	// Map environment variables to config keys
	viper.BindEnv("environment", "ENVIRONMENT")
	viper.BindEnv("server.port", "SERVER_PORT")
	viper.BindEnv("app.home_url", "APP_HOME_URL")
	viper.BindEnv("cors.allowed_origins", "CORS_ALLOWED_ORIGINS")
	viper.BindEnv("database.url", "DATABASE_URL")
	viper.BindEnv("database.seed", "DATABASE_SEED")
	viper.BindEnv("database.log_level", "DATABASE_LOG_LEVEL")
	viper.BindEnv("database.max_idle_conns", "DATABASE_MAX_IDLE_CONNS")
	viper.BindEnv("database.max_open_conns", "DATABASE_MAX_OPEN_CONNS")
	viper.BindEnv("ai.provider", "AI_PROVIDER")
	viper.BindEnv("ai.model", "AI_MODEL")
	viper.BindEnv("ai.timeout", "AI_TIMEOUT")
	viper.BindEnv("ai.feedback_policy", "AI_FEEDBACK_POLICY")
	viper.BindEnv("openai.api_key", "OPENAI_API_KEY")
	viper.BindEnv("openai.base_url", "OPENAI_BASE_URL")
	viper.BindEnv("gemini.api_key", "GEMINI_API_KEY")
	viper.BindEnv("gemini.base_url", "GEMINI_BASE_URL")
	viper.BindEnv("jwt.secret", "JWT_SECRET")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			slog.Warn("Config file not found, using defaults and environment variables")
		} else {
			slog.Error("Error reading config file", "error", err)
		}
	}

	return &Config{
		Environment: viper.GetString("environment"),
		Server: ServerConfig{
			Port: viper.GetString("server.port"),
		},
		App: AppConfig{
			HomeURL: viper.GetString("app.home_url"),
		},
		CORS: CORSConfig{
			AllowedOrigins: viper.GetString("cors.allowed_origins"),
		},
		Database: DatabaseConfig{
			URL:          viper.GetString("database.url"),
			Seed:         viper.GetBool("database.seed"),
			LogLevel:     viper.GetString("database.log_level"),
			MaxIdleConns: viper.GetInt("database.max_idle_conns"),
			MaxOpenConns: viper.GetInt("database.max_open_conns"),
		},
		AI: AIConfig{
			Provider:       viper.GetString("ai.provider"),
			Model:          viper.GetString("ai.model"),
			Timeout:        viper.GetDuration("ai.timeout"),
			FeedbackPolicy: viper.GetString("ai.feedback_policy"),
			OpenAIKey:      viper.GetString("openai.api_key"),
			OpenAIBaseURL:  viper.GetString("openai.base_url"),
			GeminiAPIKey:   viper.GetString("gemini.api_key"),
			GeminiBaseURL:  viper.GetString("gemini.base_url"),
		},
		JWT: JWTConfig{
			Secret: viper.GetString("jwt.secret"),
		},
	}
}

// IsProduction reports whether cookies should be marked Secure
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
