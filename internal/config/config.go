package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server ServerConfig
	DB     DBConfig
	Log    LogConfig
	AI     AIConfig
	S3     S3Config
	CORS   CORSConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// DBConfig holds PostgreSQL connection settings.
type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
	SSLMode  string `mapstructure:"sslmode"`
	MaxOpen  int    `mapstructure:"max_open"`
	MaxIdle  int    `mapstructure:"max_idle"`
}

// DSN returns the PostgreSQL connection string.
func (d *DBConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode,
	)
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// AIProviderConfig holds settings for a single external AI call
// (extraction, transcription, or classification).
type AIProviderConfig struct {
	APIKey      string `mapstructure:"api_key"`
	Model       string `mapstructure:"model"`
	TimeoutSecs int    `mapstructure:"timeout_secs"`
}

// AIConfig holds external AI service settings. The flat APIKey applies to
// every provider whose own key is unset.
type AIConfig struct {
	APIKey      string           `mapstructure:"api_key"`
	Extractor   AIProviderConfig `mapstructure:"extractor"`
	Transcriber AIProviderConfig `mapstructure:"transcriber"`
	Classifier  AIProviderConfig `mapstructure:"classifier"`
}

// ExtractorConfig returns the extractor provider config with the shared key applied.
func (a *AIConfig) ExtractorConfig() *AIProviderConfig { return a.resolve(a.Extractor) }

// TranscriberConfig returns the transcriber provider config with the shared key applied.
func (a *AIConfig) TranscriberConfig() *AIProviderConfig { return a.resolve(a.Transcriber) }

// ClassifierConfig returns the classifier provider config with the shared key applied.
func (a *AIConfig) ClassifierConfig() *AIProviderConfig { return a.resolve(a.Classifier) }

func (a *AIConfig) resolve(p AIProviderConfig) *AIProviderConfig {
	if p.APIKey == "" {
		p.APIKey = a.APIKey
	}
	return &p
}

// S3Config holds object storage settings for archiving raw ingestion media.
// An empty Bucket disables archiving.
type S3Config struct {
	Region    string `mapstructure:"region"`
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Load reads configuration from environment variables with the KOSH_ prefix.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("KOSH")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "30s")
	v.SetDefault("server.environment", "development")

	// DB defaults
	v.SetDefault("db.host", "localhost")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.user", "kosh")
	v.SetDefault("db.password", "kosh_secret")
	v.SetDefault("db.name", "kosh_db")
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.max_open", 25)
	v.SetDefault("db.max_idle", 10)

	// Log defaults
	v.SetDefault("log.level", "debug")
	v.SetDefault("log.format", "console")

	// AI defaults
	v.SetDefault("ai.api_key", "")
	v.SetDefault("ai.extractor.api_key", "")
	v.SetDefault("ai.extractor.model", "gpt-4o-mini")
	v.SetDefault("ai.extractor.timeout_secs", 60)
	v.SetDefault("ai.transcriber.api_key", "")
	v.SetDefault("ai.transcriber.model", "whisper-1")
	v.SetDefault("ai.transcriber.timeout_secs", 60)
	v.SetDefault("ai.classifier.api_key", "")
	v.SetDefault("ai.classifier.model", "gpt-4o-mini")
	v.SetDefault("ai.classifier.timeout_secs", 30)

	// S3 defaults (archiving disabled unless a bucket is set)
	v.SetDefault("s3.region", "ap-south-1")
	v.SetDefault("s3.bucket", "")
	v.SetDefault("s3.endpoint", "")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000")

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":                 "KOSH_SERVER_PORT",
		"server.read_timeout":         "KOSH_SERVER_READ_TIMEOUT",
		"server.write_timeout":        "KOSH_SERVER_WRITE_TIMEOUT",
		"server.environment":          "KOSH_SERVER_ENVIRONMENT",
		"db.host":                     "KOSH_DB_HOST",
		"db.port":                     "KOSH_DB_PORT",
		"db.user":                     "KOSH_DB_USER",
		"db.password":                 "KOSH_DB_PASSWORD",
		"db.name":                     "KOSH_DB_NAME",
		"db.sslmode":                  "KOSH_DB_SSLMODE",
		"db.max_open":                 "KOSH_DB_MAX_OPEN",
		"db.max_idle":                 "KOSH_DB_MAX_IDLE",
		"log.level":                   "KOSH_LOG_LEVEL",
		"log.format":                  "KOSH_LOG_FORMAT",
		"ai.api_key":                  "KOSH_AI_API_KEY",
		"ai.extractor.api_key":        "KOSH_AI_EXTRACTOR_API_KEY",
		"ai.extractor.model":          "KOSH_AI_EXTRACTOR_MODEL",
		"ai.extractor.timeout_secs":   "KOSH_AI_EXTRACTOR_TIMEOUT_SECS",
		"ai.transcriber.api_key":      "KOSH_AI_TRANSCRIBER_API_KEY",
		"ai.transcriber.model":        "KOSH_AI_TRANSCRIBER_MODEL",
		"ai.transcriber.timeout_secs": "KOSH_AI_TRANSCRIBER_TIMEOUT_SECS",
		"ai.classifier.api_key":       "KOSH_AI_CLASSIFIER_API_KEY",
		"ai.classifier.model":         "KOSH_AI_CLASSIFIER_MODEL",
		"ai.classifier.timeout_secs":  "KOSH_AI_CLASSIFIER_TIMEOUT_SECS",
		"s3.region":                   "KOSH_S3_REGION",
		"s3.bucket":                   "KOSH_S3_BUCKET",
		"s3.endpoint":                 "KOSH_S3_ENDPOINT",
		"s3.access_key":               "KOSH_S3_ACCESS_KEY",
		"s3.secret_key":               "KOSH_S3_SECRET_KEY",
		"cors.allowed_origins":        "KOSH_CORS_ALLOWED_ORIGINS",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if KOSH_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("KOSH_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.DB = DBConfig{
		Host:     v.GetString("db.host"),
		Port:     v.GetInt("db.port"),
		User:     v.GetString("db.user"),
		Password: v.GetString("db.password"),
		Name:     v.GetString("db.name"),
		SSLMode:  v.GetString("db.sslmode"),
		MaxOpen:  v.GetInt("db.max_open"),
		MaxIdle:  v.GetInt("db.max_idle"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.AI = AIConfig{
		APIKey: v.GetString("ai.api_key"),
		Extractor: AIProviderConfig{
			APIKey:      v.GetString("ai.extractor.api_key"),
			Model:       v.GetString("ai.extractor.model"),
			TimeoutSecs: v.GetInt("ai.extractor.timeout_secs"),
		},
		Transcriber: AIProviderConfig{
			APIKey:      v.GetString("ai.transcriber.api_key"),
			Model:       v.GetString("ai.transcriber.model"),
			TimeoutSecs: v.GetInt("ai.transcriber.timeout_secs"),
		},
		Classifier: AIProviderConfig{
			APIKey:      v.GetString("ai.classifier.api_key"),
			Model:       v.GetString("ai.classifier.model"),
			TimeoutSecs: v.GetInt("ai.classifier.timeout_secs"),
		},
	}
	cfg.S3 = S3Config{
		Region:    v.GetString("s3.region"),
		Bucket:    v.GetString("s3.bucket"),
		Endpoint:  v.GetString("s3.endpoint"),
		AccessKey: v.GetString("s3.access_key"),
		SecretKey: v.GetString("s3.secret_key"),
	}

	var corsOrigins []string
	for _, o := range strings.Split(v.GetString("cors.allowed_origins"), ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			corsOrigins = append(corsOrigins, o)
		}
	}
	cfg.CORS = CORSConfig{AllowedOrigins: corsOrigins}

	return cfg, nil
}
