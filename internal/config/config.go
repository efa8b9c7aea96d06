package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server ServerConfig
	S3     S3Config
	OpenAI OpenAIConfig
	App    AppConfig
}

type ServerConfig struct {
	Host string
	Port string
}

type S3Config struct {
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	Region          string
	// PublicBaseURL is prepended to object keys to form fetchable URLs.
	// When empty, path-style endpoint/bucket addressing is assumed.
	PublicBaseURL string
}

type OpenAIConfig struct {
	APIKey      string
	BaseURL     string
	Model       string
	MaxTokens   int
	Temperature float64
}

type AppConfig struct {
	AllowedOrigin string
	MaxFiles      int
	MaxFileSize   int64
	StaticDir     string
}

func Load() (*Config, error) {
	viper.SetDefault("SERVER_HOST", "localhost")
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("S3_ENDPOINT", "http://localhost:9000")
	viper.SetDefault("S3_ACCESS_KEY_ID", "minioadmin")
	viper.SetDefault("S3_SECRET_ACCESS_KEY", "minioadmin")
	viper.SetDefault("S3_BUCKET_NAME", "designbuddy-uploads")
	viper.SetDefault("S3_REGION", "us-east-1")
	viper.SetDefault("S3_PUBLIC_BASE_URL", "")
	viper.SetDefault("OPENAI_API_KEY", "")
	viper.SetDefault("OPENAI_BASE_URL", "https://api.openai.com/v1")
	viper.SetDefault("OPENAI_MODEL", "gpt-4o-mini")
	viper.SetDefault("OPENAI_MAX_TOKENS", 3000)
	viper.SetDefault("OPENAI_TEMPERATURE", 0.7)
	viper.SetDefault("CORS_ALLOWED_ORIGIN", "http://localhost:3000")
	viper.SetDefault("APP_MAX_FILES", 3)
	viper.SetDefault("APP_MAX_UPLOAD_SIZE", 10*1024*1024) // 10 MiB
	viper.SetDefault("APP_STATIC_DIR", "./web/static")

	viper.AutomaticEnv()

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("SERVER_HOST"),
			Port: viper.GetString("SERVER_PORT"),
		},
		S3: S3Config{
			Endpoint:        viper.GetString("S3_ENDPOINT"),
			AccessKeyID:     viper.GetString("S3_ACCESS_KEY_ID"),
			SecretAccessKey: viper.GetString("S3_SECRET_ACCESS_KEY"),
			BucketName:      viper.GetString("S3_BUCKET_NAME"),
			Region:          viper.GetString("S3_REGION"),
			PublicBaseURL:   viper.GetString("S3_PUBLIC_BASE_URL"),
		},
		OpenAI: OpenAIConfig{
			APIKey:      viper.GetString("OPENAI_API_KEY"),
			BaseURL:     viper.GetString("OPENAI_BASE_URL"),
			Model:       viper.GetString("OPENAI_MODEL"),
			MaxTokens:   viper.GetInt("OPENAI_MAX_TOKENS"),
			Temperature: viper.GetFloat64("OPENAI_TEMPERATURE"),
		},
		App: AppConfig{
			AllowedOrigin: viper.GetString("CORS_ALLOWED_ORIGIN"),
			MaxFiles:      viper.GetInt("APP_MAX_FILES"),
			MaxFileSize:   viper.GetInt64("APP_MAX_UPLOAD_SIZE"),
			StaticDir:     viper.GetString("APP_STATIC_DIR"),
		},
	}

	if cfg.S3.PublicBaseURL == "" {
		cfg.S3.PublicBaseURL = strings.TrimRight(cfg.S3.Endpoint, "/") + "/" + cfg.S3.BucketName
	}

	return cfg, nil
}
