package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// TokenTTL is the validity window of issued session tokens.
	TokenTTL time.Duration `env:"TOKEN_TTL, default=72h"`

	// UploadDir is where passport copies and extraction temp files land.
	UploadDir string `env:"UPLOAD_DIR, default=uploads"`

	Mongo  MongoConfig
	Redis  RedisConfig
	Gemini GeminiConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=hiru_resorts"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// GeminiConfig holds the external vision-model settings. APIKey may be empty;
// the extraction adapter then refuses calls with a configuration error.
type GeminiConfig struct {
	APIKey  string        `env:"GEMINI_API_KEY"`
	Model   string        `env:"GEMINI_MODEL,   default=gemini-1.5-flash"`
	Timeout time.Duration `env:"GEMINI_TIMEOUT, default=30s"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
