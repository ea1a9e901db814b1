package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port        string        `env:"PORT,         default=3000"`
	Env         string        `env:"ENV,          default=development"`
	LogLevel    string        `env:"LOG_LEVEL,    default=info"`
	JWTSecret   string        `env:"JWT_SECRET"`
	SessionTTL  time.Duration `env:"SESSION_TTL,  default=168h"`
	CORSOrigins []string      `env:"CORS_ORIGINS, default=http://localhost:5173"`

	AuditWorkers int `env:"AUDIT_WORKERS, default=4"`

	Mongo    MongoConfig
	Redis    RedisConfig
	Firebase FirebaseConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=BloodDonation"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type FirebaseConfig struct {
	ProjectID  string `env:"FIREBASE_PROJECT_ID"`
	ServiceKey string `env:"FB_SERVICE_KEY"`
}

// IsDevelopment reports whether the service runs in a local environment.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// Load reads an optional .env file and then the environment using go-envconfig.
func Load() *Config {
	_ = godotenv.Load()

	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom processes configuration from lookuper and validates it.
func LoadFrom(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if !c.IsDevelopment() && c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required outside development")
	}
	if c.AuditWorkers <= 0 {
		return fmt.Errorf("AUDIT_WORKERS must be positive, got %d", c.AuditWorkers)
	}
	return nil
}
