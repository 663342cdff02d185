package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	env "github.com/Skotchmaster/shopcart/pkg/config"
)

type Config struct {
	ServiceName string `yaml:"service_name"`
	LogLevel    string `yaml:"log_level"`

	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Kafka    KafkaConfig    `yaml:"kafka"`
	Redis    RedisConfig    `yaml:"redis"`
	Tracing  TracingConfig  `yaml:"tracing"`
	Catalog  CatalogConfig  `yaml:"catalog"`
	Security SecurityConfig `yaml:"security"`
}

type ServerConfig struct {
	Port             int      `yaml:"port"`
	CORSAllowOrigins []string `yaml:"cors_allow_origins"`
}

type DatabaseConfig struct {
	URL    string `yaml:"url"`
	Driver string `yaml:"driver"`
}

type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
}

type RedisConfig struct {
	URL string        `yaml:"url"`
	TTL time.Duration `yaml:"ttl"`
}

type TracingConfig struct {
	Enabled bool `yaml:"enabled"`
}

type CatalogConfig struct {
	// LegacyErrors answers catalog failures with 200 and a message body,
	// which older clients still expect.
	LegacyErrors bool `yaml:"legacy_errors"`
}

type SecurityConfig struct {
	PasswordIterations int `yaml:"password_iterations"`
}

func Default() *Config {
	return &Config{
		ServiceName: "shopcart",
		LogLevel:    "info",
		Server: ServerConfig{
			Port:             8080,
			CORSAllowOrigins: []string{"*"},
		},
		Database: DatabaseConfig{Driver: "pgx"},
		Redis:    RedisConfig{TTL: 5 * time.Minute},
	}
}

// Load builds the configuration from defaults, an optional YAML file named by
// CONFIG_FILE and finally the process environment (.env included).
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("notice: .env file not found: %v. Using system environment variables", err)
	}

	cfg := Default()
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.LoadFile(path); err != nil {
			return nil, err
		}
	}
	cfg.ApplyEnv()

	return cfg, nil
}

func (c *Config) LoadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) ApplyEnv() {
	c.ServiceName = env.EnvDefault("SERVICE_NAME", c.ServiceName)
	c.LogLevel = env.EnvDefault("LOG_LEVEL", c.LogLevel)

	c.Server.Port = env.EnvIntDefault("SERVER_PORT", c.Server.Port)
	c.Server.CORSAllowOrigins = env.EnvCSVDefault("CORS_ALLOW_ORIGINS", c.Server.CORSAllowOrigins)

	c.Database.URL = env.EnvDefault("DATABASE_URL", c.Database.URL)
	c.Database.Driver = env.EnvDefault("DB_DRIVER", c.Database.Driver)

	c.Kafka.Brokers = env.EnvCSVDefault("KAFKA_BROKERS", c.Kafka.Brokers)

	c.Redis.URL = env.EnvDefault("REDIS_URL", c.Redis.URL)
	c.Redis.TTL = env.EnvDurationDefault("CACHE_TTL", c.Redis.TTL)

	c.Tracing.Enabled = env.EnvBoolDefault("TRACING_ENABLED", c.Tracing.Enabled)
	c.Catalog.LegacyErrors = env.EnvBoolDefault("CATALOG_LEGACY_ERRORS", c.Catalog.LegacyErrors)
	c.Security.PasswordIterations = env.EnvIntDefault("PASSWORD_ITERATIONS", c.Security.PasswordIterations)
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}
