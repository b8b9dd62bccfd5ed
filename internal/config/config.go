package config

import (
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration (env + Viper).
type Config struct {
	Env                 string
	Port                string
	DatabaseURL         string
	RedisURL            string
	FrontendURLEndsWith string
	DevPassword         string
	AdminPassword       string
	AdminPasswordHash   string // bcrypt; takes precedence over AdminPassword
	HealthAdminKey      string
	LogLevel            string
	AutoMigrate         bool
}

// IsProduction reports whether APP_ENV/NODE_ENV is production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load loads config from env and optional .env file.
func Load() (*Config, error) {
	return load(".env")
}

func load(envFile string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	_ = v.ReadInConfig()

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetDefault("PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")

	env := v.GetString("APP_ENV")
	if env == "" {
		env = v.GetString("NODE_ENV")
	}
	if env == "" {
		env = "development"
	}

	var dbURL string
	switch env {
	case "production":
		dbURL = v.GetString("DATABASE_URL_PROD")
	case "test":
		dbURL = v.GetString("DATABASE_URL_TEST")
	default:
		dbURL = v.GetString("DATABASE_URL_DEV")
	}
	if dbURL == "" {
		dbURL = v.GetString("DATABASE_URL")
	}

	return &Config{
		Env:                 env,
		Port:                v.GetString("PORT"),
		DatabaseURL:         dbURL,
		RedisURL:            v.GetString("REDIS_URL"),
		FrontendURLEndsWith: v.GetString("FRONTEND_URL_ENDS_WITH"),
		DevPassword:         v.GetString("DEV_PASSWORD"),
		AdminPassword:       v.GetString("ADMIN_PASSWORD"),
		AdminPasswordHash:   v.GetString("ADMIN_PASSWORD_HASH"),
		HealthAdminKey:      v.GetString("HEALTH_ADMIN_KEY"),
		LogLevel:            strings.ToLower(v.GetString("LOG_LEVEL")),
		AutoMigrate:         v.GetBool("AUTO_MIGRATE"),
	}, nil
}
