package config

import (
	"errors"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// InsecureJWTSecret is only accepted outside production.
const InsecureJWTSecret = "secret123"

type Config struct {
	AppEnv      string
	ServiceName string
	LogLevel    string

	ServerPort  int
	CORSOrigins []string

	DatabaseURL string

	JWTSecret []byte
	TokenTTL  time.Duration

	KafkaBrokers []string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

// Load reads .env (if present), then config.yaml (if present), then the
// process environment. Environment variables win.
func Load(envFile string) Config {
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("notice: %s not loaded: %v. Using system environment variables", envFile, err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./deploy/")
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("SERVICE_NAME", "vitrine")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("CORS_ORIGINS", "*")
	v.SetDefault("TOKEN_TTL", 7*24*time.Hour)
	v.SetDefault("ES_INDEX", "produtos")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			log.Printf("warning: config.yaml ignored: %v", err)
		}
	}

	return Config{
		AppEnv:      v.GetString("APP_ENV"),
		ServiceName: v.GetString("SERVICE_NAME"),
		LogLevel:    v.GetString("LOG_LEVEL"),

		ServerPort:  v.GetInt("SERVER_PORT"),
		CORSOrigins: CSV(v.GetString("CORS_ORIGINS")),

		DatabaseURL: v.GetString("DATABASE_URL"),

		JWTSecret: []byte(v.GetString("JWT_SECRET")),
		TokenTTL:  v.GetDuration("TOKEN_TTL"),

		KafkaBrokers: CSV(v.GetString("KAFKA_BROKERS")),

		ESURL:      v.GetString("ES_URL"),
		ESUser:     v.GetString("ES_USER"),
		ESPassword: v.GetString("ES_PASSWORD"),
		ESIndex:    v.GetString("ES_INDEX"),
	}
}

// ResolveJWTSecret returns the configured secret. Outside production an empty
// secret falls back to InsecureJWTSecret and fallback is reported as true.
// In production an empty secret is an error.
func (c Config) ResolveJWTSecret() (secret []byte, fallback bool, err error) {
	if len(c.JWTSecret) > 0 {
		return c.JWTSecret, false, nil
	}
	if c.IsProduction() {
		return nil, false, RequireNonEmptyBytes(c.JWTSecret, "JWT_SECRET")
	}
	return []byte(InsecureJWTSecret), true, nil
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
