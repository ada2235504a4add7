package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisGrantDB  int    `mapstructure:"REDIS_GRANT_DB"`
	RedisSweepDB  int    `mapstructure:"REDIS_SWEEP_DB"`

	// Payment gateway configuration.
	PaymentProvider  string `mapstructure:"PAYMENT_PROVIDER"` // "razorpay" or "stripe"
	PaymentKeyID     string `mapstructure:"PAYMENT_KEY_ID"`
	PaymentKeySecret string `mapstructure:"PAYMENT_KEY_SECRET"`
	PaymentRetries   int    `mapstructure:"PAYMENT_RETRIES"`
	Currency         string `mapstructure:"CURRENCY"`

	// Booking lifecycle configuration.
	QRTokenTTL    time.Duration `mapstructure:"QR_TOKEN_TTL"`
	GrantTTL      time.Duration `mapstructure:"GRANT_TTL"`
	PendingTTL    time.Duration `mapstructure:"PENDING_TTL"`
	CompletionLag time.Duration `mapstructure:"COMPLETION_LAG"`
	SweepInterval time.Duration `mapstructure:"SWEEP_INTERVAL"`
	GymCacheTTL   time.Duration `mapstructure:"GYM_CACHE_TTL"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_GRANT_DB", 1)
	viper.SetDefault("REDIS_SWEEP_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("PAYMENT_PROVIDER", "razorpay")
	viper.SetDefault("PAYMENT_KEY_ID", "")
	viper.SetDefault("PAYMENT_KEY_SECRET", "")
	viper.SetDefault("PAYMENT_RETRIES", 3)
	viper.SetDefault("CURRENCY", "INR")
	viper.SetDefault("QR_TOKEN_TTL", 4*time.Hour)
	viper.SetDefault("GRANT_TTL", 10*time.Minute)
	viper.SetDefault("PENDING_TTL", 30*time.Minute)
	viper.SetDefault("COMPLETION_LAG", 2*time.Hour)
	viper.SetDefault("SWEEP_INTERVAL", 5*time.Minute)
	viper.SetDefault("GYM_CACHE_TTL", 5*time.Minute)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
