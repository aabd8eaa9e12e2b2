package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisTasksDB  int    `mapstructure:"REDIS_TASKS_DB"`

	// Pricing. Platform fee is a single configurable policy: "flat" adds
	// PLATFORM_FEE_AMOUNT, "percent" adds PLATFORM_FEE_RATE of (base+item).
	BaseBookingFee        float64 `mapstructure:"BASE_BOOKING_FEE"`
	PlatformFeeMode       string  `mapstructure:"PLATFORM_FEE_MODE"`
	PlatformFeeAmount     float64 `mapstructure:"PLATFORM_FEE_AMOUNT"`
	PlatformFeeRate       float64 `mapstructure:"PLATFORM_FEE_RATE"`
	DefaultConsultFee     float64 `mapstructure:"DEFAULT_CONSULTATION_FEE"`
	ReminderLeadMinutes   int     `mapstructure:"REMINDER_LEAD_MINUTES"`
	AvailabilityCacheSecs int     `mapstructure:"AVAILABILITY_CACHE_SECS"`
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
	viper.SetDefault("JWT_SECRET", "dev-only-secret")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_TASKS_DB", 1)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "a1care")
	viper.SetDefault("BASE_BOOKING_FEE", 0.0)
	viper.SetDefault("PLATFORM_FEE_MODE", "flat")
	viper.SetDefault("PLATFORM_FEE_AMOUNT", 50.0)
	viper.SetDefault("PLATFORM_FEE_RATE", 0.10)
	viper.SetDefault("DEFAULT_CONSULTATION_FEE", 300.0)
	viper.SetDefault("REMINDER_LEAD_MINUTES", 60)
	viper.SetDefault("AVAILABILITY_CACHE_SECS", 30)

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
