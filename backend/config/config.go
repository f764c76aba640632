package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	ServerPort  string
	CORSOrigins string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
	DBPath     string

	JWTSecret string
	TokenTTL  time.Duration

	SessionCookieName string
	AdminSessionTTL   time.Duration
	BcryptCost        int

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	LogMode  string
	Timezone string

	ChallengeAutoReward bool
	BadgeAutoAward      bool
	ChallengeSweepSpec  string
	SeedOnStart         bool
	SeedAdminUsername   string
	SeedAdminPassword   string
}

func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	cfg := &Config{
		ServerPort:  v.GetString("SERVER_PORT"),
		CORSOrigins: v.GetString("CORS_ORIGINS"),

		DBDriver:   strings.ToLower(v.GetString("DB_DRIVER")),
		DBHost:     v.GetString("DB_HOST"),
		DBPort:     v.GetString("DB_PORT"),
		DBUser:     v.GetString("DB_USER"),
		DBPassword: v.GetString("DB_PASSWORD"),
		DBName:     v.GetString("DB_NAME"),
		DBSSLMode:  v.GetString("DB_SSLMODE"),
		DBPath:     v.GetString("DB_PATH"),

		JWTSecret: v.GetString("JWT_SECRET"),
		TokenTTL:  v.GetDuration("TOKEN_TTL"),

		SessionCookieName: v.GetString("SESSION_COOKIE_NAME"),
		AdminSessionTTL:   v.GetDuration("ADMIN_SESSION_TTL"),
		BcryptCost:        v.GetInt("BCRYPT_COST"),

		RedisAddr:     v.GetString("REDIS_ADDR"),
		RedisPassword: v.GetString("REDIS_PASSWORD"),
		RedisDB:       v.GetInt("REDIS_DB"),

		LogMode:  v.GetString("LOG_MODE"),
		Timezone: v.GetString("APP_TIMEZONE"),

		ChallengeAutoReward: v.GetBool("CHALLENGE_AUTO_REWARD"),
		BadgeAutoAward:      v.GetBool("BADGE_AUTO_AWARD"),
		ChallengeSweepSpec:  v.GetString("CHALLENGE_SWEEP_SPEC"),
		SeedOnStart:         v.GetBool("SEED_ON_START"),
		SeedAdminUsername:   v.GetString("SEED_ADMIN_USERNAME"),
		SeedAdminPassword:   v.GetString("SEED_ADMIN_PASSWORD"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("CORS_ORIGINS", "*")

	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "readquest")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_PATH", "readquest.db")

	v.SetDefault("JWT_SECRET", "secret")
	v.SetDefault("TOKEN_TTL", 72*time.Hour)

	v.SetDefault("SESSION_COOKIE_NAME", "readquest_admin")
	v.SetDefault("ADMIN_SESSION_TTL", 24*time.Hour)
	v.SetDefault("BCRYPT_COST", 10)

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("LOG_MODE", "development")
	v.SetDefault("APP_TIMEZONE", "UTC")

	v.SetDefault("CHALLENGE_AUTO_REWARD", true)
	v.SetDefault("BADGE_AUTO_AWARD", true)
	v.SetDefault("CHALLENGE_SWEEP_SPEC", "@hourly")
	v.SetDefault("SEED_ON_START", false)
	v.SetDefault("SEED_ADMIN_USERNAME", "")
	v.SetDefault("SEED_ADMIN_PASSWORD", "")
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must not be empty")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid APP_TIMEZONE %q: %w", c.Timezone, err)
	}
	return nil
}

// Location is the zone in which calendar days (streaks, daily challenges) are counted.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(c.Timezone)
}

// PostgresDSN builds the connection string for the postgres driver.
func (c *Config) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}
