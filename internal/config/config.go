package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	App      AppConfig
	Protocol ProtocolConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
}

// ServerConfig holds server settings
type ServerConfig struct {
	Port string
}

// AppConfig holds application-specific settings
type AppConfig struct {
	JWTSecret     string
	FeeSinkWallet string
}

// ProtocolConfig seeds the first protocol_params version when the table is
// empty. Later values come from the versioned rows, not from here.
type ProtocolConfig struct {
	FeeBasisPoints      int64
	MinimumStake        int64
	VotingPeriodSeconds int64
	SweepIntervalSec    int64
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "freelancer_dao"),
		},
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
		},
		App: AppConfig{
			JWTSecret:     getEnv("JWT_SECRET", ""),
			FeeSinkWallet: getEnv("FEE_SINK_WALLET", "platform-fee-sink"),
		},
		Protocol: ProtocolConfig{
			FeeBasisPoints:      getEnvInt64("FEE_BASIS_POINTS", 250),
			MinimumStake:        getEnvInt64("MINIMUM_STAKE", 10),
			VotingPeriodSeconds: getEnvInt64("VOTING_PERIOD_SECONDS", 3*24*3600),
			SweepIntervalSec:    getEnvInt64("SWEEP_INTERVAL_SECONDS", 60),
		},
	}

	// Validate required fields
	if config.App.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	if config.Protocol.FeeBasisPoints < 0 || config.Protocol.FeeBasisPoints > 1000 {
		return nil, fmt.Errorf("FEE_BASIS_POINTS must be between 0 and 1000")
	}

	return config, nil
}

// GetDSN returns the PostgreSQL connection string
func (c *Config) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
	)
}

// getEnv gets an environment variable with a fallback default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt64 gets an integer environment variable with a fallback default
func getEnvInt64(key string, defaultValue int64) int64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}
