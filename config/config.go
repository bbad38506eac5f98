package config

import (
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	ServiceName   string
	ServerAddress string

	DBName     string
	DBPassword string
	DBUser     string
	DBPort     string
	DBHost     string

	Env         string
	LogLevel    string
	HTTPTimeout int32

	WeatherAPIBaseURL string

	Schedule string
	RunOnce  bool
}

func LoadConfig() (*Config, error) {
	v := viper.New()

	v.SetDefault("SERVICE_NAME", "weather-etl")

	v.SetDefault("SERVER_ADDRESS", "0.0.0.0:3000")
	v.SetDefault("DATABASE_PORT", "5432")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("HTTP_TIMEOUT", 0)
	v.SetDefault("WEATHER_API_BASE_URL", "https://api.open-meteo.com")
	v.SetDefault("SCHEDULE", "@daily")
	v.SetDefault("RUN_ONCE", false)

	v.AutomaticEnv()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Warn().Msg("No .env file found, using environment variables only")
		} else {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	} else {
		log.Info().Str("file", v.ConfigFileUsed()).Msg("Config file loaded")
	}

	config := &Config{
		ServiceName:       v.GetString("SERVICE_NAME"),
		ServerAddress:     v.GetString("SERVER_ADDRESS"),
		DBName:            v.GetString("DATABASE_NAME"),
		DBPassword:        v.GetString("DATABASE_PASSWORD"),
		DBUser:            v.GetString("DATABASE_USER"),
		DBPort:            v.GetString("DATABASE_PORT"),
		DBHost:            v.GetString("DATABASE_HOST"),
		Env:               v.GetString("ENV"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		HTTPTimeout:       v.GetInt32("HTTP_TIMEOUT"),
		WeatherAPIBaseURL: v.GetString("WEATHER_API_BASE_URL"),
		Schedule:          v.GetString("SCHEDULE"),
		RunOnce:           v.GetBool("RUN_ONCE"),
	}

	return config, nil
}

// HTTPTimeoutDuration is zero when no timeout is configured.
func (c *Config) HTTPTimeoutDuration() time.Duration {
	return time.Duration(c.HTTPTimeout) * time.Second
}

const defaultServerReadTimeout = 10 * time.Second

// ServerReadTimeout bounds how long the status server waits for a request.
// HTTP_TIMEOUT overrides the default when set.
func (c *Config) ServerReadTimeout() time.Duration {
	if timeout := c.HTTPTimeoutDuration(); timeout > 0 {
		return timeout
	}

	return defaultServerReadTimeout
}

func (c *Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName,
	)
}
