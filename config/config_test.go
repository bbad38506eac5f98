package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"ulascansenturk/weather-etl/config"
)

type ConfigTestSuite struct {
	suite.Suite
}

func (s *ConfigTestSuite) TestDefaults() {
	conf, err := config.LoadConfig()

	s.Require().NoError(err)
	s.Equal("weather-etl", conf.ServiceName)
	s.Equal("0.0.0.0:3000", conf.ServerAddress)
	s.Equal("5432", conf.DBPort)
	s.Equal("https://api.open-meteo.com", conf.WeatherAPIBaseURL)
	s.Equal("@daily", conf.Schedule)
	s.False(conf.RunOnce)
	s.Zero(conf.HTTPTimeoutDuration())
	s.Equal(10*time.Second, conf.ServerReadTimeout())
}

func (s *ConfigTestSuite) TestEnvironmentOverrides() {
	s.T().Setenv("DATABASE_HOST", "db.internal")
	s.T().Setenv("DATABASE_NAME", "weather")
	s.T().Setenv("DATABASE_USER", "etl")
	s.T().Setenv("DATABASE_PASSWORD", "secret")
	s.T().Setenv("HTTP_TIMEOUT", "15")
	s.T().Setenv("SCHEDULE", "0 * * * *")
	s.T().Setenv("RUN_ONCE", "true")
	s.T().Setenv("WEATHER_API_BASE_URL", "http://localhost:8081")

	conf, err := config.LoadConfig()

	s.Require().NoError(err)
	s.Equal("0 * * * *", conf.Schedule)
	s.True(conf.RunOnce)
	s.Equal("http://localhost:8081", conf.WeatherAPIBaseURL)
	s.Equal(15*time.Second, conf.HTTPTimeoutDuration())
	s.Equal(15*time.Second, conf.ServerReadTimeout())
	s.Equal("host=db.internal port=5432 user=etl password=secret dbname=weather sslmode=disable", conf.DSN())
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}
