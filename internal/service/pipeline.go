package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"ulascansenturk/weather-etl/internal/db/weatherdata"
	"ulascansenturk/weather-etl/internal/providers"
	"ulascansenturk/weather-etl/internal/weather"
)

const (
	StepExtract   = "extract_weather_data"
	StepTransform = "transform_weather_data"
	StepLoad      = "load_transformed_data"
)

// Pipeline runs extract, transform and load strictly in order.
type Pipeline interface {
	Run(ctx context.Context) (weather.WeatherRecord, error)
	Steps() []string
}

type weatherPipeline struct {
	fetcher  providers.WeatherFetcher
	repo     weatherdata.Repository
	location weather.Location
}

func NewWeatherPipeline(fetcher providers.WeatherFetcher, repo weatherdata.Repository, location weather.Location) Pipeline {
	return &weatherPipeline{
		fetcher:  fetcher,
		repo:     repo,
		location: location,
	}
}

func (p *weatherPipeline) Steps() []string {
	return []string{StepExtract, StepTransform, StepLoad}
}

// Run returns the persisted record. Any step failure aborts the run and is
// returned wrapped with the step name; nothing is retried.
func (p *weatherPipeline) Run(ctx context.Context) (weather.WeatherRecord, error) {
	logger := log.With().Str("run_id", uuid.NewString()).Logger()

	logger.Info().Str("step", StepExtract).Msg("running step")
	raw, err := p.fetcher.FetchCurrentWeather(ctx)
	if err != nil {
		return weather.WeatherRecord{}, p.fail(logger, StepExtract, err)
	}

	logger.Info().Str("step", StepTransform).Msg("running step")
	record, err := weather.Transform(p.location, raw)
	if err != nil {
		return weather.WeatherRecord{}, p.fail(logger, StepTransform, err)
	}

	logger.Info().Str("step", StepLoad).Msg("running step")
	if err := p.repo.Load(ctx, record); err != nil {
		return weather.WeatherRecord{}, p.fail(logger, StepLoad, err)
	}

	logger.Info().
		Float64("temperature", record.Temperature).
		Int("weather_code", record.WeatherCode).
		Msg("weather pipeline run completed")

	return record, nil
}

func (p *weatherPipeline) fail(logger zerolog.Logger, step string, err error) error {
	logger.Error().Err(err).Str("step", step).Msg("weather pipeline run failed")
	return fmt.Errorf("%s: %w", step, err)
}
