package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
	"ulascansenturk/weather-etl/internal/db/weatherdata"
	"ulascansenturk/weather-etl/internal/service"
	"ulascansenturk/weather-etl/internal/weather"
)

type WeatherHandler struct {
	pipeline service.Pipeline
	repo     weatherdata.Repository
	timeout  time.Duration
}

// NewWeatherHandler serves the stored weather data and a manual run trigger.
// A zero timeout leaves manual runs bounded only by the request context.
func NewWeatherHandler(pipeline service.Pipeline, repo weatherdata.Repository, timeout time.Duration) *WeatherHandler {
	return &WeatherHandler{
		pipeline: pipeline,
		repo:     repo,
		timeout:  timeout,
	}
}

func (h *WeatherHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.URL.Path {
	case "/health":
		h.Health(w, r)
	case "/weather":
		h.GetWeather(w, r)
	case "/runs":
		h.TriggerRun(w, r)
	default:
		respondWithError(w, http.StatusNotFound, "not found")
	}
}

func (h *WeatherHandler) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	respondWithJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (h *WeatherHandler) GetWeather(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondWithError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ctx := r.Context()

	latest, err := h.repo.LatestWeatherData(ctx)
	if errors.Is(err, weatherdata.ErrNoWeatherData) {
		respondWithError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		log.Error().Err(err).Msg("failed to read latest weather data")
		respondWithError(w, http.StatusInternalServerError, "failed to read weather data: "+err.Error())
		return
	}

	count, err := h.repo.CountWeatherData(ctx)
	if err != nil {
		log.Error().Err(err).Msg("failed to count weather data")
		respondWithError(w, http.StatusInternalServerError, "failed to count weather data: "+err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, WeatherResponse{
		Latitude:      latest.Latitude,
		Longitude:     latest.Longitude,
		Temperature:   latest.Temperature,
		WindSpeed:     latest.WindSpeed,
		WindDirection: latest.WindDirection,
		WeatherCode:   latest.WeatherCode,
		Timestamp:     latest.Timestamp,
		RowCount:      count,
	})
}

func (h *WeatherHandler) TriggerRun(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondWithError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	ctx := r.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	record, err := h.pipeline.Run(ctx)
	if err != nil {
		respondWithError(w, runErrorStatus(err), "weather pipeline run failed: "+err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, RunResponse{
		Status: "success",
		Steps:  h.pipeline.Steps(),
		Record: Record{
			Latitude:      record.Latitude,
			Longitude:     record.Longitude,
			Temperature:   record.Temperature,
			WindSpeed:     record.WindSpeed,
			WindDirection: record.WindDirection,
			WeatherCode:   record.WeatherCode,
		},
	})
}

// runErrorStatus maps failures caused by the weather API to 502.
func runErrorStatus(err error) int {
	var upstream *weather.UpstreamError
	var missing *weather.MissingFieldError
	var fieldType *weather.FieldTypeError

	switch {
	case errors.As(err, &upstream), errors.As(err, &missing), errors.As(err, &fieldType):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
