package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"ulascansenturk/weather-etl/internal/weather"
)

const forecastPath = "/v1/forecast"

type WeatherFetcher interface {
	FetchCurrentWeather(ctx context.Context) (weather.RawWeatherResponse, error)
	GetHTTPClient() *http.Client
}

type openMeteoService struct {
	baseURL  string
	location weather.Location
	client   *http.Client
}

// NewOpenMeteoService returns a fetcher for the current conditions at location.
// A nil client falls back to a zero http.Client.
func NewOpenMeteoService(baseURL string, location weather.Location, client *http.Client) WeatherFetcher {
	if client == nil {
		client = &http.Client{}
	}

	return &openMeteoService{
		baseURL:  strings.TrimRight(baseURL, "/"),
		location: location,
		client:   client,
	}
}

func (s *openMeteoService) FetchCurrentWeather(ctx context.Context) (weather.RawWeatherResponse, error) {
	query := url.Values{}
	query.Set("latitude", strconv.FormatFloat(s.location.Latitude, 'f', -1, 64))
	query.Set("longitude", strconv.FormatFloat(s.location.Longitude, 'f', -1, 64))
	query.Set("current_weather", "true")

	endpoint := fmt.Sprintf("%s%s?%s", s.baseURL, forecastPath, query.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build weather API request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("weather API request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &weather.UpstreamError{StatusCode: resp.StatusCode}
	}

	var data weather.RawWeatherResponse
	decoder := json.NewDecoder(resp.Body)
	decoder.UseNumber()
	if err := decoder.Decode(&data); err != nil {
		return nil, fmt.Errorf("weather API returned malformed JSON: %w", err)
	}

	log.Debug().Interface("response", data).Msg("weather API response")

	if _, ok := data["current_weather"]; !ok {
		return nil, &weather.MissingFieldError{Key: "current_weather"}
	}

	return data, nil
}

func (s *openMeteoService) GetHTTPClient() *http.Client {
	return s.client
}
