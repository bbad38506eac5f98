package providers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"ulascansenturk/weather-etl/internal/providers"
	"ulascansenturk/weather-etl/internal/weather"
)

type OpenMeteoServiceTestSuite struct {
	suite.Suite
	server  *httptest.Server
	service providers.WeatherFetcher

	mu       sync.Mutex
	status   int
	body     string
	requests []*url.URL
}

func (s *OpenMeteoServiceTestSuite) SetupTest() {
	s.status = http.StatusOK
	s.body = `{"latitude":41.875,"longitude":-87.625,"current_weather":{"temperature":15.2,"windspeed":10.5,"winddirection":270,"weathercode":3}}`
	s.requests = nil

	s.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		defer s.mu.Unlock()

		s.requests = append(s.requests, r.URL)
		w.WriteHeader(s.status)
		w.Write([]byte(s.body))
	}))

	s.service = providers.NewOpenMeteoService(s.server.URL, weather.Chicago, &http.Client{})
}

func (s *OpenMeteoServiceTestSuite) TearDownTest() {
	s.server.Close()
}

func (s *OpenMeteoServiceTestSuite) respondWith(status int, body string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.status = status
	s.body = body
}

func (s *OpenMeteoServiceTestSuite) recorded() []*url.URL {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*url.URL(nil), s.requests...)
}

func (s *OpenMeteoServiceTestSuite) TestFetchCurrentWeather_Success() {
	data, err := s.service.FetchCurrentWeather(context.Background())

	s.Require().NoError(err)
	s.Require().Contains(data, "current_weather")

	current, ok := data["current_weather"].(map[string]interface{})
	s.Require().True(ok)
	s.Equal(json.Number("15.2"), current["temperature"])
	s.Equal(json.Number("3"), current["weathercode"])
	s.Equal(json.Number("41.875"), data["latitude"])
}

func (s *OpenMeteoServiceTestSuite) TestFetchCurrentWeather_RequestShape() {
	_, err := s.service.FetchCurrentWeather(context.Background())
	s.Require().NoError(err)

	requests := s.recorded()
	s.Require().Len(requests, 1)
	requested := requests[0]
	s.Equal("/v1/forecast", requested.Path)
	s.Equal("41.881832", requested.Query().Get("latitude"))
	s.Equal("-87.623177", requested.Query().Get("longitude"))
	s.Equal("true", requested.Query().Get("current_weather"))
}

func (s *OpenMeteoServiceTestSuite) TestFetchCurrentWeather_TrailingSlashBaseURL() {
	service := providers.NewOpenMeteoService(s.server.URL+"/", weather.Chicago, nil)

	_, err := service.FetchCurrentWeather(context.Background())
	s.Require().NoError(err)

	requests := s.recorded()
	s.Require().Len(requests, 1)
	s.Equal("/v1/forecast", requests[0].Path)
}

func (s *OpenMeteoServiceTestSuite) TestFetchCurrentWeather_MissingCurrentWeather() {
	s.respondWith(http.StatusOK, `{"latitude":41.875,"longitude":-87.625,"hourly":{}}`)

	data, err := s.service.FetchCurrentWeather(context.Background())

	var missing *weather.MissingFieldError
	s.Require().ErrorAs(err, &missing)
	s.Equal("current_weather", missing.Key)
	s.Nil(data)
}

func (s *OpenMeteoServiceTestSuite) TestFetchCurrentWeather_ServerError() {
	s.respondWith(http.StatusInternalServerError, `{"error":true,"reason":"boom"}`)

	data, err := s.service.FetchCurrentWeather(context.Background())

	var upstream *weather.UpstreamError
	s.Require().ErrorAs(err, &upstream)
	s.Equal(http.StatusInternalServerError, upstream.StatusCode)
	s.Contains(err.Error(), "status code: 500")
	s.Nil(data)
}

func (s *OpenMeteoServiceTestSuite) TestFetchCurrentWeather_NonOKSuccessStatus() {
	s.respondWith(http.StatusNoContent, "")

	_, err := s.service.FetchCurrentWeather(context.Background())

	var upstream *weather.UpstreamError
	s.Require().ErrorAs(err, &upstream)
	s.Equal(http.StatusNoContent, upstream.StatusCode)
}

func (s *OpenMeteoServiceTestSuite) TestFetchCurrentWeather_NoRetry() {
	s.respondWith(http.StatusServiceUnavailable, "")

	_, err := s.service.FetchCurrentWeather(context.Background())

	s.Require().Error(err)
	s.Len(s.recorded(), 1)
}

func (s *OpenMeteoServiceTestSuite) TestFetchCurrentWeather_MalformedJSON() {
	s.respondWith(http.StatusOK, "{malformed json")

	_, err := s.service.FetchCurrentWeather(context.Background())

	s.Require().Error(err)
	s.Contains(err.Error(), "malformed JSON")
}

func (s *OpenMeteoServiceTestSuite) TestFetchCurrentWeather_CanceledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := s.service.FetchCurrentWeather(ctx)

	s.Require().Error(err)
	s.ErrorIs(err, context.Canceled)
}

func (s *OpenMeteoServiceTestSuite) TestFetchCurrentWeather_ClientTimeout() {
	slow := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer slow.Close()

	service := providers.NewOpenMeteoService(slow.URL, weather.Chicago, &http.Client{Timeout: 20 * time.Millisecond})

	_, err := service.FetchCurrentWeather(context.Background())

	s.Require().Error(err)
	s.Contains(err.Error(), "weather API request failed")
}

func (s *OpenMeteoServiceTestSuite) TestGetHTTPClient() {
	client := &http.Client{Timeout: time.Second}
	service := providers.NewOpenMeteoService(s.server.URL, weather.Chicago, client)

	s.Same(client, service.GetHTTPClient())
	s.NotNil(providers.NewOpenMeteoService(s.server.URL, weather.Chicago, nil).GetHTTPClient())
}

func TestOpenMeteoServiceSuite(t *testing.T) {
	suite.Run(t, new(OpenMeteoServiceTestSuite))
}
