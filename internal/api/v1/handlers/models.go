package handlers

import "time"

type HealthResponse struct {
	Status string `json:"status"`
}

type WeatherResponse struct {
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	Temperature   float64   `json:"temperature"`
	WindSpeed     float64   `json:"wind_speed"`
	WindDirection float64   `json:"wind_direction"`
	WeatherCode   int       `json:"weather_code"`
	Timestamp     time.Time `json:"timestamp"`
	RowCount      int64     `json:"row_count"`
}

type RunResponse struct {
	Status string   `json:"status"`
	Steps  []string `json:"steps"`
	Record Record   `json:"record"`
}

type Record struct {
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	Temperature   float64 `json:"temperature"`
	WindSpeed     float64 `json:"wind_speed"`
	WindDirection float64 `json:"wind_direction"`
	WeatherCode   int     `json:"weather_code"`
}

type Error struct {
	Code   string `json:"code"`
	Detail string `json:"detail"`
	Status int    `json:"status"`
	Title  string `json:"title"`
}

type ErrorResponse struct {
	Errors []Error `json:"errors"`
}
