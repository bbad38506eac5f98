package weather

// Location is a fixed geographic point the pipeline reports on.
type Location struct {
	Latitude  float64
	Longitude float64
}

// Chicago is the only location the pipeline collects.
var Chicago = Location{Latitude: 41.881832, Longitude: -87.623177}

// RawWeatherResponse is the untyped JSON body returned by the forecast API.
type RawWeatherResponse map[string]interface{}

type WeatherRecord struct {
	Latitude      float64 `json:"latitude"`
	Longitude     float64 `json:"longitude"`
	Temperature   float64 `json:"temperature"`
	WindSpeed     float64 `json:"wind_speed"`
	WindDirection float64 `json:"wind_direction"`
	WeatherCode   int     `json:"weather_code"`
}
