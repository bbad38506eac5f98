package weatherdata

import (
	"time"
)

// WeatherData is one stored row of the weather_data table.
type WeatherData struct {
	Latitude      float64   `json:"latitude" gorm:"column:latitude"`
	Longitude     float64   `json:"longitude" gorm:"column:longitude"`
	Temperature   float64   `json:"temperature" gorm:"column:temperature"`
	WindSpeed     float64   `json:"wind_speed" gorm:"column:wind_speed"`
	WindDirection float64   `json:"wind_direction" gorm:"column:wind_direction"`
	WeatherCode   int       `json:"weather_code" gorm:"column:weather_code"`
	Timestamp     time.Time `json:"timestamp" gorm:"column:timestamp"`
}

func (WeatherData) TableName() string {
	return "weather_data"
}
