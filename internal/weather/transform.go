package weather

import (
	"encoding/json"
	"math"

	"github.com/rs/zerolog/log"
)

const currentWeatherKey = "current_weather"

var requiredKeys = []string{"temperature", "windspeed", "winddirection", "weathercode"}

// Transform flattens the current_weather block of raw into a WeatherRecord for loc.
// Values are copied verbatim; a null value counts as missing.
func Transform(loc Location, raw RawWeatherResponse) (WeatherRecord, error) {
	log.Debug().Interface("weather_data", raw).Msg("received weather data")

	value, ok := raw[currentWeatherKey]
	if !ok || value == nil {
		return WeatherRecord{}, &MissingFieldError{Key: currentWeatherKey}
	}

	var data map[string]interface{}
	switch v := value.(type) {
	case map[string]interface{}:
		data = v
	case RawWeatherResponse:
		data = v
	default:
		return WeatherRecord{}, &FieldTypeError{Key: currentWeatherKey, Value: value}
	}

	for _, key := range requiredKeys {
		if v, exists := data[key]; !exists || v == nil {
			return WeatherRecord{}, &MissingFieldError{Key: key}
		}
	}

	temperature, err := floatField(data, "temperature")
	if err != nil {
		return WeatherRecord{}, err
	}
	windSpeed, err := floatField(data, "windspeed")
	if err != nil {
		return WeatherRecord{}, err
	}
	windDirection, err := floatField(data, "winddirection")
	if err != nil {
		return WeatherRecord{}, err
	}
	weatherCode, err := intField(data, "weathercode")
	if err != nil {
		return WeatherRecord{}, err
	}

	record := WeatherRecord{
		Latitude:      loc.Latitude,
		Longitude:     loc.Longitude,
		Temperature:   temperature,
		WindSpeed:     windSpeed,
		WindDirection: windDirection,
		WeatherCode:   weatherCode,
	}

	log.Debug().Interface("record", record).Msg("transformed weather data")

	return record, nil
}

func floatField(data map[string]interface{}, key string) (float64, error) {
	switch v := data[key].(type) {
	case float64:
		return v, nil
	case float32:
		return float64(v), nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, &FieldTypeError{Key: key, Value: v}
		}
		return f, nil
	default:
		return 0, &FieldTypeError{Key: key, Value: v}
	}
}

// intField reads an integer that must fit the INT column weather_code is stored in.
func intField(data map[string]interface{}, key string) (int, error) {
	var (
		n  int64
		ok bool
	)

	switch v := data[key].(type) {
	case int:
		n, ok = int64(v), true
	case int64:
		n, ok = v, true
	case json.Number:
		if i, err := v.Int64(); err == nil {
			n, ok = i, true
		}
	}

	if !ok {
		// integral floats such as 3.0 are accepted, fractional codes are not
		f, err := floatField(data, key)
		if err != nil || f != math.Trunc(f) || f < math.MinInt32 || f > math.MaxInt32 {
			return 0, &FieldTypeError{Key: key, Value: data[key]}
		}
		n = int64(f)
	}

	if n < math.MinInt32 || n > math.MaxInt32 {
		return 0, &FieldTypeError{Key: key, Value: data[key]}
	}

	return int(n), nil
}
