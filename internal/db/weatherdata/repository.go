package weatherdata

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"ulascansenturk/weather-etl/internal/weather"
)

const (
	createTableSQL = `CREATE TABLE IF NOT EXISTS weather_data (
	latitude FLOAT,
	longitude FLOAT,
	temperature FLOAT,
	wind_speed FLOAT,
	wind_direction FLOAT,
	weather_code INT,
	timestamp TIMESTAMP DEFAULT CURRENT_TIMESTAMP
)`

	insertSQL = `INSERT INTO weather_data (latitude, longitude, temperature, wind_speed, wind_direction, weather_code) VALUES (?, ?, ?, ?, ?, ?)`
)

var ErrNoWeatherData = errors.New("no weather data stored yet")

type Repository interface {
	// Load bootstraps the schema and appends record in a single transaction.
	Load(ctx context.Context, record weather.WeatherRecord) error
	EnsureSchema(ctx context.Context) error
	LatestWeatherData(ctx context.Context) (*WeatherData, error)
	CountWeatherData(ctx context.Context) (int64, error)
}

type WeatherSQLRepository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &WeatherSQLRepository{db: db}
}

func (r *WeatherSQLRepository) Load(ctx context.Context, record weather.WeatherRecord) error {
	// Connection checks out one dedicated connection and returns it to the
	// pool on every path; Transaction rolls back on any returned error.
	err := r.db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		return conn.Transaction(func(tx *gorm.DB) error {
			if err := ensureSchema(tx); err != nil {
				return err
			}

			if err := tx.Exec(insertSQL,
				record.Latitude,
				record.Longitude,
				record.Temperature,
				record.WindSpeed,
				record.WindDirection,
				record.WeatherCode,
			).Error; err != nil {
				return &weather.DatabaseError{Op: "insert", Err: err}
			}

			log.Debug().Interface("record", record).Msg("inserted weather data")

			return nil
		})
	})
	if err == nil {
		return nil
	}

	var dbErr *weather.DatabaseError
	if errors.As(err, &dbErr) {
		return err
	}

	return &weather.DatabaseError{Op: "transaction", Err: err}
}

func (r *WeatherSQLRepository) EnsureSchema(ctx context.Context) error {
	return ensureSchema(r.db.WithContext(ctx))
}

func (r *WeatherSQLRepository) LatestWeatherData(ctx context.Context) (*WeatherData, error) {
	db := r.db.WithContext(ctx)

	exists, err := tableExists(db)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrNoWeatherData
	}

	var row WeatherData
	err = db.Order(clause.OrderByColumn{Column: clause.Column{Name: "timestamp"}, Desc: true}).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNoWeatherData
	}
	if err != nil {
		return nil, err
	}

	return &row, nil
}

func (r *WeatherSQLRepository) CountWeatherData(ctx context.Context) (int64, error) {
	db := r.db.WithContext(ctx)

	exists, err := tableExists(db)
	if err != nil {
		return 0, err
	}
	if !exists {
		return 0, nil
	}

	var count int64
	if err := db.Model(&WeatherData{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

// tableExists reports whether weather_data is visible on the search path.
// Unlike Migrator().HasTable it surfaces query errors to the caller.
func tableExists(db *gorm.DB) (bool, error) {
	var exists bool
	if err := db.Raw("SELECT to_regclass(?) IS NOT NULL", WeatherData{}.TableName()).Scan(&exists).Error; err != nil {
		return false, err
	}

	return exists, nil
}

func ensureSchema(db *gorm.DB) error {
	if err := db.Exec(createTableSQL).Error; err != nil {
		return &weather.DatabaseError{Op: "ensure schema", Err: err}
	}

	log.Debug().Msg("ensured weather_data table exists")

	return nil
}
