package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"ulascansenturk/weather-etl/config"
	"ulascansenturk/weather-etl/internal/api/v1/handlers"
	"ulascansenturk/weather-etl/internal/db/weatherdata"
	"ulascansenturk/weather-etl/internal/providers"
	"ulascansenturk/weather-etl/internal/scheduler"
	"ulascansenturk/weather-etl/internal/service"
	"ulascansenturk/weather-etl/internal/weather"
)

func main() {
	os.Exit(run())
}

// run returns the process exit code so deferred cleanup happens before exit.
func run() int {
	conf, err := config.LoadConfig()
	if err != nil {
		log.Error().Err(err).Msg("failed to load config")
		return 1
	}

	logLevel, err := zerolog.ParseLevel(conf.LogLevel)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}
	log.Logger = zerolog.New(os.Stdout).
		Level(logLevel).
		With().
		Str("service_name", conf.ServiceName).
		Timestamp().
		Logger()

	ctx, mainCtxStop := context.WithCancel(context.Background())
	defer mainCtxStop()

	db, dbErr := initializeDatabase(conf)
	if dbErr != nil {
		log.Error().Err(dbErr).Msg("failed to initialize database")
		return 1
	}
	defer func() {
		if closeErr := closeDatabase(db); closeErr != nil {
			log.Error().Err(closeErr).Msg("failed to close database")
		}
	}()

	weatherRepo := weatherdata.NewRepository(db)

	fetcher := providers.NewOpenMeteoService(
		conf.WeatherAPIBaseURL,
		weather.Chicago,
		&http.Client{Timeout: conf.HTTPTimeoutDuration()},
	)

	pipeline := service.NewWeatherPipeline(fetcher, weatherRepo, weather.Chicago)

	if conf.RunOnce {
		if _, err := pipeline.Run(ctx); err != nil {
			log.Error().Err(err).Msg("weather pipeline run failed")
			return 1
		}
		return 0
	}

	sched := scheduler.New(conf.Schedule, pipeline)
	if err := sched.Start(); err != nil {
		log.Error().Err(err).Str("schedule", conf.Schedule).Msg("failed to start scheduler")
		return 1
	}

	handler := handlers.NewWeatherHandler(pipeline, weatherRepo, conf.HTTPTimeoutDuration())

	httpServer := &http.Server{
		Addr:              conf.ServerAddress,
		Handler:           handler,
		ReadTimeout:       conf.ServerReadTimeout(),
		ReadHeaderTimeout: conf.ServerReadTimeout(),
	}

	handleSignals(ctx, mainCtxStop, func() {
		sched.Stop()

		shutdownErr := httpServer.Shutdown(ctx)
		if shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("server shutdown failed")
		}
	})

	log.Info().Msgf("started server on %s", conf.ServerAddress)

	serverErr := httpServer.ListenAndServe()
	if serverErr != nil && serverErr != http.ErrServerClosed {
		log.Err(serverErr).Msg("server stopped")
		sched.Stop()
		return 1
	}
	<-ctx.Done()

	return 0
}

// initializeDatabase opens a small pool; each pipeline run checks out its own
// connection for the duration of the load step.
func initializeDatabase(config *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(config.DSN()), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(2)
	sqlDB.SetMaxOpenConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(3 * time.Minute)

	return db, nil
}

func closeDatabase(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}

	return sqlDB.Close()
}

func handleSignals(ctx context.Context, cancelCtx context.CancelFunc, callback func()) {
	sig := make(chan os.Signal, 1)

	signal.Notify(sig, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	const shutdownDuration = 30 * time.Second

	go func() {
		<-sig

		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownDuration)

		go func() {
			<-shutdownCtx.Done()

			if shutdownCtx.Err() == context.DeadlineExceeded {
				panic("graceful shutdown timed out.. forcing exit.")
			}
		}()

		callback()

		cancel()
		cancelCtx()
	}()
}
