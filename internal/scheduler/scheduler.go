package scheduler

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/rs/zerolog/log"
	"ulascansenturk/weather-etl/internal/service"
)

// Scheduler triggers the weather pipeline on a cron schedule.
type Scheduler struct {
	scheduler *gocron.Scheduler
	pipeline  service.Pipeline
	schedule  string

	succeeded atomic.Int64
	failed    atomic.Int64
}

func New(schedule string, pipeline service.Pipeline) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	// a run that overruns its interval makes the next trigger a no-op
	s.SingletonModeAll()

	return &Scheduler{
		scheduler: s,
		pipeline:  pipeline,
		schedule:  schedule,
	}
}

// Start registers the pipeline job and starts the scheduler asynchronously.
func (s *Scheduler) Start() error {
	_, err := s.scheduler.Cron(s.schedule).Do(s.runPipeline)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()

	log.Info().Str("schedule", s.schedule).Strs("steps", s.pipeline.Steps()).Msg("scheduler started")

	return nil
}

// RunNow triggers the pipeline job immediately.
func (s *Scheduler) RunNow() {
	s.scheduler.RunAll()
}

// Stop stops the scheduler and cancels any future runs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}

func (s *Scheduler) Succeeded() int64 {
	return s.succeeded.Load()
}

func (s *Scheduler) Failed() int64 {
	return s.failed.Load()
}

func (s *Scheduler) runPipeline() {
	if _, err := s.pipeline.Run(context.Background()); err != nil {
		s.failed.Add(1)
		log.Error().Err(err).Msg("scheduled weather pipeline run failed")
		return
	}

	s.succeeded.Add(1)
}
