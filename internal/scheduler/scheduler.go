// Package scheduler runs periodic background jobs for a long-lived lgctl
// process — currently just the processed-blob cache GC job (see
// internal/cache.GCJob), wired in by cmd/lgctl's MCP server command.
package scheduler

import (
	"context"
	"log/slog"
	"time"
)

// Job is one periodic background task. Name identifies it in logs; Run
// does the work for a single tick and is responsible for its own
// timeout/cancellation handling via ctx.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// Scheduler runs a fixed set of Jobs, each on its own ticker, until
// Stop is called or the context passed to Start is done.
type Scheduler struct {
	logger *slog.Logger
	jobs   []scheduledJob
}

type scheduledJob struct {
	job      Job
	interval time.Duration
	ticker   *time.Ticker
	stop     chan struct{}
}

// NewScheduler creates an empty scheduler; call AddJob before Start.
func NewScheduler(logger *slog.Logger) *Scheduler {
	return &Scheduler{
		logger: logger,
		jobs:   make([]scheduledJob, 0),
	}
}

// AddJob registers job to run once per interval. Must be called before
// Start; jobs added afterward are never scheduled.
func (s *Scheduler) AddJob(job Job, interval time.Duration) {
	s.jobs = append(s.jobs, scheduledJob{
		job:      job,
		interval: interval,
		stop:     make(chan struct{}),
	})
}

// Start launches one goroutine per registered job, each ticking at its
// own interval until ctx is done or Stop is called.
func (s *Scheduler) Start(ctx context.Context) {
	for i := range s.jobs {
		sj := &s.jobs[i]
		sj.ticker = time.NewTicker(sj.interval)

		go func(sj *scheduledJob) {
			s.logger.Info("starting scheduled job",
				"job", sj.job.Name(),
				"interval", sj.interval)

			for {
				select {
				case <-sj.ticker.C:
					s.logger.Debug("running scheduled job", "job", sj.job.Name())
					if err := sj.job.Run(ctx); err != nil {
						s.logger.Error("scheduled job failed",
							"job", sj.job.Name(),
							"error", err)
					}
				case <-sj.stop:
					return
				case <-ctx.Done():
					return
				}
			}
		}(sj)
	}
}

// Stop halts every job's ticker and goroutine. Safe to call once after
// Start; the jobs themselves are not restartable afterward.
func (s *Scheduler) Stop() {
	for i := range s.jobs {
		if s.jobs[i].ticker != nil {
			s.jobs[i].ticker.Stop()
		}
		close(s.jobs[i].stop)
	}
	s.logger.Info("scheduler stopped")
}
