package scheduler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const defaultInterval = 60 * time.Second

var ErrNotStarted = errors.New("scheduler is not running")

// JobFunc is one run of a periodic job; execID tags its log lines.
type JobFunc func(ctx context.Context, execID string) error

// Backfiller imports the complete order history of one user.
type Backfiller interface {
	Run(ctx context.Context, telegramID int64) error
}

type PeriodicJob struct {
	Name     string
	Interval time.Duration
	Run      JobFunc
	// StartImmediately runs the job once on Start instead of after Interval.
	StartImmediately bool
}

type Scheduler struct {
	jobs       []PeriodicJob
	backfiller Backfiller
	// -----
	mu    sync.Mutex
	sched gocron.Scheduler
}

func (s *Scheduler) Start(ctx context.Context) error {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		return err
	}

	for _, pj := range s.jobs {
		if err = addPeriodic(scheduler, pj); err != nil {
			_ = scheduler.Shutdown()
			return fmt.Errorf("failed to add job %s: %w", pj.Name, err)
		}
	}

	s.mu.Lock()
	s.sched = scheduler
	s.mu.Unlock()
	scheduler.Start()

	// Stop scheduler when the provided context is canceled.
	go func() {
		<-ctx.Done()
		if sdErr := s.Shutdown(); sdErr != nil {
			logrus.Errorf("Scheduler shutdown error: %v", sdErr)
		}
	}()
	return nil
}

func addPeriodic(scheduler gocron.Scheduler, pj PeriodicJob) error {
	run := pj.Run
	name := pj.Name
	job := func(jobCtx context.Context) {
		execID := uuid.NewString()
		if jobErr := run(jobCtx, execID); jobErr != nil {
			logrus.Errorf("Job %s %s failed: %v", name, execID, jobErr)
		}
	}

	opts := []gocron.JobOption{
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	}
	if pj.StartImmediately {
		opts = append(opts, gocron.WithStartAt(gocron.WithStartImmediately()))
	}

	_, err := scheduler.NewJob(gocron.DurationJob(pj.Interval), gocron.NewTask(job), opts...)
	return err
}

// ScheduleBackfill queues a one-time history import for a user, started right away.
func (s *Scheduler) ScheduleBackfill(telegramID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sched == nil {
		return ErrNotStarted
	}

	job := func(jobCtx context.Context) {
		if runErr := s.backfiller.Run(jobCtx, telegramID); runErr != nil {
			logrus.WithError(runErr).WithField("telegram_id", telegramID).Error("Order history backfill failed")
		}
	}
	_, err := s.sched.NewJob(
		gocron.OneTimeJob(gocron.OneTimeJobStartImmediately()),
		gocron.NewTask(job),
		gocron.WithName(fmt.Sprintf("backfill-%d", telegramID)),
	)
	return err
}

func (s *Scheduler) Shutdown() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.sched == nil {
		return nil
	}
	err := s.sched.Shutdown()
	s.sched = nil
	return err
}

func NewScheduler(backfiller Backfiller, jobs ...PeriodicJob) *Scheduler {
	for i := range jobs {
		if jobs[i].Interval <= 0 {
			jobs[i].Interval = defaultInterval
		}
	}
	return &Scheduler{jobs: jobs, backfiller: backfiller}
}
