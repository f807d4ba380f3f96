package scheduler

import (
	"context"
	"log"
	"runtime/debug"
	"time"

	"github.com/go-co-op/gocron/v2"
)

type taskFn func(ctx context.Context) error

// Scheduler envuelve gocron para los jobs periódicos (renovación de credencial,
// snapshots del portafolio)
type Scheduler struct {
	scheduler gocron.Scheduler
}

func New() *Scheduler {
	s, err := gocron.NewScheduler()
	if err != nil {
		panic(err.Error())
	}
	return &Scheduler{scheduler: s}
}

func (s *Scheduler) Start() {
	s.scheduler.Start()
}

func (s *Scheduler) Stop() {
	_ = s.scheduler.Shutdown()
}

// NewIntervalJob registra un job que corre cada interval; con startImmediately
// la primera ejecución es al arrancar
func (s *Scheduler) NewIntervalJob(name string, fn taskFn, interval time.Duration, startImmediately bool) {
	opts := []gocron.JobOption{gocron.WithSingletonMode(gocron.LimitModeReschedule)}
	if startImmediately {
		opts = append(opts, gocron.WithStartAt(gocron.WithStartImmediately()))
	}

	_, err := s.scheduler.NewJob(
		gocron.DurationJob(interval),
		gocron.NewTask(s.taskWithRecover(fn, name)),
		opts...,
	)
	if err != nil {
		log.Printf("Error al crear el job %s: %v", name, err)
		panic(err.Error())
	}
}

func (s *Scheduler) taskWithRecover(fn taskFn, jobName string) func(ctx context.Context) {
	return func(ctx context.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("Panic recuperado en el job %s: %v\n%s", jobName, r, debug.Stack())
			}
		}()

		if err := fn(ctx); err != nil {
			log.Printf("El job %s falló: %v", jobName, err)
		}
	}
}
