// Package scheduler programa tareas periódicas con robfig/cron.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

// Job tarea programada. Recibe un ctx que se cancela al detener el scheduler.
type Job func(ctx context.Context) error

// Scheduler envoltorio de cron.Cron con logging y recuperación de panics.
type Scheduler struct {
	cron   *cron.Cron
	ctx    context.Context
	cancel context.CancelFunc
	log    zerolog.Logger
}

// New construye el scheduler en la zona horaria indicada ("" = local).
func New(timezone string, log zerolog.Logger) (*Scheduler, error) {
	loc := time.Local
	if timezone != "" {
		var err error
		loc, err = time.LoadLocation(timezone)
		if err != nil {
			return nil, fmt.Errorf("scheduler: zona horaria %q: %w", timezone, err)
		}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithParser(cronParser),
			cron.WithChain(cron.Recover(cronLogger{log}), cron.SkipIfStillRunning(cronLogger{log})),
		),
		ctx:    ctx,
		cancel: cancel,
		log:    log,
	}, nil
}

// Add registra job con la expresión spec (acepta segundos opcionales y descriptores como @daily).
func (s *Scheduler) Add(name, spec string, job Job) error {
	_, err := s.cron.AddFunc(spec, func() {
		start := time.Now()
		if err := job(s.ctx); err != nil {
			s.log.Error().Err(err).Str("job", name).Msg("scheduler: tarea fallida")
			return
		}
		s.log.Info().Str("job", name).Dur("took", time.Since(start)).Msg("scheduler: tarea completada")
	})
	if err != nil {
		return fmt.Errorf("scheduler: %s %q: %w", name, spec, err)
	}
	return nil
}

// Start arranca el scheduler en segundo plano.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop detiene la programación, cancela el ctx de las tareas y espera a las que estén corriendo.
func (s *Scheduler) Stop() {
	s.cancel()
	<-s.cron.Stop().Done()
}

// Entries número de tareas registradas.
func (s *Scheduler) Entries() int { return len(s.cron.Entries()) }

// cronLogger adapta zerolog a cron.Logger.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg("cron: " + msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg("cron: " + msg)
}
