// Package scheduler registra los jobs periódicos del servicio sobre robfig/cron.
package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Job trabajo programado.
type Job struct {
	Name     string
	Schedule string // expresión cron estándar o descriptor (@every 1h, @daily)
	Run      func()
}

// Start registra los jobs y arranca el scheduler. Jobs con Schedule vacío se omiten.
// El caller debe llamar Stop() al apagar.
func Start(log zerolog.Logger, jobs ...Job) (*cron.Cron, error) {
	c := cron.New(cron.WithChain(cron.Recover(cronLogger{log: log})))
	for _, j := range jobs {
		if j.Schedule == "" {
			log.Info().Str("job", j.Name).Msg("job deshabilitado")
			continue
		}
		run := j.Run
		if _, err := c.AddFunc(j.Schedule, func() { run() }); err != nil {
			return nil, fmt.Errorf("registrar job %s: %w", j.Name, err)
		}
		log.Info().Str("job", j.Name).Str("schedule", j.Schedule).Msg("job programado")
	}
	c.Start()
	return c, nil
}

// cronLogger adapta zerolog a cron.Logger.
type cronLogger struct {
	log zerolog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Debug().Fields(keysAndValues).Msg(msg)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error().Err(err).Fields(keysAndValues).Msg(msg)
}
