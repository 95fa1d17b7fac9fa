package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"

	"github.com/codr1/canchas/internal/booking"
	"github.com/codr1/canchas/internal/config"
	"github.com/codr1/canchas/internal/db"
	dbgen "github.com/codr1/canchas/internal/db/generated"
	"github.com/codr1/canchas/internal/email"
	"github.com/codr1/canchas/internal/metrics"
)

const (
	JobReminders = "reservation_reminders"
	JobCleanup   = "schedule_cleanup"

	jobTimeout = 2 * time.Minute
)

// RegisterJobs adds the reminder and cleanup jobs to svc.
func RegisterJobs(svc *Service, cfg config.SchedulerConfig, database *db.DB, notifier *email.Notifier, loc *time.Location) error {
	if database == nil {
		return fmt.Errorf("scheduler jobs require database")
	}
	if loc == nil {
		loc = time.UTC
	}
	hoursBefore := time.Duration(cfg.ReminderHoursBefore) * time.Hour

	if _, err := svc.AddJob(JobReminders, cfg.ReminderCron, instrumented(JobReminders, func(ctx context.Context) error {
		if !notifier.Enabled() {
			log.Ctx(ctx).Debug().Msg("Reminder job skipped: email disabled")
			return nil
		}
		_, err := SendReminders(ctx, database, notifier, time.Now().In(loc), hoursBefore)
		return err
	}), gocron.WithSingletonMode(gocron.LimitModeReschedule)); err != nil {
		return fmt.Errorf("add reminder job: %w", err)
	}

	if _, err := svc.AddJob(JobCleanup, cfg.CleanupCron, instrumented(JobCleanup, func(ctx context.Context) error {
		_, err := CleanupHorarios(ctx, database, time.Now().In(loc), cfg.RetentionDays)
		return err
	}), gocron.WithSingletonMode(gocron.LimitModeReschedule)); err != nil {
		return fmt.Errorf("add cleanup job: %w", err)
	}
	return nil
}

// instrumented gives a job its own logger and timeout and records its
// duration and result.
func instrumented(name string, run func(ctx context.Context) error) func() {
	return func() {
		logger := log.With().Str("component", "scheduler").Str("job_name", name).Logger()
		ctx, cancel := context.WithTimeout(logger.WithContext(context.Background()), jobTimeout)
		defer cancel()

		start := time.Now()
		err := run(ctx)
		metrics.RecordJobRun(name, time.Since(start), err == nil)
		if err != nil {
			logger.Error().Err(err).Msg("Scheduler job failed")
		}
	}
}

// SendReminders emails every reservation starting within the next window
// that has not been reminded yet and marks it reminded. Delivery failures
// leave the reservation for the next run, as does a disabled notifier.
func SendReminders(ctx context.Context, database *db.DB, notifier *email.Notifier, now time.Time, window time.Duration) (int, error) {
	if !notifier.Enabled() {
		return 0, nil
	}
	logger := log.Ctx(ctx)
	until := now.Add(window)

	rows, err := database.Queries.ListReservasPendingReminder(ctx, dbgen.ListReservasPendingReminderParams{
		Desde: now.Format(booking.DateLayout),
		Hasta: until.Format(booking.DateLayout),
	})
	if err != nil {
		return 0, fmt.Errorf("list pending reminders: %w", err)
	}

	sent := 0
	for _, row := range rows {
		starts, ok := startInstant(row.Fecha, row.HoraReservaInicio, now.Location())
		if !ok {
			logger.Warn().Int64("reserva_id", row.ID).Msg("Skipping reminder for malformed reservation")
			continue
		}
		if starts.Before(now) || starts.After(until) {
			continue
		}

		msg := email.BuildReminder(email.ReservaDetails{
			CanchaNombre: row.CanchaNombre,
			Fecha:        row.Fecha,
			Inicio:       row.HoraReservaInicio,
			Fin:          row.HoraReservaFin,
		})
		if err := notifier.Send(ctx, email.KindReminder, row.UsuarioEmail, msg); err != nil {
			continue
		}
		if err := database.Queries.MarkReservaReminded(ctx, row.ID); err != nil {
			return sent, fmt.Errorf("mark reminder %d: %w", row.ID, err)
		}
		sent++
	}

	if sent > 0 {
		logger.Info().Int("sent", sent).Msg("Reservation reminders sent")
	}
	return sent, nil
}

func startInstant(fecha, inicio string, loc *time.Location) (time.Time, bool) {
	day, err := booking.ParseDate(fecha, loc)
	if err != nil {
		return time.Time{}, false
	}
	start, err := booking.ParseTimeOfDay(inicio)
	if err != nil {
		return time.Time{}, false
	}
	return start.On(day, loc), true
}

// CleanupHorarios deletes schedules dated more than retentionDays before
// now, cascading their reservations.
func CleanupHorarios(ctx context.Context, database *db.DB, now time.Time, retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	cutoff := now.AddDate(0, 0, -retentionDays).Format(booking.DateLayout)

	deleted, err := database.Queries.DeleteHorariosBefore(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("delete schedules before %s: %w", cutoff, err)
	}
	if deleted > 0 {
		log.Ctx(ctx).Info().Int64("deleted", deleted).Str("cutoff", cutoff).Msg("Old schedules removed")
	}
	return deleted, nil
}
