package apiutil

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/codr1/canchas/internal/booking"
	dbgen "github.com/codr1/canchas/internal/db/generated"
)

var ErrPastReservation = errors.New("reservation starts in the past")

// HorarioWindow parses a stored schedule into its range.
func HorarioWindow(h dbgen.Horario) (booking.Range, error) {
	window, err := booking.ParseRange(h.HoraInicio, h.HoraFin)
	if err != nil {
		return booking.Range{}, fmt.Errorf("horario %d: %w", h.ID, err)
	}
	return window, nil
}

// ReservaRanges parses stored reservations into ranges.
func ReservaRanges(reservas []dbgen.Reserva) ([]booking.Range, error) {
	ranges := make([]booking.Range, 0, len(reservas))
	for _, r := range reservas {
		rng, err := booking.ParseRange(r.HoraReservaInicio, r.HoraReservaFin)
		if err != nil {
			return nil, fmt.Errorf("reserva %d: %w", r.ID, err)
		}
		ranges = append(ranges, rng)
	}
	return ranges, nil
}

// BookedRanges loads the ranges already reserved inside a schedule.
func BookedRanges(ctx context.Context, q *dbgen.Queries, horarioID int64) ([]booking.Range, error) {
	reservas, err := q.ListReservasByHorario(ctx, horarioID)
	if err != nil {
		return nil, fmt.Errorf("list reservas: %w", err)
	}
	return ReservaRanges(reservas)
}

// EnsureRangeAvailable runs every check a reservation must pass. Call it
// inside the transaction that inserts the reservation so no concurrent
// booking can slip in between the check and the write.
func EnsureRangeAvailable(ctx context.Context, q *dbgen.Queries, h dbgen.Horario, requested booking.Range, now time.Time) error {
	window, err := HorarioWindow(h)
	if err != nil {
		return err
	}
	booked, err := BookedRanges(ctx, q, h.ID)
	if err != nil {
		return err
	}
	return CheckAvailability(window, booked, h.Fecha, requested, now)
}

// CheckAvailability validates requested against the window on fecha and
// the ranges already booked in it.
func CheckAvailability(window booking.Range, booked []booking.Range, fecha string, requested booking.Range, now time.Time) error {
	if err := requested.Validate(); err != nil {
		return err
	}
	if StartsInPast(fecha, requested.Start, now) {
		return ErrPastReservation
	}
	return booking.CheckReservation(window, booked, requested)
}

// StartsInPast reports whether start on fecha is before now, using now's zone.
// Unparseable dates count as past.
func StartsInPast(fecha string, start booking.TimeOfDay, now time.Time) bool {
	day, err := booking.ParseDate(fecha, now.Location())
	if err != nil {
		return true
	}
	return start.On(day, now.Location()).Before(now)
}

const (
	MsgFormatoHora    = "Formato de hora inválido."
	MsgFueraDeHorario = "El rango de horas no es válido dentro del horario disponible."
	MsgYaReservado    = "Este horario ya está reservado."
	MsgHorarioPasado  = "No puedes reservar un horario que ya pasó."
)

// AvailabilityMessage maps a failed availability check to the text shown
// to users. ok is false for errors that are not the user's fault.
func AvailabilityMessage(err error) (msg string, ok bool) {
	var conflict booking.ConflictError
	switch {
	case errors.As(err, &conflict):
		return MsgYaReservado, true
	case errors.Is(err, booking.ErrOutsideWindow), errors.Is(err, booking.ErrInvalidRange):
		return MsgFueraDeHorario, true
	case errors.Is(err, booking.ErrInvalidTime):
		return MsgFormatoHora, true
	case errors.Is(err, ErrPastReservation):
		return MsgHorarioPasado, true
	default:
		return "", false
	}
}
