// internal/api/reservas/handlers.go
package reservas

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/canchas/internal/api/apiutil"
	"github.com/codr1/canchas/internal/api/authz"
	"github.com/codr1/canchas/internal/api/flash"
	"github.com/codr1/canchas/internal/booking"
	appdb "github.com/codr1/canchas/internal/db"
	dbgen "github.com/codr1/canchas/internal/db/generated"
	"github.com/codr1/canchas/internal/email"
	"github.com/codr1/canchas/internal/metrics"
	"github.com/codr1/canchas/internal/request"
	reservastempl "github.com/codr1/canchas/internal/templates/components/reservas"
	"github.com/codr1/canchas/internal/templates/layouts"
)

const reservasQueryTimeout = 5 * time.Second

const (
	misReservasPath        = "/reservas"
	msgReservaNoExiste     = "La reserva que intentas ver ya no existe."
	msgReservaCancelada    = "Reserva cancelada exitosamente."
	msgHorarioNoExiste     = "El horario ya no existe."
	reservaExitosaTemplate = "Reserva exitosa: %s - %s"
)

var (
	queries           *dbgen.Queries
	store             *appdb.DB
	notifier          *email.Notifier
	pricePerHourCents int64
	queriesOnce       sync.Once
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(database *appdb.DB, mailer *email.Notifier, priceCents int64) {
	if database == nil {
		return
	}
	queriesOnce.Do(func() {
		queries = database.Queries
		store = database
		notifier = mailer
		pricePerHourCents = priceCents
	})
}

func loadQueries() *dbgen.Queries {
	return queries
}

func loadDB() *appdb.DB {
	return store
}

// reserve checks availability and inserts the reservation in one
// transaction. Availability failures are returned unwrapped.
func reserve(ctx context.Context, database *appdb.DB, userID int64, h dbgen.Horario, requested booking.Range, now time.Time) (dbgen.Reserva, error) {
	var reserva dbgen.Reserva
	err := database.RunInTx(ctx, func(txdb *appdb.DB) error {
		qtx := txdb.Queries

		if err := apiutil.EnsureRangeAvailable(ctx, qtx, h, requested, now); err != nil {
			return err
		}

		var err error
		reserva, err = qtx.CreateReserva(ctx, dbgen.CreateReservaParams{
			UsuarioID:         userID,
			HorarioID:         h.ID,
			HoraReservaInicio: requested.Start.String(),
			HoraReservaFin:    requested.End.String(),
		})
		if err != nil {
			if apiutil.IsSQLiteForeignKeyViolation(err) {
				return apiutil.HandlerError{Status: http.StatusNotFound, Message: msgHorarioNoExiste, Err: err}
			}
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to create reservation", Err: err}
		}
		return nil
	})
	return reserva, err
}

// reservationOutcome classifies a reserve error for metrics.
func reservationOutcome(err error) string {
	var conflict booking.ConflictError
	switch {
	case err == nil:
		return metrics.OutcomeCreated
	case errors.As(err, &conflict):
		return metrics.OutcomeConflict
	case errors.Is(err, booking.ErrOutsideWindow), errors.Is(err, booking.ErrInvalidRange):
		return metrics.OutcomeOutsideWindow
	case errors.Is(err, apiutil.ErrPastReservation):
		return metrics.OutcomePast
	case errors.Is(err, booking.ErrInvalidTime):
		return metrics.OutcomeInvalid
	default:
		return metrics.OutcomeError
	}
}

func sendConfirmation(ctx context.Context, user *authz.AuthUser, canchaNombre, fecha string, reserva dbgen.Reserva) {
	notifier.SendAsync(ctx, email.KindConfirmation, user.Email, email.BuildConfirmation(email.ReservaDetails{
		Username:     user.Username,
		CanchaNombre: canchaNombre,
		Fecha:        fecha,
		Inicio:       reserva.HoraReservaInicio,
		Fin:          reserva.HoraReservaFin,
	}))
}

// cancel deletes the caller's reservation and queues the cancellation email.
// It returns sql.ErrNoRows when the reservation is not the caller's.
func cancel(ctx context.Context, q *dbgen.Queries, user *authz.AuthUser, reservaID int64) error {
	if _, err := q.GetReservaForUsuario(ctx, dbgen.GetReservaForUsuarioParams{ID: reservaID, UsuarioID: user.ID}); err != nil {
		return err
	}
	details, err := q.GetReservaDetails(ctx, reservaID)
	if err != nil {
		return fmt.Errorf("load reservation details: %w", err)
	}
	deleted, err := q.DeleteReservaForUsuario(ctx, dbgen.DeleteReservaForUsuarioParams{ID: reservaID, UsuarioID: user.ID})
	if err != nil {
		return fmt.Errorf("delete reservation: %w", err)
	}
	if deleted == 0 {
		return sql.ErrNoRows
	}

	metrics.RecordCancellation()
	notifier.SendAsync(ctx, email.KindCancellation, details.UsuarioEmail, email.BuildCancellation(email.ReservaDetails{
		Username:     user.Username,
		CanchaNombre: details.CanchaNombre,
		Fecha:        details.Fecha,
		Inicio:       details.HoraReservaInicio,
		Fin:          details.HoraReservaFin,
	}))
	return nil
}

// POST /canchas/{id}/{slug}/horarios/{horario_id}/{inicio}/{fin}/reservar
func HandleReserve(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	user, ok := apiutil.RequirePageUser(w, r)
	if !ok {
		return
	}
	database := loadDB()
	if database == nil {
		logger.Error().Msg("Database not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancelCtx := context.WithTimeout(r.Context(), reservasQueryTimeout)
	defer cancelCtx()

	canchaID, ok := request.PathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	cancha, err := database.Queries.GetCanchaByIDAndSlug(ctx, dbgen.GetCanchaByIDAndSlugParams{ID: canchaID, Slug: r.PathValue("slug")})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(w, r)
			return
		}
		logger.Error().Err(err).Int64("cancha_id", canchaID).Msg("Failed to load court")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	detailURL := layouts.CanchaPath(cancha.ID, cancha.Slug)

	fail := func(msg string) {
		flash.Error(w, r, msg)
		http.Redirect(w, r, detailURL, http.StatusSeeOther)
	}

	horarioID, ok := request.PathID(r, "horario_id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	horario, err := database.Queries.GetHorarioForCancha(ctx, dbgen.GetHorarioForCanchaParams{ID: horarioID, CanchaID: cancha.ID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			fail(msgHorarioNoExiste)
			return
		}
		logger.Error().Err(err).Int64("horario_id", horarioID).Msg("Failed to load schedule")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	requested, err := booking.ParseRange(r.PathValue("inicio"), r.PathValue("fin"))
	if err != nil && !errors.Is(err, booking.ErrInvalidRange) {
		metrics.RecordReservation(metrics.OutcomeInvalid)
		fail(apiutil.MsgFormatoHora)
		return
	}

	reserva, err := reserve(ctx, database, user.ID, horario, requested, apiutil.Now())
	metrics.RecordReservation(reservationOutcome(err))
	if err != nil {
		if msg, ok := apiutil.AvailabilityMessage(err); ok {
			logger.Info().
				Err(err).
				Int64("horario_id", horario.ID).
				Str("rango", requested.String()).
				Msg("Reservation rejected")
			fail(msg)
			return
		}
		var herr apiutil.HandlerError
		if errors.As(err, &herr) && herr.Status == http.StatusNotFound {
			fail(herr.Message)
			return
		}
		logger.Error().Err(err).Int64("horario_id", horario.ID).Msg("Failed to reserve")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	logger.Info().
		Int64("reserva_id", reserva.ID).
		Int64("horario_id", horario.ID).
		Int64("cancha_id", cancha.ID).
		Str("rango", requested.String()).
		Msg("Reservation created")
	sendConfirmation(r.Context(), user, cancha.Nombre, horario.Fecha, reserva)
	flash.Success(w, r, fmt.Sprintf(reservaExitosaTemplate, reserva.HoraReservaInicio, reserva.HoraReservaFin))
	http.Redirect(w, r, detailURL, http.StatusSeeOther)
}

// POST /reservas/{id}/cancelar
func HandleCancel(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	user, ok := apiutil.RequirePageUser(w, r)
	if !ok {
		return
	}
	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	reservaID, ok := request.PathID(r, "id")
	if !ok {
		flash.Error(w, r, msgReservaNoExiste)
		http.Redirect(w, r, misReservasPath, http.StatusSeeOther)
		return
	}

	ctx, cancelCtx := context.WithTimeout(r.Context(), reservasQueryTimeout)
	defer cancelCtx()

	if err := cancel(ctx, q, user, reservaID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			logger.Info().Int64("reserva_id", reservaID).Msg("Cancel requested for missing reservation")
			flash.Error(w, r, msgReservaNoExiste)
			http.Redirect(w, r, misReservasPath, http.StatusSeeOther)
			return
		}
		logger.Error().Err(err).Int64("reserva_id", reservaID).Msg("Failed to cancel reservation")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("reserva_id", reservaID).Msg("Reservation cancelled")
	flash.Success(w, r, msgReservaCancelada)
	http.Redirect(w, r, misReservasPath, http.StatusSeeOther)
}

// GET /reservas
func HandleMisReservas(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	user, ok := apiutil.RequirePageUser(w, r)
	if !ok {
		return
	}
	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancelCtx := context.WithTimeout(r.Context(), reservasQueryTimeout)
	defer cancelCtx()

	rows, err := q.ListReservasByUsuario(ctx, user.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list reservations")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	page := layouts.Base(apiutil.NewPage(w, r, "Mis reservas"), reservastempl.MisReservas(misReservasItems(rows, apiutil.Now())))
	apiutil.RenderHTMLComponent(r.Context(), w, page, nil, "Failed to render reservations page", "Failed to render page")
}

// misReservasItems lists upcoming reservations before finished ones. rows
// are ordered by date and start time.
func misReservasItems(rows []dbgen.ListReservasByUsuarioRow, now time.Time) []reservastempl.Item {
	upcoming := make([]reservastempl.Item, 0, len(rows))
	var past []reservastempl.Item
	for _, row := range rows {
		item := reservastempl.Item{
			ID:           row.ID,
			CanchaID:     row.CanchaID,
			CanchaNombre: row.CanchaNombre,
			CanchaSlug:   row.CanchaSlug,
			Fecha:        row.Fecha,
			Inicio:       row.HoraReservaInicio,
			Fin:          row.HoraReservaFin,
			PrecioCents:  apiutil.ReservationPrice(row.HoraReservaInicio, row.HoraReservaFin, pricePerHourCents),
		}
		if end, err := booking.ParseTimeOfDay(row.HoraReservaFin); err == nil && apiutil.StartsInPast(row.Fecha, end, now) {
			item.Pasada = true
			past = append(past, item)
			continue
		}
		upcoming = append(upcoming, item)
	}
	return append(upcoming, past...)
}
