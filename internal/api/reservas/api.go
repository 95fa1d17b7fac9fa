// internal/api/reservas/api.go
package reservas

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/codr1/canchas/internal/api/apiutil"
	"github.com/codr1/canchas/internal/booking"
	dbgen "github.com/codr1/canchas/internal/db/generated"
	"github.com/codr1/canchas/internal/metrics"
	"github.com/codr1/canchas/internal/request"
)

type reservaRequest struct {
	HorarioID         int64  `json:"horario_id"`
	HoraReservaInicio string `json:"hora_reserva_inicio"`
	HoraReservaFin    string `json:"hora_reserva_fin"`
}

type reservaResponse struct {
	ID                int64  `json:"id"`
	HorarioID         int64  `json:"horario_id"`
	CanchaID          int64  `json:"cancha_id,omitempty"`
	CanchaNombre      string `json:"cancha_nombre,omitempty"`
	Fecha             string `json:"fecha"`
	HoraReservaInicio string `json:"hora_reserva_inicio"`
	HoraReservaFin    string `json:"hora_reserva_fin"`
	PrecioCents       int64  `json:"precio_cents"`
}

func priced(resp reservaResponse) reservaResponse {
	resp.PrecioCents = apiutil.ReservationPrice(resp.HoraReservaInicio, resp.HoraReservaFin, pricePerHourCents)
	return resp
}

func internalError(w http.ResponseWriter) {
	apiutil.WriteAPIError(w, http.StatusInternalServerError, "Internal server error")
}

// GET /api/reservas/
func HandleAPIList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	user, ok := apiutil.RequireAPIUser(w, r)
	if !ok {
		return
	}
	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		internalError(w)
		return
	}

	ctx, cancelCtx := context.WithTimeout(r.Context(), reservasQueryTimeout)
	defer cancelCtx()

	rows, err := q.ListReservasByUsuario(ctx, user.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list reservations")
		internalError(w)
		return
	}

	resp := make([]reservaResponse, 0, len(rows))
	for _, row := range rows {
		resp = append(resp, priced(reservaResponse{
			ID:                row.ID,
			HorarioID:         row.HorarioID,
			CanchaID:          row.CanchaID,
			CanchaNombre:      row.CanchaNombre,
			Fecha:             row.Fecha,
			HoraReservaInicio: row.HoraReservaInicio,
			HoraReservaFin:    row.HoraReservaFin,
		}))
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, resp); err != nil {
		logger.Error().Err(err).Msg("Failed to write reservations")
	}
}

// POST /api/reservas/
//
// Validation mirrors the reserve form: 400 for bad input, 409 on overlap.
func HandleAPICreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	user, ok := apiutil.RequireAPIUser(w, r)
	if !ok {
		return
	}
	database := loadDB()
	if database == nil {
		logger.Error().Msg("Database not initialized")
		internalError(w)
		return
	}

	var req reservaRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteAPIError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}

	ctx, cancelCtx := context.WithTimeout(r.Context(), reservasQueryTimeout)
	defer cancelCtx()

	horario, err := database.Queries.GetHorario(ctx, req.HorarioID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteAPIError(w, http.StatusBadRequest, msgHorarioNoExiste)
			return
		}
		logger.Error().Err(err).Int64("horario_id", req.HorarioID).Msg("Failed to load schedule")
		internalError(w)
		return
	}

	requested, err := booking.ParseRange(req.HoraReservaInicio, req.HoraReservaFin)
	if err != nil && !errors.Is(err, booking.ErrInvalidRange) {
		metrics.RecordReservation(metrics.OutcomeInvalid)
		apiutil.WriteAPIError(w, http.StatusBadRequest, apiutil.MsgFormatoHora)
		return
	}

	reserva, err := reserve(ctx, database, user.ID, horario, requested, apiutil.Now())
	metrics.RecordReservation(reservationOutcome(err))
	if err != nil {
		var conflict booking.ConflictError
		if errors.As(err, &conflict) {
			apiutil.WriteAPIError(w, http.StatusConflict, apiutil.MsgYaReservado)
			return
		}
		if msg, ok := apiutil.AvailabilityMessage(err); ok {
			apiutil.WriteAPIError(w, http.StatusBadRequest, msg)
			return
		}
		var herr apiutil.HandlerError
		if errors.As(err, &herr) && herr.Status == http.StatusNotFound {
			apiutil.WriteAPIError(w, http.StatusBadRequest, herr.Message)
			return
		}
		logger.Error().Err(err).Int64("horario_id", horario.ID).Msg("Failed to reserve")
		internalError(w)
		return
	}

	cancha, err := database.Queries.GetCanchaByID(ctx, horario.CanchaID)
	if err != nil {
		logger.Warn().Err(err).Int64("cancha_id", horario.CanchaID).Msg("Failed to load court for confirmation")
	} else {
		sendConfirmation(r.Context(), user, cancha.Nombre, horario.Fecha, reserva)
	}

	logger.Info().
		Int64("reserva_id", reserva.ID).
		Int64("horario_id", horario.ID).
		Str("rango", requested.String()).
		Msg("Reservation created via API")
	resp := priced(reservaResponse{
		ID:                reserva.ID,
		HorarioID:         reserva.HorarioID,
		CanchaID:          horario.CanchaID,
		CanchaNombre:      cancha.Nombre,
		Fecha:             horario.Fecha,
		HoraReservaInicio: reserva.HoraReservaInicio,
		HoraReservaFin:    reserva.HoraReservaFin,
	})
	if err := apiutil.WriteJSON(w, http.StatusCreated, resp); err != nil {
		logger.Error().Err(err).Msg("Failed to write reservation")
	}
}

// GET /api/reservas/{id}/
func HandleAPIGet(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	user, ok := apiutil.RequireAPIUser(w, r)
	if !ok {
		return
	}
	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		internalError(w)
		return
	}
	id, ok := request.PathID(r, "id")
	if !ok {
		apiutil.WriteAPIError(w, http.StatusNotFound, "Not found.")
		return
	}

	ctx, cancelCtx := context.WithTimeout(r.Context(), reservasQueryTimeout)
	defer cancelCtx()

	reserva, err := q.GetReservaForUsuario(ctx, dbgen.GetReservaForUsuarioParams{ID: id, UsuarioID: user.ID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteAPIError(w, http.StatusNotFound, "Not found.")
			return
		}
		logger.Error().Err(err).Int64("reserva_id", id).Msg("Failed to load reservation")
		internalError(w)
		return
	}
	details, err := q.GetReservaDetails(ctx, reserva.ID)
	if err != nil {
		logger.Error().Err(err).Int64("reserva_id", id).Msg("Failed to load reservation details")
		internalError(w)
		return
	}

	resp := priced(reservaResponse{
		ID:                reserva.ID,
		HorarioID:         reserva.HorarioID,
		CanchaNombre:      details.CanchaNombre,
		Fecha:             details.Fecha,
		HoraReservaInicio: reserva.HoraReservaInicio,
		HoraReservaFin:    reserva.HoraReservaFin,
	})
	if err := apiutil.WriteJSON(w, http.StatusOK, resp); err != nil {
		logger.Error().Err(err).Msg("Failed to write reservation")
	}
}

// DELETE /api/reservas/{id}/
func HandleAPIDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	user, ok := apiutil.RequireAPIUser(w, r)
	if !ok {
		return
	}
	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		internalError(w)
		return
	}
	id, ok := request.PathID(r, "id")
	if !ok {
		apiutil.WriteAPIError(w, http.StatusNotFound, "Not found.")
		return
	}

	ctx, cancelCtx := context.WithTimeout(r.Context(), reservasQueryTimeout)
	defer cancelCtx()

	if err := cancel(ctx, q, user, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteAPIError(w, http.StatusNotFound, "Not found.")
			return
		}
		logger.Error().Err(err).Int64("reserva_id", id).Msg("Failed to cancel reservation")
		internalError(w)
		return
	}

	logger.Info().Int64("reserva_id", id).Msg("Reservation cancelled via API")
	w.WriteHeader(http.StatusNoContent)
}
