// internal/api/canchas/detail.go
package canchas

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/codr1/canchas/internal/api/apiutil"
	"github.com/codr1/canchas/internal/booking"
	dbgen "github.com/codr1/canchas/internal/db/generated"
	"github.com/codr1/canchas/internal/models"
	canchastempl "github.com/codr1/canchas/internal/templates/components/canchas"
)

// GET /canchas/{id}/{slug}
func HandleDetail(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), canchasQueryTimeout)
	defer cancel()

	cancha, err := lookupCancha(ctx, q, r)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(w, r)
			return
		}
		logger.Error().Err(err).Msg("Failed to load court")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data, err := buildDetail(ctx, q, cancha, user.ID)
	if err != nil {
		logger.Error().Err(err).Int64("cancha_id", cancha.ID).Msg("Failed to assemble court detail")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	renderPage(w, r, http.StatusOK, cancha.Nombre, canchastempl.Detail(data))
}

func buildDetail(ctx context.Context, q *dbgen.Queries, cancha dbgen.Cancha, userID int64) (canchastempl.DetailData, error) {
	hoy := apiutil.Now().Format(booking.DateLayout)
	data := canchastempl.DetailData{
		Cancha:        canchastempl.NewCanchaView(cancha),
		EsResponsable: cancha.ResponsableID == userID,
		Horas:         booking.HourLabels(),
		Hoy:           hoy,
	}

	direccion, err := q.GetFirstDireccionByCancha(ctx, cancha.ID)
	switch {
	case err == nil:
		data.Direccion = canchastempl.NewDireccionView(direccion)
	case !errors.Is(err, sql.ErrNoRows):
		return data, fmt.Errorf("load address: %w", err)
	}

	rating, err := q.GetCanchaRating(ctx, cancha.ID)
	if err != nil {
		return data, fmt.Errorf("load rating: %w", err)
	}
	data.TotalResenas = rating.Total
	if rating.Promedio.Valid {
		avg := models.RoundRating(rating.Promedio.Float64)
		data.Calificacion = &avg
	}

	resenas, err := q.ListResenasByCancha(ctx, cancha.ID)
	if err != nil {
		return data, fmt.Errorf("list reviews: %w", err)
	}
	data.Resenas = canchastempl.NewResenaViews(resenas)
	for i, row := range resenas {
		if row.UsuarioID == userID {
			mine := data.Resenas[i]
			data.MiResena = &mine
			break
		}
	}

	horarios, err := q.ListHorariosFromDate(ctx, dbgen.ListHorariosFromDateParams{CanchaID: cancha.ID, Fecha: hoy})
	if err != nil {
		return data, fmt.Errorf("list schedules: %w", err)
	}
	reservas, err := q.ListReservasForCanchaFromDate(ctx, dbgen.ListReservasForCanchaFromDateParams{CanchaID: cancha.ID, Fecha: hoy})
	if err != nil {
		return data, fmt.Errorf("list reservations: %w", err)
	}

	dias, err := groupHorarios(horarios, reservas)
	if err != nil {
		return data, err
	}
	data.Dias = dias
	return data, nil
}

// groupHorarios groups date-ordered schedules by day and lays out their
// hourly slots against the stored reservations.
func groupHorarios(horarios []dbgen.Horario, reservas []dbgen.ListReservasForCanchaFromDateRow) ([]canchastempl.DiaHorarios, error) {
	booked := make(map[int64][]booking.Range, len(horarios))
	for _, res := range reservas {
		rng, err := booking.ParseRange(res.HoraReservaInicio, res.HoraReservaFin)
		if err != nil {
			return nil, fmt.Errorf("reservation %d: %w", res.ID, err)
		}
		booked[res.HorarioID] = append(booked[res.HorarioID], rng)
	}

	var dias []canchastempl.DiaHorarios
	for _, h := range horarios {
		window, err := apiutil.HorarioWindow(h)
		if err != nil {
			return nil, fmt.Errorf("schedule %d: %w", h.ID, err)
		}
		view := canchastempl.HorarioView{
			ID:     h.ID,
			Inicio: window.Start.String(),
			Fin:    window.End.String(),
			Slots:  booking.HourSlots(window, booked[h.ID]),
			Libres: booking.FreeRanges(window, booked[h.ID]),
		}
		if n := len(dias); n > 0 && dias[n-1].Fecha == h.Fecha {
			dias[n-1].Horarios = append(dias[n-1].Horarios, view)
			continue
		}
		dias = append(dias, canchastempl.DiaHorarios{Fecha: h.Fecha, Horarios: []canchastempl.HorarioView{view}})
	}
	return dias, nil
}
