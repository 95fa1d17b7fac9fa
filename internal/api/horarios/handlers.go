// internal/api/horarios/handlers.go
package horarios

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/canchas/internal/api/apiutil"
	"github.com/codr1/canchas/internal/api/flash"
	"github.com/codr1/canchas/internal/booking"
	appdb "github.com/codr1/canchas/internal/db"
	dbgen "github.com/codr1/canchas/internal/db/generated"
	"github.com/codr1/canchas/internal/request"
	horariostempl "github.com/codr1/canchas/internal/templates/components/horarios"
	"github.com/codr1/canchas/internal/templates/layouts"
)

const horariosQueryTimeout = 5 * time.Second

const (
	msgFechaInvalida   = "La fecha no es válida."
	msgFechaPasada     = "No puedes crear horarios en fechas pasadas."
	msgRangoInvalido   = "La hora de inicio debe ser anterior a la hora de fin."
	msgHorarioSolapado = "El horario se superpone con otro horario de la cancha."
)

var (
	queries           *dbgen.Queries
	store             *appdb.DB
	pricePerHourCents int64
	queriesOnce       sync.Once
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(database *appdb.DB, priceCents int64) {
	if database == nil {
		return
	}
	queriesOnce.Do(func() {
		queries = database.Queries
		store = database
		pricePerHourCents = priceCents
	})
}

func loadQueries() *dbgen.Queries {
	return queries
}

func loadDB() *appdb.DB {
	return store
}

// ValidateHorario parses a new schedule window. fecha must not be before
// today in now's zone.
func ValidateHorario(fecha, inicio, fin string, now time.Time) (string, booking.Range, error) {
	day, err := booking.ParseDate(strings.TrimSpace(fecha), now.Location())
	if err != nil {
		return "", booking.Range{}, errors.New(msgFechaInvalida)
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return "", booking.Range{}, errors.New(msgFechaPasada)
	}
	window, err := booking.ParseRange(inicio, fin)
	if err != nil {
		if errors.Is(err, booking.ErrInvalidRange) {
			return "", booking.Range{}, errors.New(msgRangoInvalido)
		}
		return "", booking.Range{}, errors.New(apiutil.MsgFormatoHora)
	}
	return day.Format(booking.DateLayout), window, nil
}

// ownedCancha loads the path court and writes a 404 unless the caller owns it.
func ownedCancha(ctx context.Context, w http.ResponseWriter, r *http.Request, q *dbgen.Queries, userID int64) (dbgen.Cancha, bool) {
	logger := log.Ctx(r.Context())

	cancha, err := lookupCancha(ctx, q, r)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(w, r)
			return dbgen.Cancha{}, false
		}
		logger.Error().Err(err).Msg("Failed to load court")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return dbgen.Cancha{}, false
	}
	if cancha.ResponsableID != userID {
		logger.Warn().Int64("cancha_id", cancha.ID).Msg("Schedule change denied: not the owner")
		http.NotFound(w, r)
		return dbgen.Cancha{}, false
	}
	return cancha, true
}

func lookupCancha(ctx context.Context, q *dbgen.Queries, r *http.Request) (dbgen.Cancha, error) {
	id, ok := request.PathID(r, "id")
	if !ok {
		return dbgen.Cancha{}, sql.ErrNoRows
	}
	return q.GetCanchaByIDAndSlug(ctx, dbgen.GetCanchaByIDAndSlugParams{ID: id, Slug: r.PathValue("slug")})
}

// POST /canchas/{id}/{slug}/horarios
func HandleCreate(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), horariosQueryTimeout)
	defer cancel()

	cancha, ok := ownedCancha(ctx, w, r, database.Queries, user.ID)
	if !ok {
		return
	}
	detailURL := layouts.CanchaPath(cancha.ID, cancha.Slug) + "#horarios"

	fecha, window, err := ValidateHorario(r.FormValue("fecha"), r.FormValue("hora_inicio"), r.FormValue("hora_fin"), apiutil.Now())
	if err != nil {
		flash.Error(w, r, err.Error())
		http.Redirect(w, r, detailURL, http.StatusSeeOther)
		return
	}

	var horario dbgen.Horario
	err = database.RunInTx(ctx, func(txdb *appdb.DB) error {
		qtx := txdb.Queries

		overlapping, err := qtx.CountOverlappingHorarios(ctx, dbgen.CountOverlappingHorariosParams{
			CanchaID:   cancha.ID,
			Fecha:      fecha,
			HoraFin:    window.End.String(),
			HoraInicio: window.Start.String(),
		})
		if err != nil {
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to check overlapping schedules", Err: err}
		}
		if overlapping > 0 {
			return apiutil.HandlerError{Status: http.StatusConflict, Message: msgHorarioSolapado}
		}

		horario, err = qtx.CreateHorario(ctx, dbgen.CreateHorarioParams{
			CanchaID:   cancha.ID,
			Fecha:      fecha,
			HoraInicio: window.Start.String(),
			HoraFin:    window.End.String(),
		})
		if err != nil {
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to create schedule", Err: err}
		}
		return nil
	})
	if err != nil {
		var herr apiutil.HandlerError
		if errors.As(err, &herr) && herr.Status < http.StatusInternalServerError {
			flash.Error(w, r, herr.Message)
			http.Redirect(w, r, detailURL, http.StatusSeeOther)
			return
		}
		logger.Error().Err(err).Int64("cancha_id", cancha.ID).Msg("Failed to create schedule")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	logger.Info().
		Int64("cancha_id", cancha.ID).
		Int64("horario_id", horario.ID).
		Str("fecha", fecha).
		Str("rango", window.String()).
		Msg("Schedule created")
	flash.Success(w, r, "Horario creado exitosamente.")
	http.Redirect(w, r, detailURL, http.StatusSeeOther)
}

// POST /canchas/{id}/{slug}/horarios/{horario_id}/eliminar
func HandleDelete(w http.ResponseWriter, r *http.Request) {
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

	ctx, cancel := context.WithTimeout(r.Context(), horariosQueryTimeout)
	defer cancel()

	cancha, ok := ownedCancha(ctx, w, r, q, user.ID)
	if !ok {
		return
	}
	horarioID, ok := request.PathID(r, "horario_id")
	if !ok {
		http.NotFound(w, r)
		return
	}

	deleted, err := q.DeleteHorario(ctx, dbgen.DeleteHorarioParams{ID: horarioID, CanchaID: cancha.ID})
	if err != nil {
		logger.Error().Err(err).Int64("horario_id", horarioID).Msg("Failed to delete schedule")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if deleted == 0 {
		http.NotFound(w, r)
		return
	}

	logger.Info().Int64("cancha_id", cancha.ID).Int64("horario_id", horarioID).Msg("Schedule deleted")
	flash.Success(w, r, "Horario eliminado.")
	http.Redirect(w, r, layouts.CanchaPath(cancha.ID, cancha.Slug)+"#horarios", http.StatusSeeOther)
}

// GET /canchas/{id}/{slug}/horarios/{horario_id}/{inicio}/{fin}
func HandleDetail(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if _, ok := apiutil.RequirePageUser(w, r); !ok {
		return
	}
	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), horariosQueryTimeout)
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
	horarioID, ok := request.PathID(r, "horario_id")
	if !ok {
		http.NotFound(w, r)
		return
	}
	horario, err := q.GetHorarioForCancha(ctx, dbgen.GetHorarioForCanchaParams{ID: horarioID, CanchaID: cancha.ID})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(w, r)
			return
		}
		logger.Error().Err(err).Int64("horario_id", horarioID).Msg("Failed to load schedule")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	requested, err := booking.ParseRange(r.PathValue("inicio"), r.PathValue("fin"))
	if err != nil && !errors.Is(err, booking.ErrInvalidRange) {
		flash.Error(w, r, apiutil.MsgFormatoHora)
		http.Redirect(w, r, layouts.CanchaPath(cancha.ID, cancha.Slug), http.StatusSeeOther)
		return
	}

	owner, err := q.GetUserByID(ctx, cancha.ResponsableID)
	if err != nil {
		logger.Error().Err(err).Int64("cancha_id", cancha.ID).Msg("Failed to load court owner")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data, err := buildDetail(ctx, q, cancha, owner, horario, requested)
	if err != nil {
		logger.Error().Err(err).Int64("horario_id", horario.ID).Msg("Failed to assemble schedule detail")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	page := layouts.Base(apiutil.NewPage(w, r, "Horario"), horariostempl.Detail(data))
	apiutil.RenderHTMLComponent(r.Context(), w, page, nil, "Failed to render schedule page", "Failed to render page")
}

func buildDetail(ctx context.Context, q *dbgen.Queries, cancha dbgen.Cancha, owner dbgen.User, h dbgen.Horario, requested booking.Range) (horariostempl.DetailData, error) {
	window, err := apiutil.HorarioWindow(h)
	if err != nil {
		return horariostempl.DetailData{}, err
	}
	booked, err := apiutil.BookedRanges(ctx, q, h.ID)
	if err != nil {
		return horariostempl.DetailData{}, err
	}

	data := horariostempl.DetailData{
		CanchaID:     cancha.ID,
		CanchaNombre: cancha.Nombre,
		CanchaSlug:   cancha.Slug,
		Responsable:  owner.Username,
		HorarioID:    h.ID,
		Fecha:        h.Fecha,
		Ventana:      window.String(),
		Inicio:       requested.Start.String(),
		Fin:          requested.End.String(),
		Duracion:     FormatDuration(requested.Duration()),
		PrecioCents:  booking.Price(requested, pricePerHourCents),
		Disponible:   true,
	}
	for _, b := range booking.Merge(booked) {
		data.Reservados = append(data.Reservados, b.String())
	}

	if err := apiutil.CheckAvailability(window, booked, h.Fecha, requested, apiutil.Now()); err != nil {
		msg, ok := apiutil.AvailabilityMessage(err)
		if !ok {
			return horariostempl.DetailData{}, err
		}
		data.Disponible = false
		data.Motivo = msg
	}
	return data, nil
}

// FormatDuration renders d as "1 h 30 min".
func FormatDuration(d time.Duration) string {
	if d <= 0 {
		return "0 min"
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	switch {
	case hours == 0:
		return fmt.Sprintf("%d min", minutes)
	case minutes == 0:
		return fmt.Sprintf("%d h", hours)
	default:
		return fmt.Sprintf("%d h %d min", hours, minutes)
	}
}
