// internal/api/resenas/handlers.go
package resenas

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/canchas/internal/api/apiutil"
	"github.com/codr1/canchas/internal/api/flash"
	dbgen "github.com/codr1/canchas/internal/db/generated"
	"github.com/codr1/canchas/internal/models"
	"github.com/codr1/canchas/internal/request"
	"github.com/codr1/canchas/internal/templates/layouts"
)

const resenasQueryTimeout = 5 * time.Second

var (
	queries     *dbgen.Queries
	queriesOnce sync.Once
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(q *dbgen.Queries) {
	if q == nil {
		return
	}
	queriesOnce.Do(func() {
		queries = q
	})
}

func loadQueries() *dbgen.Queries {
	return queries
}

// parseResena reads and validates the review form.
func parseResena(r *http.Request) (models.ResenaInput, error) {
	calificacion, err := apiutil.ParseRatingField(r.FormValue("calificacion"))
	if err != nil {
		return models.ResenaInput{}, models.ErrCalificacionInvalida
	}
	input := models.ResenaInput{Calificacion: calificacion, Comentario: r.FormValue("comentario")}
	input.Normalize()
	return input, input.Validate()
}

// POST /canchas/{id}/{slug}/resena
//
// Posting again replaces the caller's previous review of the court.
func HandleUpsert(w http.ResponseWriter, r *http.Request) {
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

	canchaID, ok := request.PathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), resenasQueryTimeout)
	defer cancel()

	cancha, err := q.GetCanchaByIDAndSlug(ctx, dbgen.GetCanchaByIDAndSlugParams{ID: canchaID, Slug: r.PathValue("slug")})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(w, r)
			return
		}
		logger.Error().Err(err).Int64("cancha_id", canchaID).Msg("Failed to load court")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	target := layouts.CanchaPath(cancha.ID, cancha.Slug) + "#resenas"

	if cancha.ResponsableID == user.ID {
		flash.Error(w, r, models.ErrResenaPropia.Error())
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}

	input, err := parseResena(r)
	if err != nil {
		flash.Error(w, r, err.Error())
		http.Redirect(w, r, target, http.StatusSeeOther)
		return
	}

	resena, err := q.UpsertResena(ctx, dbgen.UpsertResenaParams{
		UsuarioID:    user.ID,
		CanchaID:     cancha.ID,
		Calificacion: input.Calificacion,
		Comentario:   input.Comentario,
	})
	if err != nil {
		logger.Error().Err(err).Int64("cancha_id", cancha.ID).Msg("Failed to save review")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	logger.Info().
		Int64("cancha_id", cancha.ID).
		Int64("resena_id", resena.ID).
		Int64("calificacion", resena.Calificacion).
		Msg("Review saved")
	flash.Success(w, r, "Gracias por tu reseña.")
	http.Redirect(w, r, target, http.StatusSeeOther)
}
