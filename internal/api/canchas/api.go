// internal/api/canchas/api.go
package canchas

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/codr1/canchas/internal/api/apiutil"
	"github.com/codr1/canchas/internal/api/authz"
	dbgen "github.com/codr1/canchas/internal/db/generated"
	"github.com/codr1/canchas/internal/models"
)

type direccionResponse struct {
	ID          int64  `json:"id"`
	TipoCalle   string `json:"tipo_calle"`
	NombreCalle string `json:"nombre_calle"`
	NumeroCalle string `json:"numero_calle"`
	Distrito    string `json:"distrito"`
	Referencia  string `json:"referencia"`
}

type canchaResponse struct {
	ID            int64              `json:"id"`
	Nombre        string             `json:"nombre"`
	Slug          string             `json:"slug"`
	ResponsableID int64              `json:"responsable_id"`
	Imagen        string             `json:"imagen"`
	Telefono      string             `json:"telefono,omitempty"`
	Direccion     *direccionResponse `json:"direccion,omitempty"`
}

func newCanchaResponse(c dbgen.Cancha, d *dbgen.Direccion) canchaResponse {
	resp := canchaResponse{
		ID:            c.ID,
		Nombre:        c.Nombre,
		Slug:          c.Slug,
		ResponsableID: c.ResponsableID,
		Imagen:        c.Imagen,
		Telefono:      c.Telefono.String,
	}
	if d != nil {
		resp.Direccion = &direccionResponse{
			ID:          d.ID,
			TipoCalle:   d.TipoCalle,
			NombreCalle: d.NombreCalle,
			NumeroCalle: d.NumeroCalle,
			Distrito:    d.Distrito,
			Referencia:  d.Referencia,
		}
	}
	return resp
}

func writeHandlerError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	logger := log.Ctx(r.Context())
	var herr apiutil.HandlerError
	if errors.As(err, &herr) {
		if herr.Status >= http.StatusInternalServerError {
			logger.Error().Err(herr.Err).Msg(herr.Message)
			apiutil.WriteAPIError(w, herr.Status, "Internal server error")
			return
		}
		apiutil.WriteAPIError(w, herr.Status, herr.Message)
		return
	}
	logger.Error().Err(err).Msg(fallback)
	apiutil.WriteAPIError(w, http.StatusInternalServerError, "Internal server error")
}

// apiCancha loads the court named by the {slug} path value together with
// its address, which may be nil.
func apiCancha(ctx context.Context, q *dbgen.Queries, slug string) (dbgen.Cancha, *dbgen.Direccion, error) {
	cancha, err := q.GetCanchaBySlug(ctx, slug)
	if err != nil {
		return dbgen.Cancha{}, nil, err
	}
	direccion, err := q.GetFirstDireccionByCancha(ctx, cancha.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return cancha, nil, nil
		}
		return dbgen.Cancha{}, nil, err
	}
	return cancha, &direccion, nil
}

// GET /api/canchas/
func HandleAPIList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if _, ok := apiutil.RequireAPIUser(w, r); !ok {
		return
	}
	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteAPIError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), canchasQueryTimeout)
	defer cancel()

	canchas, err := q.ListCanchas(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list courts")
		apiutil.WriteAPIError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	resp := make([]canchaResponse, 0, len(canchas))
	for _, c := range canchas {
		resp = append(resp, newCanchaResponse(c, nil))
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, resp); err != nil {
		logger.Error().Err(err).Msg("Failed to write court list")
	}
}

// POST /api/canchas/
func HandleAPICreate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	user, ok := apiutil.RequireAPIUser(w, r)
	if !ok {
		return
	}
	database := loadDB()
	if database == nil {
		logger.Error().Msg("Database not initialized")
		apiutil.WriteAPIError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	var input models.CanchaInput
	if err := apiutil.DecodeJSON(r, &input); err != nil {
		apiutil.WriteAPIError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	input.Normalize()
	telefono, err := validateCancha(input)
	if err != nil {
		apiutil.WriteAPIError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), canchasQueryTimeout)
	defer cancel()

	cancha, direccion, err := createCancha(ctx, database, user.ID, input, telefono, models.DefaultCanchaImagen)
	if err != nil {
		writeHandlerError(w, r, err, "Failed to create court")
		return
	}

	logger.Info().Int64("cancha_id", cancha.ID).Str("slug", cancha.Slug).Msg("Court created via API")
	if err := apiutil.WriteJSON(w, http.StatusCreated, newCanchaResponse(cancha, &direccion)); err != nil {
		logger.Error().Err(err).Msg("Failed to write court")
	}
}

// GET /api/canchas/{slug}/
func HandleAPIGet(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if _, ok := apiutil.RequireAPIUser(w, r); !ok {
		return
	}
	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteAPIError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), canchasQueryTimeout)
	defer cancel()

	cancha, direccion, err := apiCancha(ctx, q, r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteAPIError(w, http.StatusNotFound, "Not found.")
			return
		}
		logger.Error().Err(err).Msg("Failed to load court")
		apiutil.WriteAPIError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	if err := apiutil.WriteJSON(w, http.StatusOK, newCanchaResponse(cancha, direccion)); err != nil {
		logger.Error().Err(err).Msg("Failed to write court")
	}
}

// PUT and PATCH /api/canchas/{slug}/
//
// PATCH starts from the stored values so omitted fields are kept.
func HandleAPIUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if _, ok := apiutil.RequireAPIUser(w, r); !ok {
		return
	}
	database := loadDB()
	if database == nil {
		logger.Error().Msg("Database not initialized")
		apiutil.WriteAPIError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), canchasQueryTimeout)
	defer cancel()

	cancha, direccion, err := apiCancha(ctx, database.Queries, r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteAPIError(w, http.StatusNotFound, "Not found.")
			return
		}
		logger.Error().Err(err).Msg("Failed to load court")
		apiutil.WriteAPIError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if err := authz.RequireOwner(r.Context(), cancha.ResponsableID); err != nil {
		apiutil.WriteAPIError(w, http.StatusForbidden, "You do not have permission to perform this action.")
		return
	}

	var input models.CanchaInput
	if r.Method == http.MethodPatch {
		input = models.CanchaInput{Nombre: cancha.Nombre, Telefono: cancha.Telefono.String}
		if direccion != nil {
			input.DireccionInput = models.DireccionInput{
				TipoCalle:   direccion.TipoCalle,
				NombreCalle: direccion.NombreCalle,
				NumeroCalle: direccion.NumeroCalle,
				Distrito:    direccion.Distrito,
				Referencia:  direccion.Referencia,
			}
		}
	}
	if err := apiutil.DecodeJSON(r, &input); err != nil {
		apiutil.WriteAPIError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	input.Normalize()
	telefono, err := validateCancha(input)
	if err != nil {
		apiutil.WriteAPIError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, updatedDir, err := updateCancha(ctx, database, cancha.ID, input, telefono, cancha.Imagen)
	if err != nil {
		writeHandlerError(w, r, err, "Failed to update court")
		return
	}

	logger.Info().Int64("cancha_id", updated.ID).Msg("Court updated via API")
	if err := apiutil.WriteJSON(w, http.StatusOK, newCanchaResponse(updated, &updatedDir)); err != nil {
		logger.Error().Err(err).Msg("Failed to write court")
	}
}

// DELETE /api/canchas/{slug}/
func HandleAPIDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	user, ok := apiutil.RequireAPIUser(w, r)
	if !ok {
		return
	}
	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		apiutil.WriteAPIError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), canchasQueryTimeout)
	defer cancel()

	cancha, err := q.GetCanchaBySlug(ctx, r.PathValue("slug"))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteAPIError(w, http.StatusNotFound, "Not found.")
			return
		}
		logger.Error().Err(err).Msg("Failed to load court")
		apiutil.WriteAPIError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if !authz.IsOwner(user, cancha.ResponsableID) {
		apiutil.WriteAPIError(w, http.StatusForbidden, "You do not have permission to perform this action.")
		return
	}

	if _, err := q.DeleteCancha(ctx, dbgen.DeleteCanchaParams{ID: cancha.ID, ResponsableID: user.ID}); err != nil {
		logger.Error().Err(err).Int64("cancha_id", cancha.ID).Msg("Failed to delete court")
		apiutil.WriteAPIError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	if mediaStore != nil {
		if err := mediaStore.Remove(cancha.Imagen); err != nil {
			logger.Warn().Err(err).Str("imagen", cancha.Imagen).Msg("Failed to remove court image")
		}
	}

	logger.Info().Int64("cancha_id", cancha.ID).Msg("Court deleted via API")
	w.WriteHeader(http.StatusNoContent)
}
