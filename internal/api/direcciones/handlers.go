// internal/api/direcciones/handlers.go
package direcciones

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/canchas/internal/api/apiutil"
	"github.com/codr1/canchas/internal/api/authz"
	dbgen "github.com/codr1/canchas/internal/db/generated"
	"github.com/codr1/canchas/internal/models"
	"github.com/codr1/canchas/internal/request"
)

const direccionesQueryTimeout = 5 * time.Second

const msgSinPermiso = "You do not have permission to perform this action."

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

type direccionRequest struct {
	CanchaID int64 `json:"cancha_id"`
	models.DireccionInput
}

type direccionResponse struct {
	ID          int64  `json:"id"`
	CanchaID    int64  `json:"cancha_id"`
	TipoCalle   string `json:"tipo_calle"`
	NombreCalle string `json:"nombre_calle"`
	NumeroCalle string `json:"numero_calle"`
	Distrito    string `json:"distrito"`
	Referencia  string `json:"referencia"`
}

func newDireccionResponse(d dbgen.Direccion) direccionResponse {
	return direccionResponse{
		ID:          d.ID,
		CanchaID:    d.CanchaID,
		TipoCalle:   d.TipoCalle,
		NombreCalle: d.NombreCalle,
		NumeroCalle: d.NumeroCalle,
		Distrito:    d.Distrito,
		Referencia:  d.Referencia,
	}
}

func internalError(w http.ResponseWriter) {
	apiutil.WriteAPIError(w, http.StatusInternalServerError, "Internal server error")
}

// ownedDireccion loads the {id} address and checks the caller owns its
// court. It writes the error response itself.
func ownedDireccion(ctx context.Context, w http.ResponseWriter, r *http.Request, q *dbgen.Queries) (dbgen.Direccion, bool) {
	logger := log.Ctx(r.Context())

	id, ok := request.PathID(r, "id")
	if !ok {
		apiutil.WriteAPIError(w, http.StatusNotFound, "Not found.")
		return dbgen.Direccion{}, false
	}
	direccion, err := q.GetDireccion(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteAPIError(w, http.StatusNotFound, "Not found.")
			return dbgen.Direccion{}, false
		}
		logger.Error().Err(err).Int64("direccion_id", id).Msg("Failed to load address")
		internalError(w)
		return dbgen.Direccion{}, false
	}
	cancha, err := q.GetCanchaByID(ctx, direccion.CanchaID)
	if err != nil {
		logger.Error().Err(err).Int64("cancha_id", direccion.CanchaID).Msg("Failed to load address court")
		internalError(w)
		return dbgen.Direccion{}, false
	}
	if err := authz.RequireOwner(r.Context(), cancha.ResponsableID); err != nil {
		apiutil.WriteAPIError(w, http.StatusForbidden, msgSinPermiso)
		return dbgen.Direccion{}, false
	}
	return direccion, true
}

// GET /api/direcciones/
func HandleList(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if _, ok := apiutil.RequireAPIUser(w, r); !ok {
		return
	}
	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		internalError(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), direccionesQueryTimeout)
	defer cancel()

	rows, err := q.ListDirecciones(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list addresses")
		internalError(w)
		return
	}
	resp := make([]direccionResponse, 0, len(rows))
	for _, d := range rows {
		resp = append(resp, newDireccionResponse(d))
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, resp); err != nil {
		logger.Error().Err(err).Msg("Failed to write address list")
	}
}

// POST /api/direcciones/
func HandleCreate(w http.ResponseWriter, r *http.Request) {
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

	var req direccionRequest
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteAPIError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		apiutil.WriteAPIError(w, http.StatusBadRequest, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), direccionesQueryTimeout)
	defer cancel()

	cancha, err := q.GetCanchaByID(ctx, req.CanchaID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteAPIError(w, http.StatusBadRequest, "La cancha no existe.")
			return
		}
		logger.Error().Err(err).Int64("cancha_id", req.CanchaID).Msg("Failed to load court")
		internalError(w)
		return
	}
	if !authz.IsOwner(user, cancha.ResponsableID) {
		apiutil.WriteAPIError(w, http.StatusForbidden, msgSinPermiso)
		return
	}

	direccion, err := q.CreateDireccion(ctx, dbgen.CreateDireccionParams{
		CanchaID:    cancha.ID,
		TipoCalle:   req.TipoCalle,
		NombreCalle: req.NombreCalle,
		NumeroCalle: req.NumeroCalle,
		Distrito:    req.Distrito,
		Referencia:  req.Referencia,
	})
	if err != nil {
		logger.Error().Err(err).Int64("cancha_id", cancha.ID).Msg("Failed to create address")
		internalError(w)
		return
	}

	logger.Info().Int64("direccion_id", direccion.ID).Int64("cancha_id", cancha.ID).Msg("Address created")
	if err := apiutil.WriteJSON(w, http.StatusCreated, newDireccionResponse(direccion)); err != nil {
		logger.Error().Err(err).Msg("Failed to write address")
	}
}

// GET /api/direcciones/{id}/
func HandleGet(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if _, ok := apiutil.RequireAPIUser(w, r); !ok {
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

	ctx, cancel := context.WithTimeout(r.Context(), direccionesQueryTimeout)
	defer cancel()

	direccion, err := q.GetDireccion(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			apiutil.WriteAPIError(w, http.StatusNotFound, "Not found.")
			return
		}
		logger.Error().Err(err).Int64("direccion_id", id).Msg("Failed to load address")
		internalError(w)
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, newDireccionResponse(direccion)); err != nil {
		logger.Error().Err(err).Msg("Failed to write address")
	}
}

// PUT and PATCH /api/direcciones/{id}/
//
// The court of an address cannot be changed.
func HandleUpdate(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if _, ok := apiutil.RequireAPIUser(w, r); !ok {
		return
	}
	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		internalError(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), direccionesQueryTimeout)
	defer cancel()

	direccion, ok := ownedDireccion(ctx, w, r, q)
	if !ok {
		return
	}

	req := direccionRequest{CanchaID: direccion.CanchaID}
	if r.Method == http.MethodPatch {
		req.DireccionInput = models.DireccionInput{
			TipoCalle:   direccion.TipoCalle,
			NombreCalle: direccion.NombreCalle,
			NumeroCalle: direccion.NumeroCalle,
			Distrito:    direccion.Distrito,
			Referencia:  direccion.Referencia,
		}
	}
	if err := apiutil.DecodeJSON(r, &req); err != nil {
		apiutil.WriteAPIError(w, http.StatusBadRequest, "Invalid JSON body")
		return
	}
	if req.CanchaID != direccion.CanchaID {
		apiutil.WriteAPIError(w, http.StatusBadRequest, "cancha_id cannot be changed")
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		apiutil.WriteAPIError(w, http.StatusBadRequest, err.Error())
		return
	}

	updated, err := q.UpdateDireccion(ctx, dbgen.UpdateDireccionParams{
		TipoCalle:   req.TipoCalle,
		NombreCalle: req.NombreCalle,
		NumeroCalle: req.NumeroCalle,
		Distrito:    req.Distrito,
		Referencia:  req.Referencia,
		ID:          direccion.ID,
	})
	if err != nil {
		logger.Error().Err(err).Int64("direccion_id", direccion.ID).Msg("Failed to update address")
		internalError(w)
		return
	}

	logger.Info().Int64("direccion_id", updated.ID).Msg("Address updated")
	if err := apiutil.WriteJSON(w, http.StatusOK, newDireccionResponse(updated)); err != nil {
		logger.Error().Err(err).Msg("Failed to write address")
	}
}

// DELETE /api/direcciones/{id}/
func HandleDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if _, ok := apiutil.RequireAPIUser(w, r); !ok {
		return
	}
	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		internalError(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), direccionesQueryTimeout)
	defer cancel()

	direccion, ok := ownedDireccion(ctx, w, r, q)
	if !ok {
		return
	}
	if _, err := q.DeleteDireccion(ctx, direccion.ID); err != nil {
		logger.Error().Err(err).Int64("direccion_id", direccion.ID).Msg("Failed to delete address")
		internalError(w)
		return
	}

	logger.Info().Int64("direccion_id", direccion.ID).Msg("Address deleted")
	w.WriteHeader(http.StatusNoContent)
}
