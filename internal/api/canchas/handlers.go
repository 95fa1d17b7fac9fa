// internal/api/canchas/handlers.go
package canchas

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"

	"github.com/codr1/canchas/internal/api/apiutil"
	"github.com/codr1/canchas/internal/api/auth"
	"github.com/codr1/canchas/internal/api/flash"
	"github.com/codr1/canchas/internal/config"
	appdb "github.com/codr1/canchas/internal/db"
	dbgen "github.com/codr1/canchas/internal/db/generated"
	"github.com/codr1/canchas/internal/media"
	"github.com/codr1/canchas/internal/models"
	"github.com/codr1/canchas/internal/request"
	canchastempl "github.com/codr1/canchas/internal/templates/components/canchas"
	"github.com/codr1/canchas/internal/templates/layouts"
)

const (
	canchasQueryTimeout = 5 * time.Second
	maxFormBytes        = media.MaxUploadBytes + (1 << 20)

	msgDireccionNoEncontrada = "Dirección no encontrada."
	msgImagenInvalida        = "La imagen no es válida o es demasiado grande."
	msgPasswordIncorrecta    = "Contraseña incorrecta."
)

var (
	queries     *dbgen.Queries
	store       *appdb.DB
	appConfig   *config.Config
	mediaStore  *media.Store
	queriesOnce sync.Once
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(database *appdb.DB, cfg *config.Config, files *media.Store) {
	if database == nil {
		return
	}
	queriesOnce.Do(func() {
		queries = database.Queries
		store = database
		appConfig = cfg
		mediaStore = files
	})
}

func loadQueries() *dbgen.Queries {
	return queries
}

func loadDB() *appdb.DB {
	return store
}

func phoneRegion() string {
	if appConfig == nil {
		return "PE"
	}
	return appConfig.Booking.DefaultPhoneRegion
}

func renderPage(w http.ResponseWriter, r *http.Request, status int, title string, body templ.Component, extra ...flash.Message) {
	page := layouts.Base(apiutil.NewPage(w, r, title, extra...), body)
	apiutil.RenderHTMLComponentStatus(r.Context(), w, status, page, nil, "Failed to render "+title+" page", "Failed to render page")
}

// lookupCancha loads the court named by the {id} and {slug} path values.
// Both must match or the result is sql.ErrNoRows.
func lookupCancha(ctx context.Context, q *dbgen.Queries, r *http.Request) (dbgen.Cancha, error) {
	id, ok := request.PathID(r, "id")
	if !ok {
		return dbgen.Cancha{}, sql.ErrNoRows
	}
	return q.GetCanchaByIDAndSlug(ctx, dbgen.GetCanchaByIDAndSlugParams{ID: id, Slug: r.PathValue("slug")})
}

func canchaInputFromForm(r *http.Request) models.CanchaInput {
	input := models.CanchaInput{
		Nombre:   r.FormValue("nombre"),
		Telefono: r.FormValue("telefono"),
		DireccionInput: models.DireccionInput{
			TipoCalle:   r.FormValue("tipo_calle"),
			NombreCalle: r.FormValue("nombre_calle"),
			NumeroCalle: r.FormValue("numero_calle"),
			Distrito:    r.FormValue("distrito"),
			Referencia:  r.FormValue("referencia"),
		},
	}
	input.Normalize()
	return input
}

// validateCancha validates input and returns the phone in E.164.
func validateCancha(input models.CanchaInput) (string, error) {
	if err := input.Validate(); err != nil {
		return "", err
	}
	return models.NormalizePhone(input.Telefono, phoneRegion())
}

func formDataFromInput(input models.CanchaInput) canchastempl.FormData {
	return canchastempl.FormData{
		Nombre:      input.Nombre,
		Telefono:    input.Telefono,
		TipoCalle:   input.TipoCalle,
		NombreCalle: input.NombreCalle,
		NumeroCalle: input.NumeroCalle,
		Distrito:    input.Distrito,
		Referencia:  input.Referencia,
	}
}

func parseUploadForm(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseMultipartForm(maxFormBytes); err != nil && !errors.Is(err, http.ErrNotMultipart) {
		return err
	}
	return nil
}

// createCancha stores the court and its address in one transaction under a
// unique slug derived from the name.
func createCancha(ctx context.Context, database *appdb.DB, ownerID int64, input models.CanchaInput, telefono, imagen string) (dbgen.Cancha, dbgen.Direccion, error) {
	var (
		cancha    dbgen.Cancha
		direccion dbgen.Direccion
	)
	err := database.RunInTx(ctx, func(txdb *appdb.DB) error {
		qtx := txdb.Queries

		slug, err := models.UniqueSlug(ctx, input.Nombre, "cancha", qtx.CanchaSlugExists)
		if err != nil {
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to build slug", Err: err}
		}

		cancha, err = qtx.CreateCancha(ctx, dbgen.CreateCanchaParams{
			Nombre:        input.Nombre,
			Slug:          slug,
			ResponsableID: ownerID,
			Imagen:        imagen,
			Telefono:      apiutil.ToNullString(telefono),
		})
		if err != nil {
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to create court", Err: err}
		}

		direccion, err = qtx.CreateDireccion(ctx, dbgen.CreateDireccionParams{
			CanchaID:    cancha.ID,
			TipoCalle:   input.TipoCalle,
			NombreCalle: input.NombreCalle,
			NumeroCalle: input.NumeroCalle,
			Distrito:    input.Distrito,
			Referencia:  input.Referencia,
		})
		if err != nil {
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to create address", Err: err}
		}
		return nil
	})
	return cancha, direccion, err
}

// updateCancha rewrites the court and its first address. A court without
// an address fails with a 404 HandlerError.
func updateCancha(ctx context.Context, database *appdb.DB, canchaID int64, input models.CanchaInput, telefono, imagen string) (dbgen.Cancha, dbgen.Direccion, error) {
	var (
		cancha    dbgen.Cancha
		direccion dbgen.Direccion
	)
	err := database.RunInTx(ctx, func(txdb *appdb.DB) error {
		qtx := txdb.Queries

		existing, err := qtx.GetFirstDireccionByCancha(ctx, canchaID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apiutil.HandlerError{Status: http.StatusNotFound, Message: msgDireccionNoEncontrada, Err: err}
			}
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to load address", Err: err}
		}

		cancha, err = qtx.UpdateCancha(ctx, dbgen.UpdateCanchaParams{
			Nombre:   input.Nombre,
			Imagen:   imagen,
			Telefono: apiutil.ToNullString(telefono),
			ID:       canchaID,
		})
		if err != nil {
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to update court", Err: err}
		}

		direccion, err = qtx.UpdateDireccion(ctx, dbgen.UpdateDireccionParams{
			TipoCalle:   input.TipoCalle,
			NombreCalle: input.NombreCalle,
			NumeroCalle: input.NumeroCalle,
			Distrito:    input.Distrito,
			Referencia:  input.Referencia,
			ID:          existing.ID,
		})
		if err != nil {
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to update address", Err: err}
		}
		return nil
	})
	return cancha, direccion, err
}

// GET /
func HandleHome(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), canchasQueryTimeout)
	defer cancel()

	rows, err := q.ListCanchasWithDistrito(ctx)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to list courts")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	renderPage(w, r, http.StatusOK, "Inicio", canchastempl.List(canchastempl.NewCards(rows)))
}

// GET /canchas/registro
func HandleRegistroPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := apiutil.RequirePageUser(w, r); !ok {
		return
	}
	renderPage(w, r, http.StatusOK, "Registrar cancha", canchastempl.Form(registroForm(canchastempl.FormData{})))
}

func registroForm(data canchastempl.FormData) canchastempl.FormData {
	data.Title = "Registrar cancha"
	data.Action = "/canchas/registro"
	data.Submit = "Registrar"
	return data
}

// POST /canchas/registro
func HandleRegistro(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	user, ok := apiutil.RequirePageUser(w, r)
	if !ok {
		return
	}

	database := loadDB()
	if database == nil || mediaStore == nil {
		logger.Error().Msg("Court dependencies not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := parseUploadForm(w, r); err != nil {
		logger.Warn().Err(err).Msg("Failed to parse court form")
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	input := canchaInputFromForm(r)
	telefono, err := validateCancha(input)
	if err != nil {
		data := registroForm(formDataFromInput(input))
		data.Error = err.Error()
		renderPage(w, r, http.StatusBadRequest, "Registrar cancha", canchastempl.Form(data))
		return
	}

	imagen, uploaded, err := mediaStore.SaveUpload(r, "imagen", media.DirCanchas)
	if err != nil {
		logger.Warn().Err(err).Msg("Rejected court image upload")
		data := registroForm(formDataFromInput(input))
		data.Error = msgImagenInvalida
		renderPage(w, r, http.StatusBadRequest, "Registrar cancha", canchastempl.Form(data))
		return
	}
	if !uploaded {
		imagen = models.DefaultCanchaImagen
	}

	ctx, cancel := context.WithTimeout(r.Context(), canchasQueryTimeout)
	defer cancel()

	cancha, _, err := createCancha(ctx, database, user.ID, input, telefono, imagen)
	if err != nil {
		_ = mediaStore.Remove(imagen)
		var herr apiutil.HandlerError
		if errors.As(err, &herr) {
			logger.Error().Err(herr.Err).Int64("user_id", user.ID).Msg(herr.Message)
			http.Error(w, "Internal Server Error", herr.Status)
			return
		}
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to register court")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	logger.Info().Int64("cancha_id", cancha.ID).Str("slug", cancha.Slug).Msg("Court registered")
	flash.Success(w, r, "Cancha registrada correctamente.")
	http.Redirect(w, r, layouts.CanchaPath(cancha.ID, cancha.Slug), http.StatusSeeOther)
}

// loadOwnedCancha resolves the path court and writes a 404 unless the
// signed-in user owns it.
func loadOwnedCancha(w http.ResponseWriter, r *http.Request, userID int64) (dbgen.Cancha, bool) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return dbgen.Cancha{}, false
	}

	ctx, cancel := context.WithTimeout(r.Context(), canchasQueryTimeout)
	defer cancel()

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
		logger.Warn().Int64("cancha_id", cancha.ID).Msg("Court access denied: not the owner")
		http.NotFound(w, r)
		return dbgen.Cancha{}, false
	}
	return cancha, true
}

func editForm(cancha dbgen.Cancha, data canchastempl.FormData) canchastempl.FormData {
	data.Title = "Editar " + cancha.Nombre
	data.Action = layouts.CanchaPath(cancha.ID, cancha.Slug) + "/editar"
	data.Submit = "Guardar cambios"
	data.IsEdit = true
	data.CanchaID = cancha.ID
	data.Slug = cancha.Slug
	data.Imagen = cancha.Imagen
	return data
}

// GET /canchas/{id}/{slug}/editar
func HandleEditPage(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	user, ok := apiutil.RequirePageUser(w, r)
	if !ok {
		return
	}
	cancha, ok := loadOwnedCancha(w, r, user.ID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), canchasQueryTimeout)
	defer cancel()

	var extra []flash.Message
	var direccion *dbgen.Direccion
	d, err := loadQueries().GetFirstDireccionByCancha(ctx, cancha.ID)
	switch {
	case err == nil:
		direccion = &d
	case errors.Is(err, sql.ErrNoRows):
		extra = append(extra, flash.Message{Level: flash.LevelError, Text: msgDireccionNoEncontrada})
	default:
		logger.Error().Err(err).Int64("cancha_id", cancha.ID).Msg("Failed to load address")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := editForm(cancha, canchastempl.FormDataFromRows(cancha, direccion))
	renderPage(w, r, http.StatusOK, "Editar cancha", canchastempl.Form(data), extra...)
}

// POST /canchas/{id}/{slug}/editar
func HandleEdit(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	user, ok := apiutil.RequirePageUser(w, r)
	if !ok {
		return
	}
	if err := parseUploadForm(w, r); err != nil {
		logger.Warn().Err(err).Msg("Failed to parse court form")
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	cancha, ok := loadOwnedCancha(w, r, user.ID)
	if !ok {
		return
	}

	database := loadDB()
	if database == nil || mediaStore == nil {
		logger.Error().Msg("Court dependencies not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	input := canchaInputFromForm(r)
	rerender := func(status int, msg string) {
		data := editForm(cancha, formDataFromInput(input))
		renderPage(w, r, status, "Editar cancha", canchastempl.Form(data),
			flash.Message{Level: flash.LevelError, Text: msg})
	}

	telefono, err := validateCancha(input)
	if err != nil {
		rerender(http.StatusBadRequest, err.Error())
		return
	}

	imagen, uploaded, err := mediaStore.SaveUpload(r, "imagen", media.DirCanchas)
	if err != nil {
		logger.Warn().Err(err).Int64("cancha_id", cancha.ID).Msg("Rejected court image upload")
		rerender(http.StatusBadRequest, msgImagenInvalida)
		return
	}
	if !uploaded {
		imagen = cancha.Imagen
	}

	ctx, cancel := context.WithTimeout(r.Context(), canchasQueryTimeout)
	defer cancel()

	updated, _, err := updateCancha(ctx, database, cancha.ID, input, telefono, imagen)
	if err != nil {
		if uploaded {
			_ = mediaStore.Remove(imagen)
		}
		var herr apiutil.HandlerError
		if errors.As(err, &herr) {
			if herr.Status == http.StatusNotFound {
				rerender(http.StatusNotFound, herr.Message)
				return
			}
			logger.Error().Err(herr.Err).Int64("cancha_id", cancha.ID).Msg(herr.Message)
			http.Error(w, "Internal Server Error", herr.Status)
			return
		}
		logger.Error().Err(err).Int64("cancha_id", cancha.ID).Msg("Failed to update court")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if uploaded && cancha.Imagen != imagen {
		if err := mediaStore.Remove(cancha.Imagen); err != nil {
			logger.Warn().Err(err).Str("imagen", cancha.Imagen).Msg("Failed to remove previous court image")
		}
	}

	logger.Info().Int64("cancha_id", updated.ID).Msg("Court updated")
	flash.Success(w, r, "Datos actualizados correctamente.")
	http.Redirect(w, r, layouts.CanchaPath(updated.ID, updated.Slug), http.StatusSeeOther)
}

// POST /canchas/{id}/{slug}/eliminar
func HandleDelete(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	user, ok := apiutil.RequirePageUser(w, r)
	if !ok {
		return
	}
	cancha, ok := loadOwnedCancha(w, r, user.ID)
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), canchasQueryTimeout)
	defer cancel()

	q := loadQueries()
	owner, err := q.GetUserByID(ctx, user.ID)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load court owner")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if !auth.VerifyPassword(owner.PasswordHash, r.FormValue("password")) {
		logger.Warn().Int64("cancha_id", cancha.ID).Msg("Court delete rejected: wrong password")
		flash.Error(w, r, msgPasswordIncorrecta)
		http.Redirect(w, r, layouts.CanchaPath(cancha.ID, cancha.Slug)+"/editar", http.StatusSeeOther)
		return
	}

	deleted, err := q.DeleteCancha(ctx, dbgen.DeleteCanchaParams{ID: cancha.ID, ResponsableID: user.ID})
	if err != nil {
		logger.Error().Err(err).Int64("cancha_id", cancha.ID).Msg("Failed to delete court")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if deleted == 0 {
		http.NotFound(w, r)
		return
	}
	if mediaStore != nil {
		if err := mediaStore.Remove(cancha.Imagen); err != nil {
			logger.Warn().Err(err).Str("imagen", cancha.Imagen).Msg("Failed to remove court image")
		}
	}

	logger.Info().Int64("cancha_id", cancha.ID).Msg("Court deleted")
	flash.Success(w, r, "La cancha fue eliminada correctamente.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
