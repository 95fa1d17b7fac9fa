package auth

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"

	"github.com/codr1/canchas/internal/api/apiutil"
	"github.com/codr1/canchas/internal/api/authz"
	"github.com/codr1/canchas/internal/api/flash"
	"github.com/codr1/canchas/internal/config"
	appdb "github.com/codr1/canchas/internal/db"
	dbgen "github.com/codr1/canchas/internal/db/generated"
	"github.com/codr1/canchas/internal/media"
	"github.com/codr1/canchas/internal/metrics"
	"github.com/codr1/canchas/internal/models"
	"github.com/codr1/canchas/internal/ratelimit"
	"github.com/codr1/canchas/internal/request"
	authtempl "github.com/codr1/canchas/internal/templates/components/auth"
	"github.com/codr1/canchas/internal/templates/layouts"
)

const (
	authQueryTimeout = 5 * time.Second

	msgCredencialesInvalidas = "Usuario o contraseña incorrectos."
	msgUsuarioExiste         = "El nombre de usuario o el correo ya están registrados."
	msgDemasiadosIntentos    = "Demasiados intentos fallidos. Inténtalo de nuevo más tarde."
)

var (
	queries      *dbgen.Queries
	store        *appdb.DB
	appConfig    *config.Config
	mediaStore   *media.Store
	loginLimiter *ratelimit.Limiter
	stateMu      sync.RWMutex
)

// InitHandlers must be called during server startup before handling requests.
func InitHandlers(database *appdb.DB, cfg *config.Config, mediaFiles *media.Store, limiter *ratelimit.Limiter) {
	if database == nil {
		return
	}
	stateMu.Lock()
	defer stateMu.Unlock()
	queries = database.Queries
	store = database
	appConfig = cfg
	mediaStore = mediaFiles
	loginLimiter = limiter
}

func loadQueries() *dbgen.Queries {
	stateMu.RLock()
	defer stateMu.RUnlock()
	return queries
}

func loadDB() *appdb.DB {
	stateMu.RLock()
	defer stateMu.RUnlock()
	return store
}

func loadConfig() *config.Config {
	stateMu.RLock()
	defer stateMu.RUnlock()
	return appConfig
}

func loadMedia() *media.Store {
	stateMu.RLock()
	defer stateMu.RUnlock()
	return mediaStore
}

func loadLimiter() *ratelimit.Limiter {
	stateMu.RLock()
	defer stateMu.RUnlock()
	return loginLimiter
}

func trustProxy() bool {
	cfg := loadConfig()
	return cfg != nil && !cfg.IsDevelopment()
}

func renderPage(w http.ResponseWriter, r *http.Request, status int, title string, body templ.Component, logMsg string) {
	page := layouts.Base(apiutil.NewPage(w, r, title), body)
	apiutil.RenderHTMLComponentStatus(r.Context(), w, status, page, nil, logMsg, "Failed to render page")
}

// GET /login
func HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	if authz.UserFromContext(r.Context()) != nil {
		http.Redirect(w, r, request.SafeNext(r, "/"), http.StatusSeeOther)
		return
	}
	renderPage(w, r, http.StatusOK, "Iniciar sesión", authtempl.Login(authtempl.LoginData{
		Next: request.SafeNext(r, ""),
	}), "Failed to render login page")
}

// POST /login
func HandleLogin(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	login := strings.TrimSpace(r.FormValue("login"))
	password := r.FormValue("password")
	next := request.SafeNext(r, "")
	data := authtempl.LoginData{Login: login, Next: next}

	if login == "" || password == "" {
		data.Error = models.ErrCamposObligatorios.Error()
		renderPage(w, r, http.StatusBadRequest, "Iniciar sesión", authtempl.Login(data), "Failed to render login page")
		return
	}

	ip := ratelimit.GetClientIP(r, trustProxy())
	limiter := loadLimiter()
	if limiter != nil {
		if result := limiter.CheckLogin(login, ip); !result.Allowed {
			ratelimit.LogRateLimitExceeded(logger, "login", login, ip, result.Reason)
			metrics.RecordLogin("limited")
			data.Error = msgDemasiadosIntentos
			renderPage(w, r, http.StatusTooManyRequests, "Iniciar sesión", authtempl.Login(data), "Failed to render login page")
			return
		}
	}

	ctx, cancel := context.WithTimeout(r.Context(), authQueryTimeout)
	defer cancel()

	user, err := q.GetUserByLogin(ctx, login)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		logger.Error().Err(err).Msg("Failed to look up user for login")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if err != nil || !VerifyPassword(user.PasswordHash, password) {
		if limiter != nil && limiter.RecordFailure(login, ip) {
			logger.Warn().
				Str("identifier", ratelimit.SanitizeIdentifier(login)).
				Str("ip", ip).
				Msg("Login locked out after repeated failures")
		}
		metrics.RecordLogin("failure")
		data.Error = msgCredencialesInvalidas
		renderPage(w, r, http.StatusUnauthorized, "Iniciar sesión", authtempl.Login(data), "Failed to render login page")
		return
	}

	if limiter != nil {
		limiter.Reset(login)
	}
	if err := startSession(w, user.ID); err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to create session")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	metrics.RecordLogin("success")
	logger.Info().Int64("user_id", user.ID).Msg("User signed in")

	flash.Success(w, r, "Bienvenido, "+user.Username+".")
	http.Redirect(w, r, apiutil.FirstNonEmpty(next, "/"), http.StatusSeeOther)
}

func startSession(w http.ResponseWriter, userID int64) error {
	if err := CreateSession(w, userID); err != nil {
		return err
	}
	return SetAuthCookie(w, userID)
}

// POST /logout
func HandleLogout(w http.ResponseWriter, r *http.Request) {
	if user := authz.UserFromContext(r.Context()); user != nil {
		log.Ctx(r.Context()).Info().Int64("user_id", user.ID).Msg("User signed out")
	}
	ClearSession(w, r)
	flash.Info(w, r, "Sesión cerrada.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// GET /registro
func HandleRegistroPage(w http.ResponseWriter, r *http.Request) {
	if authz.UserFromContext(r.Context()) != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	renderPage(w, r, http.StatusOK, "Crear cuenta", authtempl.Registro(authtempl.RegistroData{}), "Failed to render registration page")
}

// POST /registro
func HandleRegistro(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	database := loadDB()
	if database == nil {
		logger.Error().Msg("Database not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	input := models.RegistroInput{
		Username:        r.FormValue("username"),
		Email:           r.FormValue("email"),
		Password:        r.FormValue("password"),
		PasswordConfirm: r.FormValue("password_confirm"),
	}
	input.Normalize()
	data := authtempl.RegistroData{Username: input.Username, Email: input.Email}

	if err := input.Validate(); err != nil {
		data.Error = err.Error()
		renderPage(w, r, http.StatusBadRequest, "Crear cuenta", authtempl.Registro(data), "Failed to render registration page")
		return
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to hash password")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), authQueryTimeout)
	defer cancel()

	var created dbgen.User
	err = database.RunInTx(ctx, func(txdb *appdb.DB) error {
		qtx := txdb.Queries

		count, err := qtx.CountUsersByUsernameOrEmail(ctx, dbgen.CountUsersByUsernameOrEmailParams{
			Username: input.Username,
			Email:    input.Email,
		})
		if err != nil {
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to check user", Err: err}
		}
		if count > 0 {
			return apiutil.HandlerError{Status: http.StatusConflict, Message: msgUsuarioExiste}
		}

		slug, err := models.UniqueSlug(ctx, input.Username, "usuario", qtx.UserSlugExists)
		if err != nil {
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to build slug", Err: err}
		}

		created, err = qtx.CreateUser(ctx, dbgen.CreateUserParams{
			Username:     input.Username,
			Slug:         slug,
			Email:        input.Email,
			PasswordHash: hash,
		})
		if err != nil {
			if apiutil.IsSQLiteUniqueViolation(err) {
				return apiutil.HandlerError{Status: http.StatusConflict, Message: msgUsuarioExiste, Err: err}
			}
			return apiutil.HandlerError{Status: http.StatusInternalServerError, Message: "Failed to create user", Err: err}
		}
		return nil
	})
	if err != nil {
		var herr apiutil.HandlerError
		if errors.As(err, &herr) {
			if herr.Status == http.StatusConflict {
				data.Error = herr.Message
				renderPage(w, r, http.StatusConflict, "Crear cuenta", authtempl.Registro(data), "Failed to render registration page")
				return
			}
			logger.Error().Err(herr.Err).Msg(herr.Message)
			http.Error(w, "Internal Server Error", herr.Status)
			return
		}
		logger.Error().Err(err).Msg("Failed to register user")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := startSession(w, created.ID); err != nil {
		logger.Error().Err(err).Int64("user_id", created.ID).Msg("Failed to create session after registration")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	logger.Info().Int64("user_id", created.ID).Str("username", created.Username).Msg("User registered")

	flash.Success(w, r, "Cuenta creada. ¡Bienvenido, "+created.Username+"!")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// GET /perfil/{id}/{slug}
func HandlePerfil(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	viewer, ok := apiutil.RequirePageUser(w, r)
	if !ok {
		return
	}

	q := loadQueries()
	if q == nil {
		logger.Error().Msg("Database queries not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	userID, ok := request.PathID(r, "id")
	if !ok {
		http.NotFound(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), authQueryTimeout)
	defer cancel()

	user, err := q.GetUserByIDAndSlug(ctx, dbgen.GetUserByIDAndSlugParams{ID: userID, Slug: r.PathValue("slug")})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			http.NotFound(w, r)
			return
		}
		logger.Error().Err(err).Int64("user_id", userID).Msg("Failed to load profile")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	canchas, err := q.ListCanchas(ctx)
	if err != nil {
		logger.Error().Err(err).Int64("user_id", userID).Msg("Failed to list profile courts")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	data := authtempl.PerfilData{
		ID:       user.ID,
		Username: user.Username,
		Slug:     user.Slug,
		Email:    user.Email,
		Imagen:   user.Imagen,
		Propio:   viewer.ID == user.ID,
	}
	for _, c := range canchas {
		if c.ResponsableID == user.ID {
			data.Canchas = append(data.Canchas, authtempl.PerfilCancha{ID: c.ID, Nombre: c.Nombre, Slug: c.Slug})
		}
	}

	renderPage(w, r, http.StatusOK, user.Username, authtempl.Perfil(data), "Failed to render profile page")
}

// POST /perfil/imagen
func HandlePerfilImagen(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	user, ok := apiutil.RequirePageUser(w, r)
	if !ok {
		return
	}

	q := loadQueries()
	files := loadMedia()
	if q == nil || files == nil {
		logger.Error().Msg("Profile dependencies not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	profileURL := layouts.ProfilePath(user.ID, user.Slug)
	r.Body = http.MaxBytesReader(w, r.Body, media.MaxUploadBytes+(1<<20))

	imagen, uploaded, err := files.SaveUpload(r, "imagen", media.DirUsuarios)
	if err != nil {
		logger.Warn().Err(err).Int64("user_id", user.ID).Msg("Rejected avatar upload")
		flash.Error(w, r, "La imagen no es válida o es demasiado grande.")
		http.Redirect(w, r, profileURL, http.StatusSeeOther)
		return
	}
	if !uploaded {
		imagen = models.DefaultUsuarioImagen
	}

	ctx, cancel := context.WithTimeout(r.Context(), authQueryTimeout)
	defer cancel()

	if err := q.UpdateUserImagen(ctx, dbgen.UpdateUserImagenParams{Imagen: imagen, ID: user.ID}); err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to update avatar")
		_ = files.Remove(imagen)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	if user.Imagen != imagen {
		if err := files.Remove(user.Imagen); err != nil {
			logger.Warn().Err(err).Str("imagen", user.Imagen).Msg("Failed to remove previous avatar")
		}
	}

	flash.Success(w, r, "Foto de perfil actualizada.")
	http.Redirect(w, r, profileURL, http.StatusSeeOther)
}
