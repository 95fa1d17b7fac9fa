// cmd/server/server.go
package main

import (
	"net/http"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/canchas/internal/api"
	"github.com/codr1/canchas/internal/api/apiutil"
	"github.com/codr1/canchas/internal/api/auth"
	"github.com/codr1/canchas/internal/api/canchas"
	"github.com/codr1/canchas/internal/api/direcciones"
	"github.com/codr1/canchas/internal/api/flash"
	"github.com/codr1/canchas/internal/api/horarios"
	"github.com/codr1/canchas/internal/api/nav"
	"github.com/codr1/canchas/internal/api/resenas"
	"github.com/codr1/canchas/internal/api/reservas"
	"github.com/codr1/canchas/internal/config"
	"github.com/codr1/canchas/internal/db"
	"github.com/codr1/canchas/internal/email"
	"github.com/codr1/canchas/internal/media"
	"github.com/codr1/canchas/internal/metrics"
	"github.com/codr1/canchas/internal/ratelimit"
)

// newServer wires every handler package and returns the server with a
// function releasing the resources it started.
func newServer(cfg *config.Config, database *db.DB, files *media.Store, notifier *email.Notifier, loc *time.Location) (*http.Server, func()) {
	apiutil.SetLocation(loc)
	flash.Configure(cfg.App.SecretKey, !cfg.IsDevelopment())

	loginLimiter := ratelimit.New(&ratelimit.Config{
		MaxAttempts: cfg.RateLimit.LoginMaxAttempts,
		Window:      time.Duration(cfg.RateLimit.LoginWindowMinutes) * time.Minute,
		Lockout:     time.Duration(cfg.RateLimit.LoginLockoutMinutes) * time.Minute,
	})
	apiLimiter := ratelimit.NewKeyed(cfg.RateLimit.APIRequestsPerSecond, cfg.RateLimit.APIBurst, nil)

	price := cfg.Booking.PricePerHourCents
	auth.InitHandlers(database, cfg, files, loginLimiter)
	canchas.InitHandlers(database, cfg, files)
	horarios.InitHandlers(database, price)
	reservas.InitHandlers(database, notifier, price)
	resenas.InitHandlers(database.Queries)
	direcciones.InitHandlers(database.Queries)
	nav.InitHandlers(database.Queries)

	router := http.NewServeMux()
	registerRoutes(router, cfg, files)

	handler := api.ChainMiddleware(
		router,
		metrics.InstrumentHandler,
		api.WithAuth,
		api.WithRateLimit(apiLimiter, !cfg.IsDevelopment()),
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithContentType,
	)

	server := &http.Server{
		Addr:         ":" + strconv.Itoa(cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	return server, loginLimiter.Close
}

func registerRoutes(mux *http.ServeMux, cfg *config.Config, files *media.Store) {
	mux.HandleFunc("GET /{$}", canchas.HandleHome)

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	if cfg.Features.EnableMetrics {
		mux.Handle("GET /metrics", metrics.Handler())
	}

	// Accounts
	mux.HandleFunc("GET /login", auth.HandleLoginPage)
	mux.HandleFunc("POST /login", auth.HandleLogin)
	mux.HandleFunc("POST /logout", auth.HandleLogout)
	mux.HandleFunc("GET /registro", auth.HandleRegistroPage)
	mux.HandleFunc("POST /registro", auth.HandleRegistro)
	mux.HandleFunc("GET /perfil/{id}/{slug}", auth.HandlePerfil)
	mux.HandleFunc("POST /perfil/imagen", auth.HandlePerfilImagen)

	// Navigation
	mux.HandleFunc("GET /api/v1/nav/menu", nav.HandleMenu)
	mux.HandleFunc("GET /api/v1/nav/menu/close", nav.HandleMenuClose)
	mux.HandleFunc("GET /api/v1/nav/search", nav.HandleSearch)

	// Courts
	mux.HandleFunc("GET /canchas/registro", canchas.HandleRegistroPage)
	mux.HandleFunc("POST /canchas/registro", canchas.HandleRegistro)
	mux.HandleFunc("GET /canchas/{id}/{slug}", canchas.HandleDetail)
	mux.HandleFunc("GET /canchas/{id}/{slug}/editar", canchas.HandleEditPage)
	mux.HandleFunc("POST /canchas/{id}/{slug}/editar", canchas.HandleEdit)
	mux.HandleFunc("POST /canchas/{id}/{slug}/eliminar", canchas.HandleDelete)
	mux.HandleFunc("POST /canchas/{id}/{slug}/resena", resenas.HandleUpsert)

	// Schedules and reservations
	mux.HandleFunc("POST /canchas/{id}/{slug}/horarios", horarios.HandleCreate)
	mux.HandleFunc("POST /canchas/{id}/{slug}/horarios/{horario_id}/eliminar", horarios.HandleDelete)
	mux.HandleFunc("GET /canchas/{id}/{slug}/horarios/{horario_id}/{inicio}/{fin}", horarios.HandleDetail)
	mux.HandleFunc("POST /canchas/{id}/{slug}/horarios/{horario_id}/{inicio}/{fin}/reservar", reservas.HandleReserve)
	mux.HandleFunc("GET /reservas", reservas.HandleMisReservas)
	mux.Handle("POST /reservas/{id}/cancelar", api.WithNoStore(http.HandlerFunc(reservas.HandleCancel)))

	// REST
	mux.HandleFunc("GET /api/canchas/{$}", canchas.HandleAPIList)
	mux.HandleFunc("POST /api/canchas/{$}", canchas.HandleAPICreate)
	mux.HandleFunc("GET /api/canchas/{slug}/{$}", canchas.HandleAPIGet)
	mux.HandleFunc("PUT /api/canchas/{slug}/{$}", canchas.HandleAPIUpdate)
	mux.HandleFunc("PATCH /api/canchas/{slug}/{$}", canchas.HandleAPIUpdate)
	mux.HandleFunc("DELETE /api/canchas/{slug}/{$}", canchas.HandleAPIDelete)

	mux.HandleFunc("GET /api/direcciones/{$}", direcciones.HandleList)
	mux.HandleFunc("POST /api/direcciones/{$}", direcciones.HandleCreate)
	mux.HandleFunc("GET /api/direcciones/{id}/{$}", direcciones.HandleGet)
	mux.HandleFunc("PUT /api/direcciones/{id}/{$}", direcciones.HandleUpdate)
	mux.HandleFunc("PATCH /api/direcciones/{id}/{$}", direcciones.HandleUpdate)
	mux.HandleFunc("DELETE /api/direcciones/{id}/{$}", direcciones.HandleDelete)

	mux.HandleFunc("GET /api/reservas/{$}", reservas.HandleAPIList)
	mux.HandleFunc("POST /api/reservas/{$}", reservas.HandleAPICreate)
	mux.HandleFunc("GET /api/reservas/{id}/{$}", reservas.HandleAPIGet)
	mux.HandleFunc("DELETE /api/reservas/{id}/{$}", reservas.HandleAPIDelete)

	// Files
	mux.Handle("GET /media/", http.StripPrefix("/media/", http.FileServer(http.Dir(files.Root()))))

	staticDir := cfg.App.StaticDir
	fs := http.FileServer(http.Dir(staticDir))
	mux.Handle("GET /static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Ctx(r.Context()).Debug().
			Str("path", r.URL.Path).
			Str("static_dir", staticDir).
			Msg("Static file request")
		http.StripPrefix("/static/", fs).ServeHTTP(w, r)
	}))
}
