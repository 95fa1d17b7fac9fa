// internal/api/nav/handlers.go
package nav

import (
	"context"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/canchas/internal/api/apiutil"
	dbgen "github.com/codr1/canchas/internal/db/generated"
	"github.com/codr1/canchas/internal/templates/components/nav"
	"github.com/codr1/canchas/internal/templates/layouts"
)

const (
	searchLimit   = 10
	searchTimeout = 3 * time.Second
)

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

func HandleMenu(w http.ResponseWriter, r *http.Request) {
	apiutil.RenderHTMLComponent(r.Context(), w, nav.Menu(apiutil.NavUser(r)), nil, "Failed to render menu", "Failed to render menu")
}

func HandleMenuClose(w http.ResponseWriter, r *http.Request) {
	apiutil.RenderHTMLComponent(r.Context(), w, nav.MenuClosed(), nil, "Failed to render menu", "Failed to render menu")
}

// GET /api/v1/nav/search?q=
// Courts whose name or district contains q. htmx requests get the dropdown
// fragment, everything else JSON.
func HandleSearch(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	term := strings.TrimSpace(r.URL.Query().Get("q"))

	results := []nav.SearchResult{}
	if term != "" {
		q := loadQueries()
		if q == nil {
			logger.Error().Msg("Database queries not initialized")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), searchTimeout)
		defer cancel()

		rows, err := q.SearchCanchas(ctx, dbgen.SearchCanchasParams{Term: term, Limit: searchLimit})
		if err != nil {
			logger.Error().Err(err).Str("q", term).Msg("Court search failed")
			http.Error(w, "Search failed", http.StatusInternalServerError)
			return
		}
		for _, row := range rows {
			results = append(results, nav.SearchResult{
				ID:       row.ID,
				Nombre:   row.Nombre,
				Slug:     row.Slug,
				Imagen:   row.Imagen,
				Distrito: row.Distrito,
				URL:      layouts.CanchaPath(row.ID, row.Slug),
			})
		}
	}

	if apiutil.IsHTMXRequest(r) {
		apiutil.RenderHTMLComponent(r.Context(), w, nav.SearchResults(term, results), nil, "Failed to render search results", "Failed to render search results")
		return
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, results); err != nil {
		logger.Error().Err(err).Msg("Failed to write search results")
	}
}
