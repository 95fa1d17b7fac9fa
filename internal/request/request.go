package request

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// ParseID parses a positive int64 identifier.
func ParseID(value string) (int64, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return 0, false
	}

	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}

// PathID parses the named path wildcard as a positive int64.
func PathID(r *http.Request, name string) (int64, bool) {
	return ParseID(r.PathValue(name))
}

// SafeNext returns a local redirect target taken from the "next" form or
// query value, or fallback when it is missing or points off-site.
func SafeNext(r *http.Request, fallback string) string {
	next := strings.TrimSpace(r.FormValue("next"))
	if next == "" {
		return fallback
	}

	parsed, err := url.Parse(next)
	if err != nil {
		log.Ctx(r.Context()).
			Debug().
			Err(err).
			Str("next", next).
			Msg("Failed to parse next URL")
		return fallback
	}
	if parsed.IsAbs() || parsed.Host != "" || !strings.HasPrefix(parsed.Path, "/") || strings.HasPrefix(next, "//") {
		return fallback
	}
	return parsed.RequestURI()
}
