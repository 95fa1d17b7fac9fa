package apiutil

import (
	"net/http"
	"sync"
	"time"

	"github.com/codr1/canchas/internal/api/authz"
	"github.com/codr1/canchas/internal/api/flash"
	"github.com/codr1/canchas/internal/templates/layouts"
)

var (
	locationMu sync.RWMutex
	location   = time.Local
)

// SetLocation sets the zone used for "today" and for past-date checks.
func SetLocation(loc *time.Location) {
	if loc == nil {
		return
	}
	locationMu.Lock()
	location = loc
	locationMu.Unlock()
}

func Location() *time.Location {
	locationMu.RLock()
	defer locationMu.RUnlock()
	return location
}

// Now is the current time in the configured zone.
func Now() time.Time {
	return time.Now().In(Location())
}

// NavUser maps the request's user to the header model.
func NavUser(r *http.Request) *layouts.NavUser {
	user := authz.UserFromContext(r.Context())
	if user == nil {
		return nil
	}
	return &layouts.NavUser{
		ID:       user.ID,
		Username: user.Username,
		Slug:     user.Slug,
		Imagen:   user.Imagen,
	}
}

// NewPage builds the layout model for a full page, draining flash messages
// set by earlier requests. extra are messages raised while handling this one.
func NewPage(w http.ResponseWriter, r *http.Request, title string, extra ...flash.Message) layouts.Page {
	messages := append(flash.Consume(w, r), extra...)
	flashes := make([]layouts.Flash, 0, len(messages))
	for _, m := range messages {
		flashes = append(flashes, layouts.Flash{Level: string(m.Level), Text: m.Text})
	}
	return layouts.Page{
		Title:   title,
		User:    NavUser(r),
		Flashes: flashes,
		Today:   Now().Format("2006-01-02"),
	}
}
