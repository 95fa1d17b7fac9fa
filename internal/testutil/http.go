package testutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/codr1/canchas/internal/api/authz"
	"github.com/codr1/canchas/internal/api/flash"
	dbgen "github.com/codr1/canchas/internal/db/generated"
)

// WithUser returns req signed in as user.
func WithUser(req *http.Request, user dbgen.User) *http.Request {
	return req.WithContext(authz.ContextWithUser(req.Context(), &authz.AuthUser{
		ID:       user.ID,
		Username: user.Username,
		Slug:     user.Slug,
		Email:    user.Email,
		Imagen:   user.Imagen,
	}))
}

// PostForm builds a urlencoded POST request.
func PostForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

// FlashTexts returns the flash messages queued on rec.
func FlashTexts(rec *httptest.ResponseRecorder) []string {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}
	var texts []string
	for _, m := range flash.Consume(httptest.NewRecorder(), req) {
		texts = append(texts, m.Text)
	}
	return texts
}
