package apiutil

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"

	"github.com/a-h/templ"
	"github.com/rs/zerolog/log"

	"github.com/codr1/canchas/internal/api/authz"
)

type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

type HandlerError struct {
	Status  int
	Message string
	Err     error
}

func (e HandlerError) Error() string {
	return e.Message
}

func (e HandlerError) Unwrap() error {
	return e.Err
}

func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return fmt.Errorf("missing request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	if err := encoder.Encode(payload); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

// APIError is the body of every non-2xx JSON response.
type APIError struct {
	Detail string `json:"detail"`
}

func WriteAPIError(w http.ResponseWriter, status int, detail string) {
	_ = WriteJSON(w, status, APIError{Detail: detail})
}

// IsJSONRequest reports whether the client sent or asked for JSON.
func IsJSONRequest(r *http.Request) bool {
	if mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil && mediaType == "application/json" {
		return true
	}
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}

// RenderHTMLComponent renders component as text/html. On failure it logs
// logMsg, answers 500 with errMsg and returns false.
func RenderHTMLComponent(ctx context.Context, w http.ResponseWriter, component templ.Component, headers map[string]string, logMsg, errMsg string) bool {
	return RenderHTMLComponentStatus(ctx, w, http.StatusOK, component, headers, logMsg, errMsg)
}

// RenderHTMLComponentStatus is RenderHTMLComponent with an explicit status,
// used when a form is re-rendered with errors.
func RenderHTMLComponentStatus(ctx context.Context, w http.ResponseWriter, status int, component templ.Component, headers map[string]string, logMsg, errMsg string) bool {
	var buf bytes.Buffer
	if err := component.Render(ctx, &buf); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg(logMsg)
		http.Error(w, errMsg, http.StatusInternalServerError)
		return false
	}
	for key, value := range headers {
		w.Header().Set(key, value)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if _, err := w.Write(buf.Bytes()); err != nil {
		log.Ctx(ctx).Error().Err(err).Msg("Failed to write HTML response")
		return false
	}
	return true
}

// WriteHTMLFeedback writes a small status fragment for htmx swaps.
func WriteHTMLFeedback(w http.ResponseWriter, status int, message string) {
	class := "message message-success"
	if status >= http.StatusBadRequest {
		class = "message message-error"
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = fmt.Fprintf(w, `<p class="%s">%s</p>`, class, templ.EscapeString(message))
}

func FirstNonEmpty(values ...string) string {
	for _, value := range values {
		if strings.TrimSpace(value) != "" {
			return value
		}
	}
	return ""
}

// IsHTMXRequest reports whether r was issued by htmx.
func IsHTMXRequest(r *http.Request) bool {
	return strings.EqualFold(r.Header.Get("HX-Request"), "true")
}

// Redirect sends the browser to target; htmx requests get HX-Redirect so
// the whole page navigates instead of swapping a fragment.
func Redirect(w http.ResponseWriter, r *http.Request, target string) {
	if IsHTMXRequest(r) {
		w.Header().Set("HX-Redirect", target)
		w.WriteHeader(http.StatusOK)
		return
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

// LoginURL is the login page that returns to next afterwards.
func LoginURL(next string) string {
	if next == "" || next == "/" {
		return "/login"
	}
	return "/login?next=" + url.QueryEscape(next)
}

// RequirePageUser returns the signed-in user or redirects to the login page.
func RequirePageUser(w http.ResponseWriter, r *http.Request) (*authz.AuthUser, bool) {
	user := authz.UserFromContext(r.Context())
	if user == nil {
		log.Ctx(r.Context()).Debug().Str("path", r.URL.Path).Msg("Anonymous request redirected to login")
		Redirect(w, r, LoginURL(r.URL.RequestURI()))
		return nil, false
	}
	return user, true
}

// RequireAPIUser returns the signed-in user or answers 401.
func RequireAPIUser(w http.ResponseWriter, r *http.Request) (*authz.AuthUser, bool) {
	user := authz.UserFromContext(r.Context())
	if user == nil {
		log.Ctx(r.Context()).Warn().Str("path", r.URL.Path).Msg("API access denied: unauthenticated")
		WriteAPIError(w, http.StatusUnauthorized, "Authentication required")
		return nil, false
	}
	return user, true
}
