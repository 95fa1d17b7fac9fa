package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/codr1/canchas/internal/api/authz"
	"github.com/codr1/canchas/internal/config"
	appdb "github.com/codr1/canchas/internal/db"
	dbgen "github.com/codr1/canchas/internal/db/generated"
	"github.com/codr1/canchas/internal/ratelimit"
	"github.com/codr1/canchas/internal/testutil"
)

func setupAuthTest(t *testing.T) *appdb.DB {
	t.Helper()

	database := testutil.NewTestDB(t)
	cfg := config.Default()
	cfg.App.Environment = "development"
	cfg.App.SecretKey = "test-secret-key"

	limiter := ratelimit.New(&ratelimit.Config{MaxAttempts: 2, Window: time.Minute, Lockout: time.Minute, MaxIPPerWindow: 100})
	t.Cleanup(limiter.Close)

	// Save and restore global state
	prevQueries, prevStore, prevConfig, prevLimiter := queries, store, appConfig, loginLimiter
	t.Cleanup(func() {
		stateMu.Lock()
		queries, store, appConfig, loginLimiter = prevQueries, prevStore, prevConfig, prevLimiter
		stateMu.Unlock()
	})

	InitHandlers(database, cfg, nil, limiter)
	return database
}

func createLoginUser(t *testing.T, database *appdb.DB, username, password string) dbgen.User {
	t.Helper()

	hash, err := HashPassword(password)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	user, err := database.Queries.CreateUser(context.Background(), dbgen.CreateUserParams{
		Username:     username,
		Slug:         username,
		Email:        username + "@example.com",
		PasswordHash: hash,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestHandleRegistroCreatesUserAndSession(t *testing.T) {
	database := setupAuthTest(t)

	form := url.Values{}
	form.Set("username", "Lucía.Pérez")
	form.Set("email", "LUCIA@example.com")
	form.Set("password", "segura123")
	form.Set("password_confirm", "segura123")

	rec := httptest.NewRecorder()
	HandleRegistro(rec, postForm("/registro", form))

	// Accented letters are not allowed in usernames.
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid username, got %d", rec.Code)
	}

	form.Set("username", "lucia.perez")
	rec = httptest.NewRecorder()
	HandleRegistro(rec, postForm("/registro", form))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d: %s", rec.Code, rec.Body.String())
	}
	if cookieNamed(rec, sessionCookieName) == nil || cookieNamed(rec, authCookieName) == nil {
		t.Fatal("expected session and auth cookies")
	}

	user, err := database.Queries.GetUserByLogin(context.Background(), "lucia@example.com")
	if err != nil {
		t.Fatalf("expected stored user: %v", err)
	}
	if user.Slug != "lucia-perez" {
		t.Fatalf("unexpected slug %q", user.Slug)
	}
	if !VerifyPassword(user.PasswordHash, "segura123") {
		t.Fatal("expected bcrypt hash of the password")
	}

	rec = httptest.NewRecorder()
	HandleRegistro(rec, postForm("/registro", form))
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 for duplicate user, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "ya están registrados") {
		t.Fatalf("expected duplicate message, got %s", rec.Body.String())
	}
}

func TestHandleRegistroPasswordMismatch(t *testing.T) {
	setupAuthTest(t)

	form := url.Values{}
	form.Set("username", "pedro")
	form.Set("email", "pedro@example.com")
	form.Set("password", "segura123")
	form.Set("password_confirm", "otra12345")

	rec := httptest.NewRecorder()
	HandleRegistro(rec, postForm("/registro", form))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "no coinciden") {
		t.Fatalf("expected mismatch message, got %s", rec.Body.String())
	}
}

func TestHandleLogin(t *testing.T) {
	database := setupAuthTest(t)
	createLoginUser(t, database, "maria", "contrasena1")

	form := url.Values{}
	form.Set("login", "maria@example.com")
	form.Set("password", "contrasena1")
	form.Set("next", "/reservas")

	rec := httptest.NewRecorder()
	HandleLogin(rec, postForm("/login", form))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Location"); got != "/reservas" {
		t.Fatalf("expected redirect to next, got %q", got)
	}
	if cookieNamed(rec, sessionCookieName) == nil {
		t.Fatal("expected session cookie")
	}
}

func TestHandleLoginRejectsOffsiteNext(t *testing.T) {
	database := setupAuthTest(t)
	createLoginUser(t, database, "maria", "contrasena1")

	form := url.Values{}
	form.Set("login", "maria")
	form.Set("password", "contrasena1")
	form.Set("next", "https://evil.example.com/")

	rec := httptest.NewRecorder()
	HandleLogin(rec, postForm("/login", form))
	if got := rec.Header().Get("Location"); got != "/" {
		t.Fatalf("expected redirect home, got %q", got)
	}
}

func TestHandleLoginLocksOutAfterFailures(t *testing.T) {
	database := setupAuthTest(t)
	createLoginUser(t, database, "maria", "contrasena1")

	form := url.Values{}
	form.Set("login", "maria")
	form.Set("password", "incorrecta")

	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		HandleLogin(rec, postForm("/login", form))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("attempt %d: expected 401, got %d", i+1, rec.Code)
		}
	}

	form.Set("password", "contrasena1")
	rec := httptest.NewRecorder()
	HandleLogin(rec, postForm("/login", form))
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429 during lockout, got %d", rec.Code)
	}
}

func TestHandleLogoutClearsCookies(t *testing.T) {
	setupAuthTest(t)

	rec := httptest.NewRecorder()
	HandleLogout(rec, httptest.NewRequest(http.MethodPost, "/logout", nil))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect, got %d", rec.Code)
	}
	cookie := cookieNamed(rec, sessionCookieName)
	if cookie == nil || cookie.MaxAge >= 0 {
		t.Fatalf("expected expired session cookie, got %+v", cookie)
	}
}

func TestHandlePerfil(t *testing.T) {
	database := setupAuthTest(t)
	owner := testutil.SeedUser(t, database, "dueno")
	testutil.SeedCancha(t, database, owner.ID, "Cancha Norte", "cancha-norte")
	viewer := testutil.SeedUser(t, database, "visita")

	req := httptest.NewRequest(http.MethodGet, "/perfil/1/dueno", nil)
	req.SetPathValue("id", "1")
	req.SetPathValue("slug", "dueno")
	req = req.WithContext(authz.ContextWithUser(req.Context(), &authz.AuthUser{ID: viewer.ID, Username: viewer.Username, Slug: viewer.Slug}))
	rec := httptest.NewRecorder()

	HandlePerfil(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Cancha Norte") {
		t.Fatalf("expected owned court listed, got %s", body)
	}
	if strings.Contains(body, "/perfil/imagen") {
		t.Fatal("avatar form must only show on the viewer's own profile")
	}

	req.SetPathValue("slug", "otro")
	rec = httptest.NewRecorder()
	HandlePerfil(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for slug mismatch, got %d", rec.Code)
	}
}
