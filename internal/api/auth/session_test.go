package auth

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/codr1/canchas/internal/config"
	"github.com/codr1/canchas/internal/testutil"
)

func setupSessionTest(t *testing.T) {
	t.Helper()

	database := testutil.NewTestDB(t)
	cfg := config.Default()
	cfg.App.SecretKey = "test-secret"

	prevQueries, prevStore, prevConfig := queries, store, appConfig
	t.Cleanup(func() {
		stateMu.Lock()
		queries, store, appConfig = prevQueries, prevStore, prevConfig
		stateMu.Unlock()
	})

	stateMu.Lock()
	queries, store, appConfig = database.Queries, database, cfg
	stateMu.Unlock()

	testutil.SeedUser(t, database, "ana")
}

func makeAuthRequest(t *testing.T, session authSession) *http.Request {
	t.Helper()

	payload, err := json.Marshal(session)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}
	encodedPayload := base64.RawURLEncoding.EncodeToString(payload)
	signature, err := signPayload(encodedPayload)
	if err != nil {
		t.Fatalf("sign payload: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{
		Name:  authCookieName,
		Value: encodedPayload + "." + signature,
	})
	return req
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}

func TestSessionRoundTrip(t *testing.T) {
	setupSessionTest(t)

	rec := httptest.NewRecorder()
	if err := CreateSession(rec, 1); err != nil {
		t.Fatalf("create session: %v", err)
	}
	cookie := cookieNamed(rec, sessionCookieName)
	if cookie == nil {
		t.Fatal("expected session cookie")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(cookie)
	user, err := UserFromRequest(httptest.NewRecorder(), req)
	if err != nil {
		t.Fatalf("user from request: %v", err)
	}
	if user == nil || user.Username != "ana" {
		t.Fatalf("expected ana, got %+v", user)
	}

	ClearSession(httptest.NewRecorder(), req)
	user, err = UserFromRequest(httptest.NewRecorder(), req)
	if err != nil || user != nil {
		t.Fatalf("expected cleared session, got %+v %v", user, err)
	}
}

func TestUserFromAuthCookieRestoresSession(t *testing.T) {
	setupSessionTest(t)

	req := makeAuthRequest(t, authSession{UserID: 1, ExpiresAt: time.Now().Add(time.Hour).Unix()})
	rec := httptest.NewRecorder()
	user, err := UserFromRequest(rec, req)
	if err != nil {
		t.Fatalf("user from request: %v", err)
	}
	if user == nil || user.ID != 1 {
		t.Fatalf("expected user 1, got %+v", user)
	}
	if cookieNamed(rec, sessionCookieName) == nil {
		t.Fatal("expected a fresh session cookie")
	}
}

func TestParseAuthCookieRejectsTampering(t *testing.T) {
	setupSessionTest(t)

	req := makeAuthRequest(t, authSession{UserID: 1, ExpiresAt: time.Now().Add(time.Hour).Unix()})
	cookie, _ := req.Cookie(authCookieName)
	forged, _ := json.Marshal(authSession{UserID: 2, ExpiresAt: time.Now().Add(time.Hour).Unix()})
	_, signature, _ := cutLast(cookie.Value)

	tampered := httptest.NewRequest(http.MethodGet, "/", nil)
	tampered.AddCookie(&http.Cookie{
		Name:  authCookieName,
		Value: base64.RawURLEncoding.EncodeToString(forged) + "." + signature,
	})
	if _, err := parseAuthCookie(tampered); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestParseAuthCookieRejectsExpired(t *testing.T) {
	setupSessionTest(t)

	req := makeAuthRequest(t, authSession{UserID: 1, ExpiresAt: time.Now().Add(-time.Minute).Unix()})
	if _, err := parseAuthCookie(req); err == nil {
		t.Fatal("expected expiry error")
	}
}

func TestSignPayloadRequiresSecret(t *testing.T) {
	setupSessionTest(t)
	stateMu.Lock()
	appConfig = config.Default()
	stateMu.Unlock()

	if _, err := signPayload("x"); err != errAuthConfigMissing {
		t.Fatalf("expected errAuthConfigMissing, got %v", err)
	}
}

func TestPruneExpiredSessions(t *testing.T) {
	sessionMu.Lock()
	sessionStore["expired"] = sessionRecord{UserID: 9, ExpiresAt: time.Now().Add(-time.Second)}
	sessionStore["live"] = sessionRecord{UserID: 9, ExpiresAt: time.Now().Add(time.Hour)}
	sessionMu.Unlock()
	t.Cleanup(func() {
		deleteSession("live")
	})

	pruneExpiredSessions()

	if _, ok := getSession("expired"); ok {
		t.Fatal("expected expired session to be pruned")
	}
	if _, ok := getSession("live"); !ok {
		t.Fatal("expected live session to remain")
	}
}

func cutLast(value string) (string, string, bool) {
	for i := len(value) - 1; i >= 0; i-- {
		if value[i] == '.' {
			return value[:i], value[i+1:], true
		}
	}
	return value, "", false
}
