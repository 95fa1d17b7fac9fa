package auth

import (
	"context"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/codr1/canchas/internal/api/authz"
)

const (
	authCookieName         = "canchas_auth"
	sessionCookieName      = "canchas_session"
	authSessionTTL         = 8 * time.Hour
	sessionTokenBytes      = 32
	sessionCleanupInterval = 15 * time.Minute
)

var errAuthConfigMissing = errors.New("auth configuration missing")

// authSession is the payload of the signed cookie that lets a user stay
// signed in after the in-memory session store is lost on restart.
type authSession struct {
	UserID    int64 `json:"user_id"`
	ExpiresAt int64 `json:"exp"`
}

type sessionRecord struct {
	UserID    int64
	ExpiresAt time.Time
}

var (
	sessionMu          sync.RWMutex
	sessionStore       = make(map[string]sessionRecord)
	sessionCleanupOnce sync.Once
)

func isSecureCookie() bool {
	cfg := loadConfig()
	return cfg == nil || !cfg.IsDevelopment()
}

func CreateSession(w http.ResponseWriter, userID int64) error {
	if w == nil {
		return errors.New("session requires response writer")
	}

	startSessionCleanup()
	clearExistingSessionsForUser(userID)

	token, err := newSessionToken()
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(authSessionTTL)
	sessionMu.Lock()
	sessionStore[token] = sessionRecord{
		UserID:    userID,
		ExpiresAt: expiresAt,
	}
	sessionMu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecureCookie(),
		SameSite: http.SameSiteLaxMode,
		Expires:  expiresAt,
		MaxAge:   int(authSessionTTL.Seconds()),
	})

	return nil
}

// ClearSession drops the server-side session and expires both cookies.
func ClearSession(w http.ResponseWriter, r *http.Request) {
	if r != nil {
		if cookie, err := r.Cookie(sessionCookieName); err == nil {
			deleteSession(cookie.Value)
		}
	}
	expireCookie(w, sessionCookieName)
	expireCookie(w, authCookieName)
}

func expireCookie(w http.ResponseWriter, name string) {
	if w == nil {
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecureCookie(),
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}

func SetAuthCookie(w http.ResponseWriter, userID int64) error {
	if w == nil || userID <= 0 {
		return errors.New("auth cookie requires response and user")
	}

	expiresAt := time.Now().Add(authSessionTTL).Unix()
	payload, err := json.Marshal(authSession{UserID: userID, ExpiresAt: expiresAt})
	if err != nil {
		return err
	}

	encodedPayload := base64.RawURLEncoding.EncodeToString(payload)
	signature, err := signPayload(encodedPayload)
	if err != nil {
		return err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    encodedPayload + "." + signature,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecureCookie(),
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(expiresAt, 0),
		MaxAge:   int(authSessionTTL.Seconds()),
	})

	return nil
}

// UserFromRequest resolves the signed-in user from the session token, or
// from the signed auth cookie when the token is unknown. It returns nil
// without error for anonymous requests.
func UserFromRequest(w http.ResponseWriter, r *http.Request) (*authz.AuthUser, error) {
	if r == nil {
		return nil, nil
	}

	user, err := userFromSessionToken(w, r)
	if err != nil || user != nil {
		return user, err
	}

	session, err := parseAuthCookie(r)
	if err != nil {
		expireCookie(w, authCookieName)
		return nil, err
	}
	if session == nil {
		return nil, nil
	}

	user, err = loadUser(r.Context(), session.UserID)
	if err != nil || user == nil {
		expireCookie(w, authCookieName)
		return nil, err
	}

	// Re-establish the in-memory session so later requests skip the DB
	// round trip through the cookie path.
	if err := CreateSession(w, user.ID); err != nil {
		return nil, err
	}
	return user, nil
}

func userFromSessionToken(w http.ResponseWriter, r *http.Request) (*authz.AuthUser, error) {
	startSessionCleanup()

	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return nil, nil
		}
		return nil, err
	}

	token := cookie.Value
	session, ok := getSession(token)
	if !ok {
		expireCookie(w, sessionCookieName)
		return nil, nil
	}

	user, err := loadUser(r.Context(), session.UserID)
	if err != nil || user == nil {
		deleteSession(token)
		expireCookie(w, sessionCookieName)
		return nil, err
	}
	return user, nil
}

// loadUser returns nil, nil when the user no longer exists.
func loadUser(ctx context.Context, userID int64) (*authz.AuthUser, error) {
	q := loadQueries()
	if q == nil {
		return nil, errors.New("auth queries not initialized")
	}

	user, err := q.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &authz.AuthUser{
		ID:       user.ID,
		Username: user.Username,
		Slug:     user.Slug,
		Email:    user.Email,
		Imagen:   user.Imagen,
	}, nil
}

func parseAuthCookie(r *http.Request) (*authSession, error) {
	cookie, err := r.Cookie(authCookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return nil, nil
		}
		return nil, err
	}

	parts := strings.SplitN(cookie.Value, ".", 2)
	if len(parts) != 2 {
		return nil, errors.New("invalid auth cookie")
	}

	encodedPayload := parts[0]
	signature := parts[1]
	expectedSignature, err := signPayload(encodedPayload)
	if err != nil {
		return nil, err
	}

	if !hmac.Equal([]byte(signature), []byte(expectedSignature)) {
		return nil, errors.New("invalid auth cookie signature")
	}

	payload, err := base64.RawURLEncoding.DecodeString(encodedPayload)
	if err != nil {
		return nil, err
	}

	var session authSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, err
	}

	if session.ExpiresAt <= time.Now().Unix() {
		return nil, errors.New("auth session expired")
	}
	if session.UserID <= 0 {
		return nil, errors.New("invalid auth cookie user")
	}

	return &session, nil
}

func signPayload(payload string) (string, error) {
	cfg := loadConfig()
	if cfg == nil || cfg.App.SecretKey == "" {
		return "", errAuthConfigMissing
	}

	mac := hmac.New(sha256.New, []byte(cfg.App.SecretKey))
	_, _ = mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil)), nil
}

func newSessionToken() (string, error) {
	token := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(token); err != nil {
		return "", err
	}

	return base64.RawURLEncoding.EncodeToString(token), nil
}

func startSessionCleanup() {
	sessionCleanupOnce.Do(func() {
		go func() {
			ticker := time.NewTicker(sessionCleanupInterval)
			defer ticker.Stop()
			for range ticker.C {
				pruneExpiredSessions()
			}
		}()
	})
}

func pruneExpiredSessions() {
	now := time.Now()
	sessionMu.Lock()
	for token, session := range sessionStore {
		if session.ExpiresAt.Before(now) {
			delete(sessionStore, token)
		}
	}
	sessionMu.Unlock()
}

func clearExistingSessionsForUser(userID int64) {
	sessionMu.Lock()
	for token, session := range sessionStore {
		if session.UserID == userID {
			delete(sessionStore, token)
		}
	}
	sessionMu.Unlock()
}

func getSession(token string) (sessionRecord, bool) {
	sessionMu.RLock()
	session, ok := sessionStore[token]
	sessionMu.RUnlock()
	if !ok {
		return sessionRecord{}, false
	}

	if session.ExpiresAt.Before(time.Now()) {
		deleteSession(token)
		return sessionRecord{}, false
	}

	return session, true
}

func deleteSession(token string) {
	sessionMu.Lock()
	delete(sessionStore, token)
	sessionMu.Unlock()
}
