// Package flash carries one-shot user messages across a redirect in a
// signed cookie.
package flash

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"
)

const (
	cookieName  = "canchas_flash"
	maxMessages = 10
	cookieTTL   = 5 * time.Minute
)

type Level string

const (
	LevelSuccess Level = "success"
	LevelError   Level = "error"
	LevelInfo    Level = "info"
)

type Message struct {
	Level Level  `json:"l"`
	Text  string `json:"t"`
}

var (
	configMu sync.RWMutex
	secret   []byte
	secure   bool
)

var errInvalidCookie = errors.New("invalid flash cookie")

// Configure sets the signing key and whether cookies require HTTPS.
func Configure(secretKey string, secureCookies bool) {
	configMu.Lock()
	secret = []byte(secretKey)
	secure = secureCookies
	configMu.Unlock()
}

func Success(w http.ResponseWriter, r *http.Request, text string) {
	Add(w, r, LevelSuccess, text)
}

func Error(w http.ResponseWriter, r *http.Request, text string) {
	Add(w, r, LevelError, text)
}

func Info(w http.ResponseWriter, r *http.Request, text string) {
	Add(w, r, LevelInfo, text)
}

// Add queues a message for the next page render, keeping any unread ones
// that arrived with r. Pages rendered in the same request must be handed
// their messages directly.
func Add(w http.ResponseWriter, r *http.Request, level Level, text string) {
	messages := pending(r)
	messages = append(messages, Message{Level: level, Text: text})
	if len(messages) > maxMessages {
		messages = messages[len(messages)-maxMessages:]
	}
	setMessages(w, messages)
}

// Consume returns the queued messages and clears the cookie.
func Consume(w http.ResponseWriter, r *http.Request) []Message {
	messages := pending(r)
	if len(messages) == 0 {
		return nil
	}
	setMessages(w, nil)
	return messages
}

func pending(r *http.Request) []Message {
	cookie, err := r.Cookie(cookieName)
	if err != nil {
		return nil
	}
	messages, err := decode(cookie.Value)
	if err != nil {
		return nil
	}
	return messages
}

func setMessages(w http.ResponseWriter, messages []Message) {
	configMu.RLock()
	isSecure := secure
	configMu.RUnlock()

	cookie := &http.Cookie{
		Name:     cookieName,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if len(messages) == 0 {
		cookie.Value = ""
		cookie.Expires = time.Unix(0, 0)
		cookie.MaxAge = -1
	} else {
		value, err := encode(messages)
		if err != nil {
			return
		}
		cookie.Value = value
		cookie.Expires = time.Now().Add(cookieTTL)
		cookie.MaxAge = int(cookieTTL.Seconds())
	}
	http.SetCookie(w, cookie)
}

func encode(messages []Message) (string, error) {
	payload, err := json.Marshal(messages)
	if err != nil {
		return "", err
	}
	encoded := base64.RawURLEncoding.EncodeToString(payload)
	return encoded + "." + sign(encoded), nil
}

func decode(value string) ([]Message, error) {
	encoded, signature, ok := strings.Cut(value, ".")
	if !ok {
		return nil, errInvalidCookie
	}
	if !hmac.Equal([]byte(signature), []byte(sign(encoded))) {
		return nil, errInvalidCookie
	}
	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}
	var messages []Message
	if err := json.Unmarshal(payload, &messages); err != nil {
		return nil, err
	}
	return messages, nil
}

func sign(payload string) string {
	configMu.RLock()
	key := secret
	configMu.RUnlock()

	mac := hmac.New(sha256.New, key)
	_, _ = mac.Write([]byte(payload))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}
