package main

import (
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/codr1/canchas/internal/config"
	"github.com/codr1/canchas/internal/email"
	"github.com/codr1/canchas/internal/media"
	"github.com/codr1/canchas/internal/testutil"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	database := testutil.NewTestDB(t)
	cfg := config.Default()
	cfg.App.SecretKey = "test-secret-key"
	cfg.App.StaticDir = t.TempDir()
	cfg.Features.EnableMetrics = true

	files, err := media.NewStore(t.TempDir())
	if err != nil {
		t.Fatalf("media.NewStore: %v", err)
	}

	server, closeServer := newServer(cfg, database, files, email.NewNotifier(nil), time.UTC)
	t.Cleanup(closeServer)

	ts := httptest.NewServer(server.Handler)
	t.Cleanup(ts.Close)
	return ts
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// Handler packages bind their dependencies once per process, so every
// check shares one server.
func TestServer(t *testing.T) {
	ts := newTestServer(t)
	t.Run("anonymous routes", func(t *testing.T) { checkAnonymousRoutes(t, ts) })
	t.Run("registered user", func(t *testing.T) { checkRegisteredUserFlow(t, ts) })
}

func checkAnonymousRoutes(t *testing.T, ts *httptest.Server) {
	client := newClient(t)

	tests := []struct {
		method       string
		path         string
		wantStatus   int
		wantLocation string
	}{
		{method: http.MethodGet, path: "/health", wantStatus: http.StatusOK},
		{method: http.MethodGet, path: "/", wantStatus: http.StatusOK},
		{method: http.MethodGet, path: "/login", wantStatus: http.StatusOK},
		{method: http.MethodGet, path: "/registro", wantStatus: http.StatusOK},
		{method: http.MethodGet, path: "/metrics", wantStatus: http.StatusOK},
		{method: http.MethodGet, path: "/api/v1/nav/search?q=central", wantStatus: http.StatusOK},
		{method: http.MethodGet, path: "/canchas/registro", wantStatus: http.StatusSeeOther, wantLocation: "/login?next=%2Fcanchas%2Fregistro"},
		{method: http.MethodGet, path: "/reservas", wantStatus: http.StatusSeeOther, wantLocation: "/login?next=%2Freservas"},
		{method: http.MethodGet, path: "/api/canchas/", wantStatus: http.StatusUnauthorized},
		{method: http.MethodGet, path: "/api/reservas/", wantStatus: http.StatusUnauthorized},
		{method: http.MethodDelete, path: "/api/direcciones/1/", wantStatus: http.StatusUnauthorized},
		{method: http.MethodDelete, path: "/canchas/registro", wantStatus: http.StatusMethodNotAllowed},
		{method: http.MethodGet, path: "/no-existe", wantStatus: http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req, err := http.NewRequest(tc.method, ts.URL+tc.path, nil)
			if err != nil {
				t.Fatalf("NewRequest: %v", err)
			}
			resp, err := client.Do(req)
			if err != nil {
				t.Fatalf("Do: %v", err)
			}
			resp.Body.Close()

			if resp.StatusCode != tc.wantStatus {
				t.Fatalf("status = %d, want %d", resp.StatusCode, tc.wantStatus)
			}
			if tc.wantLocation != "" && resp.Header.Get("Location") != tc.wantLocation {
				t.Fatalf("Location = %q, want %q", resp.Header.Get("Location"), tc.wantLocation)
			}
			if resp.Header.Get("X-Request-ID") == "" {
				t.Fatal("missing X-Request-ID header")
			}
		})
	}
}

func checkRegisteredUserFlow(t *testing.T, ts *httptest.Server) {
	client := newClient(t)

	resp, err := client.PostForm(ts.URL+"/registro", url.Values{
		"username":         {"jugador"},
		"email":            {"jugador@example.com"},
		"password":         {"golazo-2024"},
		"password_confirm": {"golazo-2024"},
	})
	if err != nil {
		t.Fatalf("registro: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("registro status = %d, want 303", resp.StatusCode)
	}

	resp, err = client.Get(ts.URL + "/reservas")
	if err != nil {
		t.Fatalf("reservas: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("reservas status = %d, want 200", resp.StatusCode)
	}

	body := `{"nombre":"Cancha Central","telefono":"","tipo_calle":"Av.","nombre_calle":"Arequipa","numero_calle":"123","distrito":"Miraflores","referencia":""}`
	resp, err = client.Post(ts.URL+"/api/canchas/", "application/json", strings.NewReader(body))
	if err != nil {
		t.Fatalf("create cancha: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create status = %d, want 201", resp.StatusCode)
	}

	resp, err = client.Get(ts.URL + "/api/canchas/cancha-central/")
	if err != nil {
		t.Fatalf("get cancha: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("get status = %d, want 200", resp.StatusCode)
	}
	var got struct {
		Slug      string `json:"slug"`
		Direccion struct {
			Distrito string `json:"distrito"`
		} `json:"direccion"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Slug != "cancha-central" || got.Direccion.Distrito != "Miraflores" {
		t.Fatalf("cancha = %+v", got)
	}
}
