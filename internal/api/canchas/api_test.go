package canchas

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/codr1/canchas/internal/testutil"
)

func apiRequest(method, path, body string) *http.Request {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestCanchasAPI(t *testing.T) {
	database := setupCanchasTest(t)
	owner := testutil.SeedUser(t, database, "owner")
	other := testutil.SeedUser(t, database, "other")

	t.Run("anonymous is rejected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleAPIList(rec, httptest.NewRequest(http.MethodGet, "/api/canchas/", nil))
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})

	t.Run("create validates", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleAPICreate(rec, testutil.WithUser(apiRequest(http.MethodPost, "/api/canchas/", `{"nombre": ""}`), owner))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		var body struct{ Detail string }
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body.Detail == "" {
			t.Fatal("expected detail message")
		}
	})

	createBody := `{"nombre": "Loza Sur", "tipo_calle": "Calle", "nombre_calle": "Los Pinos", "numero_calle": "12", "distrito": "Surco"}`
	var created canchaResponse
	t.Run("create", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleAPICreate(rec, testutil.WithUser(apiRequest(http.MethodPost, "/api/canchas/", createBody), owner))
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if created.Slug != "loza-sur" || created.ResponsableID != owner.ID || created.Direccion == nil {
			t.Fatalf("unexpected court %+v", created)
		}
	})

	withSlug := func(req *http.Request) *http.Request {
		req.SetPathValue("slug", created.Slug)
		return req
	}

	t.Run("retrieve", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleAPIGet(rec, testutil.WithUser(withSlug(httptest.NewRequest(http.MethodGet, "/", nil)), other))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var got canchaResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.Direccion == nil || got.Direccion.Distrito != "Surco" {
			t.Fatalf("unexpected court %+v", got)
		}
	})

	t.Run("update by non owner is forbidden", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleAPIUpdate(rec, testutil.WithUser(withSlug(apiRequest(http.MethodPatch, "/", `{"nombre": "Mia"}`)), other))
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("patch keeps address", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleAPIUpdate(rec, testutil.WithUser(withSlug(apiRequest(http.MethodPatch, "/", `{"nombre": "Loza Sur Renovada"}`)), owner))
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var got canchaResponse
		if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.Nombre != "Loza Sur Renovada" || got.Slug != "loza-sur" || got.Direccion.NombreCalle != "Los Pinos" {
			t.Fatalf("unexpected court %+v", got)
		}
	})

	t.Run("put requires every field", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleAPIUpdate(rec, testutil.WithUser(withSlug(apiRequest(http.MethodPut, "/", `{"nombre": "Solo Nombre"}`)), owner))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("delete by non owner is forbidden", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleAPIDelete(rec, testutil.WithUser(withSlug(httptest.NewRequest(http.MethodDelete, "/", nil)), other))
		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
	})

	t.Run("owner deletes", func(t *testing.T) {
		rec := httptest.NewRecorder()
		HandleAPIDelete(rec, testutil.WithUser(withSlug(httptest.NewRequest(http.MethodDelete, "/", nil)), owner))
		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
		rec = httptest.NewRecorder()
		HandleAPIGet(rec, testutil.WithUser(withSlug(httptest.NewRequest(http.MethodGet, "/", nil)), owner))
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404 after delete, got %d", rec.Code)
		}
	})
}
