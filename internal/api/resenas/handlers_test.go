package resenas

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	dbgen "github.com/codr1/canchas/internal/db/generated"
	"github.com/codr1/canchas/internal/models"
	"github.com/codr1/canchas/internal/testutil"
)

func TestHandleUpsert(t *testing.T) {
	database := testutil.NewTestDB(t)
	prev := queries
	t.Cleanup(func() { queries = prev })
	queries = database.Queries

	owner := testutil.SeedUser(t, database, "owner")
	player := testutil.SeedUser(t, database, "player")
	cancha := testutil.SeedCancha(t, database, owner.ID, "Cancha Central", "cancha-central")

	post := func(user dbgen.User, calificacion, comentario string) *httptest.ResponseRecorder {
		form := url.Values{"calificacion": {calificacion}, "comentario": {comentario}}
		req := testutil.PostForm("/", form)
		req.SetPathValue("id", fmt.Sprint(cancha.ID))
		req.SetPathValue("slug", cancha.Slug)
		rec := httptest.NewRecorder()
		HandleUpsert(rec, testutil.WithUser(req, user))
		return rec
	}

	tests := []struct {
		name         string
		user         dbgen.User
		calificacion string
		comentario   string
		flash        string
	}{
		{name: "owner", user: owner, calificacion: "5", flash: models.ErrResenaPropia.Error()},
		{name: "zero", user: player, calificacion: "0", flash: models.ErrCalificacionInvalida.Error()},
		{name: "six", user: player, calificacion: "6", flash: models.ErrCalificacionInvalida.Error()},
		{name: "not a number", user: player, calificacion: "cinco", flash: models.ErrCalificacionInvalida.Error()},
		{name: "long comment", user: player, calificacion: "4", comentario: strings.Repeat("á", models.MaxComentarioLength+1), flash: models.ErrComentarioLargo.Error()},
		{name: "first review", user: player, calificacion: "3", comentario: "  Regular  ", flash: "Gracias por tu reseña."},
		{name: "update review", user: player, calificacion: "5", comentario: strings.Repeat("á", models.MaxComentarioLength), flash: "Gracias por tu reseña."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := post(tt.user, tt.calificacion, tt.comentario)
			if rec.Code != http.StatusSeeOther {
				t.Fatalf("expected 303, got %d", rec.Code)
			}
			if texts := testutil.FlashTexts(rec); len(texts) != 1 || texts[0] != tt.flash {
				t.Fatalf("flash = %v, want %q", texts, tt.flash)
			}
		})
	}

	resenas, err := database.Queries.ListResenasByCancha(context.Background(), cancha.ID)
	if err != nil {
		t.Fatalf("list reviews: %v", err)
	}
	if len(resenas) != 1 || resenas[0].Calificacion != 5 {
		t.Fatalf("expected one updated review, got %+v", resenas)
	}
}
