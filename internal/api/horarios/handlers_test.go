package horarios

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/codr1/canchas/internal/api/apiutil"
	"github.com/codr1/canchas/internal/booking"
	appdb "github.com/codr1/canchas/internal/db"
	dbgen "github.com/codr1/canchas/internal/db/generated"
	"github.com/codr1/canchas/internal/testutil"
)

func setupHorariosTest(t *testing.T) *appdb.DB {
	t.Helper()

	database := testutil.NewTestDB(t)
	prevQueries, prevStore, prevPrice := queries, store, pricePerHourCents
	t.Cleanup(func() {
		queries, store, pricePerHourCents = prevQueries, prevStore, prevPrice
	})
	queries = database.Queries
	store = database
	pricePerHourCents = 10000
	return database
}

func withCancha(req *http.Request, c dbgen.Cancha) *http.Request {
	req.SetPathValue("id", fmt.Sprint(c.ID))
	req.SetPathValue("slug", c.Slug)
	return req
}

func tomorrow() string {
	return apiutil.Now().AddDate(0, 0, 1).Format(booking.DateLayout)
}

func TestValidateHorario(t *testing.T) {
	now := time.Date(2030, 5, 10, 15, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		fecha   string
		inicio  string
		fin     string
		wantErr string
	}{
		{name: "today", fecha: "2030-05-10", inicio: "08:00", fin: "10:00"},
		{name: "until midnight", fecha: "2030-05-11", inicio: "20:00", fin: "24:00"},
		{name: "past date", fecha: "2030-05-09", inicio: "08:00", fin: "10:00", wantErr: msgFechaPasada},
		{name: "bad date", fecha: "10/05/2030", inicio: "08:00", fin: "10:00", wantErr: msgFechaInvalida},
		{name: "inverted", fecha: "2030-05-11", inicio: "10:00", fin: "08:00", wantErr: msgRangoInvalido},
		{name: "equal bounds", fecha: "2030-05-11", inicio: "10:00", fin: "10:00", wantErr: msgRangoInvalido},
		{name: "bad time", fecha: "2030-05-11", inicio: "8am", fin: "10:00", wantErr: apiutil.MsgFormatoHora},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ValidateHorario(tt.fecha, tt.inicio, tt.fin, now)
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || err.Error() != tt.wantErr {
				t.Fatalf("expected %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestHandleCreate(t *testing.T) {
	database := setupHorariosTest(t)
	owner := testutil.SeedUser(t, database, "owner")
	other := testutil.SeedUser(t, database, "other")
	cancha := testutil.SeedCancha(t, database, owner.ID, "Cancha Central", "cancha-central")
	fecha := tomorrow()

	post := func(user dbgen.User, inicio, fin string) *httptest.ResponseRecorder {
		form := url.Values{"fecha": {fecha}, "hora_inicio": {inicio}, "hora_fin": {fin}}
		rec := httptest.NewRecorder()
		HandleCreate(rec, testutil.WithUser(withCancha(testutil.PostForm("/", form), cancha), user))
		return rec
	}

	if rec := post(other, "08:00", "10:00"); rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for non owner, got %d", rec.Code)
	}

	rec := post(owner, "08:00", "10:00")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if texts := testutil.FlashTexts(rec); len(texts) != 1 || texts[0] != "Horario creado exitosamente." {
		t.Fatalf("unexpected flash %v", texts)
	}

	rec = post(owner, "09:00", "11:00")
	if texts := testutil.FlashTexts(rec); len(texts) != 1 || texts[0] != msgHorarioSolapado {
		t.Fatalf("expected overlap rejection, got %v", texts)
	}

	rec = post(owner, "10:00", "12:00")
	if texts := testutil.FlashTexts(rec); len(texts) != 1 || texts[0] != "Horario creado exitosamente." {
		t.Fatalf("touching window should be accepted, got %v", texts)
	}

	horarios, err := database.Queries.ListHorariosFromDate(context.Background(), dbgen.ListHorariosFromDateParams{CanchaID: cancha.ID, Fecha: fecha})
	if err != nil {
		t.Fatalf("list schedules: %v", err)
	}
	if len(horarios) != 2 {
		t.Fatalf("expected 2 schedules, got %d", len(horarios))
	}
}

func TestHandleDeleteCascades(t *testing.T) {
	database := setupHorariosTest(t)
	owner := testutil.SeedUser(t, database, "owner")
	player := testutil.SeedUser(t, database, "player")
	cancha := testutil.SeedCancha(t, database, owner.ID, "Cancha Central", "cancha-central")
	horario := testutil.SeedHorario(t, database, cancha.ID, tomorrow(), "08:00", "12:00")
	testutil.SeedReserva(t, database, player.ID, horario.ID, "09:00", "10:00")

	req := withCancha(testutil.PostForm("/", url.Values{}), cancha)
	req.SetPathValue("horario_id", fmt.Sprint(horario.ID))

	rec := httptest.NewRecorder()
	HandleDelete(rec, testutil.WithUser(req, player))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for non owner, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	HandleDelete(rec, testutil.WithUser(req, owner))
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}

	reservas, err := database.Queries.ListReservasByUsuario(context.Background(), player.ID)
	if err != nil {
		t.Fatalf("list reservations: %v", err)
	}
	if len(reservas) != 0 {
		t.Fatalf("expected reservations to cascade, got %d", len(reservas))
	}
}

func TestHandleDetail(t *testing.T) {
	database := setupHorariosTest(t)
	owner := testutil.SeedUser(t, database, "owner")
	player := testutil.SeedUser(t, database, "player")
	cancha := testutil.SeedCancha(t, database, owner.ID, "Cancha Central", "cancha-central")
	horario := testutil.SeedHorario(t, database, cancha.ID, tomorrow(), "08:00", "12:00")
	testutil.SeedReserva(t, database, player.ID, horario.ID, "10:00", "11:00")

	get := func(inicio, fin string) *httptest.ResponseRecorder {
		req := withCancha(httptest.NewRequest(http.MethodGet, "/", nil), cancha)
		req.SetPathValue("horario_id", fmt.Sprint(horario.ID))
		req.SetPathValue("inicio", inicio)
		req.SetPathValue("fin", fin)
		rec := httptest.NewRecorder()
		HandleDetail(rec, testutil.WithUser(req, player))
		return rec
	}

	rec := get("08:00", "09:30")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	for _, want := range []string{"owner", "1 h 30 min", "150.00", "/reservar"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in page", want)
		}
	}

	rec = get("09:30", "10:30")
	if !strings.Contains(rec.Body.String(), "ya está reservado") || strings.Contains(rec.Body.String(), "/reservar") {
		t.Fatal("expected conflict message without reserve form")
	}

	rec = get("9", "10:00")
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect on malformed time, got %d", rec.Code)
	}
	if texts := testutil.FlashTexts(rec); len(texts) != 1 || texts[0] != apiutil.MsgFormatoHora {
		t.Fatalf("unexpected flash %v", texts)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := map[time.Duration]string{
		0:                          "0 min",
		30 * time.Minute:           "30 min",
		2 * time.Hour:              "2 h",
		time.Hour + 45*time.Minute: "1 h 45 min",
		-5 * time.Minute:           "0 min",
	}
	for d, want := range tests {
		if got := FormatDuration(d); got != want {
			t.Errorf("FormatDuration(%v) = %q, want %q", d, got, want)
		}
	}
}
