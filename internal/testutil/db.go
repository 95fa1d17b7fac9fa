package testutil

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/codr1/canchas/internal/db"
	dbgen "github.com/codr1/canchas/internal/db/generated"
)

// NewTestDB creates a temporary SQLite database with migrations applied.
func NewTestDB(t *testing.T) *db.DB {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	database, err := db.New(dbPath)
	if err != nil {
		t.Fatalf("create test db: %v", err)
	}
	t.Cleanup(func() {
		_ = database.Close()
	})

	return database
}

// SeedUser inserts a user whose slug is the username. The password hash is
// not a real bcrypt hash; tests that log in must set their own.
func SeedUser(t *testing.T, database *db.DB, username string) dbgen.User {
	t.Helper()

	user, err := database.Queries.CreateUser(context.Background(), dbgen.CreateUserParams{
		Username:     username,
		Slug:         username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	})
	if err != nil {
		t.Fatalf("seed user %s: %v", username, err)
	}
	return user
}

// SeedCancha inserts a court with one address owned by responsableID.
func SeedCancha(t *testing.T, database *db.DB, responsableID int64, nombre, slug string) dbgen.Cancha {
	t.Helper()

	ctx := context.Background()
	cancha, err := database.Queries.CreateCancha(ctx, dbgen.CreateCanchaParams{
		Nombre:        nombre,
		Slug:          slug,
		ResponsableID: responsableID,
		Imagen:        "canchas/default-cancha.jpg",
		Telefono:      sql.NullString{},
	})
	if err != nil {
		t.Fatalf("seed cancha %s: %v", slug, err)
	}
	if _, err := database.Queries.CreateDireccion(ctx, dbgen.CreateDireccionParams{
		CanchaID:    cancha.ID,
		TipoCalle:   "Avenida",
		NombreCalle: "Arequipa",
		NumeroCalle: "123",
		Distrito:    "Miraflores",
	}); err != nil {
		t.Fatalf("seed direccion for %s: %v", slug, err)
	}
	return cancha
}

// SeedHorario inserts a schedule window; times use HH:MM.
func SeedHorario(t *testing.T, database *db.DB, canchaID int64, fecha, inicio, fin string) dbgen.Horario {
	t.Helper()

	horario, err := database.Queries.CreateHorario(context.Background(), dbgen.CreateHorarioParams{
		CanchaID:   canchaID,
		Fecha:      fecha,
		HoraInicio: inicio,
		HoraFin:    fin,
	})
	if err != nil {
		t.Fatalf("seed horario: %v", err)
	}
	return horario
}

// SeedReserva books [inicio, fin) inside a schedule without any checks.
func SeedReserva(t *testing.T, database *db.DB, usuarioID, horarioID int64, inicio, fin string) dbgen.Reserva {
	t.Helper()

	reserva, err := database.Queries.CreateReserva(context.Background(), dbgen.CreateReservaParams{
		UsuarioID:         usuarioID,
		HorarioID:         horarioID,
		HoraReservaInicio: inicio,
		HoraReservaFin:    fin,
	})
	if err != nil {
		t.Fatalf("seed reserva: %v", err)
	}
	return reserva
}
