package canchas

import (
	"github.com/codr1/canchas/internal/booking"
	dbgen "github.com/codr1/canchas/internal/db/generated"
)

type Card struct {
	ID       int64
	Nombre   string
	Slug     string
	Imagen   string
	Distrito string
}

func NewCards(rows []dbgen.ListCanchasWithDistritoRow) []Card {
	cards := make([]Card, 0, len(rows))
	for _, row := range rows {
		cards = append(cards, Card{
			ID:       row.ID,
			Nombre:   row.Nombre,
			Slug:     row.Slug,
			Imagen:   row.Imagen,
			Distrito: row.Distrito.String,
		})
	}
	return cards
}

// FormData backs both the registration and the edit form.
type FormData struct {
	Title       string
	Action      string
	Submit      string
	Error       string
	IsEdit      bool
	CanchaID    int64
	Slug        string
	Imagen      string
	Nombre      string
	Telefono    string
	TipoCalle   string
	NombreCalle string
	NumeroCalle string
	Distrito    string
	Referencia  string
}

// FormDataFromRows prefills the edit form from stored rows.
func FormDataFromRows(cancha dbgen.Cancha, direccion *dbgen.Direccion) FormData {
	data := FormData{
		IsEdit:   true,
		CanchaID: cancha.ID,
		Slug:     cancha.Slug,
		Imagen:   cancha.Imagen,
		Nombre:   cancha.Nombre,
		Telefono: cancha.Telefono.String,
	}
	if direccion != nil {
		data.TipoCalle = direccion.TipoCalle
		data.NombreCalle = direccion.NombreCalle
		data.NumeroCalle = direccion.NumeroCalle
		data.Distrito = direccion.Distrito
		data.Referencia = direccion.Referencia
	}
	return data
}

type CanchaView struct {
	ID       int64
	Nombre   string
	Slug     string
	Imagen   string
	Telefono string
}

type DireccionView struct {
	TipoCalle   string
	NombreCalle string
	NumeroCalle string
	Distrito    string
	Referencia  string
}

type ResenaView struct {
	Username     string
	Calificacion int64
	Comentario   string
	Fecha        string
}

type HorarioView struct {
	ID     int64
	Inicio string
	Fin    string
	Slots  []booking.Slot
	Libres []booking.Range
}

type DiaHorarios struct {
	Fecha    string
	Horarios []HorarioView
}

type DetailData struct {
	Cancha        CanchaView
	Direccion     *DireccionView
	EsResponsable bool
	Calificacion  *float64
	TotalResenas  int64
	MiResena      *ResenaView
	Resenas       []ResenaView
	Dias          []DiaHorarios
	Horas         []string
	Hoy           string
}

func NewCanchaView(c dbgen.Cancha) CanchaView {
	return CanchaView{
		ID:       c.ID,
		Nombre:   c.Nombre,
		Slug:     c.Slug,
		Imagen:   c.Imagen,
		Telefono: c.Telefono.String,
	}
}

func NewDireccionView(d dbgen.Direccion) *DireccionView {
	return &DireccionView{
		TipoCalle:   d.TipoCalle,
		NombreCalle: d.NombreCalle,
		NumeroCalle: d.NumeroCalle,
		Distrito:    d.Distrito,
		Referencia:  d.Referencia,
	}
}

func NewResenaViews(rows []dbgen.ListResenasByCanchaRow) []ResenaView {
	views := make([]ResenaView, 0, len(rows))
	for _, row := range rows {
		views = append(views, ResenaView{
			Username:     row.Username,
			Calificacion: row.Calificacion,
			Comentario:   row.Comentario,
			Fecha:        row.CreatedAt.Format(booking.DateLayout),
		})
	}
	return views
}
