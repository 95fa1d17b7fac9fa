package reservas

import (
	"strconv"

	"github.com/a-h/templ"

	"github.com/codr1/canchas/internal/templates/layouts"
	"github.com/codr1/canchas/internal/templates/view"
)

type Item struct {
	ID           int64
	CanchaID     int64
	CanchaNombre string
	CanchaSlug   string
	Fecha        string
	Inicio       string
	Fin          string
	PrecioCents  int64
	Pasada       bool
}

// MisReservas lists the signed-in user's reservations, upcoming first.
func MisReservas(items []Item) templ.Component {
	return view.Func(func(p *view.Writer) {
		p.Raw(`<section class="mis-reservas"><h1>Mis reservas</h1>`)
		if len(items) == 0 {
			p.Raw(`<p class="empty">No tienes reservas.</p></section>`)
			return
		}
		p.Raw(`<table><thead><tr><th>Cancha</th><th>Fecha</th><th>Horario</th><th>Precio</th><th></th></tr></thead><tbody>`)
		for _, item := range items {
			p.Raw(`<tr`)
			if item.Pasada {
				p.Attr("class", "pasada")
			}
			p.Raw(`><td><a`)
			p.URL("href", layouts.CanchaPath(item.CanchaID, item.CanchaSlug))
			p.Raw(`>`)
			p.Text(item.CanchaNombre)
			p.Raw(`</a></td><td>`)
			p.Text(item.Fecha)
			p.Raw(`</td><td>`)
			p.Textf("%s - %s", item.Inicio, item.Fin)
			p.Raw(`</td><td>`)
			p.Text(layouts.FormatCents(item.PrecioCents))
			p.Raw(`</td><td>`)
			if !item.Pasada {
				p.Raw(`<form method="post"`)
				p.URL("action", "/reservas/"+strconv.FormatInt(item.ID, 10)+"/cancelar")
				p.Raw(`><button type="submit">Cancelar</button></form>`)
			}
			p.Raw(`</td></tr>`)
		}
		p.Raw(`</tbody></table></section>`)
	})
}
