package horarios

import (
	"github.com/a-h/templ"

	"github.com/codr1/canchas/internal/templates/layouts"
	"github.com/codr1/canchas/internal/templates/view"
)

// DetailData describes one requested range inside a schedule.
type DetailData struct {
	CanchaID     int64
	CanchaNombre string
	CanchaSlug   string
	Responsable  string
	HorarioID    int64
	Fecha        string
	Ventana      string
	Inicio       string
	Fin          string
	Duracion     string
	PrecioCents  int64
	Disponible   bool
	Motivo       string
	Reservados   []string
}

// Detail shows the price of the requested range and the reserve form.
func Detail(data DetailData) templ.Component {
	return view.Func(func(p *view.Writer) {
		canchaURL := layouts.CanchaPath(data.CanchaID, data.CanchaSlug)
		p.Raw(`<section class="horario-detalle"><h1>`)
		p.Text(data.CanchaNombre)
		p.Raw(`</h1><dl><dt>Responsable</dt><dd>`)
		p.Text(data.Responsable)
		p.Raw(`</dd><dt>Fecha</dt><dd>`)
		p.Text(data.Fecha)
		p.Raw(`</dd><dt>Horario de la cancha</dt><dd>`)
		p.Text(data.Ventana)
		p.Raw(`</dd><dt>Tu reserva</dt><dd>`)
		p.Textf("%s - %s (%s)", data.Inicio, data.Fin, data.Duracion)
		p.Raw(`</dd><dt>Precio</dt><dd>`)
		p.Text(layouts.FormatCents(data.PrecioCents))
		p.Raw(`</dd></dl>`)

		if len(data.Reservados) > 0 {
			p.Raw(`<p class="reservados">Ya reservado:</p><ul>`)
			for _, r := range data.Reservados {
				p.Raw(`<li>`)
				p.Text(r)
				p.Raw(`</li>`)
			}
			p.Raw(`</ul>`)
		}

		if data.Disponible {
			p.Raw(`<form method="post"`)
			p.URL("action", layouts.HorarioPath(data.CanchaID, data.CanchaSlug, data.HorarioID, data.Inicio, data.Fin)+"/reservar")
			p.Raw(`><button type="submit">Reservar</button></form>`)
		} else {
			p.Raw(`<p class="message message-error">`)
			p.Text(data.Motivo)
			p.Raw(`</p>`)
		}
		p.Raw(`<a`)
		p.URL("href", canchaURL+"#horarios")
		p.Raw(`>Volver a la cancha</a></section>`)
	})
}
