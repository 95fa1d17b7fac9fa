package canchas

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/a-h/templ"

	"github.com/codr1/canchas/internal/templates/layouts"
	"github.com/codr1/canchas/internal/templates/view"
)

// List is the home page grid of courts.
func List(cards []Card) templ.Component {
	return view.Func(func(p *view.Writer) {
		p.Raw(`<section class="canchas"><h1>Canchas disponibles</h1>`)
		if len(cards) == 0 {
			p.Raw(`<p class="empty">Todavía no hay canchas registradas.</p></section>`)
			return
		}
		p.Raw(`<div class="grid">`)
		for _, card := range cards {
			p.Raw(`<article class="card"><a`)
			p.URL("href", layouts.CanchaPath(card.ID, card.Slug))
			p.Raw(`><img`)
			p.URL("src", layouts.MediaURL(card.Imagen))
			p.Attr("alt", card.Nombre)
			p.Raw(`><h2>`)
			p.Text(card.Nombre)
			p.Raw(`</h2>`)
			if card.Distrito != "" {
				p.Raw(`<p class="distrito">`)
				p.Text(card.Distrito)
				p.Raw(`</p>`)
			}
			p.Raw(`</a></article>`)
		}
		p.Raw(`</div></section>`)
	})
}

// Form renders the court registration or edit form.
func Form(data FormData) templ.Component {
	return view.Func(func(p *view.Writer) {
		p.Raw(`<section class="cancha-form"><h1>`)
		p.Text(data.Title)
		p.Raw(`</h1>`)
		if data.Error != "" {
			p.Raw(`<p class="message message-error">`)
			p.Text(data.Error)
			p.Raw(`</p>`)
		}
		p.Raw(`<form method="post" enctype="multipart/form-data"`)
		p.URL("action", data.Action)
		p.Raw(`>`)
		textInput(p, "nombre", "Nombre", data.Nombre, true)
		textInput(p, "tipo_calle", "Tipo de calle", data.TipoCalle, true)
		textInput(p, "nombre_calle", "Nombre de la calle", data.NombreCalle, true)
		textInput(p, "numero_calle", "Número", data.NumeroCalle, true)
		textInput(p, "distrito", "Distrito", data.Distrito, true)
		textInput(p, "referencia", "Referencia", data.Referencia, false)
		textInput(p, "telefono", "Teléfono", data.Telefono, false)
		if data.IsEdit && data.Imagen != "" {
			p.Raw(`<img class="preview"`)
			p.URL("src", layouts.MediaURL(data.Imagen))
			p.Attr("alt", data.Nombre)
			p.Raw(`>`)
		}
		p.Raw(`<label>Imagen <input type="file" name="imagen" accept="image/*"></label>`)
		p.Raw(`<button type="submit">`)
		p.Text(data.Submit)
		p.Raw(`</button></form>`)

		if data.IsEdit {
			p.Raw(`<form method="post" class="danger"`)
			p.URL("action", layouts.CanchaPath(data.CanchaID, data.Slug)+"/eliminar")
			p.Raw(`><h2>Eliminar cancha</h2>`)
			p.Raw(`<label>Confirma tu contraseña <input type="password" name="password" required></label>`)
			p.Raw(`<button type="submit">Eliminar</button></form>`)
		}
		p.Raw(`</section>`)
	})
}

func textInput(p *view.Writer, name, label, value string, required bool) {
	p.Raw(`<label>`)
	p.Text(label)
	p.Raw(` <input type="text"`)
	p.Attr("name", name)
	p.Attr("value", value)
	p.BoolAttr("required", required)
	p.Raw(`></label>`)
}

// Detail is the court page with schedules, availability and reviews.
func Detail(data DetailData) templ.Component {
	return view.Func(func(p *view.Writer) {
		c := data.Cancha
		base := layouts.CanchaPath(c.ID, c.Slug)

		p.Raw(`<article class="cancha-detalle"><header><img`)
		p.URL("src", layouts.MediaURL(c.Imagen))
		p.Attr("alt", c.Nombre)
		p.Raw(`><h1>`)
		p.Text(c.Nombre)
		p.Raw(`</h1>`)
		if data.Direccion != nil {
			d := data.Direccion
			p.Raw(`<p class="direccion">`)
			p.Textf("%s %s %s, %s", d.TipoCalle, d.NombreCalle, d.NumeroCalle, d.Distrito)
			if d.Referencia != "" {
				p.Raw(`<br><small>`)
				p.Text(d.Referencia)
				p.Raw(`</small>`)
			}
			p.Raw(`</p>`)
		}
		if c.Telefono != "" {
			p.Raw(`<p class="telefono"><a`)
			p.URL("href", "tel:"+c.Telefono)
			p.Raw(`>`)
			p.Text(c.Telefono)
			p.Raw(`</a></p>`)
		}
		p.Raw(`<p class="calificacion">`)
		if data.Calificacion != nil {
			p.Textf("★ %.1f (%d reseñas)", *data.Calificacion, data.TotalResenas)
		} else {
			p.Raw(`Sin reseñas todavía`)
		}
		p.Raw(`</p>`)
		if data.EsResponsable {
			p.Raw(`<a class="button"`)
			p.URL("href", base+"/editar")
			p.Raw(`>Editar cancha</a>`)
		}
		p.Raw(`</header>`)

		p.Component(horariosSection(data, base))
		p.Component(resenasSection(data, base))
		p.Raw(`</article>`)
	})
}

func horariosSection(data DetailData, base string) templ.Component {
	return view.Func(func(p *view.Writer) {
		p.Raw(`<section id="horarios" class="horarios"><h2>Horarios</h2>`)
		if len(data.Dias) == 0 {
			p.Raw(`<p class="empty">No hay horarios disponibles.</p>`)
		}
		for _, dia := range data.Dias {
			p.Raw(`<div class="dia"><h3>`)
			p.Text(dia.Fecha)
			p.Raw(`</h3>`)
			for _, h := range dia.Horarios {
				p.Raw(`<div class="horario"><p class="ventana">`)
				p.Textf("%s - %s", h.Inicio, h.Fin)
				p.Raw(`</p><ul class="slots">`)
				for _, slot := range h.Slots {
					if slot.Booked {
						p.Raw(`<li class="slot reservado">`)
						p.Text(slot.Range.String())
						p.Raw(` · Reservado</li>`)
						continue
					}
					p.Raw(`<li class="slot libre"><a`)
					p.URL("href", layouts.HorarioPath(data.Cancha.ID, data.Cancha.Slug, h.ID, slot.Start.String(), slot.End.String()))
					p.Raw(`>`)
					p.Text(slot.Range.String())
					p.Raw(`</a></li>`)
				}
				p.Raw(`</ul>`)
				if len(h.Libres) > 0 {
					labels := make([]string, 0, len(h.Libres))
					for _, libre := range h.Libres {
						labels = append(labels, libre.String())
					}
					p.Raw(`<p class="libres">Libre: `)
					p.Text(strings.Join(labels, ", "))
					p.Raw(`</p>`)
				}
				if data.EsResponsable {
					p.Raw(`<form method="post"`)
					p.URL("action", base+"/horarios/"+strconv.FormatInt(h.ID, 10)+"/eliminar")
					p.Raw(`><button type="submit">Eliminar horario</button></form>`)
				}
				p.Raw(`</div>`)
			}
			p.Raw(`</div>`)
		}
		if data.EsResponsable {
			p.Raw(`<form method="post" class="nuevo-horario"`)
			p.URL("action", base+"/horarios")
			p.Raw(`><h3>Nuevo horario</h3><label>Fecha <input type="date" name="fecha" required`)
			p.Attr("min", data.Hoy)
			p.Attr("value", data.Hoy)
			p.Raw(`></label>`)
			hourSelect(p, "hora_inicio", "Desde", data.Horas)
			hourSelect(p, "hora_fin", "Hasta", endHours(data.Horas))
			p.Raw(`<button type="submit">Agregar</button></form>`)
		}
		p.Raw(`</section>`)
	})
}

// endHours shifts the start options by one so a window can end at 24:00.
func endHours(horas []string) []string {
	if len(horas) == 0 {
		return nil
	}
	out := make([]string, 0, len(horas))
	out = append(out, horas[1:]...)
	return append(out, "24:00")
}

func hourSelect(p *view.Writer, name, label string, horas []string) {
	p.Raw(`<label>`)
	p.Text(label)
	p.Raw(` <select`)
	p.Attr("name", name)
	p.Raw(`>`)
	for _, hora := range horas {
		p.Raw(`<option`)
		p.Attr("value", hora)
		p.Raw(`>`)
		p.Text(hora)
		p.Raw(`</option>`)
	}
	p.Raw(`</select></label>`)
}

func resenasSection(data DetailData, base string) templ.Component {
	return view.Func(func(p *view.Writer) {
		p.Raw(`<section id="resenas" class="resenas"><h2>Reseñas</h2>`)
		if !data.EsResponsable {
			var actual ResenaView
			if data.MiResena != nil {
				actual = *data.MiResena
			}
			p.Raw(`<form method="post" class="resena-form"`)
			p.URL("action", base+"/resena")
			p.Raw(`><label>Calificación <select name="calificacion">`)
			for i := int64(5); i >= 1; i-- {
				p.Raw(`<option`)
				p.Attr("value", strconv.FormatInt(i, 10))
				p.BoolAttr("selected", actual.Calificacion == i)
				p.Raw(`>`)
				p.Text(strings.Repeat("★", int(i)))
				p.Raw(`</option>`)
			}
			p.Raw(`</select></label><label>Comentario <textarea name="comentario" maxlength="500">`)
			p.Text(actual.Comentario)
			p.Raw(`</textarea></label><button type="submit">`)
			if data.MiResena != nil {
				p.Raw(`Actualizar reseña`)
			} else {
				p.Raw(`Publicar reseña`)
			}
			p.Raw(`</button></form>`)
		}
		if len(data.Resenas) == 0 {
			p.Raw(`<p class="empty">Sé el primero en dejar una reseña.</p>`)
		}
		p.Raw(`<ul>`)
		for _, r := range data.Resenas {
			p.Raw(`<li class="resena"><strong>`)
			p.Text(r.Username)
			p.Raw(`</strong> `)
			p.Text(fmt.Sprintf("%s · %s", strings.Repeat("★", int(r.Calificacion)), r.Fecha))
			if r.Comentario != "" {
				p.Raw(`<p>`)
				p.Text(r.Comentario)
				p.Raw(`</p>`)
			}
			p.Raw(`</li>`)
		}
		p.Raw(`</ul></section>`)
	})
}
