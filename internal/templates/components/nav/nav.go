package nav

import (
	"github.com/a-h/templ"

	"github.com/codr1/canchas/internal/templates/layouts"
	"github.com/codr1/canchas/internal/templates/view"
)

type SearchResult struct {
	ID       int64  `json:"id"`
	Nombre   string `json:"nombre"`
	Slug     string `json:"slug"`
	Imagen   string `json:"imagen"`
	Distrito string `json:"distrito"`
	URL      string `json:"url"`
}

// SearchResults is the dropdown swapped into #search-results.
func SearchResults(query string, results []SearchResult) templ.Component {
	return view.Func(func(p *view.Writer) {
		if query == "" {
			return
		}
		p.Raw(`<ul class="search-results">`)
		if len(results) == 0 {
			p.Raw(`<li class="empty">Sin resultados para "`)
			p.Text(query)
			p.Raw(`"</li>`)
		}
		for _, r := range results {
			p.Raw(`<li><a`)
			p.URL("href", r.URL)
			p.Raw(`>`)
			if r.Imagen != "" {
				p.Raw(`<img`)
				p.URL("src", layouts.MediaURL(r.Imagen))
				p.Raw(` alt="">`)
			}
			p.Text(r.Nombre)
			if r.Distrito != "" {
				p.Raw(` <small>`)
				p.Text(r.Distrito)
				p.Raw(`</small>`)
			}
			p.Raw(`</a></li>`)
		}
		p.Raw(`</ul>`)
	})
}

// Menu is the mobile menu panel.
func Menu(user *layouts.NavUser) templ.Component {
	return view.Func(func(p *view.Writer) {
		p.Raw(`<div id="mobile-menu" class="mobile-menu"><button hx-get="/api/v1/nav/menu/close" hx-target="#mobile-menu" hx-swap="outerHTML">Cerrar</button><ul>`)
		p.Raw(`<li><a href="/">Canchas</a></li>`)
		if user == nil {
			p.Raw(`<li><a href="/login">Iniciar sesión</a></li><li><a href="/registro">Registrarse</a></li>`)
		} else {
			p.Raw(`<li><a href="/canchas/registro">Registrar cancha</a></li><li><a href="/reservas">Mis reservas</a></li><li><a`)
			p.URL("href", layouts.ProfilePath(user.ID, user.Slug))
			p.Raw(`>Perfil</a></li><li><form method="post" action="/logout"><button type="submit">Salir</button></form></li>`)
		}
		p.Raw(`</ul></div>`)
	})
}

// MenuClosed replaces the open panel with its empty placeholder.
func MenuClosed() templ.Component {
	return view.Func(func(p *view.Writer) {
		p.Raw(`<div id="mobile-menu"></div>`)
	})
}
