package layouts

import (
	"github.com/a-h/templ"

	"github.com/codr1/canchas/internal/templates/view"
)

// NavUser is the signed-in user shown in the header.
type NavUser struct {
	ID       int64
	Username string
	Slug     string
	Imagen   string
}

type Flash struct {
	Level string
	Text  string
}

// Page carries what every full page needs besides its body.
type Page struct {
	Title   string
	User    *NavUser
	Flashes []Flash
	Today   string
}

// Base wraps body in the document shell with navigation and flash messages.
func Base(page Page, body templ.Component) templ.Component {
	return view.Func(func(p *view.Writer) {
		title := "Canchas"
		if page.Title != "" {
			title = page.Title + " | Canchas"
		}

		p.Raw(`<!DOCTYPE html><html lang="es"><head><meta charset="utf-8">`)
		p.Raw(`<meta name="viewport" content="width=device-width, initial-scale=1">`)
		p.Raw(`<title>`)
		p.Text(title)
		p.Raw(`</title>`)
		p.Raw(`<link rel="stylesheet" href="/static/css/main.css">`)
		p.Raw(`<script src="/static/js/htmx.min.js" defer></script>`)
		p.Raw(`</head><body class="min-h-screen bg-gray-50">`)

		p.Component(navbar(page.User))

		p.Raw(`<main class="container mx-auto px-4 py-6">`)
		p.Component(flashList(page.Flashes))
		p.Component(body)
		p.Raw(`</main></body></html>`)
	})
}

func navbar(user *NavUser) templ.Component {
	return view.Func(func(p *view.Writer) {
		p.Raw(`<nav class="navbar"><a class="brand" href="/">Canchas</a>`)
		p.Raw(`<input type="search" name="q" placeholder="Buscar canchas o distritos"`)
		p.Raw(` hx-get="/api/v1/nav/search" hx-trigger="keyup changed delay:300ms" hx-target="#search-results">`)
		p.Raw(`<div id="search-results"></div>`)
		p.Raw(`<button class="menu-toggle" hx-get="/api/v1/nav/menu" hx-target="#mobile-menu" hx-swap="outerHTML">Menú</button>`)
		p.Raw(`<div id="mobile-menu"></div>`)
		if user == nil {
			p.Raw(`<a href="/login">Iniciar sesión</a> <a href="/registro">Registrarse</a>`)
			p.Raw(`</nav>`)
			return
		}
		p.Raw(`<a href="/canchas/registro">Registrar cancha</a> <a href="/reservas">Mis reservas</a> `)
		p.Raw(`<a`)
		p.URL("href", ProfilePath(user.ID, user.Slug))
		p.Raw(`><img class="avatar"`)
		p.URL("src", MediaURL(user.Imagen))
		p.Attr("alt", user.Username)
		p.Raw(`> `)
		p.Text(user.Username)
		p.Raw(`</a>`)
		p.Raw(`<form method="post" action="/logout" class="inline"><button type="submit">Salir</button></form>`)
		p.Raw(`</nav>`)
	})
}

func flashList(flashes []Flash) templ.Component {
	return view.Func(func(p *view.Writer) {
		if len(flashes) == 0 {
			return
		}
		p.Raw(`<ul class="messages">`)
		for _, f := range flashes {
			p.Raw(`<li`)
			p.Attr("class", "message message-"+f.Level)
			p.Raw(`>`)
			p.Text(f.Text)
			p.Raw(`</li>`)
		}
		p.Raw(`</ul>`)
	})
}
