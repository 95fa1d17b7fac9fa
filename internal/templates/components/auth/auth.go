package auth

import (
	"github.com/a-h/templ"

	"github.com/codr1/canchas/internal/templates/layouts"
	"github.com/codr1/canchas/internal/templates/view"
)

type LoginData struct {
	Login string
	Next  string
	Error string
}

type RegistroData struct {
	Username string
	Email    string
	Error    string
}

type PerfilData struct {
	ID       int64
	Username string
	Slug     string
	Email    string
	Imagen   string
	Propio   bool
	Canchas  []PerfilCancha
}

type PerfilCancha struct {
	ID     int64
	Nombre string
	Slug   string
}

func errorMessage(p *view.Writer, msg string) {
	if msg == "" {
		return
	}
	p.Raw(`<p class="message message-error">`)
	p.Text(msg)
	p.Raw(`</p>`)
}

func Login(data LoginData) templ.Component {
	return view.Func(func(p *view.Writer) {
		p.Raw(`<section class="auth"><h1>Iniciar sesión</h1>`)
		errorMessage(p, data.Error)
		p.Raw(`<form method="post" action="/login"><input type="hidden" name="next"`)
		p.Attr("value", data.Next)
		p.Raw(`><label>Usuario o correo <input type="text" name="login" required autocomplete="username"`)
		p.Attr("value", data.Login)
		p.Raw(`></label><label>Contraseña <input type="password" name="password" required autocomplete="current-password"></label>`)
		p.Raw(`<button type="submit">Ingresar</button></form>`)
		p.Raw(`<p>¿No tienes cuenta? <a href="/registro">Regístrate</a></p></section>`)
	})
}

func Registro(data RegistroData) templ.Component {
	return view.Func(func(p *view.Writer) {
		p.Raw(`<section class="auth"><h1>Crear cuenta</h1>`)
		errorMessage(p, data.Error)
		p.Raw(`<form method="post" action="/registro"><label>Usuario <input type="text" name="username" required`)
		p.Attr("value", data.Username)
		p.Raw(`></label><label>Correo <input type="email" name="email" required`)
		p.Attr("value", data.Email)
		p.Raw(`></label><label>Contraseña <input type="password" name="password" required autocomplete="new-password"></label>`)
		p.Raw(`<label>Repite la contraseña <input type="password" name="password_confirm" required autocomplete="new-password"></label>`)
		p.Raw(`<button type="submit">Registrarme</button></form>`)
		p.Raw(`<p>¿Ya tienes cuenta? <a href="/login">Inicia sesión</a></p></section>`)
	})
}

// Perfil is the public profile; the avatar form shows only to its owner.
func Perfil(data PerfilData) templ.Component {
	return view.Func(func(p *view.Writer) {
		p.Raw(`<section class="perfil"><img class="avatar"`)
		p.URL("src", layouts.MediaURL(data.Imagen))
		p.Attr("alt", data.Username)
		p.Raw(`><h1>`)
		p.Text(data.Username)
		p.Raw(`</h1>`)
		if data.Propio {
			p.Raw(`<p>`)
			p.Text(data.Email)
			p.Raw(`</p><form method="post" enctype="multipart/form-data" action="/perfil/imagen">`)
			p.Raw(`<label>Foto de perfil <input type="file" name="imagen" accept="image/*"></label>`)
			p.Raw(`<button type="submit">Actualizar foto</button></form>`)
		}
		if len(data.Canchas) > 0 {
			p.Raw(`<h2>Canchas</h2><ul>`)
			for _, c := range data.Canchas {
				p.Raw(`<li><a`)
				p.URL("href", layouts.CanchaPath(c.ID, c.Slug))
				p.Raw(`>`)
				p.Text(c.Nombre)
				p.Raw(`</a></li>`)
			}
			p.Raw(`</ul>`)
		}
		p.Raw(`</section>`)
	})
}
