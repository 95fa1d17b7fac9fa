// internal/models/usuario.go
package models

import (
	"errors"
	"net/mail"
	"regexp"
	"strings"
)

const MinPasswordLength = 8

var (
	ErrUsernameInvalido   = errors.New("El nombre de usuario debe tener entre 3 y 30 caracteres: letras, números, punto, guion o guion bajo.")
	ErrEmailInvalido      = errors.New("Ingresa un correo electrónico válido.")
	ErrPasswordCorta      = errors.New("La contraseña debe tener al menos 8 caracteres.")
	ErrPasswordsDistintas = errors.New("Las contraseñas no coinciden.")
)

var usernameRegex = regexp.MustCompile(`^[A-Za-z0-9_.-]{3,30}$`)

// RegistroInput is the sign-up form.
type RegistroInput struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	PasswordConfirm string `json:"password_confirm"`
}

func (r *RegistroInput) Normalize() {
	r.Username = strings.TrimSpace(r.Username)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r RegistroInput) Validate() error {
	if r.Username == "" || r.Email == "" || r.Password == "" {
		return ErrCamposObligatorios
	}
	if !usernameRegex.MatchString(r.Username) {
		return ErrUsernameInvalido
	}
	addr, err := mail.ParseAddress(r.Email)
	if err != nil || addr.Address != r.Email {
		return ErrEmailInvalido
	}
	if len(r.Password) < MinPasswordLength {
		return ErrPasswordCorta
	}
	if r.PasswordConfirm != "" && r.PasswordConfirm != r.Password {
		return ErrPasswordsDistintas
	}
	return nil
}
