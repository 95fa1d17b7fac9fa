// internal/models/cancha.go
package models

import (
	"errors"
	"regexp"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const (
	DefaultCanchaImagen  = "canchas/default-cancha.jpg"
	DefaultUsuarioImagen = "usuarios/default-avatar.jpg"
)

var (
	ErrCamposObligatorios = errors.New("Todos los campos obligatorios deben estar completos.")
	ErrNombreInvalido     = errors.New("El nombre solo puede contener letras, números y espacios.")
	ErrNumeroInvalido     = errors.New("El número de la calle debe ser un valor numérico.")
	ErrReferenciaInvalida = errors.New("La referencia solo puede contener letras, números, comas y puntos.")
	ErrTelefonoInvalido   = errors.New("El teléfono no es un número válido.")
)

var (
	canchaNombreRegex = regexp.MustCompile(`^[A-Za-z0-9ÁÉÍÓÚÜÑáéíóúüñ\s]+$`)
	referenciaRegex   = regexp.MustCompile(`^[A-Za-z0-9ÁÉÍÓÚÜÑáéíóúüñ\s,.]+$`)
	digitsRegex       = regexp.MustCompile(`^[0-9]+$`)
)

// DireccionInput is the address half of the court form.
type DireccionInput struct {
	TipoCalle   string `json:"tipo_calle"`
	NombreCalle string `json:"nombre_calle"`
	NumeroCalle string `json:"numero_calle"`
	Distrito    string `json:"distrito"`
	Referencia  string `json:"referencia"`
}

// CanchaInput holds the fields shared by court registration and edit.
type CanchaInput struct {
	Nombre   string `json:"nombre"`
	Telefono string `json:"telefono"`
	DireccionInput
}

// Normalize trims every field in place.
func (d *DireccionInput) Normalize() {
	d.TipoCalle = strings.TrimSpace(d.TipoCalle)
	d.NombreCalle = strings.TrimSpace(d.NombreCalle)
	d.NumeroCalle = strings.TrimSpace(d.NumeroCalle)
	d.Distrito = strings.TrimSpace(d.Distrito)
	d.Referencia = strings.TrimSpace(d.Referencia)
}

func (d DireccionInput) complete() bool {
	return d.TipoCalle != "" && d.NombreCalle != "" && d.NumeroCalle != "" && d.Distrito != ""
}

func (d DireccionInput) Validate() error {
	if !d.complete() {
		return ErrCamposObligatorios
	}
	return d.validateFormat()
}

func (d DireccionInput) validateFormat() error {
	if !digitsRegex.MatchString(d.NumeroCalle) {
		return ErrNumeroInvalido
	}
	if d.Referencia != "" && !referenciaRegex.MatchString(d.Referencia) {
		return ErrReferenciaInvalida
	}
	return nil
}

func (c *CanchaInput) Normalize() {
	c.Nombre = strings.TrimSpace(c.Nombre)
	c.Telefono = strings.TrimSpace(c.Telefono)
	c.DireccionInput.Normalize()
}

// Validate checks the trimmed input and returns the first problem using the
// message shown to the user.
func (c CanchaInput) Validate() error {
	if c.Nombre == "" || !c.DireccionInput.complete() {
		return ErrCamposObligatorios
	}
	if !canchaNombreRegex.MatchString(c.Nombre) {
		return ErrNombreInvalido
	}
	return c.DireccionInput.validateFormat()
}

// NormalizePhone parses raw for region and returns it in E.164. Empty input
// yields an empty string.
func NormalizePhone(raw, region string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	num, err := phonenumbers.Parse(raw, strings.ToUpper(region))
	if err != nil {
		return "", ErrTelefonoInvalido
	}
	if !phonenumbers.IsValidNumber(num) {
		return "", ErrTelefonoInvalido
	}
	return phonenumbers.Format(num, phonenumbers.E164), nil
}
