// internal/models/resena.go
package models

import (
	"errors"
	"math"
	"strings"
	"unicode/utf8"
)

const (
	MinCalificacion     = 1
	MaxCalificacion     = 5
	MaxComentarioLength = 500
)

var (
	ErrCalificacionInvalida = errors.New("La calificación debe estar entre 1 y 5.")
	ErrComentarioLargo      = errors.New("El comentario no puede superar los 500 caracteres.")
	ErrResenaPropia         = errors.New("No puedes reseñar tu propia cancha.")
)

type ResenaInput struct {
	Calificacion int64  `json:"calificacion"`
	Comentario   string `json:"comentario"`
}

func (r *ResenaInput) Normalize() {
	r.Comentario = strings.TrimSpace(r.Comentario)
}

func (r ResenaInput) Validate() error {
	if r.Calificacion < MinCalificacion || r.Calificacion > MaxCalificacion {
		return ErrCalificacionInvalida
	}
	if utf8.RuneCountInString(r.Comentario) > MaxComentarioLength {
		return ErrComentarioLargo
	}
	return nil
}

// RoundRating rounds an average rating to one decimal.
func RoundRating(avg float64) float64 {
	return math.Round(avg*10) / 10
}
