package apiutil

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/codr1/canchas/internal/models"
)

// ParseRatingField parses the calificacion form value within the review
// scale.
func ParseRatingField(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, FieldError{Field: "calificacion", Reason: "is required"}
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, FieldError{Field: "calificacion", Reason: "must be a whole number"}
	}
	if value < models.MinCalificacion || value > models.MaxCalificacion {
		return 0, FieldError{
			Field:  "calificacion",
			Reason: fmt.Sprintf("must be between %d and %d", models.MinCalificacion, models.MaxCalificacion),
		}
	}
	return value, nil
}
