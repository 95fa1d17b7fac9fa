package apiutil

import (
	"github.com/codr1/canchas/internal/booking"
)

// ReservationPrice prices a stored reservation; malformed ranges cost 0.
func ReservationPrice(inicio, fin string, pricePerHourCents int64) int64 {
	rng, err := booking.ParseRange(inicio, fin)
	if err != nil {
		return 0
	}
	return booking.Price(rng, pricePerHourCents)
}
