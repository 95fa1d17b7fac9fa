package email

import (
	"fmt"
	"strings"
	"time"

	"github.com/codr1/canchas/internal/booking"
)

// Message is a rendered plain text email.
type Message struct {
	Subject string
	Body    string
}

// ReservaDetails describes the reservation an email is about.
type ReservaDetails struct {
	Username     string
	CanchaNombre string
	Fecha        string
	Inicio       string
	Fin          string
}

var (
	diasSemana = [...]string{"domingo", "lunes", "martes", "miércoles", "jueves", "viernes", "sábado"}
	meses      = [...]string{"enero", "febrero", "marzo", "abril", "mayo", "junio", "julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre"}
)

// FormatFecha renders a YYYY-MM-DD date as "sábado 10 de mayo de 2030".
// Unparseable input is returned unchanged.
func FormatFecha(fecha string) string {
	day, err := time.Parse(booking.DateLayout, fecha)
	if err != nil {
		return fecha
	}
	return fmt.Sprintf("%s %d de %s de %d", diasSemana[day.Weekday()], day.Day(), meses[day.Month()-1], day.Year())
}

func (d ReservaDetails) lines() []string {
	return []string{
		fmt.Sprintf("Cancha: %s", d.CanchaNombre),
		fmt.Sprintf("Fecha: %s", FormatFecha(d.Fecha)),
		fmt.Sprintf("Horario: %s - %s", d.Inicio, d.Fin),
	}
}

func greeting(username string) string {
	if strings.TrimSpace(username) == "" {
		return "Hola,"
	}
	return fmt.Sprintf("Hola %s,", strings.TrimSpace(username))
}

func BuildConfirmation(d ReservaDetails) Message {
	lines := []string{greeting(d.Username), "", "Tu reserva está confirmada.", ""}
	lines = append(lines, d.lines()...)
	lines = append(lines, "", "Si no puedes asistir, cancela la reserva desde \"Mis reservas\".")
	return Message{
		Subject: fmt.Sprintf("Reserva confirmada - %s", d.CanchaNombre),
		Body:    strings.Join(lines, "\n"),
	}
}

func BuildCancellation(d ReservaDetails) Message {
	lines := []string{greeting(d.Username), "", "Tu reserva fue cancelada.", ""}
	lines = append(lines, d.lines()...)
	return Message{
		Subject: fmt.Sprintf("Reserva cancelada - %s", d.CanchaNombre),
		Body:    strings.Join(lines, "\n"),
	}
}

func BuildReminder(d ReservaDetails) Message {
	lines := []string{greeting(d.Username), "", "Te recordamos que tienes una reserva próximamente.", ""}
	lines = append(lines, d.lines()...)
	return Message{
		Subject: fmt.Sprintf("Recordatorio de reserva - %s", d.CanchaNombre),
		Body:    strings.Join(lines, "\n"),
	}
}
