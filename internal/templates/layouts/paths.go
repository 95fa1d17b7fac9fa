package layouts

import (
	"fmt"
	"net/url"
	"strings"
)

func CanchaPath(id int64, slug string) string {
	return fmt.Sprintf("/canchas/%d/%s", id, url.PathEscape(slug))
}

func ProfilePath(id int64, slug string) string {
	return fmt.Sprintf("/perfil/%d/%s", id, url.PathEscape(slug))
}

// HorarioPath is the schedule detail page for one requested range.
func HorarioPath(canchaID int64, slug string, horarioID int64, inicio, fin string) string {
	return fmt.Sprintf("%s/horarios/%d/%s/%s", CanchaPath(canchaID, slug), horarioID, inicio, fin)
}

// MediaURL maps a stored media name to its public URL.
func MediaURL(name string) string {
	name = strings.TrimPrefix(strings.TrimSpace(name), "/")
	if name == "" {
		return ""
	}
	return "/media/" + name
}

// FormatCents renders an amount in soles.
func FormatCents(cents int64) string {
	return fmt.Sprintf("S/ %d.%02d", cents/100, cents%100)
}
