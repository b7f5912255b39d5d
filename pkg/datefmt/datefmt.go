// Package datefmt formatea y clasifica las fechas que envía el backend.
//
// El backend serializa las fechas como texto ("2006-01-02 15:04:05" o
// "2006-01-02"), sin zona horaria; se interpretan en la zona configurada.
package datefmt

import (
	"errors"
	"strings"
	"time"
)

// Marcadores que se muestran en lugar de una fecha.
const (
	NotAvailable = "N/A"
	InvalidDate  = "Fecha inválida"
	Never        = "Nunca"
)

// DisplayLayout DD/MM/YYYY HH:MM.
const DisplayLayout = "02/01/2006 15:04"

// ErrEmpty la fecha viene vacía o nula.
var ErrEmpty = errors.New("fecha vacía")

var layouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
}

// Parse interpreta raw en loc. Acepta también RFC 3339 con zona explícita.
func Parse(raw string, loc *time.Location) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, ErrEmpty
	}
	if loc == nil {
		loc = time.Local
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t.In(loc), nil
	}
	var lastErr error
	for _, layout := range layouts {
		t, err := time.ParseInLocation(layout, raw, loc)
		if err == nil {
			return t, nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// Format devuelve raw como DD/MM/YYYY HH:MM, "N/A" si falta o "Fecha inválida"
// si no se puede interpretar.
func Format(raw string, loc *time.Location) string {
	return FormatOr(raw, loc, NotAvailable)
}

// FormatOr igual que Format pero con un marcador propio para la fecha ausente.
func FormatOr(raw string, loc *time.Location, missing string) string {
	t, err := Parse(raw, loc)
	if errors.Is(err, ErrEmpty) {
		return missing
	}
	if err != nil {
		return InvalidDate
	}
	return t.Format(DisplayLayout)
}

// StartOfDay 00:00 del día de t en su zona.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// StartOfWeek domingo más reciente a las 00:00 (la semana empieza en domingo).
func StartOfWeek(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, -int(t.Weekday()))
}

// SameDay indica si a y b caen en el mismo día calendario de la zona de b.
func SameDay(a, b time.Time) bool {
	a = a.In(b.Location())
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

// SameMonth indica si a y b caen en el mismo mes y año de la zona de b.
func SameMonth(a, b time.Time) bool {
	a = a.In(b.Location())
	return a.Year() == b.Year() && a.Month() == b.Month()
}
