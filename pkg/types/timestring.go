package types

import (
	"errors"
	"fmt"
	"time"
)

// timeLayout formato de los bloques horarios ("HH:MM", cero a la izquierda)
const timeLayout = "15:04"

var (
	// ErrInvalidTimeString se retorna cuando el texto no cumple el formato HH:MM
	ErrInvalidTimeString = errors.New("types: invalid time string format")
)

// TimeString representa una hora del día como texto "HH:MM".
// El formato con cero a la izquierda permite comparar lexicográficamente.
type TimeString string

// NewTimeString construye un TimeString a partir de un time.Time
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString valida y construye un TimeString desde texto
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// String retorna la representación "HH:MM"
func (t TimeString) String() string {
	return string(t)
}

// IsZero indica si el valor está vacío
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate verifica el formato "HH:MM"
func (t TimeString) Validate() error {
	if _, err := time.Parse(timeLayout, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// IsBefore compara estrictamente: t < other
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter compara estrictamente: t > other
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// Minutes retorna los minutos transcurridos desde medianoche
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes retorna un nuevo TimeString desplazado en minutos.
// Falla si el resultado sale del rango del día (no hay reservas que crucen medianoche).
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	base, err := t.Minutes()
	if err != nil {
		return "", err
	}
	total := base + minutes
	if total < 0 || total >= 24*60 {
		return "", fmt.Errorf("%w: %q%+d min fuera de rango", ErrInvalidTimeString, string(t), minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// At combina la hora con una fecha en la zona horaria indicada
func (t TimeString) At(date time.Time, loc *time.Location) (time.Time, error) {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return time.Date(date.Year(), date.Month(), date.Day(), parsed.Hour(), parsed.Minute(), 0, 0, loc), nil
}
