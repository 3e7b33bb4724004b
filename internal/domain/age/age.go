package age

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidDate = errors.New("invalid date")
)

const day = 24 * time.Hour

// DaysCeil devuelve los días de vida redondeando hacia arriba.
// Se usa para el gating de protocolos (día actual / disponibilidad).
func DaysCeil(ref, asOf time.Time) (int, error) {
	if ref.IsZero() || asOf.IsZero() {
		return 0, ErrInvalidDate
	}
	d := asOf.Sub(ref)
	n := int(d / day)
	// La división entera trunca hacia cero: solo hay que corregir el resto positivo.
	if d%day > 0 {
		n++
	}
	return n, nil
}

// DaysFloor devuelve los días de vida redondeando hacia abajo.
// Se usa para alinear el historial de pesos. No unificar con DaysCeil:
// cambiaría los números de día que ve el usuario.
func DaysFloor(ref, asOf time.Time) (int, error) {
	if ref.IsZero() || asOf.IsZero() {
		return 0, ErrInvalidDate
	}
	d := asOf.Sub(ref)
	n := int(d / day)
	if d%day < 0 {
		n--
	}
	return n, nil
}

// ParseDate acepta YYYY-MM-DD o RFC3339.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return t, nil
}
