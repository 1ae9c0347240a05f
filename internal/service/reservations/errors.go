package reservations

import "errors"

var (
	// ErrReservationNotFound se retorna cuando la reserva no existe
	ErrReservationNotFound = errors.New("reservations.service: reservation not found")

	// ErrAccessDenied se retorna cuando el usuario no puede ver la reserva
	ErrAccessDenied = errors.New("reservations.service: access denied")

	// ErrInvalidInput se retorna ante parámetros inválidos
	ErrInvalidInput = errors.New("reservations.service: invalid input")

	// ErrInternal se retorna ante errores internos
	ErrInternal = errors.New("reservations.service: internal error")
)
