package events

import "errors"

var (
	// ErrEventNotFound se retorna cuando el evento no existe
	ErrEventNotFound = errors.New("events.service: event not found")

	// ErrSpaceNotFound se retorna cuando un espacio del evento no existe
	ErrSpaceNotFound = errors.New("events.service: space not found")

	// ErrAccessDenied se retorna cuando el usuario no puede operar el evento
	ErrAccessDenied = errors.New("events.service: access denied")

	// ErrSpaceOccupied se retorna cuando un bloque choca con reservas o eventos
	ErrSpaceOccupied = errors.New("events.service: space occupied for requested block")

	// ErrInvalidTransition se retorna ante un cambio de estado no permitido
	ErrInvalidTransition = errors.New("events.service: invalid status transition")

	// ErrNotesRequired se retorna al rechazar un evento sin motivo
	ErrNotesRequired = errors.New("events.service: rejection requires notes")

	// ErrInvalidInput se retorna ante datos de entrada inválidos
	ErrInvalidInput = errors.New("events.service: invalid input")

	// ErrInternal se retorna ante errores internos
	ErrInternal = errors.New("events.service: internal error")
)
