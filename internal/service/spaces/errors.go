package spaces

import "errors"

var (
	// ErrSpaceNotFound se retorna cuando el espacio no existe
	ErrSpaceNotFound = errors.New("spaces.service: space not found")

	// ErrResourceNotFound se retorna cuando el recurso no existe
	ErrResourceNotFound = errors.New("spaces.service: resource not found")

	// ErrAccessDenied se retorna cuando el usuario no es staff
	ErrAccessDenied = errors.New("spaces.service: access denied")

	// ErrInvalidInput se retorna ante datos inválidos
	ErrInvalidInput = errors.New("spaces.service: invalid input")

	// ErrInternal se retorna ante errores internos
	ErrInternal = errors.New("spaces.service: internal error")
)
