package reports

import "errors"

var (
	// ErrAccessDenied se retorna cuando el usuario no puede exportar reportes
	ErrAccessDenied = errors.New("reports.service: access denied")

	// ErrInvalidSeparator se retorna ante un separador desconocido
	ErrInvalidSeparator = errors.New("reports.service: invalid separator")

	// ErrInternal se retorna ante errores internos
	ErrInternal = errors.New("reports.service: internal error")
)
