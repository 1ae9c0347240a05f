package notifications

import "errors"

var (
	// ErrInternal se retorna ante errores internos
	ErrInternal = errors.New("notifications.service: internal error")
)
