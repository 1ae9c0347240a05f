package event

import "errors"

var (
	// ErrEventNotFound se retorna cuando el evento no existe
	ErrEventNotFound = errors.New("event.repository: event not found")

	// ErrServiceRequestNotFound se retorna cuando la orden de trabajo no existe
	ErrServiceRequestNotFound = errors.New("event.repository: service request not found")

	// ErrBuildQuery se retorna ante un error construyendo el SQL
	ErrBuildQuery = errors.New("event.repository: failed to build query")

	// ErrExecQuery se retorna ante un error ejecutando el SQL
	ErrExecQuery = errors.New("event.repository: failed to execute query")

	// ErrScanRow se retorna ante un error escaneando resultados
	ErrScanRow = errors.New("event.repository: failed to scan row")
)
