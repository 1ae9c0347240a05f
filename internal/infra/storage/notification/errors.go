package notification

import "errors"

var (
	// ErrBuildQuery se retorna ante un error construyendo el SQL
	ErrBuildQuery = errors.New("notification.repository: failed to build query")

	// ErrExecQuery se retorna ante un error ejecutando el SQL
	ErrExecQuery = errors.New("notification.repository: failed to execute query")

	// ErrScanRow se retorna ante un error escaneando resultados
	ErrScanRow = errors.New("notification.repository: failed to scan row")
)
