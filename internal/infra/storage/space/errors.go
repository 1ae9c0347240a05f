package space

import "errors"

var (
	// ErrSpaceNotFound se retorna cuando el espacio no existe
	ErrSpaceNotFound = errors.New("space.repository: space not found")

	// ErrBuildQuery se retorna ante un error construyendo el SQL
	ErrBuildQuery = errors.New("space.repository: failed to build query")

	// ErrExecQuery se retorna ante un error ejecutando el SQL
	ErrExecQuery = errors.New("space.repository: failed to execute query")

	// ErrScanRow se retorna ante un error escaneando resultados
	ErrScanRow = errors.New("space.repository: failed to scan row")
)
