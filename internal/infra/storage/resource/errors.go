package resource

import "errors"

var (
	// ErrResourceNotFound se retorna cuando el recurso no existe
	ErrResourceNotFound = errors.New("resource.repository: resource not found")

	// ErrBuildQuery se retorna ante un error construyendo el SQL
	ErrBuildQuery = errors.New("resource.repository: failed to build query")

	// ErrExecQuery se retorna ante un error ejecutando el SQL
	ErrExecQuery = errors.New("resource.repository: failed to execute query")

	// ErrScanRow se retorna ante un error escaneando resultados
	ErrScanRow = errors.New("resource.repository: failed to scan row")
)
