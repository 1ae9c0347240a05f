package user

import "errors"

var (
	// ErrUserNotFound se retorna cuando el usuario no existe
	ErrUserNotFound = errors.New("user.repository: user not found")

	// ErrBuildQuery se retorna ante un error construyendo el SQL
	ErrBuildQuery = errors.New("user.repository: failed to build query")

	// ErrExecQuery se retorna ante un error ejecutando el SQL
	ErrExecQuery = errors.New("user.repository: failed to execute query")

	// ErrScanRow se retorna ante un error escaneando resultados
	ErrScanRow = errors.New("user.repository: failed to scan row")
)
