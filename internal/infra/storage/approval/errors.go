package approval

import "errors"

var (
	// ErrApprovalNotFound se retorna cuando no hay decisión registrada
	ErrApprovalNotFound = errors.New("approval.repository: approval not found")

	// ErrBuildQuery se retorna ante un error construyendo el SQL
	ErrBuildQuery = errors.New("approval.repository: failed to build query")

	// ErrExecQuery se retorna ante un error ejecutando el SQL
	ErrExecQuery = errors.New("approval.repository: failed to execute query")

	// ErrScanRow se retorna ante un error escaneando resultados
	ErrScanRow = errors.New("approval.repository: failed to scan row")
)
