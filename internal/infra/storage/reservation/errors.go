package reservation

import "errors"

var (
	// ErrReservationNotFound se retorna cuando la reserva no existe
	ErrReservationNotFound = errors.New("reservation.repository: reservation not found")

	// ErrBuildQuery se retorna ante un error construyendo el SQL
	ErrBuildQuery = errors.New("reservation.repository: failed to build query")

	// ErrExecQuery se retorna ante un error ejecutando el SQL
	ErrExecQuery = errors.New("reservation.repository: failed to execute query")

	// ErrScanRow se retorna ante un error escaneando resultados
	ErrScanRow = errors.New("reservation.repository: failed to scan row")
)
