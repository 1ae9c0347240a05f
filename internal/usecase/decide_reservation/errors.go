package decide_reservation

import "errors"

var (
	// ErrReservationNotFound se retorna cuando la reserva no existe
	ErrReservationNotFound = errors.New("decide_reservation: reservation not found")

	// ErrForbidden se retorna cuando quien decide no es staff
	ErrForbidden = errors.New("decide_reservation: approver is not staff")

	// ErrAlreadyDecided se retorna cuando la reserva ya no está pendiente
	ErrAlreadyDecided = errors.New("decide_reservation: reservation already decided")

	// ErrNotesRequired se retorna al rechazar sin indicar motivo
	ErrNotesRequired = errors.New("decide_reservation: rejection requires notes")

	// ErrConflictingApproved se retorna al aprobar sobre otra reserva ya aprobada
	ErrConflictingApproved = errors.New("decide_reservation: range conflicts with an approved reservation")

	// ErrInvalidInput se retorna ante datos de entrada inválidos
	ErrInvalidInput = errors.New("decide_reservation: invalid input data")

	// ErrInternal se retorna ante errores internos del usecase
	ErrInternal = errors.New("decide_reservation: internal error")
)
