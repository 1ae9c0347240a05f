package cancel_reservation

import "errors"

var (
	// ErrReservationNotFound se retorna cuando la reserva no existe
	ErrReservationNotFound = errors.New("cancel_reservation: reservation not found")

	// ErrForbidden se retorna cuando quien cancela no es dueño ni staff
	ErrForbidden = errors.New("cancel_reservation: requester cannot cancel this reservation")

	// ErrNotCancelable se retorna cuando el estado no admite cancelación
	ErrNotCancelable = errors.New("cancel_reservation: reservation cannot be canceled")

	// ErrCancelWindow se retorna al cancelar una aprobada fuera de la ventana mínima
	ErrCancelWindow = errors.New("cancel_reservation: approved reservation is too close to start")

	// ErrInvalidInput se retorna ante datos de entrada inválidos
	ErrInvalidInput = errors.New("cancel_reservation: invalid input data")

	// ErrInternal se retorna ante errores internos del usecase
	ErrInternal = errors.New("cancel_reservation: internal error")
)
