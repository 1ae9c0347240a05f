package create_reservation

import "errors"

var (
	// ErrUserNotFound se retorna cuando el usuario no existe o está inactivo
	ErrUserNotFound = errors.New("create_reservation: user not found")

	// ErrSpaceNotFound se retorna cuando el espacio no existe o está inactivo
	ErrSpaceNotFound = errors.New("create_reservation: space not found")

	// ErrResourceNotFound se retorna cuando algún recurso solicitado no existe
	ErrResourceNotFound = errors.New("create_reservation: resource not found")

	// ErrInvalidSlot se retorna cuando los bloques no pertenecen a la grilla del día
	ErrInvalidSlot = errors.New("create_reservation: invalid slot selection")

	// ErrStartInPast se retorna cuando el inicio solicitado ya pasó
	ErrStartInPast = errors.New("create_reservation: start time is in the past")

	// ErrSpaceOccupied se retorna cuando el rango choca con otra reserva activa
	ErrSpaceOccupied = errors.New("create_reservation: space already reserved for this range")

	// ErrCapacityExceeded se retorna cuando los asistentes superan la capacidad del espacio
	ErrCapacityExceeded = errors.New("create_reservation: attendees exceed space capacity")

	// ErrInvalidInput se retorna ante datos de entrada inválidos
	ErrInvalidInput = errors.New("create_reservation: invalid input data")

	// ErrInternal se retorna ante errores internos del usecase
	ErrInternal = errors.New("create_reservation: internal error")
)
