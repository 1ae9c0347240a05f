package reservations

import (
	"context"

	"github.com/lxo898/reservas-inacap/internal/domain"
)

// ReservationRepository interfaz del repositorio de reservas
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	ListWithFilter(ctx context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error)
}

// ApprovalRepository interfaz del repositorio de aprobaciones
type ApprovalRepository interface {
	GetByReservationID(ctx context.Context, reservationID int64) (*domain.Approval, error)
}

// UserRepository interfaz del repositorio de usuarios
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Logger interfaz de logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
