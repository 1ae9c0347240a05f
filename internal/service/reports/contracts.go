package reports

import (
	"context"
	"time"

	"github.com/lxo898/reservas-inacap/internal/domain"
)

// ReservationRepository interfaz del repositorio de reservas
type ReservationRepository interface {
	ListAllByStart(ctx context.Context) ([]*domain.Reservation, error)
}

// ResourceRepository interfaz del repositorio de recursos
type ResourceRepository interface {
	NamesByReservation(ctx context.Context) (map[int64][]string, error)
}

// ApprovalRepository interfaz del repositorio de aprobaciones
type ApprovalRepository interface {
	NotesByReservation(ctx context.Context) (map[int64]string, error)
}

// UserRepository interfaz del repositorio de usuarios
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// TimeProvider interfaz para obtener la hora actual (facilita los tests)
type TimeProvider interface {
	Now() time.Time
}

// Logger interfaz de logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider proveedor de tiempo real para producción
type RealTimeProvider struct{}

// Now retorna la hora actual
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
