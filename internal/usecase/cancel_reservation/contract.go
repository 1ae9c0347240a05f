package cancel_reservation

import (
	"context"
	"time"

	"github.com/lxo898/reservas-inacap/internal/domain"
)

// ReservationRepository interfaz del repositorio de reservas
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	Cancel(ctx context.Context, id int64, reason string) error
}

// UserRepository interfaz del repositorio de usuarios
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Notifier despacho de notificaciones tras la cancelación
type Notifier interface {
	NotifyUser(ctx context.Context, userID int64, message string) error
	NotifyStaff(ctx context.Context, message string) error
	NotifyGroup(ctx context.Context, group string, message string) error
}

// TransactionManager interfaz para el manejo de transacciones
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
