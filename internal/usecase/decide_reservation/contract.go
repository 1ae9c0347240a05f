package decide_reservation

import (
	"context"
	"time"

	"github.com/lxo898/reservas-inacap/internal/domain"
)

// ReservationRepository interfaz del repositorio de reservas
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	ListActiveOverlapping(ctx context.Context, spaceID int64, start, end time.Time, excludeID *int64, onlyApproved bool) ([]*domain.Reservation, error)
	UpdateStatus(ctx context.Context, id int64, status domain.ReservationStatus) error
}

// ApprovalRepository interfaz del repositorio de aprobaciones
type ApprovalRepository interface {
	Upsert(ctx context.Context, a *domain.Approval) (*domain.Approval, error)
}

// UserRepository interfaz del repositorio de usuarios
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Notifier despacho de notificaciones tras la decisión
type Notifier interface {
	NotifyUser(ctx context.Context, userID int64, message string) error
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
