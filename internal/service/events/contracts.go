package events

import (
	"context"
	"time"

	"github.com/lxo898/reservas-inacap/internal/domain"
)

// EventRepository interfaz del repositorio de eventos
type EventRepository interface {
	Create(ctx context.Context, e *domain.Event) (*domain.Event, error)
	GetByID(ctx context.Context, id int64) (*domain.Event, error)
	ListByStatus(ctx context.Context, status *domain.EventStatus) ([]*domain.Event, error)
	ListActiveBlocksOverlapping(ctx context.Context, spaceID int64, start, end time.Time, excludeEventID *int64) ([]domain.EventSpace, error)
	UpdateStatus(ctx context.Context, id int64, status domain.EventStatus) error
	AppendApproval(ctx context.Context, a *domain.EventApproval) (*domain.EventApproval, error)
	ListApprovals(ctx context.Context, eventID int64) ([]*domain.EventApproval, error)
	UpdateServiceRequestStatus(ctx context.Context, id int64, status domain.ServiceStatus, assignedTo *int64) error
}

// ReservationRepository chequeo de cruces contra reservas activas
type ReservationRepository interface {
	ListActiveOverlapping(ctx context.Context, spaceID int64, start, end time.Time, excludeID *int64, onlyApproved bool) ([]*domain.Reservation, error)
}

// SpaceRepository interfaz del repositorio de espacios
type SpaceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Space, error)
}

// UserRepository interfaz del repositorio de usuarios
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Notifier despacho de notificaciones de eventos
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
