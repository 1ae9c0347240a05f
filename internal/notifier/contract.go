package notifier

import (
	"context"

	"github.com/lxo898/reservas-inacap/internal/domain"
)

// UserRepository resolución de destinatarios
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	ListStaff(ctx context.Context) ([]*domain.User, error)
	ListByGroup(ctx context.Context, group string) ([]*domain.User, error)
}

// NotificationRepository persistencia de notificaciones internas
type NotificationRepository interface {
	CreateBatch(ctx context.Context, userIDs []int64, message string) error
}

// Mailer transporte de correo best-effort
type Mailer interface {
	Send(ctx context.Context, to []string, subject, body string) error
}

// Logger consumidor de logging que necesita el despachador
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
