package notifications

import (
	"context"

	"github.com/lxo898/reservas-inacap/internal/domain"
)

// NotificationRepository interfaz del repositorio de notificaciones
type NotificationRepository interface {
	ListByUser(ctx context.Context, userID int64) ([]*domain.Notification, error)
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
}

// Logger interfaz de logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
