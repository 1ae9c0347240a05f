package notifications

import (
	"context"

	"github.com/lxo898/reservas-inacap/internal/service/notifications/models"
)

type NotificationsService interface {
	GetUserNotifications(ctx context.Context, userID int64) (*models.NotificationListResponse, error)
	MarkAllRead(ctx context.Context, userID int64) (*models.MarkAllReadResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
