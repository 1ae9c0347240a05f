package notifications

import (
	"context"
	"fmt"

	"github.com/lxo898/reservas-inacap/internal/service/notifications/models"
)

// Service servicio de bandeja de notificaciones
type Service struct {
	notificationRepo NotificationRepository
	logger           Logger
}

// NewService crea una nueva instancia del servicio de notificaciones
func NewService(notificationRepo NotificationRepository, logger Logger) *Service {
	return &Service{
		notificationRepo: notificationRepo,
		logger:           logger,
	}
}

// GetUserNotifications bandeja del usuario, más recientes primero
func (s *Service) GetUserNotifications(ctx context.Context, userID int64) (*models.NotificationListResponse, error) {
	list, err := s.notificationRepo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("GetUserNotifications: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: GetUserNotifications - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainNotificationList(list), nil
}

// MarkAllRead marca todas las notificaciones del usuario como leídas
func (s *Service) MarkAllRead(ctx context.Context, userID int64) (*models.MarkAllReadResponse, error) {
	updated, err := s.notificationRepo.MarkAllRead(ctx, userID)
	if err != nil {
		s.logger.Error("MarkAllRead: repository error for user=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: MarkAllRead - repository error: %v", ErrInternal, err)
	}
	s.logger.Info("MarkAllRead: marked %d notifications for user=%d", updated, userID)
	return &models.MarkAllReadResponse{Updated: updated}, nil
}
