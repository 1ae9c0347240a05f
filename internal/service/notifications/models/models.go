package models

import "github.com/lxo898/reservas-inacap/internal/domain"

// NotificationResponse datos de una notificación interna
type NotificationResponse struct {
	ID        int64  `json:"id"`
	Message   string `json:"message"`
	IsRead    bool   `json:"isRead"`
	CreatedAt string `json:"createdAt"`
}

// NotificationListResponse listado con contador de no leídas
type NotificationListResponse struct {
	Notifications []*NotificationResponse `json:"notifications"`
	Total         int                     `json:"total"`
	Unread        int                     `json:"unread"`
}

// MarkAllReadResponse resultado de marcar todas como leídas
type MarkAllReadResponse struct {
	Updated int64 `json:"updated"`
}

// FromDomainNotificationList convierte notificaciones de dominio a response
func FromDomainNotificationList(list []*domain.Notification) *NotificationListResponse {
	out := make([]*NotificationResponse, 0, len(list))
	unread := 0
	for _, n := range list {
		if !n.IsRead {
			unread++
		}
		out = append(out, &NotificationResponse{
			ID:        n.ID,
			Message:   n.Message,
			IsRead:    n.IsRead,
			CreatedAt: n.CreatedAt.Format(domain.DateTimeFormat),
		})
	}
	return &NotificationListResponse{
		Notifications: out,
		Total:         len(out),
		Unread:        unread,
	}
}
