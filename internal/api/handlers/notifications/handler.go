package notifications

import (
	"net/http"

	"github.com/lxo898/reservas-inacap/internal/api/handlers"
	"github.com/lxo898/reservas-inacap/internal/api/middleware"
)

type Handler struct {
	service NotificationsService
	logger  Logger
}

func NewHandler(service NotificationsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleList GET /api/v1/notificaciones
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "falta el header X-User-ID")
		return
	}

	result, err := h.service.GetUserNotifications(r.Context(), userID)
	if err != nil {
		h.logger.Error("GET /notificaciones - Failed: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleMarkAllRead POST /api/v1/notificaciones/leidas
func (h *Handler) HandleMarkAllRead(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "falta el header X-User-ID")
		return
	}

	result, err := h.service.MarkAllRead(r.Context(), userID)
	if err != nil {
		h.logger.Error("POST /notificaciones/leidas - Failed: user_id=%d, error=%v", userID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /notificaciones/leidas - Marked %d as read: user_id=%d", result.Updated, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
