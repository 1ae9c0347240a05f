package get_pending_approvals

import (
	"errors"
	"net/http"

	"github.com/lxo898/reservas-inacap/internal/api/handlers"
	"github.com/lxo898/reservas-inacap/internal/api/middleware"
	reservationsService "github.com/lxo898/reservas-inacap/internal/service/reservations"
)

const msgAccessDenied = "solo el staff puede ver las reservas pendientes"

type Handler struct {
	service ReservationsService
	logger  Logger
}

func NewHandler(service ReservationsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/aprobaciones
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "falta el header X-User-ID")
		return
	}

	result, err := h.service.GetPendingApprovals(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, reservationsService.ErrAccessDenied):
			h.logger.Warn("GET /aprobaciones - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgAccessDenied)

		default:
			h.logger.Error("GET /aprobaciones - Failed: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
