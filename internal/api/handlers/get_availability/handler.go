package get_availability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/lxo898/reservas-inacap/internal/api/handlers"
	"github.com/lxo898/reservas-inacap/internal/service/reservations/models"
)

const (
	msgInvalidSpaceID = "identificador de espacio inválido"
	msgInvalidRange   = "rango de fechas inválido, se espera RFC 3339"
)

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

// Handle GET /api/v1/availability?space=<id>&start=...&end=...
// Feed de eventos en el formato que consume FullCalendar.
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &models.AvailabilityRequest{}

	if raw := r.URL.Query().Get("space"); raw != "" {
		spaceID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || spaceID <= 0 {
			handlers.RespondBadRequest(w, msgInvalidSpaceID)
			return
		}
		req.SpaceID = &spaceID
	}

	if raw := r.URL.Query().Get("start"); raw != "" {
		from, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidRange)
			return
		}
		req.From = &from
	}
	if raw := r.URL.Query().Get("end"); raw != "" {
		to, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			handlers.RespondBadRequest(w, msgInvalidRange)
			return
		}
		req.To = &to
	}

	result, err := h.service.GetAvailability(r.Context(), req)
	if err != nil {
		h.logger.Error("GET /availability - Failed: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
