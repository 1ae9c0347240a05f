package events

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/lxo898/reservas-inacap/internal/api/handlers"
	"github.com/lxo898/reservas-inacap/internal/api/middleware"
	"github.com/lxo898/reservas-inacap/internal/domain"
	eventsService "github.com/lxo898/reservas-inacap/internal/service/events"
	"github.com/lxo898/reservas-inacap/internal/service/events/models"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgInvalidEventID     = "identificador de evento inválido"
	msgInvalidDecision    = "decisión inválida, se espera approve o reject"
	msgEventNotFound      = "evento no encontrado"
	msgAccessDenied       = "no tienes permisos para esta operación"
	msgSpaceOccupied      = "uno de los bloques choca con una reserva o evento existente"
	msgInvalidTransition  = "el evento no admite esta transición de estado"
	msgNotesRequired      = "el rechazo requiere indicar un motivo"
)

type Handler struct {
	service EventsService
	logger  Logger
}

func NewHandler(service EventsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleCreate POST /api/v1/eventos
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "falta el header X-User-ID")
		return
	}

	var req models.CreateEventRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /eventos - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	// El organizador siempre es el usuario autenticado
	req.OrganizerID = userID

	result, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.respondServiceError(w, "POST /eventos", userID, err)
		return
	}

	h.logger.Info("POST /eventos - Event created: event_id=%d, organizer=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleList GET /api/v1/eventos?status=
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	var status *string
	if raw := r.URL.Query().Get("status"); raw != "" {
		status = &raw
	}

	result, err := h.service.List(r.Context(), status)
	if err != nil {
		if errors.Is(err, eventsService.ErrInvalidInput) {
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("GET /eventos - Failed: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleGet GET /api/v1/eventos/{eventId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.parseEventID(w, r)
	if !ok {
		return
	}

	result, err := h.service.GetByID(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, eventsService.ErrEventNotFound) {
			handlers.RespondNotFound(w, msgEventNotFound)
			return
		}
		h.logger.Error("GET /eventos/{id} - Failed: event_id=%d, error=%v", eventID, err)
		handlers.RespondInternalError(w)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDecide POST /api/v1/eventos/{eventId}/decidir
func (h *Handler) HandleDecide(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "falta el header X-User-ID")
		return
	}

	eventID, ok := h.parseEventID(w, r)
	if !ok {
		return
	}

	var req DecideRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	decision, ok := toDomainDecision(req.Decision)
	if !ok {
		handlers.RespondBadRequest(w, msgInvalidDecision)
		return
	}

	result, err := h.service.Decide(r.Context(), &models.DecideEventRequest{
		EventID:    eventID,
		ApproverID: userID,
		Decision:   string(decision),
		Notes:      req.Notes,
	})
	if err != nil {
		h.respondServiceError(w, "POST /eventos/{id}/decidir", userID, err)
		return
	}

	h.logger.Info("POST /eventos/{id}/decidir - Decided: event_id=%d, decision=%s, approver=%d",
		eventID, req.Decision, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandlePublish POST /api/v1/eventos/{eventId}/publicar
func (h *Handler) HandlePublish(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "falta el header X-User-ID")
		return
	}

	eventID, ok := h.parseEventID(w, r)
	if !ok {
		return
	}

	result, err := h.service.Publish(r.Context(), eventID, userID)
	if err != nil {
		h.respondServiceError(w, "POST /eventos/{id}/publicar", userID, err)
		return
	}

	h.logger.Info("POST /eventos/{id}/publicar - Published: event_id=%d, user_id=%d", eventID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleApprovals GET /api/v1/eventos/{eventId}/aprobaciones
func (h *Handler) HandleApprovals(w http.ResponseWriter, r *http.Request) {
	eventID, ok := h.parseEventID(w, r)
	if !ok {
		return
	}

	result, err := h.service.GetApprovals(r.Context(), eventID)
	if err != nil {
		if errors.Is(err, eventsService.ErrEventNotFound) {
			handlers.RespondNotFound(w, msgEventNotFound)
			return
		}
		h.logger.Error("GET /eventos/{id}/aprobaciones - Failed: event_id=%d, error=%v", eventID, err)
		handlers.RespondInternalError(w)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleServiceRequest POST /api/v1/eventos/{eventId}/servicios
func (h *Handler) HandleServiceRequest(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "falta el header X-User-ID")
		return
	}

	eventID, ok := h.parseEventID(w, r)
	if !ok {
		return
	}

	var req ServiceRequestUpdate
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.ServiceRequestID <= 0 {
		handlers.RespondBadRequest(w, "serviceRequestId debe ser positivo")
		return
	}

	err := h.service.UpdateServiceRequest(r.Context(), eventID, req.ServiceRequestID, req.Status, req.AssignedTo, userID)
	if err != nil {
		h.respondServiceError(w, "POST /eventos/{id}/servicios", userID, err)
		return
	}

	h.logger.Info("POST /eventos/{id}/servicios - Updated: request_id=%d, status=%s, user_id=%d",
		req.ServiceRequestID, req.Status, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) parseEventID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	eventID, err := strconv.ParseInt(mux.Vars(r)["eventId"], 10, 64)
	if err != nil || eventID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidEventID)
		return 0, false
	}
	return eventID, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, route string, userID int64, err error) {
	switch {
	case errors.Is(err, eventsService.ErrEventNotFound):
		handlers.RespondNotFound(w, msgEventNotFound)

	case errors.Is(err, eventsService.ErrSpaceNotFound):
		handlers.RespondNotFound(w, "espacio no encontrado")

	case errors.Is(err, eventsService.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: user_id=%d", route, userID)
		handlers.RespondForbidden(w, msgAccessDenied)

	case errors.Is(err, eventsService.ErrSpaceOccupied):
		handlers.RespondConflict(w, msgSpaceOccupied)

	case errors.Is(err, eventsService.ErrInvalidTransition):
		handlers.RespondConflict(w, msgInvalidTransition)

	case errors.Is(err, eventsService.ErrNotesRequired):
		handlers.RespondBadRequest(w, msgNotesRequired)

	case errors.Is(err, eventsService.ErrInvalidInput):
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s - Failed: user_id=%d, error=%v", route, userID, err)
		handlers.RespondInternalError(w)
	}
}

func toDomainDecision(raw string) (domain.Decision, bool) {
	switch raw {
	case "approve":
		return domain.DecisionApprove, true
	case "reject":
		return domain.DecisionReject, true
	default:
		return "", false
	}
}
