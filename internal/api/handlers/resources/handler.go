package resources

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/lxo898/reservas-inacap/internal/api/handlers"
	"github.com/lxo898/reservas-inacap/internal/api/middleware"
	spacesService "github.com/lxo898/reservas-inacap/internal/service/spaces"
	"github.com/lxo898/reservas-inacap/internal/service/spaces/models"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgInvalidResourceID  = "identificador de recurso inválido"
	msgResourceNotFound   = "recurso no encontrado"
	msgAccessDenied       = "solo el staff puede administrar recursos"
)

type Handler struct {
	service ResourcesService
	logger  Logger
}

func NewHandler(service ResourcesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleList GET /api/v1/recursos
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListResources(r.Context())
	if err != nil {
		h.logger.Error("GET /recursos - Failed: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleCreate POST /api/v1/recursos
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "falta el header X-User-ID")
		return
	}

	var req models.SaveResourceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateResource(r.Context(), userID, &req)
	if err != nil {
		h.respondMutationError(w, "POST /recursos", userID, err)
		return
	}

	h.logger.Info("POST /recursos - Resource created: resource_id=%d, user_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleUpdate PUT /api/v1/recursos/{resourceId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "falta el header X-User-ID")
		return
	}

	resourceID, err := strconv.ParseInt(mux.Vars(r)["resourceId"], 10, 64)
	if err != nil || resourceID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	var req models.SaveResourceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateResource(r.Context(), userID, resourceID, &req)
	if err != nil {
		h.respondMutationError(w, "PUT /recursos/{id}", userID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/recursos/{resourceId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "falta el header X-User-ID")
		return
	}

	resourceID, err := strconv.ParseInt(mux.Vars(r)["resourceId"], 10, 64)
	if err != nil || resourceID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidResourceID)
		return
	}

	if err := h.service.DeleteResource(r.Context(), userID, resourceID); err != nil {
		h.respondMutationError(w, "DELETE /recursos/{id}", userID, err)
		return
	}

	h.logger.Info("DELETE /recursos/{id} - Resource deleted: resource_id=%d, user_id=%d", resourceID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) respondMutationError(w http.ResponseWriter, route string, userID int64, err error) {
	switch {
	case errors.Is(err, spacesService.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: user_id=%d", route, userID)
		handlers.RespondForbidden(w, msgAccessDenied)

	case errors.Is(err, spacesService.ErrResourceNotFound):
		handlers.RespondNotFound(w, msgResourceNotFound)

	case errors.Is(err, spacesService.ErrInvalidInput):
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s - Failed: user_id=%d, error=%v", route, userID, err)
		handlers.RespondInternalError(w)
	}
}
