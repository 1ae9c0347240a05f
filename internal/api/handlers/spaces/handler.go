package spaces

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
	msgInvalidSpaceID     = "identificador de espacio inválido"
	msgSpaceNotFound      = "espacio no encontrado"
	msgAccessDenied       = "solo el staff puede administrar espacios"
)

type Handler struct {
	service SpacesService
	logger  Logger
}

func NewHandler(service SpacesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// HandleList GET /api/v1/espacios
func (h *Handler) HandleList(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListSpaces(r.Context())
	if err != nil {
		h.logger.Error("GET /espacios - Failed: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleGet GET /api/v1/espacios/{spaceId}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	spaceID, err := strconv.ParseInt(mux.Vars(r)["spaceId"], 10, 64)
	if err != nil || spaceID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	result, err := h.service.GetSpace(r.Context(), spaceID)
	if err != nil {
		if errors.Is(err, spacesService.ErrSpaceNotFound) {
			handlers.RespondNotFound(w, msgSpaceNotFound)
			return
		}
		h.logger.Error("GET /espacios/{id} - Failed: space_id=%d, error=%v", spaceID, err)
		handlers.RespondInternalError(w)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleCreate POST /api/v1/espacios
func (h *Handler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "falta el header X-User-ID")
		return
	}

	var req models.SaveSpaceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.CreateSpace(r.Context(), userID, &req)
	if err != nil {
		h.respondMutationError(w, "POST /espacios", userID, err)
		return
	}

	h.logger.Info("POST /espacios - Space created: space_id=%d, user_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}

// HandleUpdate PUT /api/v1/espacios/{spaceId}
func (h *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "falta el header X-User-ID")
		return
	}

	spaceID, err := strconv.ParseInt(mux.Vars(r)["spaceId"], 10, 64)
	if err != nil || spaceID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	var req models.SaveSpaceRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpdateSpace(r.Context(), userID, spaceID, &req)
	if err != nil {
		h.respondMutationError(w, "PUT /espacios/{id}", userID, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// HandleDelete DELETE /api/v1/espacios/{spaceId}
func (h *Handler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "falta el header X-User-ID")
		return
	}

	spaceID, err := strconv.ParseInt(mux.Vars(r)["spaceId"], 10, 64)
	if err != nil || spaceID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidSpaceID)
		return
	}

	if err := h.service.DeactivateSpace(r.Context(), userID, spaceID); err != nil {
		h.respondMutationError(w, "DELETE /espacios/{id}", userID, err)
		return
	}

	h.logger.Info("DELETE /espacios/{id} - Space deactivated: space_id=%d, user_id=%d", spaceID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}

func (h *Handler) respondMutationError(w http.ResponseWriter, route string, userID int64, err error) {
	switch {
	case errors.Is(err, spacesService.ErrAccessDenied):
		h.logger.Warn("%s - Access denied: user_id=%d", route, userID)
		handlers.RespondForbidden(w, msgAccessDenied)

	case errors.Is(err, spacesService.ErrSpaceNotFound):
		handlers.RespondNotFound(w, msgSpaceNotFound)

	case errors.Is(err, spacesService.ErrInvalidInput):
		handlers.RespondBadRequest(w, err.Error())

	default:
		h.logger.Error("%s - Failed: user_id=%d, error=%v", route, userID, err)
		handlers.RespondInternalError(w)
	}
}
