package create_reservation

import (
	"errors"
	"net/http"

	"github.com/lxo898/reservas-inacap/internal/api/handlers"
	"github.com/lxo898/reservas-inacap/internal/api/middleware"
	createReservation "github.com/lxo898/reservas-inacap/internal/usecase/create_reservation"
)

const (
	msgInvalidRequestBody = "cuerpo de la solicitud inválido"
	msgInvalidDate        = "formato de fecha inválido, se espera YYYY-MM-DD"
	msgInvalidSlot        = "bloque horario fuera de la grilla del día"
	msgStartInPast        = "la reserva no puede comenzar en el pasado"
	msgSpaceOccupied      = "el espacio ya tiene una reserva en ese horario"
	msgSpaceNotFound      = "espacio no encontrado"
	msgUserNotFound       = "usuario no encontrado"
	msgResourceNotFound   = "recurso solicitado no encontrado"
	msgCapacityExceeded   = "la cantidad de asistentes supera la capacidad del espacio"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservas
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "falta el header X-User-ID")
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservas - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservas - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrSpaceOccupied):
			h.logger.Warn("POST /reservas - Space occupied: user_id=%d, space_id=%d", userID, req.SpaceID)
			handlers.RespondConflict(w, msgSpaceOccupied)

		case errors.Is(err, createReservation.ErrSpaceNotFound):
			handlers.RespondNotFound(w, msgSpaceNotFound)

		case errors.Is(err, createReservation.ErrUserNotFound):
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createReservation.ErrResourceNotFound):
			handlers.RespondBadRequest(w, msgResourceNotFound)

		case errors.Is(err, createReservation.ErrInvalidSlot):
			handlers.RespondBadRequest(w, msgInvalidSlot)

		case errors.Is(err, createReservation.ErrStartInPast):
			handlers.RespondBadRequest(w, msgStartInPast)

		case errors.Is(err, createReservation.ErrCapacityExceeded):
			handlers.RespondBadRequest(w, msgCapacityExceeded)

		case errors.Is(err, createReservation.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /reservas - Failed to create reservation: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservas - Reservation created: reservation_id=%d, user_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
