package decide_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/lxo898/reservas-inacap/internal/api/handlers"
	"github.com/lxo898/reservas-inacap/internal/api/middleware"
	"github.com/lxo898/reservas-inacap/internal/domain"
	decideReservation "github.com/lxo898/reservas-inacap/internal/usecase/decide_reservation"
)

const (
	msgInvalidRequestBody   = "cuerpo de la solicitud inválido"
	msgInvalidReservationID = "identificador de reserva inválido"
	msgInvalidDecision      = "decisión inválida, se espera approve o reject"
	msgReservationNotFound  = "reserva no encontrada"
	msgForbidden            = "solo el staff puede decidir reservas"
	msgAlreadyDecided       = "la reserva ya fue decidida"
	msgNotesRequired        = "el rechazo requiere indicar un motivo"
	msgConflictingApproved  = "el horario choca con otra reserva aprobada"
)

type Handler struct {
	useCase DecideReservationUseCase
	logger  Logger
}

func NewHandler(useCase DecideReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/aprobaciones/{reservationId}/decidir
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		handlers.RespondUnauthorized(w, "falta el header X-User-ID")
		return
	}

	reservationID, err := strconv.ParseInt(mux.Vars(r)["reservationId"], 10, 64)
	if err != nil || reservationID <= 0 {
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	var req DecideReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /aprobaciones/{id}/decidir - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	decision, ok := toDomainDecision(req.Decision)
	if !ok {
		handlers.RespondBadRequest(w, msgInvalidDecision)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &decideReservation.Request{
		ReservationID: reservationID,
		ApproverID:    userID,
		Decision:      decision,
		Notes:         req.Notes,
	})
	if err != nil {
		switch {
		case errors.Is(err, decideReservation.ErrReservationNotFound):
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, decideReservation.ErrForbidden):
			h.logger.Warn("POST /aprobaciones/{id}/decidir - Forbidden: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, decideReservation.ErrAlreadyDecided):
			handlers.RespondConflict(w, msgAlreadyDecided)

		case errors.Is(err, decideReservation.ErrNotesRequired):
			handlers.RespondBadRequest(w, msgNotesRequired)

		case errors.Is(err, decideReservation.ErrConflictingApproved):
			handlers.RespondConflict(w, msgConflictingApproved)

		case errors.Is(err, decideReservation.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /aprobaciones/{id}/decidir - Failed: reservation_id=%d, error=%v",
				reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /aprobaciones/{id}/decidir - Decided: reservation_id=%d, decision=%s, approver=%d",
		reservationID, req.Decision, userID)
	handlers.RespondJSON(w, http.StatusOK, &DecideReservationResponse{
		ReservationID: result.ReservationID,
		Status:        result.Status,
		StatusDisplay: result.StatusDisplay,
		Decision:      req.Decision,
		Notes:         result.Notes,
		DecidedAt:     result.DecidedAt.Format(domain.DateTimeFormat),
	})
}
