package cancel_reservation

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/lxo898/reservas-inacap/internal/api/handlers"
	"github.com/lxo898/reservas-inacap/internal/api/middleware"
	cancelReservation "github.com/lxo898/reservas-inacap/internal/usecase/cancel_reservation"
)

const (
	msgInvalidRequestBody   = "cuerpo de la solicitud inválido"
	msgInvalidReservationID = "identificador de reserva inválido"
	msgReservationNotFound  = "reserva no encontrada"
	msgForbidden            = "no puedes cancelar esta reserva"
	msgNotCancelable        = "la reserva no admite cancelación"
	msgCancelWindow         = "la reserva aprobada está demasiado cerca del inicio para cancelarla"
)

type Handler struct {
	useCase CancelReservationUseCase
	logger  Logger
}

func NewHandler(useCase CancelReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservas/{reservationId}/cancelar
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

	// El cuerpo es opcional: sin body se cancela sin motivo
	var req CancelReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /reservas/{id}/cancelar - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &cancelReservation.Request{
		ReservationID: reservationID,
		RequesterID:   userID,
		Reason:        req.Reason,
	})
	if err != nil {
		switch {
		case errors.Is(err, cancelReservation.ErrReservationNotFound):
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, cancelReservation.ErrForbidden):
			h.logger.Warn("POST /reservas/{id}/cancelar - Forbidden: user_id=%d, reservation_id=%d", userID, reservationID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, cancelReservation.ErrNotCancelable):
			handlers.RespondConflict(w, msgNotCancelable)

		case errors.Is(err, cancelReservation.ErrCancelWindow):
			handlers.RespondConflict(w, msgCancelWindow)

		case errors.Is(err, cancelReservation.ErrInvalidInput):
			handlers.RespondBadRequest(w, err.Error())

		default:
			h.logger.Error("POST /reservas/{id}/cancelar - Failed: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservas/{id}/cancelar - Reservation canceled: reservation_id=%d, user_id=%d",
		reservationID, userID)
	handlers.RespondJSON(w, http.StatusOK, &CancelReservationResponse{
		ReservationID:   result.ReservationID,
		Status:          result.Status,
		StatusDisplay:   result.StatusDisplay,
		AlreadyCanceled: result.AlreadyCanceled,
	})
}
