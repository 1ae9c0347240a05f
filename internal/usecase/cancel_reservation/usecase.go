package cancel_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/lxo898/reservas-inacap/internal/domain"
	reservationRepo "github.com/lxo898/reservas-inacap/internal/infra/storage/reservation"
	userRepo "github.com/lxo898/reservas-inacap/internal/infra/storage/user"
)

// UseCase use case de cancelación de reservas
type UseCase struct {
	reservationRepo      ReservationRepository
	userRepo             UserRepository
	notifier             Notifier
	txManager            TransactionManager
	minCancelWindowHours int
	cleaningGroup        string
	timeProvider         TimeProvider
	logger               Logger
}

// NewUseCase crea una nueva instancia del use case
func NewUseCase(
	reservationRepo ReservationRepository,
	userRepo UserRepository,
	notifier Notifier,
	txManager TransactionManager,
	minCancelWindowHours int,
	cleaningGroup string,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo:      reservationRepo,
		userRepo:             userRepo,
		notifier:             notifier,
		txManager:            txManager,
		minCancelWindowHours: minCancelWindowHours,
		cleaningGroup:        cleaningGroup,
		timeProvider:         &RealTimeProvider{},
		logger:               logger,
	}
}

// Execute cancela una reserva pendiente o aprobada.
// Cancelar una ya cancelada es un no-op idempotente. Una APROBADA
// solo se cancela respetando la ventana mínima antes del inicio;
// el staff puede cancelar sin restricción de ventana.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelReservation: reservation=%d, requester=%d", req.ReservationID, req.RequesterID)

	// 1. Validación de entrada
	if req.ReservationID <= 0 {
		return nil, fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}
	if req.RequesterID <= 0 {
		return nil, fmt.Errorf("%w: requesterID must be positive", ErrInvalidInput)
	}
	if len(req.Reason) > domain.MaxCancelReasonLength {
		return nil, fmt.Errorf("%w: reason exceeds %d characters", ErrInvalidInput, domain.MaxCancelReasonLength)
	}

	now := uc.timeProvider.Now()

	// 2. Quien cancela debe existir y estar activo
	requester, err := uc.userRepo.GetByID(ctx, req.RequesterID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("CancelReservation: requester id=%d not found", req.RequesterID)
			return nil, ErrForbidden
		}
		uc.logger.Error("CancelReservation: failed to get requester id=%d: %v", req.RequesterID, err)
		return nil, fmt.Errorf("%w: failed to get requester: %v", ErrInternal, err)
	}
	if !requester.IsActive {
		return nil, ErrForbidden
	}

	var reservation *domain.Reservation
	alreadyCanceled := false

	// 3. Verificación de estado + cancelación en una transacción
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		res, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("CancelReservation: reservation id=%d not found", req.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("CancelReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		// 3.1. Solo el dueño o el staff pueden cancelar
		if res.UserID != requester.ID && !requester.IsStaff {
			uc.logger.Warn("CancelReservation: user id=%d cannot cancel reservation id=%d",
				requester.ID, res.ID)
			return ErrForbidden
		}

		// 3.2. Cancelar una ya cancelada es un no-op
		if res.Status == domain.StatusCanceled {
			uc.logger.Info("CancelReservation: reservation id=%d already canceled", res.ID)
			alreadyCanceled = true
			reservation = res
			return nil
		}

		// 3.3. Las rechazadas no se cancelan
		if res.Status == domain.StatusRejected {
			uc.logger.Warn("CancelReservation: reservation id=%d is rejected", res.ID)
			return ErrNotCancelable
		}

		// 3.4. Reglas del dueño: sin comenzar y dentro de la ventana.
		// El staff salta la ventana pero no cancela reservas pasadas.
		if requester.IsStaff {
			if !res.StartAt.After(now) {
				uc.logger.Warn("CancelReservation: reservation id=%d already started", res.ID)
				return ErrNotCancelable
			}
		} else if !res.CanCancel(now, uc.minCancelWindowHours) {
			if !res.StartAt.After(now) {
				uc.logger.Warn("CancelReservation: reservation id=%d already started", res.ID)
				return ErrNotCancelable
			}
			uc.logger.Warn("CancelReservation: reservation id=%d inside the %dh cancel window",
				res.ID, uc.minCancelWindowHours)
			return ErrCancelWindow
		}

		// 3.5. Cancelación con motivo
		if err := uc.reservationRepo.Cancel(txCtx, res.ID, req.Reason); err != nil {
			uc.logger.Error("CancelReservation: failed to cancel reservation id=%d: %v", res.ID, err)
			return fmt.Errorf("%w: failed to cancel reservation: %v", ErrInternal, err)
		}

		res.Status = domain.StatusCanceled
		res.CancelReason = req.Reason
		reservation = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	if !alreadyCanceled {
		uc.logger.Info("CancelReservation: reservation id=%d canceled", reservation.ID)
		uc.notifyCancellation(ctx, reservation, requester)
	}

	return &Response{
		ReservationID:   reservation.ID,
		Status:          string(domain.StatusCanceled),
		StatusDisplay:   domain.StatusCanceled.Display(),
		AlreadyCanceled: alreadyCanceled,
	}, nil
}

// notifyCancellation avisa al dueño, a todo el staff y al grupo de
// aseo en cada cancelación efectiva.
func (uc *UseCase) notifyCancellation(ctx context.Context, res *domain.Reservation, requester *domain.User) {
	when := fmt.Sprintf("%s de %s a %s",
		res.StartAt.Format(domain.DateFormat),
		res.StartAt.Format(domain.TimeFormat),
		res.EndAt.Format(domain.TimeFormat))

	userMsg := fmt.Sprintf("Tu reserva de %s (%s) fue cancelada", res.SpaceName, when)
	if requester.ID != res.UserID {
		userMsg = fmt.Sprintf("Tu reserva de %s (%s) fue cancelada por administración", res.SpaceName, when)
	}
	if res.CancelReason != "" {
		userMsg = fmt.Sprintf("%s. Motivo: %s", userMsg, res.CancelReason)
	}
	if err := uc.notifier.NotifyUser(ctx, res.UserID, userMsg); err != nil {
		uc.logger.Warn("CancelReservation: user notification failed: %v", err)
	}

	staffMsg := fmt.Sprintf("Reserva cancelada: %s liberó %s (%s)", requester.DisplayName(), res.SpaceName, when)
	if err := uc.notifier.NotifyStaff(ctx, staffMsg); err != nil {
		uc.logger.Warn("CancelReservation: staff notification failed: %v", err)
	}

	// El grupo de aseo ya no necesita preparar el espacio
	if uc.cleaningGroup != "" {
		groupMsg := fmt.Sprintf("Ya no es necesario preparar %s: la reserva del %s fue cancelada", res.SpaceName, when)
		if err := uc.notifier.NotifyGroup(ctx, uc.cleaningGroup, groupMsg); err != nil {
			uc.logger.Warn("CancelReservation: cleaning group notification failed: %v", err)
		}
	}
}
