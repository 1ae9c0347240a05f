package decide_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/lxo898/reservas-inacap/internal/domain"
	reservationRepo "github.com/lxo898/reservas-inacap/internal/infra/storage/reservation"
	userRepo "github.com/lxo898/reservas-inacap/internal/infra/storage/user"
	"github.com/lxo898/reservas-inacap/pkg/ptr"
)

// UseCase use case de aprobación o rechazo de reservas pendientes
type UseCase struct {
	reservationRepo ReservationRepository
	approvalRepo    ApprovalRepository
	userRepo        UserRepository
	notifier        Notifier
	txManager       TransactionManager
	cleaningGroup   string
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase crea una nueva instancia del use case
func NewUseCase(
	reservationRepo ReservationRepository,
	approvalRepo ApprovalRepository,
	userRepo UserRepository,
	notifier Notifier,
	txManager TransactionManager,
	cleaningGroup string,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		approvalRepo:    approvalRepo,
		userRepo:        userRepo,
		notifier:        notifier,
		txManager:       txManager,
		cleaningGroup:   cleaningGroup,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute decide una reserva pendiente. Solo reservas en estado
// pendiente aceptan decisión: re-decidir una ya resuelta retorna
// ErrAlreadyDecided. Al aprobar se re-verifica el cruce contra las
// APROBADAS dentro de la transacción serializable.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("DecideReservation: reservation=%d, approver=%d, decision=%s",
		req.ReservationID, req.ApproverID, req.Decision)

	// 1. Validación de entrada
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("DecideReservation: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Quien decide debe ser staff activo
	approver, err := uc.userRepo.GetByID(ctx, req.ApproverID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("DecideReservation: approver id=%d not found", req.ApproverID)
			return nil, ErrForbidden
		}
		uc.logger.Error("DecideReservation: failed to get approver id=%d: %v", req.ApproverID, err)
		return nil, fmt.Errorf("%w: failed to get approver: %v", ErrInternal, err)
	}
	if !approver.IsActive || !approver.IsStaff {
		uc.logger.Warn("DecideReservation: user id=%d is not active staff", req.ApproverID)
		return nil, ErrForbidden
	}

	var reservation *domain.Reservation

	// 3. Decisión dentro de una transacción serializable
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		res, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				uc.logger.Warn("DecideReservation: reservation id=%d not found", req.ReservationID)
				return ErrReservationNotFound
			}
			uc.logger.Error("DecideReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		// 3.1. Solo las pendientes aceptan decisión
		if res.Status != domain.StatusPending {
			uc.logger.Warn("DecideReservation: reservation id=%d already in status %s", res.ID, res.Status)
			return ErrAlreadyDecided
		}

		newStatus := domain.StatusRejected
		if req.Decision == domain.DecisionApprove {
			newStatus = domain.StatusApproved

			// 3.2. Al aprobar, el rango no puede chocar con otra APROBADA
			overlapping, err := uc.reservationRepo.ListActiveOverlapping(
				txCtx, res.SpaceID, res.StartAt, res.EndAt, ptr.Ptr(res.ID), true)
			if err != nil {
				uc.logger.Error("DecideReservation: failed to check overlapping: %v", err)
				return fmt.Errorf("%w: failed to check overlapping: %v", ErrInternal, err)
			}
			if len(overlapping) > 0 {
				uc.logger.Warn("DecideReservation: reservation id=%d conflicts with %d approved reservations",
					res.ID, len(overlapping))
				return ErrConflictingApproved
			}
		}

		// 3.3. Registro de la decisión (upsert por reserva)
		approval := &domain.Approval{
			ReservationID: res.ID,
			ApproverID:    req.ApproverID,
			Decision:      req.Decision,
			Notes:         req.Notes,
			DecidedAt:     now,
		}
		if _, err := uc.approvalRepo.Upsert(txCtx, approval); err != nil {
			uc.logger.Error("DecideReservation: failed to upsert approval: %v", err)
			return fmt.Errorf("%w: failed to upsert approval: %v", ErrInternal, err)
		}

		// 3.4. Cambio de estado
		if err := uc.reservationRepo.UpdateStatus(txCtx, res.ID, newStatus); err != nil {
			uc.logger.Error("DecideReservation: failed to update status: %v", err)
			return fmt.Errorf("%w: failed to update status: %v", ErrInternal, err)
		}

		res.Status = newStatus
		reservation = res
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("DecideReservation: reservation id=%d now %s", reservation.ID, reservation.Status)

	// 4. Avisos; cualquier fallo solo se registra
	uc.notifyOutcome(ctx, reservation, req.Notes)

	return &Response{
		ReservationID: reservation.ID,
		Status:        string(reservation.Status),
		StatusDisplay: reservation.Status.Display(),
		Decision:      string(req.Decision),
		Notes:         req.Notes,
		DecidedAt:     now,
	}, nil
}

func (uc *UseCase) notifyOutcome(ctx context.Context, res *domain.Reservation, notes string) {
	when := fmt.Sprintf("%s de %s a %s",
		res.StartAt.Format(domain.DateFormat),
		res.StartAt.Format(domain.TimeFormat),
		res.EndAt.Format(domain.TimeFormat))

	var userMsg string
	if res.Status == domain.StatusApproved {
		userMsg = fmt.Sprintf("Tu reserva de %s (%s) fue aprobada", res.SpaceName, when)
		if notes != "" {
			userMsg = fmt.Sprintf("%s. Notas: %s", userMsg, notes)
		}
	} else {
		userMsg = fmt.Sprintf("Tu reserva de %s (%s) fue rechazada. Motivo: %s", res.SpaceName, when, notes)
	}
	if err := uc.notifier.NotifyUser(ctx, res.UserID, userMsg); err != nil {
		uc.logger.Warn("DecideReservation: user notification failed: %v", err)
	}

	// El grupo de aseo prepara el espacio de las reservas aprobadas
	if res.Status == domain.StatusApproved && uc.cleaningGroup != "" {
		groupMsg := fmt.Sprintf("Preparar %s para reserva aprobada: %s", res.SpaceName, when)
		if err := uc.notifier.NotifyGroup(ctx, uc.cleaningGroup, groupMsg); err != nil {
			uc.logger.Warn("DecideReservation: cleaning group notification failed: %v", err)
		}
	}
}
