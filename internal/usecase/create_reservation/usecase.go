package create_reservation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lxo898/reservas-inacap/internal/domain"
	spaceRepo "github.com/lxo898/reservas-inacap/internal/infra/storage/space"
	userRepo "github.com/lxo898/reservas-inacap/internal/infra/storage/user"
)

// UseCase use case de creación de reservas
type UseCase struct {
	reservationRepo ReservationRepository
	spaceRepo       SpaceRepository
	resourceRepo    ResourceRepository
	userRepo        UserRepository
	notifier        Notifier
	txManager       TransactionManager
	grid            *domain.SlotGrid
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase crea una nueva instancia del use case
func NewUseCase(
	reservationRepo ReservationRepository,
	spaceRepo SpaceRepository,
	resourceRepo ResourceRepository,
	userRepo UserRepository,
	notifier Notifier,
	txManager TransactionManager,
	grid *domain.SlotGrid,
	location *time.Location,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		spaceRepo:       spaceRepo,
		resourceRepo:    resourceRepo,
		userRepo:        userRepo,
		notifier:        notifier,
		txManager:       txManager,
		grid:            grid,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute crea una reserva en estado pendiente.
// El chequeo de conflicto y el insert corren dentro de una transacción
// serializable: la consulta de cruces bloquea las filas (FOR UPDATE) y
// dos solicitudes simultáneas sobre el mismo rango no pueden colarse.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, space=%d, date=%s, slots=%s-%s",
		req.UserID, req.SpaceID, req.Date.Format(domain.DateFormat), req.StartSlot, req.EndSlot)

	// 1. Validación de entrada
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. El solicitante debe existir y estar activo
	user, err := uc.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			uc.logger.Warn("CreateReservation: user id=%d not found", req.UserID)
			return nil, ErrUserNotFound
		}
		uc.logger.Error("CreateReservation: failed to get user id=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
	}
	if !user.IsActive {
		uc.logger.Warn("CreateReservation: user id=%d is inactive", req.UserID)
		return nil, ErrUserNotFound
	}

	// 3. El espacio debe existir y estar activo
	space, err := uc.spaceRepo.GetByID(ctx, req.SpaceID)
	if err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			uc.logger.Warn("CreateReservation: space id=%d not found", req.SpaceID)
			return nil, ErrSpaceNotFound
		}
		uc.logger.Error("CreateReservation: failed to get space id=%d: %v", req.SpaceID, err)
		return nil, fmt.Errorf("%w: failed to get space: %v", ErrInternal, err)
	}
	if !space.IsActive {
		uc.logger.Warn("CreateReservation: space id=%d is inactive", req.SpaceID)
		return nil, ErrSpaceNotFound
	}

	// 4. Bloques contra la grilla del día; arma el rango [start, end)
	start, end, err := uc.grid.BuildRange(req.Date, req.StartSlot, req.EndSlot, uc.location)
	if err != nil {
		uc.logger.Warn("CreateReservation: slot validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidSlot, err)
	}

	// 5. No se aceptan reservas que parten en el pasado
	if !start.After(now) {
		uc.logger.Warn("CreateReservation: start %s is not in the future", start.Format(domain.DateTimeFormat))
		return nil, ErrStartInPast
	}

	// 6. Capacidad del espacio
	if space.Capacity > 0 && req.AttendeesCount > space.Capacity {
		uc.logger.Warn("CreateReservation: %d attendees exceed capacity %d of space id=%d",
			req.AttendeesCount, space.Capacity, space.ID)
		return nil, ErrCapacityExceeded
	}

	// 7. Los recursos solicitados deben existir
	if len(req.ResourceIDs) > 0 {
		resources, err := uc.resourceRepo.ListByIDs(ctx, req.ResourceIDs)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to list resources: %v", err)
			return nil, fmt.Errorf("%w: failed to list resources: %v", ErrInternal, err)
		}
		if len(resources) != len(uniqueIDs(req.ResourceIDs)) {
			uc.logger.Warn("CreateReservation: some requested resources do not exist")
			return nil, ErrResourceNotFound
		}
	}

	var result *domain.Reservation

	// 8. Conflicto + insert en una transacción serializable
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 8.1. Reservas activas que se cruzan con [start, end),
		// con bloqueo de filas
		overlapping, err := uc.reservationRepo.ListActiveOverlapping(txCtx, req.SpaceID, start, end, nil, false)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to check overlapping: %v", err)
			return fmt.Errorf("%w: failed to check overlapping: %v", ErrInternal, err)
		}
		if len(overlapping) > 0 {
			uc.logger.Warn("CreateReservation: space id=%d occupied, %d conflicting reservations",
				req.SpaceID, len(overlapping))
			return ErrSpaceOccupied
		}

		// 8.2. Insert en estado pendiente
		reservation := &domain.Reservation{
			UserID:         req.UserID,
			SpaceID:        req.SpaceID,
			StartAt:        start,
			EndAt:          end,
			Purpose:        req.Purpose,
			AttendeesCount: req.AttendeesCount,
			Status:         domain.StatusPending,
			ResourceIDs:    uniqueIDs(req.ResourceIDs),
			ResourceNotes:  req.ResourceNotes,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: created reservation id=%d", result.ID)

	// 9. Aviso al staff; cualquier fallo solo se registra
	message := fmt.Sprintf("Nueva reserva pendiente: %s solicitó %s el %s de %s a %s",
		user.DisplayName(), space.Name,
		start.Format(domain.DateFormat), req.StartSlot, req.EndSlot)
	if err := uc.notifier.NotifyStaff(ctx, message); err != nil {
		uc.logger.Warn("CreateReservation: staff notification failed: %v", err)
	}

	return &Response{
		ID:             result.ID,
		UserID:         result.UserID,
		SpaceID:        result.SpaceID,
		SpaceName:      space.Name,
		StartAt:        result.StartAt,
		EndAt:          result.EndAt,
		Purpose:        result.Purpose,
		AttendeesCount: result.AttendeesCount,
		Status:         string(result.Status),
		StatusDisplay:  result.Status.Display(),
		ResourceIDs:    result.ResourceIDs,
		ResourceNotes:  result.ResourceNotes,
		CreatedAt:      result.CreatedAt,
	}, nil
}

// uniqueIDs elimina duplicados preservando el orden
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
