package reservations

import (
	"context"
	"errors"
	"fmt"

	"github.com/lxo898/reservas-inacap/internal/domain"
	approvalRepo "github.com/lxo898/reservas-inacap/internal/infra/storage/approval"
	reservationRepo "github.com/lxo898/reservas-inacap/internal/infra/storage/reservation"
	userRepo "github.com/lxo898/reservas-inacap/internal/infra/storage/user"
	"github.com/lxo898/reservas-inacap/internal/service/reservations/models"
)

// Service servicio de lectura de reservas
type Service struct {
	reservationRepo ReservationRepository
	approvalRepo    ApprovalRepository
	userRepo        UserRepository
	logger          Logger
}

// NewService crea una nueva instancia del servicio de reservas
func NewService(
	reservationRepo ReservationRepository,
	approvalRepo ApprovalRepository,
	userRepo UserRepository,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		approvalRepo:    approvalRepo,
		userRepo:        userRepo,
		logger:          logger,
	}
}

// GetByID obtiene una reserva con su decisión, si existe.
// El dueño ve su propia reserva; el staff ve cualquiera.
func (s *Service) GetByID(ctx context.Context, id int64, requesterID int64) (*models.ReservationResponse, error) {
	s.logger.Info("GetByID: fetching reservation id=%d for user=%d", id, requesterID)

	res, err := s.reservationRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			s.logger.Warn("GetByID: reservation id=%d not found", id)
			return nil, ErrReservationNotFound
		}
		s.logger.Error("GetByID: repository error for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if res.UserID != requesterID {
		requester, err := s.userRepo.GetByID(ctx, requesterID)
		if err != nil {
			if errors.Is(err, userRepo.ErrUserNotFound) {
				return nil, ErrAccessDenied
			}
			s.logger.Error("GetByID: failed to get requester id=%d: %v", requesterID, err)
			return nil, fmt.Errorf("%w: GetByID - requester lookup: %v", ErrInternal, err)
		}
		if !requester.IsStaff {
			s.logger.Warn("GetByID: access denied for user=%d to reservation id=%d", requesterID, id)
			return nil, ErrAccessDenied
		}
	}

	resp := models.FromDomainReservation(res)

	approval, err := s.approvalRepo.GetByReservationID(ctx, id)
	if err != nil && !errors.Is(err, approvalRepo.ErrApprovalNotFound) {
		s.logger.Error("GetByID: failed to get approval for reservation id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - approval lookup: %v", ErrInternal, err)
	}
	if approval != nil {
		resp.Approval = models.FromDomainApproval(approval)
	}

	return resp, nil
}

// GetUserReservations historial de reservas del usuario, con filtro
// opcional por estado. El dueño ve su historial; el staff, el de
// cualquier usuario.
func (s *Service) GetUserReservations(ctx context.Context, req *models.GetUserReservationsRequest, requesterID int64) (*models.ReservationListResponse, error) {
	s.logger.Info("GetUserReservations: fetching reservations for user=%d, status=%v", req.UserID, req.Status)

	if req.UserID != requesterID {
		requester, err := s.userRepo.GetByID(ctx, requesterID)
		if err != nil {
			if errors.Is(err, userRepo.ErrUserNotFound) {
				return nil, ErrAccessDenied
			}
			return nil, fmt.Errorf("%w: GetUserReservations - requester lookup: %v", ErrInternal, err)
		}
		if !requester.IsStaff {
			s.logger.Warn("GetUserReservations: access denied for user=%d to history of user=%d", requesterID, req.UserID)
			return nil, ErrAccessDenied
		}
	}

	filter := domain.ReservationFilter{UserID: &req.UserID}
	if req.Status != nil {
		status, ok := models.ToDomainStatus(*req.Status)
		if !ok {
			s.logger.Warn("GetUserReservations: invalid status=%s", *req.Status)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		filter.Status = &status
	}

	list, err := s.reservationRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetUserReservations: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserReservations - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserReservations: fetched %d reservations for user=%d", len(list), req.UserID)
	return models.FromDomainReservationList(list), nil
}

// GetPendingApprovals reservas pendientes de decisión. Solo staff.
func (s *Service) GetPendingApprovals(ctx context.Context, requesterID int64) (*models.ReservationListResponse, error) {
	s.logger.Info("GetPendingApprovals: fetching pending reservations for user=%d", requesterID)

	requester, err := s.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrAccessDenied
		}
		s.logger.Error("GetPendingApprovals: failed to get requester id=%d: %v", requesterID, err)
		return nil, fmt.Errorf("%w: GetPendingApprovals - requester lookup: %v", ErrInternal, err)
	}
	if !requester.IsStaff {
		s.logger.Warn("GetPendingApprovals: user=%d is not staff", requesterID)
		return nil, ErrAccessDenied
	}

	status := domain.StatusPending
	list, err := s.reservationRepo.ListWithFilter(ctx, domain.ReservationFilter{Status: &status})
	if err != nil {
		s.logger.Error("GetPendingApprovals: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetPendingApprovals - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainReservationList(list), nil
}

// GetAvailability feed del calendario: reservas activas (pendientes
// y aprobadas), opcionalmente acotadas a un espacio y una ventana.
func (s *Service) GetAvailability(ctx context.Context, req *models.AvailabilityRequest) ([]*models.CalendarEvent, error) {
	s.logger.Info("GetAvailability: building calendar feed, space=%v", req.SpaceID)

	filter := domain.ReservationFilter{
		SpaceID:    req.SpaceID,
		OnlyActive: true,
	}

	list, err := s.reservationRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetAvailability: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetAvailability - repository error: %v", ErrInternal, err)
	}

	events := make([]*models.CalendarEvent, 0, len(list))
	for _, r := range list {
		if req.From != nil && !r.EndAt.After(*req.From) {
			continue
		}
		if req.To != nil && !r.StartAt.Before(*req.To) {
			continue
		}
		events = append(events, models.CalendarEventFromReservation(r))
	}

	s.logger.Info("GetAvailability: feed contains %d events", len(events))
	return events, nil
}
