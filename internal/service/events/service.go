package events

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lxo898/reservas-inacap/internal/domain"
	eventRepo "github.com/lxo898/reservas-inacap/internal/infra/storage/event"
	spaceRepo "github.com/lxo898/reservas-inacap/internal/infra/storage/space"
	userRepo "github.com/lxo898/reservas-inacap/internal/infra/storage/user"
	"github.com/lxo898/reservas-inacap/internal/service/events/models"
	"github.com/lxo898/reservas-inacap/pkg/ptr"
)

// Service servicio de eventos institucionales
type Service struct {
	eventRepo       EventRepository
	reservationRepo ReservationRepository
	spaceRepo       SpaceRepository
	userRepo        UserRepository
	notifier        Notifier
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewService crea una nueva instancia del servicio de eventos
func NewService(
	eventRepo EventRepository,
	reservationRepo ReservationRepository,
	spaceRepo SpaceRepository,
	userRepo UserRepository,
	notifier Notifier,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		eventRepo:       eventRepo,
		reservationRepo: reservationRepo,
		spaceRepo:       spaceRepo,
		userRepo:        userRepo,
		notifier:        notifier,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Create crea un evento en estado pendiente. Cada bloque se valida
// contra reservas activas y contra bloques de otros eventos activos,
// buffers incluidos, dentro de una transacción serializable.
func (s *Service) Create(ctx context.Context, req *models.CreateEventRequest) (*models.EventResponse, error) {
	s.logger.Info("CreateEvent: organizer=%d, title=%q, blocks=%d", req.OrganizerID, req.Title, len(req.Blocks))

	event, err := s.buildEvent(req)
	if err != nil {
		s.logger.Warn("CreateEvent: validation failed: %v", err)
		return nil, err
	}

	organizer, err := s.userRepo.GetByID(ctx, req.OrganizerID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrAccessDenied
		}
		s.logger.Error("CreateEvent: failed to get organizer id=%d: %v", req.OrganizerID, err)
		return nil, fmt.Errorf("%w: organizer lookup: %v", ErrInternal, err)
	}
	if !organizer.IsActive {
		return nil, ErrAccessDenied
	}

	// Los espacios de todos los bloques deben existir y estar activos
	for i := range event.Blocks {
		block := &event.Blocks[i]
		space, err := s.spaceRepo.GetByID(ctx, block.SpaceID)
		if err != nil {
			if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
				s.logger.Warn("CreateEvent: space id=%d not found", block.SpaceID)
				return nil, ErrSpaceNotFound
			}
			s.logger.Error("CreateEvent: failed to get space id=%d: %v", block.SpaceID, err)
			return nil, fmt.Errorf("%w: space lookup: %v", ErrInternal, err)
		}
		if !space.IsActive {
			return nil, ErrSpaceNotFound
		}
		block.SpaceName = space.Name
	}

	var created *domain.Event

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// Cada bloque contra reservas y contra otros eventos
		for i := range event.Blocks {
			block := &event.Blocks[i]
			start, end := block.BlockedRange()

			reservations, err := s.reservationRepo.ListActiveOverlapping(txCtx, block.SpaceID, start, end, nil, false)
			if err != nil {
				s.logger.Error("CreateEvent: failed to check reservations: %v", err)
				return fmt.Errorf("%w: check reservations: %v", ErrInternal, err)
			}
			if len(reservations) > 0 {
				s.logger.Warn("CreateEvent: block on space id=%d conflicts with %d reservations",
					block.SpaceID, len(reservations))
				return ErrSpaceOccupied
			}

			blocks, err := s.eventRepo.ListActiveBlocksOverlapping(txCtx, block.SpaceID, start, end, nil)
			if err != nil {
				s.logger.Error("CreateEvent: failed to check event blocks: %v", err)
				return fmt.Errorf("%w: check event blocks: %v", ErrInternal, err)
			}
			if len(blocks) > 0 {
				s.logger.Warn("CreateEvent: block on space id=%d conflicts with %d event blocks",
					block.SpaceID, len(blocks))
				return ErrSpaceOccupied
			}
		}

		out, err := s.eventRepo.Create(txCtx, event)
		if err != nil {
			s.logger.Error("CreateEvent: failed to create event: %v", err)
			return fmt.Errorf("%w: create event: %v", ErrInternal, err)
		}
		created = out
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("CreateEvent: created event id=%d", created.ID)

	msg := fmt.Sprintf("Nuevo evento pendiente: %q organizado por %s", created.Title, organizer.DisplayName())
	if err := s.notifier.NotifyStaff(ctx, msg); err != nil {
		s.logger.Warn("CreateEvent: staff notification failed: %v", err)
	}

	return models.FromDomainEvent(created), nil
}

// GetByID obtiene un evento completo
func (s *Service) GetByID(ctx context.Context, id int64) (*models.EventResponse, error) {
	event, err := s.eventRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			s.logger.Warn("GetEvent: event id=%d not found", id)
			return nil, ErrEventNotFound
		}
		s.logger.Error("GetEvent: repository error for event id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainEvent(event), nil
}

// List lista eventos, con filtro opcional por estado
func (s *Service) List(ctx context.Context, status *string) (*models.EventListResponse, error) {
	var domainStatus *domain.EventStatus
	if status != nil {
		st := domain.EventStatus(*status)
		if !st.IsValid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *status)
		}
		domainStatus = &st
	}

	list, err := s.eventRepo.ListByStatus(ctx, domainStatus)
	if err != nil {
		s.logger.Error("ListEvents: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainEventList(list), nil
}

// Decide aprueba o rechaza un evento pendiente. A diferencia de las
// reservas, el historial de decisiones es append-only.
func (s *Service) Decide(ctx context.Context, req *models.DecideEventRequest) (*models.EventResponse, error) {
	s.logger.Info("DecideEvent: event=%d, approver=%d, decision=%s", req.EventID, req.ApproverID, req.Decision)

	decision := domain.Decision(req.Decision)
	if !decision.IsValid() {
		return nil, fmt.Errorf("%w: unknown decision %q", ErrInvalidInput, req.Decision)
	}
	if decision == domain.DecisionReject && strings.TrimSpace(req.Notes) == "" {
		return nil, ErrNotesRequired
	}

	approver, err := s.userRepo.GetByID(ctx, req.ApproverID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrAccessDenied
		}
		s.logger.Error("DecideEvent: failed to get approver id=%d: %v", req.ApproverID, err)
		return nil, fmt.Errorf("%w: approver lookup: %v", ErrInternal, err)
	}
	if !approver.IsActive || !approver.IsStaff {
		return nil, ErrAccessDenied
	}

	now := s.timeProvider.Now()
	var event *domain.Event

	err = s.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		e, err := s.eventRepo.GetByID(txCtx, req.EventID)
		if err != nil {
			if errors.Is(err, eventRepo.ErrEventNotFound) {
				return ErrEventNotFound
			}
			s.logger.Error("DecideEvent: failed to get event id=%d: %v", req.EventID, err)
			return fmt.Errorf("%w: get event: %v", ErrInternal, err)
		}

		if e.Status != domain.EventPending {
			s.logger.Warn("DecideEvent: event id=%d in status %s cannot be decided", e.ID, e.Status)
			return ErrInvalidTransition
		}

		newStatus := domain.EventApproved
		if decision == domain.DecisionReject {
			newStatus = domain.EventCanceled
		} else {
			// Al aprobar, los bloques se re-verifican contra
			// reservas aprobadas y otros eventos activos
			for i := range e.Blocks {
				block := &e.Blocks[i]
				start, end := block.BlockedRange()

				reservations, err := s.reservationRepo.ListActiveOverlapping(txCtx, block.SpaceID, start, end, nil, true)
				if err != nil {
					return fmt.Errorf("%w: check reservations: %v", ErrInternal, err)
				}
				if len(reservations) > 0 {
					return ErrSpaceOccupied
				}

				blocks, err := s.eventRepo.ListActiveBlocksOverlapping(txCtx, block.SpaceID, start, end, ptr.Ptr(e.ID))
				if err != nil {
					return fmt.Errorf("%w: check event blocks: %v", ErrInternal, err)
				}
				if len(blocks) > 0 {
					return ErrSpaceOccupied
				}
			}
		}

		approval := &domain.EventApproval{
			EventID:    e.ID,
			ApproverID: req.ApproverID,
			Decision:   decision,
			Notes:      req.Notes,
			DecidedAt:  now,
		}
		if _, err := s.eventRepo.AppendApproval(txCtx, approval); err != nil {
			s.logger.Error("DecideEvent: failed to append approval: %v", err)
			return fmt.Errorf("%w: append approval: %v", ErrInternal, err)
		}

		if err := s.eventRepo.UpdateStatus(txCtx, e.ID, newStatus); err != nil {
			s.logger.Error("DecideEvent: failed to update status: %v", err)
			return fmt.Errorf("%w: update status: %v", ErrInternal, err)
		}

		e.Status = newStatus
		event = e
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("DecideEvent: event id=%d now %s", event.ID, event.Status)

	var msg string
	if event.Status == domain.EventApproved {
		msg = fmt.Sprintf("Tu evento %q fue aprobado", event.Title)
	} else {
		msg = fmt.Sprintf("Tu evento %q fue rechazado. Motivo: %s", event.Title, req.Notes)
	}
	if err := s.notifier.NotifyUser(ctx, event.OrganizerID, msg); err != nil {
		s.logger.Warn("DecideEvent: organizer notification failed: %v", err)
	}

	return models.FromDomainEvent(event), nil
}

// Publish pasa un evento aprobado a publicado
func (s *Service) Publish(ctx context.Context, eventID, requesterID int64) (*models.EventResponse, error) {
	requester, err := s.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return nil, ErrAccessDenied
		}
		return nil, fmt.Errorf("%w: requester lookup: %v", ErrInternal, err)
	}
	if !requester.IsActive || !requester.IsStaff {
		return nil, ErrAccessDenied
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("%w: get event: %v", ErrInternal, err)
	}
	if event.Status != domain.EventApproved {
		return nil, ErrInvalidTransition
	}

	if err := s.eventRepo.UpdateStatus(ctx, eventID, domain.EventPublished); err != nil {
		s.logger.Error("PublishEvent: failed to update status: %v", err)
		return nil, fmt.Errorf("%w: update status: %v", ErrInternal, err)
	}
	event.Status = domain.EventPublished

	s.logger.Info("PublishEvent: event id=%d published", eventID)
	return models.FromDomainEvent(event), nil
}

// GetApprovals historial de decisiones del evento
func (s *Service) GetApprovals(ctx context.Context, eventID int64) ([]*models.ApprovalResponse, error) {
	if _, err := s.eventRepo.GetByID(ctx, eventID); err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("%w: get event: %v", ErrInternal, err)
	}

	list, err := s.eventRepo.ListApprovals(ctx, eventID)
	if err != nil {
		s.logger.Error("GetApprovals: repository error for event id=%d: %v", eventID, err)
		return nil, fmt.Errorf("%w: list approvals: %v", ErrInternal, err)
	}
	return models.FromDomainApprovals(list), nil
}

// UpdateServiceRequest cambia el estado de una orden de trabajo.
// La orden debe pertenecer al evento indicado.
func (s *Service) UpdateServiceRequest(ctx context.Context, eventID, requestID int64, status string, assignedTo *int64, requesterID int64) error {
	requester, err := s.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return ErrAccessDenied
		}
		return fmt.Errorf("%w: requester lookup: %v", ErrInternal, err)
	}
	if !requester.IsActive || !requester.IsStaff {
		return ErrAccessDenied
	}

	st := domain.ServiceStatus(status)
	if st != domain.ServicePending && st != domain.ServiceInProgress && st != domain.ServiceDone {
		return fmt.Errorf("%w: unknown service status %q", ErrInvalidInput, status)
	}

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, eventRepo.ErrEventNotFound) {
			return ErrEventNotFound
		}
		return fmt.Errorf("%w: get event: %v", ErrInternal, err)
	}
	belongs := false
	for _, svc := range event.Services {
		if svc.ID == requestID {
			belongs = true
			break
		}
	}
	if !belongs {
		s.logger.Warn("UpdateServiceRequest: request id=%d does not belong to event id=%d", requestID, eventID)
		return ErrEventNotFound
	}

	if err := s.eventRepo.UpdateServiceRequestStatus(ctx, requestID, st, assignedTo); err != nil {
		if errors.Is(err, eventRepo.ErrServiceRequestNotFound) {
			return ErrEventNotFound
		}
		s.logger.Error("UpdateServiceRequest: repository error for request id=%d: %v", requestID, err)
		return fmt.Errorf("%w: update service request: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateServiceRequest: request id=%d now %s", requestID, status)
	return nil
}

// buildEvent valida la solicitud y arma el evento de dominio
func (s *Service) buildEvent(req *models.CreateEventRequest) (*domain.Event, error) {
	if req.OrganizerID <= 0 {
		return nil, fmt.Errorf("%w: organizerId must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if len(req.Blocks) == 0 {
		return nil, fmt.Errorf("%w: at least one block is required", ErrInvalidInput)
	}

	eventType := domain.EventType(req.Type)
	if !eventType.IsValid() {
		return nil, fmt.Errorf("%w: unknown event type %q", ErrInvalidInput, req.Type)
	}

	visibility := domain.EventVisibility(req.Visibility)
	if req.Visibility == "" {
		visibility = domain.VisibilityInternal
	} else if !visibility.IsValid() {
		return nil, fmt.Errorf("%w: unknown visibility %q", ErrInvalidInput, req.Visibility)
	}

	now := s.timeProvider.Now()
	event := &domain.Event{
		Title:                strings.TrimSpace(req.Title),
		Type:                 eventType,
		OrganizerID:          req.OrganizerID,
		Sede:                 req.Sede,
		ExpectedAttendance:   req.ExpectedAttendance,
		Visibility:           visibility,
		RequiresRegistration: req.RequiresRegistration,
		Notes:                req.Notes,
		Status:               domain.EventPending,
	}

	for _, b := range req.Blocks {
		if b.SpaceID <= 0 {
			return nil, fmt.Errorf("%w: block spaceId must be positive", ErrInvalidInput)
		}
		if !b.EndAt.After(b.StartAt) {
			return nil, fmt.Errorf("%w: block end must be after start", ErrInvalidInput)
		}
		if !b.StartAt.After(now) {
			return nil, fmt.Errorf("%w: block start must be in the future", ErrInvalidInput)
		}
		if b.BufferBeforeMin < 0 || b.BufferAfterMin < 0 {
			return nil, fmt.Errorf("%w: buffers cannot be negative", ErrInvalidInput)
		}
		event.Blocks = append(event.Blocks, domain.EventSpace{
			SpaceID:         b.SpaceID,
			StartAt:         b.StartAt,
			EndAt:           b.EndAt,
			Setup:           b.Setup,
			BufferBeforeMin: b.BufferBeforeMin,
			BufferAfterMin:  b.BufferAfterMin,
		})
	}

	for _, svc := range req.Services {
		area := domain.ServiceArea(svc.Area)
		if !area.IsValid() {
			return nil, fmt.Errorf("%w: unknown service area %q", ErrInvalidInput, svc.Area)
		}
		event.Services = append(event.Services, domain.EventServiceRequest{
			Area:   area,
			Detail: svc.Detail,
			DueAt:  svc.DueAt,
			Status: domain.ServicePending,
		})
	}

	return event, nil
}
