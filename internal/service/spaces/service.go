package spaces

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/lxo898/reservas-inacap/internal/domain"
	resourceRepo "github.com/lxo898/reservas-inacap/internal/infra/storage/resource"
	spaceRepo "github.com/lxo898/reservas-inacap/internal/infra/storage/space"
	userRepo "github.com/lxo898/reservas-inacap/internal/infra/storage/user"
	"github.com/lxo898/reservas-inacap/internal/service/spaces/models"
)

// Service servicio de catálogo: espacios y recursos
type Service struct {
	spaceRepo    SpaceRepository
	resourceRepo ResourceRepository
	userRepo     UserRepository
	logger       Logger
}

// NewService crea una nueva instancia del servicio de catálogo
func NewService(spaceRepo SpaceRepository, resourceRepo ResourceRepository, userRepo UserRepository, logger Logger) *Service {
	return &Service{
		spaceRepo:    spaceRepo,
		resourceRepo: resourceRepo,
		userRepo:     userRepo,
		logger:       logger,
	}
}

// requireStaff valida que el usuario sea staff activo
func (s *Service) requireStaff(ctx context.Context, userID int64) error {
	u, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return ErrAccessDenied
		}
		return fmt.Errorf("%w: requester lookup: %v", ErrInternal, err)
	}
	if !u.IsActive || !u.IsStaff {
		return ErrAccessDenied
	}
	return nil
}

// GetSpace obtiene un espacio por ID
func (s *Service) GetSpace(ctx context.Context, id int64) (*models.SpaceResponse, error) {
	space, err := s.spaceRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			s.logger.Warn("GetSpace: space id=%d not found", id)
			return nil, ErrSpaceNotFound
		}
		s.logger.Error("GetSpace: repository error for space id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetSpace - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainSpace(space), nil
}

// ListSpaces lista los espacios activos
func (s *Service) ListSpaces(ctx context.Context) (*models.SpaceListResponse, error) {
	list, err := s.spaceRepo.ListActive(ctx)
	if err != nil {
		s.logger.Error("ListSpaces: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListSpaces - repository error: %v", ErrInternal, err)
	}
	s.logger.Info("ListSpaces: fetched %d active spaces", len(list))
	return models.FromDomainSpaceList(list), nil
}

// ListResources lista los recursos de apoyo disponibles
func (s *Service) ListResources(ctx context.Context) (*models.ResourceListResponse, error) {
	list, err := s.resourceRepo.ListAll(ctx)
	if err != nil {
		s.logger.Error("ListResources: repository error: %v", err)
		return nil, fmt.Errorf("%w: ListResources - repository error: %v", ErrInternal, err)
	}
	return models.FromDomainResourceList(list), nil
}

// CreateSpace alta de un espacio. Solo staff.
func (s *Service) CreateSpace(ctx context.Context, requesterID int64, req *models.SaveSpaceRequest) (*models.SpaceResponse, error) {
	if err := s.requireStaff(ctx, requesterID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.Capacity < 0 {
		return nil, fmt.Errorf("%w: capacity cannot be negative", ErrInvalidInput)
	}

	space := &domain.Space{
		Name:     strings.TrimSpace(req.Name),
		Location: req.Location,
		Capacity: req.Capacity,
		IsActive: true,
	}
	if req.IsActive != nil {
		space.IsActive = *req.IsActive
	}

	created, err := s.spaceRepo.Create(ctx, space)
	if err != nil {
		s.logger.Error("CreateSpace: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateSpace - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateSpace: created space id=%d name=%q", created.ID, created.Name)
	return models.FromDomainSpace(created), nil
}

// UpdateSpace edición de un espacio. Solo staff.
func (s *Service) UpdateSpace(ctx context.Context, requesterID, spaceID int64, req *models.SaveSpaceRequest) (*models.SpaceResponse, error) {
	if err := s.requireStaff(ctx, requesterID); err != nil {
		return nil, err
	}

	current, err := s.spaceRepo.GetByID(ctx, spaceID)
	if err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			return nil, ErrSpaceNotFound
		}
		return nil, fmt.Errorf("%w: UpdateSpace - repository error: %v", ErrInternal, err)
	}

	if strings.TrimSpace(req.Name) != "" {
		current.Name = strings.TrimSpace(req.Name)
	}
	if req.Location != "" {
		current.Location = req.Location
	}
	if req.Capacity > 0 {
		current.Capacity = req.Capacity
	}
	if req.IsActive != nil {
		current.IsActive = *req.IsActive
	}

	if err := s.spaceRepo.Update(ctx, current); err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			return nil, ErrSpaceNotFound
		}
		s.logger.Error("UpdateSpace: repository error for space id=%d: %v", spaceID, err)
		return nil, fmt.Errorf("%w: UpdateSpace - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSpace: updated space id=%d", spaceID)
	return models.FromDomainSpace(current), nil
}

// DeactivateSpace baja lógica de un espacio. Solo staff.
func (s *Service) DeactivateSpace(ctx context.Context, requesterID, spaceID int64) error {
	if err := s.requireStaff(ctx, requesterID); err != nil {
		return err
	}
	if err := s.spaceRepo.Deactivate(ctx, spaceID); err != nil {
		if errors.Is(err, spaceRepo.ErrSpaceNotFound) {
			return ErrSpaceNotFound
		}
		s.logger.Error("DeactivateSpace: repository error for space id=%d: %v", spaceID, err)
		return fmt.Errorf("%w: DeactivateSpace - repository error: %v", ErrInternal, err)
	}
	s.logger.Info("DeactivateSpace: deactivated space id=%d", spaceID)
	return nil
}

// CreateResource alta de un recurso. Solo staff.
func (s *Service) CreateResource(ctx context.Context, requesterID int64, req *models.SaveResourceRequest) (*models.ResourceResponse, error) {
	if err := s.requireStaff(ctx, requesterID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if req.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity must be positive", ErrInvalidInput)
	}

	resource := &domain.Resource{
		Name:     strings.TrimSpace(req.Name),
		Quantity: req.Quantity,
		SpaceID:  req.SpaceID,
	}
	created, err := s.resourceRepo.Create(ctx, resource)
	if err != nil {
		s.logger.Error("CreateResource: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateResource - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateResource: created resource id=%d name=%q", created.ID, created.Name)
	return &models.ResourceResponse{
		ID:       created.ID,
		Name:     created.Name,
		Quantity: created.Quantity,
		SpaceID:  created.SpaceID,
	}, nil
}

// UpdateResource edición de un recurso. Solo staff.
func (s *Service) UpdateResource(ctx context.Context, requesterID, resourceID int64, req *models.SaveResourceRequest) (*models.ResourceResponse, error) {
	if err := s.requireStaff(ctx, requesterID); err != nil {
		return nil, err
	}

	list, err := s.resourceRepo.ListByIDs(ctx, []int64{resourceID})
	if err != nil {
		return nil, fmt.Errorf("%w: UpdateResource - repository error: %v", ErrInternal, err)
	}
	if len(list) == 0 {
		return nil, ErrResourceNotFound
	}
	current := list[0]

	if strings.TrimSpace(req.Name) != "" {
		current.Name = strings.TrimSpace(req.Name)
	}
	if req.Quantity > 0 {
		current.Quantity = req.Quantity
	}
	if req.SpaceID != nil {
		current.SpaceID = req.SpaceID
	}

	if err := s.resourceRepo.Update(ctx, current); err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			return nil, ErrResourceNotFound
		}
		s.logger.Error("UpdateResource: repository error for resource id=%d: %v", resourceID, err)
		return nil, fmt.Errorf("%w: UpdateResource - repository error: %v", ErrInternal, err)
	}

	return &models.ResourceResponse{
		ID:       current.ID,
		Name:     current.Name,
		Quantity: current.Quantity,
		SpaceID:  current.SpaceID,
	}, nil
}

// DeleteResource elimina un recurso del catálogo. Solo staff.
func (s *Service) DeleteResource(ctx context.Context, requesterID, resourceID int64) error {
	if err := s.requireStaff(ctx, requesterID); err != nil {
		return err
	}
	if err := s.resourceRepo.Delete(ctx, resourceID); err != nil {
		if errors.Is(err, resourceRepo.ErrResourceNotFound) {
			return ErrResourceNotFound
		}
		s.logger.Error("DeleteResource: repository error for resource id=%d: %v", resourceID, err)
		return fmt.Errorf("%w: DeleteResource - repository error: %v", ErrInternal, err)
	}
	s.logger.Info("DeleteResource: deleted resource id=%d", resourceID)
	return nil
}
