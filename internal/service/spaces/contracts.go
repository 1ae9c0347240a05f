package spaces

import (
	"context"

	"github.com/lxo898/reservas-inacap/internal/domain"
)

// SpaceRepository interfaz del repositorio de espacios
type SpaceRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Space, error)
	ListActive(ctx context.Context) ([]*domain.Space, error)
	Create(ctx context.Context, s *domain.Space) (*domain.Space, error)
	Update(ctx context.Context, s *domain.Space) error
	Deactivate(ctx context.Context, id int64) error
}

// ResourceRepository interfaz del repositorio de recursos
type ResourceRepository interface {
	ListAll(ctx context.Context) ([]*domain.Resource, error)
	ListByIDs(ctx context.Context, ids []int64) ([]*domain.Resource, error)
	Create(ctx context.Context, res *domain.Resource) (*domain.Resource, error)
	Update(ctx context.Context, res *domain.Resource) error
	Delete(ctx context.Context, id int64) error
}

// UserRepository verificación de rol para mutaciones
type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// Logger interfaz de logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
