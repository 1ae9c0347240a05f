package spaces

import (
	"context"

	"github.com/lxo898/reservas-inacap/internal/service/spaces/models"
)

type SpacesService interface {
	GetSpace(ctx context.Context, id int64) (*models.SpaceResponse, error)
	ListSpaces(ctx context.Context) (*models.SpaceListResponse, error)
	CreateSpace(ctx context.Context, requesterID int64, req *models.SaveSpaceRequest) (*models.SpaceResponse, error)
	UpdateSpace(ctx context.Context, requesterID, spaceID int64, req *models.SaveSpaceRequest) (*models.SpaceResponse, error)
	DeactivateSpace(ctx context.Context, requesterID, spaceID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
