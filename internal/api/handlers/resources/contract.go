package resources

import (
	"context"

	"github.com/lxo898/reservas-inacap/internal/service/spaces/models"
)

type ResourcesService interface {
	ListResources(ctx context.Context) (*models.ResourceListResponse, error)
	CreateResource(ctx context.Context, requesterID int64, req *models.SaveResourceRequest) (*models.ResourceResponse, error)
	UpdateResource(ctx context.Context, requesterID, resourceID int64, req *models.SaveResourceRequest) (*models.ResourceResponse, error)
	DeleteResource(ctx context.Context, requesterID, resourceID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
