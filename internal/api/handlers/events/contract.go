package events

import (
	"context"

	"github.com/lxo898/reservas-inacap/internal/service/events/models"
)

type EventsService interface {
	Create(ctx context.Context, req *models.CreateEventRequest) (*models.EventResponse, error)
	GetByID(ctx context.Context, id int64) (*models.EventResponse, error)
	List(ctx context.Context, status *string) (*models.EventListResponse, error)
	Decide(ctx context.Context, req *models.DecideEventRequest) (*models.EventResponse, error)
	Publish(ctx context.Context, eventID, requesterID int64) (*models.EventResponse, error)
	GetApprovals(ctx context.Context, eventID int64) ([]*models.ApprovalResponse, error)
	UpdateServiceRequest(ctx context.Context, eventID, requestID int64, status string, assignedTo *int64, requesterID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
