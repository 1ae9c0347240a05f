package get_pending_approvals

import (
	"context"

	"github.com/lxo898/reservas-inacap/internal/service/reservations/models"
)

type ReservationsService interface {
	GetPendingApprovals(ctx context.Context, requesterID int64) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
