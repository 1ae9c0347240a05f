package get_availability

import (
	"context"

	"github.com/lxo898/reservas-inacap/internal/service/reservations/models"
)

type ReservationsService interface {
	GetAvailability(ctx context.Context, req *models.AvailabilityRequest) ([]*models.CalendarEvent, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
