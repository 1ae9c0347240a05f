package reports

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/lxo898/reservas-inacap/internal/domain"
	userRepo "github.com/lxo898/reservas-inacap/internal/infra/storage/user"
)

// reportColumns encabezado del reporte de reservas
var reportColumns = []string{
	"ID",
	"Usuario",
	"Espacio",
	"Inicio",
	"Fin",
	"Estado",
	"Motivo",
	"Asistentes",
	"Recursos solicitados",
	"Detalle recursos",
	"Notas aprobación",
}

// Service servicio de reportes CSV
type Service struct {
	reservationRepo ReservationRepository
	resourceRepo    ResourceRepository
	approvalRepo    ApprovalRepository
	userRepo        UserRepository
	location        *time.Location
	timeProvider    TimeProvider
	logger          Logger
}

// NewService crea una nueva instancia del servicio de reportes
func NewService(
	reservationRepo ReservationRepository,
	resourceRepo ResourceRepository,
	approvalRepo ApprovalRepository,
	userRepo UserRepository,
	location *time.Location,
	logger Logger,
) *Service {
	return &Service{
		reservationRepo: reservationRepo,
		resourceRepo:    resourceRepo,
		approvalRepo:    approvalRepo,
		userRepo:        userRepo,
		location:        location,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// ExportReservationsCSV genera el reporte completo de reservas.
// Acceso restringido a staff y al grupo Coordinador. El parámetro
// sep acepta semicolon (defecto), comma y tab.
func (s *Service) ExportReservationsCSV(ctx context.Context, requesterID int64, sep string) (string, error) {
	s.logger.Info("ExportReservationsCSV: requested by user=%d, sep=%q", requesterID, sep)

	requester, err := s.userRepo.GetByID(ctx, requesterID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			return "", ErrAccessDenied
		}
		s.logger.Error("ExportReservationsCSV: failed to get requester id=%d: %v", requesterID, err)
		return "", fmt.Errorf("%w: requester lookup: %v", ErrInternal, err)
	}
	if !requester.CanExportReports() {
		s.logger.Warn("ExportReservationsCSV: user=%d cannot export reports", requesterID)
		return "", ErrAccessDenied
	}

	separator, err := resolveSeparator(sep)
	if err != nil {
		s.logger.Warn("ExportReservationsCSV: invalid separator %q", sep)
		return "", err
	}

	reservations, err := s.reservationRepo.ListAllByStart(ctx)
	if err != nil {
		s.logger.Error("ExportReservationsCSV: failed to list reservations: %v", err)
		return "", fmt.Errorf("%w: list reservations: %v", ErrInternal, err)
	}

	resourceNames, err := s.resourceRepo.NamesByReservation(ctx)
	if err != nil {
		s.logger.Error("ExportReservationsCSV: failed to list resource names: %v", err)
		return "", fmt.Errorf("%w: list resource names: %v", ErrInternal, err)
	}

	approvalNotes, err := s.approvalRepo.NotesByReservation(ctx)
	if err != nil {
		s.logger.Error("ExportReservationsCSV: failed to list approval notes: %v", err)
		return "", fmt.Errorf("%w: list approval notes: %v", ErrInternal, err)
	}

	now := s.timeProvider.Now().In(s.location)

	w := newCSVWriter(separator)

	// Filas de metadatos antes del encabezado
	w.writeRow("Reporte generado por", requester.DisplayName())
	w.writeRow("Fecha de generación", now.Format(domain.DateTimeFormat))
	w.writeRow()
	w.writeRow(reportColumns...)

	for _, r := range reservations {
		w.writeRow(
			strconv.FormatInt(r.ID, 10),
			fmt.Sprintf("%s (%s)", r.UserFullName, r.UserName),
			r.SpaceName,
			r.StartAt.In(s.location).Format(domain.DateTimeFormat),
			r.EndAt.In(s.location).Format(domain.DateTimeFormat),
			r.Status.Display(),
			r.Purpose,
			strconv.Itoa(r.AttendeesCount),
			strings.Join(resourceNames[r.ID], ", "),
			r.ResourceNotes,
			approvalNotes[r.ID],
		)
	}

	s.logger.Info("ExportReservationsCSV: exported %d reservations", len(reservations))
	return w.String(), nil
}

// FileName nombre sugerido del archivo con marca de tiempo
func (s *Service) FileName() string {
	return fmt.Sprintf("reservas_%s.csv", s.timeProvider.Now().In(s.location).Format("20060102_150405"))
}
