package reservations

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lxo898/reservas-inacap/internal/domain"
	approvalRepo "github.com/lxo898/reservas-inacap/internal/infra/storage/approval"
	reservationRepo "github.com/lxo898/reservas-inacap/internal/infra/storage/reservation"
	userRepo "github.com/lxo898/reservas-inacap/internal/infra/storage/user"
	"github.com/lxo898/reservas-inacap/internal/service/reservations/models"
)

// --- fakes ---

type fakeReservationRepo struct {
	reservations []*domain.Reservation
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	for _, r := range f.reservations {
		if r.ID == id {
			cp := *r
			return &cp, nil
		}
	}
	return nil, reservationRepo.ErrReservationNotFound
}

func (f *fakeReservationRepo) ListWithFilter(_ context.Context, filter domain.ReservationFilter) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, r := range f.reservations {
		if filter.UserID != nil && r.UserID != *filter.UserID {
			continue
		}
		if filter.SpaceID != nil && r.SpaceID != *filter.SpaceID {
			continue
		}
		if filter.Status != nil && r.Status != *filter.Status {
			continue
		}
		if filter.OnlyActive && !r.IsActive() {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

type fakeApprovalRepo struct {
	approvals map[int64]*domain.Approval
}

func (f *fakeApprovalRepo) GetByReservationID(_ context.Context, reservationID int64) (*domain.Approval, error) {
	a, ok := f.approvals[reservationID]
	if !ok {
		return nil, approvalRepo.ErrApprovalNotFound
	}
	return a, nil
}

type fakeUserRepo struct {
	users map[int64]*domain.User
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, userRepo.ErrUserNotFound
	}
	return u, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- setup ---

var baseStart = time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)

func newService(t *testing.T) *Service {
	t.Helper()

	reservations := &fakeReservationRepo{reservations: []*domain.Reservation{
		{ID: 1, UserID: 7, SpaceID: 1, Status: domain.StatusApproved,
			StartAt: baseStart, EndAt: baseStart.Add(time.Hour),
			SpaceName: "Auditorio", UserName: "jperez"},
		{ID: 2, UserID: 7, SpaceID: 2, Status: domain.StatusPending,
			StartAt: baseStart.Add(2 * time.Hour), EndAt: baseStart.Add(3 * time.Hour),
			SpaceName: "Sala 204", UserName: "jperez"},
		{ID: 3, UserID: 8, SpaceID: 1, Status: domain.StatusCanceled,
			StartAt: baseStart.Add(4 * time.Hour), EndAt: baseStart.Add(5 * time.Hour),
			SpaceName: "Auditorio", UserName: "mlopez"},
		{ID: 4, UserID: 8, SpaceID: 1, Status: domain.StatusRejected,
			StartAt: baseStart.Add(6 * time.Hour), EndAt: baseStart.Add(7 * time.Hour),
			SpaceName: "Auditorio", UserName: "mlopez"},
	}}
	approvals := &fakeApprovalRepo{approvals: map[int64]*domain.Approval{
		1: {ID: 1, ReservationID: 1, ApproverID: 5, Decision: domain.DecisionApprove,
			Notes: "ok", DecidedAt: baseStart.Add(-time.Hour)},
	}}
	users := &fakeUserRepo{users: map[int64]*domain.User{
		5: {ID: 5, Username: "admin", IsStaff: true, IsActive: true},
		7: {ID: 7, Username: "jperez", IsActive: true},
		8: {ID: 8, Username: "mlopez", IsActive: true},
	}}

	return NewService(reservations, approvals, users, nopLogger{})
}

// --- tests ---

func TestGetByID(t *testing.T) {
	svc := newService(t)

	// el dueño ve su reserva junto con la decisión
	resp, err := svc.GetByID(context.Background(), 1, 7)
	require.NoError(t, err)
	assert.Equal(t, "APPR", resp.Status)
	assert.Equal(t, "Aprobada", resp.StatusDisplay)
	require.NotNil(t, resp.Approval)
	assert.Equal(t, "APPR", resp.Approval.Decision)
	assert.Equal(t, "ok", resp.Approval.Notes)

	// sin decisión todavía
	resp, err = svc.GetByID(context.Background(), 2, 7)
	require.NoError(t, err)
	assert.Nil(t, resp.Approval)
}

func TestGetByID_Access(t *testing.T) {
	svc := newService(t)

	// el staff ve cualquier reserva
	_, err := svc.GetByID(context.Background(), 1, 5)
	assert.NoError(t, err)

	// otro usuario no
	_, err = svc.GetByID(context.Background(), 1, 8)
	assert.ErrorIs(t, err, ErrAccessDenied)

	_, err = svc.GetByID(context.Background(), 99, 7)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestGetUserReservations(t *testing.T) {
	svc := newService(t)

	resp, err := svc.GetUserReservations(context.Background(),
		&models.GetUserReservationsRequest{UserID: 7}, 7)
	require.NoError(t, err)
	assert.Equal(t, 2, resp.Total)

	// filtro por estado
	status := "PEND"
	resp, err = svc.GetUserReservations(context.Background(),
		&models.GetUserReservationsRequest{UserID: 7, Status: &status}, 7)
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, int64(2), resp.Reservations[0].ID)

	// estado desconocido
	bad := "XXXX"
	_, err = svc.GetUserReservations(context.Background(),
		&models.GetUserReservationsRequest{UserID: 7, Status: &bad}, 7)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// el staff ve el historial ajeno; otro usuario no
	_, err = svc.GetUserReservations(context.Background(),
		&models.GetUserReservationsRequest{UserID: 7}, 5)
	assert.NoError(t, err)
	_, err = svc.GetUserReservations(context.Background(),
		&models.GetUserReservationsRequest{UserID: 7}, 8)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetPendingApprovals(t *testing.T) {
	svc := newService(t)

	resp, err := svc.GetPendingApprovals(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, int64(2), resp.Reservations[0].ID)

	_, err = svc.GetPendingApprovals(context.Background(), 7)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestGetAvailability(t *testing.T) {
	svc := newService(t)

	// solo reservas activas entran al feed
	events, err := svc.GetAvailability(context.Background(), &models.AvailabilityRequest{})
	require.NoError(t, err)
	require.Len(t, events, 2)

	approved := events[0]
	assert.Equal(t, "Auditorio (Aprobada)", approved.Title)
	assert.Equal(t, baseStart.Format(time.RFC3339), approved.Start)
	assert.Equal(t, "APPR", approved.ExtendedProps.Status)
	assert.Equal(t, approved.BackgroundColor, approved.BorderColor)

	pending := events[1]
	assert.Equal(t, "Sala 204 (Pendiente)", pending.Title)
	assert.Equal(t, "PEND", pending.ExtendedProps.Status)
	assert.NotEqual(t, approved.BackgroundColor, pending.BackgroundColor)
}

func TestGetAvailability_SpaceFilter(t *testing.T) {
	svc := newService(t)

	spaceID := int64(1)
	events, err := svc.GetAvailability(context.Background(), &models.AvailabilityRequest{SpaceID: &spaceID})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, int64(1), events[0].ID)
}

func TestGetAvailability_WindowTrim(t *testing.T) {
	svc := newService(t)

	// ventana que deja fuera la reserva aprobada de las 10:00
	from := baseStart.Add(time.Hour) // coincide con su fin: queda fuera
	events, err := svc.GetAvailability(context.Background(), &models.AvailabilityRequest{From: &from})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, int64(2), events[0].ID)

	// ventana que deja fuera la pendiente de las 12:00
	to := baseStart.Add(2 * time.Hour) // coincide con su inicio: queda fuera
	events, err = svc.GetAvailability(context.Background(), &models.AvailabilityRequest{To: &to})
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, int64(1), events[0].ID)
}
