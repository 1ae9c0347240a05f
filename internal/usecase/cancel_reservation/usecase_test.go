package cancel_reservation

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lxo898/reservas-inacap/internal/domain"
	reservationRepo "github.com/lxo898/reservas-inacap/internal/infra/storage/reservation"
	userRepo "github.com/lxo898/reservas-inacap/internal/infra/storage/user"
)

// --- fakes ---

type fakeReservationRepo struct {
	reservations map[int64]*domain.Reservation
}

func (f *fakeReservationRepo) GetByID(_ context.Context, id int64) (*domain.Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return nil, reservationRepo.ErrReservationNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeReservationRepo) Cancel(_ context.Context, id int64, reason string) error {
	r, ok := f.reservations[id]
	if !ok {
		return reservationRepo.ErrReservationNotFound
	}
	r.Status = domain.StatusCanceled
	r.CancelReason = reason
	return nil
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

type fakeNotifier struct {
	staffMessages []string
	userMessages  map[int64][]string
	groupMessages map[string][]string
}

func (f *fakeNotifier) NotifyUser(_ context.Context, userID int64, message string) error {
	if f.userMessages == nil {
		f.userMessages = make(map[int64][]string)
	}
	f.userMessages[userID] = append(f.userMessages[userID], message)
	return nil
}

func (f *fakeNotifier) NotifyStaff(_ context.Context, message string) error {
	f.staffMessages = append(f.staffMessages, message)
	return nil
}

func (f *fakeNotifier) NotifyGroup(_ context.Context, group string, message string) error {
	if f.groupMessages == nil {
		f.groupMessages = make(map[string][]string)
	}
	f.groupMessages[group] = append(f.groupMessages[group], message)
	return nil
}

type fakeTxManager struct{}

func (f *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- setup ---

var testNow = time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)

type fixture struct {
	uc           *UseCase
	reservations *fakeReservationRepo
	notifier     *fakeNotifier
}

// newFixture arma el caso con ventana mínima de 2 horas
func newFixture(t *testing.T) *fixture {
	t.Helper()

	reservations := &fakeReservationRepo{reservations: map[int64]*domain.Reservation{
		// pendiente, parte en 30 min
		1: {ID: 1, UserID: 7, SpaceID: 1, Status: domain.StatusPending,
			StartAt: testNow.Add(30 * time.Minute), EndAt: testNow.Add(90 * time.Minute),
			SpaceName: "Auditorio"},
		// aprobada, parte en 3 horas (fuera de la ventana)
		2: {ID: 2, UserID: 7, SpaceID: 1, Status: domain.StatusApproved,
			StartAt: testNow.Add(3 * time.Hour), EndAt: testNow.Add(4 * time.Hour),
			SpaceName: "Auditorio"},
		// aprobada, parte en 1 hora (dentro de la ventana)
		3: {ID: 3, UserID: 7, SpaceID: 1, Status: domain.StatusApproved,
			StartAt: testNow.Add(1 * time.Hour), EndAt: testNow.Add(2 * time.Hour),
			SpaceName: "Auditorio"},
		// ya comenzó
		4: {ID: 4, UserID: 7, SpaceID: 1, Status: domain.StatusApproved,
			StartAt: testNow.Add(-1 * time.Hour), EndAt: testNow.Add(1 * time.Hour),
			SpaceName: "Auditorio"},
		// rechazada
		5: {ID: 5, UserID: 7, SpaceID: 1, Status: domain.StatusRejected,
			StartAt: testNow.Add(5 * time.Hour), EndAt: testNow.Add(6 * time.Hour),
			SpaceName: "Auditorio"},
		// ya cancelada
		6: {ID: 6, UserID: 7, SpaceID: 1, Status: domain.StatusCanceled,
			StartAt: testNow.Add(5 * time.Hour), EndAt: testNow.Add(6 * time.Hour),
			SpaceName: "Auditorio"},
	}}
	users := &fakeUserRepo{users: map[int64]*domain.User{
		5: {ID: 5, Username: "admin", IsStaff: true, IsActive: true},
		7: {ID: 7, Username: "jperez", FirstName: "Juan", LastName: "Pérez", IsActive: true},
		8: {ID: 8, Username: "otro", IsActive: true},
	}}
	notifier := &fakeNotifier{}

	uc := NewUseCase(reservations, users, notifier, &fakeTxManager{}, 2, "Aseo", nopLogger{})
	uc.timeProvider = &fakeClock{now: testNow}

	return &fixture{uc: uc, reservations: reservations, notifier: notifier}
}

// --- tests ---

func TestExecute_OwnerCancelsPending(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 1, RequesterID: 7, Reason: "ya no la necesito",
	})
	require.NoError(t, err)

	assert.Equal(t, "CANC", resp.Status)
	assert.False(t, resp.AlreadyCanceled)
	assert.Equal(t, domain.StatusCanceled, f.reservations.reservations[1].Status)
	assert.Equal(t, "ya no la necesito", f.reservations.reservations[1].CancelReason)

	// toda cancelación efectiva avisa al dueño, al staff y al grupo de aseo
	require.Len(t, f.notifier.userMessages[7], 1)
	assert.Contains(t, f.notifier.userMessages[7][0], "fue cancelada")
	assert.Contains(t, f.notifier.userMessages[7][0], "ya no la necesito")

	require.Len(t, f.notifier.staffMessages, 1)
	assert.Contains(t, f.notifier.staffMessages[0], "Juan Pérez (jperez)")
	assert.Contains(t, f.notifier.staffMessages[0], "Auditorio")

	require.Len(t, f.notifier.groupMessages["Aseo"], 1)
	assert.Contains(t, f.notifier.groupMessages["Aseo"][0], "Ya no es necesario preparar Auditorio")
}

func TestExecute_OwnerCancelsApprovedOutsideWindow(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 2, RequesterID: 7,
	})
	require.NoError(t, err)
	assert.Equal(t, "CANC", resp.Status)

	// el dueño recibe su confirmación y el grupo de aseo el aviso
	require.Len(t, f.notifier.userMessages[7], 1)
	assert.Contains(t, f.notifier.userMessages[7][0], "fue cancelada")
	require.Len(t, f.notifier.groupMessages["Aseo"], 1)
	assert.Contains(t, f.notifier.groupMessages["Aseo"][0], "Ya no es necesario preparar Auditorio")
}

func TestExecute_OwnerBlockedByWindow(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 3, RequesterID: 7,
	})
	assert.ErrorIs(t, err, ErrCancelWindow)
	assert.Equal(t, domain.StatusApproved, f.reservations.reservations[3].Status)
}

func TestExecute_StaffBypassesWindow(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 3, RequesterID: 5, Reason: "mantención de emergencia",
	})
	require.NoError(t, err)
	assert.Equal(t, "CANC", resp.Status)

	// canceló el staff: aviso al dueño con el motivo
	require.Len(t, f.notifier.userMessages[7], 1)
	assert.Contains(t, f.notifier.userMessages[7][0], "cancelada por administración")
	assert.Contains(t, f.notifier.userMessages[7][0], "mantención de emergencia")

	// el staff y el grupo de aseo también quedan avisados
	require.Len(t, f.notifier.staffMessages, 1)
	require.Len(t, f.notifier.groupMessages["Aseo"], 1)
}

func TestExecute_AlreadyStarted(t *testing.T) {
	f := newFixture(t)

	// ni el dueño ni el staff cancelan reservas que ya comenzaron
	_, err := f.uc.Execute(context.Background(), &Request{ReservationID: 4, RequesterID: 7})
	assert.ErrorIs(t, err, ErrNotCancelable)

	_, err = f.uc.Execute(context.Background(), &Request{ReservationID: 4, RequesterID: 5})
	assert.ErrorIs(t, err, ErrNotCancelable)
}

func TestExecute_RejectedNotCancelable(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{ReservationID: 5, RequesterID: 7})
	assert.ErrorIs(t, err, ErrNotCancelable)
}

func TestExecute_AlreadyCanceledIsIdempotent(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), &Request{ReservationID: 6, RequesterID: 7})
	require.NoError(t, err)

	assert.True(t, resp.AlreadyCanceled)
	assert.Equal(t, "CANC", resp.Status)
	// el no-op no genera avisos
	assert.Empty(t, f.notifier.staffMessages)
	assert.Empty(t, f.notifier.userMessages)
	assert.Empty(t, f.notifier.groupMessages)
}

func TestExecute_StrangerCannotCancel(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{ReservationID: 1, RequesterID: 8})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestExecute_UnknownRequester(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{ReservationID: 1, RequesterID: 99})
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestExecute_ReservationNotFound(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{ReservationID: 99, RequesterID: 7})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestExecute_ReasonTooLong(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), &Request{
		ReservationID: 1,
		RequesterID:   7,
		Reason:        strings.Repeat("a", domain.MaxCancelReasonLength+1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
