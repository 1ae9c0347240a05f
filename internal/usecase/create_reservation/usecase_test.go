package create_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lxo898/reservas-inacap/internal/domain"
	spaceRepo "github.com/lxo898/reservas-inacap/internal/infra/storage/space"
	userRepo "github.com/lxo898/reservas-inacap/internal/infra/storage/user"
)

// --- fakes ---

type fakeReservationRepo struct {
	reservations []*domain.Reservation
	nextID       int64
}

func (f *fakeReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	f.nextID++
	created := *res
	created.ID = f.nextID
	created.CreatedAt = time.Now()
	f.reservations = append(f.reservations, &created)
	return &created, nil
}

func (f *fakeReservationRepo) ListActiveOverlapping(_ context.Context, spaceID int64, start, end time.Time, excludeID *int64, onlyApproved bool) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, r := range f.reservations {
		if r.SpaceID != spaceID {
			continue
		}
		if excludeID != nil && r.ID == *excludeID {
			continue
		}
		if onlyApproved {
			if r.Status != domain.StatusApproved {
				continue
			}
		} else if !r.IsActive() {
			continue
		}
		if r.OverlapsRange(start, end) {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeSpaceRepo struct {
	spaces map[int64]*domain.Space
}

func (f *fakeSpaceRepo) GetByID(_ context.Context, id int64) (*domain.Space, error) {
	s, ok := f.spaces[id]
	if !ok {
		return nil, spaceRepo.ErrSpaceNotFound
	}
	return s, nil
}

type fakeResourceRepo struct {
	resources map[int64]*domain.Resource
}

func (f *fakeResourceRepo) ListByIDs(_ context.Context, ids []int64) ([]*domain.Resource, error) {
	var out []*domain.Resource
	seen := make(map[int64]struct{})
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if r, ok := f.resources[id]; ok {
			out = append(out, r)
		}
	}
	return out, nil
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

type fixture struct {
	uc           *UseCase
	reservations *fakeReservationRepo
	notifier     *fakeNotifier
	clock        *fakeClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	grid, err := domain.NewSlotGrid(30, "08:30", "22:00")
	require.NoError(t, err)

	reservations := &fakeReservationRepo{}
	spaces := &fakeSpaceRepo{spaces: map[int64]*domain.Space{
		1: {ID: 1, Name: "Auditorio", Capacity: 100, IsActive: true},
		2: {ID: 2, Name: "Sala 204", Capacity: 0, IsActive: true},
		3: {ID: 3, Name: "Bodega", Capacity: 10, IsActive: false},
	}}
	resources := &fakeResourceRepo{resources: map[int64]*domain.Resource{
		10: {ID: 10, Name: "Proyector"},
		11: {ID: 11, Name: "Cable HDMI"},
	}}
	users := &fakeUserRepo{users: map[int64]*domain.User{
		7: {ID: 7, Username: "jperez", FirstName: "Juan", LastName: "Pérez", IsActive: true},
		8: {ID: 8, Username: "inactivo", IsActive: false},
	}}
	notifier := &fakeNotifier{}
	clock := &fakeClock{now: time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)}

	uc := NewUseCase(reservations, spaces, resources, users, notifier, &fakeTxManager{}, grid, time.UTC, nopLogger{})
	uc.timeProvider = clock

	return &fixture{
		uc:           uc,
		reservations: reservations,
		notifier:     notifier,
		clock:        clock,
	}
}

func validRequest() *Request {
	return &Request{
		UserID:         7,
		SpaceID:        1,
		Date:           time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC),
		StartSlot:      "10:00",
		EndSlot:        "11:30",
		Purpose:        "Charla de titulación",
		AttendeesCount: 40,
	}
}

// --- tests ---

func TestExecute_Success(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "PEND", resp.Status)
	assert.Equal(t, "Pendiente", resp.StatusDisplay)
	assert.Equal(t, "Auditorio", resp.SpaceName)
	assert.Equal(t, time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC), resp.StartAt)
	assert.Equal(t, time.Date(2026, 3, 12, 11, 30, 0, 0, time.UTC), resp.EndAt)

	require.Len(t, f.notifier.staffMessages, 1)
	assert.Contains(t, f.notifier.staffMessages[0], "Juan Pérez (jperez)")
	assert.Contains(t, f.notifier.staffMessages[0], "Auditorio")
}

func TestExecute_WithResources(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.ResourceIDs = []int64{10, 11, 10} // duplicado a propósito
	req.ResourceNotes = "Proyector con entrada HDMI"

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, []int64{10, 11}, resp.ResourceIDs)
	assert.Equal(t, "Proyector con entrada HDMI", resp.ResourceNotes)
}

func TestExecute_UnknownResource(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.ResourceIDs = []int64{10, 99}

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrResourceNotFound)
}

func TestExecute_OverlappingReservation(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// mismo espacio, rango que se cruza
	req := validRequest()
	req.StartSlot = "11:00"
	req.EndSlot = "12:00"

	_, err = f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSpaceOccupied)
}

func TestExecute_BackToBackAllowed(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// termina 11:30, la siguiente parte exactamente a las 11:30
	req := validRequest()
	req.StartSlot = "11:30"
	req.EndSlot = "13:00"

	_, err = f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_CanceledReservationDoesNotBlock(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// la cancelada deja de contar para conflictos
	f.reservations.reservations[0].Status = domain.StatusCanceled
	_ = resp

	_, err = f.uc.Execute(context.Background(), validRequest())
	assert.NoError(t, err)
}

func TestExecute_StartInPast(t *testing.T) {
	f := newFixture(t)

	// el reloj marca las 09:00; un bloque de las 08:30 ya partió
	req := validRequest()
	req.StartSlot = "08:30"
	req.EndSlot = "09:30"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrStartInPast)
}

func TestExecute_CapacityExceeded(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.AttendeesCount = 150

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestExecute_ZeroCapacityMeansUnlimited(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.SpaceID = 2
	req.AttendeesCount = 500

	_, err := f.uc.Execute(context.Background(), req)
	assert.NoError(t, err)
}

func TestExecute_SlotOutsideGrid(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.StartSlot = "10:15"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestExecute_EndNotAfterStart(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.StartSlot = "11:30"
	req.EndSlot = "10:00"

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidSlot)
}

func TestExecute_InactiveUser(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.UserID = 8

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestExecute_UnknownSpace(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.SpaceID = 99

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSpaceNotFound)
}

func TestExecute_InactiveSpace(t *testing.T) {
	f := newFixture(t)

	req := validRequest()
	req.SpaceID = 3

	_, err := f.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrSpaceNotFound)
}

func TestExecute_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		mutate func(*Request)
	}{
		{name: "missing purpose", mutate: func(r *Request) { r.Purpose = "" }},
		{name: "zero attendees", mutate: func(r *Request) { r.AttendeesCount = 0 }},
		{name: "negative user", mutate: func(r *Request) { r.UserID = -1 }},
		{name: "zero space", mutate: func(r *Request) { r.SpaceID = 0 }},
		{name: "zero date", mutate: func(r *Request) { r.Date = time.Time{} }},
		{name: "empty start slot", mutate: func(r *Request) { r.StartSlot = "" }},
		{name: "bad end slot", mutate: func(r *Request) { r.EndSlot = "25:00" }},
		{name: "negative resource id", mutate: func(r *Request) { r.ResourceIDs = []int64{-5} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)
			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
