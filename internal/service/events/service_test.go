package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lxo898/reservas-inacap/internal/domain"
	eventRepo "github.com/lxo898/reservas-inacap/internal/infra/storage/event"
	spaceRepo "github.com/lxo898/reservas-inacap/internal/infra/storage/space"
	userRepo "github.com/lxo898/reservas-inacap/internal/infra/storage/user"
	"github.com/lxo898/reservas-inacap/internal/service/events/models"
)

// --- fakes ---

type fakeEventRepo struct {
	events    map[int64]*domain.Event
	nextID    int64
	nextSvcID int64

	approvals []*domain.EventApproval
}

func (f *fakeEventRepo) Create(_ context.Context, e *domain.Event) (*domain.Event, error) {
	f.nextID++
	cp := *e
	cp.ID = f.nextID
	cp.CreatedAt = time.Now()
	for i := range cp.Blocks {
		cp.Blocks[i].ID = f.nextID*100 + int64(i)
		cp.Blocks[i].EventID = cp.ID
	}
	for i := range cp.Services {
		f.nextSvcID++
		cp.Services[i].ID = f.nextSvcID
		cp.Services[i].EventID = cp.ID
	}
	if f.events == nil {
		f.events = make(map[int64]*domain.Event)
	}
	f.events[cp.ID] = &cp
	return &cp, nil
}

func (f *fakeEventRepo) GetByID(_ context.Context, id int64) (*domain.Event, error) {
	e, ok := f.events[id]
	if !ok {
		return nil, eventRepo.ErrEventNotFound
	}
	cp := *e
	return &cp, nil
}

func (f *fakeEventRepo) ListByStatus(_ context.Context, status *domain.EventStatus) ([]*domain.Event, error) {
	var out []*domain.Event
	for _, e := range f.events {
		if status == nil || e.Status == *status {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) ListActiveBlocksOverlapping(_ context.Context, spaceID int64, start, end time.Time, excludeEventID *int64) ([]domain.EventSpace, error) {
	var out []domain.EventSpace
	for _, e := range f.events {
		if !e.IsActive() {
			continue
		}
		if excludeEventID != nil && e.ID == *excludeEventID {
			continue
		}
		for _, b := range e.Blocks {
			if b.SpaceID != spaceID {
				continue
			}
			bs, be := b.BlockedRange()
			if bs.Before(end) && be.After(start) {
				out = append(out, b)
			}
		}
	}
	return out, nil
}

func (f *fakeEventRepo) UpdateStatus(_ context.Context, id int64, status domain.EventStatus) error {
	e, ok := f.events[id]
	if !ok {
		return eventRepo.ErrEventNotFound
	}
	e.Status = status
	return nil
}

func (f *fakeEventRepo) AppendApproval(_ context.Context, a *domain.EventApproval) (*domain.EventApproval, error) {
	cp := *a
	cp.ID = int64(len(f.approvals) + 1)
	f.approvals = append(f.approvals, &cp)
	return &cp, nil
}

func (f *fakeEventRepo) ListApprovals(_ context.Context, eventID int64) ([]*domain.EventApproval, error) {
	var out []*domain.EventApproval
	for _, a := range f.approvals {
		if a.EventID == eventID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeEventRepo) UpdateServiceRequestStatus(_ context.Context, id int64, status domain.ServiceStatus, assignedTo *int64) error {
	for _, e := range f.events {
		for i := range e.Services {
			if e.Services[i].ID == id {
				e.Services[i].Status = status
				if assignedTo != nil {
					e.Services[i].AssignedTo = assignedTo
				}
				return nil
			}
		}
	}
	return eventRepo.ErrServiceRequestNotFound
}

type fakeReservationRepo struct {
	reservations []*domain.Reservation
}

func (f *fakeReservationRepo) ListActiveOverlapping(_ context.Context, spaceID int64, start, end time.Time, excludeID *int64, onlyApproved bool) ([]*domain.Reservation, error) {
	var out []*domain.Reservation
	for _, r := range f.reservations {
		if r.SpaceID != spaceID {
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

func (f *fakeNotifier) NotifyGroup(_ context.Context, _ string, _ string) error {
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

var testNow = time.Date(2026, 3, 12, 9, 0, 0, 0, time.UTC)

type fixture struct {
	svc          *Service
	events       *fakeEventRepo
	reservations *fakeReservationRepo
	notifier     *fakeNotifier
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	events := &fakeEventRepo{}
	reservations := &fakeReservationRepo{}
	spaces := &fakeSpaceRepo{spaces: map[int64]*domain.Space{
		1: {ID: 1, Name: "Auditorio", IsActive: true},
		2: {ID: 2, Name: "Gimnasio", IsActive: true},
		3: {ID: 3, Name: "Bodega", IsActive: false},
	}}
	users := &fakeUserRepo{users: map[int64]*domain.User{
		5: {ID: 5, Username: "admin", IsStaff: true, IsActive: true},
		6: {ID: 6, Username: "docente", IsActive: true},
	}}
	notifier := &fakeNotifier{}

	svc := NewService(events, reservations, spaces, users, notifier, &fakeTxManager{}, nopLogger{})
	svc.timeProvider = &fakeClock{now: testNow}

	return &fixture{svc: svc, events: events, reservations: reservations, notifier: notifier}
}

func validCreateRequest() *models.CreateEventRequest {
	return &models.CreateEventRequest{
		OrganizerID:        6,
		Title:              "Feria de carreras",
		Type:               "DIF",
		ExpectedAttendance: 200,
		Blocks: []models.BlockRequest{
			{
				SpaceID:         1,
				StartAt:         testNow.Add(48 * time.Hour),
				EndAt:           testNow.Add(52 * time.Hour),
				BufferBeforeMin: 60,
				BufferAfterMin:  30,
			},
		},
		Services: []models.ServiceRequestInput{
			{Area: "ASEO", Detail: "Limpieza posterior"},
		},
	}
}

// --- tests ---

func TestCreate_Success(t *testing.T) {
	f := newFixture(t)

	resp, err := f.svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, "PEND", resp.Status)
	assert.Equal(t, "INT", resp.Visibility) // visibilidad por defecto
	require.Len(t, resp.Blocks, 1)
	assert.Equal(t, "Auditorio", resp.Blocks[0].SpaceName)
	require.Len(t, resp.Services, 1)
	assert.Equal(t, "PEND", resp.Services[0].Status)

	require.Len(t, f.notifier.staffMessages, 1)
	assert.Contains(t, f.notifier.staffMessages[0], "Feria de carreras")
}

func TestCreate_BufferWidensConflictWindow(t *testing.T) {
	f := newFixture(t)

	// reserva que termina justo cuando arranca el buffer de montaje
	blockStart := testNow.Add(48 * time.Hour)
	f.reservations.reservations = []*domain.Reservation{{
		ID: 1, SpaceID: 1, Status: domain.StatusApproved,
		StartAt: blockStart.Add(-90 * time.Minute),
		EndAt:   blockStart.Add(-30 * time.Minute), // dentro del buffer de 60 min
	}}

	_, err := f.svc.Create(context.Background(), validCreateRequest())
	assert.ErrorIs(t, err, ErrSpaceOccupied)
}

func TestCreate_OutsideBufferAllowed(t *testing.T) {
	f := newFixture(t)

	blockStart := testNow.Add(48 * time.Hour)
	f.reservations.reservations = []*domain.Reservation{{
		ID: 1, SpaceID: 1, Status: domain.StatusApproved,
		StartAt: blockStart.Add(-3 * time.Hour),
		EndAt:   blockStart.Add(-time.Hour), // termina justo al inicio del buffer
	}}

	_, err := f.svc.Create(context.Background(), validCreateRequest())
	assert.NoError(t, err)
}

func TestCreate_ConflictsWithOtherEventBlocks(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	// segundo evento sobre el mismo espacio y horario
	_, err = f.svc.Create(context.Background(), validCreateRequest())
	assert.ErrorIs(t, err, ErrSpaceOccupied)
}

func TestCreate_InactiveSpace(t *testing.T) {
	f := newFixture(t)

	req := validCreateRequest()
	req.Blocks[0].SpaceID = 3

	_, err := f.svc.Create(context.Background(), req)
	assert.ErrorIs(t, err, ErrSpaceNotFound)
}

func TestCreate_Validation(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		mutate func(*models.CreateEventRequest)
	}{
		{name: "empty title", mutate: func(r *models.CreateEventRequest) { r.Title = " " }},
		{name: "unknown type", mutate: func(r *models.CreateEventRequest) { r.Type = "XXX" }},
		{name: "no blocks", mutate: func(r *models.CreateEventRequest) { r.Blocks = nil }},
		{name: "unknown visibility", mutate: func(r *models.CreateEventRequest) { r.Visibility = "SECRETO" }},
		{name: "block in the past", mutate: func(r *models.CreateEventRequest) {
			r.Blocks[0].StartAt = testNow.Add(-time.Hour)
		}},
		{name: "end before start", mutate: func(r *models.CreateEventRequest) {
			r.Blocks[0].EndAt = r.Blocks[0].StartAt.Add(-time.Hour)
		}},
		{name: "negative buffer", mutate: func(r *models.CreateEventRequest) {
			r.Blocks[0].BufferBeforeMin = -10
		}},
		{name: "unknown service area", mutate: func(r *models.CreateEventRequest) {
			r.Services[0].Area = "JARDINERIA"
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validCreateRequest()
			tt.mutate(req)
			_, err := f.svc.Create(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestDecide_Approve(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	resp, err := f.svc.Decide(context.Background(), &models.DecideEventRequest{
		EventID:    created.ID,
		ApproverID: 5,
		Decision:   "APPR",
	})
	require.NoError(t, err)

	assert.Equal(t, "APPR", resp.Status)
	require.Len(t, f.events.approvals, 1)
	assert.Equal(t, domain.DecisionApprove, f.events.approvals[0].Decision)

	require.Len(t, f.notifier.userMessages[6], 1)
	assert.Contains(t, f.notifier.userMessages[6][0], "aprobado")
}

func TestDecide_RejectCancelsEvent(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	resp, err := f.svc.Decide(context.Background(), &models.DecideEventRequest{
		EventID:    created.ID,
		ApproverID: 5,
		Decision:   "REJ",
		Notes:      "fecha no disponible",
	})
	require.NoError(t, err)

	assert.Equal(t, "CANC", resp.Status)
	require.Len(t, f.notifier.userMessages[6], 1)
	assert.Contains(t, f.notifier.userMessages[6][0], "rechazado")
}

func TestDecide_RejectRequiresNotes(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	_, err = f.svc.Decide(context.Background(), &models.DecideEventRequest{
		EventID: created.ID, ApproverID: 5, Decision: "REJ",
	})
	assert.ErrorIs(t, err, ErrNotesRequired)
}

func TestDecide_OnlyPending(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	_, err = f.svc.Decide(context.Background(), &models.DecideEventRequest{
		EventID: created.ID, ApproverID: 5, Decision: "APPR",
	})
	require.NoError(t, err)

	_, err = f.svc.Decide(context.Background(), &models.DecideEventRequest{
		EventID: created.ID, ApproverID: 5, Decision: "APPR",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestDecide_NonStaff(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	_, err = f.svc.Decide(context.Background(), &models.DecideEventRequest{
		EventID: created.ID, ApproverID: 6, Decision: "APPR",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestDecide_ApprovalHistoryIsAppendOnly(t *testing.T) {
	f := newFixture(t)

	first, err := f.svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	second := validCreateRequest()
	second.Blocks[0].SpaceID = 2
	other, err := f.svc.Create(context.Background(), second)
	require.NoError(t, err)

	_, err = f.svc.Decide(context.Background(), &models.DecideEventRequest{
		EventID: first.ID, ApproverID: 5, Decision: "REJ", Notes: "sin presupuesto",
	})
	require.NoError(t, err)
	_, err = f.svc.Decide(context.Background(), &models.DecideEventRequest{
		EventID: other.ID, ApproverID: 5, Decision: "APPR",
	})
	require.NoError(t, err)

	history, err := f.svc.GetApprovals(context.Background(), first.ID)
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "REJ", history[0].Decision)
	assert.Equal(t, "sin presupuesto", history[0].Notes)
}

func TestPublish(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	// publicar una pendiente no corresponde
	_, err = f.svc.Publish(context.Background(), created.ID, 5)
	assert.ErrorIs(t, err, ErrInvalidTransition)

	_, err = f.svc.Decide(context.Background(), &models.DecideEventRequest{
		EventID: created.ID, ApproverID: 5, Decision: "APPR",
	})
	require.NoError(t, err)

	resp, err := f.svc.Publish(context.Background(), created.ID, 5)
	require.NoError(t, err)
	assert.Equal(t, "PUB", resp.Status)

	// solo el staff publica
	_, err = f.svc.Publish(context.Background(), created.ID, 6)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateServiceRequest(t *testing.T) {
	f := newFixture(t)

	created, err := f.svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	require.Len(t, created.Services, 1)

	requestID := created.Services[0].ID
	assignee := int64(5)

	err = f.svc.UpdateServiceRequest(context.Background(), created.ID, requestID, "DO", &assignee, 5)
	require.NoError(t, err)

	got, err := f.svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, "DO", got.Services[0].Status)
	require.NotNil(t, got.Services[0].AssignedTo)
	assert.Equal(t, assignee, *got.Services[0].AssignedTo)

	// estado desconocido
	err = f.svc.UpdateServiceRequest(context.Background(), created.ID, requestID, "LISTO", nil, 5)
	assert.ErrorIs(t, err, ErrInvalidInput)

	// no staff
	err = f.svc.UpdateServiceRequest(context.Background(), created.ID, requestID, "DONE", nil, 6)
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestUpdateServiceRequest_WrongEvent(t *testing.T) {
	f := newFixture(t)

	first, err := f.svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	second := validCreateRequest()
	second.Blocks[0].SpaceID = 2
	other, err := f.svc.Create(context.Background(), second)
	require.NoError(t, err)

	// la orden pertenece al primer evento: por el segundo no se toca
	err = f.svc.UpdateServiceRequest(context.Background(), other.ID, first.Services[0].ID, "DONE", nil, 5)
	assert.ErrorIs(t, err, ErrEventNotFound)

	got, err := f.svc.GetByID(context.Background(), first.ID)
	require.NoError(t, err)
	assert.Equal(t, "PEND", got.Services[0].Status)

	// evento inexistente
	err = f.svc.UpdateServiceRequest(context.Background(), 99, first.Services[0].ID, "DONE", nil, 5)
	assert.ErrorIs(t, err, ErrEventNotFound)
}
