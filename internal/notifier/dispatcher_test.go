package notifier

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lxo898/reservas-inacap/internal/domain"
	userRepo "github.com/lxo898/reservas-inacap/internal/infra/storage/user"
)

// --- fakes ---

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

func (f *fakeUserRepo) ListStaff(_ context.Context) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range f.users {
		if u.IsStaff && u.IsActive {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) ListByGroup(_ context.Context, group string) ([]*domain.User, error) {
	var out []*domain.User
	for _, u := range f.users {
		if u.IsActive && u.InGroup(group) {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeNotificationRepo struct {
	batches []struct {
		userIDs []int64
		message string
	}
	err error
}

func (f *fakeNotificationRepo) CreateBatch(_ context.Context, userIDs []int64, message string) error {
	if f.err != nil {
		return f.err
	}
	f.batches = append(f.batches, struct {
		userIDs []int64
		message string
	}{userIDs, message})
	return nil
}

type fakeMailer struct {
	sent []struct {
		to      []string
		subject string
		body    string
	}
	err error
}

func (f *fakeMailer) Send(_ context.Context, to []string, subject, body string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, struct {
		to      []string
		subject string
		body    string
	}{to, subject, body})
	return nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- setup ---

type fixture struct {
	dispatcher    *Dispatcher
	notifications *fakeNotificationRepo
	mailer        *fakeMailer
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	users := &fakeUserRepo{users: map[int64]*domain.User{
		1: {ID: 1, Username: "admin", Email: "admin@inacap.cl",
			IsStaff: true, IsActive: true, ReceiveEmails: true},
		2: {ID: 2, Username: "aseo1", Email: "aseo1@inacapmail.cl",
			IsActive: true, ReceiveEmails: true, Groups: []string{"Aseo"}},
		3: {ID: 3, Username: "jperez", Email: "jperez@gmail.com",
			IsActive: true, ReceiveEmails: true},
		4: {ID: 4, Username: "silencioso", Email: "silencioso@inacap.cl",
			IsActive: true, ReceiveEmails: false},
	}}
	notifications := &fakeNotificationRepo{}
	mailer := &fakeMailer{}

	d := NewDispatcher(users, notifications, mailer, nopLogger{}, []string{"inacap.cl", "inacapmail.cl"}, true)
	return &fixture{dispatcher: d, notifications: notifications, mailer: mailer}
}

// --- tests ---

func TestNotifyUser(t *testing.T) {
	f := newFixture(t)

	err := f.dispatcher.NotifyUser(context.Background(), 1, "Tu reserva fue aprobada")
	require.NoError(t, err)

	require.Len(t, f.notifications.batches, 1)
	assert.Equal(t, []int64{1}, f.notifications.batches[0].userIDs)
	assert.Equal(t, "Tu reserva fue aprobada", f.notifications.batches[0].message)

	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, []string{"admin@inacap.cl"}, f.mailer.sent[0].to)
	assert.Equal(t, "Reservas INACAP: nueva notificación", f.mailer.sent[0].subject)
}

func TestNotifyUser_Unknown(t *testing.T) {
	f := newFixture(t)

	err := f.dispatcher.NotifyUser(context.Background(), 99, "hola")
	assert.ErrorIs(t, err, userRepo.ErrUserNotFound)
	assert.Empty(t, f.notifications.batches)
}

func TestNotifyUser_NonInstitutionalDomainSkipsEmail(t *testing.T) {
	f := newFixture(t)

	err := f.dispatcher.NotifyUser(context.Background(), 3, "aviso")
	require.NoError(t, err)

	// la fila interna se crea igual, el correo se omite
	require.Len(t, f.notifications.batches, 1)
	assert.Empty(t, f.mailer.sent)
}

func TestNotifyUser_OptedOutSkipsEmail(t *testing.T) {
	f := newFixture(t)

	err := f.dispatcher.NotifyUser(context.Background(), 4, "aviso")
	require.NoError(t, err)
	assert.Empty(t, f.mailer.sent)
}

func TestNotifyStaff(t *testing.T) {
	f := newFixture(t)

	err := f.dispatcher.NotifyStaff(context.Background(), "Nueva reserva pendiente")
	require.NoError(t, err)

	require.Len(t, f.notifications.batches, 1)
	assert.Equal(t, []int64{1}, f.notifications.batches[0].userIDs)
}

func TestNotifyGroup(t *testing.T) {
	f := newFixture(t)

	err := f.dispatcher.NotifyGroup(context.Background(), "Aseo", "Preparar Auditorio")
	require.NoError(t, err)

	require.Len(t, f.notifications.batches, 1)
	assert.Equal(t, []int64{2}, f.notifications.batches[0].userIDs)

	// con el correo a grupos habilitado, la casilla institucional recibe el aviso
	require.Len(t, f.mailer.sent, 1)
	assert.Equal(t, []string{"aseo1@inacapmail.cl"}, f.mailer.sent[0].to)
}

func TestNotifyGroup_EmailDisabled(t *testing.T) {
	f := newFixture(t)
	f.dispatcher.emailGroups = false

	err := f.dispatcher.NotifyGroup(context.Background(), "Aseo", "Preparar Auditorio")
	require.NoError(t, err)

	// la fila interna se crea igual, el correo al grupo se omite
	require.Len(t, f.notifications.batches, 1)
	assert.Empty(t, f.mailer.sent)
}

func TestNotifyGroup_UnknownGroupIsNoop(t *testing.T) {
	f := newFixture(t)

	err := f.dispatcher.NotifyGroup(context.Background(), "NoExiste", "mensaje")
	assert.NoError(t, err)
	assert.Empty(t, f.notifications.batches)
	assert.Empty(t, f.mailer.sent)
}

func TestDispatch_MailFailureIsSwallowed(t *testing.T) {
	f := newFixture(t)
	f.mailer.err = errors.New("smtp: connection refused")

	err := f.dispatcher.NotifyUser(context.Background(), 1, "aviso")
	assert.NoError(t, err)
	// la notificación interna quedó registrada pese al fallo del correo
	require.Len(t, f.notifications.batches, 1)
}

func TestDispatch_PersistFailureIsAnError(t *testing.T) {
	f := newFixture(t)
	f.notifications.err = errors.New("db down")

	err := f.dispatcher.NotifyUser(context.Background(), 1, "aviso")
	assert.Error(t, err)
	assert.Empty(t, f.mailer.sent)
}

func TestDispatch_TruncatesLongMessages(t *testing.T) {
	f := newFixture(t)

	long := strings.Repeat("ñ", domain.MaxNotificationLength+50)
	err := f.dispatcher.NotifyUser(context.Background(), 1, long)
	require.NoError(t, err)

	require.Len(t, f.notifications.batches, 1)
	got := []rune(f.notifications.batches[0].message)
	assert.Len(t, got, domain.MaxNotificationLength)
}
