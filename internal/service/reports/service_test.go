package reports

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lxo898/reservas-inacap/internal/domain"
	userRepo "github.com/lxo898/reservas-inacap/internal/infra/storage/user"
)

// --- fakes ---

type fakeReservationRepo struct {
	reservations []*domain.Reservation
}

func (f *fakeReservationRepo) ListAllByStart(_ context.Context) ([]*domain.Reservation, error) {
	return f.reservations, nil
}

type fakeResourceRepo struct {
	names map[int64][]string
}

func (f *fakeResourceRepo) NamesByReservation(_ context.Context) (map[int64][]string, error) {
	return f.names, nil
}

type fakeApprovalRepo struct {
	notes map[int64]string
}

func (f *fakeApprovalRepo) NotesByReservation(_ context.Context) (map[int64]string, error) {
	return f.notes, nil
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

type fakeClock struct {
	now time.Time
}

func (f *fakeClock) Now() time.Time { return f.now }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

// --- setup ---

func newService(t *testing.T) *Service {
	t.Helper()

	start := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	reservations := &fakeReservationRepo{reservations: []*domain.Reservation{
		{
			ID: 1, UserID: 7, SpaceID: 1,
			StartAt: start, EndAt: start.Add(90 * time.Minute),
			Status: domain.StatusApproved, Purpose: "Charla de titulación",
			AttendeesCount: 40, ResourceNotes: "Proyector con HDMI",
			SpaceName: "Auditorio", UserName: "jperez", UserFullName: "Juan Pérez",
		},
		{
			ID: 2, UserID: 9, SpaceID: 2,
			StartAt: start.Add(24 * time.Hour), EndAt: start.Add(25 * time.Hour),
			Status: domain.StatusPending, Purpose: `Ensayo "general" de gala`,
			AttendeesCount: 12,
			SpaceName:      "Sala 204", UserName: "mlopez", UserFullName: "María López",
		},
	}}
	resources := &fakeResourceRepo{names: map[int64][]string{
		1: {"Proyector", "Cable HDMI"},
	}}
	approvals := &fakeApprovalRepo{notes: map[int64]string{
		1: "Aprobada sin observaciones",
	}}
	users := &fakeUserRepo{users: map[int64]*domain.User{
		5:  {ID: 5, Username: "admin", FirstName: "Ana", LastName: "Soto", IsStaff: true, IsActive: true},
		6:  {ID: 6, Username: "coord", IsActive: true, Groups: []string{domain.GroupCoordinator}},
		7:  {ID: 7, Username: "jperez", IsActive: true},
		10: {ID: 10, Username: "inactivo", IsStaff: true, IsActive: false},
	}}

	svc := NewService(reservations, resources, approvals, users, time.UTC, nopLogger{})
	svc.timeProvider = &fakeClock{now: time.Date(2026, 3, 13, 9, 30, 0, 0, time.UTC)}
	return svc
}

// --- tests ---

func TestExportReservationsCSV(t *testing.T) {
	svc := newService(t)

	csv, err := svc.ExportReservationsCSV(context.Background(), 5, "")
	require.NoError(t, err)

	// BOM UTF-8 al inicio para Excel
	assert.True(t, strings.HasPrefix(csv, "\uFEFF"))

	lines := strings.Split(strings.TrimPrefix(csv, "\uFEFF"), "\r\n")
	// 2 metadatos + fila en blanco + encabezado + 2 reservas + cierre vacío
	require.Len(t, lines, 7)

	assert.Equal(t, `"Reporte generado por";"Ana Soto (admin)"`, lines[0])
	assert.Equal(t, `"Fecha de generación";"2026-03-13 09:30"`, lines[1])
	assert.Equal(t, "", lines[2])
	assert.True(t, strings.HasPrefix(lines[3], `"ID";"Usuario";"Espacio"`))

	// todos los campos van entre comillas
	assert.Contains(t, lines[4], `"Juan Pérez (jperez)"`)
	assert.Contains(t, lines[4], `"Auditorio"`)
	assert.Contains(t, lines[4], `"2026-03-12 10:00"`)
	assert.Contains(t, lines[4], `"Aprobada"`)
	assert.Contains(t, lines[4], `"Proyector, Cable HDMI"`)
	assert.Contains(t, lines[4], `"Aprobada sin observaciones"`)

	// las comillas internas se duplican
	assert.Contains(t, lines[5], `"Ensayo ""general"" de gala"`)
	// sin recursos ni notas: celdas vacías citadas
	assert.Contains(t, lines[5], `"";""`)
}

func TestExportReservationsCSV_Separators(t *testing.T) {
	svc := newService(t)

	tests := []struct {
		sep  string
		want string
	}{
		{sep: "semicolon", want: `"ID";"Usuario"`},
		{sep: "comma", want: `"ID","Usuario"`},
		{sep: "tab", want: "\"ID\"\t\"Usuario\""},
	}

	for _, tt := range tests {
		t.Run(tt.sep, func(t *testing.T) {
			csv, err := svc.ExportReservationsCSV(context.Background(), 5, tt.sep)
			require.NoError(t, err)
			assert.Contains(t, csv, tt.want)
		})
	}
}

func TestExportReservationsCSV_InvalidSeparator(t *testing.T) {
	svc := newService(t)

	_, err := svc.ExportReservationsCSV(context.Background(), 5, "pipe")
	assert.ErrorIs(t, err, ErrInvalidSeparator)
}

func TestExportReservationsCSV_Access(t *testing.T) {
	svc := newService(t)

	// coordinador puede exportar
	_, err := svc.ExportReservationsCSV(context.Background(), 6, "")
	assert.NoError(t, err)

	// usuario común no
	_, err = svc.ExportReservationsCSV(context.Background(), 7, "")
	assert.ErrorIs(t, err, ErrAccessDenied)

	// desconocido no
	_, err = svc.ExportReservationsCSV(context.Background(), 99, "")
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestFileName(t *testing.T) {
	svc := newService(t)
	assert.Equal(t, "reservas_20260313_093000.csv", svc.FileName())
}
