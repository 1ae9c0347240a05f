package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestReservation_OverlapsRange(t *testing.T) {
	base := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)
	res := &Reservation{
		StartAt: base,
		EndAt:   base.Add(90 * time.Minute), // 10:00 - 11:30
	}

	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  bool
	}{
		{
			name:  "identical range",
			start: base,
			end:   base.Add(90 * time.Minute),
			want:  true,
		},
		{
			name:  "contained inside",
			start: base.Add(30 * time.Minute),
			end:   base.Add(60 * time.Minute),
			want:  true,
		},
		{
			name:  "overlaps start",
			start: base.Add(-30 * time.Minute),
			end:   base.Add(30 * time.Minute),
			want:  true,
		},
		{
			name:  "overlaps end",
			start: base.Add(60 * time.Minute),
			end:   base.Add(120 * time.Minute),
			want:  true,
		},
		{
			name:  "back to back before",
			start: base.Add(-60 * time.Minute),
			end:   base,
			want:  false,
		},
		{
			name:  "back to back after",
			start: base.Add(90 * time.Minute),
			end:   base.Add(150 * time.Minute),
			want:  false,
		},
		{
			name:  "fully before",
			start: base.Add(-120 * time.Minute),
			end:   base.Add(-60 * time.Minute),
			want:  false,
		},
		{
			name:  "fully after",
			start: base.Add(180 * time.Minute),
			end:   base.Add(240 * time.Minute),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, res.OverlapsRange(tt.start, tt.end))
		})
	}
}

func TestReservation_IsActive(t *testing.T) {
	assert.True(t, (&Reservation{Status: StatusPending}).IsActive())
	assert.True(t, (&Reservation{Status: StatusApproved}).IsActive())
	assert.False(t, (&Reservation{Status: StatusRejected}).IsActive())
	assert.False(t, (&Reservation{Status: StatusCanceled}).IsActive())
}

func TestReservation_CanCancel(t *testing.T) {
	now := time.Date(2026, 3, 12, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		status  ReservationStatus
		startIn time.Duration
		window  int
		want    bool
	}{
		{name: "pending future", status: StatusPending, startIn: 30 * time.Minute, window: 2, want: true},
		{name: "pending already started", status: StatusPending, startIn: -10 * time.Minute, window: 2, want: false},
		{name: "pending starts now", status: StatusPending, startIn: 0, window: 2, want: false},
		{name: "approved outside window", status: StatusApproved, startIn: 3 * time.Hour, window: 2, want: true},
		{name: "approved exactly at window", status: StatusApproved, startIn: 2 * time.Hour, window: 2, want: true},
		{name: "approved inside window", status: StatusApproved, startIn: 1 * time.Hour, window: 2, want: false},
		{name: "rejected", status: StatusRejected, startIn: 5 * time.Hour, window: 2, want: false},
		{name: "already canceled", status: StatusCanceled, startIn: 5 * time.Hour, window: 2, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := &Reservation{
				Status:  tt.status,
				StartAt: now.Add(tt.startIn),
			}
			assert.Equal(t, tt.want, res.CanCancel(now, tt.window))
		})
	}
}

func TestReservationStatus_Display(t *testing.T) {
	assert.Equal(t, "Pendiente", StatusPending.Display())
	assert.Equal(t, "Aprobada", StatusApproved.Display())
	assert.Equal(t, "Rechazada", StatusRejected.Display())
	assert.Equal(t, "Cancelada", StatusCanceled.Display())
	assert.Equal(t, "XXXX", ReservationStatus("XXXX").Display())
}
