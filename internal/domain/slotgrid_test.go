package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lxo898/reservas-inacap/pkg/types"
)

func TestNewSlotGrid(t *testing.T) {
	grid, err := NewSlotGrid(30, "08:30", "10:00")
	require.NoError(t, err)

	assert.Equal(t, []types.TimeString{"08:30", "09:00", "09:30", "10:00"}, grid.Labels())
	assert.Equal(t, 30, grid.IntervalMinutes())
	assert.True(t, grid.Contains("09:30"))
	assert.False(t, grid.Contains("09:15"))
	assert.False(t, grid.Contains("22:00"))
}

func TestNewSlotGrid_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		interval int
		start    string
		end      string
	}{
		{name: "zero interval", interval: 0, start: "08:30", end: "22:00"},
		{name: "negative interval", interval: -15, start: "08:30", end: "22:00"},
		{name: "end before start", interval: 30, start: "22:00", end: "08:30"},
		{name: "end equals start", interval: 30, start: "08:30", end: "08:30"},
		{name: "bad start format", interval: 30, start: "8h30", end: "22:00"},
		{name: "bad end format", interval: 30, start: "08:30", end: "22h"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSlotGrid(tt.interval, tt.start, tt.end)
			assert.ErrorIs(t, err, ErrInvalidSlotGrid)
		})
	}
}

func TestSlotGrid_BuildRange(t *testing.T) {
	grid, err := NewSlotGrid(30, "08:30", "22:00")
	require.NoError(t, err)

	loc := time.FixedZone("CLT", -4*3600)
	date := time.Date(2026, 3, 12, 0, 0, 0, 0, loc)

	start, end, err := grid.BuildRange(date, "10:00", "11:30", loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 12, 10, 0, 0, 0, loc), start)
	assert.Equal(t, time.Date(2026, 3, 12, 11, 30, 0, 0, loc), end)
}

func TestSlotGrid_BuildRange_Errors(t *testing.T) {
	grid, err := NewSlotGrid(30, "08:30", "22:00")
	require.NoError(t, err)

	loc := time.UTC
	date := time.Date(2026, 3, 12, 0, 0, 0, 0, loc)

	_, _, err = grid.BuildRange(date, "10:15", "11:30", loc)
	assert.ErrorIs(t, err, ErrSlotNotInGrid)

	_, _, err = grid.BuildRange(date, "10:00", "23:30", loc)
	assert.ErrorIs(t, err, ErrSlotNotInGrid)

	_, _, err = grid.BuildRange(date, "11:30", "10:00", loc)
	assert.ErrorIs(t, err, ErrSlotOrder)

	_, _, err = grid.BuildRange(date, "10:00", "10:00", loc)
	assert.ErrorIs(t, err, ErrSlotOrder)
}
