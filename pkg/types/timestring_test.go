package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimeStringFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    TimeString
		wantErr bool
	}{
		{name: "valid morning", input: "08:30", want: "08:30"},
		{name: "valid midnight", input: "00:00", want: "00:00"},
		{name: "valid end of day", input: "23:59", want: "23:59"},
		{name: "missing leading zero", input: "8:30", wantErr: true},
		{name: "out of range hour", input: "24:00", wantErr: true},
		{name: "out of range minute", input: "10:60", wantErr: true},
		{name: "empty", input: "", wantErr: true},
		{name: "garbage", input: "abcd", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NewTimeStringFromString(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidTimeString)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimeString_Compare(t *testing.T) {
	assert.True(t, TimeString("08:30").IsBefore("09:00"))
	assert.True(t, TimeString("09:00").IsAfter("08:30"))
	assert.False(t, TimeString("08:30").IsBefore("08:30"))
	assert.False(t, TimeString("08:30").IsAfter("08:30"))
	// con cero a la izquierda el orden lexicográfico coincide con el temporal
	assert.True(t, TimeString("09:45").IsBefore("10:00"))
}

func TestTimeString_AddMinutes(t *testing.T) {
	got, err := TimeString("08:30").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("09:00"), got)

	got, err = TimeString("09:45").AddMinutes(30)
	require.NoError(t, err)
	assert.Equal(t, TimeString("10:15"), got)

	_, err = TimeString("23:45").AddMinutes(30)
	assert.ErrorIs(t, err, ErrInvalidTimeString)

	_, err = TimeString("00:10").AddMinutes(-30)
	assert.ErrorIs(t, err, ErrInvalidTimeString)
}

func TestTimeString_Minutes(t *testing.T) {
	m, err := TimeString("08:30").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 510, m)

	m, err = TimeString("00:00").Minutes()
	require.NoError(t, err)
	assert.Equal(t, 0, m)
}

func TestTimeString_At(t *testing.T) {
	loc := time.FixedZone("CLT", -4*3600)
	date := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)

	got, err := TimeString("10:15").At(date, loc)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 3, 12, 10, 15, 0, 0, loc), got)
}
