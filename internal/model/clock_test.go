package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "09:00", want: "09:00:00"},
		{in: "09:30:15", want: "09:30:15"},
		{in: " 23:59 ", want: "23:59:00"},
		{in: "00:00", want: "00:00:00"},
		{in: "24:00", wantErr: true},
		{in: "9am", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			c, err := ParseClock(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.String())
		})
	}
}

func TestClock_Ordering(t *testing.T) {
	assert.Less(t, int32(MustParseClock("09:00")), int32(MustParseClock("09:00:01")))
	assert.Less(t, int32(MustParseClock("09:59:59")), int32(MustParseClock("10:00")))
}

func TestClock_Micros(t *testing.T) {
	c := MustParseClock("10:15:30")
	assert.Equal(t, c, ClockFromMicros(c.Micros()))
	assert.Equal(t, int64(36930)*1_000_000, c.Micros())
}

func TestClock_JSON(t *testing.T) {
	var payload struct {
		Start Clock `json:"start"`
	}
	require.NoError(t, json.Unmarshal([]byte(`{"start":"08:45"}`), &payload))
	assert.Equal(t, NewClock(8, 45, 0), payload.Start)

	out, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"start":"08:45:00"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"start":845}`), &payload))
}

func TestWeekday(t *testing.T) {
	assert.Equal(t, "Monday", Monday.String())
	assert.Equal(t, "Sunday", Sunday.String())
	assert.False(t, Weekday(7).Valid())
	assert.Equal(t, "Unknown", Weekday(-1).String())
}

func TestConflictError(t *testing.T) {
	err := error(&ConflictError{Kind: FacultyConflict})
	assert.ErrorIs(t, err, ErrFacultyConflict)
	assert.NotErrorIs(t, err, ErrRoomConflict)

	var ce *ConflictError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "faculty", ce.Field())
	assert.Contains(t, ce.Message(), "faculty member")
}
