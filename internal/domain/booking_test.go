package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingStatus_Transitions(t *testing.T) {
	assert.True(t, StatusPending.CanTransitionTo(StatusApproved))
	assert.True(t, StatusPending.CanTransitionTo(StatusDenied))
	assert.False(t, StatusPending.CanTransitionTo(StatusPending))

	for _, terminal := range []BookingStatus{StatusApproved, StatusDenied} {
		for _, target := range []BookingStatus{StatusPending, StatusApproved, StatusDenied} {
			assert.False(t, terminal.CanTransitionTo(target), "%s -> %s", terminal, target)
		}
	}
}

func TestParseBookingStatus(t *testing.T) {
	for _, s := range []string{"Pending", "Approved", "Denied"} {
		status, err := ParseBookingStatus(s)
		require.NoError(t, err)
		assert.Equal(t, s, status.String())
	}

	for _, s := range []string{"approved", "DENIED", "", "cancelled"} {
		_, err := ParseBookingStatus(s)
		assert.True(t, errors.Is(err, ErrRange), "status %q must be rejected", s)
	}
}

func TestParseDecision(t *testing.T) {
	status, err := ParseDecision("Approved")
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, status)

	status, err = ParseDecision("Denied")
	require.NoError(t, err)
	assert.Equal(t, StatusDenied, status)

	_, err = ParseDecision("Pending")
	assert.ErrorIs(t, err, ErrRange)

	_, err = ParseDecision("approved")
	assert.ErrorIs(t, err, ErrRange)
}

func TestStatusConflictError(t *testing.T) {
	err := error(&StatusConflictError{BookingID: 7, Current: StatusApproved})

	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "already Approved")

	var conflict *StatusConflictError
	require.True(t, errors.As(err, &conflict))
	assert.Equal(t, StatusApproved, conflict.Current)
}

func TestCalendarDays(t *testing.T) {
	date := func(y int, m time.Month, d, h int) time.Time {
		return time.Date(y, m, d, h, 0, 0, 0, time.UTC)
	}

	tests := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		{"three nights", date(2024, 1, 1, 0), date(2024, 1, 4, 0), 3},
		{"time of day ignored", date(2024, 1, 1, 23), date(2024, 1, 2, 1), 1},
		{"same day", date(2024, 1, 1, 8), date(2024, 1, 1, 20), 0},
		{"reversed", date(2024, 1, 4, 0), date(2024, 1, 1, 0), -3},
		{"leap year february", date(2024, 2, 28, 0), date(2024, 3, 1, 0), 2},
		{"four centuries", date(1900, 1, 1, 0), date(2300, 1, 1, 0), 146097},
		{"four centuries reversed", date(2300, 1, 1, 12), date(1900, 1, 1, 0), -146097},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CalendarDays(tt.start, tt.end))
		})
	}
}

func TestCalendarDays_DSTIndependent(t *testing.T) {
	loc, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skip("tzdata not available")
	}
	// 2024-03-31 has 23 hours in Berlin
	start := time.Date(2024, 3, 30, 0, 0, 0, 0, loc)
	end := time.Date(2024, 4, 1, 0, 0, 0, 0, loc)
	assert.Equal(t, 2, CalendarDays(start, end))
}

func TestUserUpdate_IsEmpty(t *testing.T) {
	var u UserUpdate
	assert.True(t, u.IsEmpty())

	name := "Ann"
	u.FirstName = &name
	assert.False(t, u.IsEmpty())
}
