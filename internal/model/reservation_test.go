package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustRange(t *testing.T, in, out string) DateRange {
	t.Helper()
	r, err := ParseDateRange(in, out)
	require.NoError(t, err)
	return r
}

func TestParseDateRange(t *testing.T) {
	tests := []struct {
		name    string
		in, out string
		wantErr bool
	}{
		{"valid", "2024-06-01", "2024-06-05", false},
		{"single night", "2024-06-01", "2024-06-02", false},
		{"zero length", "2024-06-01", "2024-06-01", true},
		{"inverted", "2024-06-05", "2024-06-01", true},
		{"bad format in", "06/01/2024", "2024-06-05", true},
		{"bad format out", "2024-06-01", "tomorrow", true},
		{"empty", "", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseDateRange(tt.in, tt.out)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestOverlaps(t *testing.T) {
	base := mustRange(t, "2024-06-01", "2024-06-05")
	tests := []struct {
		name    string
		in, out string
		want    bool
	}{
		{"identical", "2024-06-01", "2024-06-05", true},
		{"contained", "2024-06-02", "2024-06-04", true},
		{"containing", "2024-05-30", "2024-06-10", true},
		{"overlap tail", "2024-06-04", "2024-06-07", true},
		{"overlap head", "2024-05-29", "2024-06-02", true},
		{"touching after", "2024-06-05", "2024-06-07", false},
		{"touching before", "2024-05-28", "2024-06-01", false},
		{"disjoint after", "2024-06-10", "2024-06-12", false},
		{"disjoint before", "2024-05-01", "2024-05-05", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			other := mustRange(t, tt.in, tt.out)
			assert.Equal(t, tt.want, base.Overlaps(other))
			// overlap is symmetric
			assert.Equal(t, tt.want, other.Overlaps(base))
		})
	}
}

// Checkout day equals check-in day of the next guest: the ranges are
// half-open, so back-to-back stays never conflict.
func TestBackToBackStays(t *testing.T) {
	first := mustRange(t, "2024-06-01", "2024-06-05")
	second := mustRange(t, "2024-06-05", "2024-06-07")
	assert.False(t, first.Overlaps(second))
	assert.False(t, second.Overlaps(first))

	// one day earlier and they do collide
	early := mustRange(t, "2024-06-04", "2024-06-07")
	assert.True(t, first.Overlaps(early))
}

func TestParseReservationStatus(t *testing.T) {
	for _, s := range []string{"PENDING", "CONFIRMED", "CANCELLED"} {
		got, err := ParseReservationStatus(s)
		require.NoError(t, err)
		assert.Equal(t, ReservationStatus(s), got)
	}
	for _, s := range []string{"", "pending", "DONE", "Cancelled", "ARCHIVED"} {
		_, err := ParseReservationStatus(s)
		assert.ErrorIs(t, err, ErrInvalidStatus, "input %q", s)
	}
}

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		from, to ReservationStatus
		want     bool
	}{
		{StatusPending, StatusConfirmed, true},
		{StatusPending, StatusCancelled, true},
		{StatusPending, StatusPending, false},
		{StatusConfirmed, StatusCancelled, true},
		{StatusConfirmed, StatusConfirmed, false},
		{StatusConfirmed, StatusPending, false},
		{StatusCancelled, StatusPending, false},
		{StatusCancelled, StatusConfirmed, false},
		{StatusCancelled, StatusCancelled, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to), "%s -> %s", tt.from, tt.to)
	}
}

func TestActive(t *testing.T) {
	assert.True(t, StatusPending.Active())
	assert.True(t, StatusConfirmed.Active())
	assert.False(t, StatusCancelled.Active())
}

func TestDateRangeStrings(t *testing.T) {
	r := mustRange(t, "2024-06-01", "2024-06-05")
	assert.Equal(t, "2024-06-01", r.InStr())
	assert.Equal(t, "2024-06-05", r.OutStr())
}
