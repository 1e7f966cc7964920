package appointment

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sharpfade/barber-booking/internal/httperr"
	"github.com/sharpfade/barber-booking/internal/models"
)

func TestParseStatus(t *testing.T) {
	for _, raw := range []string{"pending", "confirmed", "completed", "canceled", "no-show"} {
		s, err := ParseStatus(raw)
		require.NoError(t, err, raw)
		assert.Equal(t, Status(raw), s)
	}

	for _, raw := range []string{"", "archived", "Confirmed", "CONFIRMED", "noshow", "cancelled"} {
		_, err := ParseStatus(raw)
		require.Error(t, err, raw)
		assert.True(t, httperr.IsBusiness(err, "invalid_status"), raw)
	}
}

func TestNotifiesOnEntry(t *testing.T) {
	assert.True(t, NotifiesOnEntry(StatusConfirmed))

	assert.False(t, NotifiesOnEntry(StatusPending))
	assert.False(t, NotifiesOnEntry(StatusCompleted))
	assert.False(t, NotifiesOnEntry(StatusCanceled))
	assert.False(t, NotifiesOnEntry(StatusNoShow))
}

func TestCanBeCanceledByClient(t *testing.T) {
	assert.NoError(t, CanBeCanceledByClient(StatusPending))
	assert.NoError(t, CanBeCanceledByClient(StatusConfirmed))

	for _, s := range []Status{StatusCompleted, StatusCanceled, StatusNoShow} {
		err := CanBeCanceledByClient(s)
		require.Error(t, err, s)
		assert.True(t, httperr.IsBusiness(err, "invalid_state"))
	}
}

func TestWithinWorkingHours(t *testing.T) {
	wh := &models.WorkingHours{
		Active:     true,
		StartTime:  "09:00",
		EndTime:    "18:00",
		LunchStart: "12:00",
		LunchEnd:   "13:00",
	}

	day := func(h, m int) time.Time {
		return time.Date(2026, 9, 10, h, m, 0, 0, time.UTC)
	}

	assert.True(t, WithinWorkingHours(wh, day(9, 0), day(9, 30)))
	assert.True(t, WithinWorkingHours(wh, day(17, 30), day(18, 0)))
	assert.True(t, WithinWorkingHours(wh, day(11, 30), day(12, 0)))
	assert.True(t, WithinWorkingHours(wh, day(13, 0), day(13, 30)))

	assert.False(t, WithinWorkingHours(wh, day(8, 30), day(9, 0)), "antes do expediente")
	assert.False(t, WithinWorkingHours(wh, day(17, 45), day(18, 15)), "passa do fim")
	assert.False(t, WithinWorkingHours(wh, day(11, 45), day(12, 15)), "invade o almoço")
	assert.False(t, WithinWorkingHours(wh, day(12, 15), day(12, 45)), "dentro do almoço")

	assert.False(t, WithinWorkingHours(nil, day(10, 0), day(10, 30)))
	assert.False(t, WithinWorkingHours(&models.WorkingHours{Active: false, StartTime: "09:00", EndTime: "18:00"}, day(10, 0), day(10, 30)))
}

func TestOverlaps(t *testing.T) {
	at := func(h, m int) time.Time {
		return time.Date(2026, 9, 10, h, m, 0, 0, time.UTC)
	}

	assert.True(t, Overlaps(at(10, 0), at(10, 30), at(10, 15), at(10, 45)))
	assert.True(t, Overlaps(at(10, 0), at(11, 0), at(10, 15), at(10, 30)))

	// intervalos meio-abertos: encostar não é conflito
	assert.False(t, Overlaps(at(10, 0), at(10, 30), at(10, 30), at(11, 0)))
	assert.False(t, Overlaps(at(10, 30), at(11, 0), at(10, 0), at(10, 30)))
	assert.False(t, Overlaps(at(10, 0), at(10, 30), at(11, 0), at(11, 30)))
}
