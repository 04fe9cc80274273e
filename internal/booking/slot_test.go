package booking

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestSlotsForDate_FutureDateReturnsFullDay(t *testing.T) {
	now := at(2026, 3, 14, 23, 45)
	target := at(2026, 3, 15, 0, 0)

	slots := SlotsForDate(target, now)

	assert.Len(t, slots, 13)
	assert.Equal(t, "10:00", slots[0])
	assert.Equal(t, "22:00", slots[12])
}

func TestSlotsForDate_SameDayExcludesCurrentHour(t *testing.T) {
	// 14:30: the 14:00 sitting is already underway, so the first
	// offered slot must be 15:00.
	now := at(2026, 3, 14, 14, 30)
	target := at(2026, 3, 14, 0, 0)

	slots := SlotsForDate(target, now)

	assert.Len(t, slots, 8)
	assert.Equal(t, "15:00", slots[0])
	assert.Equal(t, "22:00", slots[len(slots)-1])
	assert.NotContains(t, slots, "14:00")
}

func TestSlotsForDate_SameDayBeforeOpeningReturnsFullDay(t *testing.T) {
	now := at(2026, 3, 14, 8, 5)
	target := at(2026, 3, 14, 0, 0)

	slots := SlotsForDate(target, now)

	assert.Len(t, slots, 13)
	assert.Equal(t, "10:00", slots[0])
}

func TestSlotsForDate_SameDayAfterCloseIsEmpty(t *testing.T) {
	now := at(2026, 3, 14, 22, 30)
	target := at(2026, 3, 14, 0, 0)

	slots := SlotsForDate(target, now)

	assert.Empty(t, slots)
}

func TestPastDate(t *testing.T) {
	now := at(2026, 3, 14, 12, 0)

	assert.True(t, PastDate(at(2026, 3, 13, 0, 0), now))
	assert.True(t, PastDate(at(2025, 12, 31, 0, 0), now))
	assert.False(t, PastDate(at(2026, 3, 14, 0, 0), now))
	assert.False(t, PastDate(at(2026, 3, 15, 0, 0), now))
	assert.False(t, PastDate(at(2027, 1, 1, 0, 0), now))
}

func TestValidSlot(t *testing.T) {
	assert.True(t, ValidSlot("10:00"))
	assert.True(t, ValidSlot("22:00"))
	assert.False(t, ValidSlot("09:00"))
	assert.False(t, ValidSlot("23:00"))
	assert.False(t, ValidSlot("12:30"))
	assert.False(t, ValidSlot("noon"))
	assert.False(t, ValidSlot(""))
}
