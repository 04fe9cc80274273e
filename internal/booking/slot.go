package booking

import (
    "fmt"
    "time"
)

// The restaurant seats parties on the hour from opening until the last
// sitting. Both bounds are inclusive, giving thirteen bookable slots
// per day ("10:00" through "22:00").
const (
    OpenHour     = 10
    LastSlotHour = 22
)

// SlotsForDate returns the ordered sequence of bookable time labels for
// the given calendar date. The current time is injected rather than
// read from the clock so the calculator stays deterministic and
// testable.
//
// When target falls on the same calendar day as now, only slots whose
// hour is strictly greater than now's hour are offered: a booking for
// the hour already in progress is not available. Any other date gets
// the full sequence. Past dates are not re-validated here; the booking
// flow rejects them before slot computation. An empty slice is a valid
// result (asking for today's slots after the last sitting).
func SlotsForDate(target, now time.Time) []string {
    from := OpenHour
    if sameDay(target, now) && now.Hour()+1 > from {
        from = now.Hour() + 1
    }
    slots := make([]string, 0, LastSlotHour-OpenHour+1)
    for h := from; h <= LastSlotHour; h++ {
        slots = append(slots, fmt.Sprintf("%02d:00", h))
    }
    return slots
}

// PastDate reports whether target falls on a calendar day before now's.
// Callers reject past dates before computing slots; SlotsForDate itself
// only filters within the current day.
func PastDate(target, now time.Time) bool {
    ty, tm, td := target.Date()
    ny, nm, nd := now.Date()
    if ty != ny {
        return ty < ny
    }
    if tm != nm {
        return tm < nm
    }
    return td < nd
}

// ValidSlot reports whether label is one of the bookable slot labels.
func ValidSlot(label string) bool {
    var h, m int
    if _, err := fmt.Sscanf(label, "%02d:%02d", &h, &m); err != nil {
        return false
    }
    return m == 0 && h >= OpenHour && h <= LastSlotHour && fmt.Sprintf("%02d:00", h) == label
}

// sameDay compares the calendar dates of a and b in b's location.
func sameDay(a, b time.Time) bool {
    ay, am, ad := a.Date()
    by, bm, bd := b.Date()
    return ay == by && am == bm && ad == bd
}
