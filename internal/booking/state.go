package booking

import (
    "time"

    "github.com/cempakacafe/reservation/internal/model"
)

// Action carries the metadata shared by every staff-initiated
// transition: an optional free-text note recorded for audit (for
// example "Dibatalkan oleh staff") and the wall-clock time of the
// action, injected for testability. The note never influences the
// state logic itself.
type Action struct {
    Note *string
    Now  time.Time
}

// Confirm moves a pending reservation to confirmed. When no table has
// been assigned yet it attempts automatic assignment from the supplied
// table inventory using the matcher's first candidate; when none is
// eligible the transition still proceeds with the assignment left
// empty, so staff can seat the party manually later. The auto-assigned
// table is returned (nil when nothing was assigned by this call).
//
// Confirming from any state other than pending fails with
// ErrInvalidStateTransition and leaves the reservation unchanged.
func Confirm(r *model.Reservation, inventory []model.Table, a Action) (*model.Table, error) {
    if r.Status != model.ReservationPending {
        return nil, ErrInvalidStateTransition
    }
    var assigned *model.Table
    if r.AssignedTableID == nil {
        if t, err := FirstEligible(inventory, r.GuestCount, r.Location, nil); err == nil {
            id := t.ID
            r.AssignedTableID = &id
            assigned = t
        }
        // ErrNoCandidateTable is tolerated: the reservation is confirmed
        // without a table and the caller surfaces the gap to staff.
    }
    r.Status = model.ReservationConfirmed
    applyAction(r, a)
    return assigned, nil
}

// Cancel moves a pending reservation to cancelled. Confirmed
// reservations cannot be cancelled through this path; the floor flow
// only offers cancellation while a booking is still pending.
func Cancel(r *model.Reservation, a Action) error {
    if r.Status != model.ReservationPending {
        return ErrInvalidStateTransition
    }
    r.Status = model.ReservationCancelled
    applyAction(r, a)
    return nil
}

// Complete moves a confirmed reservation to completed.
func Complete(r *model.Reservation, a Action) error {
    if r.Status != model.ReservationConfirmed {
        return ErrInvalidStateTransition
    }
    r.Status = model.ReservationCompleted
    applyAction(r, a)
    return nil
}

// AssignTable sets or overwrites the reservation's table. Assignment is
// allowed in any state except cancelled and completed. Unless override
// is set, the table must seat the party and match the location
// preference; staff may override both checks deliberately (for example
// seating a small party at a large outdoor table on a busy night).
func AssignTable(r *model.Reservation, t *model.Table, override bool, a Action) error {
    if r.Status == model.ReservationCancelled || r.Status == model.ReservationCompleted {
        return ErrInvalidStateTransition
    }
    if !override && (t.Capacity < r.GuestCount || t.LocationType != r.Location) {
        return ErrTableUnsuitable
    }
    id := t.ID
    r.AssignedTableID = &id
    applyAction(r, a)
    return nil
}

func applyAction(r *model.Reservation, a Action) {
    if a.Note != nil {
        r.StaffNote = a.Note
    }
    if !a.Now.IsZero() {
        r.UpdatedAt = a.Now.UTC()
    }
}
