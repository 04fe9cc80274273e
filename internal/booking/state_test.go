package booking

import (
	"testing"
	"time"

	"github.com/cempakacafe/reservation/internal/model"
	"github.com/stretchr/testify/assert"
)

func sampleReservation(status model.ReservationStatus) *model.Reservation {
	return &model.Reservation{
		ID:           42,
		Code:         "CC-1A2B3C",
		CustomerName: "Sari Dewi",
		Date:         time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC),
		TimeSlot:     "19:00",
		GuestCount:   4,
		PackageID:    1,
		Location:     model.LocationIndoor,
		Status:       status,
	}
}

func staffAction(note string) Action {
	return Action{Note: &note, Now: time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)}
}

func TestConfirm_AutoAssignsOnlyEligibleTable(t *testing.T) {
	r := sampleReservation(model.ReservationPending)
	inventory := []model.Table{
		tbl(1, 2, model.LocationIndoor, model.TableAvailable),  // too small
		tbl(2, 6, model.LocationOutdoor, model.TableAvailable), // wrong area
		tbl(3, 6, model.LocationIndoor, model.TableAvailable),  // the one
	}

	assigned, err := Confirm(r, inventory, staffAction("ok"))

	assert.NoError(t, err)
	assert.Equal(t, model.ReservationConfirmed, r.Status)
	if assert.NotNil(t, assigned) {
		assert.Equal(t, uint64(3), assigned.ID)
	}
	if assert.NotNil(t, r.AssignedTableID) {
		assert.Equal(t, uint64(3), *r.AssignedTableID)
	}
}

func TestConfirm_SkipsSlotBookedTables(t *testing.T) {
	// Tables confirmed for the same slot are withheld from the
	// inventory, so assignment lands on the next smallest candidate
	// rather than colliding with the existing booking.
	r := sampleReservation(model.ReservationPending)
	inventory := []model.Table{
		tbl(1, 4, model.LocationIndoor, model.TableAvailable), // taken this slot
		tbl(2, 6, model.LocationIndoor, model.TableAvailable),
	}
	booked := map[uint64]bool{1: true}

	assigned, err := Confirm(r, ExcludeTables(inventory, booked), staffAction("ok"))

	assert.NoError(t, err)
	if assert.NotNil(t, assigned) {
		assert.Equal(t, uint64(2), assigned.ID)
	}
}

func TestConfirm_NoCandidateStillConfirms(t *testing.T) {
	r := sampleReservation(model.ReservationPending)

	assigned, err := Confirm(r, nil, staffAction("no table yet"))

	assert.NoError(t, err)
	assert.Nil(t, assigned)
	assert.Nil(t, r.AssignedTableID)
	assert.Equal(t, model.ReservationConfirmed, r.Status)
}

func TestConfirm_KeepsExistingAssignment(t *testing.T) {
	r := sampleReservation(model.ReservationPending)
	existing := uint64(9)
	r.AssignedTableID = &existing
	inventory := []model.Table{tbl(3, 6, model.LocationIndoor, model.TableAvailable)}

	assigned, err := Confirm(r, inventory, staffAction(""))

	assert.NoError(t, err)
	assert.Nil(t, assigned)
	assert.Equal(t, uint64(9), *r.AssignedTableID)
}

func TestConfirm_FromCancelledFails(t *testing.T) {
	r := sampleReservation(model.ReservationCancelled)

	_, err := Confirm(r, nil, staffAction(""))

	assert.ErrorIs(t, err, ErrInvalidStateTransition)
	assert.Equal(t, model.ReservationCancelled, r.Status)
}

func TestCancel_OnlyFromPending(t *testing.T) {
	r := sampleReservation(model.ReservationPending)
	note := "Dibatalkan oleh staff"

	err := Cancel(r, Action{Note: &note, Now: time.Now()})

	assert.NoError(t, err)
	assert.Equal(t, model.ReservationCancelled, r.Status)
	assert.Equal(t, &note, r.StaffNote)

	for _, from := range []model.ReservationStatus{
		model.ReservationConfirmed, model.ReservationCancelled, model.ReservationCompleted,
	} {
		r := sampleReservation(from)
		err := Cancel(r, staffAction(""))
		assert.ErrorIs(t, err, ErrInvalidStateTransition)
		assert.Equal(t, from, r.Status)
	}
}

func TestComplete_OnlyFromConfirmed(t *testing.T) {
	r := sampleReservation(model.ReservationConfirmed)

	err := Complete(r, staffAction("seated and done"))

	assert.NoError(t, err)
	assert.Equal(t, model.ReservationCompleted, r.Status)

	r = sampleReservation(model.ReservationPending)
	assert.ErrorIs(t, Complete(r, staffAction("")), ErrInvalidStateTransition)
	assert.Equal(t, model.ReservationPending, r.Status)
}

func TestAssignTable_GuardsTerminalStates(t *testing.T) {
	target := tbl(5, 6, model.LocationIndoor, model.TableAvailable)

	for _, from := range []model.ReservationStatus{model.ReservationCancelled, model.ReservationCompleted} {
		r := sampleReservation(from)
		err := AssignTable(r, &target, false, staffAction(""))
		assert.ErrorIs(t, err, ErrInvalidStateTransition)
		assert.Nil(t, r.AssignedTableID)
	}
}

func TestAssignTable_UnsuitableWithoutOverride(t *testing.T) {
	r := sampleReservation(model.ReservationPending)
	small := tbl(5, 2, model.LocationIndoor, model.TableAvailable)

	err := AssignTable(r, &small, false, staffAction(""))
	assert.ErrorIs(t, err, ErrTableUnsuitable)
	assert.Nil(t, r.AssignedTableID)

	// Staff may deliberately override the capacity/location checks.
	err = AssignTable(r, &small, true, staffAction("squeeze them in"))
	assert.NoError(t, err)
	assert.Equal(t, uint64(5), *r.AssignedTableID)
}

func TestAssignTable_OverwritesExistingAssignment(t *testing.T) {
	r := sampleReservation(model.ReservationConfirmed)
	first := tbl(5, 6, model.LocationIndoor, model.TableAvailable)
	second := tbl(6, 4, model.LocationIndoor, model.TableAvailable)

	assert.NoError(t, AssignTable(r, &first, false, staffAction("")))
	assert.NoError(t, AssignTable(r, &second, false, staffAction("")))
	assert.Equal(t, uint64(6), *r.AssignedTableID)
}
