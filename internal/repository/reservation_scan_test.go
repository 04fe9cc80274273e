package repository

import (
	"database/sql"
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/cempakacafe/reservation/internal/model"
)

// stubRow feeds a fixed column tuple to scanReservation, standing in
// for *sql.Row so the scan path can be exercised without a database.
type stubRow struct {
	vals []interface{}
}

func (s stubRow) Scan(dest ...interface{}) error {
	if len(dest) != len(s.vals) {
		return fmt.Errorf("scan: want %d destinations, got %d", len(s.vals), len(dest))
	}
	for i, v := range s.vals {
		reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(v))
	}
	return nil
}

func reservationRow(userID, assignedTable sql.NullInt64, special, proof, note sql.NullString) stubRow {
	created := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	return stubRow{vals: []interface{}{
		uint64(42),                                  // id
		"CC-1A2B3C",                                 // code
		userID,                                      // user_id
		"Sari Dewi",                                 // customer_name
		"+62-811-000-111",                           // customer_phone
		"sari@example.com",                          // customer_email
		time.Date(2026, 4, 2, 0, 0, 0, 0, time.UTC), // reserved_date
		"19:00",          // reserved_time
		4,                // guest_count
		uint64(7),        // package_id
		"indoor",         // location_preference
		special,          // special_requests
		"confirmed",      // status
		assignedTable,    // assigned_table_id
		proof,            // proof_of_payment
		uint32(250000),   // total_price_cents
		note,             // staff_note
		uint32(3),        // version
		created,          // created_at
		created.Add(time.Hour), // updated_at
	}}
}

func TestScanReservation_AllColumnsPopulated(t *testing.T) {
	row := reservationRow(
		sql.NullInt64{Int64: 9, Valid: true},
		sql.NullInt64{Int64: 5, Valid: true},
		sql.NullString{String: "window seat please", Valid: true},
		sql.NullString{String: "transfer-ref-881", Valid: true},
		sql.NullString{String: "regular guest", Valid: true},
	)

	var res model.Reservation
	assert.NoError(t, scanReservation(row, &res))

	assert.Equal(t, uint64(42), res.ID)
	assert.Equal(t, "CC-1A2B3C", res.Code)
	assert.Equal(t, "Sari Dewi", res.CustomerName)
	assert.Equal(t, "19:00", res.TimeSlot)
	assert.Equal(t, 4, res.GuestCount)
	assert.Equal(t, uint64(7), res.PackageID)
	assert.Equal(t, model.LocationIndoor, res.Location)
	assert.Equal(t, model.ReservationConfirmed, res.Status)
	assert.Equal(t, uint32(250000), res.TotalPriceCents)
	assert.Equal(t, uint32(3), res.Version)

	if assert.NotNil(t, res.UserID) {
		assert.Equal(t, uint64(9), *res.UserID)
	}
	if assert.NotNil(t, res.AssignedTableID) {
		assert.Equal(t, uint64(5), *res.AssignedTableID)
	}
	if assert.NotNil(t, res.SpecialRequests) {
		assert.Equal(t, "window seat please", *res.SpecialRequests)
	}
	if assert.NotNil(t, res.ProofOfPayment) {
		assert.Equal(t, "transfer-ref-881", *res.ProofOfPayment)
	}
	if assert.NotNil(t, res.StaffNote) {
		assert.Equal(t, "regular guest", *res.StaffNote)
	}
}

func TestScanReservation_NullColumnsStayNil(t *testing.T) {
	row := reservationRow(sql.NullInt64{}, sql.NullInt64{}, sql.NullString{}, sql.NullString{}, sql.NullString{})

	var res model.Reservation
	assert.NoError(t, scanReservation(row, &res))

	assert.Nil(t, res.UserID)
	assert.Nil(t, res.AssignedTableID)
	assert.Nil(t, res.SpecialRequests)
	assert.Nil(t, res.ProofOfPayment)
	assert.Nil(t, res.StaffNote)
	assert.Equal(t, model.ReservationConfirmed, res.Status)
}
