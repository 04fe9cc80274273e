package model

import "time"

// ReservationStatus enumerates the lifecycle states of a reservation.
// The set is closed: handlers and the booking package match on these
// constants exhaustively instead of comparing free-form strings.
type ReservationStatus string

const (
    ReservationPending   ReservationStatus = "pending"   // created by a customer, awaiting staff action
    ReservationConfirmed ReservationStatus = "confirmed" // accepted by staff, table usually assigned
    ReservationCancelled ReservationStatus = "cancelled" // rejected or withdrawn before confirmation
    ReservationCompleted ReservationStatus = "completed" // guests seated and finished
)

// ValidReservationStatus reports whether s is one of the four known states.
func ValidReservationStatus(s ReservationStatus) bool {
    switch s {
    case ReservationPending, ReservationConfirmed, ReservationCancelled, ReservationCompleted:
        return true
    }
    return false
}

// Reservation records a customer's request to book a table for a given
// date, time slot and party size.  The customer contact details are a
// denormalized snapshot captured at booking time so later profile edits
// do not rewrite history.  The Version column implements optimistic
// locking: every state transition must present the version it read, and
// stale writers fail instead of silently overwriting each other.
//
// Fields:
//  ID               – primary key identifier.
//  Code             – immutable human-readable booking reference (e.g. CC-1A2B3C).
//  UserID           – customer account that created the booking (nullable for walk-ins).
//  CustomerName     – snapshot of the customer's name.
//  CustomerPhone    – snapshot of the customer's phone number.
//  CustomerEmail    – snapshot of the customer's email address.
//  Date             – requested calendar date (time component zero, UTC).
//  TimeSlot         – requested hourly slot label ("10:00".."22:00").
//  GuestCount       – party size, always positive.
//  PackageID        – reservation package chosen at booking time.
//  Location         – preferred seating area (indoor, outdoor, private).
//  SpecialRequests  – optional free text from the customer.
//  Status           – lifecycle state, see ReservationStatus.
//  AssignedTableID  – table assigned by staff or auto-assignment (nullable).
//  ProofOfPayment   – optional reference to an uploaded payment artifact.
//  TotalPriceCents  – package price plus add-on items, fixed at creation.
//  StaffNote        – optional free-text note from the last staff action.
//  Version          – optimistic locking counter.
//  CreatedAt        – creation timestamp.
//  UpdatedAt        – last update timestamp.
type Reservation struct {
    ID              uint64            // reservations.id
    Code            string            // reservations.code
    UserID          *uint64           // reservations.user_id (nullable)
    CustomerName    string            // reservations.customer_name
    CustomerPhone   string            // reservations.customer_phone
    CustomerEmail   string            // reservations.customer_email
    Date            time.Time         // reservations.reserved_date
    TimeSlot        string            // reservations.reserved_time
    GuestCount      int               // reservations.guest_count
    PackageID       uint64            // reservations.package_id
    Location        LocationType      // reservations.location_preference
    SpecialRequests *string           // reservations.special_requests (nullable)
    Status          ReservationStatus // reservations.status
    AssignedTableID *uint64           // reservations.assigned_table_id (nullable)
    ProofOfPayment  *string           // reservations.proof_of_payment (nullable)
    TotalPriceCents uint32            // reservations.total_price_cents
    StaffNote       *string           // reservations.staff_note (nullable)
    Version         uint32            // reservations.version
    CreatedAt       time.Time         // reservations.created_at
    UpdatedAt       time.Time         // reservations.updated_at
}
