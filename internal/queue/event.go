// Package queue defines message payloads exchanged over the message broker.
package queue

// ReservationConfirmedEvent is published when staff confirm a reservation.
// It carries enough information for downstream consumers to log, notify, or
// trigger analytics without querying the primary database.
type ReservationConfirmedEvent struct {
    ReservationID   uint64  `json:"reservation_id"`
    Code            string  `json:"code"`
    CustomerName    string  `json:"customer_name"`
    CustomerPhone   string  `json:"customer_phone"`
    Date            string  `json:"date"`
    TimeSlot        string  `json:"time_slot"`
    GuestCount      int     `json:"guest_count"`
    PackageName     string  `json:"package_name"`
    TableNumber     *uint32 `json:"table_number,omitempty"`
    Location        string  `json:"location"`
    TotalPriceCents uint32  `json:"total_price_cents"`
    ConfirmedAt     string  `json:"confirmed_at"`
}
