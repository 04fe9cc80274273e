package model

import "time"

// TableStatus enumerates the operational states of a physical table.
// The status is set directly by staff and is deliberately independent
// of any single reservation; linking the two is a configurable policy
// applied at confirmation time, not a property of the table itself.
type TableStatus string

const (
    TableAvailable   TableStatus = "available"   // free for seating or assignment
    TableOccupied    TableStatus = "occupied"    // guests currently seated
    TableReserved    TableStatus = "reserved"    // held for an upcoming reservation
    TableMaintenance TableStatus = "maintenance" // out of service
)

// ValidTableStatus reports whether s is one of the four known states.
func ValidTableStatus(s TableStatus) bool {
    switch s {
    case TableAvailable, TableOccupied, TableReserved, TableMaintenance:
        return true
    }
    return false
}

// LocationType enumerates the seating areas of the restaurant.
type LocationType string

const (
    LocationIndoor  LocationType = "indoor"
    LocationOutdoor LocationType = "outdoor"
    LocationPrivate LocationType = "private"
)

// ValidLocationType reports whether l is a known seating area.
func ValidLocationType(l LocationType) bool {
    switch l {
    case LocationIndoor, LocationOutdoor, LocationPrivate:
        return true
    }
    return false
}

// Table represents a physical seating unit with a fixed capacity and
// location.  Tables are seeded and administered by admin tooling and
// mutated by staff status-change actions.
//
// Fields:
//  ID             – primary key identifier.
//  Number         – table number unique within the restaurant.
//  DisplayName    – human-friendly label shown on dashboards.
//  Capacity       – maximum party size, always positive.
//  LocationType   – seating area (indoor, outdoor, private).
//  LocationDetail – optional free text ("near window", "2nd floor").
//  Status         – operational status, see TableStatus.
//  CreatedAt      – creation timestamp.
//  UpdatedAt      – last update timestamp.
type Table struct {
    ID             uint64       // tables.id
    Number         uint32       // tables.number
    DisplayName    string       // tables.display_name
    Capacity       int          // tables.capacity
    LocationType   LocationType // tables.location_type
    LocationDetail *string      // tables.location_detail (nullable)
    Status         TableStatus  // tables.status
    CreatedAt      time.Time    // tables.created_at
    UpdatedAt      time.Time    // tables.updated_at
}
