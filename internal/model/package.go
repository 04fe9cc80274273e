package model

import "time"

// Package is a priced bundle of inclusions (menu items, duration,
// facilities) selectable at reservation time.  The booking flow reads
// packages but never mutates them; administration happens through the
// admin endpoints.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – display name of the package.
//  Description – marketing description of what the package includes.
//  PriceCents  – base price of the package in cents.
//  MaxGuests   – largest party the package is designed for.
//  Inclusions  – free-text summary of bundled items and facilities.
//  IsActive    – inactive packages are hidden from the booking flow.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type Package struct {
    ID          uint64    // packages.id
    Name        string    // packages.name
    Description string    // packages.description
    PriceCents  uint32    // packages.price_cents
    MaxGuests   int       // packages.max_guests
    Inclusions  string    // packages.inclusions
    IsActive    bool      // packages.is_active
    CreatedAt   time.Time // packages.created_at
    UpdatedAt   time.Time // packages.updated_at
}
