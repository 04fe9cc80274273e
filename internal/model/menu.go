package model

import "time"

// MenuItem is a single dish or drink on the menu.  Items double as
// reservation add-ons: a customer may attach menu items to a booking
// and their price is folded into the reservation total at creation.
//
// Fields:
//  ID          – primary key identifier.
//  Name        – item name.
//  Category    – coarse grouping ("food", "drink", "dessert").
//  Description – optional longer description.
//  PriceCents  – price in cents.
//  ImageURL    – optional image shown in the menu browser.
//  IsAvailable – unavailable items stay visible to admins but cannot be ordered.
//  CreatedAt   – creation timestamp.
//  UpdatedAt   – last update timestamp.
type MenuItem struct {
    ID          uint64    // menu_items.id
    Name        string    // menu_items.name
    Category    string    // menu_items.category
    Description *string   // menu_items.description (nullable)
    PriceCents  uint32    // menu_items.price_cents
    ImageURL    *string   // menu_items.image_url (nullable)
    IsAvailable bool      // menu_items.is_available
    CreatedAt   time.Time // menu_items.created_at
    UpdatedAt   time.Time // menu_items.updated_at
}
