package model

import "time"

// OrderStatus enumerates the kitchen/cashier lifecycle of a dine-in or
// takeaway order.  Like ReservationStatus the set is closed and matched
// exhaustively.
type OrderStatus string

const (
    OrderPending   OrderStatus = "pending"   // placed, not yet picked up by the kitchen
    OrderPreparing OrderStatus = "preparing" // kitchen is working on it
    OrderServed    OrderStatus = "served"    // delivered to the table / counter
    OrderPaid      OrderStatus = "paid"      // settled at the cashier
    OrderCancelled OrderStatus = "cancelled" // voided by staff
)

// ValidOrderStatus reports whether s is one of the known order states.
func ValidOrderStatus(s OrderStatus) bool {
    switch s {
    case OrderPending, OrderPreparing, OrderServed, OrderPaid, OrderCancelled:
        return true
    }
    return false
}

// Order groups the menu items bought in a single checkout.  Orders may
// reference a table for dine-in service; takeaway orders leave TableID
// nil.  Item prices are snapshotted into OrderItem rows so later menu
// edits do not change historical totals.
//
// Fields:
//  ID           – primary key identifier.
//  UserID       – customer account, nullable for cashier-entered walk-ins.
//  TableID      – dine-in table, nullable for takeaway.
//  CustomerName – name announced when the order is ready.
//  Status       – lifecycle state, see OrderStatus.
//  TotalCents   – sum of item price × quantity, fixed at creation.
//  CreatedAt    – creation timestamp.
//  UpdatedAt    – last update timestamp.
type Order struct {
    ID           uint64      // orders.id
    UserID       *uint64     // orders.user_id (nullable)
    TableID      *uint64     // orders.table_id (nullable)
    CustomerName string      // orders.customer_name
    Status       OrderStatus // orders.status
    TotalCents   uint32      // orders.total_cents
    CreatedAt    time.Time   // orders.created_at
    UpdatedAt    time.Time   // orders.updated_at
}

// OrderItem is one line of an order: a menu item, the quantity bought
// and the unit price at the time of purchase.
type OrderItem struct {
    ID         uint64 // order_items.id
    OrderID    uint64 // order_items.order_id
    MenuItemID uint64 // order_items.menu_item_id
    Quantity   int    // order_items.quantity
    PriceCents uint32 // order_items.price_cents (unit price snapshot)
}
