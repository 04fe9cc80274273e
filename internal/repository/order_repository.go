package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/cempakacafe/reservation/internal/model"
)

// ErrOrderNotFound is returned when an order lookup matches no row.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepo provides CRUD operations for orders and their line items.
// Orders snapshot item prices into order_items so later menu edits do
// not change historical totals.
type OrderRepo struct {
    db *sql.DB
}

// NewOrderRepo returns a new OrderRepo bound to the given database.
func NewOrderRepo(db *sql.DB) *OrderRepo { return &OrderRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// that also touch the menu repository.
func (r *OrderRepo) DB() *sql.DB { return r.db }

const orderColumns = `id, user_id, table_id, customer_name, status, total_cents, created_at, updated_at`

// CreateTx inserts a new order within the scope of an existing
// transaction and populates its generated ID and timestamps.
func (r *OrderRepo) CreateTx(ctx context.Context, tx *sql.Tx, o *model.Order) error {
    const q = `INSERT INTO orders (user_id, table_id, customer_name, status, total_cents) VALUES (?, ?, ?, ?, ?)`
    result, err := tx.ExecContext(ctx, q, o.UserID, o.TableID, o.CustomerName, string(o.Status), o.TotalCents)
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    o.ID = uint64(id)
    row := tx.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, o.ID)
    return scanOrder(row, o)
}

// CreateItemsBulkTx inserts multiple order_items rows in a single
// statement. The caller must supply the order ID in each record.
// Passing an empty slice has no effect and returns nil.
func (r *OrderRepo) CreateItemsBulkTx(ctx context.Context, tx *sql.Tx, items []model.OrderItem) error {
    if len(items) == 0 {
        return nil
    }
    query := `INSERT INTO order_items (order_id, menu_item_id, quantity, price_cents) VALUES `
    args := make([]interface{}, 0, len(items)*4)
    for i, it := range items {
        if i > 0 {
            query += ","
        }
        query += "(?, ?, ?, ?)"
        args = append(args, it.OrderID, it.MenuItemID, it.Quantity, it.PriceCents)
    }
    _, err := tx.ExecContext(ctx, query, args...)
    return err
}

// GetByID returns a single order with its items, or ErrOrderNotFound.
func (r *OrderRepo) GetByID(ctx context.Context, id uint64) (*model.Order, []model.OrderItem, error) {
    var o model.Order
    err := scanOrder(r.db.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, id), &o)
    if errors.Is(err, sql.ErrNoRows) {
        return nil, nil, ErrOrderNotFound
    }
    if err != nil {
        return nil, nil, err
    }
    items, err := r.itemsFor(ctx, id)
    if err != nil {
        return nil, nil, err
    }
    return &o, items, nil
}

// ListByUser returns all orders created by the given customer, newest first.
func (r *OrderRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Order, error) {
    return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE user_id = ? ORDER BY created_at DESC`, userID)
}

// ListByStatus returns all orders in the given state, oldest first so
// the kitchen works the queue in arrival order.
func (r *OrderRepo) ListByStatus(ctx context.Context, status model.OrderStatus) ([]model.Order, error) {
    return r.list(ctx, `SELECT `+orderColumns+` FROM orders WHERE status = ? ORDER BY created_at`, string(status))
}

// ListPending is the canonical pending-orders read model shared by the
// kitchen display and the cashier dashboard.
func (r *OrderRepo) ListPending(ctx context.Context) ([]model.Order, error) {
    return r.ListByStatus(ctx, model.OrderPending)
}

// ListAll returns every order, newest first.
func (r *OrderRepo) ListAll(ctx context.Context) ([]model.Order, error) {
    return r.list(ctx, `SELECT `+orderColumns+` FROM orders ORDER BY created_at DESC`)
}

// UpdateStatus moves an order to a new state.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id uint64, status model.OrderStatus) error {
    result, err := r.db.ExecContext(ctx,
        `UPDATE orders SET status = ?, updated_at = UTC_TIMESTAMP() WHERE id = ?`, string(status), id)
    if err != nil {
        return err
    }
    return requireRow(result, ErrOrderNotFound)
}

func (r *OrderRepo) list(ctx context.Context, query string, args ...interface{}) ([]model.Order, error) {
    rows, err := r.db.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Order, 0)
    for rows.Next() {
        var o model.Order
        if err := scanOrder(rows, &o); err != nil {
            return nil, err
        }
        out = append(out, o)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

func (r *OrderRepo) itemsFor(ctx context.Context, orderID uint64) ([]model.OrderItem, error) {
    rows, err := r.db.QueryContext(ctx,
        `SELECT id, order_id, menu_item_id, quantity, price_cents FROM order_items WHERE order_id = ? ORDER BY id`, orderID)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    items := make([]model.OrderItem, 0)
    for rows.Next() {
        var it model.OrderItem
        if err := rows.Scan(&it.ID, &it.OrderID, &it.MenuItemID, &it.Quantity, &it.PriceCents); err != nil {
            return nil, err
        }
        items = append(items, it)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return items, nil
}

func scanOrder(row rowScanner, o *model.Order) error {
    var (
        userID  sql.NullInt64
        tableID sql.NullInt64
        status  string
    )
    if err := row.Scan(&o.ID, &userID, &tableID, &o.CustomerName, &status, &o.TotalCents, &o.CreatedAt, &o.UpdatedAt); err != nil {
        return err
    }
    o.Status = model.OrderStatus(status)
    if userID.Valid {
        v := uint64(userID.Int64)
        o.UserID = &v
    }
    if tableID.Valid {
        v := uint64(tableID.Int64)
        o.TableID = &v
    }
    return nil
}
