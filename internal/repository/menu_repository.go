package repository

import (
    "context"
    "database/sql"
    "errors"
    "strings"

    "github.com/cempakacafe/reservation/internal/model"
)

// ErrMenuItemNotFound is returned when a menu item lookup matches no row.
var ErrMenuItemNotFound = errors.New("menu item not found")

// MenuRepo encapsulates database operations for menu items. Items are
// browsed by customers, sold through orders and attached to
// reservations as add-ons.
type MenuRepo struct {
    db *sql.DB
}

// NewMenuRepo constructs a MenuRepo given a DB handle.
func NewMenuRepo(db *sql.DB) *MenuRepo { return &MenuRepo{db: db} }

const menuColumns = `id, name, category, description, price_cents, image_url, is_available, created_at, updated_at`

// ListAvailable returns orderable items, optionally filtered by
// category, for the customer-facing menu browser.
func (r *MenuRepo) ListAvailable(ctx context.Context, category string) ([]model.MenuItem, error) {
    if category != "" {
        return r.list(ctx, `SELECT `+menuColumns+` FROM menu_items WHERE is_available = 1 AND category = ? ORDER BY category, name`, category)
    }
    return r.list(ctx, `SELECT `+menuColumns+` FROM menu_items WHERE is_available = 1 ORDER BY category, name`)
}

// List returns every item including unavailable ones, for the admin view.
func (r *MenuRepo) List(ctx context.Context) ([]model.MenuItem, error) {
    return r.list(ctx, `SELECT `+menuColumns+` FROM menu_items ORDER BY category, name`)
}

func (r *MenuRepo) list(ctx context.Context, query string, args ...interface{}) ([]model.MenuItem, error) {
    rows, err := r.db.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.MenuItem, 0)
    for rows.Next() {
        var m model.MenuItem
        if err := scanMenuItem(rows, &m); err != nil {
            return nil, err
        }
        out = append(out, m)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// GetByID returns a single menu item or ErrMenuItemNotFound.
func (r *MenuRepo) GetByID(ctx context.Context, id uint64) (*model.MenuItem, error) {
    var m model.MenuItem
    err := scanMenuItem(r.db.QueryRowContext(ctx, `SELECT `+menuColumns+` FROM menu_items WHERE id = ?`, id), &m)
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrMenuItemNotFound
    }
    if err != nil {
        return nil, err
    }
    return &m, nil
}

// GetPricesByIDsTx maps the given item IDs to their current unit
// prices, considering only available items. Checkout and reservation
// pricing call this inside the creating transaction so a concurrent
// menu edit cannot split an order across two price lists. IDs missing
// from the result were unknown or unavailable; the caller decides how
// to report them.
func (r *MenuRepo) GetPricesByIDsTx(ctx context.Context, tx *sql.Tx, ids []uint64) (map[uint64]uint32, error) {
    prices := make(map[uint64]uint32, len(ids))
    if len(ids) == 0 {
        return prices, nil
    }
    placeholders := make([]string, 0, len(ids))
    args := make([]interface{}, 0, len(ids))
    for _, id := range ids {
        placeholders = append(placeholders, "?")
        args = append(args, id)
    }
    query := `SELECT id, price_cents FROM menu_items WHERE is_available = 1 AND id IN (` + strings.Join(placeholders, ",") + `)`
    rows, err := tx.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    for rows.Next() {
        var id uint64
        var price uint32
        if err := rows.Scan(&id, &price); err != nil {
            return nil, err
        }
        prices[id] = price
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return prices, nil
}

// Create inserts a new menu item and populates its generated ID.
func (r *MenuRepo) Create(ctx context.Context, m *model.MenuItem) error {
    const q = `INSERT INTO menu_items (name, category, description, price_cents, image_url, is_available)
               VALUES (?, ?, ?, ?, ?, ?)`
    result, err := r.db.ExecContext(ctx, q, m.Name, m.Category, m.Description, m.PriceCents, m.ImageURL, m.IsAvailable)
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    m.ID = uint64(id)
    return nil
}

// Update rewrites a menu item.
func (r *MenuRepo) Update(ctx context.Context, m *model.MenuItem) error {
    const q = `UPDATE menu_items SET name = ?, category = ?, description = ?, price_cents = ?, image_url = ?, is_available = ?, updated_at = UTC_TIMESTAMP()
               WHERE id = ?`
    result, err := r.db.ExecContext(ctx, q, m.Name, m.Category, m.Description, m.PriceCents, m.ImageURL, m.IsAvailable, m.ID)
    if err != nil {
        return err
    }
    return requireRow(result, ErrMenuItemNotFound)
}

// Delete removes a menu item unless order lines still reference it.
func (r *MenuRepo) Delete(ctx context.Context, id uint64) error {
    var n int
    if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM order_items WHERE menu_item_id = ?`, id).Scan(&n); err != nil {
        return err
    }
    if n > 0 {
        return ErrConflict
    }
    result, err := r.db.ExecContext(ctx, `DELETE FROM menu_items WHERE id = ?`, id)
    if err != nil {
        return err
    }
    return requireRow(result, ErrMenuItemNotFound)
}

func scanMenuItem(row rowScanner, m *model.MenuItem) error {
    var (
        desc  sql.NullString
        image sql.NullString
    )
    if err := row.Scan(&m.ID, &m.Name, &m.Category, &desc, &m.PriceCents, &image, &m.IsAvailable, &m.CreatedAt, &m.UpdatedAt); err != nil {
        return err
    }
    if desc.Valid {
        v := desc.String
        m.Description = &v
    }
    if image.Valid {
        v := image.String
        m.ImageURL = &v
    }
    return nil
}
