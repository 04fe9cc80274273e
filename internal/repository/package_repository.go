package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/cempakacafe/reservation/internal/model"
)

// ErrPackageNotFound is returned when a package lookup matches no row.
var ErrPackageNotFound = errors.New("package not found")

// PackageRepo encapsulates database operations for reservation
// packages. The booking flow only ever reads packages; writes come
// from the admin back office.
type PackageRepo struct {
    db *sql.DB
}

// NewPackageRepo constructs a PackageRepo given a DB handle.
func NewPackageRepo(db *sql.DB) *PackageRepo { return &PackageRepo{db: db} }

const packageColumns = `id, name, description, price_cents, max_guests, inclusions, is_active, created_at, updated_at`

// ListActive returns the packages offered to customers, cheapest first.
func (r *PackageRepo) ListActive(ctx context.Context) ([]model.Package, error) {
    return r.list(ctx, `SELECT `+packageColumns+` FROM packages WHERE is_active = 1 ORDER BY price_cents`)
}

// List returns every package including inactive ones, for the admin view.
func (r *PackageRepo) List(ctx context.Context) ([]model.Package, error) {
    return r.list(ctx, `SELECT `+packageColumns+` FROM packages ORDER BY price_cents`)
}

func (r *PackageRepo) list(ctx context.Context, query string) ([]model.Package, error) {
    rows, err := r.db.QueryContext(ctx, query)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Package, 0)
    for rows.Next() {
        var p model.Package
        if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.MaxGuests, &p.Inclusions, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
            return nil, err
        }
        out = append(out, p)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// GetByID returns a single package or ErrPackageNotFound.
func (r *PackageRepo) GetByID(ctx context.Context, id uint64) (*model.Package, error) {
    var p model.Package
    err := r.db.QueryRowContext(ctx, `SELECT `+packageColumns+` FROM packages WHERE id = ?`, id).
        Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.MaxGuests, &p.Inclusions, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrPackageNotFound
    }
    if err != nil {
        return nil, err
    }
    return &p, nil
}

// GetActiveByIDTx returns an active package inside a transaction; the
// booking flow uses it to price a reservation atomically with its
// creation. Inactive packages are treated as missing.
func (r *PackageRepo) GetActiveByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Package, error) {
    var p model.Package
    err := tx.QueryRowContext(ctx, `SELECT `+packageColumns+` FROM packages WHERE id = ? AND is_active = 1`, id).
        Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.MaxGuests, &p.Inclusions, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrPackageNotFound
    }
    if err != nil {
        return nil, err
    }
    return &p, nil
}

// Create inserts a new package and populates its generated ID.
func (r *PackageRepo) Create(ctx context.Context, p *model.Package) error {
    const q = `INSERT INTO packages (name, description, price_cents, max_guests, inclusions, is_active)
               VALUES (?, ?, ?, ?, ?, ?)`
    result, err := r.db.ExecContext(ctx, q, p.Name, p.Description, p.PriceCents, p.MaxGuests, p.Inclusions, p.IsActive)
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    p.ID = uint64(id)
    return nil
}

// Update rewrites a package.
func (r *PackageRepo) Update(ctx context.Context, p *model.Package) error {
    const q = `UPDATE packages SET name = ?, description = ?, price_cents = ?, max_guests = ?, inclusions = ?, is_active = ?, updated_at = UTC_TIMESTAMP()
               WHERE id = ?`
    result, err := r.db.ExecContext(ctx, q, p.Name, p.Description, p.PriceCents, p.MaxGuests, p.Inclusions, p.IsActive, p.ID)
    if err != nil {
        return err
    }
    return requireRow(result, ErrPackageNotFound)
}

// Delete removes a package unless reservations still reference it, in
// which case ErrConflict is returned and admins should deactivate the
// package instead.
func (r *PackageRepo) Delete(ctx context.Context, id uint64) error {
    var n int
    if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM reservations WHERE package_id = ?`, id).Scan(&n); err != nil {
        return err
    }
    if n > 0 {
        return ErrConflict
    }
    result, err := r.db.ExecContext(ctx, `DELETE FROM packages WHERE id = ?`, id)
    if err != nil {
        return err
    }
    return requireRow(result, ErrPackageNotFound)
}
