package repository

import (
    "context"
    "database/sql"
    "errors"

    "github.com/cempakacafe/reservation/internal/model"
)

// ErrTableNotFound is returned when a table lookup matches no row.
var ErrTableNotFound = errors.New("table not found")

// TableRepo encapsulates database operations for the physical table
// inventory. Status is an ordinary column written by staff actions;
// the repository performs no automatic transitions.
type TableRepo struct {
    db *sql.DB
}

// NewTableRepo constructs a TableRepo given a DB handle.
func NewTableRepo(db *sql.DB) *TableRepo { return &TableRepo{db: db} }

const tableColumns = `id, number, display_name, capacity, location_type, location_detail, status, created_at, updated_at`

// List returns the full table inventory ordered by table number.
func (r *TableRepo) List(ctx context.Context) ([]model.Table, error) {
    rows, err := r.db.QueryContext(ctx, `SELECT `+tableColumns+` FROM tables ORDER BY number`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Table, 0)
    for rows.Next() {
        var t model.Table
        if err := scanTable(rows, &t); err != nil {
            return nil, err
        }
        out = append(out, t)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// ListTx is List inside an existing transaction, used by confirmation
// flows so auto-assignment sees a consistent inventory snapshot.
func (r *TableRepo) ListTx(ctx context.Context, tx *sql.Tx) ([]model.Table, error) {
    rows, err := tx.QueryContext(ctx, `SELECT `+tableColumns+` FROM tables ORDER BY number`)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Table, 0)
    for rows.Next() {
        var t model.Table
        if err := scanTable(rows, &t); err != nil {
            return nil, err
        }
        out = append(out, t)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// GetByID returns a single table or ErrTableNotFound.
func (r *TableRepo) GetByID(ctx context.Context, id uint64) (*model.Table, error) {
    var t model.Table
    err := scanTable(r.db.QueryRowContext(ctx, `SELECT `+tableColumns+` FROM tables WHERE id = ?`, id), &t)
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrTableNotFound
    }
    if err != nil {
        return nil, err
    }
    return &t, nil
}

// GetByIDTx is GetByID inside an existing transaction.
func (r *TableRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Table, error) {
    var t model.Table
    err := scanTable(tx.QueryRowContext(ctx, `SELECT `+tableColumns+` FROM tables WHERE id = ?`, id), &t)
    if errors.Is(err, sql.ErrNoRows) {
        return nil, ErrTableNotFound
    }
    if err != nil {
        return nil, err
    }
    return &t, nil
}

// Create inserts a new table and populates its generated ID.
func (r *TableRepo) Create(ctx context.Context, t *model.Table) error {
    const q = `INSERT INTO tables (number, display_name, capacity, location_type, location_detail, status)
               VALUES (?, ?, ?, ?, ?, ?)`
    result, err := r.db.ExecContext(ctx, q,
        t.Number, t.DisplayName, t.Capacity, string(t.LocationType), t.LocationDetail, string(t.Status))
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    t.ID = uint64(id)
    return nil
}

// Update rewrites a table's descriptive attributes. Status changes go
// through UpdateStatus so the two concerns stay separate.
func (r *TableRepo) Update(ctx context.Context, t *model.Table) error {
    const q = `UPDATE tables SET number = ?, display_name = ?, capacity = ?, location_type = ?, location_detail = ?, updated_at = UTC_TIMESTAMP()
               WHERE id = ?`
    result, err := r.db.ExecContext(ctx, q,
        t.Number, t.DisplayName, t.Capacity, string(t.LocationType), t.LocationDetail, t.ID)
    if err != nil {
        return err
    }
    return requireRow(result, ErrTableNotFound)
}

// UpdateStatus persists a direct staff status change.
func (r *TableRepo) UpdateStatus(ctx context.Context, id uint64, status model.TableStatus) error {
    result, err := r.db.ExecContext(ctx,
        `UPDATE tables SET status = ?, updated_at = UTC_TIMESTAMP() WHERE id = ?`, string(status), id)
    if err != nil {
        return err
    }
    return requireRow(result, ErrTableNotFound)
}

// UpdateStatusTx is UpdateStatus inside an existing transaction; the
// linked table policy uses it so the table flip commits atomically
// with the reservation transition that caused it.
func (r *TableRepo) UpdateStatusTx(ctx context.Context, tx *sql.Tx, id uint64, status model.TableStatus) error {
    result, err := tx.ExecContext(ctx,
        `UPDATE tables SET status = ?, updated_at = UTC_TIMESTAMP() WHERE id = ?`, string(status), id)
    if err != nil {
        return err
    }
    return requireRow(result, ErrTableNotFound)
}

// Delete removes a table. Tables referenced by reservations cannot be
// deleted; the FK violation is surfaced as ErrConflict.
func (r *TableRepo) Delete(ctx context.Context, id uint64) error {
    var n int
    if err := r.db.QueryRowContext(ctx,
        `SELECT COUNT(*) FROM reservations WHERE assigned_table_id = ?`, id).Scan(&n); err != nil {
        return err
    }
    if n > 0 {
        return ErrConflict
    }
    result, err := r.db.ExecContext(ctx, `DELETE FROM tables WHERE id = ?`, id)
    if err != nil {
        return err
    }
    return requireRow(result, ErrTableNotFound)
}

func requireRow(result sql.Result, missing error) error {
    affected, err := result.RowsAffected()
    if err != nil {
        return err
    }
    if affected == 0 {
        return missing
    }
    return nil
}

func scanTable(row rowScanner, t *model.Table) error {
    var (
        location string
        detail   sql.NullString
        status   string
    )
    if err := row.Scan(&t.ID, &t.Number, &t.DisplayName, &t.Capacity, &location, &detail, &status, &t.CreatedAt, &t.UpdatedAt); err != nil {
        return err
    }
    t.LocationType = model.LocationType(location)
    t.Status = model.TableStatus(status)
    if detail.Valid {
        v := detail.String
        t.LocationDetail = &v
    }
    return nil
}
