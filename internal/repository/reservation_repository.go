package repository

import (
    "context"
    "crypto/rand"
    "database/sql"
    "encoding/hex"
    "strings"
    "time"

    "github.com/cempakacafe/reservation/internal/model"
)

// ReservationRepo provides CRUD operations for reservations. A
// reservation snapshots the customer's contact details and price at
// booking time; afterwards only staff actions mutate it, always through
// the versioned UpdateStateTx so concurrent transitions cannot both
// apply. All timestamp fields are stored in UTC.
type ReservationRepo struct {
    db *sql.DB
}

// NewReservationRepo returns a new ReservationRepo bound to the given database.
func NewReservationRepo(db *sql.DB) *ReservationRepo { return &ReservationRepo{db: db} }

// DB exposes the underlying handle so handlers can open transactions
// that span several repositories.
func (r *ReservationRepo) DB() *sql.DB { return r.db }

const reservationColumns = `id, code, user_id, customer_name, customer_phone, customer_email,
        reserved_date, reserved_time, guest_count, package_id, location_preference,
        special_requests, status, assigned_table_id, proof_of_payment,
        total_price_cents, staff_note, version, created_at, updated_at`

// GenerateCode returns a fresh human-readable booking reference of the
// form CC-XXXXXX. The suffix comes from crypto/rand; the column's
// unique index catches the (vanishingly rare) collision, which callers
// surface as a retryable insert error.
func GenerateCode() (string, error) {
    b := make([]byte, 3)
    if _, err := rand.Read(b); err != nil {
        return "", err
    }
    return "CC-" + strings.ToUpper(hex.EncodeToString(b)), nil
}

// CreateTx inserts a new reservation within the scope of an existing
// transaction. It populates the generated ID and the DB-assigned
// timestamps on the provided record. The caller must commit or
// rollback the transaction. Status must be one of the enumerated
// states; new bookings always start as pending with version zero.
func (r *ReservationRepo) CreateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
    const q = `INSERT INTO reservations
        (code, user_id, customer_name, customer_phone, customer_email,
         reserved_date, reserved_time, guest_count, package_id, location_preference,
         special_requests, status, assigned_table_id, proof_of_payment, total_price_cents)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
    result, err := tx.ExecContext(ctx, q,
        res.Code, res.UserID, res.CustomerName, res.CustomerPhone, res.CustomerEmail,
        res.Date.UTC().Format("2006-01-02"), res.TimeSlot, res.GuestCount, res.PackageID,
        string(res.Location), res.SpecialRequests, string(res.Status),
        res.AssignedTableID, res.ProofOfPayment, res.TotalPriceCents,
    )
    if err != nil {
        return err
    }
    id, err := result.LastInsertId()
    if err != nil {
        return err
    }
    res.ID = uint64(id)
    // Query back the full row to populate timestamps and defaults.
    row := tx.QueryRowContext(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, res.ID)
    return scanReservation(row, res)
}

// GetByID returns a single reservation. sql.ErrNoRows is returned when
// no reservation with the given ID exists.
func (r *ReservationRepo) GetByID(ctx context.Context, id uint64) (*model.Reservation, error) {
    row := r.db.QueryRowContext(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = ?`, id)
    var res model.Reservation
    if err := scanReservation(row, &res); err != nil {
        return nil, err
    }
    return &res, nil
}

// GetByIDTx is GetByID inside an existing transaction with a row lock,
// so a state transition reads and rewrites the reservation without
// interleaving with a concurrent transition on the same row.
func (r *ReservationRepo) GetByIDTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Reservation, error) {
    row := tx.QueryRowContext(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE id = ? FOR UPDATE`, id)
    var res model.Reservation
    if err := scanReservation(row, &res); err != nil {
        return nil, err
    }
    return &res, nil
}

// GetByIDForUser returns a reservation only when it belongs to the
// given customer. It returns sql.ErrNoRows when the reservation does
// not exist and ErrForbidden when it belongs to someone else.
func (r *ReservationRepo) GetByIDForUser(ctx context.Context, id, userID uint64) (*model.Reservation, error) {
    res, err := r.GetByID(ctx, id)
    if err != nil {
        return nil, err
    }
    if res.UserID == nil || *res.UserID != userID {
        return nil, ErrForbidden
    }
    return res, nil
}

// UpdateStateTx persists the outcome of a state transition using an
// optimistic version check. The UPDATE only matches the row when the
// version the caller read is still current; when another transition
// won the race, zero rows match and ErrVersionConflict is returned so
// the loser fails loudly instead of overwriting. On success the
// record's Version is advanced to match the database.
func (r *ReservationRepo) UpdateStateTx(ctx context.Context, tx *sql.Tx, res *model.Reservation) error {
    const q = `UPDATE reservations
        SET status = ?, assigned_table_id = ?, staff_note = ?, proof_of_payment = ?,
            version = version + 1, updated_at = UTC_TIMESTAMP()
        WHERE id = ? AND version = ?`
    result, err := tx.ExecContext(ctx, q,
        string(res.Status), res.AssignedTableID, res.StaffNote, res.ProofOfPayment,
        res.ID, res.Version,
    )
    if err != nil {
        return err
    }
    affected, err := result.RowsAffected()
    if err != nil {
        return err
    }
    if affected == 0 {
        return ErrVersionConflict
    }
    res.Version++
    return nil
}

// CountConfirmedForTableTx counts confirmed reservations holding the
// given table for the given date and slot, excluding the reservation
// performing the check. A non-zero count means assigning or confirming
// onto this table would double-book it.
func (r *ReservationRepo) CountConfirmedForTableTx(ctx context.Context, tx *sql.Tx, tableID uint64, date time.Time, slot string, excludeID uint64) (int, error) {
    const q = `SELECT COUNT(*) FROM reservations
        WHERE assigned_table_id = ? AND reserved_date = ? AND reserved_time = ?
          AND status = ? AND id <> ?`
    var n int
    err := tx.QueryRowContext(ctx, q,
        tableID, date.UTC().Format("2006-01-02"), slot,
        string(model.ReservationConfirmed), excludeID,
    ).Scan(&n)
    return n, err
}

// ConfirmedTableIDsTx returns the set of table IDs holding a confirmed
// reservation for the given date and slot, excluding the reservation
// performing the lookup. Confirmation flows subtract this set from the
// table inventory before auto-assignment and use it to reject a manual
// assignment that would double-book.
func (r *ReservationRepo) ConfirmedTableIDsTx(ctx context.Context, tx *sql.Tx, date time.Time, slot string, excludeID uint64) (map[uint64]bool, error) {
    const q = `SELECT assigned_table_id FROM reservations
        WHERE reserved_date = ? AND reserved_time = ? AND status = ?
          AND assigned_table_id IS NOT NULL AND id <> ?`
    rows, err := tx.QueryContext(ctx, q,
        date.UTC().Format("2006-01-02"), slot,
        string(model.ReservationConfirmed), excludeID,
    )
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make(map[uint64]bool)
    for rows.Next() {
        var id uint64
        if err := rows.Scan(&id); err != nil {
            return nil, err
        }
        out[id] = true
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// ListByUser returns all reservations created by the given customer,
// newest first. When none exist an empty slice is returned.
func (r *ReservationRepo) ListByUser(ctx context.Context, userID uint64) ([]model.Reservation, error) {
    return r.list(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE user_id = ? ORDER BY created_at DESC`, userID)
}

// ListByStatus returns all reservations in the given state ordered by
// reservation date and slot, soonest first.
func (r *ReservationRepo) ListByStatus(ctx context.Context, status model.ReservationStatus) ([]model.Reservation, error) {
    return r.list(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE status = ? ORDER BY reserved_date, reserved_time, id`, string(status))
}

// ListPending is the canonical pending-reservations read model consumed
// by every staff surface, so no screen derives its own filtered copy.
func (r *ReservationRepo) ListPending(ctx context.Context) ([]model.Reservation, error) {
    return r.ListByStatus(ctx, model.ReservationPending)
}

// ListAll returns every reservation ordered by reservation date and
// slot, soonest first.
func (r *ReservationRepo) ListAll(ctx context.Context) ([]model.Reservation, error) {
    return r.list(ctx, `SELECT `+reservationColumns+` FROM reservations ORDER BY reserved_date, reserved_time, id`)
}

// ListForTable returns the full assignment history of a table, past and
// future, for the "reservations for this table" view.
func (r *ReservationRepo) ListForTable(ctx context.Context, tableID uint64) ([]model.Reservation, error) {
    return r.list(ctx, `SELECT `+reservationColumns+` FROM reservations WHERE assigned_table_id = ? ORDER BY reserved_date, reserved_time, id`, tableID)
}

func (r *ReservationRepo) list(ctx context.Context, query string, args ...interface{}) ([]model.Reservation, error) {
    rows, err := r.db.QueryContext(ctx, query, args...)
    if err != nil {
        return nil, err
    }
    defer rows.Close()
    out := make([]model.Reservation, 0)
    for rows.Next() {
        var res model.Reservation
        if err := scanReservation(rows, &res); err != nil {
            return nil, err
        }
        out = append(out, res)
    }
    if err := rows.Err(); err != nil {
        return nil, err
    }
    return out, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
    Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner, res *model.Reservation) error {
    var (
        userID         sql.NullInt64
        special        sql.NullString
        status         string
        location       string
        assignedTable  sql.NullInt64
        proofOfPayment sql.NullString
        staffNote      sql.NullString
    )
    if err := row.Scan(
        &res.ID, &res.Code, &userID, &res.CustomerName, &res.CustomerPhone, &res.CustomerEmail,
        &res.Date, &res.TimeSlot, &res.GuestCount, &res.PackageID, &location,
        &special, &status, &assignedTable, &proofOfPayment,
        &res.TotalPriceCents, &staffNote, &res.Version, &res.CreatedAt, &res.UpdatedAt,
    ); err != nil {
        return err
    }
    res.Location = model.LocationType(location)
    res.Status = model.ReservationStatus(status)
    if userID.Valid {
        v := uint64(userID.Int64)
        res.UserID = &v
    }
    if special.Valid {
        v := special.String
        res.SpecialRequests = &v
    }
    if assignedTable.Valid {
        v := uint64(assignedTable.Int64)
        res.AssignedTableID = &v
    }
    if proofOfPayment.Valid {
        v := proofOfPayment.String
        res.ProofOfPayment = &v
    }
    if staffNote.Valid {
        v := staffNote.String
        res.StaffNote = &v
    }
    return nil
}
