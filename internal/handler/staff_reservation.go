package handler

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cempakacafe/reservation/internal/booking"
	"github.com/cempakacafe/reservation/internal/model"
	"github.com/cempakacafe/reservation/internal/repository"
	queue "github.com/cempakacafe/reservation/internal/queue"
	publisher "github.com/cempakacafe/reservation/internal/service"
)

// StaffReservationHandler exposes the reservation workflow used on the
// floor: the pending queue, confirmation, cancellation, completion and
// table assignment. Every transition runs inside a single transaction
// with a row lock on the reservation and an optimistic version check,
// so two staff members acting on the same booking cannot both win.
type StaffReservationHandler struct {
	Reservations *repository.ReservationRepo
	Tables       *repository.TableRepo
	Packages     *repository.PackageRepo
	Policy       booking.TablePolicy
}

func NewStaffReservationHandler(res *repository.ReservationRepo, tab *repository.TableRepo, pkg *repository.PackageRepo, policy booking.TablePolicy) *StaffReservationHandler {
	if res == nil || tab == nil || pkg == nil {
		panic("nil repository passed to NewStaffReservationHandler")
	}
	return &StaffReservationHandler{Reservations: res, Tables: tab, Packages: pkg, Policy: policy}
}

type staffActionReq struct {
	Note *string `json:"note"`
}

type assignTableReq struct {
	TableID  uint64  `json:"table_id"`
	Override bool    `json:"override"`
	Note     *string `json:"note"`
}

// List returns reservations, optionally filtered by ?status=. Without a
// filter every reservation is returned ordered by date and slot.
func (h *StaffReservationHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	raw := strings.TrimSpace(c.QueryParam("status"))
	var (
		list []model.Reservation
		err  error
	)
	if raw == "" {
		list, err = h.Reservations.ListAll(ctx)
	} else {
		status := model.ReservationStatus(raw)
		if !model.ValidReservationStatus(status) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
		}
		list, err = h.Reservations.ListByStatus(ctx, status)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": toReservationViews(list)})
}

// ListPending is the canonical pending queue consumed by the staff
// dashboard and the confirmation screen alike.
func (h *StaffReservationHandler) ListPending(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Reservations.ListPending(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": toReservationViews(list)})
}

// Get returns a single reservation by ID.
func (h *StaffReservationHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	res, err := h.Reservations.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toReservationView(res))
}

// Confirm accepts a pending reservation. When no table is assigned yet
// the smallest suitable available table is auto-assigned; when none
// fits the reservation is confirmed without a table and staff seat the
// party manually. Confirming onto a table that already holds a
// confirmed booking for the same date and slot is rejected.
func (h *StaffReservationHandler) Confirm(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req staffActionReq
	_ = c.Bind(&req)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 8*time.Second)
	defer cancel()

	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := h.Reservations.GetByIDTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	inventory, err := h.Tables.ListTx(ctx, tx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	// Tables already confirmed for this date and slot are withheld from
	// auto-assignment so the matcher falls through to the next
	// candidate; a pre-assigned table that turns out to be taken still
	// fails the confirm rather than silently reseating the party.
	booked, err := h.Reservations.ConfirmedTableIDsTx(ctx, tx, res.Date, res.TimeSlot, res.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if res.AssignedTableID != nil && booked[*res.AssignedTableID] {
		return c.JSON(http.StatusConflict, echo.Map{"error": "table already booked for this slot"})
	}

	if _, err := booking.Confirm(res, booking.ExcludeTables(inventory, booked), booking.Action{Note: req.Note, Now: time.Now()}); err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": "only pending reservations can be confirmed"})
	}

	if err := h.Reservations.UpdateStateTx(ctx, tx, res); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "reservation was modified concurrently, reload and retry"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	if status, apply := h.Policy.StatusAfterConfirm(); apply && res.AssignedTableID != nil {
		if err := h.Tables.UpdateStatusTx(ctx, tx, *res.AssignedTableID, status); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	h.publishConfirmed(res)

	return c.JSON(http.StatusOK, toReservationView(res))
}

// Cancel rejects a pending reservation.
func (h *StaffReservationHandler) Cancel(c echo.Context) error {
	return h.transition(c, func(res *model.Reservation, a booking.Action) error {
		return booking.Cancel(res, a)
	}, "only pending reservations can be cancelled", nil)
}

// Complete marks a confirmed reservation as finished. Under the linked
// table policy the assigned table is released back to available in the
// same transaction.
func (h *StaffReservationHandler) Complete(c echo.Context) error {
	var after *model.TableStatus
	if release, apply := h.Policy.StatusAfterComplete(); apply {
		after = &release
	}
	return h.transition(c, func(res *model.Reservation, a booking.Action) error {
		return booking.Complete(res, a)
	}, "only confirmed reservations can be completed", after)
}

// transition runs a simple status transition (no table inventory
// involved) inside the standard locked-read, version-checked-write
// transaction shape.
func (h *StaffReservationHandler) transition(c echo.Context, fn func(*model.Reservation, booking.Action) error, conflictMsg string, tableAfter *model.TableStatus) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req staffActionReq
	_ = c.Bind(&req)

	ctx, cancel := context.WithTimeout(c.Request().Context(), 8*time.Second)
	defer cancel()

	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := h.Reservations.GetByIDTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	if err := fn(res, booking.Action{Note: req.Note, Now: time.Now()}); err != nil {
		return c.JSON(http.StatusConflict, echo.Map{"error": conflictMsg})
	}

	if err := h.Reservations.UpdateStateTx(ctx, tx, res); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "reservation was modified concurrently, reload and retry"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	if tableAfter != nil && res.AssignedTableID != nil {
		if err := h.Tables.UpdateStatusTx(ctx, tx, *res.AssignedTableID, *tableAfter); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
		}
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	return c.JSON(http.StatusOK, toReservationView(res))
}

// AssignTable sets or replaces the reservation's table. The target must
// seat the party and match the requested location unless override is
// set, and must not already hold a confirmed booking for the same slot.
func (h *StaffReservationHandler) AssignTable(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req assignTableReq
	if err := c.Bind(&req); err != nil || req.TableID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "table_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 8*time.Second)
	defer cancel()

	tx, err := h.Reservations.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := h.Reservations.GetByIDTx(ctx, tx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	table, err := h.Tables.GetByIDTx(ctx, tx, req.TableID)
	if err != nil {
		if errors.Is(err, repository.ErrTableNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	n, err := h.Reservations.CountConfirmedForTableTx(ctx, tx, table.ID, res.Date, res.TimeSlot, res.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if n > 0 {
		return c.JSON(http.StatusConflict, echo.Map{"error": "table already booked for this slot"})
	}

	if err := booking.AssignTable(res, table, req.Override, booking.Action{Note: req.Note, Now: time.Now()}); err != nil {
		if errors.Is(err, booking.ErrTableUnsuitable) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "table does not fit the party"})
		}
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation can no longer be assigned"})
	}

	if err := h.Reservations.UpdateStateTx(ctx, tx, res); err != nil {
		if errors.Is(err, repository.ErrVersionConflict) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "reservation was modified concurrently, reload and retry"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	return c.JSON(http.StatusOK, toReservationView(res))
}

// publishConfirmed emits the reservation.confirmed event in the
// background. Delivery is best-effort; a broker outage never fails the
// confirmation that already committed.
func (h *StaffReservationHandler) publishConfirmed(res *model.Reservation) {
	snapshot := *res
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		event := queue.ReservationConfirmedEvent{
			ReservationID:   snapshot.ID,
			Code:            snapshot.Code,
			CustomerName:    snapshot.CustomerName,
			CustomerPhone:   snapshot.CustomerPhone,
			Date:            snapshot.Date.UTC().Format("2006-01-02"),
			TimeSlot:        snapshot.TimeSlot,
			GuestCount:      snapshot.GuestCount,
			Location:        string(snapshot.Location),
			TotalPriceCents: snapshot.TotalPriceCents,
			ConfirmedAt:     time.Now().UTC().Format(time.RFC3339),
		}
		if pkg, err := h.Packages.GetByID(ctx, snapshot.PackageID); err == nil {
			event.PackageName = pkg.Name
		}
		if snapshot.AssignedTableID != nil {
			if table, err := h.Tables.GetByID(ctx, *snapshot.AssignedTableID); err == nil {
				num := table.Number
				event.TableNumber = &num
			}
		}
		if err := publisher.PublishReservationConfirmed(ctx, event); err != nil {
			log.Printf("reservation %s: confirm event not published: %v", snapshot.Code, err)
		}
	}()
}
