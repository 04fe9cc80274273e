package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cempakacafe/reservation/internal/booking"
	"github.com/cempakacafe/reservation/internal/model"
	"github.com/cempakacafe/reservation/internal/repository"
)

// StaffTableHandler covers the floor-plan side of the staff dashboard:
// listing the table inventory, flipping a table's operational status
// and inspecting a table's reservation history.
type StaffTableHandler struct {
	Tables       *repository.TableRepo
	Reservations *repository.ReservationRepo
}

func NewStaffTableHandler(tab *repository.TableRepo, res *repository.ReservationRepo) *StaffTableHandler {
	if tab == nil || res == nil {
		panic("nil repository passed to NewStaffTableHandler")
	}
	return &StaffTableHandler{Tables: tab, Reservations: res}
}

type setTableStatusReq struct {
	Status string `json:"status"`
}

// List returns the full table inventory ordered by table number.
func (h *StaffTableHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tables, err := h.Tables.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"tables": toTableViews(tables)})
}

// SetStatus applies a direct staff status change to one table. Any of
// the four states may follow any other; unknown values are rejected
// before touching the database.
func (h *StaffTableHandler) SetStatus(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req setTableStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	table, err := h.Tables.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTableNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	change, err := booking.SetTableStatus(table, model.TableStatus(req.Status))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}
	if err := h.Tables.UpdateStatus(ctx, table.ID, table.Status); err != nil {
		// Roll the in-memory copy back so the response reflects reality.
		table.Status = change.Previous
		if errors.Is(err, repository.ErrTableNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"table":    toTableView(table),
		"previous": string(change.Previous),
	})
}

// ReservationHistory returns the assignment history of one table, past
// and future, ordered by date and slot.
func (h *StaffTableHandler) ReservationHistory(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Tables.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTableNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	list, err := h.Reservations.ListForTable(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": toReservationViews(list)})
}
