package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cempakacafe/reservation/internal/model"
	"github.com/cempakacafe/reservation/internal/repository"
)

// StaffOrderHandler serves the kitchen and cashier screens: the pending
// order queue and status updates as orders flow from pending through
// preparing and served to paid.
type StaffOrderHandler struct {
	Orders *repository.OrderRepo
}

func NewStaffOrderHandler(orders *repository.OrderRepo) *StaffOrderHandler {
	if orders == nil {
		panic("nil repository passed to NewStaffOrderHandler")
	}
	return &StaffOrderHandler{Orders: orders}
}

type setOrderStatusReq struct {
	Status string `json:"status"`
}

// List returns orders, optionally filtered by ?status=.
func (h *StaffOrderHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	raw := strings.TrimSpace(c.QueryParam("status"))
	var (
		list []model.Order
		err  error
	)
	if raw == "" {
		list, err = h.Orders.ListAll(ctx)
	} else {
		status := model.OrderStatus(raw)
		if !model.ValidOrderStatus(status) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
		}
		list, err = h.Orders.ListByStatus(ctx, status)
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": toOrderViews(list)})
}

// ListPending is the kitchen's work queue.
func (h *StaffOrderHandler) ListPending(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Orders.ListPending(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": toOrderViews(list)})
}

// Get returns a single order with its line items.
func (h *StaffOrderHandler) Get(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	order, items, err := h.Orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) || errors.Is(err, repository.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toOrderView(order, items))
}

// SetStatus moves an order to a new state. Transitions are not locked
// down to a strict chain; the cashier may void at any point and the
// kitchen may skip preparing for drinks-only orders.
func (h *StaffOrderHandler) SetStatus(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req setOrderStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	status := model.OrderStatus(req.Status)
	if !model.ValidOrderStatus(status) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown status"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Orders.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "order not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	order, items, err := h.Orders.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toOrderView(order, items))
}
