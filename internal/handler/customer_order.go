package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cempakacafe/reservation/internal/model"
	"github.com/cempakacafe/reservation/internal/repository"
)

// CustomerOrderHandler handles menu checkout for authenticated
// customers. Unit prices are read inside the checkout transaction and
// snapshotted onto the order lines, so a later menu price change never
// alters a placed order.
type CustomerOrderHandler struct {
	Orders *repository.OrderRepo
	Menu   *repository.MenuRepo
	Users  *repository.UserRepo
}

func NewCustomerOrderHandler(orders *repository.OrderRepo, menu *repository.MenuRepo, users *repository.UserRepo) *CustomerOrderHandler {
	if orders == nil || menu == nil || users == nil {
		panic("nil repository passed to NewCustomerOrderHandler")
	}
	return &CustomerOrderHandler{Orders: orders, Menu: menu, Users: users}
}

type checkoutLine struct {
	MenuItemID uint64 `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}

type checkoutReq struct {
	TableID *uint64        `json:"table_id"`
	Items   []checkoutLine `json:"items"`
}

// Checkout places an order for one or more menu items. Every line must
// reference an available item with a positive quantity; the whole order
// is rejected when any line fails, nothing is partially placed.
func (h *CustomerOrderHandler) Checkout(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req checkoutReq
	if err := c.Bind(&req); err != nil || len(req.Items) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "items required"})
	}
	ids := make([]uint64, 0, len(req.Items))
	seen := make(map[uint64]bool, len(req.Items))
	for _, line := range req.Items {
		if line.MenuItemID == 0 || line.Quantity <= 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "each item needs menu_item_id and a positive quantity"})
		}
		if seen[line.MenuItemID] {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "duplicate menu_item_id"})
		}
		seen[line.MenuItemID] = true
		ids = append(ids, line.MenuItemID)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 8*time.Second)
	defer cancel()

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}

	tx, err := h.Orders.DB().BeginTx(ctx, nil)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "begin tx failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	prices, err := h.Menu.GetPricesByIDsTx(ctx, tx, ids)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	var total uint32
	items := make([]model.OrderItem, 0, len(req.Items))
	for _, line := range req.Items {
		price, ok := prices[line.MenuItemID]
		if !ok {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "menu item not available"})
		}
		total += price * uint32(line.Quantity)
		items = append(items, model.OrderItem{
			MenuItemID: line.MenuItemID,
			Quantity:   line.Quantity,
			PriceCents: price,
		})
	}

	uid := userID
	order := &model.Order{
		UserID:       &uid,
		TableID:      req.TableID,
		CustomerName: user.FullName,
		Status:       model.OrderPending,
		TotalCents:   total,
	}
	if err := h.Orders.CreateTx(ctx, tx, order); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create order failed"})
	}
	for i := range items {
		items[i].OrderID = order.ID
	}
	if err := h.Orders.CreateItemsBulkTx(ctx, tx, items); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create order failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	return c.JSON(http.StatusCreated, toOrderView(order, items))
}

// ListMine returns the caller's orders, newest first.
func (h *CustomerOrderHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Orders.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"orders": toOrderViews(list)})
}

// GetMine returns one of the caller's orders with its line items.
func (h *CustomerOrderHandler) GetMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
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
	if order.UserID == nil || *order.UserID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your order"})
	}
	return c.JSON(http.StatusOK, toOrderView(order, items))
}
