package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cempakacafe/reservation/internal/model"
	"github.com/cempakacafe/reservation/internal/repository"
)

// AdminTableHandler manages the physical table inventory. Day-to-day
// status changes belong to the staff surface; this handler covers the
// descriptive attributes and the inventory itself.
type AdminTableHandler struct {
	Tables *repository.TableRepo
}

func NewAdminTableHandler(tab *repository.TableRepo) *AdminTableHandler {
	if tab == nil {
		panic("nil repository passed to NewAdminTableHandler")
	}
	return &AdminTableHandler{Tables: tab}
}

type tableReq struct {
	Number         uint32  `json:"number"`
	DisplayName    string  `json:"display_name"`
	Capacity       int     `json:"capacity"`
	LocationType   string  `json:"location_type"`
	LocationDetail *string `json:"location_detail"`
}

func (r *tableReq) validate() string {
	r.DisplayName = strings.TrimSpace(r.DisplayName)
	if r.Number == 0 {
		return "number must be positive"
	}
	if r.DisplayName == "" {
		return "display_name required"
	}
	if r.Capacity <= 0 {
		return "capacity must be positive"
	}
	if !model.ValidLocationType(model.LocationType(r.LocationType)) {
		return "location_type must be indoor, outdoor or private"
	}
	return ""
}

func (h *AdminTableHandler) Create(c echo.Context) error {
	var req tableReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	table := &model.Table{
		Number:         req.Number,
		DisplayName:    req.DisplayName,
		Capacity:       req.Capacity,
		LocationType:   model.LocationType(req.LocationType),
		LocationDetail: req.LocationDetail,
		Status:         model.TableAvailable, // new tables start available
	}
	if err := h.Tables.Create(ctx, table); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create table failed"})
	}
	return c.JSON(http.StatusCreated, toTableView(table))
}

func (h *AdminTableHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req tableReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
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

	table.Number = req.Number
	table.DisplayName = req.DisplayName
	table.Capacity = req.Capacity
	table.LocationType = model.LocationType(req.LocationType)
	table.LocationDetail = req.LocationDetail
	if err := h.Tables.Update(ctx, table); err != nil {
		if errors.Is(err, repository.ErrTableNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update table failed"})
	}
	return c.JSON(http.StatusOK, toTableView(table))
}

func (h *AdminTableHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Tables.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrTableNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "table is referenced by reservations"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete table failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
