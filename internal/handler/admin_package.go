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

// AdminPackageHandler manages reservation packages. Packages referenced
// by reservations cannot be deleted, only deactivated.
type AdminPackageHandler struct {
	Packages *repository.PackageRepo
}

func NewAdminPackageHandler(pkg *repository.PackageRepo) *AdminPackageHandler {
	if pkg == nil {
		panic("nil repository passed to NewAdminPackageHandler")
	}
	return &AdminPackageHandler{Packages: pkg}
}

type packageReq struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	PriceCents  uint32 `json:"price_cents"`
	MaxGuests   int    `json:"max_guests"`
	Inclusions  string `json:"inclusions"`
	IsActive    *bool  `json:"is_active"`
}

func (r *packageReq) validate() string {
	r.Name = strings.TrimSpace(r.Name)
	if r.Name == "" {
		return "name required"
	}
	if r.PriceCents == 0 {
		return "price_cents must be positive"
	}
	if r.MaxGuests < 0 {
		return "max_guests cannot be negative"
	}
	return ""
}

func (h *AdminPackageHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pkgs, err := h.Packages.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"packages": toPackageViews(pkgs)})
}

func (h *AdminPackageHandler) Create(c echo.Context) error {
	var req packageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pkg := &model.Package{
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		MaxGuests:   req.MaxGuests,
		Inclusions:  req.Inclusions,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	if err := h.Packages.Create(ctx, pkg); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create package failed"})
	}
	return c.JSON(http.StatusCreated, toPackageView(pkg))
}

func (h *AdminPackageHandler) Update(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req packageReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pkg := &model.Package{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		PriceCents:  req.PriceCents,
		MaxGuests:   req.MaxGuests,
		Inclusions:  req.Inclusions,
		IsActive:    req.IsActive == nil || *req.IsActive,
	}
	if err := h.Packages.Update(ctx, pkg); err != nil {
		if errors.Is(err, repository.ErrPackageNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "package not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update package failed"})
	}
	return c.JSON(http.StatusOK, toPackageView(pkg))
}

func (h *AdminPackageHandler) Delete(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Packages.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrPackageNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "package not found"})
		case errors.Is(err, repository.ErrConflict):
			return c.JSON(http.StatusConflict, echo.Map{"error": "package is referenced by reservations, deactivate it instead"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete package failed"})
	}
	return c.NoContent(http.StatusNoContent)
}
