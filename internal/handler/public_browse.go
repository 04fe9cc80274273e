package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cempakacafe/reservation/internal/booking"
	"github.com/cempakacafe/reservation/internal/model"
	"github.com/cempakacafe/reservation/internal/repository"
)

// PublicHandler serves the unauthenticated browse surface: the menu,
// the reservation packages, the bookable time slots for a date and the
// table availability check that backs the booking form. These routes
// sit behind the Redis response cache and the rate limiter.
type PublicHandler struct {
	Menu     *repository.MenuRepo
	Packages *repository.PackageRepo
	Tables   *repository.TableRepo
}

func NewPublicHandler(menu *repository.MenuRepo, pkg *repository.PackageRepo, tab *repository.TableRepo) *PublicHandler {
	if menu == nil || pkg == nil || tab == nil {
		panic("nil repository passed to NewPublicHandler")
	}
	return &PublicHandler{Menu: menu, Packages: pkg, Tables: tab}
}

// MenuList returns available menu items, optionally filtered by
// ?category= (food, drink, dessert and so on, free-form).
func (h *PublicHandler) MenuList(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	items, err := h.Menu.ListAvailable(ctx, strings.TrimSpace(c.QueryParam("category")))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"items": toMenuItemViews(items)})
}

// PackageList returns the active reservation packages.
func (h *PublicHandler) PackageList(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pkgs, err := h.Packages.ListActive(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"packages": toPackageViews(pkgs)})
}

// Slots returns the bookable time slots for ?date=YYYY-MM-DD. Dates in
// the past and expired same-day hours yield an empty list rather than
// an error so the booking form can render it directly.
func (h *PublicHandler) Slots(c echo.Context) error {
	raw := strings.TrimSpace(c.QueryParam("date"))
	if raw == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date required"})
	}
	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	now := time.Now()
	slots := []string{}
	if !booking.PastDate(date, now) {
		slots = booking.SlotsForDate(date, now)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"date":  raw,
		"slots": slots,
	})
}

// Availability lists tables that could seat a party, given
// ?guest_count= and ?location=. Only tables currently marked available
// are offered; the result is ordered smallest suitable table first.
func (h *PublicHandler) Availability(c echo.Context) error {
	guests, err := strconv.Atoi(strings.TrimSpace(c.QueryParam("guest_count")))
	if err != nil || guests <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "guest_count must be a positive integer"})
	}
	location := model.LocationType(strings.TrimSpace(c.QueryParam("location")))
	if !model.ValidLocationType(location) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "location must be indoor, outdoor or private"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	inventory, err := h.Tables.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	eligible := booking.EligibleTables(inventory, guests, location, nil)
	return c.JSON(http.StatusOK, echo.Map{"tables": toTableViews(eligible)})
}
