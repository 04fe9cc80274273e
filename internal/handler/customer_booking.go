package handler

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cempakacafe/reservation/internal/booking"
	"github.com/cempakacafe/reservation/internal/model"
	"github.com/cempakacafe/reservation/internal/repository"
)

// CustomerBookingHandler lets authenticated customers create
// reservations and follow up on their own bookings. Contact details are
// snapshotted onto the reservation at creation time, and the total
// price is fixed from the chosen package so later price edits never
// rewrite an existing booking.
type CustomerBookingHandler struct {
	Reservations *repository.ReservationRepo
	Packages     *repository.PackageRepo
	Users        *repository.UserRepo
}

func NewCustomerBookingHandler(res *repository.ReservationRepo, pkg *repository.PackageRepo, users *repository.UserRepo) *CustomerBookingHandler {
	if res == nil || pkg == nil || users == nil {
		panic("nil repository passed to NewCustomerBookingHandler")
	}
	return &CustomerBookingHandler{Reservations: res, Packages: pkg, Users: users}
}

type createReservationReq struct {
	Date            string  `json:"date"`
	TimeSlot        string  `json:"time_slot"`
	GuestCount      int     `json:"guest_count"`
	PackageID       uint64  `json:"package_id"`
	Location        string  `json:"location"`
	SpecialRequests *string `json:"special_requests"`
	CustomerName    string  `json:"customer_name"`
	CustomerPhone   string  `json:"customer_phone"`
}

type paymentProofReq struct {
	ProofOfPayment string `json:"proof_of_payment"`
}

// Create books a table request. The slot must still be bookable at the
// time of the call: a known hourly label on a future date, or a label
// later than the current hour today. The booking starts pending and
// waits for staff confirmation.
func (h *CustomerBookingHandler) Create(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	date, err := time.Parse("2006-01-02", strings.TrimSpace(req.Date))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "date must be YYYY-MM-DD"})
	}
	slot := strings.TrimSpace(req.TimeSlot)
	if !booking.ValidSlot(slot) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown time slot"})
	}
	if !slotBookable(date, slot, time.Now()) {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "time slot is no longer bookable"})
	}
	if req.GuestCount <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "guest_count must be a positive integer"})
	}
	location := model.LocationType(strings.TrimSpace(req.Location))
	if !model.ValidLocationType(location) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "location must be indoor, outdoor or private"})
	}
	if req.PackageID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "package_id required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 8*time.Second)
	defer cancel()

	user, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}

	// Contact snapshot defaults to the profile; the form may override
	// when booking on someone else's behalf.
	name := strings.TrimSpace(req.CustomerName)
	if name == "" {
		name = user.FullName
	}
	phone := strings.TrimSpace(req.CustomerPhone)
	if phone == "" && user.Phone != nil {
		phone = *user.Phone
	}
	if phone == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "customer_phone required"})
	}

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

	pkg, err := h.Packages.GetActiveByIDTx(ctx, tx, req.PackageID)
	if err != nil {
		if errors.Is(err, repository.ErrPackageNotFound) {
			return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "package not available"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if pkg.MaxGuests > 0 && req.GuestCount > pkg.MaxGuests {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{"error": "party exceeds package guest limit"})
	}

	code, err := repository.GenerateCode()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "generate code failed"})
	}

	uid := userID
	res := &model.Reservation{
		Code:            code,
		UserID:          &uid,
		CustomerName:    name,
		CustomerPhone:   phone,
		CustomerEmail:   user.Email,
		Date:            date,
		TimeSlot:        slot,
		GuestCount:      req.GuestCount,
		PackageID:       pkg.ID,
		Location:        location,
		SpecialRequests: req.SpecialRequests,
		Status:          model.ReservationPending,
		TotalPriceCents: pkg.PriceCents,
	}
	if err := h.Reservations.CreateTx(ctx, tx, res); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create reservation failed"})
	}
	if err := tx.Commit(); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "commit failed"})
	}
	committed = true

	return c.JSON(http.StatusCreated, toReservationView(res))
}

// slotBookable reports whether the slot still appears among the
// bookable slots for the date. Past dates are never bookable.
func slotBookable(date time.Time, slot string, now time.Time) bool {
	if booking.PastDate(date, now) {
		return false
	}
	for _, s := range booking.SlotsForDate(date, now) {
		if s == slot {
			return true
		}
	}
	return false
}

// ListMine returns the caller's reservations, newest first.
func (h *CustomerBookingHandler) ListMine(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	list, err := h.Reservations.ListByUser(ctx, userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": toReservationViews(list)})
}

// GetMine returns one of the caller's reservations. Someone else's
// booking yields 403, a missing one 404.
func (h *CustomerBookingHandler) GetMine(c echo.Context) error {
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

	res, err := h.Reservations.GetByIDForUser(ctx, id, userID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
		case errors.Is(err, repository.ErrForbidden):
			return c.JSON(http.StatusForbidden, echo.Map{"error": "not your reservation"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toReservationView(res))
}

// AttachPaymentProof records a payment reference on one of the caller's
// pending reservations. The write goes through the versioned update so
// it cannot race a staff transition on the same booking.
func (h *CustomerBookingHandler) AttachPaymentProof(c echo.Context) error {
	userID, err := getUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req paymentProofReq
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.ProofOfPayment) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "proof_of_payment required"})
	}
	proof := strings.TrimSpace(req.ProofOfPayment)

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
	if res.UserID == nil || *res.UserID != userID {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "not your reservation"})
	}
	if res.Status != model.ReservationPending {
		return c.JSON(http.StatusConflict, echo.Map{"error": "reservation is no longer pending"})
	}

	res.ProofOfPayment = &proof
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
