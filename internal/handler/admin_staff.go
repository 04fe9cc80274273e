package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/cempakacafe/reservation/internal/config"
	"github.com/cempakacafe/reservation/internal/model"
	"github.com/cempakacafe/reservation/internal/repository"
)

// AdminStaffHandler manages staff accounts and the customer roster.
// Only admins reach these routes; STAFF accounts cannot self-register.
type AdminStaffHandler struct {
	Cfg    config.Config
	Users  *repository.UserRepo
	Tokens *repository.TokenRepo
}

func NewAdminStaffHandler(cfg config.Config, users *repository.UserRepo, tokens *repository.TokenRepo) *AdminStaffHandler {
	if users == nil || tokens == nil {
		panic("nil repository passed to NewAdminStaffHandler")
	}
	return &AdminStaffHandler{Cfg: cfg, Users: users, Tokens: tokens}
}

type createStaffReq struct {
	Email    string  `json:"email"`
	Password string  `json:"password"`
	FullName string  `json:"full_name"`
	Phone    *string `json:"phone"`
}

type setActiveReq struct {
	Active bool `json:"active"`
}

type accountView struct {
	ID       uint64  `json:"id"`
	Email    string  `json:"email"`
	FullName string  `json:"full_name"`
	Phone    *string `json:"phone,omitempty"`
	Role     string  `json:"role"`
	IsActive bool    `json:"is_active"`
	Created  string  `json:"created_at"`
}

func toAccountView(u model.User) accountView {
	return accountView{
		ID:       u.ID,
		Email:    u.Email,
		FullName: u.FullName,
		Phone:    u.Phone,
		Role:     u.Role,
		IsActive: u.IsActive,
		Created:  u.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// CreateStaff provisions a STAFF account.
func (h *AdminStaffHandler) CreateStaff(c echo.Context) error {
	var req createStaffReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)
	if req.Email == "" || req.Password == "" || req.FullName == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password/full_name required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	uid, err := h.Users.Create(ctx, req.Email, req.Password, req.FullName, req.Phone, repository.RoleStaff, h.Cfg.BcryptCost)
	if err != nil {
		if err == repository.ErrEmailExists {
			return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create user failed"})
	}

	u, err := h.Users.GetByID(ctx, uid)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "load user failed"})
	}
	return c.JSON(http.StatusCreated, toAccountView(u))
}

// ListStaff returns all STAFF accounts, newest first.
func (h *AdminStaffHandler) ListStaff(c echo.Context) error {
	return h.listByRole(c, repository.RoleStaff)
}

// ListCustomers returns all CUSTOMER accounts, newest first.
func (h *AdminStaffHandler) ListCustomers(c echo.Context) error {
	return h.listByRole(c, repository.RoleCustomer)
}

func (h *AdminStaffHandler) listByRole(c echo.Context, role string) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.Users.ListByRole(ctx, role)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]accountView, 0, len(users))
	for _, u := range users {
		out = append(out, toAccountView(u))
	}
	return c.JSON(http.StatusOK, echo.Map{"users": out})
}

// SetActive activates or deactivates an account. Deactivating also
// revokes every refresh token so open sessions die with the account.
func (h *AdminStaffHandler) SetActive(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid id"})
	}
	var req setActiveReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.Users.SetActive(ctx, id, req.Active); err != nil {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
	}
	if !req.Active {
		if err := h.Tokens.RevokeAllForUser(ctx, id); err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "revoke sessions failed"})
		}
	}
	return c.NoContent(http.StatusNoContent)
}
