package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/cempakacafe/reservation/internal/handler"    // import the handlers that implement business logic
	"github.com/cempakacafe/reservation/internal/middleware" // import middleware for JWT authentication and role enforcement
	"github.com/cempakacafe/reservation/internal/repository" // repository exports the role constants used for route guards
)

// RegisterRoutes registers routes that do not require authentication on the
// provided Echo instance.  Currently it exposes only a health check.
func RegisterRoutes(e *echo.Echo) {
	// Map the GET request at path "/healthz" to the Health handler.  This
	// endpoint can be used by load balancers or monitoring systems to verify
	// that the service is up and running.
	e.GET("/healthz", handler.Health)
}

// RegisterAuth registers all authentication-related routes and applies the
// necessary middleware.  Unauthenticated operations live under /v1/auth,
// while protected endpoints live under /v1.
func RegisterAuth(e *echo.Echo, a *handler.AuthHandler, jwtSecret string) {
	// Operations that do not require an existing session (register, login,
	// refresh).  Each of these handlers is responsible for generating or
	// exchanging tokens.  Public registration always creates a CUSTOMER.
	g := e.Group("/v1/auth")
	g.POST("/register", a.Register)
	g.POST("/login", a.Login)
	// Rotates the refresh token.
	g.POST("/refresh", a.Refresh)
	// Issues a new access token without rotating the refresh token.
	g.POST("/refresh-access", a.RefreshAccess)
	// Logout does not require JWT authentication: the handler accepts a JSON
	// body containing a `refresh_token` or a bearer access token and
	// invalidates the matching session(s).
	g.POST("/logout", a.Logout)

	// Any authenticated caller, regardless of role, can inspect its own
	// identity.
	auth := e.Group("/v1")
	auth.Use(middleware.JWTAuth(jwtSecret))
	auth.Use(middleware.RequireRole(repository.RoleAdmin, repository.RoleStaff, repository.RoleCustomer))
	auth.GET("/me", a.Me)

	// Kept at the top level as well so clients can call either
	// /v1/auth/logout or /v1/logout with a valid refresh token in the body.
	e.POST("/v1/logout", a.Logout)
}

// RegisterPublic registers the unauthenticated browse endpoints: the menu,
// the reservation packages, the slot calculator and the availability
// matcher behind the booking form.  These routes carry the Redis response
// cache and the rate limiter instead of any auth middleware.
func RegisterPublic(e *echo.Echo, p *handler.PublicHandler, mws ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mws...)
	g.GET("/menu", p.MenuList)
	g.GET("/packages", p.PackageList)
	g.GET("/slots", p.Slots)
	g.GET("/tables/availability", p.Availability)
}

// RegisterCustomer registers the endpoints an authenticated customer uses:
// creating reservations, attaching payment proof, checking out menu orders
// and reading back their own bookings and orders.
func RegisterCustomer(e *echo.Echo, b *handler.CustomerBookingHandler, o *handler.CustomerOrderHandler, jwtSecret string) {
	g := e.Group("/v1")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(repository.RoleCustomer, repository.RoleStaff, repository.RoleAdmin))

	g.POST("/reservations", b.Create)
	g.GET("/my/reservations", b.ListMine)
	g.GET("/my/reservations/:id", b.GetMine)
	g.POST("/my/reservations/:id/payment-proof", b.AttachPaymentProof)

	g.POST("/orders", o.Checkout)
	g.GET("/my/orders", o.ListMine)
	g.GET("/my/orders/:id", o.GetMine)
}

// RegisterStaff registers the floor and kitchen endpoints.  STAFF and ADMIN
// may use them; customers are rejected by the role middleware.
func RegisterStaff(e *echo.Echo, r *handler.StaffReservationHandler, t *handler.StaffTableHandler, o *handler.StaffOrderHandler, jwtSecret string) {
	g := e.Group("/v1/staff")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(repository.RoleStaff, repository.RoleAdmin))

	g.GET("/reservations", r.List)
	g.GET("/reservations/pending", r.ListPending)
	g.GET("/reservations/:id", r.Get)
	g.POST("/reservations/:id/confirm", r.Confirm)
	g.POST("/reservations/:id/cancel", r.Cancel)
	g.POST("/reservations/:id/complete", r.Complete)
	g.POST("/reservations/:id/table", r.AssignTable)

	g.GET("/tables", t.List)
	g.PATCH("/tables/:id/status", t.SetStatus)
	g.GET("/tables/:id/reservations", t.ReservationHistory)

	g.GET("/orders", o.List)
	g.GET("/orders/pending", o.ListPending)
	g.GET("/orders/:id", o.Get)
	g.PATCH("/orders/:id/status", o.SetStatus)
}

// RegisterAdmin registers the back-office endpoints: catalogue and table
// inventory management plus staff account provisioning.  ADMIN only.
func RegisterAdmin(e *echo.Echo, m *handler.AdminMenuHandler, p *handler.AdminPackageHandler, t *handler.AdminTableHandler, s *handler.AdminStaffHandler, jwtSecret string) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireRole(repository.RoleAdmin))

	g.GET("/menu", m.List)
	g.POST("/menu", m.Create)
	g.PUT("/menu/:id", m.Update)
	g.DELETE("/menu/:id", m.Delete)

	g.GET("/packages", p.List)
	g.POST("/packages", p.Create)
	g.PUT("/packages/:id", p.Update)
	g.DELETE("/packages/:id", p.Delete)

	g.POST("/tables", t.Create)
	g.PUT("/tables/:id", t.Update)
	g.DELETE("/tables/:id", t.Delete)

	g.POST("/staff", s.CreateStaff)
	g.GET("/staff", s.ListStaff)
	g.GET("/customers", s.ListCustomers)
	g.PATCH("/users/:id/active", s.SetActive)
}
