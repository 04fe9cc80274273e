package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // loads .env files in development
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/cempakacafe/reservation/internal/booking"    // booking policies
	"github.com/cempakacafe/reservation/internal/config"     // internal config loader
	"github.com/cempakacafe/reservation/internal/database"   // MySQL connection helper
	"github.com/cempakacafe/reservation/internal/handler"    // HTTP handlers
	"github.com/cempakacafe/reservation/internal/middleware" // cache and rate-limit middleware
	"github.com/cempakacafe/reservation/internal/queue"      // background event consumer
	"github.com/cempakacafe/reservation/internal/repository" // data access layer
	"github.com/cempakacafe/reservation/internal/router"     // route registration
)

func main() {
	// Load .env when present; in production the variables come from the
	// environment and a missing file is not an error.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer func() { _ = db.Close() }()

	// Redis backs the public-route response cache and the rate limiter.
	// A nil client disables both without affecting the rest of the API.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable: response cache and rate limiting disabled")
	}

	// Repositories.
	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	reservations := repository.NewReservationRepo(db)
	tables := repository.NewTableRepo(db)
	packages := repository.NewPackageRepo(db)
	menu := repository.NewMenuRepo(db)
	orders := repository.NewOrderRepo(db)

	policy := booking.ParseTablePolicy(cfg.TableStatusPolicy)

	// Handlers.
	authH := handler.NewAuthHandler(cfg, users, tokens)
	publicH := handler.NewPublicHandler(menu, packages, tables)
	bookingH := handler.NewCustomerBookingHandler(reservations, packages, users)
	orderH := handler.NewCustomerOrderHandler(orders, menu, users)
	staffResH := handler.NewStaffReservationHandler(reservations, tables, packages, policy)
	staffTabH := handler.NewStaffTableHandler(tables, reservations)
	staffOrdH := handler.NewStaffOrderHandler(orders)
	adminMenuH := handler.NewAdminMenuHandler(menu)
	adminPkgH := handler.NewAdminPackageHandler(packages)
	adminTabH := handler.NewAdminTableHandler(tables)
	adminStaffH := handler.NewAdminStaffHandler(cfg, users, tokens)

	e := echo.New()
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)

	// Public browse routes get rate limiting and response caching when
	// Redis is reachable.
	var publicMW []echo.MiddlewareFunc
	if rdb != nil {
		publicMW = append(publicMW,
			middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb),
			middleware.NewRedisCache(config.LoadCacheConfig(), rdb),
		)
	}
	router.RegisterPublic(e, publicH, publicMW...)
	router.RegisterCustomer(e, bookingH, orderH, cfg.JWTSecret)
	router.RegisterStaff(e, staffResH, staffTabH, staffOrdH, cfg.JWTSecret)
	router.RegisterAdmin(e, adminMenuH, adminPkgH, adminTabH, adminStaffH, cfg.JWTSecret)

	// Background consumer for reservation.confirmed events. It reconnects
	// on its own; a broker outage only costs the event log.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("queue consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s, table policy=%s)", addr, cfg.Env, policy)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
