package main // Entry point package

import (
	"context"
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-reservation/internal/config"
	"github.com/iliyamo/hotel-reservation/internal/database"
	"github.com/iliyamo/hotel-reservation/internal/handler"
	"github.com/iliyamo/hotel-reservation/internal/middleware"
	"github.com/iliyamo/hotel-reservation/internal/queue"
	"github.com/iliyamo/hotel-reservation/internal/repository"
	"github.com/iliyamo/hotel-reservation/internal/router"
	"github.com/iliyamo/hotel-reservation/internal/utils"
)

func main() {
	// .env is optional; real deployments set env vars directly.
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	if err := database.EnsureSchema(ctx, db, cfg.AdminEmail, cfg.AdminPass, cfg.BcryptCost); err != nil {
		cancel()
		log.Fatalf("schema: %v", err)
	}
	cancel()

	users := repository.NewUserRepo(db)
	tokens := repository.NewTokenRepo(db)
	clients := repository.NewClientRepo(db)
	rooms := repository.NewRoomRepo(db)
	reservations := repository.NewReservationRepo(db)
	payments := repository.NewPaymentRepo(db)

	authH := handler.NewAuthHandler(cfg, users, clients, tokens)
	availH := handler.NewAvailabilityHandler(rooms)
	resH := handler.NewReservationHandler(reservations, clients, rooms)
	clientH := handler.NewClientHandler(clients)
	payH := handler.NewPaymentHandler(payments, reservations)

	e := echo.New()
	e.HideBanner = true
	e.Validator = utils.NewRequestValidator()

	// Rate limiting is backed by Redis and fails open: if Redis is
	// down or unconfigured, requests pass through unthrottled.
	rlCfg := config.LoadRateLimitConfig()
	if rlCfg.Enabled {
		if rdb := config.NewRedisClient(); rdb != nil {
			e.Use(middleware.NewTokenBucket(rlCfg, rdb))
		} else {
			log.Printf("redis unavailable, rate limiting disabled")
		}
	}

	router.RegisterRoutes(e)
	router.RegisterAuth(e, authH, cfg.JWTSecret)
	router.RegisterReservations(e, cfg.JWTSecret, availH, resH, clientH, payH)

	// Audit trail consumer; runs its own reconnect loop forever.
	go func() {
		if err := queue.StartReservationConsumer(); err != nil {
			log.Printf("reservation consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)
	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
