package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/iliyamo/meeting-room-booking/internal/config"
	"github.com/iliyamo/meeting-room-booking/internal/database"
	"github.com/iliyamo/meeting-room-booking/internal/handler"
	"github.com/iliyamo/meeting-room-booking/internal/logger"
	"github.com/iliyamo/meeting-room-booking/internal/middleware"
	"github.com/iliyamo/meeting-room-booking/internal/queue"
	"github.com/iliyamo/meeting-room-booking/internal/repository"
	"github.com/iliyamo/meeting-room-booking/internal/router"
	queue_publisher "github.com/iliyamo/meeting-room-booking/internal/service"
)

func main() {
	_ = godotenv.Load() // .env is optional; real deployments export vars

	cfg := config.Load()
	log := logger.New(cfg.Env)

	gdb, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatal().Err(err).Msg("connect database")
	}
	if err := database.Migrate(gdb); err != nil {
		log.Fatal().Err(err).Msg("migrate database")
	}

	users := repository.NewUserRepo(gdb)
	rooms := repository.NewRoomRepo(gdb)
	bookings := repository.NewBookingRepo(gdb)

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	if err := database.EnsureAdmin(seedCtx, users, cfg.AdminEmail, cfg.AdminName, cfg.AdminPass, cfg.BcryptCost); err != nil {
		log.Fatal().Err(err).Msg("seed admin account")
	}
	if err := database.SeedRooms(seedCtx, rooms); err != nil {
		log.Fatal().Err(err).Msg("seed rooms")
	}
	cancelSeed()

	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Warn().Msg("redis unavailable, cache and rate limiting disabled")
	}

	go queue.StartBookingConsumer(queue_publisher.BrokerURL())

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(middleware.RequestLogger(log))

	h := router.APIHandlers{
		Auth:     handler.NewAuthHandler(cfg, users),
		Rooms:    handler.NewRoomHandler(rooms),
		Bookings: handler.NewBookingHandler(bookings, rooms, true),
		Stats:    handler.NewStatsHandler(rooms, bookings),
	}
	router.RegisterRoutes(e)
	router.RegisterAPI(e, h, cfg, rdb)
	router.RegisterPages(e, cfg.JWTSecret)

	addr := ":" + cfg.Port
	log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("listening")

	go func() {
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("shutdown http server")
	}
	if err := database.Close(gdb); err != nil {
		log.Error().Err(err).Msg("close database")
	}
	if rdb != nil {
		_ = rdb.Close()
	}
}
