package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	_ "appointment-booking-api/docs" // swagger docs

	"appointment-booking-api/internal/auth"
	"appointment-booking-api/internal/cache"
	"appointment-booking-api/internal/config"
	"appointment-booking-api/internal/grpcweb"
	"appointment-booking-api/internal/handler"
	"appointment-booking-api/internal/middleware"
	"appointment-booking-api/internal/router"
	"appointment-booking-api/internal/rpc"
	"appointment-booking-api/internal/service"
	"appointment-booking-api/internal/store"
	"appointment-booking-api/internal/store/memory"
)

// @title Appointment Booking API
// @version 1.0
// @description Patients book fixed time slots; admins see and cancel every booking.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "err", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	repo, closeRepo, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer closeRepo()

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer cacheClient.Close()
	if cacheClient.Enabled() {
		if err := cacheClient.Ping(ctx); err != nil {
			log.Warn("redis unreachable, revoked tokens are not enforced until it recovers", "err", err)
		}
	}

	svc := service.New(repo, service.Options{
		Secret:      cfg.JWTSecret,
		TokenTTL:    cfg.TokenTTL,
		Slots:       cfg.Slots,
		Revocations: auth.NewTokenStore(cacheClient),
		Logger:      log,
	})

	if _, err := svc.Identity.SeedAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	from, to := svc.Slots.DefaultRange()
	if _, err := svc.Slots.EnsureSlots(ctx, from, to); err != nil {
		return fmt.Errorf("generate slots: %w", err)
	}

	rl := middleware.NewRateLimiter(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst)

	// grpc server
	gs := rpc.NewGRPCServer(log, rl.Unary(rpc.FullMethod("Register"), rpc.FullMethod("Login")))
	rpc.RegisterBookingService(gs, rpc.NewServer(svc))
	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		return fmt.Errorf("listen: %w", err)
	}

	// grpc-web bridge -> forwards browser requests to grpc on localhost
	conn, err := grpc.NewClient("localhost:"+cfg.GRPCPort,
		grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return fmt.Errorf("grpc-web dial: %w", err)
	}
	defer conn.Close()

	e := router.New(cfg, handler.New(svc, log), rl, grpcweb.New(conn, log), log)

	errc := make(chan error, 2)
	go func() {
		log.Info("grpc listening", "port", cfg.GRPCPort)
		if err := gs.Serve(lis); err != nil {
			errc <- fmt.Errorf("grpc: %w", err)
		}
	}()
	go func() {
		log.Info("http listening", "port", cfg.Port)
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- fmt.Errorf("http: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("shutting down")
	case runErr = <-errc:
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Warn("http shutdown", "err", err)
	}
	gs.GracefulStop()
	return runErr
}

// openStore picks the repository implementation. The returned func releases
// it on shutdown.
func openStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (service.Repository, func(), error) {
	if cfg.StoreDriver == "memory" {
		log.Warn("using in-memory store, data is lost on restart")
		return memory.New(), func() {}, nil
	}

	pool, err := store.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return nil, nil, err
	}
	st := store.New(pool)
	if err := st.Migrate(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("migrate: %w", err)
	}
	log.Info("connected to postgres")
	return st, pool.Close, nil
}
