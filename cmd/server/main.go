package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/orderpro/marketplace/internal/auth"
	"github.com/orderpro/marketplace/internal/config"
	"github.com/orderpro/marketplace/internal/handlers"
	"github.com/orderpro/marketplace/internal/middleware"
	"github.com/orderpro/marketplace/internal/models"
	"github.com/orderpro/marketplace/internal/service"
	"github.com/orderpro/marketplace/internal/storage"
	"github.com/orderpro/marketplace/internal/storage/memory"
	"github.com/orderpro/marketplace/internal/storage/sqlite"
	"github.com/orderpro/marketplace/pkg/logging"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to YAML config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Log.Level, cfg.Log.Format)

	store, err := openStore(cfg.Storage)
	if err != nil {
		slog.Error("failed to initialize storage", "backend", cfg.Storage.Backend, "error", err)
		os.Exit(1)
	}
	defer store.Close()
	slog.Info("storage initialized", "backend", cfg.Storage.Backend)

	secret := cfg.Auth.Secret
	if secret == "" {
		// Tokens signed with an ephemeral secret die with the process.
		secret = randomSecret()
		slog.Warn("no auth secret configured, sessions will not survive restarts")
	}
	jwtManager := auth.NewJWTManager(secret, cfg.Auth.TokenTTL)

	logger := slog.Default()
	directory := service.NewDirectoryService(store, logger)
	invoices := service.NewInvoiceService(store, logger)
	bids := service.NewBidService(store, invoices, logger)
	stats := service.NewStatsService(store, logger)

	if cfg.Storage.Seed {
		seedActors(directory)
	}

	limiter := middleware.NewRateLimiter(cfg.Limits.RequestsPerSecond, cfg.Limits.Burst)
	handler := handlers.New(directory, invoices, bids, stats, jwtManager, limiter)

	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      handler.SetupRoutes(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	go func() {
		slog.Info("marketplace server starting", "addr", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("forced shutdown", "error", err)
	}
	slog.Info("server stopped")
}

func openStore(cfg config.StorageConfig) (storage.Store, error) {
	if cfg.Backend == "sqlite" {
		return sqlite.New(cfg.Path)
	}
	return memory.New(), nil
}

func randomSecret() string {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		slog.Error("failed to generate session secret", "error", err)
		os.Exit(1)
	}
	return hex.EncodeToString(buf)
}

// seedActors provisions demo accounts, including the only admin, when their
// phone numbers are still free. Registration cannot create admins, so a
// fresh deployment gets its admin here.
func seedActors(directory *service.DirectoryService) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	seeds := []models.Actor{
		{Name: "Hope Grocery", Phone: "771234567", Role: models.RoleGrocery, Address: "Sanaa, Al-Zubairi Street"},
		{Name: "Wholesale Trader", Phone: "772345678", Role: models.RoleMerchant, Address: "Sanaa, Airport Road"},
		{Name: "Administrator", Phone: "773456789", Role: models.RoleAdmin, Address: "Sanaa"},
	}
	for _, seed := range seeds {
		if existing, err := directory.FindByPhone(ctx, seed.Phone); err == nil && existing != nil {
			continue
		}
		if err := directory.Provision(ctx, &seed); err != nil {
			slog.Warn("failed to seed actor", "phone", seed.Phone, "error", err)
		}
	}
}
