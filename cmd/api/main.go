package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/01moynul/storefront-api/internal/auth"
	"github.com/01moynul/storefront-api/internal/cart"
	"github.com/01moynul/storefront-api/internal/catalog"
	"github.com/01moynul/storefront-api/internal/config"
	"github.com/01moynul/storefront-api/internal/database"
	"github.com/01moynul/storefront-api/internal/handlers"
	"github.com/01moynul/storefront-api/internal/logger"
	"github.com/01moynul/storefront-api/internal/orders"
	"github.com/01moynul/storefront-api/internal/routes"
	"github.com/01moynul/storefront-api/internal/store"
	"github.com/01moynul/storefront-api/internal/users"
)

func main() {
	// 0. --- Load Environment Variables (.env) ---
	// A missing .env is fine; the process environment is used as is.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	lg, err := logger.New(cfg.Logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(2)
	}
	defer func() { _ = lg.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(zctx.Base(ctx, lg), cfg); err != nil {
		lg.Error("Server failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	lg := zctx.From(ctx)

	// Money is rendered as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	// 1. --- Database Connection ---
	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		return errors.Wrap(err, "open database")
	}
	defer func() { _ = db.Close() }()

	if cfg.Database.Migrate {
		if err := database.Migrate(ctx, db); err != nil {
			return errors.Wrap(err, "migrate")
		}
		lg.Info("Schema applied")
	}

	// 2. --- Stores ---
	var (
		productStore = store.NewProductStore(db)
		stockStore   = store.NewStockStore(db)
		cartStore    = store.NewCartStore(db)
		orderStore   = store.NewOrderStore(db)
		profileStore = store.NewProfileStore(db)
		addressStore = store.NewAddressStore(db)
		userStore    = store.NewUserStore(db)
	)

	// 3. --- Services ---
	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	app := &handlers.Handlers{
		Auth:    auth.NewService(userStore, tokens),
		Catalog: catalog.NewService(productStore, stockStore),
		Cart:    cart.NewService(cartStore, productStore),
		Orders: orders.NewService(store.NewUnitOfWork(db), orderStore, orders.Options{
			DefaultPaymentMethod: cfg.Orders.DefaultPaymentMethod,
			TrustClientPrices:    cfg.Orders.TrustClientPrices,
		}),
		Users:             users.NewService(userStore, profileStore, addressStore),
		Stats:             orderStore,
		LowStockThreshold: cfg.Admin.LowStockThreshold,
	}

	// 4. --- Router Setup ---
	router := routes.SetupRouter(app, routes.Options{
		Tokens: tokens,
		Logger: lg,
		CORS:   cfg.CORS,
		Debug:  cfg.Debug,
		Health: db.PingContext,
	})

	server := &http.Server{
		Addr:              cfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: time.Second,
		ReadTimeout:       5 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	// 5. --- Serve until a signal arrives ---
	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		lg.Info("Server listening", zap.String("addr", cfg.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return errors.Wrap(err, "listen")
		}
		return nil
	})
	g.Go(func() error {
		<-gCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Graceful.ShutdownTimeout)
		defer cancel()

		lg.Info("Shutting down server", zap.Duration("timeout", cfg.Graceful.ShutdownTimeout))
		if err := server.Shutdown(shutdownCtx); err != nil {
			return errors.Wrap(err, "shutdown")
		}
		return nil
	})
	return g.Wait()
}
