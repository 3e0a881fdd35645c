package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/retailpos-api/internal/application/service"
	"github.com/sangkips/retailpos-api/internal/config"
	domainRepo "github.com/sangkips/retailpos-api/internal/domain/repository"
	"github.com/sangkips/retailpos-api/internal/infrastructure/cache"
	"github.com/sangkips/retailpos-api/internal/infrastructure/database"
	"github.com/sangkips/retailpos-api/internal/infrastructure/firestore"
	"github.com/sangkips/retailpos-api/internal/infrastructure/memory"
	"github.com/sangkips/retailpos-api/internal/infrastructure/metrics"
	"github.com/sangkips/retailpos-api/internal/infrastructure/pdf"
	"github.com/sangkips/retailpos-api/internal/infrastructure/repository"
	"github.com/sangkips/retailpos-api/internal/presentation/http/handler"
	"github.com/sangkips/retailpos-api/internal/presentation/http/middleware"
	"github.com/sangkips/retailpos-api/internal/presentation/http/routes"
	"github.com/sangkips/retailpos-api/pkg/logging"
	"github.com/sangkips/retailpos-api/pkg/oauth"
	"github.com/sangkips/retailpos-api/pkg/printer"
	"github.com/sangkips/retailpos-api/pkg/utils"
)

// dataStore is satisfied by the postgres, firestore and memory stores.
type dataStore interface {
	Products() domainRepo.ProductRepository
	Categories() domainRepo.CategoryRepository
	Bills() domainRepo.BillRepository
	Settings() domainRepo.SettingsRepository
	AuthorizedUsers() domainRepo.AuthorizedUserRepository
}

// openStore connects the backend named by STORE_DRIVER. The returned func
// releases it.
func openStore(ctx context.Context, cfg *config.Config) (dataStore, func(), error) {
	switch cfg.Store.Driver {
	case config.StorePostgres:
		db, err := database.NewPostgresDB(&cfg.Database, cfg.App.Debug)
		if err != nil {
			return nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			database.Close(db)
			return nil, nil, err
		}
		return repository.NewStore(db), func() { database.Close(db) }, nil
	case config.StoreFirestore:
		client, err := database.NewFirestoreClient(ctx, &cfg.Firestore)
		if err != nil {
			return nil, nil, err
		}
		return firestore.NewStore(client), func() { _ = client.Close() }, nil
	case config.StoreMemory:
		slog.Warn("using in-memory store, data is lost on restart")
		return memory.NewStore(), func() {}, nil
	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}
}

// openCache prefers Redis and falls back to process memory when it is not
// configured or not reachable.
func openCache(ctx context.Context, cfg *config.RedisConfig) (cache.Store, func()) {
	if cfg.Addr == "" {
		return cache.NewMemoryStore(), func() {}
	}
	redisStore := cache.NewRedisStore(cfg.Addr, cfg.Password, cfg.DB, "retailpos:")
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := redisStore.Ping(pingCtx); err != nil {
		slog.Warn("redis unavailable, caching in memory", "addr", cfg.Addr, "error", err)
		_ = redisStore.Close()
		return cache.NewMemoryStore(), func() {}
	}
	return redisStore, func() { _ = redisStore.Close() }
}

func main() {
	// Load configuration
	cfg := config.Load()
	logger := logging.Setup(cfg.Log.Level, cfg.App.Env)

	// Set Gin mode based on environment
	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx := context.Background()

	store, closeStore, err := openStore(ctx, cfg)
	if err != nil {
		logger.Error("failed to open store", "driver", cfg.Store.Driver, "error", err)
		os.Exit(1)
	}
	defer closeStore()

	cacheStore, closeCache := openCache(ctx, &cfg.Redis)
	defer closeCache()

	m := metrics.New()

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(cfg.JWT.Secret, cfg.JWT.ExpiryHours)

	// Initialize Google OAuth service
	googleOAuthService := oauth.NewGoogleOAuthService(oauth.GoogleOAuthConfig{
		ClientID:           cfg.OAuth.GoogleClientID,
		ClientSecret:       cfg.OAuth.GoogleClientSecret,
		RedirectURL:        cfg.OAuth.GoogleRedirectURL,
		FrontendSuccessURL: cfg.OAuth.FrontendSuccessURL,
		FrontendErrorURL:   cfg.OAuth.FrontendErrorURL,
	})

	// Initialize services
	guard := service.NewAccessGuard(store.AuthorizedUsers(), cfg.Access.MasterEmail, logger)
	authService := service.NewAuthService(guard, googleOAuthService, jwtManager)
	productService := service.NewProductService(store.Products())
	categoryService := service.NewCategoryService(store.Categories())
	reportService := service.NewReportService(store.Bills(), cacheStore, cfg.Redis.ReportCacheTTL, m, logger)
	billingService := service.NewBillingService(store.Bills(), store.Products(), m, cfg.App.Location(), reportService)
	customerService := service.NewCustomerService(store.Bills())
	settingsService := service.NewSettingsService(store.Settings())
	invoiceService := service.NewInvoiceService(billingService, settingsService, pdf.NewRenderer(logger), m, logger, service.InvoiceOptions{
		CurrencySymbol:      cfg.Invoice.CurrencySymbol,
		LogoPath:            cfg.Invoice.LogoPath,
		PublicBaseURL:       cfg.App.PublicBaseURL,
		WhatsAppCountryCode: cfg.Invoice.WhatsAppCountryCode,
	})

	if err := guard.EnsureMaster(ctx); err != nil {
		logger.Error("failed to seed master account", "error", err)
		os.Exit(1)
	}
	if err := settingsService.EnsureCompany(ctx); err != nil {
		logger.Warn("failed to seed company settings", "error", err)
	}

	// Initialize thermal printer
	thermalPrinter, err := printer.NewPrinterFromConfig(
		cfg.Printer.Type,
		cfg.Printer.USBPath,
		cfg.Printer.Address,
	)
	if err != nil {
		logger.Warn("failed to initialize printer", "error", err)
		thermalPrinter = printer.NewNullPrinter()
	}
	defer thermalPrinter.Close()
	printerService := service.NewPrinterService(thermalPrinter, billingService, settingsService, cfg.Printer.Type, logger)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth: handler.NewAuthHandler(authService, handler.AuthRedirects{
			SuccessURL:   googleOAuthService.GetFrontendSuccessURL(),
			ErrorURL:     googleOAuthService.GetFrontendErrorURL(),
			SecureCookie: cfg.App.Env == "production",
		}),
		Product:  handler.NewProductHandler(productService),
		Category: handler.NewCategoryHandler(categoryService),
		Bill:     handler.NewBillHandler(billingService, invoiceService, printerService),
		Customer: handler.NewCustomerHandler(customerService),
		Report:   handler.NewReportHandler(reportService),
		Settings: handler.NewSettingsHandler(settingsService),
		Printer:  handler.NewPrinterHandler(printerService),
		Access:   handler.NewAccessHandler(guard),
		Public:   handler.NewPublicHandler(invoiceService),
	}

	rateLimiter := middleware.NewIdentityRateLimiter(middleware.RateLimiterConfigFor(
		cfg.RateLimit.Requests,
		time.Duration(cfg.RateLimit.Duration)*time.Second,
	))
	defer rateLimiter.Stop()

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		Cfg:         cfg,
		AuthService: authService,
		Metrics:     m,
		Cache:       cacheStore,
		RateLimiter: rateLimiter,
		Logger:      logger,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("starting server", "name", cfg.App.Name, "port", port, "env", cfg.App.Env, "store", cfg.Store.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server stopped", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
}
