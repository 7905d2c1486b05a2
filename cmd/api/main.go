package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/raskraski/storefront/internal/auth"
	"github.com/raskraski/storefront/internal/config"
	"github.com/raskraski/storefront/internal/infra/cache"
	"github.com/raskraski/storefront/internal/infra/database"
	"github.com/raskraski/storefront/internal/infra/http/handlers"
	"github.com/raskraski/storefront/internal/infra/http/middleware"
	"github.com/raskraski/storefront/internal/infra/mail"
	"github.com/raskraski/storefront/internal/infra/queue"
	"github.com/raskraski/storefront/internal/infra/worker"
	"github.com/raskraski/storefront/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	if err := run(cfg, logger); err != nil {
		logger.Error("server stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Infra
	db, err := database.NewDBConnection(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.RunMigrations {
		if err := database.RunMigrations(db); err != nil {
			return err
		}
		logger.Info("migrations applied")
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer redisClient.Close()
	sessions := cache.NewRedisStorage(redisClient, cfg.CartTTL)
	if err := sessions.Ping(ctx); err != nil {
		logger.Warn("redis unreachable at startup; carts will start empty", slog.Any("error", err))
	}

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQURL)
	if err != nil {
		return err
	}
	defer rabbitMQ.Close()

	// 2. Repositories
	productRepo := database.NewProductRepository(db)
	categoryRepo := database.NewCategoryRepository(db)
	pageRepo := database.NewColoringPageRepository(db)
	postRepo := database.NewBlogPostRepository(db)
	orderRepo := database.NewOrderRepository(db)
	slugRepo := database.NewSlugRepository(db)

	// 3. Adapters
	producer := queue.NewProducer(rabbitMQ.Ch)
	mailer := mail.NewBreakerSender(
		mail.NewEmailSender(cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom),
		logger,
	)

	// 4. Workers
	orderWorker := queue.NewWorker(rabbitMQ.Ch, mailer, logger)
	orderWorker.OnFailure = middleware.RecordIntegrationError
	go func() {
		if err := orderWorker.Start(ctx, queue.QueueName); err != nil {
			logger.Error("order worker failed", slog.Any("error", err))
		}
	}()

	go worker.NewOrderExpirationWorker(orderRepo, logger).Start(ctx)

	checkoutLimiter := middleware.NewRateLimiter(10, time.Minute)
	go checkoutLimiter.Cleanup(ctx, 5*time.Minute)

	// 5. Use cases
	slugs := usecase.NewResolveSlugUseCase(slugRepo, cfg.SlugMaxAttempts, logger)
	checkout := usecase.NewCheckoutUseCase(orderRepo, producer, logger)

	admins := auth.ParseEmailAllowList(cfg.AdminEmails)
	if admins.Len() == 0 {
		logger.Warn("ADMIN_EMAILS is empty; admin routes will deny every request")
	}

	// 6. Handlers
	deps := routerDeps{
		catalog: handlers.NewCatalogHandler(productRepo, categoryRepo, pageRepo, postRepo, logger),
		cart:    handlers.NewCartHandler(sessions, productRepo, checkout, logger),
		admin: handlers.NewAdminHandler(
			usecase.NewManageProductsUseCase(productRepo, slugs, logger),
			usecase.NewManageCategoriesUseCase(categoryRepo, slugs, logger),
			usecase.NewManageColoringPagesUseCase(pageRepo, slugs, logger),
			usecase.NewManageBlogPostsUseCase(postRepo, slugs, logger),
			logger,
		),
		orders:  handlers.NewOrderHandler(orderRepo, logger),
		export:  handlers.NewExportHandler(productRepo, logger),
		health:  handlers.NewHealthHandler(db, rabbitMQ.Conn, sessions),
		limiter: checkoutLimiter,

		verifier:     auth.NewTokenVerifier(cfg.SupabaseJWTSecret),
		policy:       admins,
		corsOrigins:  cfg.CORSOrigins,
		cookieSecure: cfg.CookieSecure,
		logger:       logger,
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           newRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
