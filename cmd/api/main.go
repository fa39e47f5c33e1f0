package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/resource-service/internal/api/http"
	"github.com/spec-kit/resource-service/internal/api/http/handlers"
	"github.com/spec-kit/resource-service/internal/config"
	"github.com/spec-kit/resource-service/internal/events"
	"github.com/spec-kit/resource-service/internal/observability"
	"github.com/spec-kit/resource-service/internal/persistence"
	"github.com/spec-kit/resource-service/internal/repository"
	"github.com/spec-kit/resource-service/internal/service"
	"github.com/spec-kit/resource-service/internal/validation"
	"github.com/spec-kit/resource-service/internal/worker"
)

// store is the repository pair behind the services plus its lifecycle hooks.
type store struct {
	users        repository.UserRepository
	tickets      repository.TicketRepository
	dependencies []handlers.Dependency
	close        func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("failed to open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer st.close()

	if cfg.Cache.Enabled {
		redis := persistence.NewRedis(ctx, cfg.Redis, logger)
		defer redis.Close()
		st.users = repository.NewCachedUserRepository(st.users, redis.Client, cfg.Cache.TTL(), logger)
		st.tickets = repository.NewCachedTicketRepository(st.tickets, redis.Client, cfg.Cache.TTL(), logger)
		st.dependencies = append(st.dependencies, handlers.Dependency{Name: "redis", Pinger: redis})
	}

	queue := worker.NewAsyncDispatcher(events.NewInMemoryDispatcher(), cfg.Events.QueueSize, logger)
	notificationService := service.NewNotificationService(queue, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService, queue)

	userService := service.NewUserService(st.users, queue)
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:           st.tickets,
		UserRepo:             st.users,
		Dispatcher:           queue,
		EnforceUserReference: cfg.Tickets.EnforceUserReference,
	})

	metrics := observability.NewMetrics()
	validator := validation.New()

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: true,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:  handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, st.dependencies...),
		Metrics: handlers.NewMetricsHandler(metrics),
		Users:   handlers.NewUsersHandler(userService, validator),
		Tickets: handlers.NewTicketsHandler(ticketService, validator),
	})

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()), zap.String("store", cfg.Store.Driver))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	if err := queue.Stop(shutdownCtx); err != nil {
		logger.Warn("event queue did not drain", zap.Error(err))
	}
}

func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*store, error) {
	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, err
		}
		if cfg.Postgres.RunMigrations {
			if err := pg.Migrate(ctx, logger); err != nil {
				pg.Close()
				return nil, err
			}
		}
		pool := pg.PoolHandle()
		return &store{
			users:        repository.NewUserRepository(pool),
			tickets:      repository.NewTicketRepository(pool),
			dependencies: []handlers.Dependency{{Name: "postgres", Pinger: pg}},
			close:        pg.Close,
		}, nil
	case config.StoreDriverSQLite:
		db, err := persistence.NewSQLite(ctx, cfg.SQLite, logger)
		if err != nil {
			return nil, err
		}
		return &store{
			users:        repository.NewSQLiteUserRepository(db.DB),
			tickets:      repository.NewSQLiteTicketRepository(db.DB, nil),
			dependencies: []handlers.Dependency{{Name: "sqlite", Pinger: db}},
			close:        db.Close,
		}, nil
	default:
		return &store{
			users:   repository.NewMemoryUserRepository(),
			tickets: repository.NewMemoryTicketRepository(nil),
			close:   func() {},
		}, nil
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
