package internal

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"user-registry-api/config"
	"user-registry-api/internal/application/ports"
	"user-registry-api/internal/application/services"
	"user-registry-api/internal/application/validators"
	"user-registry-api/internal/domain/user"
	"user-registry-api/internal/infrastructure/db/memory"
	"user-registry-api/internal/infrastructure/db/postgres"
	pguser "user-registry-api/internal/infrastructure/db/postgres/user"
	"user-registry-api/internal/infrastructure/hash"
	"user-registry-api/internal/infrastructure/logger"
	"user-registry-api/internal/infrastructure/metrics"
	"user-registry-api/internal/infrastructure/mq"
	"user-registry-api/internal/infrastructure/sanitizer"
	"user-registry-api/internal/infrastructure/validator"
	"user-registry-api/internal/interface/api/rest"
	"user-registry-api/pkg/rmqconsumer"
)

type App struct {
	logger     *zap.Logger
	flushLog   func()
	cfg        config.Config
	db         *gorm.DB
	users      user.Repository
	httpSrv    *http.Server
	router     *gin.Engine
	mCounter   *prometheus.CounterVec
	mq         ports.RabbitMQ
	mqConsumer ports.RMQConsumer
}

// NewApp builds every process-wide resource once. The database handle is
// owned here and handed to the repository explicitly.
func NewApp(ctx context.Context) (*App, error) {
	// config
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	// logger
	var rotate *logger.FileRotate
	if cfg.App.LogFile != "" {
		rotate = &logger.FileRotate{
			Filename:   cfg.App.LogFile,
			MaxSizeMB:  100,
			MaxBackups: 7,
			MaxAgeDays: 30,
			Compress:   true,
		}
	}
	zl, flush := logger.New(logger.Options{
		Level:  cfg.App.LogLevel,
		JSON:   cfg.App.LogJSON,
		Rotate: rotate,
	})

	a := &App{
		logger:   zl,
		flushLog: flush,
		cfg:      cfg,
		mCounter: metrics.NewCounter(nil),
		mq:       mq.Noop{},
	}

	// router
	switch cfg.App.Env {
	case gin.ReleaseMode, "prod", "production":
		gin.SetMode(gin.ReleaseMode)
	case gin.TestMode:
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}
	a.router = rest.NewRouter(zl, a.mCounter)

	// httpServer
	a.httpSrv = &http.Server{
		Addr:              cfg.App.Host + ":" + cfg.App.Port,
		Handler:           a.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// db
	if err = a.initStore(ctx); err != nil {
		a.Close()
		return nil, err
	}

	// rabbitMQ
	if err = a.initMQ(ctx); err != nil {
		a.Close()
		return nil, err
	}

	return a, nil
}

func (a *App) initStore(ctx context.Context) error {
	if a.cfg.UseMemoryStore() {
		a.logger.Warn("no database configured, using the in-memory user store")
		a.users = memory.NewUserRepository()
		return nil
	}

	dsn, err := a.cfg.DBDSN()
	if err != nil {
		return fmt.Errorf("DB config error: %w", err)
	}
	a.db, err = postgres.New(ctx, a.logger, postgres.Opts{
		DSN:                dsn,
		MaxOpenConns:       a.cfg.DB.MaxOpenConns,
		MaxIdleConns:       a.cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: a.cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           a.cfg.DB.LogLevel,
	})
	if err != nil {
		return err
	}
	if a.cfg.DB.AutoMigrate {
		if err = pguser.Migrate(a.db); err != nil {
			return fmt.Errorf("migrate users: %w", err)
		}
	}
	a.users = pguser.NewRepository(a.db)

	return nil
}

func (a *App) initMQ(ctx context.Context) error {
	if !a.cfg.MQEnabled() {
		a.logger.Info("rabbitMQ not configured, user events are not published")
		return nil
	}

	dsn, err := a.cfg.AMQPDSN()
	if err != nil {
		return fmt.Errorf("RabbitMQ config error: %w", err)
	}
	rbMQ := mq.New(a.cfg.MQ, a.logger)
	if err = rbMQ.Connect(ctx, dsn); err != nil {
		return fmt.Errorf("failed to connect to rabbitMQ: %w", err)
	}
	a.mq = rbMQ
	if err = rbMQ.Init(); err != nil {
		return fmt.Errorf("failed init rabbitMQ: %w", err)
	}

	// rmqConsumer
	consumer := rmqconsumer.New(a.cfg.MQ, a.logger, mq.RoutingKeys...)
	if err = consumer.Connect(dsn); err != nil {
		return fmt.Errorf("failed to connect rabbitMQ consumer: %w", err)
	}
	if err = consumer.Init(); err != nil {
		return fmt.Errorf("failed to init rabbitMQ consumer: %w", err)
	}
	a.mqConsumer = consumer

	return nil
}

func (a *App) Close() {
	if err := postgres.Close(a.db); err != nil {
		a.logger.Error("db close error", zap.Error(err))
	}
	if conn := a.mq.GetConn(); conn != nil {
		_ = conn.Close()
	}
	if a.flushLog != nil {
		a.flushLog()
	}
}

// Run - The central place to launch and manage our application and
// parallel processes through a single context.
func (a *App) Run(ctx context.Context) error {
	// context with os signals cancel chan
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		a.logger.Info("starting "+a.cfg.App.Name, zap.String("addr", a.httpSrv.Addr))
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server "+a.cfg.App.Name+" error: %w", err)
		}

		return nil
	})

	g.Go(func() error {
		a.mq.PublisherWorker(ctx)
		return nil
	})

	if a.mqConsumer != nil {
		g.Go(func() error {
			a.mqConsumer.DeliveryWorker(ctx)
			return nil
		})
	}

	<-ctx.Done()

	a.logger.Info("shutting down " + a.cfg.App.Name + " gracefully...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := a.httpSrv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown "+a.cfg.App.Name+" error", zap.Error(err))
		return err
	}

	if err := g.Wait(); err != nil {
		a.logger.Error(a.cfg.App.Name+" returning an error", zap.Error(err))
		return err
	}

	a.logger.Info(a.cfg.App.Name + " gracefully stopped")

	return nil
}

func (a *App) InitControllers() {
	appLogger := logger.NewFromZap(a.logger)

	// validators
	dataValidator := validators.NewDataValidator(
		validator.NewEmail(),
		validators.NewEmailUniqueness(a.users),
		validator.NewPhone(a.cfg.Policy.PhoneRegion),
		validator.NewBirthdate(validator.WithAgeRange(a.cfg.Policy.MinAge, a.cfg.Policy.MaxAge)),
		validator.NewPassword(),
	)

	// services
	hasher := hash.New(ports.HashOptions{
		TimeCost:    a.cfg.Policy.HashTimeCost,
		MemoryCost:  a.cfg.Policy.HashMemoryKiB,
		Parallelism: a.cfg.Policy.HashParallelism,
	})
	createService := services.NewUserCreateService(
		sanitizer.NewUserData(sanitizer.NewXSS()),
		dataValidator,
		hasher,
		a.users,
		a.mq,
		appLogger,
		a.mCounter,
	)
	listService := services.NewUserListService(a.users, appLogger)

	// controllers
	rest.NewUserController(a.router, createService, listService, a.logger)

	// ops
	a.router.GET(rest.RouteHealth, rest.HealthHandler)
	a.router.GET(rest.RouteMetrics, gin.WrapH(promhttp.Handler()))
}

func (a *App) Logger() *zap.Logger { return a.logger }
