package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
	config "github.com/sleek-tech/storefront-backend/internal/cfg"
	v1Http "github.com/sleek-tech/storefront-backend/internal/delivery/v1/http"
	"github.com/sleek-tech/storefront-backend/internal/infrastructure/kafka"
	minioInfra "github.com/sleek-tech/storefront-backend/internal/infrastructure/minio"
	"github.com/sleek-tech/storefront-backend/internal/repository/cookiecart"
	s3Repo "github.com/sleek-tech/storefront-backend/internal/repository/minio"
	"github.com/sleek-tech/storefront-backend/internal/repository/pgdb"
	pgdbConv "github.com/sleek-tech/storefront-backend/internal/repository/pgdb/converter"
	"github.com/sleek-tech/storefront-backend/internal/repository/redis"
	redisConv "github.com/sleek-tech/storefront-backend/internal/repository/redis/converter"
	"github.com/sleek-tech/storefront-backend/internal/usecase"
	"github.com/sleek-tech/storefront-backend/pkg/clients"
	"github.com/sleek-tech/storefront-backend/pkg/closer"
	"github.com/sleek-tech/storefront-backend/pkg/e"
	"github.com/sleek-tech/storefront-backend/pkg/logger"
	"github.com/sleek-tech/storefront-backend/pkg/postgres"
)

// App собирает все зависимости приложения и управляет их жизненным циклом.
type App struct {
	cfg    *config.Config
	logger logger.Logger

	httpSrv *v1Http.Server
	worker  *kafka.OutboxWorker
	closer  *closer.Closer

	appCtx    context.Context
	appCancel context.CancelFunc
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	appCtx, appCancel := context.WithCancel(context.Background())
	cl := closer.NewCloser(2 * time.Second)

	db, err := initPGDB(log, cfg)
	if err != nil {
		appCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add(func(ctx context.Context) error {
		db.Close()
		log.Infof("database pool closed")
		return nil
	})

	catConv := pgdbConv.NewCategoryConverterImpl()
	prConv := pgdbConv.NewProductConverterImpl()
	cartConv := pgdbConv.NewCartItemConverterImpl()
	outboxConv := pgdbConv.NewOutboxEventConverterImpl()
	infoConv := redisConv.NewProductInfoConverterImpl()

	productRepo := pgdb.NewProductRepo(db.Pool, prConv)
	categoryRepo := pgdb.NewCategoryRepo(db.Pool, catConv)
	cartRepo := pgdb.NewCartRepo(db.Pool, cartConv)
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, outboxConv)

	minioClient, err := clients.NewMinIOClient(cfg)
	if err != nil {
		appCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minioCtx, minioCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName); err != nil {
		minioCancel()
		appCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	minioCancel()

	imageRepo := s3Repo.NewImageRepo(minioClient, cfg.Minio)
	imagesInfra := minioInfra.NewMinioInfrastructure(imageRepo, cfg.Minio, log, appCtx)
	cl.Add(func(ctx context.Context) error {
		return imagesInfra.WaitForCleanup(ctx)
	})

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		appCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add(func(ctx context.Context) error {
		return redisClient.Client.Close()
	})

	cacheRepo := redis.NewCacheRepo(redisClient, infoConv, cfg.Redis, log)
	sessionRepo := redis.NewSessionCartRepo(redisClient, cfg.Redis, log)

	producer, err := kafka.NewProducer(log, cfg.Kafka)
	if err != nil {
		appCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if err := producer.EnsureTopic(10 * time.Second); err != nil {
		appCancel()
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cl.Add(func(ctx context.Context) error {
		return producer.Close()
	})

	worker := kafka.NewOutboxWorker(outboxRepo, log, producer, db.Dsn)

	productUC := usecase.NewProductUC(
		productRepo,
		categoryRepo,
		db.Pool,
		imagesInfra,
		cacheRepo,
		log,
	)

	cartUC := usecase.NewCartUC(
		cartRepo,
		sessionRepo,
		productRepo,
		cacheRepo,
		outboxRepo,
		db.Pool,
		log,
	)

	cookies := cookiecart.NewStore(cfg.Cart, log)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(productUC, cartUC, cookies, cfg.Cart)

	httpSrv := v1Http.NewServer(r, cfg.Http)

	return &App{
		cfg:       cfg,
		logger:    log,
		httpSrv:   httpSrv,
		worker:    worker,
		closer:    cl,
		appCtx:    appCtx,
		appCancel: appCancel,
	}, nil
}

// Run запускает воркер исходящих событий и HTTP-сервер и блокируется
// до сигнала завершения или фатальной ошибки сервера.
func (a *App) Run() error {
	a.worker.Start(a.appCtx)
	a.closer.Add(func(ctx context.Context) error {
		a.worker.Stop()
		a.logger.Infof("outbox worker stopped")
		return nil
	})

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed: %v", err)
			errCh <- err
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := a.httpSrv.Stop(shutdownCtx); err != nil {
		a.logger.Errorf(err, "HTTP server shutdown error")
	} else {
		a.logger.Infof("HTTP server stopped")
	}

	a.appCancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("shutdown finished with errors: %v", err)
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

func initPGDB(logger logger.Logger, cfg *config.Config) (*postgres.PgDatabase, error) {
	db, err := postgres.Connect(cfg.Db)
	if err != nil {
		logger.Errorf(err, "failed to connect to database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.RunMigrations(logger); err != nil {
		logger.Errorf(err, "failed to run migrations")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	if err := db.Ping(); err != nil {
		logger.Errorf(err, "failed to ping database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return db, nil
}
