package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	config "github.com/content-os/commerce-sync/internal/cfg"
	v1Http "github.com/content-os/commerce-sync/internal/delivery/v1/http"
	archiveInfra "github.com/content-os/commerce-sync/internal/infrastructure/archive"
	"github.com/content-os/commerce-sync/internal/infrastructure/commerce"
	"github.com/content-os/commerce-sync/internal/infrastructure/feed"
	"github.com/content-os/commerce-sync/internal/infrastructure/kafka"
	s3Repo "github.com/content-os/commerce-sync/internal/repository/minio"
	"github.com/content-os/commerce-sync/internal/repository/pgdb"
	pgdbConv "github.com/content-os/commerce-sync/internal/repository/pgdb/converter/generated"
	"github.com/content-os/commerce-sync/internal/repository/redis"
	redisConv "github.com/content-os/commerce-sync/internal/repository/redis/converter/generated"
	"github.com/content-os/commerce-sync/internal/usecase"
	"github.com/content-os/commerce-sync/pkg/clients"
	"github.com/content-os/commerce-sync/pkg/closer"
	"github.com/content-os/commerce-sync/pkg/e"
	"github.com/content-os/commerce-sync/pkg/logger"
	"github.com/content-os/commerce-sync/pkg/postgres"
	"github.com/go-chi/chi/v5"
	"github.com/jimlawless/whereami"
)

// App собирает зависимости сервиса и управляет их жизненным циклом.
type App struct {
	cfg    *config.Config
	logger logger.Logger

	db           *postgres.PgDatabase
	redisClient  *clients.RedisClient
	producer     *kafka.Producer
	outboxWorker *kafka.OutboxWorker
	httpSrv      *v1Http.Server
	syncUC       usecase.SyncUC
	closer       *closer.Closer
}

func NewApp(cfg *config.Config, log logger.Logger) (*App, error) {
	db, err := initPGDB(log, cfg)
	if err != nil {
		log.Errorf(err, "failed to initialize database")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	ssotConv := pgdbConv.NewStoreProductConverterImpl()
	partnerConv := pgdbConv.NewPartnerProductConverterImpl()
	canonConv := pgdbConv.NewCanonicalProductConverterImpl()
	refreshConv := pgdbConv.NewRefreshItemConverterImpl()
	outboxConv := pgdbConv.NewOutboxEventConverterImpl()
	cacheConv := redisConv.NewCanonicalProductConverterImpl()

	ssotRepo := pgdb.NewSSOTRepo(db.Pool, ssotConv)
	partnerRepo := pgdb.NewPartnerRepo(db.Pool, partnerConv)
	unifiedRepo := pgdb.NewUnifiedRepo(db.Pool, canonConv)
	refreshRepo := pgdb.NewRefreshQueueRepo(db.Pool, refreshConv)
	outboxRepo := pgdb.NewOutboxEventRepo(db.Pool, outboxConv)

	minioClient, err := clients.NewMinIOClient(cfg.Minio)
	if err != nil {
		log.Errorf(err, "failed to initialize minio client")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	minioCtx, minioCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := clients.EnsureBucket(minioCtx, minioClient, cfg.Minio.BucketName); err != nil {
		minioCancel()
		log.Errorf(err, "failed to initialize MinIO bucket")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	minioCancel()

	archiveRepo := s3Repo.NewArchiveRepo(minioClient, cfg.Minio)
	archive := archiveInfra.NewArchiveInfrastructure(archiveRepo, log)

	redisClient := clients.NewRedisClient(cfg.Redis)
	redisCtx, redisCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer redisCancel()
	if err := redisClient.Ping(redisCtx); err != nil {
		log.Errorf(err, "failed to connect to redis")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	cacheRepo := redis.NewCacheRepo(redisClient, cacheConv, cfg.Redis, log)

	httpClient := &http.Client{Timeout: cfg.Commerce.Timeout}
	tokens := commerce.NewTokenSource(cfg.Commerce, httpClient, log)
	gateway := commerce.NewGateway(cfg.Commerce, httpClient, tokens, log)
	commerceClient := commerce.NewClient(cfg.Commerce, gateway, log)
	normalizer := commerce.NewNormalizer()

	feedLoader := feed.NewLoader(cfg.Partner, httpClient, log)

	producer, err := kafka.NewProducer(log, cfg.Kafka)
	if err != nil {
		log.Errorf(err, "failed to initialize kafka producer")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}
	if err := producer.EnsureTopic(10 * time.Second); err != nil {
		log.Errorf(err, "failed to ensure kafka topic")
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	outboxWorker := kafka.NewOutboxWorker(outboxRepo, log, producer, db.Dsn)

	mergeUC := usecase.NewMergeUC(ssotRepo, partnerRepo, unifiedRepo, cacheRepo, db.Pool, cfg.Partner.AllowedSource, log)
	syncUC := usecase.NewSyncUC(
		commerceClient,
		normalizer,
		ssotRepo,
		refreshRepo,
		outboxRepo,
		archive,
		mergeUC,
		db.Pool,
		log,
	)
	partnerUC := usecase.NewPartnerUC(feedLoader, partnerRepo, db.Pool, cfg.Partner.AllowedSource, log)
	refreshUC := usecase.NewRefreshQueueUC(refreshRepo, db.Pool, log)
	productUC := usecase.NewProductUC(unifiedRepo, cacheRepo, log)

	r := chi.NewRouter()
	router := v1Http.NewRouter(r, log)
	router.Init(syncUC, partnerUC, refreshUC, productUC)

	return &App{
		cfg:          cfg,
		logger:       log,
		db:           db,
		redisClient:  redisClient,
		producer:     producer,
		outboxWorker: outboxWorker,
		httpSrv:      v1Http.NewServer(r, cfg.Http),
		syncUC:       syncUC,
		closer:       closer.NewCloser(0),
	}, nil
}

// Run запускает фоновые воркеры и HTTP-сервер и блокируется до сигнала
// завершения или фатальной ошибки сервера. Ресурсы закрываются в порядке,
// обратном порядку запуска.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.closer.Add(func(context.Context) error {
		a.db.Close()
		return nil
	})
	a.closer.Add(func(context.Context) error {
		return a.redisClient.Client.Close()
	})
	a.closer.Add(func(context.Context) error {
		return a.producer.Close()
	})

	a.outboxWorker.Start(ctx)
	a.closer.Add(func(context.Context) error {
		a.outboxWorker.Stop()
		return nil
	})

	if a.cfg.Sync.Interval > 0 {
		go a.runSyncLoop(ctx)
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Infof("HTTP server started on port %s", a.cfg.Http.Port)
		if err := a.httpSrv.Run(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Errorf(err, "HTTP server failed: %v", err)
			errCh <- err
		}
	}()
	a.closer.Add(func(ctx context.Context) error {
		return a.httpSrv.Stop(ctx)
	})

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	var appErr error
	select {
	case appErr = <-errCh:
		a.logger.Errorf(appErr, "HTTP server fatal error")
	case <-shutdown:
		a.logger.Infof("Received shutdown signal, stopping gracefully...")
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := a.closer.Close(shutdownCtx); err != nil {
		a.logger.Warnf("Shutdown finished with errors: %v", err)
	}

	a.logger.Infof("Application shutdown complete")
	return appErr
}

// runSyncLoop периодически запускает синхронизацию собственного магазина.
// Первый запуск происходит сразу, не дожидаясь первого тика.
func (a *App) runSyncLoop(ctx context.Context) {
	a.syncOnce(ctx)

	ticker := time.NewTicker(a.cfg.Sync.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.syncOnce(ctx)
		}
	}
}

func (a *App) syncOnce(ctx context.Context) {
	if _, err := a.syncUC.SyncStore(ctx); err != nil {
		a.logger.Errorf(err, "scheduled sync failed")
	}
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
