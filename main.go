package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"clinicdesk/config"
	_ "clinicdesk/docs"
	"clinicdesk/internal/lock"
	"clinicdesk/internal/notify"
	"clinicdesk/internal/repository"
	"clinicdesk/internal/service"
	"clinicdesk/internal/storage"
	"clinicdesk/internal/transport/rest"
	"clinicdesk/internal/transport/websocket"
	"clinicdesk/migrations"
	"clinicdesk/pkg/database"
	"clinicdesk/pkg/logger"
	"clinicdesk/pkg/metrics"
	"clinicdesk/pkg/tracer"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title Clinicdesk API
// @version 1.0
// @description API регистратуры клиники: записи на прием и кассовая отчетность

// @BasePath /api/v1

// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		panic(err)
	}

	log, err := logger.NewLogger(cfg.Name, cfg.Environment, cfg.Log.Level)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tp, err := tracer.Init(cfg.Tracing)
	if err != nil {
		log.Fatal("Не удалось инициализировать трассировку", zap.Error(err))
	}

	db, err := database.NewPostgresDB(ctx, cfg.Postgres, log)
	if err != nil {
		log.Fatal("Не удалось подключиться к БД", zap.Error(err))
	}
	defer db.Close()

	log.Info("Запуск миграций базы данных")
	if err := database.RunMigrations(ctx, db, migrations.FS, log); err != nil {
		log.Fatal("Ошибка при выполнении миграций", zap.Error(err))
	}
	log.Info("Миграции успешно выполнены")

	var locker lock.Locker
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()

		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal("Не удалось подключиться к Redis", zap.Error(err))
		}
		locker = lock.NewRedisLocker(rdb, cfg.Clinic.BookingLockTTL, cfg.Clinic.BookingLockMax)
		log.Info("Блокировки записи через Redis", zap.String("addr", cfg.Redis.Addr))
	} else {
		locker = lock.NewLocalLocker(cfg.Clinic.BookingLockMax)
		log.Warn("Redis не настроен, блокировки записи действуют только в этом процессе")
	}

	var reportStorage storage.ReportStorage
	if cfg.S3.Endpoint != "" {
		s3Storage, err := storage.NewS3Storage(cfg.S3, log)
		if err != nil {
			log.Fatal("Не удалось инициализировать S3 хранилище", zap.Error(err))
		}
		reportStorage = s3Storage
		log.Info("S3 хранилище успешно инициализировано", zap.String("endpoint", cfg.S3.Endpoint))
	} else {
		log.Warn("S3 хранилище не настроено, отчеты не архивируются")
	}

	calendarHub := websocket.NewCalendarHub(service.NewAuthService(cfg.JWT, log), log)
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	go calendarHub.Run(hubCtx)

	var dispatchers notify.Multi
	if cfg.PubSub.ProjectID != "" {
		pubsubDispatcher, err := notify.NewPubSubDispatcher(ctx, cfg.PubSub)
		if err != nil {
			log.Fatal("Не удалось подключиться к Pub/Sub", zap.Error(err))
		}
		defer pubsubDispatcher.Close()
		dispatchers = append(dispatchers, pubsubDispatcher)
		log.Info("Уведомления публикуются в Pub/Sub", zap.String("topic", cfg.PubSub.Topic))
	} else {
		dispatchers = append(dispatchers, notify.NewLogDispatcher(log))
		log.Warn("Pub/Sub не настроен, уведомления только записываются в журнал")
	}
	dispatchers = append(dispatchers, calendarHub)

	collector := metrics.NewCollector(cfg.Name, prometheus.DefaultRegisterer)

	services := service.NewServices(service.Deps{
		Repos:         repository.NewRepositories(db),
		Logger:        log,
		Config:        cfg,
		Locker:        locker,
		Dispatcher:    dispatchers,
		ReportStorage: reportStorage,
		Metrics:       collector,
	})

	handler := rest.NewHandler(services, log, cfg, collector, prometheus.DefaultGatherer, calendarHub)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	handler.InitRoutes(router)

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/swagger", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})

	srv := &http.Server{
		Addr:           ":" + cfg.HTTP.Port,
		Handler:        router,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderMB << 20,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Ошибка запуска сервера", zap.Error(err))
		}
	}()

	log.Info("Сервер запущен", zap.String("addr", srv.Addr), zap.String("timezone", cfg.Clinic.Timezone))

	<-ctx.Done()
	log.Info("Выключение сервера...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Ошибка при остановке сервера", zap.Error(err))
	}

	services.Notifier.Shutdown()
	stopHub()

	if err := tp.Shutdown(shutdownCtx); err != nil {
		log.Error("Ошибка при остановке трассировки", zap.Error(err))
	}

	log.Info("Сервер успешно остановлен")
}
