package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	exportInstancesICSHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/export_instances_ics"
	getScheduleHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/get_schedule"
	listInstancesHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/list_instances"
	previewScheduleHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/preview_schedule"
	publishScheduleHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/publish_schedule"
	saveScheduleHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/save_schedule"
	validateDateRangeHandler "github.com/m04kA/SMC-AvailabilityService/internal/api/handlers/validate_date_range"
	"github.com/m04kA/SMC-AvailabilityService/internal/api/middleware"
	"github.com/m04kA/SMC-AvailabilityService/internal/config"
	instanceCache "github.com/m04kA/SMC-AvailabilityService/internal/infra/cache/instances"
	instanceRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/instance"
	scheduleRepo "github.com/m04kA/SMC-AvailabilityService/internal/infra/storage/schedule"
	"github.com/m04kA/SMC-AvailabilityService/internal/integrations/events"
	"github.com/m04kA/SMC-AvailabilityService/internal/jobs/sweeper"
	"github.com/m04kA/SMC-AvailabilityService/internal/recurrence"
	instancesService "github.com/m04kA/SMC-AvailabilityService/internal/service/instances"
	schedulesService "github.com/m04kA/SMC-AvailabilityService/internal/service/schedules"
	previewScheduleUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/preview_schedule"
	publishScheduleUC "github.com/m04kA/SMC-AvailabilityService/internal/usecase/publish_schedule"
	"github.com/m04kA/SMC-AvailabilityService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/logger"
	"github.com/m04kA/SMC-AvailabilityService/pkg/metrics"
	"github.com/m04kA/SMC-AvailabilityService/pkg/txmanager"
)

// domainMetrics метрики генерации и публикации (metrics.Metrics или metrics.Noop)
type domainMetrics interface {
	ObserveExpansion(scheduleType string, instances int)
	IncPublish(result string)
}

func main() {
	configPath := "config.toml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		configPath = v
	}

	// Загружаем конфигурацию
	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting SMC-AvailabilityService...")
	log.Info("Configuration loaded from %s", configPath)

	// Инициализируем метрики (если включены)
	var (
		metricsCollector *metrics.Metrics
		dbCollector      dbmetrics.Collector
		domMetrics       domainMetrics = metrics.Noop{}
	)
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		dbCollector = metricsCollector
		domMetrics = metricsCollector
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Обертка над БД: без коллектора метрики просто не пишутся
	wrappedDB := dbmetrics.WrapWithDefault(db, dbCollector, cfg.Metrics.ServiceName, stopMetricsCh)

	// Часовой пояс описаний расписаний
	loc := cfg.Expander.Location()

	// Инициализируем репозитории
	scheduleRepository := scheduleRepo.NewRepository(wrappedDB, loc)
	instanceRepository := instanceRepo.NewRepository(wrappedDB)
	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Кэш экземпляров (redis, опционально)
	var (
		redisClient *redis.Client
		cache       *instanceCache.Cache
	)
	if cfg.Redis.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := redisClient.Ping(pingCtx).Err(); err != nil {
			log.Warn("Redis ping failed (addr=%s): %v, cache will retry on use", cfg.Redis.Addr, err)
		}
		cancel()

		cache = instanceCache.NewCache(redisClient, time.Duration(cfg.Redis.TTL)*time.Second)
		log.Info("Instance cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTL)
	}

	// Публикация событий (kafka, без брокеров только логирование)
	publisher := events.NewPublisher(events.Config{
		Brokers:      cfg.Kafka.Brokers,
		Topic:        cfg.Kafka.Topic,
		WriteTimeout: time.Duration(cfg.Kafka.WriteTimeout) * time.Second,
	}, log)
	defer publisher.Close()

	// Генератор экземпляров
	expander := recurrence.NewExpander(recurrence.Config{
		DefaultWindowDays: cfg.Expander.DefaultWindowDays,
		DefaultCapacity:   cfg.Expander.DefaultCapacity,
		MaxOccurrences:    cfg.Expander.MaxOccurrences,
	}, log)
	filters := recurrence.FilterOptions{
		Blackouts: cfg.Expander.ApplyBlackouts,
		Seasonal:  cfg.Expander.ApplySeasonal,
	}
	log.Info("Expander configured (window=%dd, capacity=%d, max=%d, tz=%s, blackouts=%t, seasonal=%t)",
		cfg.Expander.DefaultWindowDays, cfg.Expander.DefaultCapacity, cfg.Expander.MaxOccurrences,
		loc, filters.Blackouts, filters.Seasonal)

	// Инициализируем сервисы
	// Интерфейсы с nil-значением передаются только как nil, без typed nil
	var listCache instancesService.InstanceCache
	var publishCache publishScheduleUC.InstanceCache
	if cache != nil {
		listCache = cache
		publishCache = cache
	}

	scheduleSvc := schedulesService.NewService(scheduleRepository, loc, log)
	instanceSvc := instancesService.NewService(instanceRepository, listCache, loc, log)

	// Инициализируем use cases
	previewUseCase := previewScheduleUC.NewUseCase(
		scheduleRepository,
		expander,
		domMetrics,
		previewScheduleUC.Options{Filters: filters},
		loc,
		log,
	)
	publishUseCase := publishScheduleUC.NewUseCase(
		scheduleRepository,
		instanceRepository,
		expander,
		publishCache,
		publisher,
		txMgr,
		domMetrics,
		publishScheduleUC.Options{Filters: filters},
		log,
	)

	// Фоновая задача завершения прошедших экземпляров
	var sw *sweeper.Sweeper
	if cfg.Sweeper.Enabled {
		sw, err = sweeper.New(instanceRepository, cfg.Sweeper.Cron, log)
		if err != nil {
			log.Fatal("Failed to create sweeper: %v", err)
		}
		if cache != nil {
			sw.WithCache(cache)
		}
		sw.Start()
		log.Info("Sweeper started (cron=%s)", cfg.Sweeper.Cron)
	}

	// Инициализируем handlers
	saveSchedule := saveScheduleHandler.NewHandler(scheduleSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	previewSchedule := previewScheduleHandler.NewHandler(previewUseCase, log)
	publishSchedule := publishScheduleHandler.NewHandler(publishUseCase, log)
	listInstances := listInstancesHandler.NewHandler(instanceSvc, log)
	exportInstancesICS := exportInstancesICSHandler.NewHandler(instanceSvc, log)
	validateDateRange := validateDateRangeHandler.NewHandler(instanceSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Проверка диапазона дат
	api.HandleFunc("/date-ranges/validate", validateDateRange.Handle).Methods(http.MethodPost)

	// ============================================================
	// PROTECTED ROUTES (требуют X-Tenant-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Описание расписания ---
	protected.HandleFunc("/products/{productId}/schedule", saveSchedule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/products/{productId}/schedule", getSchedule.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/products/{productId}/schedule/preview", previewSchedule.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/products/{productId}/schedule/publish", publishSchedule.Handle).Methods(http.MethodPost)

	// --- Экземпляры ---
	protected.HandleFunc("/products/{productId}/instances", listInstances.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/products/{productId}/instances.ics", exportInstancesICS.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	// Останавливаем sweeper (ждем текущий прогон)
	if sw != nil {
		sw.Stop(shutdownCtx)
		log.Info("Sweeper stopped")
	}

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

	log.Info("Server stopped gracefully")
}
