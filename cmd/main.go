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

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/relaxity/RLX-BookingService/internal/api/handlers/cancel_booking"
	checkAvailabilityHandler "github.com/relaxity/RLX-BookingService/internal/api/handlers/check_availability"
	createBookingHandler "github.com/relaxity/RLX-BookingService/internal/api/handlers/create_booking"
	getAvailableSlotsHandler "github.com/relaxity/RLX-BookingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/relaxity/RLX-BookingService/internal/api/handlers/get_booking"
	getClientBookingsHandler "github.com/relaxity/RLX-BookingService/internal/api/handlers/get_client_bookings"
	getMasterBookingsHandler "github.com/relaxity/RLX-BookingService/internal/api/handlers/get_master_bookings"
	getPolicyHandler "github.com/relaxity/RLX-BookingService/internal/api/handlers/get_policy"
	getScheduleHandler "github.com/relaxity/RLX-BookingService/internal/api/handlers/get_schedule"
	getSlotsRangeHandler "github.com/relaxity/RLX-BookingService/internal/api/handlers/get_slots_range"
	rescheduleBookingHandler "github.com/relaxity/RLX-BookingService/internal/api/handlers/reschedule_booking"
	updateBookingStatusHandler "github.com/relaxity/RLX-BookingService/internal/api/handlers/update_booking_status"
	updatePolicyHandler "github.com/relaxity/RLX-BookingService/internal/api/handlers/update_policy"
	updateScheduleHandler "github.com/relaxity/RLX-BookingService/internal/api/handlers/update_schedule"
	"github.com/relaxity/RLX-BookingService/internal/api/middleware"
	"github.com/relaxity/RLX-BookingService/internal/config"
	"github.com/relaxity/RLX-BookingService/internal/domain"
	"github.com/relaxity/RLX-BookingService/internal/infra/cache/schedulecache"
	bookingRepo "github.com/relaxity/RLX-BookingService/internal/infra/storage/booking"
	policyRepo "github.com/relaxity/RLX-BookingService/internal/infra/storage/policy"
	scheduleRepo "github.com/relaxity/RLX-BookingService/internal/infra/storage/schedule"
	catalogClient "github.com/relaxity/RLX-BookingService/internal/integrations/catalog"
	bookingsService "github.com/relaxity/RLX-BookingService/internal/service/bookings"
	policyService "github.com/relaxity/RLX-BookingService/internal/service/policy"
	scheduleService "github.com/relaxity/RLX-BookingService/internal/service/schedule"
	checkAvailabilityUC "github.com/relaxity/RLX-BookingService/internal/usecase/check_availability"
	createBookingUC "github.com/relaxity/RLX-BookingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/relaxity/RLX-BookingService/internal/usecase/get_available_slots"
	getSlotsRangeUC "github.com/relaxity/RLX-BookingService/internal/usecase/get_slots_range"
	rescheduleBookingUC "github.com/relaxity/RLX-BookingService/internal/usecase/reschedule_booking"
	"github.com/relaxity/RLX-BookingService/pkg/dbmetrics"
	"github.com/relaxity/RLX-BookingService/pkg/logger"
	"github.com/relaxity/RLX-BookingService/pkg/metrics"
	"github.com/relaxity/RLX-BookingService/pkg/simpletxmanager"
	"github.com/relaxity/RLX-BookingService/pkg/txmanager"
)

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
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

	log.Info("Starting RLX-BookingService...")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Клиент каталога мастеров и услуг
	catalog := catalogClient.NewClient(
		cfg.Catalog.URL,
		time.Duration(cfg.Catalog.Timeout)*time.Second,
		log,
	)
	log.Info("Catalog client initialized (url=%s, timeout=%ds)", cfg.Catalog.URL, cfg.Catalog.Timeout)

	// Репозитории и transaction manager (с метриками или без)
	var (
		bookingRepository  *bookingRepo.Repository
		scheduleRepository *scheduleRepo.Repository
		policyRepository   *policyRepo.Repository
	)

	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		bookingRepository = bookingRepo.NewRepository(wrappedDB)
		scheduleRepository = scheduleRepo.NewRepository(wrappedDB)
		policyRepository = policyRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		bookingRepository = bookingRepo.NewRepository(db)
		scheduleRepository = scheduleRepo.NewRepository(db)
		policyRepository = policyRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Кэш расписаний (опционально)
	// Слоты никогда не кэшируются - только само недельное расписание
	type ScheduleReader interface {
		GetByMaster(ctx context.Context, masterID int64) (*domain.WeeklySchedule, error)
	}
	var scheduleReader ScheduleReader = scheduleRepository
	var scheduleCache *schedulecache.Cache

	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			log.Fatal("Failed to ping redis: %v", err)
		}
		defer redisClient.Close()

		scheduleCache = schedulecache.New(
			scheduleRepository,
			redisClient,
			time.Duration(cfg.Redis.TTLSeconds)*time.Second,
			log,
		)
		scheduleReader = scheduleCache
		log.Info("Schedule cache enabled (addr=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.TTLSeconds)
	}

	// Сервисы
	bookingSvc := bookingsService.NewService(bookingRepository, log)

	var cacheInvalidator scheduleService.CacheInvalidator
	if scheduleCache != nil {
		cacheInvalidator = scheduleCache
	}
	scheduleSvc := scheduleService.NewService(scheduleRepository, txMgr, cacheInvalidator, log)
	policySvc := policyService.NewService(policyRepository, log)

	// Use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		bookingRepository, scheduleReader, policyRepository, catalog, log)
	getSlotsRangeUseCase := getSlotsRangeUC.NewUseCase(
		bookingRepository, scheduleReader, policyRepository, catalog, log)
	checkAvailabilityUseCase := checkAvailabilityUC.NewUseCase(
		bookingRepository, scheduleReader, policyRepository, catalog, log)
	createBookingUseCase := createBookingUC.NewUseCase(
		bookingRepository, scheduleReader, policyRepository, catalog, txMgr, log)
	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		bookingRepository, scheduleReader, policyRepository, catalog, txMgr, log)

	// Handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getSlotsRange := getSlotsRangeHandler.NewHandler(getSlotsRangeUseCase, log)
	checkAvailability := checkAvailabilityHandler.NewHandler(checkAvailabilityUseCase, log)
	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(bookingSvc, log)
	cancelBooking := cancelBookingHandler.NewHandler(bookingSvc, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(bookingSvc, log)
	getClientBookings := getClientBookingsHandler.NewHandler(bookingSvc, log)
	getMasterBookings := getMasterBookingsHandler.NewHandler(bookingSvc, log)
	getSchedule := getScheduleHandler.NewHandler(scheduleSvc, log)
	updateSchedule := updateScheduleHandler.NewHandler(scheduleSvc, log)
	getPolicy := getPolicyHandler.NewHandler(policySvc, log)
	updatePolicy := updatePolicyHandler.NewHandler(policySvc, log)

	// Роутер
	r := mux.NewRouter()
	r.Use(middleware.RequestID)

	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Слоты на дату
	api.HandleFunc("/masters/{masterId}/available-slots",
		getAvailableSlots.Handle).Methods(http.MethodGet)

	// Календарь доступности на диапазон дат
	api.HandleFunc("/masters/{masterId}/slots-range",
		getSlotsRange.Handle).Methods(http.MethodGet)

	// Проверка конкретного слота
	api.HandleFunc("/masters/{masterId}/availability",
		checkAvailability.Handle).Methods(http.MethodGet)

	// Недельное расписание мастера
	api.HandleFunc("/masters/{masterId}/schedule",
		getSchedule.Handle).Methods(http.MethodGet)

	// Политика бронирования мастера
	api.HandleFunc("/masters/{masterId}/policy",
		getPolicy.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPost)

	// --- История и управление ---
	protected.HandleFunc("/clients/me/bookings", getClientBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/masters/{masterId}/bookings", getMasterBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/masters/{masterId}/schedule", updateSchedule.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/masters/{masterId}/policy", updatePolicy.Handle).Methods(http.MethodPut)

	// HTTP сервер
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

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}
