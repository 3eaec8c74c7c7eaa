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

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	cancelBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/cancel_booking"
	clearAvailabilityHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/clear_availability"
	createAvailabilityWindowHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_availability_window"
	createBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/create_booking"
	deleteAvailabilityWindowHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/delete_availability_window"
	getAvailableSlotsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_available_slots"
	getBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_booking"
	getOwnerBookingsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_owner_bookings"
	getOwnerSettingsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_owner_settings"
	getUserBookingsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/get_user_bookings"
	listAvailabilityHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/list_availability"
	rescheduleBookingHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/reschedule_booking"
	scheduleWebinarHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/schedule_webinar"
	updateBookingStatusHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_booking_status"
	updateOwnerSettingsHandler "github.com/m04kA/SMC-SchedulingService/internal/api/handlers/update_owner_settings"
	"github.com/m04kA/SMC-SchedulingService/internal/api/middleware"
	"github.com/m04kA/SMC-SchedulingService/internal/app"
	"github.com/m04kA/SMC-SchedulingService/internal/config"
	availabilityRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/availability"
	sessionRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/session"
	settingsRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/settings"
	webinarRepo "github.com/m04kA/SMC-SchedulingService/internal/infra/storage/webinar"
	paymentServiceClient "github.com/m04kA/SMC-SchedulingService/internal/integrations/paymentservice"
	availabilityService "github.com/m04kA/SMC-SchedulingService/internal/service/availability"
	sessionsService "github.com/m04kA/SMC-SchedulingService/internal/service/sessions"
	settingsService "github.com/m04kA/SMC-SchedulingService/internal/service/settings"
	cancelBookingUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/cancel_booking"
	createBookingUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/create_booking"
	getAvailableSlotsUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/get_available_slots"
	rescheduleBookingUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/reschedule_booking"
	scheduleWebinarUC "github.com/m04kA/SMC-SchedulingService/internal/usecase/schedule_webinar"
	"github.com/m04kA/SMC-SchedulingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/logger"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
	"github.com/m04kA/SMC-SchedulingService/pkg/txmanager"
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

	log.Info("Starting SMC-SchedulingService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	// nil коллектор безопасен: все методы метрик его проверяют
	var metricsCollector *metrics.Metrics
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

	// Применяем миграции
	migrator, err := app.NewMigrator(db, log)
	if err != nil {
		log.Fatal("Failed to initialize migrator: %v", err)
	}
	if err := migrator.Run(context.Background()); err != nil {
		log.Fatal("Failed to apply migrations: %v", err)
	}

	// Оборачиваем соединение метриками запросов
	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	// Инициализируем интеграционных клиентов
	paymentClient := paymentServiceClient.NewClient(
		cfg.PaymentService.URL,
		cfg.PaymentService.Token,
		time.Duration(cfg.PaymentService.Timeout)*time.Second,
		cfg.PaymentService.MaxRetries,
		log,
	)
	log.Info("Integration clients initialized (PaymentService=%s timeout=%ds retries=%d)",
		cfg.PaymentService.URL, cfg.PaymentService.Timeout, cfg.PaymentService.MaxRetries)

	// Инициализируем репозитории
	availabilityRepository := availabilityRepo.NewRepository(wrappedDB)
	sessionRepository := sessionRepo.NewRepository(wrappedDB)
	settingsRepository := settingsRepo.NewRepository(wrappedDB)
	webinarRepository := webinarRepo.NewRepository(wrappedDB)

	txMgr := txmanager.NewTransactionManager(wrappedDB)

	// Инициализируем сервисы
	settingsSvc := settingsService.NewService(
		settingsRepository,
		cfg.Scheduling.DefaultOwnerSettings(),
		log,
	)
	availabilitySvc := availabilityService.NewService(
		availabilityRepository,
		settingsSvc,
		log,
	)
	sessionsSvc := sessionsService.NewService(
		sessionRepository,
		log,
	)

	// Инициализируем use cases
	getAvailableSlotsUseCase := getAvailableSlotsUC.NewUseCase(
		availabilityRepository,
		sessionRepository,
		settingsSvc,
		metricsCollector,
		log,
	)

	createBookingUseCase := createBookingUC.NewUseCase(
		availabilityRepository,
		sessionRepository,
		settingsSvc,
		txMgr,
		metricsCollector,
		log,
	)

	rescheduleBookingUseCase := rescheduleBookingUC.NewUseCase(
		availabilityRepository,
		sessionRepository,
		settingsSvc,
		txMgr,
		metricsCollector,
		log,
	)

	cancelBookingUseCase := cancelBookingUC.NewUseCase(
		sessionRepository,
		settingsSvc,
		paymentClient,
		txMgr,
		metricsCollector,
		log,
	)

	scheduleWebinarUseCase := scheduleWebinarUC.NewUseCase(
		webinarRepository,
		sessionRepository,
		settingsSvc,
		txMgr,
		cfg.Scheduling.MaxRecurrenceOccurrences,
		log,
	)

	// Инициализируем handlers
	getAvailableSlots := getAvailableSlotsHandler.NewHandler(getAvailableSlotsUseCase, log)
	getOwnerSettings := getOwnerSettingsHandler.NewHandler(settingsSvc, log)
	updateOwnerSettings := updateOwnerSettingsHandler.NewHandler(settingsSvc, log)

	createBooking := createBookingHandler.NewHandler(createBookingUseCase, log)
	getBooking := getBookingHandler.NewHandler(sessionsSvc, log)
	rescheduleBooking := rescheduleBookingHandler.NewHandler(rescheduleBookingUseCase, log)
	cancelBooking := cancelBookingHandler.NewHandler(cancelBookingUseCase, log)
	updateBookingStatus := updateBookingStatusHandler.NewHandler(sessionsSvc, log)
	getUserBookings := getUserBookingsHandler.NewHandler(sessionsSvc, log)
	getOwnerBookings := getOwnerBookingsHandler.NewHandler(sessionsSvc, log)

	createAvailabilityWindow := createAvailabilityWindowHandler.NewHandler(availabilitySvc, log)
	listAvailability := listAvailabilityHandler.NewHandler(availabilitySvc, log)
	deleteAvailabilityWindow := deleteAvailabilityWindowHandler.NewHandler(availabilitySvc, log)
	clearAvailability := clearAvailabilityHandler.NewHandler(availabilitySvc, log)

	scheduleWebinar := scheduleWebinarHandler.NewHandler(scheduleWebinarUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		log.Info("HTTP metrics middleware enabled")

		// Metrics endpoint (публичный, без аутентификации)
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Свободные и занятые слоты владельца на дату
	api.HandleFunc("/owners/{ownerId}/available-slots", getAvailableSlots.Handle).Methods(http.MethodGet)

	// Часовой пояс и политика отмены владельца
	api.HandleFunc("/owners/{ownerId}/settings", getOwnerSettings.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Бронирования ---
	protected.HandleFunc("/bookings", createBooking.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/bookings/{bookingId}", getBooking.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/bookings/{bookingId}/reschedule", rescheduleBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/cancel", cancelBooking.Handle).Methods(http.MethodPatch)
	protected.HandleFunc("/bookings/{bookingId}/status", updateBookingStatus.Handle).Methods(http.MethodPatch)

	// История бронирований клиента
	protected.HandleFunc("/users/{userId}/bookings", getUserBookings.Handle).Methods(http.MethodGet)

	// --- Управление расписанием (для владельца) ---
	protected.HandleFunc("/owners/{ownerId}/bookings", getOwnerBookings.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/owners/{ownerId}/availability", createAvailabilityWindow.Handle).Methods(http.MethodPost)
	protected.HandleFunc("/owners/{ownerId}/availability", listAvailability.Handle).Methods(http.MethodGet)
	protected.HandleFunc("/owners/{ownerId}/availability", clearAvailability.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/owners/{ownerId}/availability/{windowId}", deleteAvailabilityWindow.Handle).Methods(http.MethodDelete)
	protected.HandleFunc("/owners/{ownerId}/settings", updateOwnerSettings.Handle).Methods(http.MethodPut)
	protected.HandleFunc("/owners/{ownerId}/webinars", scheduleWebinar.Handle).Methods(http.MethodPost)

	// Фоновое завершение прошедших сессий
	completer := app.NewCompleter(
		sessionRepository,
		app.RealTimeProvider{},
		cfg.Scheduling.CompletionInterval(),
		log,
	)
	completer.Start(context.Background())

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

	completer.Stop()

	// Останавливаем сбор метрик connection pool
	close(stopMetricsCh)

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
